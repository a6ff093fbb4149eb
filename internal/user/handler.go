package user

import (
	"net/http"

	"laundry-be/internal/apperr"
	"laundry-be/internal/auth"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc          Service
	secureCookie bool
}

func NewHandler(svc Service, secureCookie bool) *Handler {
	return &Handler{svc: svc, secureCookie: secureCookie}
}

func (h *Handler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/auth/login", h.Login)
}

// RegisterRoutes mounts the routes that need an authenticated caller.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)
}

type loginResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user"`
	Token   string `json:"token"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var in LoginInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	res, err := h.svc.Login(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	http.SetCookie(w, auth.SessionCookie(res.Token, h.secureCookie))
	transport.WriteJSON(w, http.StatusOK, loginResponse{
		Message: "Login successful",
		User:    res.User,
		Token:   res.Token,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
		return
	}

	if err := h.svc.Logout(r.Context(), id); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	http.SetCookie(w, auth.ClearedCookie(h.secureCookie))
	transport.WriteMessage(w, http.StatusOK, "Logout successful")
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
		return
	}

	u, err := h.svc.Me(r.Context(), userID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, u)
}
