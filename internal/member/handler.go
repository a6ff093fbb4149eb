package member

import (
	"net/http"

	"laundry-be/internal/middleware"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/members", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/points", h.AddPoints)
		r.With(middleware.RequireRole(utils.RoleAdmin)).Delete("/{id}", h.Delete)
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	members, err := h.svc.List(r.Context())
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, members)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in MemberInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Member created successfully",
		"id":      m.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in MemberInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Member updated successfully")
}

func (h *Handler) AddPoints(w http.ResponseWriter, r *http.Request) {
	var in PointsInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	newPoints, err := h.svc.AddPoints(r.Context(), chi.URLParam(r, "id"), in.Points)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]any{
		"message":   "Points updated successfully",
		"newPoints": newPoints,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Member deleted successfully")
}
