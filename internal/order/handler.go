package order

import (
	"net/http"

	"laundry-be/internal/apperr"
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
	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Patch("/{id}/status", h.UpdateStatus)
		r.Get("/{id}/materials", h.Materials)
		r.With(middleware.RequireRole(utils.RoleAdmin)).Delete("/{id}", h.Delete)
	})
}

func identity(w http.ResponseWriter, r *http.Request) (utils.Identity, bool) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer, ok := identity(w, r)
	if !ok {
		return
	}
	orders, err := h.svc.List(r.Context(), viewer, r.URL.Query().Get("status"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	viewer, ok := identity(w, r)
	if !ok {
		return
	}
	o, err := h.svc.Get(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := identity(w, r)
	if !ok {
		return
	}
	var in OrderInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	o, err := h.svc.Create(r.Context(), actor, in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Order created successfully",
		"id":      o.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	viewer, ok := identity(w, r)
	if !ok {
		return
	}
	var in OrderInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.svc.Update(r.Context(), viewer, chi.URLParam(r, "id"), in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Order updated successfully")
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	viewer, ok := identity(w, r)
	if !ok {
		return
	}
	var in StatusInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), viewer, chi.URLParam(r, "id"), in.Status); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Order status updated successfully")
}

func (h *Handler) Materials(w http.ResponseWriter, r *http.Request) {
	viewer, ok := identity(w, r)
	if !ok {
		return
	}
	estimates, err := h.svc.EstimateMaterials(r.Context(), viewer, chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, estimates)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Order deleted successfully")
}
