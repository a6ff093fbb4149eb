package catalog

import (
	"net/http"

	"laundry-be/internal/middleware"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc ServiceCatalog
}

func NewHandler(svc ServiceCatalog) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts /services. The caller must already authenticate.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/services", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(utils.RoleAdmin))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.svc.List(r.Context())
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, services)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	svc, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, svc)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in ServiceInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	svc, err := h.svc.Create(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Service created successfully",
		"id":      svc.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in ServiceInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Service updated successfully")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Service deleted successfully")
}
