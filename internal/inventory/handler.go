package inventory

import (
	"net/http"

	"laundry-be/internal/middleware"
	"laundry-be/internal/transport"
	"laundry-be/internal/utils"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	svc       Service
	materials MaterialService
}

func NewHandler(svc Service, materials MaterialService) *Handler {
	return &Handler{svc: svc, materials: materials}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/low-stock", h.LowStock)
		r.Get("/{id}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(utils.RoleAdmin))
			r.Post("/", h.Create)
			r.Put("/{id}", h.Update)
			r.Patch("/{id}/stock", h.AdjustStock)
			r.Delete("/{id}", h.Delete)
		})
	})

	r.Route("/service-materials", func(r chi.Router) {
		r.Get("/", h.ListMaterials)
		r.Get("/service/{serviceId}", h.ListMaterialsForService)
		r.Get("/{id}", h.GetMaterial)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(utils.RoleAdmin))
			r.Post("/", h.CreateMaterial)
			r.Put("/{id}", h.UpdateMaterial)
			r.Delete("/{id}", h.DeleteMaterial)
		})
	})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.LowStock(r.Context())
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	it, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, it)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var in ItemInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	it, err := h.svc.Create(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Inventory item created successfully",
		"id":      it.ID,
	})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var in ItemInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Inventory item updated successfully")
}

func (h *Handler) AdjustStock(w http.ResponseWriter, r *http.Request) {
	var in StockInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	newStock, err := h.svc.AdjustStock(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]any{
		"message":  "Stock updated successfully",
		"newStock": newStock,
	})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Inventory item deleted successfully")
}

func (h *Handler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	h.writeMaterials(w, r, r.URL.Query().Get("serviceId"))
}

func (h *Handler) ListMaterialsForService(w http.ResponseWriter, r *http.Request) {
	h.writeMaterials(w, r, chi.URLParam(r, "serviceId"))
}

func (h *Handler) writeMaterials(w http.ResponseWriter, r *http.Request, serviceID string) {
	list, err := h.materials.List(r.Context(), serviceID)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	m, err := h.materials.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, m)
}

func (h *Handler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var in MaterialInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	m, err := h.materials.Create(r.Context(), in)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusCreated, map[string]string{
		"message": "Service material created successfully",
		"id":      m.ID,
	})
}

func (h *Handler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	var in MaterialInput
	if err := transport.DecodeJSON(r, &in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	if err := h.materials.Update(r.Context(), chi.URLParam(r, "id"), in); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Service material updated successfully")
}

func (h *Handler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	if err := h.materials.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Service material deleted successfully")
}
