package stats

import (
	"bytes"
	"fmt"
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
	r.Route("/stats", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/revenue", h.Revenue)
		r.With(middleware.RequireRole(utils.RoleAdmin)).Get("/orders/export", h.ExportOrders)
	})
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) Revenue(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	data, err := h.svc.Revenue(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, data)
}

func (h *Handler) ExportOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, end := q.Get("startDate"), q.Get("endDate")

	// Buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := h.svc.ExportOrders(r.Context(), &buf, start, end); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="orders-%s-%s.csv"`, start, end))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
