package notification

import (
	"net/http"

	"laundry-be/internal/apperr"
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
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/unread-count", h.UnreadCount)
		r.Patch("/mark-all-read", h.MarkAllRead)
		r.Patch("/{id}/read", h.MarkRead)
		r.Delete("/{id}", h.Delete)
	})
}

func viewer(w http.ResponseWriter, r *http.Request) (utils.Identity, bool) {
	id, ok := utils.GetIdentityFromContext(r.Context())
	if !ok {
		transport.WriteError(r.Context(), w, apperr.ErrUnauthorized)
	}
	return id, ok
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	list, err := h.svc.List(r.Context(), v)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, list)
}

func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	count, err := h.svc.UnreadCount(r.Context(), v)
	if err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), v, chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Notification marked as read")
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkAllRead(r.Context(), v); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "All notifications marked as read")
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	v, ok := viewer(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), v, chi.URLParam(r, "id")); err != nil {
		transport.WriteError(r.Context(), w, err)
		return
	}
	transport.WriteMessage(w, http.StatusOK, "Notification deleted")
}
