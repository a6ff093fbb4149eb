package notification

import (
	"fmt"
	"strconv"
	"strings"
)

var statusMessages = map[string]string{
	"washing":   "Pesanan Anda sedang dalam proses pencucian",
	"ready":     "Pesanan Anda sudah siap diambil!",
	"picked_up": "Pesanan Anda sudah selesai. Terima kasih!",
}

// formatRupiah renders n with dot thousand separators, e.g. 125000 -> 125.000.
func formatRupiah(n int64) string {
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}

// fanOut expands one order event into the notifications it produces.
func fanOut(kind string, p OrderPayload, adminIDs []string) ([]*Notification, error) {
	var out []*Notification
	add := func(userID, title, message, priority string) {
		uid := userID
		out = append(out, &Notification{
			UserID:   &uid,
			Type:     TypeOrder,
			Title:    title,
			Message:  message,
			Priority: priority,
		})
	}

	switch kind {
	case EventOrderCreated:
		total := formatRupiah(p.Total)
		for _, id := range adminIDs {
			add(id, "Pesanan Baru",
				fmt.Sprintf("Pesanan %s dari %s telah dibuat. Total: Rp %s", p.OrderID, p.CustomerName, total),
				PriorityHigh)
		}
		if p.RecipientID != "" {
			add(p.RecipientID, "Pesanan Berhasil Dibuat",
				fmt.Sprintf("Pesanan %s Anda telah berhasil dibuat. Total: Rp %s. Status: Menunggu diproses.", p.OrderID, total),
				PriorityHigh)
		}

	case EventStatusChanged:
		if p.RecipientID != "" {
			title, priority := "Update Status Pesanan", PriorityMedium
			if p.Status == "ready" {
				title, priority = "Siap Diambil!", PriorityHigh
			}
			msg, ok := statusMessages[p.Status]
			if !ok {
				msg = "Status telah diupdate"
			}
			add(p.RecipientID, title, fmt.Sprintf("Pesanan %s: %s", p.OrderID, msg), priority)
		}
		if p.Status == "picked_up" {
			for _, id := range adminIDs {
				add(id, "Pesanan Selesai",
					fmt.Sprintf("Pesanan %s dari %s telah diselesaikan", p.OrderID, p.CustomerName),
					PriorityLow)
			}
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEventKind, kind)
	}
	return out, nil
}
