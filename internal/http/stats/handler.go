package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"chequetrack/internal/cheque"
	httpauth "chequetrack/internal/http/auth"
	"chequetrack/internal/stats"
)

type Handler struct {
	cheques *cheque.Service
}

func NewHandler(chequeService *cheque.Service) *Handler {
	return &Handler{cheques: chequeService}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.dashboard)
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	cheques, err := h.cheques.List(r.Context(), httpauth.OwnerID(r.Context()), cheque.ListFilter{})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dashboard := stats.Compute(cheques, time.Now())

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(dashboard); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
