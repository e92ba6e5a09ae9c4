package followup

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"chequetrack/internal/cheque"
	"chequetrack/internal/followup"
	httpauth "chequetrack/internal/http/auth"
)

type Handler struct {
	svc     *followup.Service
	cheques *cheque.Service
}

func NewHandler(svc *followup.Service, chequeService *cheque.Service) *Handler {
	return &Handler{svc: svc, cheques: chequeService}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Delete("/{id}", h.delete)
}

type createFollowUpRequest struct {
	ChequeID         uuid.UUID  `json:"cheque_id"`
	ContactDate      time.Time  `json:"contact_date"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	ActionTaken      *string    `json:"action_taken,omitempty"`
}

type followUpResponse struct {
	ID               uuid.UUID  `json:"id"`
	ChequeID         uuid.UUID  `json:"cheque_id"`
	ContactDate      time.Time  `json:"contact_date"`
	NextFollowUpDate *time.Time `json:"next_follow_up_date,omitempty"`
	Notes            *string    `json:"notes,omitempty"`
	ActionTaken      *string    `json:"action_taken,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func toResponse(f *followup.FollowUp) followUpResponse {
	return followUpResponse{
		ID:               f.ID,
		ChequeID:         f.ChequeID,
		ContactDate:      f.ContactDate,
		NextFollowUpDate: f.NextFollowUpDate,
		Notes:            f.Notes,
		ActionTaken:      f.ActionTaken,
		CreatedAt:        f.CreatedAt,
	}
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createFollowUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if !h.ownsCheque(w, r, req.ChequeID) {
		return
	}

	f, err := h.svc.Create(r.Context(), followup.CreateParams{
		OwnerID:          httpauth.OwnerID(r.Context()),
		ChequeID:         req.ChequeID,
		ContactDate:      req.ContactDate,
		NextFollowUpDate: req.NextFollowUpDate,
		Notes:            req.Notes,
		ActionTaken:      req.ActionTaken,
	})
	if err != nil {
		var verr followup.ValidationError
		if errors.As(err, &verr) {
			http.Error(w, verr.Error(), http.StatusBadRequest)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(f)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	chequeID, err := uuid.Parse(r.URL.Query().Get("cheque_id"))
	if err != nil {
		http.Error(w, "cheque_id query parameter is required", http.StatusBadRequest)
		return
	}

	if !h.ownsCheque(w, r, chequeID) {
		return
	}

	followUps, err := h.svc.ListForCheque(r.Context(), chequeID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := make([]followUpResponse, len(followUps))
	for i, f := range followUps {
		resp[i] = toResponse(f)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id, httpauth.OwnerID(r.Context())); err != nil {
		if errors.Is(err, followup.ErrNotFound) {
			http.Error(w, "follow-up not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ownsCheque(w http.ResponseWriter, r *http.Request, chequeID uuid.UUID) bool {
	c, err := h.cheques.Get(r.Context(), chequeID)
	if err != nil || c.OwnerID != httpauth.OwnerID(r.Context()) {
		http.Error(w, "cheque not found", http.StatusNotFound)
		return false
	}

	return true
}
