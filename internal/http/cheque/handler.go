package cheque

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chequetrack/internal/cheque"
	httpauth "chequetrack/internal/http/auth"
)

type Handler struct {
	svc *cheque.Service
}

func NewHandler(svc *cheque.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
	r.Post("/{id}/deposit", h.deposit)
	r.Post("/{id}/clear", h.clear)
	r.Post("/{id}/bounce", h.bounce)
	r.Patch("/{id}/recovery", h.updateRecovery)
}

type createChequeRequest struct {
	PartyName    string          `json:"party_name"`
	ChequeNumber string          `json:"cheque_number"`
	BankName     string          `json:"bank_name"`
	Amount       decimal.Decimal `json:"amount"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createChequeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), cheque.CreateParams{
		OwnerID:      httpauth.OwnerID(r.Context()),
		PartyName:    req.PartyName,
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		Amount:       req.Amount,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := cheque.ListFilter{
		Search: r.URL.Query().Get("search"),
	}

	if s := r.URL.Query().Get("status"); s != "" {
		filter.Status = new(cheque.Status(s))
	}

	cheques, err := h.svc.List(r.Context(), httpauth.OwnerID(r.Context()), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(cheques)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateChequeRequest struct {
	PartyName    *string          `json:"party_name,omitempty"`
	ChequeNumber *string          `json:"cheque_number,omitempty"`
	BankName     *string          `json:"bank_name,omitempty"`
	Amount       *decimal.Decimal `json:"amount,omitempty"`
	IssueDate    *time.Time       `json:"issue_date,omitempty"`
	DueDate      *time.Time       `json:"due_date,omitempty"`
	Status       *cheque.Status   `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req updateChequeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.Update(r.Context(), c.ID, cheque.UpdateParams{
		PartyName:    req.PartyName,
		ChequeNumber: req.ChequeNumber,
		BankName:     req.BankName,
		Amount:       req.Amount,
		IssueDate:    req.IssueDate,
		DueDate:      req.DueDate,
		Status:       req.Status,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), c.ID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) deposit(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, h.svc.Deposit)
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	h.command(w, r, h.svc.Clear)
}

func (h *Handler) command(w http.ResponseWriter, r *http.Request, fn func(context.Context, uuid.UUID) (*cheque.Cheque, error)) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	updated, err := fn(r.Context(), c.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type bounceRequest struct {
	Reason  cheque.BounceReason `json:"reason"`
	Remarks string              `json:"remarks,omitempty"`
}

func (h *Handler) bounce(w http.ResponseWriter, r *http.Request) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req bounceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.MarkBounced(r.Context(), c.ID, req.Reason, req.Remarks)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type recoveryRequest struct {
	RecoveryStatus cheque.RecoveryStatus `json:"recovery_status"`
}

func (h *Handler) updateRecovery(w http.ResponseWriter, r *http.Request) {
	c, ok := h.owned(w, r)
	if !ok {
		return
	}

	var req recoveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	updated, err := h.svc.UpdateRecovery(r.Context(), c.ID, req.RecoveryStatus)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(updated)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// owned loads the cheque from the URL and verifies it belongs to the
// authenticated owner. Cheques of other owners read as not found.
func (h *Handler) owned(w http.ResponseWriter, r *http.Request) (*cheque.Cheque, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return nil, false
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return nil, false
	}

	if c.OwnerID != httpauth.OwnerID(r.Context()) {
		http.Error(w, "cheque not found", http.StatusNotFound)
		return nil, false
	}

	return c, true
}

func writeError(w http.ResponseWriter, err error) {
	var verr cheque.ValidationError

	switch {
	case errors.As(err, &verr):
		http.Error(w, verr.Error(), http.StatusBadRequest)
	case errors.Is(err, cheque.ErrNotFound):
		http.Error(w, "cheque not found", http.StatusNotFound)
	case errors.Is(err, cheque.ErrInvalidTransition), errors.Is(err, cheque.ErrNotBounced):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
