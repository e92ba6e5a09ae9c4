package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"chequetrack/internal/cheque"
	httpauth "chequetrack/internal/http/auth"
	"chequetrack/internal/importer"
	"chequetrack/internal/party"
)

type Handler struct {
	importSvc *importer.Service
	chequeSvc *cheque.Service
	partySvc  *party.Service
}

func NewHandler(importSvc *importer.Service, chequeSvc *cheque.Service, partySvc *party.Service) *Handler {
	return &Handler{
		importSvc: importSvc,
		chequeSvc: chequeSvc,
		partySvc:  partySvc,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/confirm", h.confirmImport)
}

type chequeResponse struct {
	ID           uuid.UUID       `json:"id"`
	PartyName    string          `json:"party_name"`
	ChequeNumber string          `json:"cheque_number"`
	BankName     string          `json:"bank_name"`
	Amount       decimal.Decimal `json:"amount"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	Status       cheque.Status   `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
}

type importSuccessResponse struct {
	Imported int              `json:"imported"`
	Cheques  []chequeResponse `json:"cheques"`
}

type createParamsDTO struct {
	PartyName    string          `json:"party_name"`
	ChequeNumber string          `json:"cheque_number"`
	BankName     string          `json:"bank_name"`
	Amount       decimal.Decimal `json:"amount"`
	IssueDate    time.Time       `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
}

type conflictDTO struct {
	Incoming createParamsDTO `json:"incoming"`
	Existing chequeResponse  `json:"existing"`
}

type importConflictResponse struct {
	New       []createParamsDTO `json:"new"`
	Conflicts []conflictDTO     `json:"conflicts"`
}

type confirmRequest struct {
	Params []createParamsDTO `json:"params"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	format := importer.Format(r.FormValue("format"))
	if format == "" {
		http.Error(w, "format field is required", http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	params, err := h.importSvc.Import(format, file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ownerID := httpauth.OwnerID(r.Context())

	for i, p := range params {
		suggested, err := h.partySvc.Suggest(r.Context(), ownerID, p.PartyName)
		if err != nil {
			continue
		}

		if suggested == "" {
			continue
		}

		params[i].PartyName = suggested
	}

	result, err := h.chequeSvc.ImportBatch(r.Context(), ownerID, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if len(result.Conflicts) > 0 {
		resp := importConflictResponse{
			New:       make([]createParamsDTO, 0, len(result.New)),
			Conflicts: make([]conflictDTO, 0, len(result.Conflicts)),
		}
		for _, p := range result.New {
			resp.New = append(resp.New, toParamsDTO(p))
		}

		for _, c := range result.Conflicts {
			resp.Conflicts = append(resp.Conflicts, conflictDTO{
				Incoming: toParamsDTO(c.Incoming),
				Existing: toChequeResponse(c.Existing),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(result.Imported)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) confirmImport(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	params := make([]cheque.CreateParams, 0, len(req.Params))
	for _, p := range req.Params {
		params = append(params, cheque.CreateParams{
			PartyName:    p.PartyName,
			ChequeNumber: p.ChequeNumber,
			BankName:     p.BankName,
			Amount:       p.Amount,
			IssueDate:    p.IssueDate,
			DueDate:      p.DueDate,
			Status:       cheque.StatusPending,
		})
	}

	cheques, err := h.chequeSvc.CreateBatch(r.Context(), httpauth.OwnerID(r.Context()), params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSuccessResponse(cheques)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func toSuccessResponse(cheques []*cheque.Cheque) importSuccessResponse {
	responses := make([]chequeResponse, 0, len(cheques))
	for _, c := range cheques {
		responses = append(responses, toChequeResponse(c))
	}

	return importSuccessResponse{
		Imported: len(cheques),
		Cheques:  responses,
	}
}

func toChequeResponse(c *cheque.Cheque) chequeResponse {
	return chequeResponse{
		ID:           c.ID,
		PartyName:    c.PartyName,
		ChequeNumber: c.ChequeNumber,
		BankName:     c.BankName,
		Amount:       c.Amount,
		IssueDate:    c.IssueDate,
		DueDate:      c.DueDate,
		Status:       c.Status,
		CreatedAt:    c.CreatedAt,
	}
}

func toParamsDTO(p cheque.CreateParams) createParamsDTO {
	return createParamsDTO{
		PartyName:    p.PartyName,
		ChequeNumber: p.ChequeNumber,
		BankName:     p.BankName,
		Amount:       p.Amount,
		IssueDate:    p.IssueDate,
		DueDate:      p.DueDate,
	}
}
