package party

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	httpauth "chequetrack/internal/http/auth"
	"chequetrack/internal/party"
)

type Handler struct {
	svc *party.Service
}

func NewHandler(svc *party.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/suggest", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	RawName       string `json:"raw_name"`
	PreferredName string `json:"preferred_name"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	rawName := r.URL.Query().Get("raw_name")
	if rawName == "" {
		http.Error(w, "raw_name query parameter is required", http.StatusBadRequest)
		return
	}

	preferred, err := h.svc.Suggest(r.Context(), httpauth.OwnerID(r.Context()), rawName)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(suggestResponse{
		RawName:       rawName,
		PreferredName: preferred,
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type learnRequest struct {
	RawPattern    string `json:"raw_pattern"`
	PreferredName string `json:"preferred_name"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.RawPattern == "" || req.PreferredName == "" {
		http.Error(w, "raw_pattern and preferred_name are required", http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), httpauth.OwnerID(r.Context()), req.RawPattern, req.PreferredName); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
}
