package authoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adaptest/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// DraftItems handles POST /banks/{id}/draft.
func (h *Handler) DraftItems(w http.ResponseWriter, r *http.Request) {
	bankID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid bank ID"})
		return
	}

	var req models.DraftItemsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	req.BankID = bankID

	if !models.ValidDifficultyBands[req.Band] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "band must be 'easy', 'medium', or 'hard'"})
		return
	}

	resp, err := h.service.DraftItems(r.Context(), req)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: "Model returned malformed drafts: " + err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Drafting failed: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
