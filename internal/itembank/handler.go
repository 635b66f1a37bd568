package itembank

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/adaptest/backend/internal/irt"
	"github.com/adaptest/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateBank(w http.ResponseWriter, r *http.Request) {
	var req models.CreateBankRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "name is required"})
		return
	}
	if len(req.Items) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "items matrix is required"})
		return
	}

	resp, err := h.service.CreateBank(req)
	if err != nil {
		writeModelError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ListBanks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := intQueryParam(query, "limit", 20)
	offset := intQueryParam(query, "offset", 0)

	banks, err := h.service.ListBanks(limit, offset)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list banks"})
		return
	}

	if banks == nil {
		banks = []models.ItemBank{}
	}
	writeJSON(w, http.StatusOK, banks)
}

func (h *Handler) GetBank(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	bank, err := h.service.GetBank(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Bank not found"})
		return
	}

	writeJSON(w, http.StatusOK, bank)
}

func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	items, err := h.service.GetItems(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load items"})
		return
	}

	if items == nil {
		items = []models.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}

// GetMetrics serves test information, standard error and reliability for a
// bank at ?theta= (default 0).
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	theta, err := floatQueryParam(r.URL.Query(), "theta", 0)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "theta must be a number"})
		return
	}

	metrics, err := h.service.Metrics(id, theta)
	if err != nil {
		writeModelError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, metrics)
}

func (h *Handler) GetItemCurve(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	query := r.URL.Query()
	from, err := floatQueryParam(query, "from", -4)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "from must be a number"})
		return
	}
	to, err := floatQueryParam(query, "to", 4)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "to must be a number"})
		return
	}
	points := intQueryParam(query, "points", 41)

	curve, err := h.service.ItemCurve(id, from, to, points)
	if err != nil {
		writeModelError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, curve)
}

// writeModelError maps the core's error taxonomy onto HTTP statuses:
// validation problems are the caller's fault, numeric singularities are
// unprocessable inputs, anything else is a server error.
func writeModelError(w http.ResponseWriter, err error) {
	var ve *irt.ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}
	var de *irt.DomainError
	var oe *irt.NumericOverflowError
	if errors.As(err, &de) || errors.As(err, &oe) {
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid ID"})
		return 0, false
	}
	return id, true
}

func intQueryParam(query url.Values, name string, fallback int) int {
	if v := query.Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func floatQueryParam(query url.Values, name string, fallback float64) (float64, error) {
	v := query.Get(name)
	if v == "" {
		return fallback, nil
	}
	return strconv.ParseFloat(v, 64)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
