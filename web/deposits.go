package web

import (
	"net/http"
	"strconv"
)

type submitDepositRequest struct {
	Amount      int64  `json:"amount"`
	ExternalRef string `json:"external_ref"`
}

// SubmitDeposit handles POST /deposits
func (h *Handler) SubmitDeposit(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req submitDepositRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	request, err := h.deposits.Submit(r.Context(), userID, req.Amount, req.ExternalRef)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, request)
}

// ListMyDeposits handles GET /deposits?limit=50
func (h *Handler) ListMyDeposits(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		parsed, err := strconv.Atoi(s)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	requests, err := h.deposits.ListByUser(r.Context(), userID, limit)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// ListPendingDeposits handles GET /admin/deposits/pending
func (h *Handler) ListPendingDeposits(w http.ResponseWriter, r *http.Request) {
	requests, err := h.deposits.ListPending(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, requests)
}

// ApproveDeposit handles POST /admin/deposits/{id}/approve
func (h *Handler) ApproveDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	request, err := h.deposits.Approve(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}

// RejectDeposit handles POST /admin/deposits/{id}/reject
func (h *Handler) RejectDeposit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	request, err := h.deposits.Reject(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, request)
}
