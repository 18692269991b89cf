package web

import (
	"net/http"

	"tourney/models"
)

type createTournamentRequest struct {
	Name      string `json:"name"`
	EntryFee  int64  `json:"entry_fee"`
	PrizePool int64  `json:"prize_pool"`
	// MaxSlots omitted or zero means unlimited capacity
	MaxSlots int32 `json:"max_slots"`
}

type capacityResponse struct {
	Unlimited bool  `json:"unlimited"`
	Remaining int32 `json:"remaining,omitempty"`
}

func capacityJSON(c models.Capacity) capacityResponse {
	return capacityResponse{Unlimited: c.Unlimited, Remaining: c.Remaining}
}

type tournamentResponse struct {
	ID               int64                   `json:"id"`
	Name             string                  `json:"name"`
	EntryFee         int64                   `json:"entry_fee"`
	PrizePool        int64                   `json:"prize_pool"`
	Capacity         capacityResponse        `json:"capacity"`
	Status           models.TournamentStatus `json:"status"`
	PrizeDistributed bool                    `json:"prize_distributed"`
}

func tournamentJSON(t *models.Tournament) tournamentResponse {
	return tournamentResponse{
		ID:               t.ID,
		Name:             t.Name,
		EntryFee:         t.EntryFee,
		PrizePool:        t.PrizePool,
		Capacity:         capacityJSON(t.Capacity),
		Status:           t.Status,
		PrizeDistributed: t.PrizeDistributed,
	}
}

// CreateTournament handles POST /tournaments
func (h *Handler) CreateTournament(w http.ResponseWriter, r *http.Request) {
	var req createTournamentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	capacity := models.UnlimitedCapacity()
	if req.MaxSlots > 0 {
		capacity = models.LimitedCapacity(req.MaxSlots)
	}

	tournament, err := h.tournaments.CreateTournament(r.Context(), req.Name, req.EntryFee, req.PrizePool, capacity)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, tournamentJSON(tournament))
}

// ListTournaments handles GET /tournaments?status=open
func (h *Handler) ListTournaments(w http.ResponseWriter, r *http.Request) {
	var status *models.TournamentStatus
	if s := r.URL.Query().Get("status"); s != "" {
		parsed := models.TournamentStatus(s)
		status = &parsed
	}

	tournaments, err := h.tournaments.ListTournaments(r.Context(), status)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	response := make([]tournamentResponse, 0, len(tournaments))
	for _, t := range tournaments {
		response = append(response, tournamentJSON(t))
	}
	respondJSON(w, http.StatusOK, response)
}

// GetTournament handles GET /tournaments/{id}
func (h *Handler) GetTournament(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	tournament, err := h.tournaments.GetTournament(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, tournamentJSON(tournament))
}

// ListParticipants handles GET /tournaments/{id}/participants
func (h *Handler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	participants, err := h.tournaments.ListParticipants(r.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, participants)
}

type registerRequest struct {
	EntryFee    int64  `json:"entry_fee"`
	DisplayName string `json:"display_name"`
}

// Register handles POST /tournaments/{id}/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.registration.RegisterForTournament(r.Context(), id, userID, req.EntryFee, req.DisplayName)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"tournament_id":      result.TournamentID,
		"user_id":            result.UserID,
		"entry_fee_paid":     result.EntryFeePaid,
		"new_balance":        result.NewBalance,
		"remaining_capacity": capacityJSON(result.RemainingCapacity),
	})
}

type distributeRequest struct {
	First  int64 `json:"first"`
	Second int64 `json:"second"`
	Third  int64 `json:"third"`
}

// DistributePrizes handles POST /tournaments/{id}/distribute
func (h *Handler) DistributePrizes(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req distributeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.prizes.DistributePrizes(r.Context(), id, models.Winners{
		First:  req.First,
		Second: req.Second,
		Third:  req.Third,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
