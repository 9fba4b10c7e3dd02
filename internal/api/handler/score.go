package handler

import (
	"encoding/json"
	"net/http"

	"github.com/flotilla/battleship-go/internal/api/apierr"
	"github.com/flotilla/battleship-go/internal/api/request"
	"github.com/flotilla/battleship-go/internal/api/response"
	"github.com/flotilla/battleship-go/internal/services/score"
)

// ScoreHandler handles score mutation endpoints called by the game server
type ScoreHandler struct {
	scoreService *score.Service
}

// NewScoreHandler creates a new score handler
func NewScoreHandler(scoreService *score.Service) *ScoreHandler {
	return &ScoreHandler{
		scoreService: scoreService,
	}
}

// Update handles POST /api/v1/scores/update
func (h *ScoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req request.ScoreUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("invalid request body"))
		return
	}

	if req.Username == "" {
		apierr.WriteError(w, apierr.NewInvalidRequestError("username is required"))
		return
	}
	if req.ScoreChange == nil {
		apierr.WriteError(w, apierr.NewInvalidRequestError("score_change is required"))
		return
	}

	newScore, err := h.scoreService.ApplyDelta(r.Context(), req.Username, *req.ScoreChange)
	if err != nil {
		apierr.WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoreUpdateResponse{
		Success:     true,
		Username:    req.Username,
		NewScore:    newScore,
		ScoreChange: *req.ScoreChange,
	})
}
