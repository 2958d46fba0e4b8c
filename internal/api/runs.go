package api

import (
	"net/http"

	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/game"

	"github.com/gin-gonic/gin"
)

type CreateRunPayload struct {
	PartyID string `json:"party_id"`
}

// runResponse pairs a run with its current stage battle, when one exists.
func runResponse(run *game.Run, battle *battleResponse) gin.H {
	body := gin.H{"run": run}
	if battle != nil {
		body["battle"] = *battle
	}
	return body
}

// CreateRun starts a progression run for a party, opening the first stage
// battle.
func (h *BattleHandler) CreateRun(c *gin.Context) {
	var req CreateRunPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	run, b, err := h.runs.CreateRun(req.PartyID)
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedCreateRun)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	resp, err := toBattleResponse(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateRun})
		return
	}
	c.JSON(http.StatusCreated, runResponse(run, &resp))
}

// GetRun returns a run's progression state.
func (h *BattleHandler) GetRun(c *gin.Context) {
	run, err := h.runs.GetRun(c.Param("runID"))
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedFetchRun)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(http.StatusOK, runResponse(run, nil))
}

// AdvanceRun moves the run to its next stage once the current battle has
// reached a terminal status.
func (h *BattleHandler) AdvanceRun(c *gin.Context) {
	run, next, err := h.runs.AdvanceRun(c.Param("runID"))
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedUpdateRun)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	if next == nil {
		c.JSON(http.StatusOK, runResponse(run, nil))
		return
	}
	resp, err := toBattleResponse(next)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateRun})
		return
	}
	c.JSON(http.StatusOK, runResponse(run, &resp))
}
