package api

import (
	"net/http"
	"strconv"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/logging"

	"github.com/gin-gonic/gin"
)

type CreateBattlePayload struct {
	PartyID     string `json:"party_id"`
	EncounterID string `json:"encounter_id"`
}

// CreateBattle sets up a new battle from a party and an encounter.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattlePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.battles.CreateBattle(req.PartyID, req.EncounterID)
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedCreateBattle)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	resp, err := toBattleResponse(b)
	if err != nil {
		logging.Error("failed to decode created battle", err, logging.Fields{constants.LogFieldBattleUUID: b.BattleUUID})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedCreateBattle})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBattles returns the newest battles as summaries, without decoded
// state.
func (h *BattleHandler) ListBattles(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	battles, err := h.battles.ListBattles(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	summaries := make([]gin.H, 0, len(battles))
	for _, b := range battles {
		summaries = append(summaries, gin.H{
			"battle_uuid":  b.BattleUUID,
			"party_id":     b.PartyID,
			"encounter_id": b.EncounterID,
			"tick":         b.Tick,
			"status":       b.Status,
		})
	}
	c.JSON(http.StatusOK, gin.H{"battles": summaries})
}

// GetBattle returns a battle with its current state.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	b, err := h.battles.GetBattle(c.Param("battleID"))
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedFetchBattle)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	resp, err := toBattleResponse(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattle})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// TickBattle advances the battle by exactly one tick. With ?trace=true the
// response additionally carries the engine's diagnostic trace; the battle
// outcome is identical either way.
func (h *BattleHandler) TickBattle(c *gin.Context) {
	traced := c.Query(constants.QueryTrace) == "true"
	step, err := h.battles.StepBattle(c.Request.Context(), c.Param("battleID"), traced)
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedUpdateBattle)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	resp, err := toBattleResponse(step.Battle)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	body := gin.H{
		"battle": resp,
		"events": step.Events,
		"ended":  step.Ended,
	}
	if step.Trace != nil {
		body["trace"] = step.Trace
	}
	c.JSON(http.StatusOK, body)
}

// RunBattle drives the battle to its terminal status.
func (h *BattleHandler) RunBattle(c *gin.Context) {
	b, err := h.battles.RunToCompletion(c.Request.Context(), c.Param("battleID"))
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedUpdateBattle)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	resp, err := toBattleResponse(b)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedUpdateBattle})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetEvents returns the battle's append-only event log.
func (h *BattleHandler) GetEvents(c *gin.Context) {
	rows, err := h.battles.GetEvents(c.Param("battleID"))
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedFetchEvents)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": rows})
}

// PutInstructions stores the per-combatant AI configuration consumed by
// rule evaluation on subsequent ticks.
func (h *BattleHandler) PutInstructions(c *gin.Context) {
	var instr combat.Instructions
	if err := c.ShouldBindJSON(&instr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	b, err := h.battles.SetInstructions(c.Param("battleID"), instr)
	if err != nil {
		status, msg := errorStatus(err, constants.ErrFailedUpdateBattle)
		c.JSON(status, gin.H{constants.JSONKeyError: msg})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		constants.JSONKeyStatus: string(b.Status),
		"battle_uuid":           b.BattleUUID,
	})
}
