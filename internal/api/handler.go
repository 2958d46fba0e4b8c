package api

import (
	"errors"
	"net/http"

	"github.com/etrusk/tubaba/internal/combat"
	"github.com/etrusk/tubaba/internal/constants"
	"github.com/etrusk/tubaba/internal/game"
	"github.com/etrusk/tubaba/internal/service"
)

// BattleHandler groups all battle- and run-related HTTP handlers.
type BattleHandler struct {
	battles *service.BattleService
	runs    *service.RunService
}

// NewBattleHandler creates a new BattleHandler over the given services.
func NewBattleHandler(battles *service.BattleService, runs *service.RunService) *BattleHandler {
	return &BattleHandler{battles: battles, runs: runs}
}

// battleResponse is a battle row with its state decoded for the client.
type battleResponse struct {
	BattleUUID  string              `json:"battle_uuid"`
	PartyID     string              `json:"party_id"`
	EncounterID string              `json:"encounter_id"`
	RunUUID     string              `json:"run_uuid,omitempty"`
	Tick        int                 `json:"tick"`
	Status      combat.BattleStatus `json:"status"`
	State       combat.CombatState  `json:"state"`
}

func toBattleResponse(b *game.Battle) (battleResponse, error) {
	st, err := b.State()
	if err != nil {
		return battleResponse{}, err
	}
	return battleResponse{
		BattleUUID:  b.BattleUUID,
		PartyID:     b.PartyID,
		EncounterID: b.EncounterID,
		RunUUID:     b.RunUUID,
		Tick:        b.Tick,
		Status:      b.Status,
		State:       st,
	}, nil
}

// errorStatus maps service sentinels and engine errors to HTTP responses.
// Anything unrecognized falls through to 500 with the handler's message.
func errorStatus(err error, fallback string) (int, string) {
	var unknownSkill *combat.UnknownSkillError
	switch {
	case errors.Is(err, service.ErrBattleNotFound):
		return http.StatusNotFound, constants.ErrBattleNotFound
	case errors.Is(err, service.ErrBattleFinished):
		return http.StatusConflict, constants.ErrBattleFinished
	case errors.Is(err, service.ErrRunNotFound):
		return http.StatusNotFound, constants.ErrRunNotFound
	case errors.Is(err, service.ErrRunFinished):
		return http.StatusConflict, constants.ErrRunFinished
	case errors.Is(err, service.ErrRunBattleUnresolved):
		return http.StatusConflict, constants.ErrRunBattleUnresolved
	case errors.Is(err, service.ErrUnknownParty):
		return http.StatusBadRequest, constants.ErrUnknownParty
	case errors.Is(err, service.ErrUnknownEncounter):
		return http.StatusBadRequest, constants.ErrUnknownEncounter
	case errors.Is(err, service.ErrInvalidInstructions):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &unknownSkill):
		return http.StatusUnprocessableEntity, err.Error()
	}
	return http.StatusInternalServerError, fallback
}
