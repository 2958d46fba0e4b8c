package service

import "errors"

var (
	ErrBattleNotFound      = errors.New("battle not found")
	ErrBattleFinished      = errors.New("battle already reached a terminal status")
	ErrRunNotFound         = errors.New("run not found")
	ErrRunFinished         = errors.New("run already reached a terminal status")
	ErrRunBattleUnresolved = errors.New("current stage battle has not finished")
	ErrUnknownParty        = errors.New("unknown party")
	ErrUnknownEncounter    = errors.New("unknown encounter")
	ErrInvalidInstructions = errors.New("invalid instructions")
)
