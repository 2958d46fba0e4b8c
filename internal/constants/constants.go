package constants

// Centralized constants for env keys, routes and API strings.
const (
	// Environment variable keys
	EnvConfigPath   = "TUBABA_CONFIG"
	EnvDBPath       = "TUBABA_DB"
	EnvDataDir      = "TUBABA_DATA"
	EnvDebug        = "TUBABA_DEBUG"
	EnvOTLPEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"

	// HTTP headers and content types
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"

	// Defaults used when the config file omits a value
	DefaultServerAddress = ":8080"
	DefaultConfigPath    = "./data/tubaba_config.json"
	DefaultDBPath        = "./data/tubaba.db"
	DefaultDataDir       = "./data"
)

// Routes used by the backend router
const (
	RouteAPIPrefix          = "/api"
	RouteBattles            = "/battles"
	RouteBattleByID         = "/battles/:battleID"
	RouteBattleTick         = "/battles/:battleID/tick"
	RouteBattleRun          = "/battles/:battleID/run"
	RouteBattleEvents       = "/battles/:battleID/events"
	RouteBattleInstructions = "/battles/:battleID/instructions"
	RouteRuns               = "/runs"
	RouteRunByID            = "/runs/:runID"
	RouteRunAdvance         = "/runs/:runID/advance"
	RouteEncounters         = "/encounters"
	RouteParties            = "/parties"
	RouteSkills             = "/skills"
	RouteVersion            = "/version"
)

// Query parameters
const (
	QueryTrace = "trace"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest      = "Invalid request"
	ErrInvalidBattleID     = "Invalid battle ID"
	ErrBattleNotFound      = "Battle not found"
	ErrBattleFinished      = "Battle already reached a terminal status"
	ErrRunNotFound         = "Run not found"
	ErrRunFinished         = "Run already reached a terminal status"
	ErrRunBattleUnresolved = "Current stage battle has not finished"
	ErrUnknownParty        = "Unknown party"
	ErrUnknownEncounter    = "Unknown encounter"
	ErrUnknownSkill        = "Unknown skill"
	ErrFailedCreateBattle  = "Failed to create battle"
	ErrFailedUpdateBattle  = "Failed to update battle"
	ErrFailedFetchBattle   = "Failed to fetch battle"
	ErrFailedFetchEvents   = "Failed to fetch events"
	ErrFailedCreateRun     = "Failed to create run"
	ErrFailedUpdateRun     = "Failed to update run"
	ErrFailedFetchRun      = "Failed to fetch run"
)

// Logging field names
const (
	LogFieldBattleUUID = "battle_uuid"
	LogFieldRunUUID    = "run_uuid"
	LogFieldParty      = "party_id"
	LogFieldEncounter  = "encounter_id"
	LogFieldTick       = "tick"
	LogFieldStatus     = "status"
	LogFieldStage      = "stage"
	LogFieldAddr       = "addr"
)
