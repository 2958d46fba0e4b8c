package game

// RunStatus represents the lifecycle of a progression run.
// Using constants avoids typos and keeps references consistent.
type RunStatus string

const (
	RunActive   RunStatus = "active"
	RunComplete RunStatus = "complete"
	RunFailed   RunStatus = "failed"
)
