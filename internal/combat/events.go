package combat

// EventType tags a combat log record.
type EventType string

const (
	EventActionResolved  EventType = "action-resolved"
	EventActionCancelled EventType = "action-cancelled"
	EventDamage          EventType = "damage"
	EventHealing         EventType = "healing"
	EventStatusApplied   EventType = "status-applied"
	EventStatusExpired   EventType = "status-expired"
	EventKnockout        EventType = "knockout"
	EventTargetLost      EventType = "target-lost"
	EventVictory         EventType = "victory"
	EventDefeat          EventType = "defeat"
)

// Event is an immutable log record. Events are appended to the battle log
// and never mutated or removed.
type Event struct {
	Tick    int        `json:"tick"`
	Type    EventType  `json:"type"`
	Actor   string     `json:"actor,omitempty"`
	Target  string     `json:"target,omitempty"`
	Value   int        `json:"value,omitempty"`
	SkillID string     `json:"skill_id,omitempty"`
	Status  StatusType `json:"status,omitempty"`
	Message string     `json:"message"`
}
