package events

// EventType represents the type of an event in the system.
type EventType string

// Event type constants
const (
	// Ledger entry outcome events
	EventTypeEntryCompleted EventType = "Ledger.EntryCompleted"
	EventTypeEntryFailed    EventType = "Ledger.EntryFailed"
)

func (t EventType) String() string {
	return string(t)
}
