package engine

import "time"

// EventType represents the lifecycle phases of a database operation
type EventType string

const (
	EventOpStart EventType = "op_start"
	EventOpEnd   EventType = "op_end"
	EventOpError EventType = "op_error"
)

// Event represents a lifecycle event of one database operation
type Event struct {
	Type      EventType   // Type of event
	Op        string      // Operation name: insert, select, join, multi_join, aggregate
	OpID      string      // Operation ID for tracing
	Timestamp time.Time   // When the event occurred
	Data      interface{} // Phase-specific data (arguments, result size, error)
}

// Observer interface for event subscribers
type Observer interface {
	OnEvent(event Event)
}
