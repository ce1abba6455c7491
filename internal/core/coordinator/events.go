package coordinator

import (
	"time"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// EventType defines the type of coordinator event.
type EventType string

const (
	EventModeChange      EventType = "mode_change"
	EventExecutionChange EventType = "execution_change"
	EventSessionChange   EventType = "session_change"
	EventAssertError     EventType = "assert_error"
)

// Event carries a coordinator state snapshot for observers.
type Event struct {
	Type      EventType
	Mode      model.Mode
	State     model.ExecutionState
	DisplayOn bool
	Session   model.SessionState
	Message   string
	At        time.Time
}
