package core

// Event represents an engine event
type Event struct {
	Type    EventType
	Frame   uint64
	Payload interface{}
}

type EventType uint16

const (
	EvtCommandApplied EventType = iota
	EvtCommandRejected
	EvtPlayerMoved
	EvtArrived
	EvtInsufficientStamina
	EvtRangeShown
	EvtPathSelected
	EvtSelectionCleared
	EvtSense
	EvtModeChanged
	EvtMessage
)

func (t EventType) String() string {
	switch t {
	case EvtCommandApplied:
		return "command_applied"
	case EvtCommandRejected:
		return "command_rejected"
	case EvtPlayerMoved:
		return "player_moved"
	case EvtArrived:
		return "arrived"
	case EvtInsufficientStamina:
		return "insufficient_stamina"
	case EvtRangeShown:
		return "range_shown"
	case EvtPathSelected:
		return "path_selected"
	case EvtSelectionCleared:
		return "selection_cleared"
	case EvtSense:
		return "sense"
	case EvtModeChanged:
		return "mode_changed"
	case EvtMessage:
		return "message"
	}
	return "unknown"
}

// EventBus dispatches events to listeners
type EventBus struct {
	listeners map[EventType][]EventHandler
	queue     []Event
}

type EventHandler func(e Event)

func NewEventBus() *EventBus {
	return &EventBus{
		listeners: make(map[EventType][]EventHandler),
	}
}

// On registers a handler for an event type
func (eb *EventBus) On(t EventType, h EventHandler) {
	eb.listeners[t] = append(eb.listeners[t], h)
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Pending returns the number of queued events
func (eb *EventBus) Pending() int {
	return len(eb.queue)
}

// Dispatch processes all queued events. Handlers may emit further events;
// those are delivered in the same call.
func (eb *EventBus) Dispatch() {
	for i := 0; i < len(eb.queue); i++ {
		e := eb.queue[i]
		for _, h := range eb.listeners[e.Type] {
			h(e)
		}
	}
	eb.queue = eb.queue[:0]
}
