package glaze

import "fmt"

// EventKind identifies an overlay lifecycle signal.
type EventKind int

const (
	EventResized EventKind = iota
	EventMoved
	EventCloseRequested
	EventFocused
	EventBlurred
	EventOccluded
	EventRestored
	EventMouseEnter
	EventMouseLeave
	EventDestroyed
)

func (k EventKind) String() string {
	switch k {
	case EventResized:
		return "resized"
	case EventMoved:
		return "moved"
	case EventCloseRequested:
		return "close-requested"
	case EventFocused:
		return "focused"
	case EventBlurred:
		return "blurred"
	case EventOccluded:
		return "occluded"
	case EventRestored:
		return "restored"
	case EventMouseEnter:
		return "mouse-enter"
	case EventMouseLeave:
		return "mouse-leave"
	case EventDestroyed:
		return "destroyed"
	}
	return fmt.Sprintf("EventKind(%d)", int(k))
}

// Event is an abstracted lifecycle signal delivered to the registered
// callback. Width/Height carry the new size for EventResized; X/Y carry the
// new origin for EventMoved.
type Event struct {
	Kind   EventKind
	Width  int
	Height int
	X      int
	Y      int
}

// Callback receives overlay events. In blocking mode it runs on the event
// loop's thread; in polling mode it runs on whichever goroutine calls Pump.
type Callback func(Event)

// eventQueue buffers events for polling mode. The event loop is the only
// producer; on overflow the oldest event is dropped so a slow consumer can
// never stall dispatch.
type eventQueue struct {
	ch chan Event
}

func newEventQueue(capacity int) *eventQueue {
	return &eventQueue{ch: make(chan Event, capacity)}
}

func (q *eventQueue) push(ev Event) {
	select {
	case q.ch <- ev:
	default:
		select {
		case <-q.ch:
		default:
		}
		select {
		case q.ch <- ev:
		default:
		}
	}
}

func (q *eventQueue) pop() (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	default:
		return Event{}, false
	}
}
