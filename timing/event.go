// Package timing provides a day-granular discrete event engine.
//
// Events are plain data. A Handler receives the payload and switches on its
// type:
//
//	func (c *Colony) Handle(event any) error {
//	    switch e := event.(type) {
//	    case *DayEvent:
//	        return c.handleDay(e)
//	    default:
//	        return fmt.Errorf("unknown event type: %T", event)
//	    }
//	}
package timing

import "github.com/sarchlab/cellpop/hooking"

// VTimeInDay is a point on the simulated timeline, counted in whole days.
type VTimeInDay uint64

// Handler processes events.
type Handler interface {
	Handle(event any) error
}

// TimeTeller exposes the current simulated day.
type TimeTeller interface {
	CurrentTime() VTimeInDay
}

// EventScheduler schedules events in the simulation timeline.
type EventScheduler interface {
	TimeTeller
	Schedule(event ScheduledEvent)
}

// ScheduledEvent is the engine-facing wrapper for user-defined events.
type ScheduledEvent struct {
	// Event is the payload delivered to the handler, typically a pointer to
	// a struct.
	Event any

	// Time is the day on which the event is processed.
	Time VTimeInDay

	// Handler is the component that will process this event.
	Handler Handler

	// IsSecondary events run after all primary events of the same day.
	IsSecondary bool
}

// HookPosBeforeEvent fires before an event is handled. Item is the
// *ScheduledEvent.
var HookPosBeforeEvent = &hooking.HookPos{Name: "BeforeEvent"}

// HookPosAfterEvent fires after an event is handled. Item is the
// *ScheduledEvent.
var HookPosAfterEvent = &hooking.HookPos{Name: "AfterEvent"}
