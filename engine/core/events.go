package core

// Event represents a game event
type Event struct {
	Type    EventType
	Tick    uint64
	Pos     Vec2 // where it happened, if anywhere
	Side    Side // acting or attributed side
	Payload interface{}
}

type EventType uint16

const (
	EvtGunshot EventType = iota
	EvtExplosion
	EvtScreenShake
	EvtUnitHit
	EvtUnitKilled
	EvtStructureBreached
	EvtMoveOrder
	EvtSelection
	EvtVehicleSpawned
)

func (t EventType) String() string {
	switch t {
	case EvtGunshot:
		return "gunshot"
	case EvtExplosion:
		return "explosion"
	case EvtScreenShake:
		return "screen_shake"
	case EvtUnitHit:
		return "unit_hit"
	case EvtUnitKilled:
		return "unit_killed"
	case EvtStructureBreached:
		return "structure_breached"
	case EvtMoveOrder:
		return "move_order"
	case EvtSelection:
		return "selection"
	case EvtVehicleSpawned:
		return "vehicle_spawned"
	default:
		return "unknown"
	}
}

// HitInfo is the payload of EvtUnitHit and EvtUnitKilled
type HitInfo struct {
	Unit   UnitID
	Damage int
	Cover  bool
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

// OnAll registers a handler for every event type
func (eb *EventBus) OnAll(h EventHandler) {
	for t := EvtGunshot; t <= EvtVehicleSpawned; t++ {
		eb.On(t, h)
	}
}

// Emit queues an event for dispatch
func (eb *EventBus) Emit(e Event) {
	eb.queue = append(eb.queue, e)
}

// Dispatch processes all queued events
func (eb *EventBus) Dispatch() {
	for _, e := range eb.queue {
		if handlers, ok := eb.listeners[e.Type]; ok {
			for _, h := range handlers {
				h(e)
			}
		}
	}
	eb.queue = eb.queue[:0]
}

// Emit queues an event stamped with the current tick
func (w *World) Emit(t EventType, pos Vec2, side Side, payload interface{}) {
	w.Bus.Emit(Event{Type: t, Tick: w.TickCount, Pos: pos, Side: side, Payload: payload})
}
