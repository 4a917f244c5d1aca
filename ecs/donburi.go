package ecs

import (
	"github.com/phanxgames/loot"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// PickEventType is the Donburi event type for loot pick events.
// Subscribe to this in your ECS systems to receive button presses and
// releases together with the object under the cursor.
var PickEventType = events.NewEventType[loot.PickEvent]()

// EntityPickEventType carries pick events whose target is attached to an
// entity with Attach.
var EntityPickEventType = events.NewEventType[EntityPickEvent]()

// EntityPickEvent is a pick event resolved to the entity owning its target.
type EntityPickEvent struct {
	loot.PickEvent
	Entity donburi.Entity
}

// ObjectRef links an entity to a scene object.
type ObjectRef struct {
	Visual loot.Visual
}

// Object is the component holding an entity's scene object.
var Object = donburi.NewComponentType[ObjectRef]()

// DonburiStore is an EntityStore backed by a Donburi world.
type DonburiStore struct {
	world    donburi.World
	entities map[*loot.Object]donburi.Entity
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Pick events are published to PickEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) *DonburiStore {
	return &DonburiStore{
		world:    world,
		entities: make(map[*loot.Object]donburi.Entity),
	}
}

// Attach creates an entity holding v in its Object component. Picks that
// land on v are also published on EntityPickEventType.
func (s *DonburiStore) Attach(v loot.Visual) donburi.Entity {
	e := s.world.Create(Object)
	Object.SetValue(s.world.Entry(e), ObjectRef{Visual: v})
	s.entities[v.Base()] = e
	return e
}

// Detach removes the entity attached to v, if any.
func (s *DonburiStore) Detach(v loot.Visual) {
	e, ok := s.entities[v.Base()]
	if !ok {
		return
	}
	delete(s.entities, v.Base())
	if s.world.Valid(e) {
		s.world.Remove(e)
	}
}

// Entity returns the entity attached to v.
func (s *DonburiStore) Entity(v loot.Visual) (donburi.Entity, bool) {
	e, ok := s.entities[v.Base()]
	if ok && !s.world.Valid(e) {
		delete(s.entities, v.Base())
		return e, false
	}
	return e, ok
}

// EmitEvent publishes event, and its entity form when the target is
// attached.
func (s *DonburiStore) EmitEvent(event loot.PickEvent) {
	PickEventType.Publish(s.world, event)
	if event.Target == nil {
		return
	}
	if e, ok := s.Entity(event.Target); ok {
		EntityPickEventType.Publish(s.world, EntityPickEvent{PickEvent: event, Entity: e})
	}
}
