// Package ecs provides ECS adapters for loot's pick events.
//
// The primary adapter is [NewDonburiStore], which bridges loot pick events
// (a logical button changing state over a scene object) into a [Donburi]
// world as typed events. Subscribe to [PickEventType] in your ECS systems
// to receive them. Objects attached with [DonburiStore.Attach] become
// entities, and picks on them are also published on [EntityPickEventType].
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	store.Attach(button)
//	scene.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
