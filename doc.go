// Package loot is a layered 2D/3D rendering engine for [Ebitengine].
//
// Loot composes a scene from nested containers, each with its own
// coordinate system. A [Layer] maps an internal view onto its box, a
// [RotatableLayer] also rotates it, and a [Viewport] projects a 3D space
// through a pinhole camera, depth sorting its spatial children every
// frame. Hit testing and coordinate conversion run the same transforms
// backwards, so a click can be followed from the screen into any nested
// container.
//
// # Quick start
//
// The simplest way to get started is [RunWindow], which opens a window and
// drives the scene for you:
//
//	scene := loot.NewScene(loot.DefaultSettings())
//	vp := loot.NewViewport(0, 0, 800, 600)
//	vp.Add(loot.NewSprite3D(loot.Pt3(0, 0, 0), 40, 40, img))
//	scene.Root().Add(vp)
//	loot.RunWindow(scene)
//
// For full control, wrap the scene with [NewGame] or call [Scene.Update]
// and [Scene.Draw] yourself with any [Surface].
//
// # Surfaces
//
// Elements paint through a [Canvas], which carries the accumulated
// transform and clip. Three surfaces back it: [EbitenSurface] for the
// GPU, [SoftwareSurface] (built on [gg]) for headless PNG output, and
// [Recorder] for inspecting draw operations in tests.
//
// # Elements
//
// Every element embeds [Object] (a planar box) or [Object3D] (which may
// instead be placed in a viewport's 3D space by center and radii). Loot
// provides [Sprite], [Sprite3D] and [TextBox]; custom elements implement
// [Visual] or [Visual3D].
//
// Removal is lazy: [Object.Remove] marks an element, and its container
// drops it after the next traversal.
//
// # Supporting pieces
//
// [InputManager] maps keys and mouse buttons onto numbered logical buttons
// and accepts queued changes once per frame. [ImageStore] holds named
// images, including TexturePacker atlases. [Loop] drives a [Game] at a
// fixed interval without a window. Tweens come from [gween], and
// loot/ecs forwards pick events to a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [gg]: https://github.com/gogpu/gg
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package loot
