package loot

// injectedInput is one scripted input event. Screen coordinates are used,
// identical to real mouse input.
type injectedInput struct {
	id      int // -1 for a pure cursor move
	pressed bool
	x, y    int
}

// InjectPress queues a press of button id with the cursor at (x, y). The
// event is applied by the next AcceptInputs.
func (m *InputManager) InjectPress(id, x, y int) {
	m.injected = append(m.injected, injectedInput{id: id, pressed: true, x: x, y: y})
}

// InjectRelease queues a release of button id at (x, y).
func (m *InputManager) InjectRelease(id, x, y int) {
	m.injected = append(m.injected, injectedInput{id: id, x: x, y: y})
}

// InjectMove queues a cursor move to (x, y).
func (m *InputManager) InjectMove(x, y int) {
	m.injected = append(m.injected, injectedInput{id: -1, x: x, y: y})
}

// InjectClick queues a press followed by a release at the same position.
// Consumes two frames.
func (m *InputManager) InjectClick(id, x, y int) {
	m.InjectPress(id, x, y)
	m.InjectRelease(id, x, y)
}

// InjectDrag queues a press at (fromX, fromY), linearly interpolated moves
// over frames-2 intermediate frames and a release at (toX, toY). The
// sequence consumes frames frames; the minimum is 2.
func (m *InputManager) InjectDrag(id, fromX, fromY, toX, toY, frames int) {
	if frames < 2 {
		frames = 2
	}
	m.InjectPress(id, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		x := fromX + int(float64(toX-fromX)*t)
		y := fromY + int(float64(toY-fromY)*t)
		m.InjectMove(x, y)
	}
	m.InjectRelease(id, toX, toY)
}

// Injecting reports whether scripted events are still pending. Real device
// polling should be skipped while it is true.
func (m *InputManager) Injecting() bool { return len(m.injected) > 0 }

// applyInjected moves one scripted event into the queue.
func (m *InputManager) applyInjected() {
	if len(m.injected) == 0 {
		return
	}
	evt := m.injected[0]
	copy(m.injected, m.injected[1:])
	m.injected = m.injected[:len(m.injected)-1]

	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastX, m.lastY = evt.x, evt.y
	if evt.id >= 0 && evt.id < len(m.buttons) {
		m.enqueue(evt.id, evt.pressed)
	}
}
