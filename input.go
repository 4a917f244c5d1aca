package loot

import (
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

var (
	// ErrButtonBound is returned when a button or device input already has
	// a binding.
	ErrButtonBound = errors.New("loot: button already bound")
	// ErrButtonRange is returned for a button ID outside 0..NumButtons-1.
	ErrButtonRange = errors.New("loot: button ID out of range")
)

// inputQueueSize is the capacity of the pending change ring buffer.
const inputQueueSize = 256

// ButtonState is the per-frame state of one logical button.
type ButtonState struct {
	ID      int
	Pressed bool
	// Changed is true when Pressed flipped during the last AcceptInputs.
	Changed bool
}

// PressedNow reports whether the button went down this frame.
func (b ButtonState) PressedNow() bool { return b.Pressed && b.Changed }

// ReleasedNow reports whether the button went up this frame.
func (b ButtonState) ReleasedNow() bool { return !b.Pressed && b.Changed }

type buttonChange struct {
	id      int
	pressed bool
}

type binding struct {
	bound   bool
	isMouse bool
	key     ebiten.Key
	mouse   ebiten.MouseButton
}

// InputManager maps keys and mouse buttons onto numbered logical buttons.
//
// Device events may arrive on any goroutine through KeyDown, KeyUp,
// MouseDown, MouseUp and MoveCursor; they are queued and only become
// visible when the frame goroutine calls AcceptInputs. When a button
// changes several times between two frames, only the latest change counts.
type InputManager struct {
	// Frame side, owned by the goroutine calling AcceptInputs.
	buttons     []ButtonState
	accepted    []bool
	changed     []int
	cursorX     int
	cursorY     int
	cursorMoved bool
	injected    []injectedInput

	// Event side, guarded by mu.
	mu       sync.Mutex
	bindings []binding
	keys     map[ebiten.Key]int
	mice     map[ebiten.MouseButton]int
	queue    [inputQueueSize]buttonChange
	start    int
	count    int
	lastX    int
	lastY    int
}

// NewInputManager creates a manager with n logical buttons, all unbound.
func NewInputManager(n int) *InputManager {
	if n < 0 {
		n = 0
	}
	m := &InputManager{
		buttons:  make([]ButtonState, n),
		accepted: make([]bool, n),
		bindings: make([]binding, n),
		keys:     make(map[ebiten.Key]int),
		mice:     make(map[ebiten.MouseButton]int),
	}
	for i := range m.buttons {
		m.buttons[i].ID = i
	}
	return m
}

// NumButtons returns the number of logical buttons.
func (m *InputManager) NumButtons() int { return len(m.buttons) }

func (m *InputManager) checkID(id int) error {
	if id < 0 || id >= len(m.buttons) {
		return fmt.Errorf("%w: %d", ErrButtonRange, id)
	}
	return nil
}

// BindKey binds key to button id. A button holds one binding and a key
// drives one button.
func (m *InputManager) BindKey(id int, key ebiten.Key) error {
	if err := m.checkID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bindings[id].bound {
		return fmt.Errorf("%w: button %d", ErrButtonBound, id)
	}
	if other, ok := m.keys[key]; ok {
		return fmt.Errorf("%w: key %s drives button %d", ErrButtonBound, key, other)
	}
	m.bindings[id] = binding{bound: true, key: key}
	m.keys[key] = id
	return nil
}

// BindMouseButton binds a mouse button to button id.
func (m *InputManager) BindMouseButton(id int, b ebiten.MouseButton) error {
	if err := m.checkID(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.bindings[id].bound {
		return fmt.Errorf("%w: button %d", ErrButtonBound, id)
	}
	if other, ok := m.mice[b]; ok {
		return fmt.Errorf("%w: mouse button %d drives button %d", ErrButtonBound, b, other)
	}
	m.bindings[id] = binding{bound: true, isMouse: true, mouse: b}
	m.mice[b] = id
	return nil
}

// Unbind removes the binding of button id, if any. The button's current
// state is kept.
func (m *InputManager) Unbind(id int) {
	if m.checkID(id) != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bindings[id]
	if !b.bound {
		return
	}
	if b.isMouse {
		delete(m.mice, b.mouse)
	} else {
		delete(m.keys, b.key)
	}
	m.bindings[id] = binding{}
}

// enqueue must be called with mu held. When the ring is full the oldest
// change is dropped.
func (m *InputManager) enqueue(id int, pressed bool) {
	if m.count == inputQueueSize {
		logger().Debug("input queue full, dropping oldest change", zap.Int("button", m.queue[m.start].id))
		m.start = (m.start + 1) % inputQueueSize
		m.count--
	}
	m.queue[(m.start+m.count)%inputQueueSize] = buttonChange{id: id, pressed: pressed}
	m.count++
}

// KeyDown records a press of key. It reports whether key is bound.
func (m *InputManager) KeyDown(key ebiten.Key) bool { return m.keyEvent(key, true) }

// KeyUp records a release of key. It reports whether key is bound.
func (m *InputManager) KeyUp(key ebiten.Key) bool { return m.keyEvent(key, false) }

func (m *InputManager) keyEvent(key ebiten.Key, pressed bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.keys[key]
	if ok {
		m.enqueue(id, pressed)
	}
	return ok
}

// MouseDown records a press of b at (x, y). The cursor moves even when b is
// unbound.
func (m *InputManager) MouseDown(b ebiten.MouseButton, x, y int) bool {
	return m.mouseEvent(b, x, y, true)
}

// MouseUp records a release of b at (x, y).
func (m *InputManager) MouseUp(b ebiten.MouseButton, x, y int) bool {
	return m.mouseEvent(b, x, y, false)
}

func (m *InputManager) mouseEvent(b ebiten.MouseButton, x, y int, pressed bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastX, m.lastY = x, y
	id, ok := m.mice[b]
	if ok {
		m.enqueue(id, pressed)
	}
	return ok
}

// MoveCursor records the cursor position.
func (m *InputManager) MoveCursor(x, y int) {
	m.mu.Lock()
	m.lastX, m.lastY = x, y
	m.mu.Unlock()
}

// Press queues a press of button id directly, bypassing device bindings.
func (m *InputManager) Press(id int) error { return m.set(id, true) }

// Release queues a release of button id directly.
func (m *InputManager) Release(id int) error { return m.set(id, false) }

func (m *InputManager) set(id int, pressed bool) error {
	if err := m.checkID(id); err != nil {
		return err
	}
	m.mu.Lock()
	m.enqueue(id, pressed)
	m.mu.Unlock()
	return nil
}

// AcceptInputs applies queued changes and makes them visible to Button,
// Changed, Cursor and CursorMoved until the next call. Call it once per
// frame before reading input.
func (m *InputManager) AcceptInputs() {
	for i := range m.buttons {
		m.buttons[i].Changed = false
		m.accepted[i] = false
	}
	m.changed = m.changed[:0]
	m.cursorMoved = false

	m.applyInjected()

	m.mu.Lock()
	pending := make([]buttonChange, m.count)
	for i := range pending {
		pending[i] = m.queue[(m.start+i)%inputQueueSize]
	}
	m.start, m.count = 0, 0
	x, y := m.lastX, m.lastY
	m.mu.Unlock()

	// Newest first; the first change seen for a button is the one kept.
	for i := len(pending) - 1; i >= 0; i-- {
		c := pending[i]
		if m.accepted[c.id] {
			continue
		}
		m.accepted[c.id] = true
		b := &m.buttons[c.id]
		if b.Pressed != c.pressed {
			b.Pressed = c.pressed
			b.Changed = true
			m.changed = append(m.changed, c.id)
		}
	}

	if x != m.cursorX || y != m.cursorY {
		m.cursorX, m.cursorY = x, y
		m.cursorMoved = true
	}
}

// Button returns the state of button id. Out of range IDs return a zero
// state with ID -1.
func (m *InputManager) Button(id int) ButtonState {
	if m.checkID(id) != nil {
		return ButtonState{ID: -1}
	}
	return m.buttons[id]
}

// Changed returns the buttons whose state flipped during the last
// AcceptInputs, newest change first.
func (m *InputManager) Changed() []ButtonState {
	out := make([]ButtonState, len(m.changed))
	for i, id := range m.changed {
		out[i] = m.buttons[id]
	}
	return out
}

// Cursor returns the cursor position accepted by the last AcceptInputs.
func (m *InputManager) Cursor() (x, y int) { return m.cursorX, m.cursorY }

// CursorMoved reports whether the cursor moved during the last
// AcceptInputs.
func (m *InputManager) CursorMoved() bool { return m.cursorMoved }

// PollEbiten feeds the queue from Ebitengine's device state. Call it from
// ebiten.Game.Update before AcceptInputs.
func (m *InputManager) PollEbiten() {
	x, y := ebiten.CursorPosition()

	m.mu.Lock()
	keys := make([]ebiten.Key, 0, len(m.keys))
	for k := range m.keys {
		keys = append(keys, k)
	}
	mice := make([]ebiten.MouseButton, 0, len(m.mice))
	for b := range m.mice {
		mice = append(mice, b)
	}
	m.mu.Unlock()

	for _, k := range keys {
		switch {
		case inpututil.IsKeyJustPressed(k):
			m.KeyDown(k)
		case inpututil.IsKeyJustReleased(k):
			m.KeyUp(k)
		}
	}
	for _, b := range mice {
		switch {
		case inpututil.IsMouseButtonJustPressed(b):
			m.MouseDown(b, x, y)
		case inpututil.IsMouseButtonJustReleased(b):
			m.MouseUp(b, x, y)
		}
	}
	m.MoveCursor(x, y)
}
