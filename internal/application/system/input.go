package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputSnapshot is the control state for one tick. Movement fields are
// held states, command fields are edge triggered.
type InputSnapshot struct {
	Left  bool
	Right bool
	Up    bool
	Down  bool
	Jump  bool

	ToggleAim   bool
	Fire        bool
	NextAbility bool
	PrevAbility bool
	// SelectSlot picks an ability directly, 1-based. 0 means no selection.
	SelectSlot int

	PointerX int
	PointerY int
}

// KeySource reads raw device state
type KeySource interface {
	Pressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
	MouseJustPressed(button ebiten.MouseButton) bool
	Cursor() (int, int)
}

// ebitenKeys reads the live keyboard and mouse through ebiten
type ebitenKeys struct{}

func (ebitenKeys) Pressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }
func (ebitenKeys) JustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (ebitenKeys) MouseJustPressed(b ebiten.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(b)
}
func (ebitenKeys) Cursor() (int, int) { return ebiten.CursorPosition() }

// EbitenKeys returns a KeySource over the live keyboard and mouse
func EbitenKeys() KeySource {
	return ebitenKeys{}
}

// Bindings maps controls to keys. Each control accepts any of its keys.
type Bindings struct {
	Left, Right, Up, Down, Jump []ebiten.Key
	ToggleAim, Fire             []ebiten.Key
	NextAbility, PrevAbility    []ebiten.Key
	Slots                       []ebiten.Key
	FireButton                  ebiten.MouseButton
}

// DefaultBindings returns arrow keys/WASD movement, T to aim, X or click to fire
func DefaultBindings() Bindings {
	return Bindings{
		Left:        []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		Right:       []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		Up:          []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW},
		Down:        []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS},
		Jump:        []ebiten.Key{ebiten.KeySpace},
		ToggleAim:   []ebiten.Key{ebiten.KeyT},
		Fire:        []ebiten.Key{ebiten.KeyX},
		NextAbility: []ebiten.Key{ebiten.KeyE},
		PrevAbility: []ebiten.Key{ebiten.KeyQ},
		Slots:       []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4},
		FireButton:  ebiten.MouseButtonLeft,
	}
}

// InputSystem turns device state into InputSnapshots
type InputSystem struct {
	keys     KeySource
	bindings Bindings
}

// NewInputSystem creates an input system reading live ebiten state
func NewInputSystem() *InputSystem {
	return NewInputSystemWithSource(ebitenKeys{}, DefaultBindings())
}

// NewInputSystemWithSource creates an input system over any key source
func NewInputSystemWithSource(keys KeySource, bindings Bindings) *InputSystem {
	return &InputSystem{keys: keys, bindings: bindings}
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputSnapshot {
	b := s.bindings
	mx, my := s.keys.Cursor()

	in := InputSnapshot{
		Left:        s.any(b.Left, s.keys.Pressed),
		Right:       s.any(b.Right, s.keys.Pressed),
		Up:          s.any(b.Up, s.keys.Pressed),
		Down:        s.any(b.Down, s.keys.Pressed),
		Jump:        s.any(b.Jump, s.keys.Pressed),
		ToggleAim:   s.any(b.ToggleAim, s.keys.JustPressed),
		Fire:        s.any(b.Fire, s.keys.JustPressed) || s.keys.MouseJustPressed(b.FireButton),
		NextAbility: s.any(b.NextAbility, s.keys.JustPressed),
		PrevAbility: s.any(b.PrevAbility, s.keys.JustPressed),
		PointerX:    mx,
		PointerY:    my,
	}
	for i, key := range b.Slots {
		if s.keys.JustPressed(key) {
			in.SelectSlot = i + 1
			break
		}
	}
	return in
}

func (s *InputSystem) any(keys []ebiten.Key, check func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if check(k) {
			return true
		}
	}
	return false
}
