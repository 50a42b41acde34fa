// Package menu provides the class selection screen.
package menu

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/scene"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

var (
	colorBG        = color.RGBA{26, 26, 46, 255}
	colorTitle     = color.RGBA{255, 215, 0, 255}
	colorText      = color.RGBA{220, 220, 220, 255}
	colorHighlight = color.RGBA{60, 60, 100, 255}
	colorError     = color.RGBA{255, 120, 120, 255}
)

// StartFunc builds the playing scene for the chosen class
type StartFunc func(class string) (scene.Scene, error)

// Menu lets the player pick a playable class
type Menu struct {
	cfg     *config.GameConfig
	keys    system.KeySource
	start   StartFunc
	logger  *zap.Logger
	classes []string
	cursor  int
	message string
}

// New creates the menu listing the playable classes
func New(cfg *config.GameConfig, keys system.KeySource, start StartFunc, logger *zap.Logger) *Menu {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Menu{
		cfg:     cfg,
		keys:    keys,
		start:   start,
		logger:  logger,
		classes: cfg.Classes.Playable,
	}
}

// Selected returns the class under the cursor
func (m *Menu) Selected() string {
	if len(m.classes) == 0 {
		return ""
	}
	return m.classes[m.cursor]
}

// Message returns the last error shown to the player
func (m *Menu) Message() string {
	return m.message
}

// Update moves the cursor and starts a run on Enter
func (m *Menu) Update(_ float64) (scene.Scene, error) {
	if m.keys.JustPressed(ebiten.KeyEscape) {
		return nil, scene.ErrQuit
	}
	if len(m.classes) == 0 {
		return nil, nil
	}

	switch {
	case m.keys.JustPressed(ebiten.KeyArrowUp) || m.keys.JustPressed(ebiten.KeyW):
		m.cursor = (m.cursor + len(m.classes) - 1) % len(m.classes)
	case m.keys.JustPressed(ebiten.KeyArrowDown) || m.keys.JustPressed(ebiten.KeyS):
		m.cursor = (m.cursor + 1) % len(m.classes)
	case m.keys.JustPressed(ebiten.KeyEnter):
		next, err := m.start(m.Selected())
		if err != nil {
			m.message = err.Error()
			m.logger.Error("failed to start run", zap.String("class", m.Selected()), zap.Error(err))
			return nil, nil
		}
		return next, nil
	}
	return nil, nil
}

// Draw renders the class list
func (m *Menu) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)
	w := float64(screen.Bounds().Dx())

	scene.DrawCentered(screen, m.cfg.Physics.Display.Title, w/2, 80, colorTitle)
	scene.DrawCentered(screen, "Choose your class", w/2, 120, colorText)

	y := 180.0
	for i, name := range m.classes {
		cls := m.cfg.Classes.Classes[name]
		if i == m.cursor {
			vector.FillRect(screen, float32(w/2-150), float32(y-4), 300, 24, colorHighlight, false)
		}
		vector.FillRect(screen, float32(w/2-140), float32(y), 12, 12, scene.RGB(cls.Color, colorText), false)

		label := cls.DisplayName
		if label == "" {
			label = name
		}
		scene.DrawText(screen, fmt.Sprintf("%-8s HP %3d  %v", label, cls.MaxHealth, cls.Abilities), w/2-120, y-2, colorText)
		y += 32
	}

	if m.message != "" {
		scene.DrawCentered(screen, m.message, w/2, y+20, colorError)
	}
	scene.DrawCentered(screen, "Up/Down: choose | Enter: start | Esc: quit", w/2, float64(screen.Bounds().Dy()-40), colorText)
}

// OnEnter clears any stale error
func (m *Menu) OnEnter() {
	m.message = ""
}

// OnExit does nothing
func (m *Menu) OnExit() {}
