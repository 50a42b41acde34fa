// Package playing provides the main gameplay scene.
package playing

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"github.com/younwookim/skirmish/internal/application/match"
	"github.com/younwookim/skirmish/internal/application/replay"
	"github.com/younwookim/skirmish/internal/application/scene"
	"github.com/younwookim/skirmish/internal/application/state"
	"github.com/younwookim/skirmish/internal/application/system"
	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Colors for rendering
var (
	colorBG         = color.RGBA{26, 26, 46, 255}
	colorBrick      = color.RGBA{150, 80, 60, 255}
	colorStone      = color.RGBA{110, 110, 120, 255}
	colorWater      = color.RGBA{40, 90, 200, 255}
	colorEntity     = color.RGBA{200, 200, 200, 255}
	colorProjectile = color.RGBA{255, 255, 255, 255}
	colorAim        = color.RGBA{255, 255, 255, 200}
	colorActive     = color.RGBA{255, 215, 0, 255}
	colorHealthBG   = color.RGBA{60, 60, 60, 255}
	colorHealthFG   = color.RGBA{100, 200, 100, 255}
	colorHealthLow  = color.RGBA{220, 70, 70, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorDim        = color.RGBA{140, 140, 140, 255}
	colorPanel      = color.RGBA{0, 0, 0, 150}
	colorDefeat     = color.RGBA{100, 0, 0, 180}
	colorVictory    = color.RGBA{0, 60, 20, 180}
)

// logLines is how many event log lines the HUD shows
const logLines = 5

// Options configures a run
type Options struct {
	Config   *config.GameConfig
	Campaign match.Options
	Keys     system.KeySource

	// RecordPath enables recording. A path ending in .mpk saves msgpack.
	RecordPath string

	// Back builds the scene shown when the run is left
	Back func() scene.Scene

	// CopyText puts text on the system clipboard
	CopyText func(string) error
}

// Playing is the main gameplay scene
type Playing struct {
	cfg      *config.GameConfig
	campaign *match.Campaign
	input    *system.InputSystem
	keys     system.KeySource
	back     func() scene.Scene
	copyText func(string) error
	logger   *zap.Logger
	ctx      context.Context
	state    state.GameState

	recorder   *replay.Recorder
	recordPath string
	saved      bool

	// notice is a short status line shown above the HUD
	notice string
}

// New creates a new Playing scene and loads the first level
func New(opts Options) (*Playing, error) {
	if opts.Campaign.Logger == nil {
		opts.Campaign.Logger = zap.NewNop()
	}
	if opts.Keys == nil {
		opts.Keys = system.EbitenKeys()
	}
	if opts.CopyText == nil {
		opts.CopyText = clipboard.WriteAll
	}

	c, err := match.NewCampaign(opts.Config, opts.Campaign)
	if err != nil {
		return nil, fmt.Errorf("failed to start campaign: %w", err)
	}

	p := &Playing{
		cfg:        opts.Config,
		campaign:   c,
		input:      system.NewInputSystemWithSource(opts.Keys, system.DefaultBindings()),
		keys:       opts.Keys,
		back:       opts.Back,
		copyText:   opts.CopyText,
		logger:     opts.Campaign.Logger,
		ctx:        context.Background(),
		state:      state.StatePlaying,
		recordPath: opts.RecordPath,
	}

	if opts.RecordPath != "" {
		p.recorder = replay.NewRecorder(c.ID(), c.Seed(), c.Class())
		p.logger.Info("recording enabled", zap.String("path", opts.RecordPath), zap.Int64("seed", c.Seed()))
	}
	return p, nil
}

// Campaign returns the running campaign
func (p *Playing) Campaign() *match.Campaign {
	return p.campaign
}

// State returns the screen state
func (p *Playing) State() state.GameState {
	return p.state
}

// Notice returns the current status line
func (p *Playing) Notice() string {
	return p.notice
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(_ float64) (scene.Scene, error) {
	if p.keys.JustPressed(ebiten.KeyF2) {
		p.copyLog()
	}
	if p.keys.JustPressed(ebiten.KeyF5) {
		p.saveRecording(false)
	}

	if p.state.Terminal() {
		if p.keys.JustPressed(ebiten.KeyEnter) || p.keys.JustPressed(ebiten.KeyEscape) {
			return p.leave(), nil
		}
		return nil, nil
	}

	if p.keys.JustPressed(ebiten.KeyEscape) {
		p.saveRecording(true)
		return p.leave(), nil
	}

	frame := replay.Frame{
		Input:     p.input.GetInput(),
		SkipLevel: p.keys.JustPressed(ebiten.KeyK),
	}
	if p.recorder != nil {
		p.recorder.RecordFrame(frame)
	}

	phase, err := p.campaign.Tick(p.ctx, frame)
	if err != nil {
		return nil, fmt.Errorf("failed to advance campaign: %w", err)
	}
	p.state = state.FromPhase(phase)

	if p.state.Terminal() {
		p.saveRecording(true)
	}
	return nil, nil
}

func (p *Playing) leave() scene.Scene {
	if p.back == nil {
		return nil
	}
	return p.back()
}

func (p *Playing) copyLog() {
	if err := p.copyText(p.campaign.Log().String()); err != nil {
		p.notice = "clipboard unavailable"
		p.logger.Warn("failed to copy log", zap.Error(err))
		return
	}
	p.notice = "log copied"
}

// saveRecording writes the recording. A final save stops recording.
func (p *Playing) saveRecording(final bool) {
	if p.recorder == nil || p.saved {
		return
	}
	if final {
		p.saved = true
		p.recorder.Stop()
	}
	if err := p.recorder.Save(p.recordPath); err != nil {
		p.notice = "recording not saved"
		p.logger.Error("failed to save recording", zap.String("path", p.recordPath), zap.Error(err))
		return
	}
	p.notice = "recording saved"
	p.logger.Info("recording saved", zap.String("path", p.recordPath), zap.Int("frames", p.recorder.FrameCount()))
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	screen.Fill(colorBG)

	m := p.campaign.Match()
	p.drawTiles(screen, m.Stage())
	for _, e := range m.Entities() {
		if e.Alive() {
			p.drawEntity(screen, e, e == m.Current())
		}
	}
	for _, e := range m.Entities() {
		p.drawProjectiles(screen, e)
	}
	p.drawHUD(screen, m)

	switch p.state {
	case state.StateLevelTransition:
		p.drawTransitionOverlay(screen)
	case state.StateGameOver:
		p.drawGameOverOverlay(screen)
	case state.StateVictory:
		p.drawVictoryOverlay(screen)
	}
}

func (p *Playing) drawTiles(screen *ebiten.Image, stage *entity.Stage) {
	size := float32(stage.TileSize)
	for row := 0; row < stage.Height; row++ {
		for col := 0; col < stage.Width; col++ {
			var c color.Color
			switch stage.GetTile(col, row) {
			case entity.TileBrick:
				c = colorBrick
			case entity.TileStone:
				c = colorStone
			case entity.TileWater:
				c = colorWater
			default:
				continue
			}
			vector.FillRect(screen, float32(col)*size, float32(row)*size, size, size, c, false)
		}
	}
}

func (p *Playing) drawEntity(screen *ebiten.Image, e *entity.Entity, active bool) {
	x, y := float32(e.X), float32(e.Y)
	w, h := float32(e.Width), float32(e.Height)

	clr := scene.RGB(p.cfg.Classes.Classes[e.Class].Color, colorEntity)
	vector.FillRect(screen, x, y, w, h, clr, false)
	if active {
		vector.StrokeRect(screen, x-1, y-1, w+2, h+2, 2, colorActive, false)
	}

	// Facing marker
	eyeX := x + w*0.7
	if !e.FacingRight() {
		eyeX = x + w*0.3
	}
	vector.FillCircle(screen, eyeX, y+h*0.2, 4, colorBG, true)

	// Health bar
	ratio := float32(e.Health) / float32(e.MaxHealth)
	fg := colorHealthFG
	if ratio < 0.3 {
		fg = colorHealthLow
	}
	vector.FillRect(screen, x, y-10, w, 5, colorHealthBG, false)
	vector.FillRect(screen, x, y-10, w*ratio, 5, fg, false)

	if e.HasStatus(entity.StatusBurning) {
		scene.DrawText(screen, "burning", float64(x), float64(y)-26, colorHealthLow)
	}

	if active && e.IsAiming() {
		cx, cy := e.Center()
		length := math.Max(e.Width, e.Height)
		ex := cx + math.Cos(e.AimAngle)*length
		ey := cy + math.Sin(e.AimAngle)*length
		vector.StrokeLine(screen, float32(cx), float32(cy), float32(ex), float32(ey), 2, colorAim, true)
	}
}

func (p *Playing) drawProjectiles(screen *ebiten.Image, owner *entity.Entity) {
	for _, proj := range owner.Projectiles {
		if !proj.Active {
			continue
		}
		c := colorProjectile
		if ab, ok := p.cfg.Abilities.Abilities[proj.Kind().String()]; ok {
			c = scene.RGB(ab.Color, colorProjectile)
		}
		b := proj.Bounds()
		vector.FillRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), c, false)
	}
}

func (p *Playing) drawHUD(screen *ebiten.Image, m *match.Match) {
	sw := float64(screen.Bounds().Dx())
	sh := float64(screen.Bounds().Dy())

	// Top bar: level, clock, whose turn
	vector.FillRect(screen, 0, 0, float32(sw), 22, colorPanel, false)
	turn := "-"
	if cur := m.Current(); cur != nil {
		turn = m.Name(cur)
	}
	scene.DrawText(screen, fmt.Sprintf("Level %d/%d: %s   Time: %ds   Turn: %s",
		p.campaign.Level()+1, p.campaign.LevelCount(), m.Level().Name, p.campaign.Seconds(), turn), 8, 4, colorText)

	// Bottom panel: loadout on the left, log on the right
	panelH := float64(logLines*scene.LineHeight + 12)
	vector.FillRect(screen, 0, float32(sh-panelH), float32(sw), float32(panelH), colorPanel, false)

	player := m.Player()
	y := sh - panelH + 6
	scene.DrawText(screen, fmt.Sprintf("HP %d/%d  move %.0f", player.Health, player.MaxHealth, player.RemainingMovement()), 8, y, colorText)
	for i, slot := range player.Abilities {
		y += scene.LineHeight
		label := fmt.Sprintf("%d %s", i+1, slot.Spec.Kind)
		if !slot.Ready() {
			label += fmt.Sprintf(" (%d)", slot.Remaining)
		}
		c := colorDim
		if i == player.Selected {
			label = "> " + label
			c = colorText
		} else {
			label = "  " + label
		}
		scene.DrawText(screen, label, 8, y, c)
	}

	ly := sh - panelH + 6
	for _, line := range p.campaign.Log().Tail(logLines) {
		scene.DrawText(screen, line, sw/2-100, ly, colorDim)
		ly += scene.LineHeight
	}

	if p.notice != "" {
		scene.DrawText(screen, p.notice, 8, sh-panelH-scene.LineHeight, colorActive)
	}
}

func (p *Playing) drawTransitionOverlay(screen *ebiten.Image) {
	scene.Shade(screen, colorPanel)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	next := ""
	if i := p.campaign.Level() + 1; i < p.campaign.LevelCount() {
		next = p.cfg.Levels.Levels[i].Name
	}
	secs := float64(p.campaign.TransitionRemaining()) / float64(p.cfg.Physics.Display.Framerate)
	scene.DrawCentered(screen, "LEVEL CLEARED", w/2, h/2-30, colorActive)
	scene.DrawCentered(screen, fmt.Sprintf("Next: %s in %.1fs", next, secs), w/2, h/2, colorText)
}

func (p *Playing) drawGameOverOverlay(screen *ebiten.Image) {
	scene.Shade(screen, colorDefeat)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	scene.DrawCentered(screen, "DEFEATED", w/2, h/2-30, colorText)
	scene.DrawCentered(screen, fmt.Sprintf("Fell on %s after %ds", p.campaign.Match().Level().Name, p.campaign.Seconds()), w/2, h/2, colorText)
	scene.DrawCentered(screen, "Enter: menu | F2: copy log", w/2, h/2+30, colorDim)
}

func (p *Playing) drawVictoryOverlay(screen *ebiten.Image) {
	scene.Shade(screen, colorVictory)
	w := float64(screen.Bounds().Dx())
	h := float64(screen.Bounds().Dy())

	lines := []string{fmt.Sprintf("Cleared in %ds", p.campaign.Seconds())}
	switch {
	case p.campaign.Entry() != nil:
		lines = append(lines, "Score saved for "+p.campaign.Entry().Username)
	case p.campaign.SubmitErr() != nil:
		lines = append(lines, "Score not saved: "+p.campaign.SubmitErr().Error())
	}

	scene.DrawCentered(screen, "VICTORY", w/2, h/2-30, colorActive)
	scene.DrawCentered(screen, strings.Join(lines, "\n"), w/2, h/2, colorText)
	scene.DrawCentered(screen, "Enter: menu | F2: copy log", w/2, h/2+50, colorDim)
}

// OnEnter is called when entering this scene
func (p *Playing) OnEnter() {
	p.logger.Info("run started", zap.String("class", p.campaign.Class()), zap.String("id", p.campaign.ID()))
}

// OnExit is called when leaving this scene
func (p *Playing) OnExit() {
	p.saveRecording(true)
}
