package ai

import (
	"math"

	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// Sensors are the queries strategies make about the world
type Sensors struct {
	cfg config.SensorConfig
}

// NewSensors creates sensors from the AI tuning
func NewSensors(cfg config.SensorConfig) *Sensors {
	return &Sensors{cfg: cfg}
}

// FindTarget returns the nearest living human-controlled entity by
// Manhattan distance, or nil when there is none.
func (s *Sensors) FindTarget(self *entity.Entity, entities []*entity.Entity) *entity.Entity {
	var best *entity.Entity
	bestDist := math.Inf(1)
	for _, e := range entities {
		if e == self || e.IsAI() || !e.Alive() {
			continue
		}
		d := math.Abs(e.X-self.X) + math.Abs(e.Y-self.Y)
		if d < bestDist {
			best = e
			bestDist = d
		}
	}
	return best
}

// IsSafe looks one step ahead in direction dir (+1 right, -1 left).
// A wall or hazard at body height blocks the way. Below the feet the
// first tile found within PitDepth rows decides: solid is safe, hazard
// or nothing at all is not.
func (s *Sensors) IsSafe(self *entity.Entity, stage *entity.Stage, dir int) bool {
	ts := float64(stage.TileSize)

	aheadX := self.X - s.cfg.Lookahead
	if dir > 0 {
		aheadX = self.X + self.Width + s.cfg.Lookahead
	}
	col := int(math.Floor(aheadX / ts))

	top := int(math.Floor(self.Y / ts))
	bottom := int(math.Floor((self.Y + self.Height - 1) / ts))
	for row := top; row <= bottom; row++ {
		tile := stage.GetTile(col, row)
		if tile.Solid() || tile.Hazard() {
			return false
		}
	}

	for i := 0; i < s.cfg.PitDepth; i++ {
		tile := stage.GetTile(col, bottom+1+i)
		if tile.Solid() {
			return true
		}
		if tile.Hazard() {
			return false
		}
	}
	return false
}

// FriendInLineOfFire marches a ray from the shooter's center along angle.
// The ray stops at the first solid tile or entity it meets; it reports
// true only when that entity is another AI.
func (s *Sensors) FriendInLineOfFire(self *entity.Entity, stage *entity.Stage, entities []*entity.Entity, angle float64) bool {
	if s.cfg.RayStep <= 0 {
		return false
	}
	cx, cy := self.Center()
	cos, sin := math.Cos(angle), math.Sin(angle)

	for d := s.cfg.RayStart; d <= s.cfg.RayRange; d += s.cfg.RayStep {
		px, py := cx+cos*d, cy+sin*d
		if stage.TileAt(px, py).Solid() {
			return false
		}
		for _, e := range entities {
			if e == self || !e.Alive() {
				continue
			}
			if e.Bounds().Expand(s.cfg.SafetyMargin).Contains(px, py) {
				return e.IsAI()
			}
		}
	}
	return false
}
