package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileBrick
	TileWater
	TileStone
)

// Solid reports whether bodies and projectiles stop at this tile
func (t TileType) Solid() bool {
	return t == TileBrick || t == TileStone
}

// Hazard reports whether touching this tile kills a body outright
func (t TileType) Hazard() bool {
	return t == TileWater
}

// String returns the tile name
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileBrick:
		return "brick"
	case TileWater:
		return "water"
	case TileStone:
		return "stone"
	default:
		return "unknown"
	}
}

// Stage represents the current level's tile data. It is not modified after load.
type Stage struct {
	Width    int // columns
	Height   int // rows
	TileSize int
	Tiles    [][]TileType
}

// NewStage creates a stage from a row-major tile grid
func NewStage(tiles [][]TileType, tileSize int) *Stage {
	width := 0
	if len(tiles) > 0 {
		width = len(tiles[0])
	}
	return &Stage{
		Width:    width,
		Height:   len(tiles),
		TileSize: tileSize,
		Tiles:    tiles,
	}
}

// GetTile returns the tile at the given tile coordinates.
// Out of range coordinates read as empty.
func (s *Stage) GetTile(col, row int) TileType {
	if col < 0 || row < 0 || row >= s.Height || col >= len(s.Tiles[row]) {
		return TileEmpty
	}
	return s.Tiles[row][col]
}

// CellAt converts a pixel position to tile coordinates
func (s *Stage) CellAt(px, py float64) (col, row int) {
	ts := float64(s.TileSize)
	return int(math.Floor(px / ts)), int(math.Floor(py / ts))
}

// TileAt returns the tile under the given pixel position
func (s *Stage) TileAt(px, py float64) TileType {
	return s.GetTile(s.CellAt(px, py))
}

// PixelWidth returns the map width in pixels
func (s *Stage) PixelWidth() float64 {
	return float64(s.Width * s.TileSize)
}

// PixelHeight returns the map height in pixels
func (s *Stage) PixelHeight() float64 {
	return float64(s.Height * s.TileSize)
}

// Contains reports whether a point lies inside the map bounds
func (s *Stage) Contains(px, py float64) bool {
	return px >= 0 && px <= s.PixelWidth() && py >= 0 && py <= s.PixelHeight()
}

// Rect is an axis aligned box in pixels
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether two rects intersect
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether a point is inside the rect
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

// Expand grows the rect by margin on every side
func (r Rect) Expand(margin float64) Rect {
	return Rect{X: r.X - margin, Y: r.Y - margin, W: r.W + 2*margin, H: r.H + 2*margin}
}
