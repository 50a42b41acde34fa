package system

import (
	"fmt"

	"github.com/younwookim/skirmish/internal/domain/entity"
	"github.com/younwookim/skirmish/internal/infrastructure/config"
)

// LoadStage converts a level's digit rows into a Stage entity
func LoadStage(cfg *config.LevelConfig, tileSize int) (*entity.Stage, error) {
	if len(cfg.Map) == 0 {
		return nil, fmt.Errorf("level %q: %w: no rows", cfg.Name, config.ErrInvalidMap)
	}

	tiles := make([][]entity.TileType, len(cfg.Map))
	width := len(cfg.Map[0])
	for y, row := range cfg.Map {
		if len(row) != width {
			return nil, fmt.Errorf("level %q: %w: row %d is %d wide, want %d", cfg.Name, config.ErrInvalidMap, y, len(row), width)
		}
		tiles[y] = make([]entity.TileType, width)
		for x, ch := range row {
			switch ch {
			case '0':
				tiles[y][x] = entity.TileEmpty
			case '1':
				tiles[y][x] = entity.TileBrick
			case '2':
				tiles[y][x] = entity.TileWater
			case '3':
				tiles[y][x] = entity.TileStone
			default:
				return nil, fmt.Errorf("level %q: %w: tile %q at (%d,%d)", cfg.Name, config.ErrInvalidMap, ch, x, y)
			}
		}
	}

	return entity.NewStage(tiles, tileSize), nil
}
