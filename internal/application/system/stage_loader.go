package system

import (
	"image/color"

	"github.com/younwookim/framecore/internal/domain/entity"
	"github.com/younwookim/framecore/internal/infrastructure/config"
)

// LoadStage converts a StageConfig into a Stage entity
func LoadStage(cfg *config.StageConfig) *entity.Stage {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		for x, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if !ok {
				continue
			}
			tiles[y][x] = entity.Tile{
				Type:  tileType(mapping.Type),
				Solid: mapping.Solid,
			}
		}
	}

	return &entity.Stage{
		Name:     cfg.Name,
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		SpawnX:   cfg.PlayerSpawn.X,
		SpawnY:   cfg.PlayerSpawn.Y,
	}
}

func tileType(name string) entity.TileType {
	switch name {
	case "wall":
		return entity.TileWall
	case "platform":
		return entity.TilePlatform
	default:
		return entity.TileEmpty
	}
}

// StagePalette returns the display color for each tile type that declares
// one. Invalid colors are skipped.
func StagePalette(cfg *config.StageConfig) map[entity.TileType]color.RGBA {
	palette := make(map[entity.TileType]color.RGBA)
	for _, mapping := range cfg.TileMapping {
		if mapping.Color == "" {
			continue
		}
		c, err := config.ParseColor(mapping.Color)
		if err != nil {
			continue
		}
		palette[tileType(mapping.Type)] = c
	}
	return palette
}
