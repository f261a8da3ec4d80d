package entity

// EntityID is an opaque handle to an actor owned outside the core.
type EntityID uint32

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TilePlatform
)

// String returns the string representation of the tile type
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileWall:
		return "Wall"
	case TilePlatform:
		return "Platform"
	default:
		return "Unknown"
	}
}

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Stage holds the tile grid the avatar moves through.
// Coordinates outside the grid are treated as solid walls.
type Stage struct {
	Name     string
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	SpawnX   int
	SpawnY   int
}

// GetTile returns the tile at the given tile coordinates
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// GetTileAtPixel returns the tile at the given pixel coordinates
func (s *Stage) GetTileAtPixel(px, py int) Tile {
	return s.GetTile(floorDiv(px, s.TileSize), floorDiv(py, s.TileSize))
}

// IsSolidAt checks if the tile at pixel coordinates is solid
func (s *Stage) IsSolidAt(px, py int) bool {
	return s.GetTileAtPixel(px, py).Solid
}

// RectSolid reports whether any pixel of the rectangle overlaps a solid tile.
func (s *Stage) RectSolid(x, y, w, h int) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	tx0, ty0 := floorDiv(x, s.TileSize), floorDiv(y, s.TileSize)
	tx1, ty1 := floorDiv(x+w-1, s.TileSize), floorDiv(y+h-1, s.TileSize)
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			if s.GetTile(tx, ty).Solid {
				return true
			}
		}
	}
	return false
}

// PixelSize returns the stage size in pixels.
func (s *Stage) PixelSize() (int, int) {
	return s.Width * s.TileSize, s.Height * s.TileSize
}

// floorDiv rounds toward negative infinity so pixels left of or above the
// origin map to tile -1 rather than tile 0.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
