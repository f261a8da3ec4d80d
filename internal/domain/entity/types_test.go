package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestStage() *Stage {
	// 4x3 tiles of 16px; floor on the bottom row, one wall block at (2,1).
	tiles := make([][]Tile, 3)
	for y := range tiles {
		tiles[y] = make([]Tile, 4)
	}
	for x := 0; x < 4; x++ {
		tiles[2][x] = Tile{Type: TileWall, Solid: true}
	}
	tiles[1][2] = Tile{Type: TileWall, Solid: true}
	return &Stage{Width: 4, Height: 3, TileSize: 16, Tiles: tiles}
}

func TestStage_GetTile(t *testing.T) {
	s := newTestStage()

	assert.Equal(t, TileEmpty, s.GetTile(0, 0).Type)
	assert.True(t, s.GetTile(0, 2).Solid)

	t.Run("out of bounds is a solid wall", func(t *testing.T) {
		for _, p := range [][2]int{{-1, 0}, {4, 0}, {0, -1}, {0, 3}} {
			tile := s.GetTile(p[0], p[1])
			assert.Equal(t, TileWall, tile.Type)
			assert.True(t, tile.Solid)
		}
	})
}

func TestStage_GetTileAtPixel(t *testing.T) {
	s := newTestStage()

	assert.False(t, s.IsSolidAt(15, 31))
	assert.True(t, s.IsSolidAt(15, 32))
	assert.True(t, s.IsSolidAt(-1, 0), "negative pixels fall outside the grid")
}

func TestStage_RectSolid(t *testing.T) {
	s := newTestStage()

	tests := []struct {
		name       string
		x, y, w, h int
		want       bool
	}{
		{"open air", 0, 0, 16, 16, false},
		{"touching floor", 0, 17, 8, 16, true},
		{"resting on floor", 0, 16, 8, 16, false},
		{"tall rect above floor", 0, 0, 8, 32, false},
		{"overlapping block", 30, 16, 4, 4, true},
		{"empty rect", 32, 16, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.RectSolid(tt.x, tt.y, tt.w, tt.h))
		})
	}
}

func TestStage_PixelSize(t *testing.T) {
	w, h := newTestStage().PixelSize()
	assert.Equal(t, 64, w)
	assert.Equal(t, 48, h)
}

func TestTileType_String(t *testing.T) {
	assert.Equal(t, "Wall", TileWall.String())
	assert.Equal(t, "Unknown", TileType(99).String())
}
