package view

import (
	"math"
	"strconv"
	"strings"
)

// MaxZoom is the deepest zoom level served by standard tile servers.
const MaxZoom = 19

// Tile is one slippy-map tile plus the marker position inside it.
type Tile struct {
	Zoom int
	X    int
	Y    int
	// OffsetX/OffsetY locate the coordinate inside the tile, 0..1.
	OffsetX float64
	OffsetY float64
}

// StampTile returns the web-mercator tile that contains lat/lng at zoom.
func StampTile(lat, lng float64, zoom int) Tile {
	if zoom < 0 {
		zoom = 0
	}
	// Web mercator is undefined at the poles.
	lat = math.Max(-85.05112878, math.Min(85.05112878, lat))
	n := math.Exp2(float64(zoom))
	fx := (lng + 180) / 360 * n
	rad := lat * math.Pi / 180
	fy := (1 - math.Log(math.Tan(rad)+1/math.Cos(rad))/math.Pi) / 2 * n

	x := clampTile(int(math.Floor(fx)), n)
	y := clampTile(int(math.Floor(fy)), n)
	return Tile{
		Zoom:    zoom,
		X:       x,
		Y:       y,
		OffsetX: math.Min(1, math.Max(0, fx-float64(x))),
		OffsetY: math.Min(1, math.Max(0, fy-float64(y))),
	}
}

// URL expands a {z}/{x}/{y} tile template.
func (t Tile) URL(template string) string {
	return strings.NewReplacer(
		"{z}", strconv.Itoa(t.Zoom),
		"{x}", strconv.Itoa(t.X),
		"{y}", strconv.Itoa(t.Y),
	).Replace(template)
}

func clampTile(v int, n float64) int {
	maxIndex := int(n) - 1
	if v < 0 {
		return 0
	}
	if v > maxIndex {
		return maxIndex
	}
	return v
}
