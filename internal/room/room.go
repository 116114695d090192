package room

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Spec is the size of the walkthrough room. The room is centered on the origin on X/Z with
// the floor at Y=0.
type Spec struct {
	Width  float32 // X extent
	Depth  float32 // Z extent
	Height float32
}

// DefaultSpec is the standard gallery room (20×22, 5 high).
func DefaultSpec() Spec {
	return Spec{Width: 20, Depth: 22, Height: 5}
}

// Plane is one static, non-interactive surface. A plane starts as a unit quad in XZ facing +Y;
// it is scaled to Size (X, Z), pitched about X, yawed about Y, then moved to Center.
type Plane struct {
	Name   string
	Center [3]float32
	Size   [2]float32
	Pitch  float32
	Yaw    float32
	Color  color.RGBA
}

// Light is an ambient term (Position unused) or a point light.
type Light struct {
	Position  [3]float32
	Color     color.RGBA
	Intensity float32
}

// Room is the built geometry. It never changes after Build.
type Room struct {
	Spec    Spec
	Planes  []Plane
	Ambient Light
	Points  []Light
}

var (
	floorColor   = color.RGBA{R: 58, G: 50, B: 44, A: 255}
	ceilingColor = color.RGBA{R: 236, G: 234, B: 228, A: 255}
	wallColor    = color.RGBA{R: 245, G: 243, B: 238, A: 255}
	lightColor   = color.RGBA{R: 255, G: 248, B: 235, A: 255}
)

const (
	ambientIntensity = 0.5
	pointIntensity   = 0.8
	// lightDrop is how far below the ceiling the point lights hang.
	lightDrop = 1
)

// Build returns the floor, ceiling, four walls, one ambient light and three point lights
// spread along the room's long (Z) axis. Non-positive dimensions fall back to DefaultSpec values.
func Build(spec Spec) Room {
	def := DefaultSpec()
	if spec.Width <= 0 {
		spec.Width = def.Width
	}
	if spec.Depth <= 0 {
		spec.Depth = def.Depth
	}
	if spec.Height <= 0 {
		spec.Height = def.Height
	}
	hw, hd, h := spec.Width/2, spec.Depth/2, spec.Height

	planes := []Plane{
		{Name: "floor", Center: [3]float32{0, 0, 0}, Size: [2]float32{spec.Width, spec.Depth}, Color: floorColor},
		{Name: "ceiling", Center: [3]float32{0, h, 0}, Size: [2]float32{spec.Width, spec.Depth}, Pitch: math32.Pi, Color: ceilingColor},
		{Name: "back", Center: [3]float32{0, h / 2, -hd}, Size: [2]float32{spec.Width, h}, Pitch: math32.Pi / 2, Color: wallColor},
		{Name: "front", Center: [3]float32{0, h / 2, hd}, Size: [2]float32{spec.Width, h}, Pitch: math32.Pi / 2, Yaw: math32.Pi, Color: wallColor},
		{Name: "left", Center: [3]float32{-hw, h / 2, 0}, Size: [2]float32{spec.Depth, h}, Pitch: math32.Pi / 2, Yaw: math32.Pi / 2, Color: wallColor},
		{Name: "right", Center: [3]float32{hw, h / 2, 0}, Size: [2]float32{spec.Depth, h}, Pitch: math32.Pi / 2, Yaw: -math32.Pi / 2, Color: wallColor},
	}

	ly := h - lightDrop
	step := spec.Depth / 3
	points := make([]Light, 0, 3)
	for i := -1; i <= 1; i++ {
		points = append(points, Light{
			Position:  [3]float32{0, ly, float32(i) * step},
			Color:     lightColor,
			Intensity: pointIntensity,
		})
	}

	return Room{
		Spec:    spec,
		Planes:  planes,
		Ambient: Light{Color: lightColor, Intensity: ambientIntensity},
		Points:  points,
	}
}

// Normal returns the direction a plane faces after its pitch and yaw are applied.
func (p Plane) Normal() [3]float32 {
	// +Y pitched about X: (0, cos p, sin p); then yawed about Y.
	y := math32.Cos(p.Pitch)
	z := math32.Sin(p.Pitch)
	sy, cy := math32.Sincos(p.Yaw)
	return [3]float32{z * sy, y, z * cy}
}
