package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/camera"
	"gallery-room/internal/frame"
	"gallery-room/internal/scene"
)

const (
	fovy = 75
	// frames are drawn this far in front of their slot so they never z-fight with the wall.
	borderLift = 0.01
	photoLift  = 0.02
)

// Renderer draws a gallery scene with raylib.
type Renderer struct {
	Camera rl.Camera3D
	mats   materials
}

// New returns a renderer with a perspective camera. GPU resources are created on the first Draw.
func New() *Renderer {
	r := &Renderer{}
	r.Camera.Up = rl.NewVector3(0, 1, 0)
	r.Camera.Fovy = fovy
	r.Camera.Projection = rl.CameraPerspective
	return r
}

// SyncCamera copies the controller's position and view direction into the raylib camera.
func (r *Renderer) SyncCamera(c *camera.Controller) {
	p := c.Position()
	d := c.LookDirection()
	r.Camera.Position = rl.NewVector3(p[0], p[1], p[2])
	r.Camera.Target = rl.NewVector3(p[0]+d[0], p[1]+d[1], p[2]+d[2])
}

// Pick returns the world ray through a screen position for the current camera. It is a scene.Picker.
func (r *Renderer) Pick(x, y float32) (origin, dir [3]float32) {
	ray := rl.GetScreenToWorldRay(rl.NewVector2(x, y), r.Camera)
	return [3]float32{ray.Position.X, ray.Position.Y, ray.Position.Z},
		[3]float32{ray.Direction.X, ray.Direction.Y, ray.Direction.Z}
}

// Draw renders the room and every frame. Call after ClearBackground and before 2D overlays.
func (r *Renderer) Draw(s *scene.Scene) {
	r.mats.ensure()
	r.SyncCamera(s.Camera())
	r.mats.setLights(s.Room())

	rl.BeginMode3D(r.Camera)
	for _, p := range s.Room().Planes {
		r.mats.drawPlane(p.Center, p.Size, p.Pitch, p.Yaw, p.Color)
	}
	for _, f := range s.Frames() {
		r.drawFrame(f)
	}
	rl.EndMode3D()
}

// drawFrame draws the border, then the photo (or the placeholder fill) just in front of it.
func (r *Renderer) drawFrame(f *frame.Frame) {
	slot := f.Slot()
	n := f.Normal()
	w, h := f.Size()
	lift := func(d float32) [3]float32 {
		return [3]float32{slot.Position[0] + n[0]*d, slot.Position[1] + n[1]*d, slot.Position[2] + n[2]*d}
	}
	const pitch = 1.5707964 // stand the XZ plane up to face +Z before yawing

	border := [2]float32{w + 2*frame.Border, h + 2*frame.Border}
	r.mats.drawPlane(lift(borderLift), border, pitch, slot.Rotation, f.BorderColor())

	if f.Placeholder() {
		r.mats.drawPlane(lift(photoLift), [2]float32{w, h}, pitch, slot.Rotation, frame.PlaceholderColor)
		return
	}
	r.mats.drawTexturedPlane(lift(photoLift), [2]float32{w, h}, pitch, slot.Rotation, TextureOf(f), frame.PlaceholderColor)
}

// Close frees the renderer's GPU resources. Call before the window closes.
func (r *Renderer) Close() {
	r.mats.unload()
}
