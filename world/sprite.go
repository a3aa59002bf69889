package world

import (
	"math"

	"github.com/plus3/flyre/gfx"
	"github.com/plus3/flyre/vec"
)

// DefaultInitialRotation is the Rotation at which an entity heads at angle
// 0. Sprite images are drawn facing up.
const DefaultInitialRotation = -90

// Sprite is the image of a kind. Every entity of the kind shares it and
// turns it by its own Rotation. Turned and tinted copies are made once per
// whole degree and kept.
type Sprite struct {
	Image gfx.Image
	// Offset places the top-left corner of the image relative to the
	// entity's Pos, in image pixels. The entity's Size stays its hitbox.
	Offset vec.Vec2
	// Scale magnifies the image. Set it before the first draw.
	Scale int
	// InitialRotation is the Rotation at which the entity heads at angle 0.
	InitialRotation float64

	scaled gfx.Image
	frames map[spriteFrame]gfx.Image
}

type spriteFrame struct {
	rotation int
	flash    bool
}

func NewSprite(img gfx.Image) *Sprite {
	return &Sprite{Image: img, Scale: 1, InitialRotation: DefaultInitialRotation}
}

func (sp *Sprite) scale() float64 {
	return float64(max(sp.Scale, 1))
}

// Size is the drawn size of the unturned image.
func (sp *Sprite) Size() vec.Vec2 {
	w, h := sp.Image.Size()
	return vec.V(float64(w), float64(h)).Scale(sp.scale())
}

// Frames returns the number of cached copies.
func (sp *Sprite) Frames() int {
	return len(sp.frames)
}

func (sp *Sprite) frame(s gfx.Surface, rotation int, flash bool) gfx.Image {
	key := spriteFrame{rotation: rotation, flash: flash}
	if img, ok := sp.frames[key]; ok {
		return img
	}

	if sp.scaled == nil {
		sp.scaled = sp.Image
		if sp.Scale > 1 {
			size := sp.Size()
			sp.scaled = s.Scale(sp.Image, int(size.X), int(size.Y))
		}
	}
	img := sp.scaled
	if rotation != 0 {
		img = s.Rotate(img, float64(rotation))
	}
	if flash {
		img = s.Tint(img, HitColor)
	}

	if sp.frames == nil {
		sp.frames = make(map[spriteFrame]gfx.Image)
	}
	sp.frames[key] = img
	return img
}

func (e *Entity) sprite() *Sprite {
	if e.Kind == nil {
		return nil
	}
	return e.Kind.Sprite
}

func (e *Entity) initialRotation() float64 {
	if sp := e.sprite(); sp != nil {
		return sp.InitialRotation
	}
	return DefaultInitialRotation
}

// Angle is the heading of the entity in degrees, in [0, 360). It is the
// Rotation seen from the sprite's InitialRotation.
func (e *Entity) Angle() float64 {
	return wrapDegrees(e.initialRotation() - e.Rotation)
}

func (e *Entity) SetAngle(angle float64) {
	e.Rotation = e.initialRotation() - angle
}

// SpritePos is the top-left corner of the unturned sprite.
func (e *Entity) SpritePos() vec.Vec2 {
	sp := e.sprite()
	if sp == nil {
		return e.Pos
	}
	return e.Pos.Add(sp.Offset.Scale(sp.scale()))
}

// SpriteCenter is the point the sprite turns around.
func (e *Entity) SpriteCenter() vec.Vec2 {
	sp := e.sprite()
	if sp == nil || sp.Image == nil {
		return e.Center()
	}
	return e.SpritePos().Add(sp.Size().Scale(0.5))
}

// SpriteToScreen converts a pixel of the sprite image to world coordinates,
// following the rotation and scale of the entity. The result is the center
// of that pixel.
func (e *Entity) SpriteToScreen(pixel vec.Vec2) vec.Vec2 {
	sp := e.sprite()
	if sp == nil || sp.Image == nil {
		return e.Pos.Add(pixel)
	}
	w, h := sp.Image.Size()
	p := pixel.Add(vec.V(0.5, 0.5)).Sub(vec.V(float64(w)/2, float64(h)/2))
	return e.SpriteCenter().Add(p.Rotate(-e.Rotation).Scale(sp.scale()))
}

// DrawSprite draws the sprite of the kind turned by Rotation. Entities with
// Health flash after a hit and blink while invincible.
func (e *Entity) DrawSprite(s gfx.Surface) {
	sp := e.sprite()
	if sp == nil || sp.Image == nil {
		return
	}

	flash := false
	if h := e.Health; h != nil {
		flash = h.Flashing()
		if !flash && h.Blinking() {
			return
		}
	}
	img := sp.frame(s, int(wrapDegrees(math.Floor(e.Rotation))), flash)
	s.Blit(img, e.SpriteCenter(), 255)
}

func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
