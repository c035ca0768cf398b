package terrain

import "math"

// Vec3 is a 3D vector. Y is up.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 { return Vec3{x, y, z} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }
func (v Vec3) Dot(o Vec3) float64   { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{v.Y*o.Z - v.Z*o.Y, v.Z*o.X - v.X*o.Z, v.X*o.Y - v.Y*o.X}
}
func (v Vec3) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < 1e-10 {
		return Vec3{}
	}
	return Vec3{v.X / l, v.Y / l, v.Z / l}
}

// Color3 is a linear RGB colour with components in [0,1]
type Color3 struct {
	R, G, B float64
}

// Hex builds a colour from 0xRRGGBB
func Hex(c uint32) Color3 {
	return Color3{
		R: float64((c>>16)&0xff) / 255,
		G: float64((c>>8)&0xff) / 255,
		B: float64(c&0xff) / 255,
	}
}

func (c Color3) Scale(s float64) Color3 {
	return Color3{c.R * s, c.G * s, c.B * s}
}

func (c Color3) Add(o Color3) Color3 {
	return Color3{
		math.Min(c.R+o.R, 1),
		math.Min(c.G+o.G, 1),
		math.Min(c.B+o.B, 1),
	}
}

func (c Color3) Mul(o Color3) Color3 {
	return Color3{c.R * o.R, c.G * o.G, c.B * o.B}
}

// Lerp blends toward o by t
func (c Color3) Lerp(o Color3, t float64) Color3 {
	return Color3{
		c.R + (o.R-c.R)*t,
		c.G + (o.G-c.G)*t,
		c.B + (o.B-c.B)*t,
	}
}

// RGBA8 converts to 8-bit channels, clamping out-of-range components
func (c Color3) RGBA8() (r, g, b uint8) {
	return to8(c.R), to8(c.G), to8(c.B)
}

func to8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
