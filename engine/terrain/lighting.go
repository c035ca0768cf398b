package terrain

import "math"

// DirectionalLight represents a sun-like light
type DirectionalLight struct {
	Direction Vec3 // normalized direction TO the light (from surface)
	Color     Color3
	Intensity float64
}

// Lighting is the sprite lighting rig: one sun plus ambient fill
type Lighting struct {
	Sun              DirectionalLight
	Ambient          Color3
	AmbientIntensity float64
}

// DefaultLighting lights from the upper left, matching the darker right tile face
func DefaultLighting() Lighting {
	return Lighting{
		Sun: DirectionalLight{
			Direction: V3(-0.5, 0.8, -0.3).Normalize(),
			Color:     Color3{1.0, 0.97, 0.9},
			Intensity: 0.9,
		},
		Ambient:          Color3{0.75, 0.78, 0.85},
		AmbientIntensity: 0.55,
	}
}

// Shade calculates the lit colour of a surface (Lambert + ambient)
func (l Lighting) Shade(normal Vec3, base Color3) Color3 {
	ambient := base.Mul(l.Ambient).Scale(l.AmbientIntensity)
	ndotl := math.Max(0, normal.Dot(l.Sun.Direction))
	diffuse := base.Mul(l.Sun.Color).Scale(ndotl * l.Sun.Intensity)
	return ambient.Add(diffuse)
}
