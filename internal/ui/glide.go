package ui

import "github.com/charmbracelet/harmonica"

// glide eases a value toward its target so the progress bar slides between
// the once-per-second progress updates.
type glide struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
}

func newGlide(fps int) glide {
	return glide{spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0)}
}

func (g *glide) setTarget(v float64) { g.target = v }

// snap jumps to v, for seeks and track changes.
func (g *glide) snap(v float64) {
	g.pos, g.vel, g.target = v, 0, v
}

func (g *glide) step() float64 {
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, g.target)
	return g.pos
}

func (g glide) value() float64 {
	return max(0, min(1, g.pos))
}
