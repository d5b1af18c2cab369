package runner

import (
	"math/rand"

	"github.com/vovakirdan/dino-runner/internal/config"
)

// obstacleField spawns, scrolls and retires obstacles.
// Items are kept in spawn order, which is also left-to-right order.
type obstacleField struct {
	items  []Obstacle
	kinds  []config.ObstacleKind
	spawnX float64
	timer  int
}

func newObstacleField(cfg config.RunnerConfig) *obstacleField {
	return &obstacleField{
		items:  make([]Obstacle, 0, 8),
		kinds:  cfg.Kinds,
		spawnX: cfg.Field.Width,
	}
}

// reset clears all obstacles and the spawn timer.
func (f *obstacleField) reset() {
	f.items = f.items[:0]
	f.timer = 0
}

// maybeSpawn advances the spawn timer and, once it exceeds threshold, appends
// one obstacle of a uniformly random kind at the right edge.
func (f *obstacleField) maybeSpawn(threshold float64, rng *rand.Rand) (Obstacle, bool) {
	f.timer++
	if float64(f.timer) <= threshold {
		return Obstacle{}, false
	}
	f.timer = 0

	k := f.kinds[rng.Intn(len(f.kinds))]
	o := Obstacle{
		Kind:   k.Name,
		X:      f.spawnX,
		Y:      k.Y,
		Width:  k.Width,
		Height: k.Height,
		Flying: k.Flying,
		Color:  k.Color,
	}
	f.items = append(f.items, o)
	return o, true
}

// advance moves every obstacle left by speed and drops the ones whose
// trailing edge has passed the left boundary. It returns how many were
// dropped.
func (f *obstacleField) advance(speed float64) int {
	for i := range f.items {
		f.items[i].X -= speed
	}

	kept := f.items[:0]
	for _, o := range f.items {
		if o.X+o.Width >= 0 {
			kept = append(kept, o)
		}
	}
	removed := len(f.items) - len(kept)
	f.items = kept
	return removed
}

// snapshot returns a copy of the active obstacles.
func (f *obstacleField) snapshot() []Obstacle {
	out := make([]Obstacle, len(f.items))
	copy(out, f.items)
	return out
}

// cloudLayer is the decorative counterpart of obstacleField: own timer, own
// speed, no collision and no score.
type cloudLayer struct {
	items  []Cloud
	cfg    config.CloudConfig
	spawnX float64
	timer  int
}

func newCloudLayer(cfg config.RunnerConfig) *cloudLayer {
	return &cloudLayer{
		items:  make([]Cloud, 0, 4),
		cfg:    cfg.Clouds,
		spawnX: cfg.Field.Width,
	}
}

func (c *cloudLayer) reset() {
	c.items = c.items[:0]
	c.timer = 0
}

// update spawns and scrolls clouds for one tick.
func (c *cloudLayer) update(rng *rand.Rand) {
	if !c.cfg.Enabled {
		return
	}

	c.timer++
	if c.timer > c.cfg.Interval {
		c.items = append(c.items, Cloud{
			X:      c.spawnX,
			Y:      rng.Float64()*c.cfg.YRange + c.cfg.MinY,
			Width:  c.cfg.Width,
			Height: c.cfg.Height,
			Speed:  c.cfg.Speed,
		})
		c.timer = 0
	}

	kept := c.items[:0]
	for _, cl := range c.items {
		cl.X -= cl.Speed
		if cl.X+cl.Width >= 0 {
			kept = append(kept, cl)
		}
	}
	c.items = kept
}

func (c *cloudLayer) snapshot() []Cloud {
	out := make([]Cloud, len(c.items))
	copy(out, c.items)
	return out
}
