package effects

import (
	"math"
	"math/rand"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/vmath"
)

// Particle is one moving point of a burst
type Particle struct {
	Pos vmath.Vec3F
	Vel vmath.Vec3F
}

// Burst is a short-lived radial particle explosion
type Burst struct {
	Particles []Particle
	Color     RGB
	Age       float64
	Alive     bool
}

// Opacity fades linearly over the burst lifetime
func (b *Burst) Opacity() float64 {
	if !b.Alive {
		return 0
	}
	return vmath.Clamp01(1 - b.Age/constant.BurstMaxAge)
}

// Bursts is a fixed pool of reusable bursts
// Emits are dropped while every burst is busy
type Bursts struct {
	pool []Burst
	rng  *rand.Rand
}

// NewBursts creates a pool of size bursts, each with particles points
func NewBursts(size, particles int, rng *rand.Rand) *Bursts {
	pool := make([]Burst, size)
	for i := range pool {
		pool[i].Particles = make([]Particle, particles)
	}
	return &Bursts{pool: pool, rng: rng}
}

// Emit starts an idle burst at pos, returning false when the pool is exhausted
func (bs *Bursts) Emit(pos vmath.Vec3F, color RGB) bool {
	for i := range bs.pool {
		b := &bs.pool[i]
		if b.Alive {
			continue
		}
		b.Alive = true
		b.Age = 0
		b.Color = color
		for j := range b.Particles {
			angle := bs.rng.Float64() * 2 * math.Pi
			speed := constant.BurstMinSpeed + bs.rng.Float64()*constant.BurstSpeedRange
			b.Particles[j] = Particle{
				Pos: pos,
				Vel: vmath.Vec3F{
					X: math.Cos(angle) * speed,
					Y: math.Sin(angle) * speed,
					Z: (bs.rng.Float64() - 0.5) * constant.BurstDepthJitter,
				},
			}
		}
		return true
	}
	return false
}

// Update moves particles and retires expired bursts
func (bs *Bursts) Update(dt float64) {
	for i := range bs.pool {
		b := &bs.pool[i]
		if !b.Alive {
			continue
		}
		b.Age += dt
		if b.Age >= constant.BurstMaxAge {
			b.Alive = false
			continue
		}
		for j := range b.Particles {
			p := &b.Particles[j]
			p.Pos = vmath.V3FAdd(p.Pos, vmath.V3FScale(p.Vel, dt))
			p.Vel = vmath.V3FScale(p.Vel, constant.BurstVelocityDecay)
		}
	}
}

// Reset retires every burst
func (bs *Bursts) Reset() {
	for i := range bs.pool {
		bs.pool[i].Alive = false
	}
}

// Active calls fn for each live burst
func (bs *Bursts) Active(fn func(b *Burst)) {
	for i := range bs.pool {
		if bs.pool[i].Alive {
			fn(&bs.pool[i])
		}
	}
}

// Live counts running bursts
func (bs *Bursts) Live() int {
	n := 0
	for i := range bs.pool {
		if bs.pool[i].Alive {
			n++
		}
	}
	return n
}
