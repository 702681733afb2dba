package constant

// Board Glow
const (
	// GlowDecayRate is intensity lost per second after activation
	GlowDecayRate = 0.4
)

// Particle Bursts
const (
	BurstPoolSize      = 15
	BurstParticles     = 30
	BurstMaxAge        = 1.0
	BurstMinSpeed      = 1.0
	BurstSpeedRange    = 3.0
	BurstDepthJitter   = 2.0
	BurstVelocityDecay = 0.96
)

// Lyric Reveal
const (
	LyricFadeInRate  = 4.0
	LyricFadeOutRate = 0.3
)

// Camera Follow
const (
	CameraStartY    = 2.0
	CameraLead      = 4.0
	CameraSmoothing = 0.03
)
