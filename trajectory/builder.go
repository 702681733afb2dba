package trajectory

import (
	"fmt"
	"math"

	"github.com/lixenwraith/beatball/constant"
	"github.com/lixenwraith/beatball/layout"
	"github.com/lixenwraith/beatball/vmath"
)

// Timing selects how segment windows are derived
type Timing int

const (
	// TimingMusical follows the boards' event times
	TimingMusical Timing = iota
	// TimingUniform gives every inter-board segment the same duration
	TimingUniform
)

func (t Timing) String() string {
	switch t {
	case TimingMusical:
		return "musical"
	case TimingUniform:
		return "uniform"
	default:
		return fmt.Sprintf("Timing(%d)", int(t))
	}
}

// ParseTiming accepts the names produced by String
func ParseTiming(s string) (Timing, error) {
	switch s {
	case "musical", "":
		return TimingMusical, nil
	case "uniform":
		return TimingUniform, nil
	default:
		return 0, fmt.Errorf("unknown timing %q", s)
	}
}

// Options configures a Builder, one policy per path
type Options struct {
	Timing Timing

	// LeadIn is the launch segment duration in seconds
	LeadIn float64

	// LeadInFromEvent replaces LeadIn with board 0's event time (floored at 0)
	LeadInFromEvent bool

	// StepGap is the inter-board duration under TimingUniform
	StepGap float64
}

// DefaultOptions uses musical timing with a fixed lead-in
func DefaultOptions() Options {
	return Options{
		Timing:  TimingMusical,
		LeadIn:  constant.DefaultLeadIn,
		StepGap: constant.DefaultStepGap,
	}
}

// Builder converts board layouts into paths
type Builder struct {
	opts Options
}

// NewBuilder creates a builder with the given policy
func NewBuilder(opts Options) *Builder {
	return &Builder{opts: opts}
}

// Options returns the builder's policy
func (b *Builder) Options() Options {
	return b.opts
}

// leadIn resolves the launch segment duration for a layout
func (b *Builder) leadIn(first layout.Board) float64 {
	if b.opts.LeadInFromEvent {
		return math.Max(first.Time, 0)
	}
	return b.opts.LeadIn
}

// Build returns one segment per board, or nil for an empty layout
func (b *Builder) Build(boards []layout.Board) Path {
	if len(boards) == 0 {
		return nil
	}

	path := make(Path, 0, len(boards))

	first := boards[0]
	lead := b.leadIn(first)
	path = append(path, launchSegment(first, lead))

	origin := first.Time
	for i := 1; i < len(boards); i++ {
		from := boards[i-1]
		to := boards[i]

		var start, end float64
		switch b.opts.Timing {
		case TimingUniform:
			start = lead + float64(i-1)*b.opts.StepGap
			end = lead + float64(i)*b.opts.StepGap
		default:
			start = lead + (from.Time - origin)
			end = lead + (to.Time - origin)
		}

		path = append(path, Segment{
			Curve:      hopCurve(from, to),
			StartTime:  start,
			EndTime:    end,
			BoardIndex: i,
		})
	}

	return path
}

// launchSegment drops vertically from above board 0
func launchSegment(first layout.Board, lead float64) Segment {
	target := first.Position
	start := vmath.V2F(target.X, target.Y+constant.LaunchHeight)

	return Segment{
		Curve: vmath.CubicBez{
			P0: start,
			P1: vmath.V2F(start.X, start.Y-constant.LaunchPull),
			P2: vmath.V2F(target.X, target.Y+constant.LaunchPull),
			P3: target,
		},
		StartTime:  0,
		EndTime:    lead,
		BoardIndex: 0,
	}
}

// hopCurve leaves along the source board's tilt, sagging with the musical gap,
// and drops onto the destination from above
// The musical gap shapes the curve under both timing policies
func hopCurve(from, to layout.Board) vmath.CubicBez {
	dt := to.Time - from.Time

	exit := vmath.V2F(
		math.Sin(from.Angle)*constant.ExitSpeed,
		-math.Cos(from.Angle)*constant.ExitSpeed*constant.ExitLift,
	)

	return vmath.CubicBez{
		P0: from.Position,
		P1: vmath.V2F(
			from.Position.X+exit.X,
			from.Position.Y+exit.Y-dt*constant.ExitSag,
		),
		P2: vmath.V2F(
			to.Position.X,
			to.Position.Y+math.Abs(dt)*constant.EntryRise,
		),
		P3: to.Position,
	}
}
