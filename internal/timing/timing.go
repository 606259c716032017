// Package timing apportions a sheet's per-token time budget across token
// categories. Given the average time available per token (sheet length
// divided by token count) and a distribution describing how the caller
// wants pauses, notes, and arpeggios weighted, Allocate produces the
// concrete per-category durations the playback driver sleeps for.
package timing

import "errors"

// SumEpsilon is the tolerance used when checking that the three pause
// proportions sum to 1.0. An exact comparison breaks on values such as
// 0.2+0.3+0.5, which need not round-trip to 1.0 in binary floating point.
const SumEpsilon = 1e-9

// Distribution weights the timeline split. It is built once by the
// embedding application, is immutable, and may be reused across sheets.
type Distribution struct {
	// Short, Standard, and Long are the proportions of pause time given
	// to each standalone pause sub-category. They must sum to 1.0.
	Short    float64 `toml:"short" json:"short" yaml:"short"`
	Standard float64 `toml:"standard" json:"standard" yaml:"standard"`
	Long     float64 `toml:"long" json:"long" yaml:"long"`

	// PauseRatio weights notes against pauses: the note share of the
	// timeline is PauseRatio/(PauseRatio+1). Must be positive.
	PauseRatio float64 `toml:"pause_ratio" json:"pause_ratio" yaml:"pause_ratio"`

	// ManyFastProportion is the fraction of the timeline carved out up
	// front for arpeggio per-key timing. Must lie in [0,1].
	ManyFastProportion float64 `toml:"many_fast_proportion" json:"many_fast_proportion" yaml:"many_fast_proportion"`
}

// Durations holds the allocated per-category durations in seconds.
// They are recomputed per sheet since they scale with that sheet's
// per-token budget. The blank-line rest is deliberately absent: it is a
// structural marker whose duration the caller configures directly, not a
// sub-allocation of the pause budget.
type Durations struct {
	ShortPause  float64 `json:"short_pause"`
	Pause       float64 `json:"pause"`
	LongPause   float64 `json:"long_pause"`
	Single      float64 `json:"single"`
	ArpeggioKey float64 `json:"arpeggio_key"`
}

// Validation failures, in the order Allocate checks them.
var (
	// ErrRatio is returned when PauseRatio is not positive.
	ErrRatio = errors.New("timing: note-pause ratio must be greater than zero")

	// ErrSum is returned when Short+Standard+Long is not 1.0 (within
	// SumEpsilon).
	ErrSum = errors.New("timing: pause distribution percentages must add up to 1.0")

	// ErrFastProportion is returned when ManyFastProportion is outside
	// [0,1].
	ErrFastProportion = errors.New("timing: many_fast_proportion must be between 0.0 and 1.0")
)

// Validate checks the distribution without allocating.
func (d Distribution) Validate() error {
	if d.PauseRatio <= 0 {
		return ErrRatio
	}
	sum := d.Short + d.Standard + d.Long
	if diff := sum - 1.0; diff > SumEpsilon || diff < -SumEpsilon {
		return ErrSum
	}
	if d.ManyFastProportion < 0 || d.ManyFastProportion > 1 {
		return ErrFastProportion
	}
	return nil
}

// Allocate splits the per-token budget into per-category durations.
//
// The timeline is first divided between note time and pause time by
// PauseRatio, then ManyFastProportion is carved out for arpeggio keys
// (they are timed per key rather than per token), and what remains of the
// pause share is split across the three pause sub-categories.
func Allocate(multiplier float64, dist Distribution) (Durations, error) {
	if err := dist.Validate(); err != nil {
		return Durations{}, err
	}

	noteShare := dist.PauseRatio / (dist.PauseRatio + 1)
	pauseShare := 1 - noteShare
	remainingShare := 1 - dist.ManyFastProportion

	pauseBlock := pauseShare * remainingShare

	return Durations{
		ShortPause:  pauseBlock * dist.Short,
		Pause:       pauseBlock * dist.Standard,
		LongPause:   pauseBlock * dist.Long,
		Single:      noteShare * remainingShare * multiplier,
		ArpeggioKey: dist.ManyFastProportion * multiplier,
	}, nil
}
