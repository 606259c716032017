// Package playback walks a parsed sheet in order, turning tokens into
// timed key press and release calls against an injector.
package playback

import (
	"time"

	"vpiano/internal/logging"
	"vpiano/internal/notation"
	"vpiano/internal/timing"
)

// Injector is the capability boundary to the host keyboard. Calls are
// fire and forget: the driver logs failures at debug level and plays on,
// so a key the host cannot inject degrades to silence instead of
// aborting the piece.
type Injector interface {
	Press(k notation.Key) error
	Release(k notation.Key) error
}

// Option configures a Player.
type Option func(*Player)

// WithSleep replaces the delay function, used by tests to capture the
// sleep schedule instead of waiting it out.
func WithSleep(sleep func(time.Duration)) Option {
	return func(p *Player) { p.sleep = sleep }
}

// WithBlankRest sets the duration of the blank-line rest. The timing
// allocator does not produce this value; it is structural and configured
// by the embedding application.
func WithBlankRest(d time.Duration) Option {
	return func(p *Player) { p.blankRest = d }
}

// WithLogger sets the logger used for injection failures.
func WithLogger(log *logging.Logger) Option {
	return func(p *Player) { p.log = log }
}

// Player drives one sheet at a time. Playback is strictly sequential and
// blocks to completion; there is no cancellation mid-sequence. The
// injector is an exclusive resource: running two players against the
// same injector interleaves press/release pairs, and the caller is
// responsible for never doing that.
type Player struct {
	inj       Injector
	sleep     func(time.Duration)
	blankRest time.Duration
	log       *logging.Logger
}

// DefaultBlankRest is used when the caller does not configure the
// blank-line rest duration.
const DefaultBlankRest = time.Second

// New creates a Player around an injector.
func New(inj Injector, opts ...Option) *Player {
	p := &Player{
		inj:       inj,
		sleep:     time.Sleep,
		blankRest: DefaultBlankRest,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.log == nil {
		p.log = logging.Default().WithComponent("playback")
	}
	return p
}

// Play renders the sheet with the given durations, one token per unit of
// work, in sheet order. It returns once the final token has played.
func (p *Player) Play(sheet *notation.Sheet, d timing.Durations) {
	for _, tok := range sheet.Tokens {
		switch t := tok.(type) {
		case notation.ShortPause:
			p.sleep(seconds(d.ShortPause))

		case notation.Pause:
			p.sleep(seconds(d.Pause))

		case notation.BlankRest:
			p.sleep(p.blankRest)

		case notation.SinglePress:
			p.press(t.Key)
			p.sleep(seconds(d.Single))
			p.release(t.Key)

		case notation.Chord:
			for _, k := range t.Keys {
				p.press(k)
			}
			p.sleep(seconds(d.Single))
			for _, k := range t.Keys {
				p.release(k)
			}

		case notation.Arpeggio:
			for _, k := range t.Keys {
				p.press(k)
				p.sleep(seconds(d.ArpeggioKey))
				p.release(k)
			}
		}
	}
}

func (p *Player) press(k notation.Key) {
	if err := p.inj.Press(k); err != nil {
		p.log.Debug("press failed", "key", string(rune(k)), "error", err)
	}
}

func (p *Player) release(k notation.Key) {
	if err := p.inj.Release(k); err != nil {
		p.log.Debug("release failed", "key", string(rune(k)), "error", err)
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
