package motion

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/zucenko/parchis/board"
	"github.com/zucenko/parchis/piece"
)

// Clock is sampled once per rendered frame.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type animation struct {
	key     piece.Key
	from    board.Point
	to      board.Point
	token   uint64
	sampled time.Time
	frame   Frame
	onDone  func()
}

// Animator runs at most one live transition per piece. Each Start bumps the
// piece's generation; an animation whose token no longer matches is
// abandoned on the next Advance without drawing or finishing.
//
// Like the registry it belongs to the render loop and takes no locks.
type Animator struct {
	Duration time.Duration
	Hop      float64

	tweens     map[*gween.Tween]*animation
	current    map[piece.Key]*animation
	generation map[piece.Key]uint64
}

func NewAnimator(duration time.Duration, hop float64) *Animator {
	return &Animator{
		Duration:   duration,
		Hop:        hop,
		tweens:     make(map[*gween.Tween]*animation),
		current:    make(map[piece.Key]*animation),
		generation: make(map[piece.Key]uint64),
	}
}

// Start begins moving key towards to and returns the new generation token.
// If key is already moving, the new transition starts from its current
// interpolated point instead of from.
func (a *Animator) Start(key piece.Key, from, to board.Point, now time.Time, onDone func()) uint64 {
	if running, ok := a.current[key]; ok {
		from = running.frame.Point
	}
	a.generation[key]++
	anim := &animation{
		key:     key,
		from:    from,
		to:      to,
		token:   a.generation[key],
		sampled: now,
		frame:   Frame{Point: from},
		onDone:  onDone,
	}
	seconds := float32(a.Duration.Seconds())
	if seconds < 0 {
		seconds = 0
	}
	a.tweens[gween.New(0, 1, seconds, ease.Linear)] = anim
	a.current[key] = anim
	return anim.token
}

// Advance moves every live animation to now. Finished animations fire
// their onDone and release the piece back to its resolved position.
func (a *Animator) Advance(now time.Time) {
	for tween, anim := range a.tweens {
		if anim.token != a.generation[anim.key] {
			delete(a.tweens, tween)
			continue
		}
		dt := now.Sub(anim.sampled).Seconds()
		if dt < 0 {
			dt = 0
		}
		anim.sampled = now
		t, finished := tween.Update(float32(dt))
		if finished {
			t = 1
		}
		anim.frame = Interpolate(anim.from, anim.to, float64(t), a.Hop)
		if !finished {
			continue
		}
		delete(a.tweens, tween)
		if a.current[anim.key] == anim {
			delete(a.current, anim.key)
		}
		if anim.onDone != nil {
			anim.onDone()
		}
	}
}

// Position returns the latest frame of key while it is moving.
func (a *Animator) Position(key piece.Key) (Frame, bool) {
	anim, ok := a.current[key]
	if !ok {
		return Frame{}, false
	}
	return anim.frame, true
}

// Target returns where the live animation of key ends.
func (a *Animator) Target(key piece.Key) (board.Point, bool) {
	anim, ok := a.current[key]
	if !ok {
		return board.Point{}, false
	}
	return anim.to, true
}

func (a *Animator) Generation(key piece.Key) uint64 {
	return a.generation[key]
}

// Active is the number of pieces currently moving.
func (a *Animator) Active() int {
	return len(a.current)
}

// Clear abandons every animation; pieces snap to their resolved positions.
func (a *Animator) Clear() {
	for key := range a.current {
		a.generation[key]++
	}
	a.current = make(map[piece.Key]*animation)
	a.tweens = make(map[*gween.Tween]*animation)
}
