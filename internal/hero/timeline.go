package hero

import (
	"sync"
	"time"
)

// Phase is a step of the hero title animation.
type Phase string

const (
	Idle     Phase = "idle"
	Enter    Phase = "enter"
	Settle   Phase = "settle"
	ToHeader Phase = "to-header"
	Done     Phase = "done"
)

const (
	enterDelay       = 250 * time.Millisecond
	replayEnterDelay = 100 * time.Millisecond
	enterDuration    = 2000 * time.Millisecond
	// DefaultHold is how long the settled title stays before merging.
	DefaultHold   = 1500 * time.Millisecond
	mergeDuration = 600 * time.Millisecond
	fadeDuration  = 280 * time.Millisecond
)

// Step is a phase and its offset from the start of the sequence.
type Step struct {
	Phase Phase         `json:"phase"`
	At    time.Duration `json:"at"`
}

// Options controls the tail of the sequence.
type Options struct {
	// MergeIntoHeader adds the ToHeader phase after the hold.
	MergeIntoHeader bool
	Hold            time.Duration
}

func (o Options) hold() time.Duration {
	if o.Hold <= 0 {
		return DefaultHold
	}
	return o.Hold
}

// Schedule returns the phase offsets for the first play.
func Schedule(opts Options) []Step {
	return build(enterDelay, opts)
}

// ReplaySchedule returns the phase offsets after a manual replay.
func ReplaySchedule(opts Options) []Step {
	return build(replayEnterDelay, opts)
}

func build(enter time.Duration, opts Options) []Step {
	settle := enter + enterDuration
	steps := []Step{
		{Phase: Idle, At: 0},
		{Phase: Enter, At: enter},
		{Phase: Settle, At: settle},
	}
	if !opts.MergeIntoHeader {
		return append(steps, Step{Phase: Done, At: settle + opts.hold()})
	}
	toHeader := settle + opts.hold()
	return append(steps,
		Step{Phase: ToHeader, At: toHeader},
		Step{Phase: Done, At: toHeader + mergeDuration + fadeDuration},
	)
}

// Timer is the part of *time.Timer the player needs.
type Timer interface {
	Stop() bool
}

// Clock schedules callbacks.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Player walks the phases on timers. Only a replay drives it back to Idle;
// Stop cancels everything outstanding.
type Player struct {
	opts     Options
	clock    Clock
	onChange func(Phase)

	mu     sync.Mutex
	phase  Phase
	gen    int
	timers []Timer
}

// NewPlayer creates an idle player. onChange may be nil; it runs with the
// player locked and must not call back into it.
func NewPlayer(opts Options, clock Clock, onChange func(Phase)) *Player {
	if clock == nil {
		clock = realClock{}
	}
	return &Player{
		opts:     opts,
		clock:    clock,
		onChange: onChange,
		phase:    Idle,
	}
}

// Phase returns the current phase.
func (p *Player) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Start plays the initial sequence.
func (p *Player) Start() {
	p.run(Schedule(p.opts))
}

// Replay resets to Idle and plays the replay sequence.
func (p *Player) Replay() {
	p.run(ReplaySchedule(p.opts))
}

// Stop cancels pending transitions, leaving the current phase in place.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.cancelLocked()
}

func (p *Player) run(steps []Step) {
	p.mu.Lock()
	p.gen++
	p.cancelLocked()
	gen := p.gen
	p.setLocked(Idle)
	for _, step := range steps[1:] {
		phase := step.Phase
		p.timers = append(p.timers, p.clock.AfterFunc(step.At, func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if p.gen != gen {
				return
			}
			p.setLocked(phase)
		}))
	}
	p.mu.Unlock()
}

func (p *Player) setLocked(phase Phase) {
	if p.phase == phase {
		return
	}
	p.phase = phase
	if p.onChange != nil {
		p.onChange(phase)
	}
}

func (p *Player) cancelLocked() {
	for _, t := range p.timers {
		t.Stop()
	}
	p.timers = nil
}
