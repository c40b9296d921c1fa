package resilience

import (
	"errors"
	"sync"
	"time"
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitState string

const (
	CircuitStateClosed   CircuitState = "closed"
	CircuitStateOpen     CircuitState = "open"
	CircuitStateHalfOpen CircuitState = "half_open"
)

type transition struct {
	from, to CircuitState
}

// trialWindow tracks the trial calls let through while half-open.
type trialWindow struct {
	inFlight  int
	succeeded int
}

// CircuitBreaker rejects calls to a dependency after FailureThreshold
// consecutive failures, then lets HalfOpenMaxReq trial calls through once
// OpenTimeout has passed. All trial calls must succeed to close it again.
type CircuitBreaker struct {
	mu sync.Mutex

	cfg      CircuitBreakerConfig
	state    CircuitState
	failures int
	trials   trialWindow
	reopenAt time.Time
	now      func() time.Time

	onChange func(from, to CircuitState)
	pending  []transition
}

// NewCircuitBreaker builds a breaker from cfg. Limits are normalized; Enabled
// is ignored here, see CircuitBreakerConfig.Build.
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg.Normalized(),
		state: CircuitStateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers fn to run after every state transition, outside the
// breaker lock.
func (b *CircuitBreaker) OnStateChange(fn func(from, to CircuitState)) {
	if b == nil {
		return
	}
	b.mu.Lock()
	b.onChange = fn
	b.mu.Unlock()
}

func (b *CircuitBreaker) Allow() error {
	b.mu.Lock()
	defer b.unlockAndNotify()

	b.expireOpen()
	switch b.state {
	case CircuitStateOpen:
		return ErrCircuitOpen
	case CircuitStateHalfOpen:
		if b.trials.inFlight+b.trials.succeeded >= b.cfg.HalfOpenMaxReq {
			return ErrCircuitOpen
		}
		b.trials.inFlight++
	}
	return nil
}

func (b *CircuitBreaker) RecordSuccess() {
	b.mu.Lock()
	defer b.unlockAndNotify()

	if b.state != CircuitStateHalfOpen {
		b.failures = 0
		return
	}
	b.trials.inFlight = max(b.trials.inFlight-1, 0)
	b.trials.succeeded++
	if b.trials.succeeded >= b.cfg.HalfOpenMaxReq && b.trials.inFlight == 0 {
		b.moveTo(CircuitStateClosed)
	}
}

func (b *CircuitBreaker) RecordFailure() {
	b.mu.Lock()
	defer b.unlockAndNotify()

	switch b.state {
	case CircuitStateClosed:
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.moveTo(CircuitStateOpen)
		}
	case CircuitStateHalfOpen:
		b.moveTo(CircuitStateOpen)
	case CircuitStateOpen:
		b.reopenAt = b.now().Add(b.cfg.OpenTimeout)
	}
}

// State reports the current state, moving an expired open breaker to
// half-open first.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.unlockAndNotify()

	b.expireOpen()
	return b.state
}

// Execute runs fn under the breaker. retryable decides which errors count as
// dependency failures; nil treats every error as one. A nil breaker just runs fn.
func (b *CircuitBreaker) Execute(fn func() error, retryable func(error) bool) error {
	if b == nil {
		return fn()
	}
	if err := b.Allow(); err != nil {
		return err
	}

	err := fn()
	if err != nil && (retryable == nil || retryable(err)) {
		b.RecordFailure()
		return err
	}
	b.RecordSuccess()
	return err
}

func (b *CircuitBreaker) expireOpen() {
	if b.state == CircuitStateOpen && !b.now().Before(b.reopenAt) {
		b.moveTo(CircuitStateHalfOpen)
	}
}

// moveTo must be called with mu held.
func (b *CircuitBreaker) moveTo(next CircuitState) {
	if b.state == next {
		return
	}
	b.pending = append(b.pending, transition{from: b.state, to: next})
	b.state = next
	b.failures = 0
	b.trials = trialWindow{}
	b.reopenAt = time.Time{}
	if next == CircuitStateOpen {
		b.reopenAt = b.now().Add(b.cfg.OpenTimeout)
	}
}

func (b *CircuitBreaker) unlockAndNotify() {
	pending, hook := b.pending, b.onChange
	b.pending = nil
	b.mu.Unlock()

	if hook == nil {
		return
	}
	for _, t := range pending {
		hook(t.from, t.to)
	}
}
