package mindgames

import (
	"fmt"
	"sync"
	"time"
)

const (
	DefaultQuickDrawDelay = 3 * time.Second
	DefaultQuizDelay      = 2 * time.Second
)

// Controller owns one player's game session. It is safe for concurrent use;
// deferred advances take the same lock as player actions.
type Controller struct {
	mu      sync.Mutex
	session *Session
	// gen is bumped whenever the session is replaced or discarded so a
	// deferred advance can tell it is stale.
	gen     uint64
	pending Timer

	sched          Scheduler
	rng            Rand
	now            func() time.Time
	quickDrawDelay time.Duration
	quizDelay      time.Duration
	onStart        func(GameID)
	onComplete     func(Session)
}

// Option configures a Controller.
type Option func(*Controller)

// WithScheduler replaces the wall clock used for deferred advances.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithRand replaces the random source used to pick puzzles and AI guesses.
func WithRand(r Rand) Option {
	return func(c *Controller) { c.rng = r }
}

// WithClock replaces time.Now for session timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithDelays sets the QuickDraw and QuizRush auto-advance delays.
func WithDelays(quickDraw, quiz time.Duration) Option {
	return func(c *Controller) {
		if quickDraw > 0 {
			c.quickDrawDelay = quickDraw
		}
		if quiz > 0 {
			c.quizDelay = quiz
		}
	}
}

// OnStart registers a hook called after every successful Start.
func OnStart(fn func(GameID)) Option {
	return func(c *Controller) { c.onStart = fn }
}

// NewController creates a controller with no active session.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		sched:          WallClock(),
		rng:            newRand(),
		now:            time.Now,
		quickDrawDelay: DefaultQuickDrawDelay,
		quizDelay:      DefaultQuizDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnComplete registers fn to run once for every session that reaches the
// completed stage. fn is called without the controller lock held.
func (c *Controller) OnComplete(fn func(Session)) {
	c.mu.Lock()
	c.onComplete = fn
	c.mu.Unlock()
}

// Start begins a new session of the given game, discarding any current one.
func (c *Controller) Start(game GameID) (Outcome, error) {
	if _, err := ParseGameID(string(game)); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	c.discardLocked()
	c.session = &Session{
		Game:      game,
		Stage:     StagePlaying,
		Payload:   newPayload(game, c.rng),
		StartedAt: c.now(),
	}
	snap := c.session.clone()
	onStart := c.onStart
	c.mu.Unlock()

	if onStart != nil {
		onStart(game)
	}

	return Outcome{
		Session: &snap,
		Cue:     CueClick,
		Notice: &Notice{
			Title:       "Game Started!",
			Description: fmt.Sprintf("Get ready to play %s", game.Title()),
		},
	}, nil
}

// Reset returns to game selection, cancelling any pending advance.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.discardLocked()
	c.mu.Unlock()
}

// Current returns a copy of the active session, or nil when none is selected.
func (c *Controller) Current() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return nil
	}
	snap := c.session.clone()
	return &snap
}

// Snapshot is Current wrapped as an Outcome.
func (c *Controller) Snapshot() Outcome {
	return Outcome{Session: c.Current()}
}

// AdvancePending reports whether a deferred advance is scheduled.
func (c *Controller) AdvancePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending != nil
}

func (c *Controller) discardLocked() {
	if c.pending != nil {
		c.pending.Stop()
		c.pending = nil
	}
	c.gen++
	c.session = nil
}

// act runs fn against the active session of the given game. fn may only
// mutate the session when it returns a nil error.
func (c *Controller) act(game GameID, fn func(s *Session) (Outcome, error)) (Outcome, error) {
	return c.run(game, ErrWrongGame, fn)
}

// run is act with a caller-chosen error for a session of another game.
func (c *Controller) run(game GameID, wrongGame error, fn func(s *Session) (Outcome, error)) (Outcome, error) {
	c.mu.Lock()
	s := c.session
	switch {
	case s == nil:
		c.mu.Unlock()
		return Outcome{}, ErrNoSession
	case s.Game != game:
		c.mu.Unlock()
		return Outcome{}, wrongGame
	case s.Stage == StageCompleted:
		c.mu.Unlock()
		return Outcome{}, ErrAlreadyCompleted
	}

	out, err := fn(s)
	finished := c.markCompletedLocked(s, err == nil)
	snap := s.clone()
	out.Session = &snap
	hook := c.onComplete
	c.mu.Unlock()

	if finished && hook != nil {
		hook(snap)
	}
	return out, err
}

// markCompletedLocked stamps CompletedAt the first time a session is seen in
// the completed stage and reports whether that happened now.
func (c *Controller) markCompletedLocked(s *Session, ok bool) bool {
	if !ok || s.Stage != StageCompleted || s.CompletedAt != nil {
		return false
	}
	t := c.now()
	s.CompletedAt = &t
	return true
}

// deferLocked schedules step against the current session generation.
func (c *Controller) deferLocked(d time.Duration, step func(s *Session)) {
	gen := c.gen
	c.pending = c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		if c.gen != gen || c.session == nil {
			c.mu.Unlock()
			return
		}
		c.pending = nil
		s := c.session
		step(s)
		finished := c.markCompletedLocked(s, true)
		snap := s.clone()
		hook := c.onComplete
		c.mu.Unlock()

		if finished && hook != nil {
			hook(snap)
		}
	})
}
