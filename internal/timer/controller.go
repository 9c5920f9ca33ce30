package timer

import (
	"fmt"
	"log"
	"sync"
	"time"
)

// Alerter plays the end-of-phase sounds. Implementations must swallow
// playback failures; a session is allowed to end silently.
type Alerter interface {
	// Prime readies the audio backend. Called once per process, on
	// the first session start.
	Prime()
	WorkEnd()
	RestEnd()
	// Silence stops any currently playing alert. Alerts are shared
	// across sessions, so starting one phase cuts off another's sound.
	Silence()
}

// Notifier shows a desktop notification. Failures stay internal.
type Notifier interface {
	Notify(title, body string)
}

// Completer marks a task finished in the backing store once its final
// cycle ends.
type Completer func(taskID int64) error

// Config holds the phase lengths.
type Config struct {
	Work time.Duration
	Rest time.Duration
}

// DefaultConfig is the classic 25/5 split.
func DefaultConfig() Config {
	return Config{Work: 25 * time.Minute, Rest: 5 * time.Minute}
}

// Controller owns the session table and one ticker per running
// session. All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	cfg      Config
	clock    Clock
	alerter  Alerter
	notifier Notifier
	complete Completer
	interval time.Duration
	onEvent  func(Event)

	sessions map[int64]*Session
	cancels  map[int64]chan struct{}
	closed   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock substitutes the wall-clock source.
func WithClock(c Clock) Option {
	return func(ctrl *Controller) { ctrl.clock = c }
}

// WithTickInterval overrides the 1-second tick, for tests.
func WithTickInterval(d time.Duration) Option {
	return func(ctrl *Controller) { ctrl.interval = d }
}

// New builds a Controller. complete may be nil.
func New(cfg Config, alerter Alerter, notifier Notifier, complete Completer, opts ...Option) *Controller {
	c := &Controller{
		cfg:      cfg,
		clock:    systemClock{},
		alerter:  alerter,
		notifier: notifier,
		complete: complete,
		interval: time.Second,
		sessions: make(map[int64]*Session),
		cancels:  make(map[int64]chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetEventHook registers a callback invoked after each phase expiry's
// side effects, from the ticker goroutine. Used by the host UI to
// refresh itself.
func (c *Controller) SetEventHook(fn func(Event)) {
	c.mu.Lock()
	c.onEvent = fn
	c.mu.Unlock()
}

// SetConfig changes the phase lengths for subsequently started phases.
// Running phases keep the duration they started with.
func (c *Controller) SetConfig(cfg Config) {
	c.mu.Lock()
	c.cfg = cfg
	c.mu.Unlock()
}

// Config returns the current phase lengths.
func (c *Controller) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// StartWork creates (or recreates) the session for a task and begins
// its first work phase. Any prior ticker for the task is cancelled
// before the new one is installed.
func (c *Controller) StartWork(task Task) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked(task.ID)
	c.sessions[task.ID] = &Session{
		TaskID:       task.ID,
		TaskName:     task.Name,
		Running:      true,
		Phase:        PhaseWork,
		CurrentCycle: 1,
		TotalCycles:  CyclesFor(task.DurationMinutes),
		StartTime:    c.clock.Now(),
		Duration:     c.cfg.Work,
		Remaining:    c.cfg.Work,
	}
	c.installLocked(task.ID)
	c.mu.Unlock()

	c.alerter.Prime()
	c.alerter.Silence()
}

// StartRest moves an existing session into its rest phase, preserving
// the cycle counters. Unknown task id: no-op.
func (c *Controller) StartRest(id int64) {
	c.startPhase(id, PhaseRest)
}

// AdvanceToNextCycle begins the work phase of the next cycle. The
// cycle counter was already incremented when the previous rest ended.
// Unknown task id: no-op.
func (c *Controller) AdvanceToNextCycle(id int64) {
	c.startPhase(id, PhaseWork)
}

func (c *Controller) startPhase(id int64, phase Phase) {
	c.mu.Lock()
	s, ok := c.sessions[id]
	if !ok || c.closed {
		c.mu.Unlock()
		return
	}
	c.cancelLocked(id)
	d := c.cfg.Work
	if phase == PhaseRest {
		d = c.cfg.Rest
	}
	s.Phase = phase
	s.Running = true
	s.StartTime = c.clock.Now()
	s.Duration = d
	s.Remaining = d
	c.installLocked(id)
	c.mu.Unlock()

	c.alerter.Silence()
}

// Stop halts ticking and playback for a session without deleting it.
// Unknown task id: no-op.
func (c *Controller) Stop(id int64) {
	c.mu.Lock()
	c.cancelLocked(id)
	if s, ok := c.sessions[id]; ok {
		s.Running = false
	}
	c.mu.Unlock()

	c.alerter.Silence()
}

// Reset halts ticking and playback and deletes the session entirely.
// Unknown task id: no-op.
func (c *Controller) Reset(id int64) {
	c.mu.Lock()
	c.cancelLocked(id)
	delete(c.sessions, id)
	c.mu.Unlock()

	c.alerter.Silence()
}

// Restart resets a task's session and starts it over from cycle one.
func (c *Controller) Restart(task Task) {
	c.Reset(task.ID)
	c.StartWork(task)
}

// Get returns a copy of the session for a task.
func (c *Controller) Get(id int64) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.sessions[id]
	if !ok {
		return Session{}, false
	}
	return *s, true
}

// Snapshot returns a copy of the whole session table.
func (c *Controller) Snapshot() map[int64]Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[int64]Session, len(c.sessions))
	for id, s := range c.sessions {
		out[id] = *s
	}
	return out
}

// Close cancels every ticker and silences playback. The controller
// is unusable afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	for id := range c.cancels {
		c.cancelLocked(id)
	}
	c.closed = true
	c.mu.Unlock()

	c.alerter.Silence()
}

// installLocked starts the ticker goroutine for id. Caller holds mu.
func (c *Controller) installLocked(id int64) {
	done := make(chan struct{})
	c.cancels[id] = done
	t := time.NewTicker(c.interval)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case <-t.C:
				c.tick(id)
			}
		}
	}()
}

// cancelLocked stops any ticker installed for id. Caller holds mu.
func (c *Controller) cancelLocked(id int64) {
	if done, ok := c.cancels[id]; ok {
		close(done)
		delete(c.cancels, id)
	}
}

// tick recomputes remaining time for one session from the wall-clock
// delta. A tick that fires after its session was stopped or deleted
// is a no-op: the session is re-fetched by id here, never captured.
func (c *Controller) tick(id int64) {
	c.mu.Lock()
	s, ok := c.sessions[id]
	if !ok || !s.Running {
		c.mu.Unlock()
		return
	}
	remaining := s.Duration - c.clock.Now().Sub(s.StartTime)
	if remaining > 0 {
		s.Remaining = remaining
		c.mu.Unlock()
		return
	}

	c.cancelLocked(id)
	next, ev := advance(*s)
	*s = next
	hook := c.onEvent
	c.mu.Unlock()

	c.dispatch(next, ev)
	if hook != nil {
		hook(ev)
	}
}

// dispatch fires the side effects for an expired phase. Playback and
// notification failures never reach the caller.
func (c *Controller) dispatch(s Session, ev Event) {
	c.alerter.Silence()

	switch ev.Kind {
	case EventWorkEnded, EventTaskCompleted:
		c.alerter.WorkEnd()
	case EventRestEnded:
		c.alerter.RestEnd()
	}

	switch {
	case ev.Kind == EventTaskCompleted:
		c.notifier.Notify("Task complete",
			fmt.Sprintf("%s: all %d cycles finished", ev.TaskName, ev.Total))
		if c.complete != nil {
			if err := c.complete(ev.TaskID); err != nil {
				log.Printf("timer: mark task %d complete: %v", ev.TaskID, err)
			}
		}
	case ev.Kind == EventWorkEnded:
		c.notifier.Notify("Work phase over",
			fmt.Sprintf("%s: time for a break (cycle %d/%d)", ev.TaskName, ev.Cycle, ev.Total))
	case ev.Kind == EventRestEnded && s.Phase == PhaseDone:
		c.notifier.Notify("Session finished",
			fmt.Sprintf("%s: no cycles left", ev.TaskName))
	case ev.Kind == EventRestEnded:
		c.notifier.Notify("Break over",
			fmt.Sprintf("%s: cycle %d/%d is ready", ev.TaskName, ev.Cycle, ev.Total))
	}
}
