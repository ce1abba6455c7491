package coordinator

import (
	"log/slog"
	"sync"
	"time"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// KeepAwake abstracts the OS primitive that keeps the machine awake.
// Assert must be safe to call redundantly.
type KeepAwake interface {
	Assert(active bool, keepDisplayOn bool) error
}

// Coordinator owns the selected mode, the realized execution state and
// the session state, and reconciles the keep-awake assertion against
// policy verdicts and session lock events.
//
// All stimuli are serialized through one mutex. Policy timers run on
// their own goroutines and funnel back through the epoch-guarded sink,
// so ticks arriving after a policy was stopped are dropped.
type Coordinator struct {
	signal KeepAwake
	logger *slog.Logger

	// transition serializes mode changes and shutdown against each other.
	transition sync.Mutex

	// policyFactory overrides policy construction; nil selects the
	// built-in policies.
	policyFactory func(model.Mode) Policy

	mu        sync.Mutex
	config    model.Config
	checker   ActivityChecker
	mode      model.Mode
	state     model.ExecutionState
	displayOn bool
	session   model.SessionState
	rawActive bool
	epoch     uint64
	policy    Policy
	events    []chan Event
	closed    bool
}

// New creates a coordinator in Disabled mode with the assertion released.
func New(signal KeepAwake, config model.Config, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{
		signal:  signal,
		logger:  logger,
		config:  config.Sanitized(),
		mode:    model.ModeDisabled,
		state:   model.StateInactive,
		session: model.SessionUnlocked,
	}
}

// SetActivityChecker injects the auto-mode activity checker.
func (c *Coordinator) SetActivityChecker(checker ActivityChecker) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checker = checker
}

// Subscribe registers a new observer channel.
func (c *Coordinator) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	c.mu.Lock()
	c.events = append(c.events, ch)
	c.mu.Unlock()
	return ch
}

// SetMode stops the running policy, switches to target and starts its
// policy. Re-entering the current mode performs a full stop/start cycle
// so policies holding timers restart cleanly.
func (c *Coordinator) SetMode(target model.Mode) {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	previous := c.policy
	c.policy = nil
	c.epoch++
	epoch := c.epoch
	c.mode = target
	c.rawActive = false
	c.emitLocked(c.eventLocked(EventModeChange, ""))
	c.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}

	c.logger.Info("mode set", "mode", target.String())

	next := c.newPolicy(target)
	c.mu.Lock()
	c.policy = next
	c.mu.Unlock()

	// Every policy reports an initial verdict, which runs reconciliation.
	next.Start(&policySink{coordinator: c, epoch: epoch})
}

// ToggleMode advances to the next mode in the fixed cycle order.
func (c *Coordinator) ToggleMode() {
	c.SetMode(c.CurrentMode().Next())
}

// OnSessionLocked records a session lock event and reconciles.
func (c *Coordinator) OnSessionLocked() {
	c.setSession(model.SessionLocked)
}

// OnSessionUnlocked records a session unlock event and reconciles.
func (c *Coordinator) OnSessionUnlocked() {
	c.setSession(model.SessionUnlocked)
}

// UpdateConfig replaces the per-mode configuration. The caller should
// follow up with RefreshExecutionState so display options take effect.
func (c *Coordinator) UpdateConfig(config model.Config) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.config = config.Sanitized()
}

// RefreshExecutionState re-runs reconciliation without changing the
// mode or restarting the policy.
func (c *Coordinator) RefreshExecutionState() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.reconcileLocked()
}

// CurrentMode returns the selected mode.
func (c *Coordinator) CurrentMode() model.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// CurrentExecutionState returns the realized execution state.
func (c *Coordinator) CurrentExecutionState() model.ExecutionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentSessionState returns the last observed session state.
func (c *Coordinator) CurrentSessionState() model.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// DisplayOnAsserted reports whether the display-required flag is held.
func (c *Coordinator) DisplayOnAsserted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayOn
}

// Shutdown stops the running policy, forces the execution state to
// Inactive so the OS primitive is never left held, and closes all
// observer channels. The coordinator cannot be reused afterwards.
func (c *Coordinator) Shutdown() {
	c.transition.Lock()
	defer c.transition.Unlock()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	previous := c.policy
	c.policy = nil
	c.epoch++
	c.mode = model.ModeDisabled
	c.rawActive = false
	c.reconcileLocked()
	c.closed = true
	events := c.events
	c.events = nil
	c.mu.Unlock()

	if previous != nil {
		previous.Stop()
	}
	for _, ch := range events {
		close(ch)
	}

	c.logger.Info("coordinator shut down")
}

// policySink binds policy verdicts to the epoch they were issued under.
type policySink struct {
	coordinator *Coordinator
	epoch       uint64
}

func (sink *policySink) ReportDecision(active bool) {
	sink.coordinator.reportDecision(sink.epoch, active)
}

func (c *Coordinator) reportDecision(epoch uint64, active bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		return
	}
	c.rawActive = active
	c.reconcileLocked()
}

func (c *Coordinator) setSession(session model.SessionState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.session = session
	c.logger.Info("session state", "session", session.String())
	c.emitLocked(c.eventLocked(EventSessionChange, ""))
	c.reconcileLocked()
}

// reconcileLocked recomputes the desired execution state and forwards
// it to the keep-awake signal only when it differs from the realized
// state. On assertion failure the realized state is left untouched so
// the next stimulus retries naturally.
func (c *Coordinator) reconcileLocked() {
	desiredState := model.StateInactive
	desiredDisplay := false

	if c.mode != model.ModeDisabled {
		if c.rawActive {
			desiredState = model.StateActive
		}
		config := c.config.ModeConfigFor(c.mode)
		desiredDisplay = config.KeepDisplayOn
		if c.session == model.SessionLocked && desiredDisplay {
			desiredDisplay = !config.DisableOnLockScreen
		}
		if desiredState == model.StateInactive {
			desiredDisplay = false
		}
	}

	if desiredState == c.state && desiredDisplay == c.displayOn {
		return
	}

	if err := c.signal.Assert(desiredState == model.StateActive, desiredDisplay); err != nil {
		c.logger.Error("keep-awake assert failed", "error", err)
		c.emitLocked(c.eventLocked(EventAssertError, err.Error()))
		return
	}

	c.state = desiredState
	c.displayOn = desiredDisplay
	c.logger.Info("execution state updated",
		"state", c.state.String(),
		"display_on", c.displayOn,
	)
	c.emitLocked(c.eventLocked(EventExecutionChange, ""))
}

func (c *Coordinator) newPolicy(mode model.Mode) Policy {
	if c.policyFactory != nil {
		return c.policyFactory(mode)
	}
	switch mode {
	case model.ModeEnabled:
		return enabledPolicy{}
	case model.ModeAuto:
		return &autoPolicy{
			checker: c.activityChecker,
			config:  c.autoConfig,
			logger:  c.logger,
		}
	case model.ModeTimer:
		return &timerPolicy{config: c.timerConfig}
	default:
		return disabledPolicy{}
	}
}

func (c *Coordinator) activityChecker() ActivityChecker {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.checker
}

func (c *Coordinator) autoConfig() model.AutoConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Auto
}

func (c *Coordinator) timerConfig() model.TimerConfig {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.config.Timer
}

func (c *Coordinator) eventLocked(eventType EventType, message string) Event {
	return Event{
		Type:      eventType,
		Mode:      c.mode,
		State:     c.state,
		DisplayOn: c.displayOn,
		Session:   c.session,
		Message:   message,
		At:        time.Now(),
	}
}

func (c *Coordinator) emitLocked(event Event) {
	for _, ch := range c.events {
		select {
		case ch <- event:
		default:
		}
	}
}
