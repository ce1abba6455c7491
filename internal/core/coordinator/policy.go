package coordinator

import (
	"log/slog"
	"time"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// Sink receives activity verdicts from the running mode policy.
type Sink interface {
	ReportDecision(active bool)
}

// Policy drives the activity verdict while its mode is selected.
// Start and Stop are called in strict alternation by the coordinator.
type Policy interface {
	Start(sink Sink)
	Stop()
}

// ActivityChecker decides whether the auto-mode activity condition
// holds right now, given the current auto configuration.
type ActivityChecker interface {
	Active(config model.AutoConfig) (bool, error)
}

type disabledPolicy struct{}

func (disabledPolicy) Start(sink Sink) { sink.ReportDecision(false) }
func (disabledPolicy) Stop()           {}

type enabledPolicy struct{}

func (enabledPolicy) Start(sink Sink) { sink.ReportDecision(true) }
func (enabledPolicy) Stop()           {}

// autoPolicy inspects system activity at a fixed interval and reports
// edge-triggered verdict changes.
type autoPolicy struct {
	checker func() ActivityChecker
	config  func() model.AutoConfig
	logger  *slog.Logger
	stop    chan struct{}
}

func (policy *autoPolicy) Start(sink Sink) {
	policy.stop = make(chan struct{})
	verdict := policy.evaluate()
	sink.ReportDecision(verdict)
	go policy.loop(sink, verdict, policy.stop)
}

func (policy *autoPolicy) Stop() {
	if policy.stop != nil {
		close(policy.stop)
		policy.stop = nil
	}
}

func (policy *autoPolicy) loop(sink Sink, last bool, stop <-chan struct{}) {
	ticker := time.NewTicker(policy.config().ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			verdict := policy.evaluate()
			if verdict != last {
				last = verdict
				sink.ReportDecision(verdict)
			}
		}
	}
}

func (policy *autoPolicy) evaluate() bool {
	checker := policy.checker()
	if checker == nil {
		return false
	}
	active, err := checker.Active(policy.config())
	if err != nil {
		policy.logger.Warn("activity check failed", "error", err)
		return false
	}
	return active
}

// timerPolicy holds the assertion for a configured duration and then
// deactivates. It does not self-restart.
type timerPolicy struct {
	config func() model.TimerConfig
	timer  *time.Timer
}

func (policy *timerPolicy) Start(sink Sink) {
	duration := policy.config().Duration
	if duration <= 0 {
		sink.ReportDecision(false)
		return
	}
	sink.ReportDecision(true)
	policy.timer = time.AfterFunc(duration, func() {
		sink.ReportDecision(false)
	})
}

func (policy *timerPolicy) Stop() {
	if policy.timer != nil {
		policy.timer.Stop()
		policy.timer = nil
	}
}
