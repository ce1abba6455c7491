package coordinator

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

// recordingSignal records every Assert call and can be told to fail.
type recordingSignal struct {
	mu    sync.Mutex
	calls []assertCall
	fail  bool
}

type assertCall struct {
	active        bool
	keepDisplayOn bool
}

func (signal *recordingSignal) Assert(active bool, keepDisplayOn bool) error {
	signal.mu.Lock()
	defer signal.mu.Unlock()
	if signal.fail {
		return errors.New("assert rejected")
	}
	signal.calls = append(signal.calls, assertCall{active: active, keepDisplayOn: keepDisplayOn})
	return nil
}

func (signal *recordingSignal) setFail(fail bool) {
	signal.mu.Lock()
	defer signal.mu.Unlock()
	signal.fail = fail
}

func (signal *recordingSignal) callCount() int {
	signal.mu.Lock()
	defer signal.mu.Unlock()
	return len(signal.calls)
}

func (signal *recordingSignal) lastCall(t *testing.T) assertCall {
	t.Helper()
	signal.mu.Lock()
	defer signal.mu.Unlock()
	require.NotEmpty(t, signal.calls)
	return signal.calls[len(signal.calls)-1]
}

type stubChecker struct {
	mu     sync.Mutex
	active bool
	err    error
}

func (checker *stubChecker) Active(config model.AutoConfig) (bool, error) {
	checker.mu.Lock()
	defer checker.mu.Unlock()
	return checker.active, checker.err
}

func (checker *stubChecker) set(active bool) {
	checker.mu.Lock()
	defer checker.mu.Unlock()
	checker.active = active
}

func testConfig() model.Config {
	return model.Config{
		Enabled: model.ModeConfig{KeepDisplayOn: true},
		Auto: model.AutoConfig{
			ModeConfig:   model.ModeConfig{KeepDisplayOn: true},
			ScanInterval: 10 * time.Millisecond,
		},
		Timer: model.TimerConfig{
			ModeConfig: model.ModeConfig{KeepDisplayOn: true},
			Duration:   time.Hour,
		},
	}
}

func TestSetModeEnabledAsserts(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	coord.SetMode(model.ModeEnabled)

	require.Equal(t, model.ModeEnabled, coord.CurrentMode())
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())
	require.Equal(t, 1, signal.callCount())
	require.Equal(t, assertCall{active: true, keepDisplayOn: true}, signal.lastCall(t))
}

func TestDisabledModeReleasesAssertion(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	coord.SetMode(model.ModeEnabled)
	coord.SetMode(model.ModeDisabled)

	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())
	require.False(t, coord.DisplayOnAsserted())
	require.Equal(t, assertCall{active: false, keepDisplayOn: false}, signal.lastCall(t))
}

func TestToggleCycleVisitsEveryModeOnce(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	var visited []model.Mode
	for i := 0; i < 4; i++ {
		coord.ToggleMode()
		visited = append(visited, coord.CurrentMode())
	}

	require.Equal(t, []model.Mode{
		model.ModeEnabled,
		model.ModeAuto,
		model.ModeTimer,
		model.ModeDisabled,
	}, visited)
}

func TestLockSuppressesDisplayOnWithoutChangingExecutionState(t *testing.T) {
	signal := &recordingSignal{}
	config := testConfig()
	config.Enabled.DisableOnLockScreen = true
	coord := New(signal, config, nil)

	coord.SetMode(model.ModeEnabled)
	require.Equal(t, assertCall{active: true, keepDisplayOn: true}, signal.lastCall(t))

	coord.OnSessionLocked()
	require.Equal(t, model.SessionLocked, coord.CurrentSessionState())
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())
	require.False(t, coord.DisplayOnAsserted())
	require.Equal(t, assertCall{active: true, keepDisplayOn: false}, signal.lastCall(t))

	coord.OnSessionUnlocked()
	require.Equal(t, model.SessionUnlocked, coord.CurrentSessionState())
	require.True(t, coord.DisplayOnAsserted())
	require.Equal(t, assertCall{active: true, keepDisplayOn: true}, signal.lastCall(t))
}

func TestLockWithDisplayOnPermittedThroughLock(t *testing.T) {
	signal := &recordingSignal{}
	config := testConfig()
	config.Enabled.DisableOnLockScreen = false
	coord := New(signal, config, nil)

	coord.SetMode(model.ModeEnabled)
	before := signal.callCount()

	// DisableOnLockScreen=false lets display-on survive the lock, so no
	// new assert call is needed.
	coord.OnSessionLocked()
	require.Equal(t, before, signal.callCount())
	require.True(t, coord.DisplayOnAsserted())

	// Flipping the option and replaying the lock suppresses display-on.
	config.Enabled.DisableOnLockScreen = true
	coord.UpdateConfig(config)
	coord.OnSessionLocked()
	require.Equal(t, assertCall{active: true, keepDisplayOn: false}, signal.lastCall(t))
}

type policyRecorder struct {
	mu     sync.Mutex
	events []string
}

func (recorder *policyRecorder) add(event string) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.events = append(recorder.events, event)
}

func (recorder *policyRecorder) sequence() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]string(nil), recorder.events...)
}

type fakePolicy struct {
	recorder *policyRecorder
}

func (policy *fakePolicy) Start(sink Sink) {
	policy.recorder.add("start")
	sink.ReportDecision(true)
}

func (policy *fakePolicy) Stop() {
	policy.recorder.add("stop")
}

func TestPolicyStartStopStrictAlternation(t *testing.T) {
	signal := &recordingSignal{}
	recorder := &policyRecorder{}
	coord := New(signal, testConfig(), nil)
	coord.policyFactory = func(model.Mode) Policy {
		return &fakePolicy{recorder: recorder}
	}

	coord.SetMode(model.ModeEnabled)
	coord.SetMode(model.ModeEnabled)
	coord.SetMode(model.ModeAuto)
	coord.Shutdown()

	// Each SetMode stops the previous policy before starting the next,
	// including re-entering the current mode; Shutdown stops the last.
	require.Equal(t, []string{"start", "stop", "start", "stop", "start", "stop"}, recorder.sequence())
}

func TestRedundantSetModeProducesNoExtraAssert(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	coord.SetMode(model.ModeEnabled)
	count := signal.callCount()

	coord.SetMode(model.ModeEnabled)
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())
	require.Equal(t, count, signal.callCount())
}

func TestAssertFailureLeavesStateUnchanged(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	signal.setFail(true)
	coord.SetMode(model.ModeEnabled)
	require.Equal(t, model.ModeEnabled, coord.CurrentMode())
	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())
	require.False(t, coord.DisplayOnAsserted())

	// The next stimulus retries naturally.
	signal.setFail(false)
	coord.RefreshExecutionState()
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())
	require.Equal(t, assertCall{active: true, keepDisplayOn: true}, signal.lastCall(t))
}

func TestTimerModeZeroDurationStaysInactive(t *testing.T) {
	signal := &recordingSignal{}
	config := testConfig()
	config.Timer.Duration = 0
	coord := New(signal, config, nil)

	coord.SetMode(model.ModeTimer)
	require.Equal(t, model.ModeTimer, coord.CurrentMode())
	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())
	require.Equal(t, 0, signal.callCount())
}

func TestTimerModeExpires(t *testing.T) {
	signal := &recordingSignal{}
	config := testConfig()
	config.Timer.Duration = 20 * time.Millisecond
	coord := New(signal, config, nil)

	coord.SetMode(model.ModeTimer)
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())

	require.Eventually(t, func() bool {
		return coord.CurrentExecutionState() == model.StateInactive
	}, time.Second, 5*time.Millisecond)
	require.Equal(t, model.ModeTimer, coord.CurrentMode())
}

func TestAutoModeFollowsChecker(t *testing.T) {
	signal := &recordingSignal{}
	checker := &stubChecker{}
	coord := New(signal, testConfig(), nil)
	coord.SetActivityChecker(checker)

	coord.SetMode(model.ModeAuto)
	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())

	checker.set(true)
	require.Eventually(t, func() bool {
		return coord.CurrentExecutionState() == model.StateActive
	}, time.Second, 5*time.Millisecond)

	checker.set(false)
	require.Eventually(t, func() bool {
		return coord.CurrentExecutionState() == model.StateInactive
	}, time.Second, 5*time.Millisecond)
}

func TestStaleTimerTickDroppedAfterModeChange(t *testing.T) {
	signal := &recordingSignal{}
	config := testConfig()
	config.Timer.Duration = 30 * time.Millisecond
	coord := New(signal, config, nil)

	coord.SetMode(model.ModeTimer)
	coord.SetMode(model.ModeEnabled)

	// Wait past the original timer expiry; the stale report must not
	// flip the Enabled assertion off.
	time.Sleep(80 * time.Millisecond)
	require.Equal(t, model.StateActive, coord.CurrentExecutionState())
}

func TestShutdownForcesInactive(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)

	coord.SetMode(model.ModeEnabled)
	coord.Shutdown()

	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())
	require.Equal(t, assertCall{active: false, keepDisplayOn: false}, signal.lastCall(t))

	// Further stimuli are ignored after shutdown.
	coord.SetMode(model.ModeEnabled)
	require.Equal(t, model.StateInactive, coord.CurrentExecutionState())
}

func TestSubscribeReceivesExecutionEvents(t *testing.T) {
	signal := &recordingSignal{}
	coord := New(signal, testConfig(), nil)
	events := coord.Subscribe(16)

	coord.SetMode(model.ModeEnabled)

	var seen []EventType
	for len(seen) < 2 {
		select {
		case event := <-events:
			seen = append(seen, event.Type)
		case <-time.After(time.Second):
			t.Fatal("expected mode and execution events")
		}
	}
	require.Contains(t, seen, EventModeChange)
	require.Contains(t, seen, EventExecutionChange)

	coord.Shutdown()
	require.Eventually(t, func() bool {
		_, open := <-events
		return !open
	}, time.Second, 5*time.Millisecond)
}
