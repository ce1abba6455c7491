package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/serverfailure71/CaffeineTake/internal/core/model"
)

type fakeIdle struct {
	idle time.Duration
	err  error
}

func (provider fakeIdle) IdleDuration() (time.Duration, error) {
	return provider.idle, provider.err
}

func TestMatchesProcessName(t *testing.T) {
	require.True(t, matchesProcessName("ffmpeg", "ffmpeg"))
	require.True(t, matchesProcessName("FFmpeg.exe", "ffmpeg"))
	require.True(t, matchesProcessName("handbrake", " HandBrake.EXE "))
	require.False(t, matchesProcessName("ffmpeg2", "ffmpeg"))
	require.False(t, matchesProcessName("", ""))
}

func TestAnyNameMatches(t *testing.T) {
	watched := []string{"ffmpeg", "handbrake"}
	require.True(t, anyNameMatches("HandBrake", watched))
	require.False(t, anyNameMatches("vlc", watched))
	require.False(t, anyNameMatches("ffmpeg", nil))
}

func TestActiveUsesIdleThreshold(t *testing.T) {
	monitor := &ActivityMonitor{idle: fakeIdle{idle: 10 * time.Second}}
	config := model.AutoConfig{IdleThreshold: time.Minute}

	active, err := monitor.Active(config)
	require.NoError(t, err)
	require.True(t, active)

	monitor.idle = fakeIdle{idle: 2 * time.Minute}
	active, err = monitor.Active(config)
	require.NoError(t, err)
	require.False(t, active)
}

func TestActiveWithoutConditionsIsInactive(t *testing.T) {
	monitor := &ActivityMonitor{idle: fakeIdle{idle: 0}}

	active, err := monitor.Active(model.AutoConfig{})
	require.NoError(t, err)
	require.False(t, active)
}

func TestActiveIdleUnsupportedFallsBack(t *testing.T) {
	monitor := &ActivityMonitor{idle: fakeIdle{err: ErrIdleUnsupported}}
	config := model.AutoConfig{IdleThreshold: time.Minute}

	active, err := monitor.Active(config)
	require.NoError(t, err)
	require.False(t, active)
}

func TestActiveReportsIdleError(t *testing.T) {
	monitor := &ActivityMonitor{idle: fakeIdle{err: errors.New("probe failed")}}
	config := model.AutoConfig{IdleThreshold: time.Minute}

	active, err := monitor.Active(config)
	require.Error(t, err)
	require.False(t, active)
}
