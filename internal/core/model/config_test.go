package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestModeNextCycle(t *testing.T) {
	mode := ModeDisabled
	var visited []Mode
	for i := 0; i < 4; i++ {
		mode = mode.Next()
		visited = append(visited, mode)
	}
	require.Equal(t, []Mode{ModeEnabled, ModeAuto, ModeTimer, ModeDisabled}, visited)
}

func TestParseModeRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeDisabled, ModeEnabled, ModeAuto, ModeTimer} {
		require.Equal(t, mode, ParseMode(mode.String()))
	}
	require.Equal(t, ModeDisabled, ParseMode("garbage"))
}

func TestSanitizedRepairsBadValues(t *testing.T) {
	config := Config{
		Auto:  AutoConfig{ScanInterval: 0, IdleThreshold: -time.Second},
		Timer: TimerConfig{Duration: -time.Minute},
	}.Sanitized()

	require.Equal(t, 2*time.Second, config.Auto.ScanInterval)
	require.Equal(t, time.Duration(0), config.Auto.IdleThreshold)
	require.Equal(t, time.Duration(0), config.Timer.Duration)
}

func TestSanitizedKeepsValidValues(t *testing.T) {
	config := Config{
		Auto:  AutoConfig{ScanInterval: 5 * time.Second, IdleThreshold: time.Minute},
		Timer: TimerConfig{Duration: time.Hour},
	}.Sanitized()

	require.Equal(t, 5*time.Second, config.Auto.ScanInterval)
	require.Equal(t, time.Minute, config.Auto.IdleThreshold)
	require.Equal(t, time.Hour, config.Timer.Duration)
}

func TestModeConfigFor(t *testing.T) {
	config := Config{
		Enabled: ModeConfig{KeepDisplayOn: true},
		Auto:    AutoConfig{ModeConfig: ModeConfig{DisableOnLockScreen: true}},
		Timer:   TimerConfig{ModeConfig: ModeConfig{KeepDisplayOn: true, DisableOnLockScreen: true}},
	}

	require.Equal(t, ModeConfig{KeepDisplayOn: true}, config.ModeConfigFor(ModeEnabled))
	require.Equal(t, ModeConfig{DisableOnLockScreen: true}, config.ModeConfigFor(ModeAuto))
	require.Equal(t, ModeConfig{KeepDisplayOn: true, DisableOnLockScreen: true}, config.ModeConfigFor(ModeTimer))
	require.Equal(t, ModeConfig{}, config.ModeConfigFor(ModeDisabled))
}
