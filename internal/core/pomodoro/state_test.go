package pomodoro

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"overfocus/internal/core/model"
)

func TestStateAdvance(t *testing.T) {
	config := model.DefaultPomodoroConfig()

	tests := []struct {
		name        string
		from        state
		want        state
		wantChanged bool
	}{
		{
			name: "work counts up",
			from: state{stage: StageWork, elapsed: 10, command: CommandNone},
			want: state{stage: StageWork, elapsed: 11, command: CommandNone},
		},
		{
			name:        "work to short break",
			from:        state{stage: StageWork, elapsed: 1499, cycle: 1, command: CommandNone},
			want:        state{stage: StageShortBreak, cycle: 1, command: CommandNone},
			wantChanged: true,
		},
		{
			name:        "last work interval to long break",
			from:        state{stage: StageWork, elapsed: 1499, cycle: 2, command: CommandNone},
			want:        state{stage: StageLongBreak, cycle: 2, command: CommandNone},
			wantChanged: true,
		},
		{
			name:        "short break to work",
			from:        state{stage: StageShortBreak, elapsed: 299, cycle: 0, command: CommandNone},
			want:        state{stage: StageWork, cycle: 1, command: CommandNone},
			wantChanged: true,
		},
		{
			name: "short break counts up",
			from: state{stage: StageShortBreak, elapsed: 298, command: CommandNone},
			want: state{stage: StageShortBreak, elapsed: 299, command: CommandNone},
		},
		{
			name:        "long break completes a pomodoro",
			from:        state{stage: StageLongBreak, elapsed: 1799, cycle: 2, pomodoros: 4, command: CommandNone},
			want:        state{stage: StageWork, cycle: 0, pomodoros: 5, command: CommandNone},
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.from
			from, changed := s.advance(config)
			assert.Equal(t, tt.from.stage, from)
			assert.Equal(t, tt.wantChanged, changed)
			assert.Equal(t, tt.want, s)
		})
	}
}

// Every reachable state keeps elapsed below the stage duration and the
// cycle inside [0, LastCycle].
func TestStateAdvanceInvariants(t *testing.T) {
	config := model.PomodoroConfig{
		Work:       4 * time.Second,
		ShortBreak: 2 * time.Second,
		LongBreak:  3 * time.Second,
		LastCycle:  2,
	}

	s := newState()
	pomodoros := 0
	for i := 0; i < 500; i++ {
		from, changed := s.advance(config)
		snapshot := s.snapshot(config)

		assert.Less(t, snapshot.ElapsedDuration(), snapshot.Duration())
		assert.GreaterOrEqual(t, s.cycle, 0)
		assert.LessOrEqual(t, s.cycle, config.LastCycle)
		assert.GreaterOrEqual(t, s.pomodoros, pomodoros)

		if changed && from == StageLongBreak {
			assert.Equal(t, pomodoros+1, s.pomodoros)
			assert.Equal(t, 0, s.cycle)
		} else {
			assert.Equal(t, pomodoros, s.pomodoros)
		}
		pomodoros = s.pomodoros
	}

	// One pomodoro is 3*4 + 2*2 + 3 = 19 ticks.
	assert.Equal(t, 500/19, pomodoros)
}

func TestSnapshotHelpers(t *testing.T) {
	snapshot := Snapshot{
		Stage:   StageShortBreak,
		Elapsed: 90,
		Cycle:   1,
		Command: CommandPause,
		Config:  model.DefaultPomodoroConfig(),
	}

	assert.Equal(t, 5*time.Minute, snapshot.Duration())
	assert.Equal(t, 90*time.Second, snapshot.ElapsedDuration())
	assert.Equal(t, 210*time.Second, snapshot.Remaining())
	assert.Equal(t, 2, snapshot.Round())
	assert.True(t, snapshot.Paused())
	assert.False(t, snapshot.Stopped())
}
