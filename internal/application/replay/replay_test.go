package replay_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/framecore/internal/application/game"
	"github.com/younwookim/framecore/internal/application/input"
	"github.com/younwookim/framecore/internal/application/replay"
	"github.com/younwookim/framecore/internal/application/scene"
	"github.com/younwookim/framecore/internal/render"
	"github.com/younwookim/framecore/internal/render/noop"
)

// traceScene logs everything the loop hands it.
type traceScene struct {
	scene.Base
	trace []string
}

func (s *traceScene) HandleEvent(e input.Event) { s.trace = append(s.trace, e.String()) }

func (s *traceScene) Update(float64) error {
	s.trace = append(s.trace, "update")
	return nil
}

func (s *traceScene) Render(*render.CommandBuffer, float64) {
	s.trace = append(s.trace, "render")
}

// run drives a loop over src and clock until it quits and returns the trace.
func run(t *testing.T, src input.Source, clock game.Clock, opts ...game.Option) []string {
	t.Helper()
	s := &traceScene{Base: scene.Base{SceneName: "trace"}}
	scenes := scene.NewManager(nil)
	scenes.Push(s)
	backend := noop.New(nil)
	require.NoError(t, backend.Init(320, 240))

	opts = append(opts, game.WithClock(clock), game.WithSleep(func(time.Duration) {}))
	loop, err := game.NewLoop(game.DefaultConfig(), scenes, backend, src, opts...)
	require.NoError(t, err)
	require.NoError(t, loop.Run(context.Background()))
	return s.trace
}

func TestRecorder_Observe(t *testing.T) {
	rec := replay.NewRecorder("demo", time.Second/60)

	events := []input.Event{input.Press(ebiten.KeyD)}
	rec.Observe(0, nil)
	rec.Observe(16*time.Millisecond, events)
	events[0] = input.Press(ebiten.KeyJ) // recorder must hold a copy

	require.Equal(t, 2, rec.IterationCount())
	data := rec.Data()
	assert.Equal(t, replay.FormatVersion, data.Version)
	assert.Equal(t, "demo", data.Stage)
	assert.Equal(t, int64(time.Second/60), data.Step)
	assert.Nil(t, data.Iterations[0].Events)
	assert.Equal(t, []input.Event{input.Press(ebiten.KeyD)}, data.Iterations[1].Events)
	assert.Equal(t, 16*time.Millisecond, data.Iterations[1].Time())

	rec.Stop()
	rec.Observe(time.Second, nil)
	assert.False(t, rec.IsRecording())
	assert.Equal(t, 2, rec.IterationCount())
}

func TestRecorder_SaveEmptyFails(t *testing.T) {
	rec := replay.NewRecorder("demo", time.Second/60)
	err := rec.Save(filepath.Join(t.TempDir(), "empty.json"))
	assert.ErrorIs(t, err, replay.ErrEmpty)
}

func TestGenerateFilename(t *testing.T) {
	at := time.Date(2026, 10, 19, 8, 5, 3, 0, time.UTC)
	assert.Equal(t, "replay_demo_20261019_080503.json", replay.GenerateFilename("demo", at))
}

func TestReplayer_PollAndNow(t *testing.T) {
	r := replay.NewReplayer(replay.ReplayData{
		Iterations: []replay.IterationInput{
			{I: 0, At: 0},
			{I: 1, At: int64(10 * time.Millisecond), Events: []input.Event{input.Press(ebiten.KeySpace)}},
		},
	})

	assert.Equal(t, time.Duration(0), r.Now())
	assert.Empty(t, r.Poll(nil))

	assert.Equal(t, 10*time.Millisecond, r.Now())
	assert.Equal(t, []input.Event{input.Press(ebiten.KeySpace)}, r.Poll(nil))
	assert.True(t, r.Done())

	assert.Equal(t, 10*time.Millisecond, r.Now(), "clock holds after the end")
	assert.Equal(t, []input.Event{{Kind: input.Quit}}, r.Poll(nil))

	r.Reset()
	assert.Equal(t, 0, r.CurrentIteration())
	assert.Equal(t, 2, r.TotalIterations())
}

func TestReplayer_EmptyQuitsImmediately(t *testing.T) {
	r := replay.NewReplayer(replay.ReplayData{})
	assert.Equal(t, time.Duration(0), r.Now())
	assert.Equal(t, []input.Event{{Kind: input.Quit}}, r.Poll(nil))
}

func TestLoadReplay_MissingFile(t *testing.T) {
	_, err := replay.LoadReplay(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestReplayReproducesSession(t *testing.T) {
	script := input.NewScriptedSource(
		nil,
		[]input.Event{input.Press(ebiten.KeyD)},
		nil,
		[]input.Event{input.Press(ebiten.KeySpace), input.Release(ebiten.KeySpace)},
		nil,
		[]input.Event{input.Release(ebiten.KeyD), {Kind: input.Resize, Width: 640, Height: 480}},
		nil,
	)
	script.QuitWhenDone = true

	rec := replay.NewRecorder("demo", time.Second/60)
	original := run(t, script, &game.SteppedClock{Tick: 7 * time.Millisecond}, game.WithEventObserver(rec.Observe))

	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, rec.Save(path))

	data, err := replay.LoadReplay(path)
	require.NoError(t, err)
	assert.Equal(t, rec.IterationCount(), len(data.Iterations))

	player := replay.NewReplayer(*data)
	replayed := run(t, player, player)

	if diff := cmp.Diff(original, replayed); diff != "" {
		t.Errorf("replay diverged (-original +replayed):\n%s", diff)
	}
	assert.True(t, player.Done())
}
