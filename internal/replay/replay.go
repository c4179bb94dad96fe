// Package replay records the input of a round and re-runs it to check that
// the simulation reproduces the same outcome.
package replay

import (
	"fmt"

	"github.com/vovakirdan/tui-breakout/internal/core"
	"github.com/vovakirdan/tui-breakout/internal/registry"
	"github.com/vovakirdan/tui-breakout/internal/storage"
)

// Recorder collects the frames fed to one game instance since its last Reset.
type Recorder struct {
	game    registry.Recordable
	screenW int
	screenH int
	config  []byte

	log     core.InputLog
	resizes []storage.Resize
}

// NewRecorder starts a recording for a game that has just been Reset with rt.
func NewRecorder(game registry.Recordable, rt core.RuntimeConfig) (*Recorder, error) {
	cfg, err := game.ConfigYAML()
	if err != nil {
		return nil, fmt.Errorf("replay: cannot capture config: %w", err)
	}
	return &Recorder{
		game:    game,
		screenW: rt.ScreenW,
		screenH: rt.ScreenH,
		config:  cfg,
	}, nil
}

// Step feeds one frame to the game and records it.
func (r *Recorder) Step(in core.InputFrame) core.StepResult {
	r.log.Append(in)
	return r.game.Step(in)
}

// Resize applies a size change to the game and records it against the next frame.
func (r *Recorder) Resize(width, height int) {
	if resizer, ok := r.game.(registry.Resizer); ok {
		resizer.Resize(width, height)
	}
	r.resizes = append(r.resizes, storage.Resize{Tick: r.log.Len(), Width: width, Height: height})
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	return r.log.Len()
}

// Replay builds a storable replay from the frames recorded so far and the
// game's current state.
func (r *Recorder) Replay() *storage.Replay {
	state := r.game.State()
	return &storage.Replay{
		GameID:  r.game.ID(),
		ScreenW: r.screenW,
		ScreenH: r.screenH,
		Config:  append([]byte(nil), r.config...),
		Frames:  append([]core.InputFrame(nil), r.log.Frames()...),
		Resizes: append([]storage.Resize(nil), r.resizes...),
		Score:   state.Score,
		Lives:   state.Lives,
		State:   state.Phase,
		Hash:    r.game.SnapshotHash(),
	}
}

// Result is the outcome of re-running a replay.
type Result struct {
	State core.GameState
	Hash  uint64
}

// Matches reports whether the re-run ended exactly where the recording did.
func (res Result) Matches(r *storage.Replay) bool {
	return res.Hash == r.Hash &&
		res.State.Score == r.Score &&
		res.State.Lives == r.Lives &&
		res.State.Phase == r.State
}

// Simulate re-runs a replay on a fresh game instance.
func Simulate(game registry.Recordable, r *storage.Replay) (Result, error) {
	if err := game.UseConfigYAML(r.Config); err != nil {
		return Result{}, fmt.Errorf("replay: %s: %w", r.ID, err)
	}

	rt := core.DefaultConfig()
	rt.ScreenW = r.ScreenW
	rt.ScreenH = r.ScreenH
	game.Reset(rt)

	resizer, _ := game.(registry.Resizer)
	next := 0
	for tick, in := range r.Frames {
		for ; next < len(r.Resizes) && r.Resizes[next].Tick <= tick; next++ {
			if resizer != nil {
				resizer.Resize(r.Resizes[next].Width, r.Resizes[next].Height)
			}
		}
		game.Step(in)
	}

	return Result{State: game.State(), Hash: game.SnapshotHash()}, nil
}

// Verify re-runs a replay on a new instance of its game.
func Verify(r *storage.Replay) (Result, error) {
	game, err := registry.CreateRecordable(r.GameID)
	if err != nil {
		return Result{}, err
	}
	res, err := Simulate(game, r)
	if err != nil {
		return Result{}, err
	}
	if !res.Matches(r) {
		return res, fmt.Errorf("replay: %s diverged: hash %016x, recorded %016x", r.ID, res.Hash, r.Hash)
	}
	return res, nil
}
