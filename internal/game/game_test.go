package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/vovakirdan/gapbird/internal/config"
	"github.com/vovakirdan/gapbird/internal/core"
)

// fixedRand always returns v, capped to the valid range.
type fixedRand int

func (f fixedRand) Intn(n int) int {
	return min(int(f), n-1)
}

func newTestSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(config.Default(), rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func defaultGenerator(rng Rand) Generator {
	cfg := config.Default()
	return Generator{
		FieldWidth:  cfg.Field.Width,
		FieldHeight: cfg.Field.Height,
		Width:       cfg.Obstacles.Width,
		GapSize:     cfg.Obstacles.GapSize,
		MinSegment:  cfg.Obstacles.MinSegment,
		Rng:         rng,
	}
}

func TestNewPairInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 10000; i++ {
		top, bottom := NewPair(400, 600, 50, 150, 50, rng)

		if top.H < 50 || bottom.H < 50 {
			t.Fatalf("pair %d: heights %v/%v below minimum 50", i, top.H, bottom.H)
		}
		if top.H > 400 || bottom.H > 400 {
			t.Fatalf("pair %d: heights %v/%v above 400", i, top.H, bottom.H)
		}
		if top.H+150+bottom.H != 600 {
			t.Fatalf("pair %d: %v + 150 + %v != 600", i, top.H, bottom.H)
		}
		if top.Y != 0 || bottom.Y != top.H+150 || bottom.Y+bottom.H != 600 {
			t.Fatalf("pair %d: bad placement top.Y=%v bottom.Y=%v", i, top.Y, bottom.Y)
		}
		if top.X != 400 || bottom.X != 400 || top.W != 50 || bottom.W != 50 {
			t.Fatalf("pair %d: expected both at x=400 width 50, got %+v %+v", i, top, bottom)
		}
		if top.Passed || bottom.Passed {
			t.Fatalf("pair %d: new obstacles must not be passed", i)
		}
	}
}

func TestNewPairExtremes(t *testing.T) {
	top, bottom := NewPair(400, 600, 50, 150, 50, fixedRand(0))
	if top.H != 50 || bottom.H != 400 {
		t.Errorf("lowest draw: heights %v/%v, expected 50/400", top.H, bottom.H)
	}

	top, bottom = NewPair(400, 600, 50, 150, 50, fixedRand(1<<30))
	if top.H != 400 || bottom.H != 50 {
		t.Errorf("highest draw: heights %v/%v, expected 400/50", top.H, bottom.H)
	}
}

func TestFieldAdvance(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	f.MaybeSpawn(400, 300)

	f.Advance(2.5)
	for _, o := range f.Obstacles() {
		if o.X != 397.5 {
			t.Errorf("Advance(2.5): x = %v, expected 397.5", o.X)
		}
	}
}

func TestFieldPrune(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	f.obstacles = []Obstacle{
		{X: -50, W: 50},   // trailing edge exactly 0: removed
		{X: -60, W: 50},   // fully off: removed
		{X: -49.5, W: 50}, // still partly visible
		{X: 100, W: 50},
	}

	f.Prune()
	if f.Len() != 2 {
		t.Fatalf("Prune(): %d obstacles left, expected 2", f.Len())
	}
	if f.Obstacles()[0].X != -49.5 || f.Obstacles()[1].X != 100 {
		t.Errorf("Prune() must keep order, got %+v", f.Obstacles())
	}

	before := append([]Obstacle(nil), f.Obstacles()...)
	f.Prune()
	if f.Len() != len(before) {
		t.Fatalf("second Prune() changed length %d -> %d", len(before), f.Len())
	}
	for i := range before {
		if f.Obstacles()[i] != before[i] {
			t.Errorf("second Prune() changed obstacle %d: %+v -> %+v", i, before[i], f.Obstacles()[i])
		}
	}
}

func TestFieldSpawnsWhenEmpty(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))

	if !f.MaybeSpawn(400, 300) {
		t.Fatal("MaybeSpawn() on an empty field should spawn")
	}
	if f.Len() != 2 {
		t.Fatalf("expected one pair, got %d obstacles", f.Len())
	}
	if f.MaybeSpawn(400, 300) {
		t.Error("MaybeSpawn() right after spawning should not spawn again")
	}
}

func TestFieldSpawnThreshold(t *testing.T) {
	f := NewField(defaultGenerator(rand.New(rand.NewSource(3))))
	f.MaybeSpawn(400, 300)

	for tick := 1; tick <= 300; tick++ {
		if f.Step(1, 400, 300) {
			t.Fatalf("spawned early at tick %d", tick)
		}
	}
	if f.Len() != 2 || f.Obstacles()[0].X != 100 {
		t.Fatalf("after 300 ticks: len=%d x=%v, expected one pair at x=100", f.Len(), f.Obstacles()[0].X)
	}

	if !f.Step(1, 400, 300) {
		t.Fatal("expected spawn at tick 301")
	}
	obs := f.Obstacles()
	if len(obs) != 4 {
		t.Fatalf("expected two pairs, got %d obstacles", len(obs))
	}
	if obs[0].X != 99 || obs[2].X != 400 || obs[3].X != 400 {
		t.Errorf("unexpected positions after spawn: %v %v %v", obs[0].X, obs[2].X, obs[3].X)
	}
	if obs[2].Y != 0 || obs[3].Y == 0 {
		t.Error("pairs must be appended top first")
	}
}

func TestFieldReset(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	f.MaybeSpawn(400, 300)
	f.Reset()

	if f.Len() != 0 {
		t.Errorf("Reset(): %d obstacles left", f.Len())
	}
}

func TestActorPhysics(t *testing.T) {
	a := Actor{X: 50, Y: 288, W: 30, H: 24, Gravity: 0.02, Impulse: -2}

	a.ApplyGravity()
	a.Integrate()

	if a.Velocity != 0.02 {
		t.Errorf("velocity = %v, expected 0.02", a.Velocity)
	}
	if a.Y != 288.02 {
		t.Errorf("y = %v, expected 288.02", a.Y)
	}
}

func TestActorJumpOverrides(t *testing.T) {
	a := Actor{Gravity: 0.02, Impulse: -2}

	a.Velocity = 5
	a.Jump()
	if a.Velocity != -2 {
		t.Errorf("Jump() from falling: velocity = %v, expected -2", a.Velocity)
	}

	a.Jump()
	if a.Velocity != -2 {
		t.Errorf("Jump() is not additive: velocity = %v, expected -2", a.Velocity)
	}
}

func TestCollides(t *testing.T) {
	a := &Actor{X: 50, Y: 100, W: 30, H: 24}

	if !Collides(a, Obstacle{X: 40, Y: 90, W: 50, H: 80}) {
		t.Error("overlapping rectangles should collide")
	}
	if Collides(a, Obstacle{X: 90, Y: 90, W: 50, H: 80}) {
		t.Error("horizontally separated rectangles should not collide")
	}
	if !Collides(a, Obstacle{X: 80, Y: 90, W: 50, H: 80}) {
		t.Error("touching edges should collide")
	}
	if Collides(a, Obstacle{X: 40, Y: 124.5, W: 50, H: 80}) {
		t.Error("obstacle below the actor should not collide")
	}
}

func TestOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		y    float64
		want bool
	}{
		{"top at zero", 0, false},
		{"just above top", -0.0001, true},
		{"bottom at floor", 576, false},
		{"just below floor", 576.0001, true},
		{"middle", 288, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := &Actor{Y: tc.y, W: 30, H: 24}
			if got := OutOfBounds(a, 600); got != tc.want {
				t.Errorf("OutOfBounds(y=%v) = %v, expected %v", tc.y, got, tc.want)
			}
		})
	}
}

func TestFailedIgnoresOrder(t *testing.T) {
	a := &Actor{X: 50, Y: 100, W: 30, H: 24}
	hit := Obstacle{X: 40, Y: 90, W: 50, H: 80}
	miss := Obstacle{X: 300, Y: 0, W: 50, H: 80}

	if !Failed(a, []Obstacle{hit, miss}, 600) || !Failed(a, []Obstacle{miss, hit}, 600) {
		t.Error("Failed() must report a hit regardless of order")
	}
	if Failed(a, []Obstacle{miss}, 600) {
		t.Error("Failed() with no hits and in bounds should be false")
	}
}

func TestUpdateScorePassesOnce(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	f.obstacles = []Obstacle{{X: 19, W: 50}}
	a := &Actor{X: 70}

	if got := UpdateScore(a, f); got != 0.5 {
		t.Fatalf("UpdateScore() = %v, expected 0.5", got)
	}
	if !f.Obstacles()[0].Passed {
		t.Error("obstacle should be flagged passed")
	}

	for i := 0; i < 5; i++ {
		if got := UpdateScore(a, f); got != 0 {
			t.Fatalf("UpdateScore() call %d = %v, expected 0", i+2, got)
		}
	}
}

func TestUpdateScoreTrailingEdgeStrict(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	f.obstacles = []Obstacle{{X: 20, W: 50}}

	if got := UpdateScore(&Actor{X: 70}, f); got != 0 {
		t.Errorf("trailing edge equal to actor x should not score, got %v", got)
	}
}

func TestUpdateScorePerObstacle(t *testing.T) {
	f := NewField(defaultGenerator(fixedRand(0)))
	top, bottom := f.gen.Pair()
	top.X, bottom.X = 0, 0
	f.obstacles = []Obstacle{top, bottom}

	if got := UpdateScore(&Actor{X: 70}, f); got != 1 {
		t.Errorf("a cleared pair should score 1, got %v", got)
	}
}

func TestNewSessionRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Obstacles.GapSize = 550

	if _, err := NewSession(cfg, rand.New(rand.NewSource(1))); err == nil {
		t.Error("NewSession() should reject a gap that leaves no room for segments")
	}
	if _, err := NewSession(config.Default(), nil); err == nil {
		t.Error("NewSession() should reject a nil random source")
	}
}

func TestNewSessionRejectsUnboundedField(t *testing.T) {
	for _, height := range []float64{1e30, math.Inf(1), math.NaN()} {
		cfg := config.Default()
		cfg.Field.Height = height

		if _, err := NewSession(cfg, rand.New(rand.NewSource(1))); err == nil {
			t.Errorf("NewSession() should reject field height %v", height)
		}
	}
}

func TestSessionLargestFieldTicks(t *testing.T) {
	cfg := config.Default()
	cfg.Field.Height = config.MaxDimension

	s, err := NewSession(cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	s.Press()
	s.Tick()

	obstacles := s.Obstacles()
	if len(obstacles) != 2 {
		t.Fatalf("obstacles = %d, expected one pair after the first tick", len(obstacles))
	}
	top, bottom := obstacles[0], obstacles[1]
	if top.H < cfg.Obstacles.MinSegment || bottom.H < cfg.Obstacles.MinSegment {
		t.Errorf("pair heights %v/%v below min segment", top.H, bottom.H)
	}
}

func TestSessionStartsIdle(t *testing.T) {
	s := newTestSession(t, 1)

	if s.Phase() != PhaseIdle {
		t.Fatalf("phase = %v, expected idle", s.Phase())
	}
	if s.Message() != "Press Space to Start" {
		t.Errorf("Message() = %q", s.Message())
	}
	a := s.Actor()
	if a.X != 50 || a.Y != 288 || a.Velocity != 0 {
		t.Errorf("actor = %+v, expected at (50, 288) at rest", a)
	}

	if ev := s.Tick(); ev != EventNone {
		t.Errorf("Tick() while idle = %v, expected none", ev)
	}
	if s.Ticks() != 0 || s.Actor().Y != 288 || len(s.Obstacles()) != 0 {
		t.Error("ticks while idle must not change state")
	}
}

func TestSessionFirstTick(t *testing.T) {
	s := newTestSession(t, 1)

	if ev := s.Press(); ev != EventStarted {
		t.Fatalf("Press() = %v, expected started", ev)
	}
	if s.Message() != "" {
		t.Errorf("Message() while running = %q, expected empty", s.Message())
	}

	s.Tick()
	a := s.Actor()
	if a.Velocity != 0.02 || a.Y != 288.02 {
		t.Errorf("after one tick: velocity=%v y=%v, expected 0.02 and 288.02", a.Velocity, a.Y)
	}
	if len(s.Obstacles()) != 2 {
		t.Errorf("first tick should spawn one pair, got %d obstacles", len(s.Obstacles()))
	}
}

func TestSessionJump(t *testing.T) {
	s := newTestSession(t, 1)
	s.Press()
	s.Tick()

	if ev := s.Press(); ev != EventJumped {
		t.Fatalf("Press() while running = %v, expected jumped", ev)
	}
	if s.Actor().Velocity != -2 {
		t.Errorf("velocity = %v, expected -2", s.Actor().Velocity)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("jump must not change phase, got %v", s.Phase())
	}
}

func TestSessionFallEndsRun(t *testing.T) {
	s := newTestSession(t, 1)
	s.Press()

	var endedAt int
	for i := 1; i <= 1000; i++ {
		if s.Tick() == EventEnded {
			endedAt = i
			break
		}
	}

	if endedAt != 170 {
		t.Fatalf("free fall should end at tick 170, ended at %d", endedAt)
	}
	if s.Phase() != PhaseEnded {
		t.Fatalf("phase = %v, expected ended", s.Phase())
	}

	expected := "Game Over!\nScore: 0\nHigh Score: 0\n\nPress Space to Restart"
	if s.Message() != expected {
		t.Errorf("Message() = %q, expected %q", s.Message(), expected)
	}

	// Frozen: further ticks do nothing
	y := s.Actor().Y
	if ev := s.Tick(); ev != EventNone || s.Actor().Y != y || s.Ticks() != 170 {
		t.Error("ticks after the run ended must not change state")
	}
}

func TestSessionRestart(t *testing.T) {
	s := newTestSession(t, 1)
	s.Press()
	for s.Tick() != EventEnded {
	}

	if ev := s.Press(); ev != EventRestarted {
		t.Fatalf("Press() when ended = %v, expected restarted", ev)
	}
	if s.Phase() != PhaseRunning {
		t.Errorf("phase = %v, expected running after restart", s.Phase())
	}
	a := s.Actor()
	if a.Y != 288 || a.Velocity != 0 {
		t.Errorf("actor not reset: %+v", a)
	}
	if len(s.Obstacles()) != 0 || s.Score() != 0 || s.Ticks() != 0 {
		t.Error("restart must clear obstacles, score and ticks")
	}
	if s.Runs() != 2 {
		t.Errorf("Runs() = %d, expected 2", s.Runs())
	}
}

func TestSessionScoresClearedPair(t *testing.T) {
	s := newTestSession(t, 1)
	s.Press()

	top, bottom := s.field.gen.Pair()
	top.X, bottom.X = 0.5, 0.5
	s.field.obstacles = append(s.field.obstacles, top, bottom)

	if ev := s.Tick(); ev != EventNone {
		t.Fatalf("Tick() = %v, expected the run to continue", ev)
	}
	if s.Score() != 1 || s.DisplayScore() != 1 {
		t.Errorf("score = %v (display %d), expected 1", s.Score(), s.DisplayScore())
	}

	s.Tick()
	if s.Score() != 1 {
		t.Errorf("a pair must only score once, score = %v", s.Score())
	}
}

func TestSessionHighScore(t *testing.T) {
	s := newTestSession(t, 1)

	s.Press()
	s.score = 3.5
	s.actor.Y = 700
	if s.Tick() != EventEnded {
		t.Fatal("actor below the field should end the run")
	}
	if s.HighScore() != 3.5 || s.DisplayHighScore() != 3 {
		t.Errorf("high score = %v (display %d), expected 3.5 (3)", s.HighScore(), s.DisplayHighScore())
	}
	expected := "Game Over!\nScore: 3\nHigh Score: 3\n\nPress Space to Restart"
	if s.Message() != expected {
		t.Errorf("Message() = %q, expected %q", s.Message(), expected)
	}

	s.Press()
	s.score = 1
	s.actor.Y = -10
	s.Tick()
	if s.HighScore() != 3.5 {
		t.Errorf("a lower score must not replace the high score, got %v", s.HighScore())
	}
	if s.Score() != 1 {
		t.Errorf("score = %v, expected 1", s.Score())
	}
}

func TestSessionScoreMonotonic(t *testing.T) {
	s := newTestSession(t, 99)
	input := rand.New(rand.NewSource(5))

	lastScore, lastHigh := 0.0, 0.0
	for i := 0; i < 20000; i++ {
		if input.Intn(40) == 0 || s.Phase() != PhaseRunning {
			if s.Press() == EventRestarted {
				lastScore = 0
			}
		}
		s.Tick()

		if s.Score() < lastScore {
			t.Fatalf("tick %d: score decreased %v -> %v", i, lastScore, s.Score())
		}
		if s.HighScore() < lastHigh {
			t.Fatalf("tick %d: high score decreased %v -> %v", i, lastHigh, s.HighScore())
		}
		lastScore, lastHigh = s.Score(), s.HighScore()
	}
}

func TestSessionDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 3000)
	pattern := rand.New(rand.NewSource(11))
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		if i == 0 || pattern.Intn(35) == 0 {
			inputs[i].Set(core.ActionPrimary)
		}
	}

	run := func() *Session {
		s := newTestSession(t, 12345)
		for _, in := range inputs {
			s.Step(in)
		}
		return s
	}

	s1, s2 := run(), run()

	if s1.Score() != s2.Score() || s1.HighScore() != s2.HighScore() {
		t.Errorf("scores differ: %v/%v vs %v/%v", s1.Score(), s1.HighScore(), s2.Score(), s2.HighScore())
	}
	if s1.Ticks() != s2.Ticks() || s1.Runs() != s2.Runs() {
		t.Errorf("progress differs: ticks %d vs %d, runs %d vs %d", s1.Ticks(), s2.Ticks(), s1.Runs(), s2.Runs())
	}
	if s1.Actor() != s2.Actor() {
		t.Errorf("actors differ: %+v vs %+v", s1.Actor(), s2.Actor())
	}
	o1, o2 := s1.Obstacles(), s2.Obstacles()
	if len(o1) != len(o2) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, o1[i], o2[i])
		}
	}
}

func TestSessionStep(t *testing.T) {
	s := newTestSession(t, 1)

	press := core.NewInputFrame()
	press.Set(core.ActionPrimary)
	result := s.Step(press)

	if !result.State.Running {
		t.Fatal("Step() with primary input should start the run")
	}
	if s.Ticks() != 1 {
		t.Errorf("Step() should tick once, ticks = %d", s.Ticks())
	}

	s.actor.Y = 700
	result = s.Step(core.NewInputFrame())
	if !result.Ended || !result.State.GameOver || result.State.Running {
		t.Errorf("Step() result = %+v, expected the run to end", result)
	}
}

func TestPhaseAndEventStrings(t *testing.T) {
	if PhaseIdle.String() != "idle" || PhaseRunning.String() != "running" || PhaseEnded.String() != "ended" {
		t.Error("unexpected phase names")
	}
	if EventRestarted.String() != "restarted" || EventEnded.String() != "ended" {
		t.Error("unexpected event names")
	}
}
