package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"slices"
	"sync/atomic"
	"testing"
	"time"

	"github.com/helixml/chickenrescue/domain/bounded"
	"github.com/helixml/chickenrescue/domain/rescue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInput(t *testing.T, roof uint64, positions []uint32) rescue.Input {
	t.Helper()
	in, err := rescue.ParseInput(uint64(len(positions)), roof, positions)
	require.NoError(t, err)
	return in
}

func maxProtected(t *testing.T, c *Coverage, in rescue.Input) int {
	t.Helper()
	best, err := c.MaxProtected(context.Background(), in)
	require.NoError(t, err)
	return best
}

func TestCoverage_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		roof      uint64
		positions []uint32
		want      int
	}{
		{name: "two per window", roof: 5, positions: []uint32{2, 5, 10, 12, 15}, want: 2},
		{name: "tail cluster", roof: 10, positions: []uint32{1, 11, 30, 34, 35, 37}, want: 4},
		{name: "all under one roof", roof: 10, positions: []uint32{1, 2, 3, 4, 5, 6}, want: 6},
		{name: "middle run", roof: 4, positions: []uint32{1, 2, 4, 5, 6, 8}, want: 3},
		{name: "single chicken", roof: 1, positions: []uint32{7}, want: 1},
	}

	strategies := []Strategy{StrategyParallel, StrategySweep}
	for _, tt := range tests {
		for _, s := range strategies {
			t.Run(tt.name+"/"+string(s), func(t *testing.T) {
				c := NewCoverage(WithStrategy(s))
				assert.Equal(t, tt.want, maxProtected(t, c, mustInput(t, tt.roof, tt.positions)))
			})
		}
	}
}

func TestCoverage_StrategiesAgree(t *testing.T) {
	parallel := NewCoverage(WithStrategy(StrategyParallel), WithParallelism(3))
	sweep := NewCoverage(WithStrategy(StrategySweep))

	rng := rand.New(rand.NewPCG(7, 11))
	for round := 0; round < 100; round++ {
		n := 1 + rng.IntN(64)
		set := make(map[uint32]struct{}, n)
		for len(set) < n {
			set[1+uint32(rng.IntN(500))] = struct{}{}
		}
		positions := make([]uint32, 0, n)
		for v := range set {
			positions = append(positions, v)
		}
		slices.Sort(positions)
		in := mustInput(t, 1+uint64(rng.IntN(80)), positions)

		require.Equal(t, maxProtected(t, sweep, in), maxProtected(t, parallel, in), "positions %v", positions)
	}
}

func TestCoverage_Idempotent(t *testing.T) {
	c := NewCoverage()
	in := mustInput(t, 10, []uint32{1, 11, 30, 34, 35, 37})

	first := maxProtected(t, c, in)
	second := maxProtected(t, c, in)
	assert.Equal(t, first, second)
	assert.Equal(t, 4, first)
}

func TestCoverage_TaskPanicPropagates(t *testing.T) {
	c := NewCoverage()
	c.countFrom = func(p rescue.Positions, i int, roof uint64) int {
		if i == 2 {
			panic("boom")
		}
		return rescue.CountFrom(p, i, roof)
	}
	in := mustInput(t, 5, []uint32{2, 5, 10, 12, 15})

	var recovered any
	func() {
		defer func() { recovered = recover() }()
		_, _ = c.MaxProtected(context.Background(), in)
	}()

	require.NotNil(t, recovered)
	err, ok := recovered.(error)
	require.True(t, ok, "panic value should be an error, got %T", recovered)

	var taskPanic *TaskPanic
	require.True(t, errors.As(err, &taskPanic))
	assert.Equal(t, 2, taskPanic.Index)
	assert.Equal(t, "boom", taskPanic.Value)
	assert.NotEmpty(t, taskPanic.Stack)
}

func TestCoverage_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	in := mustInput(t, 5, []uint32{2, 5, 10, 12, 15})

	for _, s := range []Strategy{StrategyParallel, StrategySweep} {
		_, err := NewCoverage(WithStrategy(s)).MaxProtected(ctx, in)
		assert.ErrorIs(t, err, context.Canceled, string(s))
	}

	_, err := NewCoverage().Solve(ctx, SolveParams{RoofLength: 5, Positions: []uint32{1, 2}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCoverage_CancelStopsRemainingTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	c := NewCoverage(WithParallelism(1))
	c.countFrom = func(p rescue.Positions, i int, roof uint64) int {
		calls.Add(1)
		cancel()
		return rescue.CountFrom(p, i, roof)
	}
	in := mustInput(t, 5, []uint32{2, 5, 10, 12, 15, 20, 25, 30})

	_, err := c.MaxProtected(ctx, in)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(1), calls.Load())
}

func TestCoverage_DeadlineExceeded(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	c := NewCoverage(WithParallelism(1))
	c.countFrom = func(p rescue.Positions, i int, roof uint64) int {
		<-ctx.Done()
		return rescue.CountFrom(p, i, roof)
	}
	in := mustInput(t, 5, []uint32{2, 5, 10, 12, 15})

	_, err := c.MaxProtected(ctx, in)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCoverage_UnknownStrategyFallsBack(t *testing.T) {
	c := NewCoverage(WithStrategy("greedy"))
	assert.Equal(t, StrategyParallel, c.Strategy())
	assert.Equal(t, 4, maxProtected(t, c, mustInput(t, 10, []uint32{1, 11, 30, 34, 35, 37})))
}

func TestCoverage_DefaultParallelism(t *testing.T) {
	c := NewCoverage(WithParallelism(0))
	assert.GreaterOrEqual(t, c.Parallelism(), 1)
	assert.Equal(t, StrategyParallel, c.Strategy())

	c = NewCoverage(WithParallelism(4))
	assert.Equal(t, 4, c.Parallelism())
}

func TestCoverage_Solve(t *testing.T) {
	c := NewCoverage()

	got, err := c.Solve(context.Background(), SolveParams{RoofLength: 10, Positions: []uint32{1, 11, 30, 34, 35, 37}})
	require.NoError(t, err)
	assert.Equal(t, 4, got)

	count := uint64(6)
	got, err = c.Solve(context.Background(), SolveParams{ChickenCount: &count, RoofLength: 10, Positions: []uint32{37, 1, 35, 11, 34, 30}, Sort: true})
	require.NoError(t, err)
	assert.Equal(t, 4, got)
}

func TestCoverage_SolveErrors(t *testing.T) {
	c := NewCoverage()
	wrongCount := uint64(2)

	tests := []struct {
		name   string
		params SolveParams
		want   error
	}{
		{name: "unsorted", params: SolveParams{RoofLength: 3, Positions: []uint32{3, 1, 2}}, want: ErrUnsortedPositions},
		{name: "duplicate", params: SolveParams{RoofLength: 3, Positions: []uint32{1, 1}}, want: rescue.ErrPositionNotUnique},
		{name: "empty", params: SolveParams{RoofLength: 3}, want: rescue.ErrPositionLength},
		{name: "zero roof", params: SolveParams{Positions: []uint32{1}}, want: bounded.ErrUnderRange},
		{name: "count mismatch", params: SolveParams{ChickenCount: &wrongCount, RoofLength: 3, Positions: []uint32{1}}, want: rescue.ErrCountMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Solve(context.Background(), tt.params)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyParallel, s)

	s, err = ParseStrategy(" Sweep ")
	require.NoError(t, err)
	assert.Equal(t, StrategySweep, s)

	_, err = ParseStrategy("quantum")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
