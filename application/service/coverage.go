package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"github.com/helixml/chickenrescue/domain/rescue"
	"golang.org/x/sync/errgroup"
)

// Strategy selects how the maximum coverage is computed.
type Strategy string

// Strategy values.
const (
	StrategyParallel Strategy = "parallel"
	StrategySweep    Strategy = "sweep"
)

// ErrUnknownStrategy indicates a strategy name that is not recognised.
var ErrUnknownStrategy = errors.New("unknown solver strategy")

// ParseStrategy parses a strategy name. An empty name selects StrategyParallel.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", StrategyParallel:
		return StrategyParallel, nil
	case StrategySweep:
		return StrategySweep, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// TaskPanic carries a panic raised by one window task back to the caller.
type TaskPanic struct {
	Index int
	Value any
	Stack []byte
}

// Error implements error.
func (p *TaskPanic) Error() string {
	return fmt.Sprintf("window task %d panicked: %v", p.Index, p.Value)
}

// SolveParams holds raw solver input as it arrives from a caller.
type SolveParams struct {
	// ChickenCount is the declared count. Nil means len(Positions).
	ChickenCount *uint64
	RoofLength   uint64
	Positions    []uint32
	// Sort orders the positions before validation. Without it, positions
	// that are not ascending are rejected with ErrUnsortedPositions.
	Sort bool
}

// Coverage computes how many chickens a single roof can protect.
type Coverage struct {
	strategy    Strategy
	parallelism int
	logger      *slog.Logger
	countFrom   func(rescue.Positions, int, uint64) int
}

// CoverageOption configures a Coverage.
type CoverageOption func(*Coverage)

// WithStrategy sets the solver strategy. Unknown values fall back to
// StrategyParallel.
func WithStrategy(s Strategy) CoverageOption {
	return func(c *Coverage) { c.strategy = s }
}

// WithParallelism caps how many window tasks run at once.
// Values below 1 use GOMAXPROCS.
func WithParallelism(n int) CoverageOption {
	return func(c *Coverage) { c.parallelism = n }
}

// WithCoverageLogger sets the logger.
func WithCoverageLogger(l *slog.Logger) CoverageOption {
	return func(c *Coverage) { c.logger = l }
}

// NewCoverage creates a Coverage solver.
func NewCoverage(opts ...CoverageOption) *Coverage {
	c := &Coverage{
		strategy:  StrategyParallel,
		countFrom: rescue.CountFrom,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.strategy != StrategyParallel && c.strategy != StrategySweep {
		c.logger.Warn("unknown solver strategy, using parallel",
			slog.String("strategy", string(c.strategy)))
		c.strategy = StrategyParallel
	}
	if c.parallelism < 1 {
		c.parallelism = runtime.GOMAXPROCS(0)
	}
	return c
}

// Strategy returns the configured strategy.
func (c *Coverage) Strategy() Strategy { return c.strategy }

// Parallelism returns the task concurrency cap.
func (c *Coverage) Parallelism() int { return c.parallelism }

// Solve validates params and returns the maximum number of protected chickens.
// It returns ctx.Err() if ctx is done before the computation finishes.
func (c *Coverage) Solve(ctx context.Context, params SolveParams) (int, error) {
	build := rescue.NewPositions
	if params.Sort {
		build = rescue.NewSortedPositions
	}
	positions, err := build(params.Positions)
	if err != nil {
		return 0, fmt.Errorf("positions: %w", err)
	}
	if !positions.Sorted() {
		return 0, ErrUnsortedPositions
	}

	declared := uint64(positions.Len())
	if params.ChickenCount != nil {
		declared = *params.ChickenCount
	}
	count, err := rescue.NewChickenCount(declared)
	if err != nil {
		return 0, fmt.Errorf("chicken count: %w", err)
	}
	roof, err := rescue.NewRoofLength(params.RoofLength)
	if err != nil {
		return 0, fmt.Errorf("roof length: %w", err)
	}

	in, err := rescue.NewInput(count, roof, positions)
	if err != nil {
		return 0, err
	}
	return c.MaxProtected(ctx, in)
}

// MaxProtected returns the largest number of positions one roof can cover.
// The input is trusted; a panic inside any window task is re-raised here.
// Window tasks not yet started are skipped once ctx is done.
func (c *Coverage) MaxProtected(ctx context.Context, in rescue.Input) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	start := time.Now()

	var (
		best int
		err  error
	)
	switch c.strategy {
	case StrategySweep:
		best = rescue.Sweep(in)
	default:
		best, err = c.fanOut(ctx, in)
	}

	elapsed := time.Since(start)
	if err != nil {
		c.logger.Debug("max protected abandoned",
			slog.String("strategy", string(c.strategy)),
			slog.Int("chickens", in.Positions().Len()),
			slog.Duration("duration", elapsed),
			slog.String("error", err.Error()),
		)
		return 0, err
	}
	solveDuration.WithLabelValues(string(c.strategy)).Observe(elapsed.Seconds())
	solvePositions.Observe(float64(in.Positions().Len()))

	c.logger.Debug("max protected computed",
		slog.String("strategy", string(c.strategy)),
		slog.Int("chickens", in.Positions().Len()),
		slog.Uint64("roof_length", in.Roof().Value()),
		slog.Int("result", best),
		slog.Duration("duration", elapsed),
	)
	return best, nil
}

// fanOut runs one task per starting position and takes the maximum.
func (c *Coverage) fanOut(ctx context.Context, in rescue.Input) (int, error) {
	positions := in.Positions()
	roof := in.Roof().Value()
	counts := make([]int, positions.Len())

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i := range counts {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() (err error) {
			if err := gctx.Err(); err != nil {
				return err
			}
			defer func() {
				if r := recover(); r != nil {
					err = &TaskPanic{Index: i, Value: r, Stack: debug.Stack()}
				}
			}()
			counts[i] = c.countFrom(positions, i, roof)
			return nil
		})
	}
	err := g.Wait()
	var taskPanic *TaskPanic
	if errors.As(err, &taskPanic) {
		panic(taskPanic)
	}
	if err != nil {
		return 0, err
	}
	// the group context is cancelled by Wait, so check the caller's
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	// positions is never empty, so neither is counts
	return slices.Max(counts), nil
}
