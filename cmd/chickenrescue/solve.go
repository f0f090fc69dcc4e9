package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue"
	"github.com/helixml/chickenrescue/application/service"
)

func solveCmd() *cobra.Command {
	var (
		roof      uint64
		positions string
		file      string
		strategy  string
		sortInput bool
		parallel  int
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Compute the maximum number of chickens one roof can protect",
		Long: `Compute the maximum number of chickens one roof can protect.

A roof of length k placed at x covers every chicken in [x, x+k).

Input is given either with --roof and --positions, or with --file:
  text file    first line "n k", then n ascending positions
  .yaml/.yml   chicken_count, roof_length and positions keys
  -            text form read from stdin

Positions must be distinct and ascending unless --sort is given.`,
		Example: `  chickenrescue solve --roof 5 --positions 2,5,10,12,15
  chickenrescue solve --file input.txt --strategy sweep
  printf '6 10\n1 11 30 34 35 37\n' | chickenrescue solve --file -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := solveParams(cmd, roof, positions, file)
			if err != nil {
				return err
			}
			params.Sort = sortInput

			var opts []chickenrescue.Option
			if strategy != "" {
				s, err := service.ParseStrategy(strategy)
				if err != nil {
					return err
				}
				opts = append(opts, chickenrescue.WithStrategy(s))
			}
			if cmd.Flags().Changed("parallelism") {
				opts = append(opts, chickenrescue.WithParallelism(parallel))
			}

			rt, err := setup(cmd, opts...)
			if err != nil {
				return err
			}

			best, err := rt.client.Coverage.Solve(rt.ctx, params)
			if err != nil {
				return fmt.Errorf("invalid input: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), best)
			return err
		},
	}

	cmd.Flags().Uint64Var(&roof, "roof", 0, "Roof length (1 to 1000000)")
	cmd.Flags().StringVar(&positions, "positions", "", "Comma-separated chicken positions")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the problem from a text or YAML file, - for stdin")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Solver strategy: parallel or sweep (default from SOLVER_STRATEGY)")
	cmd.Flags().IntVar(&parallel, "parallelism", 0, "Concurrent window tasks, 0 for GOMAXPROCS")
	cmd.Flags().BoolVar(&sortInput, "sort", false, "Sort positions instead of rejecting unsorted input")
	cmd.MarkFlagsMutuallyExclusive("file", "positions")
	cmd.MarkFlagsMutuallyExclusive("file", "roof")

	return cmd
}

func solveParams(cmd *cobra.Command, roof uint64, positions, file string) (service.SolveParams, error) {
	if file != "" {
		return readInputFile(file, cmd.InOrStdin())
	}
	if positions == "" {
		return service.SolveParams{}, errors.New("either --file or --positions is required")
	}

	values, err := parsePositionList(positions)
	if err != nil {
		return service.SolveParams{}, err
	}
	return service.SolveParams{RoofLength: roof, Positions: values}, nil
}
