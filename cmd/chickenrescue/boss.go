package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helixml/chickenrescue/domain/boss"
)

// errBadBoy makes the process exit non-zero after printing the verdict.
var errBadBoy = errors.New("boss left a shot unanswered")

func bossCmd() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "boss <actions>",
		Short: "Check whether the boss answered every shot",
		Long: `Check a shoot/retaliate exchange such as SRSSRRR.

S is a shot from the rival gang and R a retaliation by the boss. The boss
never shoots first and must answer every run of shots with at least as many
retaliations before the next shot comes in.`,
		Example: `  chickenrescue boss SRSSRRR
  chickenrescue boss --strict RSSRR`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(cmd)
			if err != nil {
				return err
			}

			verdict, err := rt.client.Boss.Judge(args[0])
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintln(cmd.OutOrStdout(), verdict); err != nil {
				return err
			}
			if strict && verdict == boss.BadBoy {
				return errBadBoy
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero on Bad boy")

	return cmd
}
