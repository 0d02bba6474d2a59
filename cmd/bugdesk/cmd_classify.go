package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"bugdesk/internal/board"
	"bugdesk/internal/engine"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <failure mode text>",
	Short: "Classify a failure mode onto a team",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	team := engine.Classify(text)
	if team == board.Unassigned {
		fmt.Fprintln(cmd.OutOrStdout(), "unassigned")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(team))
	return nil
}
