package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiscaladmin/gam-status/internal/cli"
	"github.com/fiscaladmin/gam-status/internal/model"
	"github.com/fiscaladmin/gam-status/internal/registry"
)

func targetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "targets <kind> <status>",
		Short: "List the legal next statuses from a given status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			current, err := parseStatusArg(args[1])
			if err != nil {
				return err
			}

			targets := registry.Default().ValidTransitions(kind, current)
			if len(targets) == 0 {
				cmd.Println(cli.SubtleStyle.Render(
					fmt.Sprintf("%s is terminal for %s (no legal transitions)", current.Code(), kind)))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("%s: %s ->", kind, current.Code())))
			for _, target := range targets {
				cmd.Printf("  %s  %s\n", target.Code(), cli.SubtleStyle.Render(target.Label()))
			}
			return nil
		},
	}
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <kind> <from-status|-> <to-status>",
		Short: "Check whether a transition would be allowed",
		Long: `Ask the validator whether moving from one status to another is legal
for the given kind. Use '-' as the from-status for a record that has no
status yet; the target is then checked against the kind's initial statuses.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			target, err := parseStatusArg(args[2])
			if err != nil {
				return err
			}

			var current *model.Status
			fromLabel := model.NullStatusMarker
			if args[1] != absentStatusArg {
				status, parseErr := parseStatusArg(args[1])
				if parseErr != nil {
					return parseErr
				}
				current = &status
				fromLabel = status.Code()
			}

			move := fmt.Sprintf("%s %s -> %s", kind, fromLabel, target.Code())
			if registry.Default().CanTransition(kind, current, target) {
				cmd.Println(cli.SuccessStyle.Render("allowed: " + move))
			} else {
				cmd.Println(cli.ErrorStyle.Render("denied:  " + move))
			}
			return nil
		},
	}
}
