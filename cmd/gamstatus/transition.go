package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiscaladmin/gam-status/internal/cli"
	"github.com/fiscaladmin/gam-status/internal/model"
)

func transitionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transition <kind> <record-id> <target-status>",
		Short: "Move a record to a new lifecycle status",
		Long: `Route a status transition through the engine. The move is validated
against the transition table for the record's kind; a legal move writes the
new status and one audit entry, an illegal one changes nothing.`,
		Args: cobra.ExactArgs(3),
		RunE: runTransition,
	}

	cmd.Flags().String("actor", model.ActorOperator, "who triggers the transition (component name or OPERATOR)")
	cmd.Flags().String("reason", "", "human-readable explanation for the audit trail")
	_ = cmd.MarkFlagRequired("reason")

	return cmd
}

func runTransition(cmd *cobra.Command, args []string) error {
	kind, err := parseKindArg(args[0])
	if err != nil {
		return err
	}
	target, err := parseStatusArg(args[2])
	if err != nil {
		return err
	}
	recordID := args[1]
	actor, _ := cmd.Flags().GetString("actor")
	reason, _ := cmd.Flags().GetString("reason")

	store, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	result, err := newManager(store).Transition(cmd.Context(), kind, recordID, target, actor, reason)
	if err != nil {
		return err
	}

	from := model.NullStatusMarker
	if result.Previous != nil {
		from = result.Previous.Code()
	}
	cmd.Println(cli.SuccessStyle.Render(
		fmt.Sprintf("✓ %s %s: %s -> %s", kind, recordID, from, result.New.Code())))

	return nil
}
