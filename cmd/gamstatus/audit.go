package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fiscaladmin/gam-status/internal/cli"
)

func auditCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "audit <kind> <record-id>",
		Short: "Show the transition audit trail for a record",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			recordID := args[1]

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.AuditTrail(cmd.Context(), kind, recordID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				cmd.Println(cli.SubtleStyle.Render(
					fmt.Sprintf("no audit entries for %s %s", kind, recordID)))
				return nil
			}

			cmd.Println(cli.TitleStyle.Render(fmt.Sprintf("Audit trail: %s %s", kind, recordID)))
			for _, entry := range entries {
				cmd.Printf("%s  %s -> %s  %s\n",
					cli.SubtleStyle.Render(entry.Timestamp),
					entry.FromStatus,
					entry.ToStatus,
					cli.SubtleStyle.Render(fmt.Sprintf("[%s] %s", entry.Actor, entry.Reason)))
			}
			return nil
		},
	}
}
