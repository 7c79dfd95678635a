package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fiscaladmin/gam-status/internal/cli"
	"github.com/fiscaladmin/gam-status/internal/model"
	"github.com/fiscaladmin/gam-status/internal/registry"
)

func catalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List entity kinds, collections, and the status catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.Default()

			cmd.Println(cli.TitleStyle.Render("Entity kinds"))
			for _, kind := range model.Kinds() {
				initial := reg.InitialStatuses(kind)
				codes := make([]string, len(initial))
				for i, s := range initial {
					codes[i] = s.Code()
				}
				cmd.Printf("  %-12s %-16s %s\n",
					kind,
					cli.SubtleStyle.Render(kind.Collection()),
					cli.SubtleStyle.Render("initial: "+strings.Join(codes, ", ")))
			}

			cmd.Println()
			cmd.Println(cli.TitleStyle.Render("Statuses"))
			for _, status := range model.Statuses() {
				cmd.Printf("  %-16s %s\n", status.Code(), cli.SubtleStyle.Render(status.Label()))
			}
			return nil
		},
	}
}

func insertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insert <kind> <record-id>",
		Short: "Seed a record without a status",
		Long: `Create a record in the kind's collection with no status field. Its
first transition must target one of the kind's initial statuses.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKindArg(args[0])
			if err != nil {
				return err
			}
			recordID := args[1]
			pairs, _ := cmd.Flags().GetStringSlice("field")

			fields := make(map[string]string, len(pairs))
			for _, pair := range pairs {
				key, value, found := strings.Cut(pair, "=")
				if !found {
					return fmt.Errorf("invalid --field %q, expected key=value", pair)
				}
				if key == model.StatusField {
					return fmt.Errorf("status cannot be seeded directly; use 'gamstatus transition'")
				}
				fields[key] = value
			}

			store, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rec := &model.Record{ID: recordID, Fields: fields}
			if err := store.Insert(cmd.Context(), kind.Collection(), rec); err != nil {
				return err
			}

			cmd.Println(cli.SuccessStyle.Render(fmt.Sprintf("✓ inserted %s %s", kind, recordID)))
			return nil
		},
	}

	cmd.Flags().StringSlice("field", nil, "additional record field as key=value (repeatable)")

	return cmd
}
