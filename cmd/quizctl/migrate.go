package main

import (
	"fmt"

	"quiz-master/internal/database"

	"github.com/spf13/cobra"
)

func migrateCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			db, err := database.Open(ctx, c.cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			dir := database.Up
			if down, _ := cmd.Flags().GetBool("down"); down {
				dir = database.Down
			}
			if err := database.Migrate(ctx, db, dir); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), c.tr.Td("MigrateDone", map[string]any{"Direction": string(dir)}))
			return nil
		},
	}
	cmd.Flags().Bool("down", false, "roll every migration back")
	return cmd
}
