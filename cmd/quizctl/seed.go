package main

import (
	"fmt"
	"os"

	"quiz-master/cmd/quizctl/internal/seedmodels"
	"quiz-master/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func seedCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <bank.json>",
		Short: "Insert quiz banks from a JSON file",
		Long:  "Insert every quiz bank of a JSON array. Each bank is written in one transaction; a bank whose slug already exists is skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logger.Get()

			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open seed file: %w", err)
			}
			defer file.Close()

			banks, err := seedmodels.Decode(file)
			if err != nil {
				return err
			}
			log.Info("Loaded seed data", zap.String("path", args[0]), zap.Int("banks", len(banks)))

			comps, err := c.components(ctx)
			if err != nil {
				return err
			}
			defer comps.Close()

			failed := 0
			for i := range banks {
				bank, err := banks[i].ToDomain()
				if err == nil {
					err = comps.BankWriter.SaveQuizBank(ctx, bank)
				}
				if err != nil {
					failed++
					log.Error("Failed to seed quiz bank", zap.String("slug", banks[i].Slug), zap.Error(err))
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), c.tr.Td("SeedDone", map[string]any{
					"Slug":  bank.Definition.Slug,
					"ID":    bank.Definition.ID,
					"Count": len(bank.Questions),
				}))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d quiz banks were not seeded", failed, len(banks))
			}
			return nil
		},
	}
}
