package main

import (
	"fmt"
	"strings"

	"quiz-master/internal/dto"
	"quiz-master/internal/engine"
	"quiz-master/internal/service"

	"github.com/spf13/cobra"
)

func listCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List published quizzes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			comps, err := c.components(ctx)
			if err != nil {
				return err
			}
			defer comps.Close()

			var query dto.QuizListQuery
			query.CategoryID, _ = cmd.Flags().GetString("category")
			query.Difficulty, _ = cmd.Flags().GetString("difficulty")
			query.Search, _ = cmd.Flags().GetString("search")

			catalog := service.NewCatalogService(comps.Store, c.cfg.Quiz.DefaultPassScore)
			resp, err := catalog.ListQuizzes(ctx, query)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if resp.Total == 0 {
				fmt.Fprintln(out, c.tr.T("CatalogEmpty"))
				return nil
			}
			fmt.Fprintln(out, c.tr.T("CatalogHeader"))
			for _, q := range resp.Quizzes {
				fmt.Fprintln(out, c.tr.Td("CatalogRow", map[string]any{
					"Slug":       q.Slug,
					"Title":      q.Title,
					"Difficulty": q.Difficulty,
				}))
				fmt.Fprintln(out, "  "+c.tr.Tp("QuestionsAvailable", q.QuestionCount))
				if opts := countOptions(c, q.TimeLimitSeconds, q.QuestionCount); opts != "" {
					fmt.Fprintln(out, "  "+c.tr.Td("CountOptions", map[string]any{"Options": opts}))
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("category", "", "category id, or all")
	f.StringP("difficulty", "d", "", "easy, medium, hard, or all")
	f.StringP("search", "s", "", "case-insensitive search over title and description")
	return cmd
}

// countOptions renders the selectable question counts, each with its time budget when timed.
func countOptions(c *cli, timeLimit, bankSize int) string {
	counts := engine.CountOptions(bankSize)
	parts := make([]string, 0, len(counts))
	for _, n := range counts {
		if timeLimit <= 0 {
			parts = append(parts, fmt.Sprint(n))
			continue
		}
		d := engine.EffectiveDuration(timeLimit, bankSize, n)
		parts = append(parts, c.tr.Td("CountOption", map[string]any{"Count": n, "Clock": engine.FormatClock(d)}))
	}
	return strings.Join(parts, ", ")
}
