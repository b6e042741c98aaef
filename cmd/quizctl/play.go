package main

import (
	"errors"
	"fmt"

	"quiz-master/internal/engine"
	"quiz-master/internal/player"
	"quiz-master/internal/service"
	"quiz-master/internal/util"

	"github.com/spf13/cobra"
)

func playCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play <slug>",
		Short: "Play a quiz in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			comps, err := c.components(ctx)
			if err != nil {
				return err
			}
			defer comps.Close()

			quiz, err := comps.Store.GetQuizDefinitionBySlug(ctx, args[0])
			if err != nil {
				return err
			}

			count, _ := cmd.Flags().GetInt("count")
			if count == 0 {
				count = quiz.QuestionCount
			}
			if count < 1 || count > c.cfg.Quiz.MaxQuestionCount {
				return fmt.Errorf("--count must be between 1 and %d", c.cfg.Quiz.MaxQuestionCount)
			}

			recorder := service.NewAdvisoryRecorder(comps.Sink, "cli-"+util.NewULID(), c.cfg.Quiz.ProgressTimeout, c.cfg.Quiz.ProgressQueueSize)
			defer recorder.Close()

			p := player.New(comps.Store, c.tr, cmd.InOrStdin(), cmd.OutOrStdout(),
				engine.WithRecorder(recorder),
				engine.WithDefaultPassScore(c.cfg.Quiz.DefaultPassScore))
			if _, err := p.Play(ctx, *quiz, count); err != nil && !errors.Is(err, player.ErrAborted) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().IntP("count", "n", 0, "number of questions (default: the whole bank)")
	return cmd
}
