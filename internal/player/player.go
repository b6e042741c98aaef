// Package player runs a quiz session interactively over a line-oriented terminal.
package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"quiz-master/internal/domain"
	"quiz-master/internal/engine"
	"quiz-master/internal/i18n"
	"quiz-master/internal/util"
)

// ErrAborted is returned when input ends before the session completes.
var ErrAborted = errors.New("quiz aborted before completion")

// warnAt lists the remaining seconds at which a timed session prints a warning.
var warnAt = []int{60, 30, 10}

// Player reads answers from in and writes the quiz to out.
type Player struct {
	source       engine.QuestionSource
	tr           *i18n.Translator
	in           io.Reader
	out          io.Writer
	opts         []engine.Option
	pollInterval time.Duration
}

// New creates a player. opts are passed to every session it starts.
func New(source engine.QuestionSource, tr *i18n.Translator, in io.Reader, out io.Writer, opts ...engine.Option) *Player {
	return &Player{
		source:       source,
		tr:           tr,
		in:           in,
		out:          out,
		opts:         opts,
		pollInterval: 500 * time.Millisecond,
	}
}

// game is the state of one Play call.
type game struct {
	*Player
	quiz    domain.QuizDefinition
	session *engine.Session
	lines   <-chan string
	done    chan engine.Result
	final   *engine.Result
	ticker  <-chan time.Time
	warned  map[int]bool
}

// Play runs one play-through of quiz with count questions and prints the result.
func (p *Player) Play(ctx context.Context, quiz domain.QuizDefinition, count int) (engine.Result, error) {
	g := &game{
		Player: p,
		quiz:   quiz,
		done:   make(chan engine.Result, 1),
		warned: map[int]bool{},
	}
	opts := append(append([]engine.Option(nil), p.opts...), engine.OnComplete(func(res engine.Result) {
		select {
		case g.done <- res:
		default:
		}
	}))
	g.session = engine.NewSession(util.NewULID(), quiz, p.source, opts...)
	defer g.session.Close()

	if err := g.session.Start(ctx, count); err != nil {
		return engine.Result{}, err
	}
	g.lines = readLines(p.in)

	snap := g.session.Snapshot()
	g.println(g.tr.Td("QuizIntro", map[string]any{"Title": quiz.Title}))
	if snap.Timed {
		g.println(g.tr.Td("TimeLimit", map[string]any{"Clock": clock(snap.Duration)}))
		t := time.NewTicker(p.pollInterval)
		defer t.Stop()
		g.ticker = t.C
	} else {
		g.println(g.tr.T("Untimed"))
	}

	if err := g.loop(ctx); err != nil {
		if errors.Is(err, ErrAborted) {
			g.printSummary(g.session.Summary(), 0, "")
		}
		return engine.Result{}, err
	}

	res, err := g.result(ctx)
	if err != nil {
		return engine.Result{}, err
	}
	if res.Reason == engine.ReasonTimeExpired {
		g.println(g.tr.T("TimeUp"))
	}
	g.printSummary(res.Summary, res.TimeSpent, res.Reason)
	g.printReview()
	return res, nil
}

func (g *game) loop(ctx context.Context) error {
	for {
		snap := g.session.Snapshot()
		if snap.State != engine.StateActive {
			return nil
		}
		g.printQuestion(snap)

		answer, ended, err := g.readAnswer(ctx, snap.Current)
		if err != nil {
			return err
		}
		if ended {
			return nil
		}

		sub, err := g.session.Submit(answer)
		if err != nil {
			if domain.IsCode(err, domain.CodeInvalidState) {
				continue
			}
			return err
		}
		g.printFeedback(sub)

		if _, err := g.session.Advance(); err != nil && !domain.IsCode(err, domain.CodeInvalidState) {
			return err
		}
	}
}

// readAnswer blocks until a usable answer is typed or the session ends.
func (g *game) readAnswer(ctx context.Context, q *domain.Question) (string, bool, error) {
	g.prompt(q)
	for {
		select {
		case <-ctx.Done():
			return "", false, ctx.Err()
		case res := <-g.done:
			g.final = &res
			g.println("")
			return "", true, nil
		case <-g.ticker:
			g.warn()
		case line, ok := <-g.lines:
			if !ok {
				g.println("")
				g.println(g.tr.T("InputClosed"))
				return "", false, ErrAborted
			}
			answer, ok := g.parse(q, line)
			if ok {
				return answer, false, nil
			}
			g.prompt(q)
		}
	}
}

// parse maps a typed line to a submission: an option id for choice questions,
// trimmed text otherwise.
func (g *game) parse(q *domain.Question, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !q.Type.IsChoice() {
		if line == "" {
			g.println(g.tr.T("EmptyAnswer"))
			return "", false
		}
		return line, true
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(q.Options) {
		g.println(g.tr.Td("InvalidChoice", map[string]any{"Max": len(q.Options)}))
		return "", false
	}
	return q.Options[n-1].ID, true
}

func (g *game) warn() {
	rem := g.session.Snapshot().Remaining
	for _, at := range warnAt {
		if rem <= at && rem > 0 && !g.warned[at] {
			g.warned[at] = true
			g.println("")
			g.println(g.tr.Td("TimeWarning", map[string]any{"Clock": clock(rem)}))
			return
		}
	}
}

func (g *game) result(ctx context.Context) (engine.Result, error) {
	if g.final != nil {
		return *g.final, nil
	}
	select {
	case res := <-g.done:
		return res, nil
	case <-ctx.Done():
		return engine.Result{}, ctx.Err()
	}
}

func (g *game) printQuestion(snap engine.Snapshot) {
	q := snap.Current
	g.println("")
	g.println(g.tr.Td("QuestionHeader", map[string]any{
		"Number": snap.CurrentIndex + 1,
		"Total":  snap.QuestionCount,
		"Points": q.PointValue(),
	}))
	if snap.Timed {
		g.println(g.tr.Td("TimeRemaining", map[string]any{"Clock": clock(snap.Remaining)}))
	}
	g.println(q.Text)
	for i, opt := range q.Options {
		g.println(g.tr.Td("OptionLine", map[string]any{"Number": i + 1, "Text": opt.Text}))
	}
}

func (g *game) prompt(q *domain.Question) {
	if q.Type.IsChoice() {
		fmt.Fprint(g.out, g.tr.Td("ChoicePrompt", map[string]any{"Max": len(q.Options)}))
		return
	}
	fmt.Fprint(g.out, g.tr.T("TextPrompt"))
}

func (g *game) printFeedback(sub engine.Submission) {
	if sub.Record.IsCorrect {
		g.println(g.tr.Td("Correct", map[string]any{"Points": sub.Record.PointsEarned}))
	} else {
		g.println(g.tr.T("Incorrect"))
	}
	if sub.CorrectAnswer != "" {
		g.println(g.tr.Td("CorrectAnswerWas", map[string]any{"Answer": sub.CorrectAnswer}))
	}
	if sub.Explanation != "" {
		g.println(g.tr.Td("Explanation", map[string]any{"Text": sub.Explanation}))
	}
}

func (g *game) printSummary(sum engine.Summary, spent int, reason engine.CompletionReason) {
	g.println("")
	g.println(g.tr.T("ResultHeader"))
	g.println(g.tr.Td("ResultScore", map[string]any{
		"Earned":     sum.EarnedPoints,
		"Total":      sum.TotalPoints,
		"Percentage": sum.Percentage,
	}))
	g.println(g.tr.Td("ResultCounts", map[string]any{
		"Correct":    sum.CorrectCount,
		"Wrong":      sum.WrongCount,
		"Unanswered": sum.QuestionCount - sum.AnsweredCount,
	}))
	if reason == "" {
		return
	}
	if sum.Passed {
		g.println(g.tr.Td("Passed", map[string]any{"PassScore": sum.PassScore}))
	} else {
		g.println(g.tr.Td("Failed", map[string]any{"PassScore": sum.PassScore}))
	}
	g.println(g.tr.Td("TimeSpent", map[string]any{"Clock": clock(spent)}))
}

func (g *game) printReview() {
	items, err := g.session.Review()
	if err != nil {
		return
	}
	g.println("")
	g.println(g.tr.T("ReviewHeader"))
	for _, item := range items {
		q := item.Question
		g.println(g.tr.Td("ReviewLine", map[string]any{"Number": item.Index + 1, "Text": q.Text}))
		if item.Record == nil {
			g.println(g.tr.T("ReviewUnanswered"))
		} else {
			outcome := g.tr.T("OutcomeWrong")
			if item.Record.IsCorrect {
				outcome = g.tr.T("OutcomeCorrect")
			}
			g.println(g.tr.Td("ReviewAnswer", map[string]any{"Answer": answerText(&q, item.Record.Answer), "Outcome": outcome}))
		}
		if item.CorrectAnswer != "" {
			g.println(g.tr.Td("ReviewCorrect", map[string]any{"Answer": item.CorrectAnswer}))
		}
	}
}

func (g *game) println(s string) {
	fmt.Fprintln(g.out, s)
}

// answerText shows an option answer by its text rather than its id.
func answerText(q *domain.Question, answer string) string {
	if q.Type.IsChoice() {
		if opt := q.FindOption(answer); opt != nil {
			return opt.Text
		}
	}
	return answer
}

func clock(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}
	return engine.FormatClock(seconds)
}

// readLines delivers lines of r until EOF. The goroutine outlives Play when r
// never reaches EOF, which is the case for a terminal.
func readLines(r io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}
