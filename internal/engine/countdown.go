package engine

// Countdown is a per-session seconds counter. It reports expiry exactly once and
// ignores ticks once cancelled or expired.
type Countdown struct {
	remaining int
	running   bool
}

// Start arms the countdown with durationSeconds.
func (c *Countdown) Start(durationSeconds int) {
	c.remaining = durationSeconds
	c.running = durationSeconds > 0
}

// Tick consumes one second. expired is true only on the tick that reaches zero.
func (c *Countdown) Tick() (remaining int, expired bool) {
	if !c.running {
		return c.remaining, false
	}
	c.remaining--
	if c.remaining <= 0 {
		c.remaining = 0
		c.running = false
		return 0, true
	}
	return c.remaining, false
}

// Cancel stops the countdown. It is idempotent.
func (c *Countdown) Cancel() {
	c.running = false
}

// Running reports whether ticks are still being consumed.
func (c *Countdown) Running() bool {
	return c.running
}

// Remaining returns the seconds left.
func (c *Countdown) Remaining() int {
	return c.remaining
}

// EffectiveDuration scales the quiz time limit to the fraction of the bank that was
// selected: floor(limit/bankSize) * selected. Untimed quizzes return 0.
// When the floor is 0 (limit smaller than the bank) the result is raised to 1 so the
// quiz stays timed and expires on the first tick instead of running untimed.
func EffectiveDuration(timeLimit, bankSize, selected int) int {
	if timeLimit <= 0 || bankSize <= 0 || selected <= 0 {
		return 0
	}
	d := (timeLimit / bankSize) * selected
	if d < 1 {
		return 1
	}
	return d
}
