package engine

import "fmt"

// CountOptions lists the question counts offered for a bank of bankSize questions:
// every multiple of 5 up to bankSize, plus bankSize itself.
func CountOptions(bankSize int) []int {
	if bankSize <= 0 {
		return []int{}
	}
	if bankSize < 5 {
		return []int{bankSize}
	}
	options := make([]int, 0, bankSize/5+1)
	for i := 5; i <= bankSize; i += 5 {
		options = append(options, i)
	}
	if bankSize%5 != 0 {
		options = append(options, bankSize)
	}
	return options
}

// FormatClock renders seconds as m:ss. Zero or negative renders as "".
func FormatClock(seconds int) string {
	if seconds <= 0 {
		return ""
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
