package bot

import "fmt"

// Formatter renders reply fragments for the chat platform.
type Formatter interface {
	// Bold formats the text with the platform's bold markers, optionally
	// appending a newline.
	Bold(text string, withNewline bool) string
	// MinutesToHours converts a minute count to a decimal hour string,
	// optionally with the unit suffix.
	MinutesToHours(minutes int, withUnit bool) string
}

// PlainFormatter renders without bold markers. Kept as the default since
// not every adapter understands markdown.
type PlainFormatter struct{}

func (PlainFormatter) Bold(text string, withNewline bool) string {
	if withNewline {
		return text + "\n"
	}
	return text
}

func (PlainFormatter) MinutesToHours(minutes int, withUnit bool) string {
	s := fmt.Sprintf("%.2f", float64(minutes)/60)
	if withUnit {
		s += "hr"
	}
	return s
}
