// Colors provides terminal output styling for the schedgen CLI, built on
// github.com/muesli/termenv, which does color-profile detection (dumb
// terminal / NO_COLOR / TTY) so output degrades gracefully when piped.
package core

import (
	"github.com/muesli/termenv"
)

var output = termenv.NewOutput(termenv.DefaultOutput().Writer())

// Success returns green styled text for success messages
func Success(text string) string {
	return output.String(text).Foreground(output.Color("2")).String()
}

// Warning returns yellow styled text for warning messages
func Warning(text string) string {
	return output.String(text).Foreground(output.Color("3")).String()
}

// Error returns red styled text for error messages
func Error(text string) string {
	return output.String(text).Foreground(output.Color("1")).String()
}

// Info returns blue styled text for informational messages
func Info(text string) string {
	return output.String(text).Foreground(output.Color("4")).String()
}

// DimText returns faint text for secondary information
func DimText(text string) string {
	return output.String(text).Faint().String()
}

// BoldText returns bold text for emphasis
func BoldText(text string) string {
	return output.String(text).Bold().String()
}
