package ux

import (
	"fmt"
	"io"
	"os"
	"time"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Out receives every line printed by this package.
var Out io.Writer = os.Stdout

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// Step prints a timestamped header for a bootstrap step.
func Step(title string) {
	fmt.Fprintf(Out, "%s[%s]%s %s▸ %s%s\n", Dim, timestamp(), Reset, Cyan, title, Reset)
}

// Info prints a plain message.
func Info(msg string) {
	fmt.Fprintln(Out, msg)
}

// Warn prints a non-fatal problem.
func Warn(format string, args ...any) {
	fmt.Fprintf(Out, "%s⚠ %s%s\n", Yellow, fmt.Sprintf(format, args...), Reset)
}

// Fatal prints the message a failing launch exits with.
func Fatal(msg string) {
	fmt.Fprintf(Out, "%s%s%s\n", Red, msg, Reset)
}

// RolledBack prints a rollback notice.
func RolledBack(dir string) {
	fmt.Fprintf(Out, "%s[%s]%s  %s↺ Restored %s to its previous state%s\n",
		Dim, timestamp(), Reset, Yellow, dir, Reset)
}

// Ready prints the final success line.
func Ready(duration time.Duration) {
	m := int(duration.Minutes())
	s := int(duration.Seconds()) % 60
	fmt.Fprintf(Out, "\n%s[%s]%s  %s%s✓ Drupal CMS is up (%dm %02ds)%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, m, s, Reset)
}
