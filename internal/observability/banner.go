package observability

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	colorReset    = "\033[0m"
	colorNeonCyan = "\033[96m"
	colorYellow   = "\033[33m"
)

func termWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// PrintBanner writes the start-up banner centered to the terminal width.
// Colors are only emitted when color is true.
func PrintBanner(w io.Writer, color bool) {
	banner := `
    ___    __    __________  __________
   /   |  / /   / ____/ __ \/ ____/ __ \
  / /| | / /   / /_  / /_/ / __/ / / / /
 / ___ |/ /___/ __/ / _, _/ /___/ /_/ /
/_/  |_/_____/_/   /_/ |_/_____/_____/

      >> YOUR PUNCTUAL TO-DO BUTLER <<
`

	width := termWidth()
	maxLen := 0
	lines := strings.Split(banner, "\n")
	for _, l := range lines {
		if len(l) > maxLen {
			maxLen = len(l)
		}
	}
	padding := strings.Repeat(" ", max(0, (width-maxLen)/2))

	start, reset := "", ""
	if color {
		start, reset = colorNeonCyan, colorReset
	}
	for _, l := range lines {
		fmt.Fprintf(w, "%s%s%s%s\n", padding, start, l, reset)
	}

	hint := ` Type your commands or "exit" to quit`
	if color {
		hint = colorYellow + hint + colorReset
	}
	fmt.Fprintln(w, hint)
}
