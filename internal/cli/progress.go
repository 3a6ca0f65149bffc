package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/glasbey/internal/palette"
	"golang.org/x/term"
)

// progressBar returns a progress hook that redraws a single terminal line.
// It returns nil (a no-op hook) when f is not a terminal or --quiet is set.
func progressBar(f *os.File, label string) palette.Progress {
	if flagQuiet || !term.IsTerminal(int(f.Fd())) {
		return nil
	}

	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width < 20 {
		width = 80
	}

	lastPct := -1
	return func(done, total int) {
		if total <= 0 {
			return
		}
		pct := done * 100 / total
		if pct == lastPct && done != total {
			return
		}
		lastPct = pct

		barWidth := width - len(label) - 10
		if barWidth > 40 {
			barWidth = 40
		}
		if barWidth < 5 {
			barWidth = 5
		}
		filled := barWidth * done / total
		bar := strings.Repeat("=", filled) + strings.Repeat(" ", barWidth-filled)
		fmt.Fprintf(f, "\r%s %3d%% [%s]", label, pct, bar)
		if done >= total {
			fmt.Fprintln(f)
		}
	}
}
