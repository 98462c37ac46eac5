package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/praetorian-inc/loosejson/pkg/config"
	"golang.org/x/term"
)

// styles holds color formatters for tree and diagnostic output
type styles struct {
	kind     *color.Color
	span     *color.Color
	key      *color.Color
	str      *color.Color
	number   *color.Color
	literal  *color.Color
	errLabel *color.Color
	location *color.Color
	caret    *color.Color
	heading  *color.Color
}

// newStyles creates color formatters.
// enabled=false respects --color never and the NO_COLOR env var
func newStyles(enabled bool) *styles {
	s := &styles{
		kind:     color.New(color.Bold, color.FgHiBlue),
		span:     color.New(color.FgHiBlack),
		key:      color.New(color.FgHiGreen),
		str:      color.New(color.FgYellow),
		number:   color.New(color.FgCyan),
		literal:  color.New(color.FgMagenta),
		errLabel: color.New(color.Bold, color.FgHiRed),
		location: color.New(color.Bold, color.FgHiWhite),
		caret:    color.New(color.Bold, color.FgHiRed),
		heading:  color.New(color.Bold),
	}

	for _, c := range s.all() {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return s
}

func (s *styles) all() []*color.Color {
	return []*color.Color{s.kind, s.span, s.key, s.str, s.number, s.literal, s.errLabel, s.location, s.caret, s.heading}
}

// colorEnabled resolves a color mode for output written to w. In auto mode
// colors are used only when w is a terminal and NO_COLOR is not set.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case config.ColorAlways:
		return true, nil
	case config.ColorNever:
		return false, nil
	case config.ColorAuto, "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd())), nil
	default:
		return false, fmt.Errorf("unknown color mode: %s", mode)
	}
}
