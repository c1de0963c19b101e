package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/ui/theme"
)

// OptionList renders the answer options of one question. Cursor is the
// highlighted row, Chosen the selected option (-1 for none). When Graded
// is set the correct option and a wrong choice are colored.
type OptionList struct {
	Options      []string
	Cursor       int
	Chosen       int
	Graded       bool
	CorrectIndex int
}

// View renders the options, one per line.
func (o OptionList) View() string {
	var b strings.Builder
	for i, opt := range o.Options {
		prefix := "  "
		if i == o.Cursor && !o.Graded {
			prefix = "▸ "
		}
		mark := "○"
		if i == o.Chosen {
			mark = "●"
		}

		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case o.Graded && i == o.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case o.Graded && i == o.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case o.Graded:
			style = theme.Muted
		case i == o.Cursor || i == o.Chosen:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
