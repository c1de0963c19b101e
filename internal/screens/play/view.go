package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
	"github.com/abhisek/quizdeck/internal/ui/theme"
)

func (p *PlayScreen) View(width, height int) string {
	if p.confirmQuit {
		return renderQuitConfirm(width, height)
	}
	if p.finishing {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Saving your results..."))
	}

	cw := components.ContentWidth(width)
	q := p.sess.Current()
	state := p.sess.SlotState()

	var sections []string

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", p.sess.Index()+1, p.sess.Len()),
		(p.sess.Index()+1)*100/p.sess.Len(), cw)
	sections = append(sections, progress.View())

	meta := theme.Muted.Render(fmt.Sprintf("%s · %s", q.TopicOrDefault(), q.Type))
	prompt := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Prompt)
	sections = append(sections, meta+"\n"+prompt)

	if q.Description != "" {
		sections = append(sections, theme.Body.Width(cw).Render(q.Description))
	}
	if q.Code != "" {
		sections = append(sections, theme.Code.Render(q.Code))
	}

	chosen, ok := p.sess.Selected()
	if !ok {
		chosen = -1
	}
	options := components.OptionList{
		Options:      q.Options,
		Cursor:       p.cursor,
		Chosen:       chosen,
		Graded:       state == session.SlotSubmitted,
		CorrectIndex: q.AnswerIndex,
	}
	sections = append(sections, options.View())

	if state == session.SlotSubmitted {
		sections = append(sections, p.renderFeedback(cw))
	}
	if p.errMsg != "" {
		sections = append(sections, theme.ErrorText.Width(cw).Render(p.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

func (p *PlayScreen) renderFeedback(cw int) string {
	q := p.sess.Current()
	rec, _ := p.sess.Record(q.ID)

	var b strings.Builder
	if rec.IsCorrect {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render("Not quite."))
		b.WriteString(theme.Muted.Render(fmt.Sprintf("  The answer is %d) %s", q.AnswerIndex+1, q.Options[q.AnswerIndex])))
	}

	text := q.Explanation
	if text == "" {
		text = p.explanations[q.ID]
	}
	switch {
	case text != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Body.Width(cw).Render(text))
	case p.explaining == q.ID:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Asking for an explanation..."))
	case p.canExplain():
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Press e for an explanation."))
	}
	return b.String()
}

func renderQuitConfirm(width, height int) string {
	box := components.Card(
		lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Leave this quiz?")+"\n"+
			theme.Muted.Render("Answers so far will not be saved.")+"\n\n"+
			theme.Hint.Render("y to leave · n to keep going"),
		44)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
