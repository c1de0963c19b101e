package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizdeck/internal/question"
)

const systemPrompt = `You are a senior React engineer reviewing quiz answers. Explain concisely and accurately why the correct option is right. Do not restate the question.`

func buildUserMessage(q question.Question, selected int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\n", q.TopicOrDefault())
	fmt.Fprintf(&b, "Question: %s\n", q.Prompt)
	if q.Description != "" {
		fmt.Fprintf(&b, "Context: %s\n", q.Description)
	}
	if q.Code != "" {
		fmt.Fprintf(&b, "\nCode:\n%s\n", q.Code)
	}

	b.WriteString("\nOptions:\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	fmt.Fprintf(&b, "\nCorrect option: %d\n", q.AnswerIndex+1)

	if selected >= 0 && selected < len(q.Options) && selected != q.AnswerIndex {
		fmt.Fprintf(&b, "The learner chose option %d. Mention briefly why it is wrong.\n", selected+1)
	}
	return b.String()
}
