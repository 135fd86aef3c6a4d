package generator

import (
	"fmt"
	"strings"

	"wikiquiz/models"
)

const (
	emitQuestionsTool = "emit_quiz_questions"

	questionSystemPrompt = `You are a quiz author. You write multiple-choice questions that test a reader's understanding of one encyclopedia article.

RULES:
1. Every question has exactly one correct answer and at least three plausible distractors.
2. Options must be distinct, and the correct answer must be copied exactly from the options.
3. Only ask about facts stated in the supplied article material. Never invent facts.
4. Mix difficulties: some easy, some medium, some hard.
5. The explanation states why the correct answer is right in one or two sentences.

Always respond by calling emit_quiz_questions. Do not answer in plain text.`
)

func buildQuestionPrompt(article models.Article, questionCount int) string {
	var prompt strings.Builder

	prompt.WriteString(fmt.Sprintf("Write %d multiple-choice questions about the article %q.\n\n", questionCount, article.Title))
	prompt.WriteString("Summary:\n")
	prompt.WriteString(article.Summary)
	prompt.WriteString("\n\n")

	if len(article.Sections) > 0 {
		prompt.WriteString("Sections: ")
		prompt.WriteString(strings.Join(article.Sections, ", "))
		prompt.WriteString("\n")
	}
	if len(article.Entities) > 0 {
		prompt.WriteString("Key entities: ")
		prompt.WriteString(strings.Join(article.Entities, ", "))
		prompt.WriteString("\n")
	}
	if len(article.RelatedTopics) > 0 {
		prompt.WriteString("Related topics: ")
		prompt.WriteString(strings.Join(article.RelatedTopics, ", "))
		prompt.WriteString("\n")
	}

	return prompt.String()
}
