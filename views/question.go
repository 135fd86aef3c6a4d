package views

import (
	"slices"

	"wikiquiz/models"
)

type OptionMark uint8

const (
	MarkNone OptionMark = iota
	MarkCorrect
	MarkIncorrect
	MarkMuted
)

var optionMarkClasses = [...]string{
	MarkNone:      "option",
	MarkCorrect:   "option option-correct",
	MarkIncorrect: "option option-incorrect",
	MarkMuted:     "option option-muted",
}

// Class is the stylesheet class for an option carrying this mark.
func (m OptionMark) Class() string {
	if int(m) >= len(optionMarkClasses) {
		return optionMarkClasses[MarkNone]
	}
	return optionMarkClasses[m]
}

// QuestionView holds the answer state of one question. Unanswered moves to
// answered exactly once; the first selection sticks.
//
// It is not safe for concurrent use; the owning page view serialises access.
type QuestionView struct {
	question          models.Question
	selected          string
	answered          bool
	explanationClosed bool
}

func NewQuestionView(question models.Question) *QuestionView {
	return &QuestionView{question: question}
}

func newQuestionViews(questions []models.Question) []*QuestionView {
	views := make([]*QuestionView, len(questions))
	for i, question := range questions {
		views[i] = NewQuestionView(question)
	}
	return views
}

// Select records option as the answer. It reports whether the state changed,
// which only happens for the first selection of a listed option.
func (v *QuestionView) Select(option string) bool {
	if v.answered || !slices.Contains(v.question.Options, option) {
		return false
	}
	v.selected = option
	v.answered = true
	return true
}

func (v *QuestionView) Answered() bool {
	return v.answered
}

func (v *QuestionView) Selected() (string, bool) {
	return v.selected, v.answered
}

func (v *QuestionView) Correct() bool {
	return v.answered && v.selected == v.question.CorrectOption
}

func (v *QuestionView) Mark(option string) OptionMark {
	switch {
	case !v.answered:
		return MarkNone
	case option == v.question.CorrectOption:
		return MarkCorrect
	case option == v.selected:
		return MarkIncorrect
	default:
		return MarkMuted
	}
}

// ToggleExplanation collapses or expands the explanation. Before an answer
// there is nothing to toggle and it reports false.
func (v *QuestionView) ToggleExplanation() bool {
	if !v.answered {
		return false
	}
	v.explanationClosed = !v.explanationClosed
	return true
}

func (v *QuestionView) ExplanationVisible() bool {
	return v.answered
}

func (v *QuestionView) ExplanationExpanded() bool {
	return v.answered && !v.explanationClosed
}

type OptionSnapshot struct {
	Label      string
	Text       string
	Mark       OptionMark
	Selectable bool
}

type QuestionSnapshot struct {
	Index               int
	Number              int
	Prompt              string
	Difficulty          models.DifficultyStyle
	Options             []OptionSnapshot
	Answered            bool
	Correct             bool
	ShowExplanation     bool
	ExplanationExpanded bool
	Explanation         string
}

func optionLabel(i int) string {
	return string(rune('A' + i))
}

func (v *QuestionView) Snapshot(index int) QuestionSnapshot {
	options := make([]OptionSnapshot, len(v.question.Options))
	for i, option := range v.question.Options {
		options[i] = OptionSnapshot{
			Label:      optionLabel(i),
			Text:       option,
			Mark:       v.Mark(option),
			Selectable: !v.answered,
		}
	}

	return QuestionSnapshot{
		Index:               index,
		Number:              index + 1,
		Prompt:              v.question.Prompt,
		Difficulty:          v.question.Difficulty.Style(),
		Options:             options,
		Answered:            v.answered,
		Correct:             v.Correct(),
		ShowExplanation:     v.ExplanationVisible(),
		ExplanationExpanded: v.ExplanationExpanded(),
		Explanation:         v.question.Explanation,
	}
}
