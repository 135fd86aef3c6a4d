package generator

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"wikiquiz/models"
	"wikiquiz/services/article"
)

// Leftmost-first alternation: "Alan Turing" is consumed whole when it starts
// the match, so it never degrades to "Alan <title>".
var placeholderTokens = regexp.MustCompile(`Turing|Bletchley Park|Enigma|Alan Turing`)

var cannedQuestions = []models.Question{
	{
		ID:            1,
		Prompt:        "Which concept did Turing propose as a model of a general-purpose computer?",
		Options:       []string{"Turing Machine", "Difference Engine", "Analytical Engine", "Quantum Computer"},
		CorrectOption: "Turing Machine",
		Difficulty:    models.DifficultyMedium,
		Explanation:   "The Turing machine is a mathematical model of computation describing an abstract machine that manipulates symbols on a strip of tape according to a table of rules.",
	},
	{
		ID:            2,
		Prompt:        "During World War II, where did Turing work on breaking German ciphers?",
		Options:       []string{"Bletchley Park", "Pentagon", "GCHQ", "MI6 Headquarters"},
		CorrectOption: "Bletchley Park",
		Difficulty:    models.DifficultyEasy,
		Explanation:   "Turing worked at Bletchley Park, Britain's codebreaking centre, where he led the Hut 8 section responsible for German naval cryptanalysis.",
	},
	{
		ID:            3,
		Prompt:        "What was the name of the electromechanical machine Turing designed to find Enigma settings?",
		Options:       []string{"The Bombe", "The Colossus", "The Enigma", "The Ace"},
		CorrectOption: "The Bombe",
		Difficulty:    models.DifficultyHard,
		Explanation:   "The Bombe was an electromechanical device used by British cryptologists to help decipher German Enigma-machine-encrypted secret messages.",
	},
	{
		ID:            4,
		Prompt:        "Which famous test did Turing introduce to determine if a machine exhibits intelligent behavior?",
		Options:       []string{"The Turing Test", "The IQ Test", "The Voight-Kampff Test", "The Lovelace Test"},
		CorrectOption: "The Turing Test",
		Difficulty:    models.DifficultyEasy,
		Explanation:   "The Turing test, originally called the imitation game by Turing, is a test of a machine's ability to exhibit intelligent behaviour equivalent to, or indistinguishable from, that of a human.",
	},
	{
		ID:            5,
		Prompt:        "In which year was Alan Turing prosecuted for homosexual acts?",
		Options:       []string{"1952", "1945", "1960", "1939"},
		CorrectOption: "1952",
		Difficulty:    models.DifficultyMedium,
		Explanation:   "Turing was prosecuted in 1952 for homosexual acts. He accepted chemical castration treatment as an alternative to prison.",
	},
}

// TemplateGenerator rewrites the canned questions around the article title.
type TemplateGenerator struct{}

func NewTemplateGenerator() *TemplateGenerator {
	return &TemplateGenerator{}
}

// QuestionCount is the number of questions every templated quiz carries.
func (g *TemplateGenerator) QuestionCount() int {
	return len(cannedQuestions)
}

func (g *TemplateGenerator) Generate(ctx context.Context, a models.Article) ([]models.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	questions := make([]models.Question, len(cannedQuestions))
	for i, question := range cannedQuestions {
		if a.Title == article.SentinelTitle {
			questions[i] = cloneQuestion(question)
			continue
		}
		questions[i] = substituteQuestion(question, a.Title)
	}
	return questions, nil
}

func cloneQuestion(q models.Question) models.Question {
	q.Options = slices.Clone(q.Options)
	return q
}

func substitute(s, title string) string {
	return placeholderTokens.ReplaceAllLiteralString(s, title)
}

// substituteQuestion keeps the options distinct: the correct option is
// placed first and any distractor that would collide falls back to its
// original wording, then to a lettered variant.
func substituteQuestion(q models.Question, title string) models.Question {
	out := q
	out.Prompt = substitute(q.Prompt, title)
	out.Explanation = substitute(q.Explanation, title)
	out.CorrectOption = substitute(q.CorrectOption, title)
	out.Options = make([]string, len(q.Options))

	correctIndex := slices.Index(q.Options, q.CorrectOption)
	taken := map[string]bool{out.CorrectOption: true}

	for i, option := range q.Options {
		if i == correctIndex {
			out.Options[i] = out.CorrectOption
			continue
		}
		out.Options[i] = distinctOption(option, substitute(option, title), i, taken)
		taken[out.Options[i]] = true
	}

	return out
}

func distinctOption(original, substituted string, index int, taken map[string]bool) string {
	for _, candidate := range []string{substituted, original, fmt.Sprintf("%s (%c)", original, 'A'+index)} {
		if !taken[candidate] {
			return candidate
		}
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s (%c%d)", original, 'A'+index, n)
		if !taken[candidate] {
			return candidate
		}
	}
}
