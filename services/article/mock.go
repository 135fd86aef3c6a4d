package article

import (
	"context"
	"fmt"
	"slices"

	"wikiquiz/models"
)

const cannedSummary = "Alan Mathison Turing OBE FRS was an English mathematician, computer scientist, logician, cryptanalyst, philosopher, and theoretical biologist. Turing was highly influential in the development of theoretical computer science, providing a formalisation of the concepts of algorithm and computation with the Turing machine, which can be considered a model of a general-purpose computer."

const templateSummary = "This article discusses %[1]s, a significant subject in its field. The content covers historical context, key developments, and the lasting impact of %[1]s on modern society and academic study."

var (
	cannedSections      = []string{"Early Life", "Cryptanalysis", "Turing Machine", "Legacy"}
	cannedEntities      = []string{"Enigma Machine", "Bletchley Park", "University of Manchester", "Artificial Intelligence", "Christopher Morcom"}
	cannedRelatedTopics = []string{"Computer Science", "World War II", "Cryptography", "Ada Lovelace", "John von Neumann", "Enigma Machine", "Halting Problem"}
	templateEntities    = []string{"Historical Context", "Major Impact", "Future Research", "Key figures"}
)

// MockSource answers every URL from the canned article without any I/O.
type MockSource struct{}

func NewMockSource() *MockSource {
	return &MockSource{}
}

func (s *MockSource) Fetch(ctx context.Context, articleURL string) (models.Article, error) {
	if err := ctx.Err(); err != nil {
		return models.Article{}, err
	}

	title := TitleFromURL(articleURL)
	article := models.Article{
		Title:         title,
		SourceURL:     articleURL,
		Sections:      slices.Clone(cannedSections),
		RelatedTopics: slices.Clone(cannedRelatedTopics),
	}

	if title == SentinelTitle {
		article.Summary = cannedSummary
		article.Entities = slices.Clone(cannedEntities)
		return article, nil
	}

	article.Summary = fmt.Sprintf(templateSummary, title)
	article.Entities = append([]string{title}, templateEntities...)
	return article, nil
}
