package views

import (
	"fmt"
	"time"
)

const (
	Brand        = "WikiQuiz AI"
	GeneratePath = "/"
	HistoryPath  = "/history"
)

type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Shell is the frame around every page: brand, navigation and footer.
type Shell struct {
	Brand    string
	Nav      []NavItem
	Footer   string
	NotFound bool
}

func NewShell(path string, now time.Time) Shell {
	nav := []NavItem{
		{Label: "Generate Quiz", Path: GeneratePath},
		{Label: "Past Quizzes", Path: HistoryPath},
	}

	known := false
	for i := range nav {
		if nav[i].Path == path {
			nav[i].Active = true
			known = true
		}
	}

	return Shell{
		Brand:    Brand,
		Nav:      nav,
		Footer:   fmt.Sprintf("© %d AI Wiki Quiz Generator.", now.Year()),
		NotFound: !known,
	}
}
