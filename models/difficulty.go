package models

import (
	"fmt"
	"strings"
)

type Difficulty uint8

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

type DifficultyStyle struct {
	Label string
	Class string
}

// Indexed by Difficulty; every value produced by ParseDifficulty or the
// constants above has an entry.
var difficultyStyles = [...]DifficultyStyle{
	DifficultyEasy:   {Label: "easy", Class: "difficulty-easy"},
	DifficultyMedium: {Label: "medium", Class: "difficulty-medium"},
	DifficultyHard:   {Label: "hard", Class: "difficulty-hard"},
}

func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return 0, fmt.Errorf("unknown difficulty %q", s)
}

func (d Difficulty) Valid() bool {
	return int(d) < len(difficultyStyles)
}

// Style never fails: out-of-range values render as medium.
func (d Difficulty) Style() DifficultyStyle {
	if !d.Valid() {
		return difficultyStyles[DifficultyMedium]
	}
	return difficultyStyles[d]
}

func (d Difficulty) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Difficulty(%d)", uint8(d))
	}
	return difficultyStyles[d].Label
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid difficulty %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
