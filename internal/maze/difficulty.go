package maze

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDifficulty is returned by ParseDifficulty for unrecognised names.
var ErrUnknownDifficulty = errors.New("maze: unknown difficulty")

// Difficulty selects the wall density used by generation.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// DefaultDifficulty is used when nothing else is selected.
const DefaultDifficulty = DifficultyMedium

// Difficulties lists every difficulty from easiest to hardest.
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Next returns the following difficulty, wrapping from hard back to easy.
func (d Difficulty) Next() Difficulty {
	switch d {
	case DifficultyEasy:
		return DifficultyMedium
	case DifficultyMedium:
		return DifficultyHard
	default:
		return DifficultyEasy
	}
}

// ParseDifficulty accepts "easy", "medium" or "hard" in any case.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownDifficulty, s)
	}
	return d, nil
}

// Densities maps each difficulty to the probability that an eligible cell
// becomes a wall.
type Densities map[Difficulty]float64

// DefaultDensities returns easy 0.2, medium 0.3, hard 0.6.
func DefaultDensities() Densities {
	return Densities{
		DifficultyEasy:   0.2,
		DifficultyMedium: 0.3,
		DifficultyHard:   0.6,
	}
}

// Density returns the configured density for d. Missing or unknown entries
// fall back to the default medium density.
func (ds Densities) Density(d Difficulty) float64 {
	if v, ok := ds[d]; ok {
		return v
	}
	if v, ok := DefaultDensities()[d]; ok {
		return v
	}
	return DefaultDensities()[DifficultyMedium]
}
