package brackets

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arenaops/esports-platform/models"
)

var (
	// ErrInvalidFormat is returned when a format string does not name any
	// known bracket type. Unknown formats are rejected at the boundary
	// instead of silently falling back to single elimination.
	ErrInvalidFormat = errors.New("invalid bracket format")

	// ErrFormatNotSupported marks formats the engine recognises but cannot
	// generate yet (double elimination). Callers must surface this to the
	// client rather than treat an empty bracket as valid.
	ErrFormatNotSupported = errors.New("bracket format not supported")

	ErrNoParticipants   = errors.New("cannot generate bracket with zero participants")
	ErrMatchNotFound    = errors.New("match not found in bracket")
	ErrMatchNotEligible = errors.New("match is not eligible for result entry")
	ErrInvalidWinner    = errors.New("winner is not a team of this match")
)

// ParseFormat normalises a wire format string into one of the known bracket
// formats. Matching is case-insensitive and treats hyphens, underscores and
// spaces as interchangeable.
func ParseFormat(s string) (models.BracketFormat, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("_", "-", " ", "-").Replace(norm)

	switch norm {
	case "single-elimination":
		return models.FormatSingleElimination, nil
	case "double-elimination":
		return models.FormatDoubleElimination, nil
	case "round-robin":
		return models.FormatRoundRobin, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}
