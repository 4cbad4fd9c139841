package brackets

import (
	"fmt"

	"github.com/arenaops/esports-platform/models"
)

type doubleEliminationGenerator struct{}

func (g *doubleEliminationGenerator) Name() string {
	return "DoubleElimination"
}

// Generate is deliberately unimplemented. The format is recognised so the
// boundary can distinguish "unknown format" from "known but unsupported",
// and clients get an explicit error instead of an empty bracket they might
// mistake for a finished one.
func (g *doubleEliminationGenerator) Generate(params GenerateParams) (*models.Bracket, error) {
	return nil, fmt.Errorf("%w: double elimination", ErrFormatNotSupported)
}
