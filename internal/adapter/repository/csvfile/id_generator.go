package csvfile

import (
	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based account and operation IDs. IDs are a
// logging concern only; the statement format carries none.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
