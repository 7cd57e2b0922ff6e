package driving

import (
	"context"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
)

// ReferenceService builds and loads the legal-section reference dictionary
type ReferenceService interface {
	// Build parses a reference document into a dictionary and persists the
	// artifact. Fails with domain.ErrReferenceBuild when zero sections are
	// recognized; partially malformed blocks are skipped and counted.
	Build(ctx context.Context, source driven.DocumentSource, act domain.Act) (*domain.ReferenceDictionary, error)

	// Load returns the dictionary from cache or artifact store. With
	// autoBuild set and no artifact present, it builds from the given source.
	Load(ctx context.Context, source driven.DocumentSource, act domain.Act, autoBuild bool) (*domain.ReferenceDictionary, error)
}
