package driven

import "context"

// DocumentSource yields the raw text of an authoritative legal-code
// document (PDF extraction, plain text file). Layout guarantees are weak:
// the text only needs locatable section headings.
type DocumentSource interface {
	// Text returns the full extracted document text
	Text(ctx context.Context) (string, error)

	// Name identifies the source for artifact metadata
	Name() string
}
