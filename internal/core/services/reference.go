package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driven"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
)

// Ensure referenceService implements ReferenceService
var _ driving.ReferenceService = (*referenceService)(nil)

// headingRe anchors one section block: "धारा 302", "Section 302-A", with an
// optional separator before the title remainder. Devanagari digits allowed.
var headingRe = regexp.MustCompile(`^(?i)(?:धारा|section)\s*([0-9०-९]{1,4}\s*(?:[-(]?\s*[A-Za-z]{1,2}\)?)?(?:\s*\([0-9०-९]+\))*)\s*[:.–—-]?\s*(.*)$`)

// looseSectionRe recovers bare section tokens from text whose line breaks
// defeat the anchored heading match.
var looseSectionRe = regexp.MustCompile(`(?i)(?:धारा|section)\s*([0-9०-९]{1,4}[A-Za-z]?)`)

// referenceService builds the section reference dictionary from an
// authoritative document and manages its load/rebuild lifecycle.
type referenceService struct {
	artifacts driven.ArtifactStore
	cache     driven.ReferenceCache // optional
	logger    *slog.Logger
}

// NewReferenceService creates a ReferenceService.
// cache may be nil; it is a read-through layer over the artifact store.
func NewReferenceService(artifacts driven.ArtifactStore, cache driven.ReferenceCache, logger *slog.Logger) driving.ReferenceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &referenceService{
		artifacts: artifacts,
		cache:     cache,
		logger:    logger,
	}
}

// Build parses the document text into a dictionary and persists the artifact.
func (s *referenceService) Build(ctx context.Context, source driven.DocumentSource, act domain.Act) (*domain.ReferenceDictionary, error) {
	if !act.Valid() {
		return nil, fmt.Errorf("%w: act %q", domain.ErrInvalidInput, act)
	}

	text, err := source.Text(ctx)
	if err != nil {
		return nil, fmt.Errorf("read reference document: %w", err)
	}

	dict, skipped := parseReferenceText(text, act, s.logger)
	if dict.Len() == 0 {
		return nil, fmt.Errorf("%w: no recognizable sections in %s", domain.ErrReferenceBuild, source.Name())
	}

	for _, collision := range dict.Collisions() {
		s.logger.Warn("alias collision excluded from reverse index",
			"alias", collision.Alias,
			"existing", collision.Existing.String(),
			"rejected", collision.Rejected.String(),
		)
	}

	artifact := dict.Artifact(source.Name(), skipped, time.Now().UTC())
	if err := s.artifacts.SaveReference(ctx, artifact); err != nil {
		return nil, fmt.Errorf("persist reference artifact: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Save(ctx, dict); err != nil {
			s.logger.Warn("reference cache save failed", "error", err)
		}
	}

	s.logger.Info("reference dictionary built",
		"source", source.Name(),
		"act", act,
		"sections", dict.Len(),
		"skipped_blocks", skipped,
		"alias_collisions", len(dict.Collisions()),
	)
	return dict, nil
}

// Load returns the dictionary: cache, then artifact store, then an optional
// build from the document source when autoBuild is set.
func (s *referenceService) Load(ctx context.Context, source driven.DocumentSource, act domain.Act, autoBuild bool) (*domain.ReferenceDictionary, error) {
	if s.cache != nil {
		dict, err := s.cache.Load(ctx)
		if err == nil {
			return dict, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("reference cache load failed", "error", err)
		}
	}

	artifact, err := s.artifacts.LoadReference(ctx)
	if err == nil {
		dict, err := domain.DictionaryFromArtifact(artifact)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Save(ctx, dict); err != nil {
				s.logger.Warn("reference cache save failed", "error", err)
			}
		}
		return dict, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("load reference artifact: %w", err)
	}

	if !autoBuild || source == nil {
		return nil, fmt.Errorf("%w: reference artifact missing and auto-build disabled", domain.ErrNotFound)
	}
	return s.Build(ctx, source, act)
}

// parseReferenceText segments the document into section blocks and builds
// the dictionary. Returns the skipped-block count alongside.
func parseReferenceText(text string, act domain.Act, logger *slog.Logger) (*domain.ReferenceDictionary, int) {
	dict := domain.NewReferenceDictionary()
	skipped := 0

	type block struct {
		section string
		title   string
		body    []string
	}
	var blocks []*block
	var current *block

	for _, rawLine := range strings.Split(text, "\n") {
		line := strings.Join(strings.Fields(rawLine), " ")
		if line == "" {
			continue
		}

		m := headingRe.FindStringSubmatch(line)
		if m == nil {
			if current != nil {
				current.body = append(current.body, line)
			}
			continue
		}

		section := domain.NormalizeSection(m[1])
		if section == "" {
			skipped++
			current = nil
			continue
		}
		current = &block{
			section: section,
			title:   strings.TrimSpace(m[2]),
			body:    []string{line},
		}
		blocks = append(blocks, current)
	}

	for _, b := range blocks {
		entry := &domain.SectionEntry{
			Act:      act,
			Section:  b.section,
			Title:    b.title,
			FullText: strings.Join(b.body, "\n"),
			Aliases:  sectionAliases(act, b.section),
		}
		if err := dict.Add(entry); err != nil {
			// Repeated headings for the same section are common in OCR text;
			// the first occurrence wins.
			if !errors.Is(err, domain.ErrAlreadyExists) {
				logger.Warn("malformed section block skipped", "section", b.section, "error", err)
				skipped++
			}
			continue
		}
	}

	// OCR output often mangles line structure; when the anchored pass finds
	// nothing, scan the raw text for loose section tokens before giving up.
	if dict.Len() == 0 {
		for _, m := range looseSectionRe.FindAllStringSubmatch(text, -1) {
			section := domain.NormalizeSection(m[1])
			if section == "" {
				continue
			}
			entry := &domain.SectionEntry{
				Act:     act,
				Section: section,
				Aliases: sectionAliases(act, section),
			}
			if err := dict.Add(entry); err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
				skipped++
			}
		}
		if dict.Len() > 0 {
			logger.Warn("anchored headings absent, sections recovered by loose scan", "sections", dict.Len())
		}
	}
	return dict, skipped
}

// sectionAliases generates the accepted short-form tokens for one section.
// The bare number is included too; cross-section collisions are rejected by
// the dictionary's reverse index, which keeps bare numbers usable only while
// unambiguous.
func sectionAliases(act domain.Act, section string) []string {
	keyword := string(act)
	return []string{
		section,
		section + " " + keyword,
		keyword + " " + section,
		"SECTION " + section,
		"धारा " + section,
	}
}
