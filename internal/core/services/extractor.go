package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/nyaya-labs/firtag-core/internal/core/domain"
	"github.com/nyaya-labs/firtag-core/internal/core/ports/driving"
)

// Ensure tagExtractor implements TagExtractor
var _ driving.TagExtractor = (*tagExtractor)(nil)

// actIndicatorWindow is how close (in tokens) an act keyword must be to a
// number for the act to count as explicit.
const actIndicatorWindow = 4

// maxRangeSpan caps range expansion ("302-420" is a range, "1-900" is noise).
const maxRangeSpan = 20

// sectionNumberRe matches candidate section tokens: ASCII or Devanagari
// digits, optional numeric sub-sections, optional short letter suffix.
var sectionNumberRe = regexp.MustCompile(`[0-9०-९]{1,4}(?:\s*\(\s*[0-9०-९]+\s*\))*(?:\s*-\s*[A-Za-z]{1,2}\b|[A-Za-z]{1,2}\b)?`)

// sectionRangeRe matches explicit ranges like "307-308" or "307–308".
var sectionRangeRe = regexp.MustCompile(`([0-9०-९]{1,4})\s*[-–—]\s*([0-9०-९]{1,4})`)

// indicatorPatterns compiles the act keyword forms to position-aware
// regexps. Latin forms get word boundaries; Devanagari forms match verbatim
// (\b is ASCII-only and useless around Devanagari).
var indicatorPatterns = buildIndicatorPatterns()

type indicatorPattern struct {
	act domain.Act
	re  *regexp.Regexp
}

func buildIndicatorPatterns() []indicatorPattern {
	var patterns []indicatorPattern
	for _, act := range []domain.Act{domain.ActIPC, domain.ActBNS} {
		for _, keyword := range domain.ActKeywords(act) {
			var expr string
			if isASCII(keyword) {
				escaped := regexp.QuoteMeta(keyword)
				// "I.P.C" style keywords also appear with trailing dots
				escaped = strings.ReplaceAll(escaped, `\.`, `\.?\s*`)
				expr = `(?i)\b` + escaped + `\b`
			} else {
				expr = regexp.QuoteMeta(keyword)
			}
			patterns = append(patterns, indicatorPattern{act: act, re: regexp.MustCompile(expr)})
		}
	}
	return patterns
}

func isASCII(s string) bool {
	for _, r := range s {
		if r > 127 {
			return false
		}
	}
	return true
}

// ExtractorConfig configures a TagExtractor.
type ExtractorConfig struct {
	// Reference resolves bare numbers to an act when unambiguous.
	// Optional; without it bare numbers fall back to DefaultAct.
	Reference *domain.ReferenceDictionary

	// DefaultAct is applied to act-less numbers with no sentence context.
	// Legacy records predate BNS, so IPC is the default default.
	DefaultAct domain.Act
}

// tagExtractor scans narrative text for (act, section) references.
// Pure: no I/O, no mutation of its inputs.
type tagExtractor struct {
	ref        *domain.ReferenceDictionary
	defaultAct domain.Act
}

// NewTagExtractor creates a TagExtractor.
func NewTagExtractor(cfg ExtractorConfig) driving.TagExtractor {
	defaultAct := cfg.DefaultAct
	if !defaultAct.Valid() {
		defaultAct = domain.ActIPC
	}
	return &tagExtractor{ref: cfg.Reference, defaultAct: defaultAct}
}

// ExtractRecord tags one case record. The Sections line of the composed
// document is the primary target; the full narrative is the fallback.
func (e *tagExtractor) ExtractRecord(record *domain.CaseRecord) []domain.ExtractedTag {
	if line := record.SectionsLineOf(); line != "" {
		return e.Extract(line)
	}
	return e.Extract(record.Narrative)
}

// Extract scans free text and returns the deduplicated set of tags found.
func (e *tagExtractor) Extract(text string) []domain.ExtractedTag {
	found := make(map[domain.SectionKey]domain.ExtractedTag)

	for _, sentence := range splitSentences(text) {
		e.extractSentence(sentence, found)
	}

	tags := make([]domain.ExtractedTag, 0, len(found))
	for _, tag := range found {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if tags[i].Act != tags[j].Act {
			return tags[i].Act < tags[j].Act
		}
		return tags[i].Section < tags[j].Section
	})
	return tags
}

type indicatorHit struct {
	act        domain.Act
	start, end int
}

func (e *tagExtractor) extractSentence(sentence string, found map[domain.SectionKey]domain.ExtractedTag) {
	var indicators []indicatorHit
	for _, pattern := range indicatorPatterns {
		for _, loc := range pattern.re.FindAllStringIndex(sentence, -1) {
			indicators = append(indicators, indicatorHit{act: pattern.act, start: loc[0], end: loc[1]})
		}
	}
	sort.Slice(indicators, func(i, j int) bool { return indicators[i].start < indicators[j].start })

	// Ranges first, then single numbers outside the range spans; otherwise
	// "307-308" would be seen as two unrelated numbers.
	rangeLocs := sectionRangeRe.FindAllStringIndex(sentence, -1)
	spans := make([][]int, 0, len(rangeLocs))
	spans = append(spans, rangeLocs...)
	for _, loc := range sectionNumberRe.FindAllStringIndex(sentence, -1) {
		if !overlapsAny(rangeLocs, loc) {
			spans = append(spans, loc)
		}
	}

	for _, loc := range spans {
		span := sentence[loc[0]:loc[1]]
		if insideIndicator(indicators, loc[0]) {
			continue
		}

		act, confidence, ok := e.resolveAct(sentence, indicators, loc, span)
		if !ok {
			continue
		}

		for _, section := range expandSections(span) {
			if isYearLike(section) {
				continue
			}
			tag := domain.ExtractedTag{
				Act:        act,
				Section:    section,
				RawSpan:    span,
				Confidence: confidence,
			}
			if prev, exists := found[tag.Key()]; exists && prev.Confidence == domain.ConfidenceHigh {
				continue
			}
			found[tag.Key()] = tag
		}
	}
}

// resolveAct determines the act for one number occurrence: explicit keyword
// within the token window (high), nearest preceding indicator in the
// sentence (low), unambiguous reference alias (low), default act (low).
func (e *tagExtractor) resolveAct(sentence string, indicators []indicatorHit, loc []int, span string) (domain.Act, domain.Confidence, bool) {
	var nearestBefore *indicatorHit
	for i := range indicators {
		ind := indicators[i]

		var between string
		switch {
		case ind.end <= loc[0]:
			between = sentence[ind.end:loc[0]]
			nearestBefore = &indicators[i]
		case ind.start >= loc[1]:
			between = sentence[loc[1]:ind.start]
		default:
			continue
		}
		if len(strings.Fields(between)) < actIndicatorWindow {
			return ind.act, domain.ConfidenceHigh, true
		}
	}

	if nearestBefore != nil {
		return nearestBefore.act, domain.ConfidenceLow, true
	}

	if e.ref != nil {
		if section := domain.NormalizeSection(span); section != "" {
			if key, ok := e.ref.Resolve(section); ok {
				return key.Act, domain.ConfidenceLow, true
			}
		}
	}

	return e.defaultAct, domain.ConfidenceLow, true
}

// expandSections normalizes one matched span, expanding pure numeric ranges
// ("307-308") into individual sections. Suffixed forms ("302-A") are never
// treated as ranges.
func expandSections(span string) []string {
	if m := sectionRangeRe.FindStringSubmatch(span); m != nil {
		start := domain.NormalizeSection(m[1])
		end := domain.NormalizeSection(m[2])
		lo, errLo := strconv.Atoi(start)
		hi, errHi := strconv.Atoi(end)
		if errLo == nil && errHi == nil && lo < hi && hi-lo <= maxRangeSpan {
			sections := make([]string, 0, hi-lo+1)
			for n := lo; n <= hi; n++ {
				sections = append(sections, strconv.Itoa(n))
			}
			return sections
		}
		// Not a plausible range: keep the endpoints individually.
		var sections []string
		if start != "" {
			sections = append(sections, start)
		}
		if end != "" && end != start {
			sections = append(sections, end)
		}
		return sections
	}

	if section := domain.NormalizeSection(span); section != "" {
		return []string{section}
	}
	return nil
}

// isYearLike filters plain numbers that are almost certainly years, not
// sections ("भारतीय दंड संहिता 1860").
func isYearLike(section string) bool {
	n, err := strconv.Atoi(section)
	if err != nil {
		return false
	}
	return n >= 1800 && n <= 2099
}

func overlapsAny(locs [][]int, loc []int) bool {
	for _, other := range locs {
		if loc[0] < other[1] && other[0] < loc[1] {
			return true
		}
	}
	return false
}

func insideIndicator(indicators []indicatorHit, pos int) bool {
	for _, ind := range indicators {
		if pos >= ind.start && pos < ind.end {
			return true
		}
	}
	return false
}

// sentence terminators: danda, newline, and ASCII enders. A '.' only ends a
// sentence when not part of an abbreviation like "I.P.C.".
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder
	runes := []rune(text)

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			sentences = append(sentences, s)
		}
		current.Reset()
	}

	for i, r := range runes {
		switch r {
		case '।', '\n', '?', '!', ';':
			flush()
		case '.':
			if i > 0 && isAbbrevLetter(runes[i-1]) {
				current.WriteRune(r)
				continue
			}
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return sentences
}

// isAbbrevLetter reports whether the rune before a '.' suggests an
// abbreviation rather than a sentence end.
func isAbbrevLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
