package domain

import (
	"regexp"
	"strings"
)

// SectionKey uniquely identifies a section within a criminal code.
// It is the canonical lookup key for the reference dictionary, for stored
// case tags and for extracted tags alike.
type SectionKey struct {
	Act     Act    `json:"act"`
	Section string `json:"section_number"`
}

// String renders the artifact key form ("IPC:302A").
func (k SectionKey) String() string {
	return string(k.Act) + ":" + k.Section
}

// canonical section form: digits, optional letter suffix, optional numeric
// sub-sections. "302", "302A", "302(1)", "376AB(2)" are all valid.
var sectionCanonicalRe = regexp.MustCompile(`^([1-9][0-9]{0,3})([A-Z]{0,2})((?:\([0-9]+\))*)$`)

// raw section token: tolerates leading zeros, spaces, "-A"/"(a)" suffix
// styles and Devanagari digits.
var sectionTokenRe = regexp.MustCompile(`^0*([0-9]{1,4})\s*(?:[-(]?\s*([A-Za-z]{1,2})\)?)?((?:\s*\(\s*[0-9]+\s*\))*)$`)

var subSectionRe = regexp.MustCompile(`\(\s*([0-9]+)\s*\)`)

var devanagariDigits = strings.NewReplacer(
	"०", "0", "१", "1", "२", "2", "३", "3", "४", "4",
	"५", "5", "६", "6", "७", "7", "८", "8", "९", "9",
)

// NormalizeSection converts a raw section token to its canonical form.
// Leading zeros are stripped, letter suffixes are uppercased and attached
// bare ("302-a" and "302(A)" both become "302A"), numeric sub-sections are
// preserved ("302(1)" stays "302(1)" since it is legally distinct from 302).
// Returns "" when the token is not a recognizable section number.
//
// This is the single normalization function shared by the reference builder,
// the extractor and the validator; classification must never depend on
// surface formatting alone.
func NormalizeSection(token string) string {
	cleaned := devanagariDigits.Replace(strings.TrimSpace(token))
	m := sectionTokenRe.FindStringSubmatch(cleaned)
	if m == nil {
		return ""
	}

	number := strings.TrimLeft(m[1], "0")
	if number == "" {
		return ""
	}

	var b strings.Builder
	b.WriteString(number)
	b.WriteString(strings.ToUpper(m[2]))
	for _, sub := range subSectionRe.FindAllStringSubmatch(m[3], -1) {
		b.WriteString("(")
		b.WriteString(sub[1])
		b.WriteString(")")
	}

	canonical := b.String()
	if !sectionCanonicalRe.MatchString(canonical) {
		return ""
	}
	return canonical
}

// BaseSection strips sub-section qualifiers ("302(1)" -> "302").
// Used only for reference fallback lookups, never for tag identity.
func BaseSection(canonical string) string {
	if idx := strings.IndexByte(canonical, '('); idx != -1 {
		return canonical[:idx]
	}
	return canonical
}

var aliasSpaceRe = regexp.MustCompile(`\s+`)

// NormalizeAlias canonicalizes a short-form token for reverse-index lookup:
// Devanagari digits folded, dots dropped, case raised, whitespace collapsed.
// "Section  307  ipc" and "SECTION 307 IPC" normalize identically.
func NormalizeAlias(token string) string {
	cleaned := devanagariDigits.Replace(strings.TrimSpace(token))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = aliasSpaceRe.ReplaceAllString(cleaned, " ")
	return strings.ToUpper(cleaned)
}

// SectionEntry is one section of a criminal code as parsed from the
// authoritative reference document. Immutable once built.
type SectionEntry struct {
	Act      Act      `json:"act"`
	Section  string   `json:"section_number"`
	Title    string   `json:"title"`
	FullText string   `json:"full_text"`
	Aliases  []string `json:"aliases"`
}

// Key returns the dictionary key for this entry.
func (e *SectionEntry) Key() SectionKey {
	return SectionKey{Act: e.Act, Section: e.Section}
}
