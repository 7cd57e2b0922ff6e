package domain

import (
	"crypto/sha1"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

// StoredTag is a section tag already present in case metadata, written by
// the external vector-store builder. Act is the raw stored label; it is
// parsed and normalized at validation time, not at load time, so malformed
// rows survive ingestion and surface as unparseable.
type StoredTag struct {
	Act     string `json:"act"`
	Section string `json:"section_number"`
}

// CaseRecord is one ingested FIR row. Owned by the external ingestion
// pipeline; this core consumes it read-only.
type CaseRecord struct {
	CaseID       string      `json:"case_id"`
	District     string      `json:"district"`
	Station      string      `json:"ps"`
	FIRNumber    string      `json:"fir_srno"`
	Year         string      `json:"reg_year"`
	RegisteredAt string      `json:"reg_dt"`
	Complainant  string      `json:"complainant"`
	Victim       string      `json:"victim"`
	Accused      string      `json:"accused"`
	Officer      string      `json:"io"`
	SectionsLine string      `json:"act_section"`
	Narrative    string      `json:"text"`
	Tags         []StoredTag `json:"tags"`
}

var fieldLineRe = regexp.MustCompile(`^\s*([A-Za-z ]+):\s*(.*)$`)

// fieldKeys maps the labels of a composed FIR document to record fields.
var fieldKeys = map[string]string{
	"district":       "district",
	"police station": "ps",
	"fir number":     "fir_srno",
	"year":           "reg_year",
	"date":           "reg_dt",
	"sections":       "act_section",
	"complainant":    "complainant",
	"victim":         "victim",
	"accused":        "accused",
	"io":             "io",
	"fir content":    "fir_content",
}

// ParseDocumentFields extracts the labeled "Field: value" lines of a
// composed FIR document blob into a map keyed by canonical field name.
func ParseDocumentFields(text string) map[string]string {
	fields := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		m := fieldLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		label := strings.Join(strings.Fields(strings.ToLower(m[1])), " ")
		key, ok := fieldKeys[label]
		if !ok {
			continue
		}
		fields[key] = strings.TrimSpace(m[2])
	}
	return fields
}

// SectionsLineOf pulls the "Sections:" line out of a composed document blob.
// Falls back to the record's own act_section field when the blob lacks one.
func (c *CaseRecord) SectionsLineOf() string {
	if v := ParseDocumentFields(c.Narrative)["act_section"]; v != "" {
		return v
	}
	return strings.TrimSpace(c.SectionsLine)
}

// identity fields are cleaned the same way on every path so that signature
// derivation is stable across re-ingestions.
func cleanIdentityField(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

// canonicalDate renders any recognized date form as "2006-01-02".
// Unrecognized values fall back to the cleaned raw string.
func canonicalDate(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return cleanIdentityField(trimmed)
}

// CaseSignature derives the stable case identity from the fields presumed to
// legally identify an FIR: district, station, registration year, serial
// number and registration date. Two source rows with equal signatures are
// duplicates of the same case.
func (c *CaseRecord) CaseSignature() string {
	parts := []string{
		cleanIdentityField(c.District),
		cleanIdentityField(c.Station),
		cleanIdentityField(c.Year),
		cleanIdentityField(c.FIRNumber),
		canonicalDate(c.RegisteredAt),
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
