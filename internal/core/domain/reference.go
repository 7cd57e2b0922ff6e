package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// AliasCollision records a short-form token that would have resolved to more
// than one section. Colliding aliases are excluded from the reverse index so
// a lookup can never silently pick the wrong section; both sections stay
// reachable through their fully qualified forms.
type AliasCollision struct {
	Alias    string     `json:"alias"`
	Existing SectionKey `json:"existing"`
	Rejected SectionKey `json:"rejected"`
}

// ReferenceDictionary maps (act, section) keys to entries and maintains a
// reverse index from normalized short-form aliases to keys. Built once by
// the reference builder, then treated as immutable.
type ReferenceDictionary struct {
	entries    map[SectionKey]*SectionEntry
	aliases    map[string]SectionKey
	blocked    map[string]struct{}
	collisions []AliasCollision
}

// NewReferenceDictionary creates an empty dictionary.
func NewReferenceDictionary() *ReferenceDictionary {
	return &ReferenceDictionary{
		entries: make(map[SectionKey]*SectionEntry),
		aliases: make(map[string]SectionKey),
		blocked: make(map[string]struct{}),
	}
}

// Add inserts an entry and indexes its aliases.
// Returns ErrInvalidInput when the entry key is malformed or already present.
func (d *ReferenceDictionary) Add(entry *SectionEntry) error {
	if !entry.Act.Valid() || NormalizeSection(entry.Section) != entry.Section {
		return fmt.Errorf("%w: section entry %s:%s", ErrInvalidInput, entry.Act, entry.Section)
	}
	key := entry.Key()
	if _, exists := d.entries[key]; exists {
		return fmt.Errorf("%w: section entry %s", ErrAlreadyExists, key)
	}

	d.entries[key] = entry
	for _, alias := range entry.Aliases {
		d.indexAlias(alias, key)
	}
	return nil
}

// indexAlias inserts one normalized alias, rejecting collisions.
func (d *ReferenceDictionary) indexAlias(alias string, key SectionKey) {
	normalized := NormalizeAlias(alias)
	if normalized == "" {
		return
	}
	if _, bad := d.blocked[normalized]; bad {
		return
	}
	if existing, ok := d.aliases[normalized]; ok {
		if existing == key {
			return
		}
		// Collision: drop the alias entirely rather than overwrite.
		delete(d.aliases, normalized)
		d.blocked[normalized] = struct{}{}
		d.collisions = append(d.collisions, AliasCollision{
			Alias:    normalized,
			Existing: existing,
			Rejected: key,
		})
		return
	}
	d.aliases[normalized] = key
}

// Lookup returns the entry for an exact key.
func (d *ReferenceDictionary) Lookup(key SectionKey) (*SectionEntry, bool) {
	entry, ok := d.entries[key]
	return entry, ok
}

// HasSection reports whether a section number exists within an act.
func (d *ReferenceDictionary) HasSection(act Act, section string) bool {
	_, ok := d.entries[SectionKey{Act: act, Section: section}]
	return ok
}

// Resolve maps a short-form token through the reverse index.
// The token is normalized with the same function used at build time.
func (d *ReferenceDictionary) Resolve(shortForm string) (SectionKey, bool) {
	key, ok := d.aliases[NormalizeAlias(shortForm)]
	return key, ok
}

// Collisions returns the aliases rejected during construction.
func (d *ReferenceDictionary) Collisions() []AliasCollision {
	return d.collisions
}

// Len returns the number of entries.
func (d *ReferenceDictionary) Len() int {
	return len(d.entries)
}

// Keys returns all entry keys sorted by act then section.
func (d *ReferenceDictionary) Keys() []SectionKey {
	keys := make([]SectionKey, 0, len(d.entries))
	for key := range d.entries {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Act != keys[j].Act {
			return keys[i].Act < keys[j].Act
		}
		return keys[i].Section < keys[j].Section
	})
	return keys
}

// ReferenceArtifact is the JSON persistence form of a dictionary,
// keyed "<act>:<section_number>".
type ReferenceArtifact struct {
	Source       string                    `json:"source"`
	BuiltAt      time.Time                 `json:"built_at"`
	SectionCount int                       `json:"section_count"`
	SkippedCount int                       `json:"skipped_count"`
	Entries      map[string]*SectionEntry  `json:"entries"`
	Collisions   []AliasCollision          `json:"alias_collisions,omitempty"`
}

// Artifact renders the dictionary in its persisted form.
func (d *ReferenceDictionary) Artifact(source string, skipped int, builtAt time.Time) *ReferenceArtifact {
	entries := make(map[string]*SectionEntry, len(d.entries))
	for key, entry := range d.entries {
		entries[key.String()] = entry
	}
	return &ReferenceArtifact{
		Source:       source,
		BuiltAt:      builtAt,
		SectionCount: len(entries),
		SkippedCount: skipped,
		Entries:      entries,
		Collisions:   d.collisions,
	}
}

// DictionaryFromArtifact reconstructs a dictionary, replaying alias indexing
// so the collision exclusions match the original build exactly.
func DictionaryFromArtifact(artifact *ReferenceArtifact) (*ReferenceDictionary, error) {
	if artifact == nil || len(artifact.Entries) == 0 {
		return nil, fmt.Errorf("%w: empty reference artifact", ErrReferenceBuild)
	}

	dict := NewReferenceDictionary()
	keys := make([]string, 0, len(artifact.Entries))
	for key := range artifact.Entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := dict.Add(artifact.Entries[key]); err != nil {
			return nil, fmt.Errorf("reference artifact entry %s: %w", key, err)
		}
	}
	return dict, nil
}

// MarshalJSON ensures a dictionary serialized directly matches its artifact
// entry map (used by the redis cache adapter).
func (d *ReferenceDictionary) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Artifact("", 0, time.Time{}))
}

// UnmarshalJSON reverses MarshalJSON.
func (d *ReferenceDictionary) UnmarshalJSON(data []byte) error {
	var artifact ReferenceArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return err
	}
	rebuilt, err := DictionaryFromArtifact(&artifact)
	if err != nil {
		return err
	}
	*d = *rebuilt
	return nil
}
