package domain

// DedupGroup is a cluster of source rows sharing one case signature.
// Exists only when more than one row derived the same identity; resolution
// (merge/delete) is a downstream decision, never performed here.
type DedupGroup struct {
	Signature     string   `json:"case_id_signature"`
	MemberCaseIDs []string `json:"member_case_ids"`
}

// Size returns the number of members in the group.
func (g *DedupGroup) Size() int {
	return len(g.MemberCaseIDs)
}

// DedupReport summarizes duplicate detection over the full record set.
type DedupReport struct {
	TotalRows      int          `json:"total_rows"`
	DuplicateRows  int          `json:"duplicate_rows"`
	Groups         []DedupGroup `json:"groups"`
}
