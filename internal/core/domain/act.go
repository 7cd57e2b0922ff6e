package domain

import "strings"

// Act identifies the criminal code a section number belongs to
type Act string

const (
	// ActIPC is the Indian Penal Code (1860), the legacy numbering
	ActIPC Act = "IPC"

	// ActBNS is the Bharatiya Nyaya Sanhita (2023), the successor numbering
	ActBNS Act = "BNS"
)

// Valid reports whether the act is a known criminal code
func (a Act) Valid() bool {
	return a == ActIPC || a == ActBNS
}

// Other returns the counterpart code (IPC <-> BNS)
func (a Act) Other() Act {
	if a == ActIPC {
		return ActBNS
	}
	return ActIPC
}

// actKeywords maps each act to the textual indicators that announce it in
// FIR narratives and section lines. Hindi forms are kept verbatim; matching
// is done against alias-normalized text.
var actKeywords = map[Act][]string{
	ActIPC: {
		"IPC",
		"I.P.C",
		"I P C",
		"आईपीसी",
		"आई पी सी",
		"भा दं सं",
		"भादंसं",
		"भारतीय दंड संहिता",
		"भारतीय दण्ड संहिता",
		"INDIAN PENAL CODE",
	},
	ActBNS: {
		"BNS",
		"B.N.S",
		"बी एन एस",
		"बीएनएस",
		"भारतीय न्याय संहिता",
		"BHARATIYA NYAYA SANHITA",
	},
}

// ActKeywords returns the indicator strings for an act.
func ActKeywords(a Act) []string {
	return actKeywords[a]
}

// ParseAct resolves a stored act label ("IPC", "ipc", "IPC_1860", "bns"...)
// to an Act. Returns false when the label names neither code.
func ParseAct(label string) (Act, bool) {
	cleaned := strings.ToUpper(strings.TrimSpace(label))
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	switch {
	case cleaned == "IPC" || strings.HasPrefix(cleaned, "IPC_"):
		return ActIPC, true
	case cleaned == "BNS" || strings.HasPrefix(cleaned, "BNS_"):
		return ActBNS, true
	}
	return "", false
}
