package domain

import "testing"

func TestNormalizeSection(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"302", "302"},
		{"0302", "302"},
		{" 307 ", "307"},
		{"302-a", "302A"},
		{"302-A", "302A"},
		{"302(a)", "302A"},
		{"376 AB", "376AB"},
		{"302(1)", "302(1)"},
		{"302 (1)", "302(1)"},
		{"34(1)(2)", "34(1)(2)"},
		{"३०२", "302"},
		{"धारा", ""},
		{"", ""},
		{"00", ""},
		{"abc", ""},
		{"12345", ""},
	}

	for _, tc := range cases {
		if got := NormalizeSection(tc.in); got != tc.want {
			t.Errorf("NormalizeSection(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSectionIdempotent(t *testing.T) {
	for _, in := range []string{"302", "302A", "302(1)", "0017-b"} {
		once := NormalizeSection(in)
		if once == "" {
			t.Fatalf("expected %q to normalize", in)
		}
		if twice := NormalizeSection(once); twice != once {
			t.Errorf("NormalizeSection not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestBaseSection(t *testing.T) {
	if got := BaseSection("302(1)"); got != "302" {
		t.Errorf("BaseSection(302(1)) = %q, want 302", got)
	}
	if got := BaseSection("302A"); got != "302A" {
		t.Errorf("BaseSection(302A) = %q, want 302A", got)
	}
}

func TestNormalizeAlias(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"307 ipc", "307 IPC"},
		{"Section  307  IPC", "SECTION 307 IPC"},
		{"I.P.C 307", "IPC 307"},
		{"धारा ३०७", "धारा 307"},
		{"  bns 103 ", "BNS 103"},
	}
	for _, tc := range cases {
		if got := NormalizeAlias(tc.in); got != tc.want {
			t.Errorf("NormalizeAlias(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestParseAct(t *testing.T) {
	for label, want := range map[string]Act{
		"IPC":      ActIPC,
		"ipc":      ActIPC,
		"I.P.C":    ActIPC,
		"IPC_1860": ActIPC,
		"bns":      ActBNS,
		"BNS_2023": ActBNS,
	} {
		got, ok := ParseAct(label)
		if !ok || got != want {
			t.Errorf("ParseAct(%q) = (%q, %t), want (%q, true)", label, got, ok, want)
		}
	}

	for _, label := range []string{"", "CRPC", "पॉक्सो", "1860"} {
		if _, ok := ParseAct(label); ok {
			t.Errorf("ParseAct(%q) should not resolve", label)
		}
	}
}

func TestActOther(t *testing.T) {
	if ActIPC.Other() != ActBNS || ActBNS.Other() != ActIPC {
		t.Error("Act.Other should swap IPC and BNS")
	}
}
