package domain

import "testing"

func TestNormalizeContent_TXTQuotes(t *testing.T) {
	cases := []struct {
		name string
		typ  RecordType
		in   string
		want string
	}{
		{name: "quoted txt", typ: TypeTXT, in: `"v=spf1 include:_spf.example.com ~all"`, want: "v=spf1 include:_spf.example.com ~all"},
		{name: "unquoted txt", typ: TypeTXT, in: "v=spf1 ~all", want: "v=spf1 ~all"},
		{name: "only one pair stripped", typ: TypeTXT, in: `""quoted""`, want: `"quoted"`},
		{name: "lone quote kept", typ: TypeTXT, in: `"`, want: `"`},
		{name: "non txt untouched", typ: TypeCNAME, in: `"ghs.google.com"`, want: `"ghs.google.com"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeContent(tc.typ, tc.in); got != tc.want {
				t.Errorf("NormalizeContent(%s, %q) = %q, want %q", tc.typ, tc.in, got, tc.want)
			}
		})
	}
}

func TestKeyEquality(t *testing.T) {
	// Quoted and unquoted TXT content must produce identical keys.
	a := KeyForValue("example.com", TypeTXT, `"v=spf1 ~all"`, "")
	b := KeyForValue("example.com", TypeTXT, "v=spf1 ~all", "")
	if a != b {
		t.Errorf("expected quoted and unquoted TXT keys to match: %v vs %v", a, b)
	}

	// Set identifiers distinguish otherwise identical records.
	c := KeyForValue("api.example.com", TypeA, "1.2.3.4", "us-east")
	d := KeyForValue("api.example.com", TypeA, "1.2.3.4", "eu-west")
	if c == d {
		t.Error("expected differing set identifiers to produce distinct keys")
	}

	// MX pairs with different priorities are independent records.
	e := KeyForMX("example.com", 10, "mx1.example.com")
	f := KeyForMX("example.com", 20, "mx1.example.com")
	if e == f {
		t.Error("expected differing MX priorities to produce distinct keys")
	}
}

func TestLiveRecordKey(t *testing.T) {
	mx := LiveRecord{Name: "example.com", Type: TypeMX, Content: "mx1.example.com", Priority: 10, ProviderID: "r1"}
	if got, want := mx.Key(), KeyForMX("example.com", 10, "mx1.example.com"); got != want {
		t.Errorf("MX live key = %v, want %v", got, want)
	}

	txt := LiveRecord{Name: "example.com", Type: TypeTXT, Content: `"v=spf1 ~all"`, ProviderID: "r2"}
	if got, want := txt.Key(), KeyForValue("example.com", TypeTXT, "v=spf1 ~all", ""); got != want {
		t.Errorf("TXT live key = %v, want %v", got, want)
	}

	weighted := LiveRecord{Name: "api.example.com", Type: TypeA, Content: "1.2.3.4", SetID: "us-east"}
	if weighted.Key().SetID != "us-east" {
		t.Error("expected set identifier to survive key construction")
	}
}

func TestRecordTypeHelpers(t *testing.T) {
	if ParseRecordType(" cname ") != TypeCNAME {
		t.Error("expected case-insensitive type parsing")
	}
	for _, typ := range []RecordType{TypeNS, TypeSOA} {
		if typ.Managed() {
			t.Errorf("%s must not be managed", typ)
		}
	}
	if !TypeTXT.Managed() {
		t.Error("TXT must be managed")
	}
	if TypeTXT.Proxiable() || !TypeCNAME.Proxiable() {
		t.Error("proxiable set must be exactly A, AAAA, CNAME")
	}
}
