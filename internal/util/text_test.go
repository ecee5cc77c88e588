package util

import "testing"

func TestNormalizeSpaces(t *testing.T) {
	if got := NormalizeSpaces("  ประเภท   เอกสาร \t"); got != "ประเภท เอกสาร" {
		t.Fatalf("got %q", got)
	}
}

func TestContainsFold(t *testing.T) {
	if !ContainsFold("Annual Report", "annual") {
		t.Fatal("expected match")
	}
	if ContainsFold("Annual Report", "budget") {
		t.Fatal("unexpected match")
	}
}

func TestTruncateRunes(t *testing.T) {
	if got := TruncateRunes("สวัสดี", 3); got != "สวั..." {
		t.Fatalf("got %q", got)
	}
	if got := TruncateRunes("abc", 10); got != "abc" {
		t.Fatalf("got %q", got)
	}
}
