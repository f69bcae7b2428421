package utils

import "testing"

func TestCleanStrings(t *testing.T) {
	got := CleanStrings([]string{" museums ", "", "  ", "food"})
	if len(got) != 2 || got[0] != "museums" || got[1] != "food" {
		t.Fatalf("CleanStrings = %v", got)
	}
	if got := CleanStrings(nil); len(got) != 0 {
		t.Fatalf("CleanStrings(nil) = %v", got)
	}
}

func TestGetUUID(t *testing.T) {
	a, b := GetUUID(), GetUUID()
	if a == "" || a == b {
		t.Fatalf("ids not unique: %q %q", a, b)
	}
}
