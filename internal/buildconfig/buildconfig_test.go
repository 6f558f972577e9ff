package buildconfig

import "testing"

func TestString(t *testing.T) {
	if got := String(); got != "dev (unknown)" {
		t.Fatalf("String() = %q, want %q", got, "dev (unknown)")
	}
}
