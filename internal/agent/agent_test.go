package agent

import "testing"

func TestParseCaseInsensitive(t *testing.T) {
	for _, in := range []string{"claude", "CLAUDE", " Claude "} {
		d, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if d.ID != Claude {
			t.Fatalf("Parse(%q) = %v, want claude", in, d.ID)
		}
	}
}

func TestParseUnknown(t *testing.T) {
	if _, err := Parse("bogus"); err == nil {
		t.Fatal("expected InvalidAgent error")
	}
}

func TestAllReturnsFiveKinds(t *testing.T) {
	if len(All()) != 5 {
		t.Fatalf("expected 5 agent kinds, got %d", len(All()))
	}
}
