package forge

import (
	"testing"

	"github.com/kildhq/kild/internal/store"
)

func TestIsMerged(t *testing.T) {
	if !IsMerged(store.PRInfo{State: "merged"}) {
		t.Fatal("expected merged state to report true")
	}
	if IsMerged(store.PRInfo{State: "open"}) {
		t.Fatal("expected open state to report false")
	}
}
