package utils

import (
	"strings"
	"testing"
)

func TestGenerateRandomTokenLength(t *testing.T) {
	for _, n := range []int{1, 7, 8, 32} {
		tok, err := GenerateRandomToken(n)
		if err != nil {
			t.Fatalf("token: %v", err)
		}
		if len(tok) != n {
			t.Errorf("GenerateRandomToken(%d) has length %d", n, len(tok))
		}
	}
}

func TestReference(t *testing.T) {
	ref, err := Reference("KIT")
	if err != nil {
		t.Fatalf("reference: %v", err)
	}
	if !strings.HasPrefix(ref, "KIT-") || len(ref) != len("KIT-")+8 {
		t.Fatalf("unexpected reference %q", ref)
	}
	if ref != strings.ToUpper(ref) {
		t.Fatalf("reference should be upper case, got %q", ref)
	}
	other, _ := Reference("KIT")
	if other == ref {
		t.Fatalf("two references collided: %q", ref)
	}
}
