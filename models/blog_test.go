package models

import "testing"

func TestValidCategory(t *testing.T) {
	t.Parallel()

	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false, want true", c)
		}
	}

	for _, c := range []string{"", "career", "Tech", "Gardening"} {
		if ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = true, want false", c)
		}
	}
}
