package urls

import "testing"

func TestCriterion(t *testing.T) {
	tests := []struct {
		criterion string
		want      string
	}{
		{"2.1.2", QuickRef + "?showtechniques=212"},
		{" 1.4.13 ", QuickRef + "?showtechniques=1413"},
		{"", QuickRef},
	}
	for _, tt := range tests {
		if got := Criterion(tt.criterion); got != tt.want {
			t.Errorf("Criterion(%q) = %q, want %q", tt.criterion, got, tt.want)
		}
	}
}
