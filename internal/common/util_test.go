package common

import "testing"

func TestIsTruthyFlag(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"true", true},
		{" true", true},
		{"true\n", true},
		{"TRUE", false},
		{"", false},
		{"false", false},
		{"truee", false},
	}
	for _, tc := range tests {
		if got := IsTruthyFlag(tc.in); got != tc.want {
			t.Fatalf("IsTruthyFlag(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
