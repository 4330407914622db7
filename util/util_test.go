package util

import "testing"

func TestParseSize(t *testing.T) {
	const def = 42
	tests := []struct {
		in   string
		want int64
	}{
		{"10MB", 10 << 20},
		{"512kb", 512 << 10},
		{"2GB", 2 << 30},
		{"100B", 100},
		{"2048", 2048},
		{" 1MB ", 1 << 20},
		{"", def},
		{"abc", def},
		{"-5MB", def},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseSize(tt.in, def); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"sk-abcdefghijkl", "sk-a***"},
		{"short", "***"},
		{"", "***"},
	}
	for _, tt := range tests {
		if got := MaskSecret(tt.in, 4); got != tt.want {
			t.Errorf("MaskSecret(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
