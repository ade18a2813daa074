package service

import (
	"strings"
	"testing"
)

func TestGradePassword(t *testing.T) {
	cases := []struct {
		pwd  string
		want PasswordStrength
	}{
		{"", StrengthNone},
		{"abc", StrengthWeak},
		{"abcdefgh", StrengthWeak},           // length
		{"abcdefgh1", StrengthWeak},          // length, digit
		{"Abcdefgh1", StrengthMedium},        // length, case, digit
		{"Abcdefgh1!", StrengthMedium},       // length, case, digit, symbol
		{"Abcdefghijk1!", StrengthStrong},    // all five
		{"abcdefghijklmnop", StrengthWeak},   // both lengths only
		{"ABCDEFGHIJKL1234", StrengthMedium}, // both lengths, digit
	}
	for _, tc := range cases {
		if got := GradePassword(tc.pwd); got != tc.want {
			t.Errorf("GradePassword(%q) = %q, want %q", tc.pwd, got, tc.want)
		}
	}
}

func TestGeneratePassword(t *testing.T) {
	seen := make(map[string]bool)
	for range 20 {
		pwd, err := GeneratePassword()
		if err != nil {
			t.Fatalf("GeneratePassword returned error: %v", err)
		}
		if len(pwd) != 12 {
			t.Fatalf("expected 12 characters, got %d", len(pwd))
		}
		for _, r := range pwd {
			if !strings.ContainsRune(passwordCharset, r) {
				t.Fatalf("unexpected character %q in %q", r, pwd)
			}
		}
		seen[pwd] = true
	}
	if len(seen) < 19 {
		t.Fatalf("generated passwords repeat too often: %d unique of 20", len(seen))
	}
}
