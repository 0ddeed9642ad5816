package player

import (
	"strings"
	"testing"
)

func TestCleanPosition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
		nil_ bool
	}{
		{name: "simple", raw: "FW", want: "FW"},
		{name: "composite keeps first", raw: "FW,MF", want: "FW"},
		{name: "composite with spaces", raw: " DF , MF ", want: "DF"},
		{name: "empty", raw: "", nil_: true},
		{name: "whitespace", raw: "   ", nil_: true},
		{name: "truncated", raw: strings.Repeat("M", 40), want: strings.Repeat("M", 20)},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := CleanPosition(tt.raw)
			if tt.nil_ {
				if got != nil {
					t.Fatalf("CleanPosition(%q) = %q, want nil", tt.raw, *got)
				}
				return
			}
			if got == nil || *got != tt.want {
				t.Fatalf("CleanPosition(%q) = %v, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanNationality(t *testing.T) {
	t.Parallel()

	if got := CleanNationality(""); got != nil {
		t.Fatalf("CleanNationality(\"\") = %q, want nil", *got)
	}

	got := CleanNationality("eng ENG")
	if got == nil || *got != "eng ENG" {
		t.Fatalf("CleanNationality() = %v", got)
	}

	long := CleanNationality(strings.Repeat("x", 80))
	if long == nil || len(*long) != 50 {
		t.Fatalf("CleanNationality() did not truncate: %v", long)
	}
}

func TestPlayerValidate(t *testing.T) {
	t.Parallel()

	if err := (Player{}).Validate(); err == nil {
		t.Fatal("expected error for empty name")
	}
	if err := (Player{Name: "Bukayo Saka"}).Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}
