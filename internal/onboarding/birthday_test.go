package onboarding

import "testing"

func TestConvertBirthday(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"03/04/2001", "2001-03-04"},
		{"3/4/2001", "2001-03-04"},
		{"12/25/1990", "1990-12-25"},
		{"2001-03-04", "2001-03-04"},
		{"03/2001", "03/2001"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ConvertBirthday(tt.in); got != tt.want {
				t.Errorf("ConvertBirthday(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseYearsSkiing(t *testing.T) {
	tests := []struct {
		in   string
		want *int
	}{
		{"5", intp(5)},
		{"  12", intp(12)},
		{"7 years", intp(7)},
		{"-3", intp(-3)},
		{"abc", nil},
		{"", nil},
		{"+", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseYearsSkiing(tt.in)
			switch {
			case tt.want == nil && got != nil:
				t.Errorf("ParseYearsSkiing(%q) = %d, want nil", tt.in, *got)
			case tt.want != nil && got == nil:
				t.Errorf("ParseYearsSkiing(%q) = nil, want %d", tt.in, *tt.want)
			case tt.want != nil && *got != *tt.want:
				t.Errorf("ParseYearsSkiing(%q) = %d, want %d", tt.in, *got, *tt.want)
			}
		})
	}
}

func intp(n int) *int { return &n }
