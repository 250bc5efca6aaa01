package classifiers

import "testing"

func TestExtractPageNumberValue(t *testing.T) {
	cases := []struct {
		text  string
		want  int
		wantOK bool
	}{
		{"42", 42, true},
		{"042", 42, true},
		{"page 7", 7, true},
		{"p. 12", 12, true},
		{"2x", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		got, ok := extractPageNumberValue(c.text)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("extractPageNumberValue(%q) = (%v, %v), want (%v, %v)", c.text, got, ok, c.want, c.wantOK)
		}
	}
}

func TestExtractPartCountValue(t *testing.T) {
	cases := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"2x", 2, true},
		{"12X", 12, true},
		{"5×", 5, true},
		{"x5", 0, false},
	}
	for _, c := range cases {
		got, ok := extractPartCountValue(c.text)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("extractPartCountValue(%q) = (%v, %v), want (%v, %v)", c.text, got, ok, c.want, c.wantOK)
		}
	}
}

func TestExtractElementID(t *testing.T) {
	cases := []struct {
		text   string
		wantOK bool
	}{
		{"3001", true},
		{"12345678", true},
		{"01234", false}, // leading zero disallowed
		{"12", false},
	}
	for _, c := range cases {
		_, ok := extractElementID(c.text)
		if ok != c.wantOK {
			t.Errorf("extractElementID(%q) ok = %v, want %v", c.text, ok, c.wantOK)
		}
	}
}

func TestExtractPieceLengthValue(t *testing.T) {
	cases := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"6", 6, true},
		{"6 studs", 6, true},
		{"16 stud", 16, true},
		{"abc", 0, false},
	}
	for _, c := range cases {
		got, ok := extractPieceLengthValue(c.text)
		if ok != c.wantOK || (ok && got != c.want) {
			t.Errorf("extractPieceLengthValue(%q) = (%v, %v), want (%v, %v)", c.text, got, ok, c.want, c.wantOK)
		}
	}
}
