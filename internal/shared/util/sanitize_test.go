package util

import (
	"errors"
	"strings"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "resume.pdf", want: "resume.pdf"},
		{in: "  cert.png ", want: "cert.png"},
		{in: "C:\\Users\\me\\cv.docx", want: "cv.docx"},
		{in: "uploads/2024/aws.pdf", want: "aws.pdf"},
		{in: "cv\x00\t.pdf", want: "cv.pdf"},
		{in: "../etc/passwd", wantErr: true},
		{in: "certs\\..\\secret.pdf", wantErr: true},
		{in: "   ", wantErr: true},
		{in: "dir/", wantErr: false, want: "dir"},
		{in: "/", wantErr: true},
	}
	for _, tc := range cases {
		got, err := SanitizeFileName(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidFileName) {
				t.Fatalf("SanitizeFileName(%q) expected ErrInvalidFileName, got %v", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("SanitizeFileName(%q) unexpected error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeFileNameKeepsExtensionWhenTruncating(t *testing.T) {
	got, err := SanitizeFileName(strings.Repeat("é", 200) + ".pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) > MaxFileNameBytes || !strings.HasSuffix(got, ".pdf") {
		t.Fatalf("unexpected truncation: len=%d %q", len(got), got[len(got)-8:])
	}
	if !strings.HasPrefix(got, "é") || strings.ContainsRune(got, '\uFFFD') {
		t.Fatalf("truncation split a rune")
	}
}
