package fileid

import (
	"strings"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"my report (final).pdf", "my_report__final_.pdf"},
		{"../../etc/passwd", "_.._etc_passwd"},
		{".hidden.pdf", "hidden.pdf"},
		{"café.pdf", "caf_.pdf"},
		{"UPPER-case_09.pdf", "UPPER-case_09.pdf"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q)=%q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	got := SafeFilename("evidence report.pdf", now)
	if !strings.HasPrefix(got, "20240315T103000_") {
		t.Errorf("missing timestamp prefix: %q", got)
	}
	if !strings.HasSuffix(got, "_evidence_report.pdf") {
		t.Errorf("missing sanitized name: %q", got)
	}
}

func TestSafeFilenameUnique(t *testing.T) {
	now := time.Now()
	a := SafeFilename("same.pdf", now)
	b := SafeFilename("same.pdf", now)
	if a == b {
		t.Errorf("identical ids for repeated upload: %q", a)
	}
}

func TestSafeFilenameEmpty(t *testing.T) {
	got := SafeFilename("...", time.Now())
	if !strings.HasSuffix(got, "_document.pdf") {
		t.Errorf("empty name should fall back: %q", got)
	}
}
