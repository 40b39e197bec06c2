package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestLinePlain(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = origVersion, origCommit, origDate }()

	Version = "1.2.3"
	GitCommit = "abc123"
	BuildDate = "2024-01-15T10:30:00Z"
	if got, want := Line(false), "sysyc 1.2.3 (abc123) built 2024-01-15T10:30:00Z"; got != want {
		t.Fatalf("Line = %q, want %q", got, want)
	}

	GitCommit, BuildDate = "", ""
	if got := Line(false); got != "sysyc 1.2.3" {
		t.Fatalf("Line without metadata = %q", got)
	}
}

func TestColoredKeepsDigits(t *testing.T) {
	orig := color.NoColor
	defer func() { color.NoColor = orig }()
	color.NoColor = true

	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "0.4.2-rc1"
	if got := Colored(); got != "0.4.2-rc1" {
		t.Fatalf("Colored with NoColor = %q", got)
	}

	color.NoColor = false
	if got := Colored(); !strings.Contains(got, "\x1b[") {
		t.Fatalf("Colored did not emit escapes: %q", got)
	}
}

func TestColoredMalformed(t *testing.T) {
	origVersion := Version
	defer func() { Version = origVersion }()
	Version = "nightly"
	if Colored() != "nightly" {
		t.Fatalf("malformed version should pass through")
	}
}
