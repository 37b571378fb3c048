package util

import (
	"strings"
	"testing"
)

func TestTrimCleanTruncates(t *testing.T) {
	out := trimClean("Hello\x00   world \n\t again", 8)
	if out != "Hello wo..." {
		t.Fatalf("unexpected snippet: %q", out)
	}
}

func TestDisplayEvidenceSnippet(t *testing.T) {
	resume := "Jane Doe\nGraphic design for print.\nBuilt python services for payments at scale.\nLikes hiking."
	out := DisplayEvidenceSnippet(resume, "Python developer for payments platform", 200)
	if !strings.Contains(strings.ToLower(out), "python services") {
		t.Fatalf("expected the python line, got: %q", out)
	}
}

func TestDisplayEvidenceSnippetNoOverlapFallsBack(t *testing.T) {
	out := DisplayEvidenceSnippet("Photoshop and Illustrator.", "kubernetes", 200)
	if out != "Photoshop and Illustrator." {
		t.Fatalf("unexpected fallback: %q", out)
	}
}

func TestDisplayEvidenceSnippetEmpty(t *testing.T) {
	if out := DisplayEvidenceSnippet("", "python", 100); out != "" {
		t.Fatalf("expected empty, got %q", out)
	}
}
