package ingest

import (
	"strings"
	"testing"
)

func TestCleanTextRemovesFigureCaptions(t *testing.T) {
	got := CleanText("Force changes motion. Fig. 8.4 : A ball rolling down\nMore text here.")
	if strings.Contains(got, "Fig") || strings.Contains(got, "rolling") {
		t.Fatalf("figure caption not removed: %q", got)
	}
	if !strings.Contains(got, "Force changes motion.") {
		t.Fatalf("body text lost: %q", got)
	}
}

func TestCleanTextDropsEquationNoiseLines(t *testing.T) {
	in := "The second law relates force and acceleration.\nF = ma (8.4)\n27 3 81 54 12\nIt applies to all bodies."
	got := CleanText(in)

	if strings.Contains(got, "F = ma") {
		t.Fatalf("equation line not dropped: %q", got)
	}
	if strings.Contains(got, "27 3 81") {
		t.Fatalf("digit noise line not dropped: %q", got)
	}
	if !strings.Contains(got, "second law") || !strings.Contains(got, "all bodies") {
		t.Fatalf("prose lines lost: %q", got)
	}
}

func TestCleanTextKeepsProseWithInlineFormula(t *testing.T) {
	in := "The second law states that force equals mass times acceleration written as F = ma.\nIt holds for bodies of constant mass."
	got := CleanText(in)

	if !strings.Contains(got, "F = ma") {
		t.Fatalf("inline formula inside a prose sentence was stripped: %q", got)
	}
	if !strings.Contains(got, "constant mass") {
		t.Fatalf("prose line lost: %q", got)
	}
}

func TestCleanTextKeepsPlainProse(t *testing.T) {
	in := "Inertia is the tendency of a body to resist change."
	if got := CleanText(in); got != in {
		t.Fatalf("prose should pass through unchanged, got %q", got)
	}
}

func TestCleanTextRemovesRunningHeaders(t *testing.T) {
	got := CleanText("SCIENCE Energy can neither be created nor destroyed.")
	if strings.Contains(got, "SCIENCE") {
		t.Fatalf("running header not removed: %q", got)
	}
	if !strings.HasPrefix(got, "Energy") {
		t.Fatalf("unexpected leading text: %q", got)
	}
}

func TestCleanTextAppliesOCRFixes(t *testing.T) {
	got := CleanText("सव्व सजीव सृष्ी मध्ये असतात.")
	if strings.Contains(got, "सव्व") || strings.Contains(got, "सृष्ी") {
		t.Fatalf("OCR fixes not applied: %q", got)
	}
	if !strings.Contains(got, "सर्व") || !strings.Contains(got, "सृष्टी") {
		t.Fatalf("corrected forms missing: %q", got)
	}
	t.Logf("✅ OCR corrections applied: %q", got)
}

func TestCleanTextCollapsesBulletsAndWhitespace(t *testing.T) {
	got := CleanText("• First point   \n\n ● Second   point")
	if got != "First point Second point" {
		t.Fatalf("bullets/whitespace not normalized: %q", got)
	}
}

func TestCountSentenceMarks(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"What is force? It moves things.", 2},
		{"बल म्हणजे काय? बल वस्तू हलवते।", 2},
		{"no terminators here", 0},
		{"One. Two! Three?", 3},
	}
	for _, tc := range cases {
		if got := CountSentenceMarks(tc.text); got != tc.want {
			t.Fatalf("CountSentenceMarks(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestIsValidChunk(t *testing.T) {
	th := DefaultThresholds()

	short := strings.Repeat("a", 49) + "."
	if IsValidChunk(short, th) {
		t.Fatalf("50-rune chunk with one terminator should be rejected")
	}

	sentence := strings.Repeat("x", 63) + ". "
	long := strings.TrimSpace(strings.Repeat(sentence, 3))
	if !IsValidChunk(long, th) {
		t.Fatalf("long chunk with three terminators should be accepted (len=%d)", len([]rune(long)))
	}

	// 长度够但不成句：孤立标题。
	heading := strings.Repeat("Chapter Eight Force and Motion ", 6)
	if IsValidChunk(heading, th) {
		t.Fatalf("heading-like text without sentence marks should be rejected")
	}
}
