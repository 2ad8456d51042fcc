package feed

import (
	"bytes"
	"strings"
	"testing"

	"bourse/internal/market"
)

func TestRecentKeepsTail(t *testing.T) {
	f := New()
	for i := 0; i < 150; i++ {
		f.Announce(market.Announcement{Title: "t", Description: "d"})
	}
	if got := len(f.Recent(1000)); got != 100 {
		t.Fatalf("feed kept %d entries, want bounded 100", got)
	}
	if got := len(f.Recent(3)); got != 3 {
		t.Fatalf("Recent(3) returned %d", got)
	}
}

func TestConsoleMirror(t *testing.T) {
	var buf bytes.Buffer
	f := New().WithConsole(&buf)
	f.Announce(market.Announcement{
		Title:            "Market Event [Mild]",
		Description:      "Earnings Beat — numbers ahead of estimates.",
		TitleColor:       "#04d569",
		DescriptionColor: "#04d569",
	})
	out := buf.String()
	if !strings.Contains(out, "Market Event [Mild]") || !strings.Contains(out, "Earnings Beat") {
		t.Fatalf("console output missing announcement: %q", out)
	}
}

func TestParseHex(t *testing.T) {
	r, g, b, ok := parseHex("#04d569")
	if !ok || r != 4 || g != 213 || b != 105 {
		t.Fatalf("parseHex got %d,%d,%d ok=%v", r, g, b, ok)
	}
	if _, _, _, ok := parseHex("04d569"); ok {
		t.Fatalf("missing # should fail")
	}
	if _, _, _, ok := parseHex("#zzzzzz"); ok {
		t.Fatalf("junk hex should fail")
	}
}
