package cardfmt

import (
	"strings"
	"testing"

	"github.com/conmol/bracelet52/pkg/deckcode"
)

func sequentialDeck() deckcode.Deck {
	var d deckcode.Deck
	suits := []deckcode.Suit{deckcode.Spade, deckcode.Club, deckcode.Heart, deckcode.Diamond}
	i := 0
	for _, s := range suits {
		for v := uint8(1); v <= 13; v++ {
			d[i] = deckcode.Card{Suit: s, Value: v}
			i++
		}
	}
	return d
}

func TestRenderEightPerLine(t *testing.T) {
	deck := sequentialDeck()
	out := String(deck)

	if !strings.HasSuffix(out, "\n\n") {
		t.Fatalf("Render output does not end with two newlines: %q", out[len(out)-10:])
	}
	body := strings.TrimSuffix(out, "\n\n")
	lines := strings.Split(body, "\n")
	if len(lines) != 7 { // 52 cards / 8 per line = 6 full lines + 1 partial (4 cards)
		t.Fatalf("got %d lines, want 7", len(lines))
	}
	for i, line := range lines[:6] {
		count := len(strings.Split(line, ", "))
		if count != 8 {
			t.Errorf("line %d has %d cards, want 8: %q", i, count, line)
		}
	}
	if count := len(strings.Split(lines[6], ", ")); count != 4 {
		t.Errorf("last line has %d cards, want 4: %q", count, lines[6])
	}
}

func TestRenderCardTokens(t *testing.T) {
	deck := sequentialDeck()
	out := String(deck)
	for _, want := range []string{"AS", "2S", "10S", "JS", "QS", "KS", "AD", "KD"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered deck missing token %q", want)
		}
	}
}

func TestRenderRotated(t *testing.T) {
	deck := sequentialDeck()
	out := String(deck)
	rotated := RenderRotatedString(deck, 1)
	if out == rotated {
		t.Error("RenderRotated with a nonzero offset produced identical output to unrotated Render")
	}
}

func RenderRotatedString(deck deckcode.Deck, topCardIndex int) string {
	var b strings.Builder
	_ = RenderRotated(&b, deck, topCardIndex)
	return b.String()
}
