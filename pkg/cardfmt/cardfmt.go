// Package cardfmt renders a realized deck as text.
package cardfmt

import (
	"io"
	"strings"

	"github.com/conmol/bracelet52/pkg/deckcode"
)

const perLine = 8

// Render writes deck as "<value><suit>" tokens, 8 per line,
// comma-separated within a line, with two trailing newlines ending the
// deck.
func Render(w io.Writer, deck deckcode.Deck) error {
	var b strings.Builder
	for i, card := range deck {
		if i > 0 {
			if i%perLine == 0 {
				b.WriteByte('\n')
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(card.String())
	}
	b.WriteString("\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// RenderRotated renders deck starting at topCardIndex and wrapping
// cyclically: a cosmetic rotation-to-bottom.
func RenderRotated(w io.Writer, deck deckcode.Deck, topCardIndex int) error {
	var rotated deckcode.Deck
	n := len(deck)
	for i := 0; i < n; i++ {
		rotated[i] = deck[(topCardIndex+i)%n]
	}
	return Render(w, rotated)
}

// String renders deck to a string, for callers that don't need a
// streaming writer (e.g. logging, tests).
func String(deck deckcode.Deck) string {
	var b strings.Builder
	_ = Render(&b, deck)
	return b.String()
}
