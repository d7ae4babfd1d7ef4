package shared

import (
	"fmt"
)

// Suit represents the suit of a card in the Spanish deck.
type Suit string

const (
	Espadas Suit = "espadas" // Swords
	Bastos  Suit = "bastos"  // Clubs
	Oros    Suit = "oros"    // Coins
	Copas   Suit = "copas"   // Cups
)

// Suits lists all four suits in canonical deck order.
var Suits = []Suit{Espadas, Bastos, Oros, Copas}

// Ranks lists all valid ranks in canonical deck order.
// The Spanish deck has no 8s or 9s; 10=Jack, 11=Knight, 12=King.
var Ranks = []int{1, 2, 3, 4, 5, 6, 7, 10, 11, 12}

// Card is an immutable value: a rank and a suit.
type Card struct {
	Rank int  `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%d de %s", c.Rank, c.Suit)
}

// Truco hierarchy. The four special cards outrank everything; for all other
// cards only the rank matters, so two different 3s are a genuine tie.
var specialHierarchy = map[Card]int{
	{Rank: 1, Suit: Espadas}: 14, // Ancho de Espadas
	{Rank: 1, Suit: Bastos}:  13, // Ancho de Bastos
	{Rank: 7, Suit: Espadas}: 12, // Siete de Espadas
	{Rank: 7, Suit: Oros}:    11, // Siete de Oro
}

var rankHierarchy = map[int]int{
	3:  10,
	2:  9,
	1:  8, // 1 of Oros/Copas
	12: 7,
	11: 6,
	10: 5,
	7:  4, // 7 of Bastos/Copas
	6:  3,
	5:  2,
	4:  1,
}

// CardValue returns the card's position in the Truco hierarchy,
// higher is stronger. Returns 0 for a card outside the deck.
func CardValue(c Card) int {
	if v, ok := specialHierarchy[c]; ok {
		return v
	}
	return rankHierarchy[c.Rank]
}

// IsSpecialCard reports whether the card is one of the four whose suit
// matters for the hierarchy.
func IsSpecialCard(c Card) bool {
	_, ok := specialHierarchy[c]
	return ok
}

// ValidCard reports whether the rank/suit pair exists in the Spanish deck.
func ValidCard(c Card) bool {
	if _, ok := rankHierarchy[c.Rank]; !ok {
		return false
	}
	switch c.Suit {
	case Espadas, Bastos, Oros, Copas:
		return true
	}
	return false
}

// CompareCards compares two cards by hierarchy.
// Returns 1 if a wins, -1 if b wins, 0 on a tie (parda). A tie between
// different cards is broken by play order, which this function does not
// know; see CompareCardsWithOrder.
func CompareCards(a, b Card) int {
	va, vb := CardValue(a), CardValue(b)
	switch {
	case va > vb:
		return 1
	case va < vb:
		return -1
	default:
		return 0
	}
}

// CompareCardsWithOrder compares two cards where a was played strictly
// before b, so a tie becomes a win for a.
func CompareCardsWithOrder(a, b Card) int {
	if r := CompareCards(a, b); r != 0 {
		return r
	}
	return 1
}

// WinningCardIndex returns the index of the winning card among cards in
// play order. A later card displaces the current winner only when it is
// strictly stronger, which gives the first-played card the advantage on
// ties.
func WinningCardIndex(cards []Card) (int, error) {
	if len(cards) == 0 {
		return 0, fmt.Errorf("%w: no cards to compare", ErrInvalidState)
	}

	winning := 0
	for i := 1; i < len(cards); i++ {
		if CompareCards(cards[winning], cards[i]) == -1 {
			winning = i
		}
	}
	return winning, nil
}
