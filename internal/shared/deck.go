package shared

import (
	"fmt"
	"math/rand/v2"
)

// CardsPerHand is the Truco hand size.
const CardsPerHand = 3

// DeckSize is the number of cards in a Spanish deck.
const DeckSize = 40

// NewDeck returns the 40-card Spanish deck in canonical order
// (suits in Suits order, ranks in Ranks order within each suit).
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// ShuffleDeck returns a new Fisher-Yates permutation of deck without
// mutating the input. The caller supplies the random source so deals are
// replayable.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	shuffled := make([]Card, len(deck))
	copy(shuffled, deck)

	for i := len(shuffled) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled
}

// DealResult holds the dealt hands and the rest of the deck.
type DealResult struct {
	Hands     [][]Card
	Remaining []Card
}

// DealCards deals cardsPerPlayer cards to each of numPlayers hands,
// sequentially from the front of the deck. The input deck is not mutated.
func DealCards(deck []Card, numPlayers, cardsPerPlayer int) (DealResult, error) {
	if numPlayers != 2 && numPlayers != 4 && numPlayers != 6 {
		return DealResult{}, fmt.Errorf("%w: cannot deal to %d players", ErrInvalidConfiguration, numPlayers)
	}

	needed := numPlayers * cardsPerPlayer
	if len(deck) < needed {
		return DealResult{}, fmt.Errorf("%w: need %d, have %d", ErrInsufficientCards, needed, len(deck))
	}

	hands := make([][]Card, numPlayers)
	for p := 0; p < numPlayers; p++ {
		hand := make([]Card, cardsPerPlayer)
		copy(hand, deck[p*cardsPerPlayer:(p+1)*cardsPerPlayer])
		hands[p] = hand
	}

	remaining := make([]Card, len(deck)-needed)
	copy(remaining, deck[needed:])

	return DealResult{Hands: hands, Remaining: remaining}, nil
}
