package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardValueSpecials(t *testing.T) {
	assert.Equal(t, 14, CardValue(Card{Rank: 1, Suit: Espadas}))
	assert.Equal(t, 13, CardValue(Card{Rank: 1, Suit: Bastos}))
	assert.Equal(t, 12, CardValue(Card{Rank: 7, Suit: Espadas}))
	assert.Equal(t, 11, CardValue(Card{Rank: 7, Suit: Oros}))
}

func TestCardValueRegulars(t *testing.T) {
	// Suit is irrelevant outside the four specials.
	assert.Equal(t, 10, CardValue(Card{Rank: 3, Suit: Copas}))
	assert.Equal(t, 10, CardValue(Card{Rank: 3, Suit: Espadas}))
	assert.Equal(t, 9, CardValue(Card{Rank: 2, Suit: Oros}))
	assert.Equal(t, 8, CardValue(Card{Rank: 1, Suit: Oros}))
	assert.Equal(t, 8, CardValue(Card{Rank: 1, Suit: Copas}))
	assert.Equal(t, 7, CardValue(Card{Rank: 12, Suit: Bastos}))
	assert.Equal(t, 6, CardValue(Card{Rank: 11, Suit: Espadas}))
	assert.Equal(t, 5, CardValue(Card{Rank: 10, Suit: Copas}))
	assert.Equal(t, 4, CardValue(Card{Rank: 7, Suit: Bastos}))
	assert.Equal(t, 4, CardValue(Card{Rank: 7, Suit: Copas}))
	assert.Equal(t, 3, CardValue(Card{Rank: 6, Suit: Oros}))
	assert.Equal(t, 2, CardValue(Card{Rank: 5, Suit: Bastos}))
	assert.Equal(t, 1, CardValue(Card{Rank: 4, Suit: Espadas}))
}

func TestCompareCardsAntisymmetric(t *testing.T) {
	deck := NewDeck()
	for _, a := range deck {
		for _, b := range deck {
			assert.Equal(t, -CompareCards(b, a), CompareCards(a, b), "a=%v b=%v", a, b)
		}
		assert.Equal(t, 0, CompareCards(a, a))
	}
}

func TestCompareCardsParda(t *testing.T) {
	// Different 3s tie.
	assert.Equal(t, 0, CompareCards(Card{Rank: 3, Suit: Espadas}, Card{Rank: 3, Suit: Copas}))
	// Ancho de Espadas beats everything.
	assert.Equal(t, 1, CompareCards(Card{Rank: 1, Suit: Espadas}, Card{Rank: 3, Suit: Copas}))
	// 1 of Oros vs 1 of Copas tie; neither is special.
	assert.Equal(t, 0, CompareCards(Card{Rank: 1, Suit: Oros}, Card{Rank: 1, Suit: Copas}))
}

func TestCompareCardsWithOrder(t *testing.T) {
	// First played wins the tie.
	assert.Equal(t, 1, CompareCardsWithOrder(Card{Rank: 3, Suit: Espadas}, Card{Rank: 3, Suit: Copas}))
	assert.Equal(t, -1, CompareCardsWithOrder(Card{Rank: 4, Suit: Espadas}, Card{Rank: 3, Suit: Copas}))
}

func TestWinningCardIndex(t *testing.T) {
	idx, err := WinningCardIndex([]Card{
		{Rank: 4, Suit: Bastos},
		{Rank: 1, Suit: Espadas},
		{Rank: 7, Suit: Bastos},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	// Tie goes to the first played.
	idx, err = WinningCardIndex([]Card{
		{Rank: 3, Suit: Espadas},
		{Rank: 3, Suit: Bastos},
		{Rank: 2, Suit: Oros},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = WinningCardIndex([]Card{{Rank: 4, Suit: Copas}})
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	_, err = WinningCardIndex(nil)
	require.ErrorIs(t, err, ErrInvalidState)
}

func TestValidCard(t *testing.T) {
	assert.True(t, ValidCard(Card{Rank: 7, Suit: Oros}))
	assert.False(t, ValidCard(Card{Rank: 8, Suit: Oros}))
	assert.False(t, ValidCard(Card{Rank: 9, Suit: Copas}))
	assert.False(t, ValidCard(Card{Rank: 3, Suit: "hearts"}))
}
