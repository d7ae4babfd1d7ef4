package game

import (
	"testing"

	"truco-game/internal/shared"

	"github.com/stretchr/testify/assert"
)

func TestEnvidoValue(t *testing.T) {
	assert.Equal(t, 7, EnvidoValue(shared.Card{Rank: 7, Suit: shared.Oros}))
	assert.Equal(t, 1, EnvidoValue(shared.Card{Rank: 1, Suit: shared.Espadas}))
	assert.Equal(t, 0, EnvidoValue(shared.Card{Rank: 10, Suit: shared.Copas}))
	assert.Equal(t, 0, EnvidoValue(shared.Card{Rank: 11, Suit: shared.Copas}))
	assert.Equal(t, 0, EnvidoValue(shared.Card{Rank: 12, Suit: shared.Copas}))
}

func TestEnvidoScore(t *testing.T) {
	tests := []struct {
		name string
		hand []shared.Card
		want int
	}{
		{
			"maximum 33",
			[]shared.Card{
				{Rank: 7, Suit: shared.Espadas},
				{Rank: 6, Suit: shared.Espadas},
				{Rank: 2, Suit: shared.Bastos},
			},
			33,
		},
		{
			"two figures of a suit score 20",
			[]shared.Card{
				{Rank: 12, Suit: shared.Espadas},
				{Rank: 11, Suit: shared.Espadas},
				{Rank: 5, Suit: shared.Bastos},
			},
			20,
		},
		{
			"no pair takes the best single card",
			[]shared.Card{
				{Rank: 4, Suit: shared.Espadas},
				{Rank: 6, Suit: shared.Bastos},
				{Rank: 2, Suit: shared.Oros},
			},
			6,
		},
		{
			"figure alone is worth zero",
			[]shared.Card{
				{Rank: 12, Suit: shared.Espadas},
				{Rank: 11, Suit: shared.Bastos},
				{Rank: 10, Suit: shared.Oros},
			},
			0,
		},
		{
			"flor hand uses its best two",
			[]shared.Card{
				{Rank: 7, Suit: shared.Copas},
				{Rank: 4, Suit: shared.Copas},
				{Rank: 6, Suit: shared.Copas},
			},
			33,
		},
		{
			"figure completes a pair for the base 20",
			[]shared.Card{
				{Rank: 12, Suit: shared.Oros},
				{Rank: 5, Suit: shared.Oros},
				{Rank: 3, Suit: shared.Bastos},
			},
			25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnvidoScore(tt.hand))
		})
	}
}

func TestHasFlor(t *testing.T) {
	assert.True(t, HasFlor([]shared.Card{
		{Rank: 1, Suit: shared.Oros},
		{Rank: 5, Suit: shared.Oros},
		{Rank: 12, Suit: shared.Oros},
	}))
	assert.False(t, HasFlor([]shared.Card{
		{Rank: 1, Suit: shared.Oros},
		{Rank: 5, Suit: shared.Oros},
		{Rank: 12, Suit: shared.Copas},
	}))
}

func TestFlorScore(t *testing.T) {
	score, ok := FlorScore([]shared.Card{
		{Rank: 7, Suit: shared.Espadas},
		{Rank: 6, Suit: shared.Espadas},
		{Rank: 4, Suit: shared.Espadas},
	})
	assert.True(t, ok)
	assert.Equal(t, 37, score)

	score, ok = FlorScore([]shared.Card{
		{Rank: 12, Suit: shared.Copas},
		{Rank: 11, Suit: shared.Copas},
		{Rank: 10, Suit: shared.Copas},
	})
	assert.True(t, ok)
	assert.Equal(t, 20, score)

	_, ok = FlorScore([]shared.Card{
		{Rank: 7, Suit: shared.Espadas},
		{Rank: 6, Suit: shared.Espadas},
		{Rank: 4, Suit: shared.Bastos},
	})
	assert.False(t, ok)
}

func TestEnvidoWinner(t *testing.T) {
	assert.Equal(t, shared.Team1ID, EnvidoWinner(31, 27, shared.Team1ID))
	assert.Equal(t, shared.Team2ID, EnvidoWinner(20, 27, shared.Team1ID))

	// Ties go against the caller.
	assert.Equal(t, shared.Team2ID, EnvidoWinner(27, 27, shared.Team1ID))
	assert.Equal(t, shared.Team1ID, EnvidoWinner(27, 27, shared.Team2ID))
}

func TestFlorWinner(t *testing.T) {
	assert.Equal(t, shared.TeamID(""), FlorWinner(0, false, 0, false, shared.Team1ID))
	assert.Equal(t, shared.Team1ID, FlorWinner(25, true, 0, false, shared.Team2ID))
	assert.Equal(t, shared.Team2ID, FlorWinner(0, false, 22, true, shared.Team1ID))
	assert.Equal(t, shared.Team2ID, FlorWinner(25, true, 30, true, shared.Team1ID))

	// Same tie rule as Envido.
	assert.Equal(t, shared.Team2ID, FlorWinner(28, true, 28, true, shared.Team1ID))
	assert.Equal(t, shared.Team1ID, FlorWinner(28, true, 28, true, shared.Team2ID))
}
