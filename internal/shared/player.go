package shared

import "fmt"

// PlayerID uniquely identifies a player within a game.
type PlayerID string

// TeamID uniquely identifies a team within a game.
type TeamID string

// Player is the immutable per-game state of one player. Updates produce a
// new value via the With* helpers, leaving prior snapshots valid.
type Player struct {
	ID       PlayerID `json:"id"`
	Name     string   `json:"name"`
	TeamID   TeamID   `json:"team_id"`
	Position int      `json:"position"`
	Hand     []Card   `json:"hand"`
	IsDealer bool     `json:"is_dealer"`
}

// NewPlayer creates a player with an empty hand.
func NewPlayer(id PlayerID, name string, teamID TeamID, position int) Player {
	return Player{
		ID:       id,
		Name:     name,
		TeamID:   teamID,
		Position: position,
		Hand:     []Card{},
	}
}

// WithHand returns a copy of the player holding the given cards.
func (p Player) WithHand(hand []Card) Player {
	next := p
	next.Hand = make([]Card, len(hand))
	copy(next.Hand, hand)
	return next
}

// WithoutCard returns a copy of the player with the card at index removed,
// along with the removed card.
func (p Player) WithoutCard(index int) (Player, Card, error) {
	if index < 0 || index >= len(p.Hand) {
		return Player{}, Card{}, fmt.Errorf("%w: card index %d, hand size %d", ErrInvalidIndex, index, len(p.Hand))
	}

	card := p.Hand[index]
	next := p
	next.Hand = make([]Card, 0, len(p.Hand)-1)
	next.Hand = append(next.Hand, p.Hand[:index]...)
	next.Hand = append(next.Hand, p.Hand[index+1:]...)
	return next, card, nil
}

// WithDealer returns a copy of the player with the dealer flag set.
func (p Player) WithDealer(isDealer bool) Player {
	next := p
	next.IsDealer = isDealer
	return next
}
