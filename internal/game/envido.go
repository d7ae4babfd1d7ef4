package game

import (
	"truco-game/internal/shared"
)

// EnvidoValue returns a card's value for Envido: face value up to 7,
// zero for the figures (10, 11, 12).
func EnvidoValue(c shared.Card) int {
	if c.Rank >= 10 {
		return 0
	}
	return c.Rank
}

// EnvidoScore computes the best Envido score of a hand (0-33). Two or more
// cards of one suit score the two highest values of that suit plus 20; a
// lone card scores its raw value. The best candidate across suits wins.
func EnvidoScore(hand []shared.Card) int {
	bySuit := make(map[shared.Suit][]int)
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], EnvidoValue(c))
	}

	best := 0
	for _, values := range bySuit {
		score := 0
		if len(values) >= 2 {
			hi, second := 0, 0
			for _, v := range values {
				if v > hi {
					hi, second = v, hi
				} else if v > second {
					second = v
				}
			}
			score = hi + second + 20
		} else {
			score = values[0]
		}
		if score > best {
			best = score
		}
	}
	return best
}

// HasFlor reports whether at least three cards of the hand share a suit.
func HasFlor(hand []shared.Card) bool {
	counts := make(map[shared.Suit]int)
	for _, c := range hand {
		counts[c.Suit]++
		if counts[c.Suit] >= 3 {
			return true
		}
	}
	return false
}

// FlorScore computes a hand's Flor score (20-37): the Envido values of the
// first three same-suit cards plus 20. The second result is false when the
// hand has no Flor.
func FlorScore(hand []shared.Card) (int, bool) {
	if !HasFlor(hand) {
		return 0, false
	}

	bySuit := make(map[shared.Suit][]int)
	for _, c := range hand {
		bySuit[c.Suit] = append(bySuit[c.Suit], EnvidoValue(c))
	}

	for _, suit := range shared.Suits {
		values := bySuit[suit]
		if len(values) >= 3 {
			return values[0] + values[1] + values[2] + 20, true
		}
	}
	return 0, false
}

// EnvidoWinner decides an Envido showdown between team 1 (score1) and
// team 2 (score2). Higher score wins; on an exact tie the team that did
// not call wins.
func EnvidoWinner(score1, score2 int, callerTeamID shared.TeamID) shared.TeamID {
	switch {
	case score1 > score2:
		return shared.Team1ID
	case score2 > score1:
		return shared.Team2ID
	case callerTeamID == shared.Team1ID:
		return shared.Team2ID
	default:
		return shared.Team1ID
	}
}

// FlorWinner decides a Flor showdown. A side without Flor cannot win;
// when both hold Flor the higher score wins and ties go to the non-caller,
// matching the Envido rule. Returns "" when neither side has Flor.
func FlorWinner(score1 int, hasFlor1 bool, score2 int, hasFlor2 bool, callerTeamID shared.TeamID) shared.TeamID {
	switch {
	case !hasFlor1 && !hasFlor2:
		return ""
	case hasFlor1 && !hasFlor2:
		return shared.Team1ID
	case !hasFlor1 && hasFlor2:
		return shared.Team2ID
	case score1 > score2:
		return shared.Team1ID
	case score2 > score1:
		return shared.Team2ID
	case callerTeamID == shared.Team1ID:
		return shared.Team2ID
	default:
		return shared.Team1ID
	}
}
