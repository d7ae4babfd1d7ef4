package game

import (
	"fmt"

	"truco-game/internal/shared"
)

// ResolveTrick determines the outcome of a trick. The hierarchy winner is
// found with first-play advantage; if any other played card ties it in
// hierarchy the trick is a parda and nobody wins. Returns the result and
// the winner's position (shared.NoPosition for a parda).
func ResolveTrick(trick shared.Trick, positionToTeam map[int]shared.TeamID) (shared.TrickResult, int, error) {
	if len(trick.PlayedCards) == 0 {
		return shared.NoResult, shared.NoPosition, fmt.Errorf("%w: cannot resolve empty trick", shared.ErrInvalidState)
	}

	cards := make([]shared.Card, len(trick.PlayedCards))
	for i, pc := range trick.PlayedCards {
		cards[i] = pc.Card
	}

	winningIndex, err := shared.WinningCardIndex(cards)
	if err != nil {
		return shared.NoResult, shared.NoPosition, err
	}

	// A cross-player tie in hierarchy value is a parda; the first-play
	// advantage only orders cards of equal rank, it does not win the trick.
	for i, c := range cards {
		if i != winningIndex && shared.CompareCards(c, cards[winningIndex]) == 0 {
			return shared.Parda, shared.NoPosition, nil
		}
	}

	winnerPosition := trick.PlayedCards[winningIndex].Position
	winnerTeam, ok := positionToTeam[winnerPosition]
	if !ok {
		return shared.NoResult, shared.NoPosition, fmt.Errorf("%w: no team for position %d", shared.ErrNotFound, winnerPosition)
	}

	result := shared.Team2Win
	if winnerTeam == shared.Team1ID {
		result = shared.Team1Win
	}
	return result, winnerPosition, nil
}

// DetermineHandWinner returns the team that has won the hand, or "" while
// the hand is undecided.
//
// Two trick wins settle it immediately. A win plus a parda (with no
// opposing win) settles it without a third trick. One win each plus a
// parda goes to the team that won first. Three pardas go to the team of
// the player who led the first trick.
func DetermineHandWinner(hand shared.Hand, positionToTeam map[int]shared.TeamID) shared.TeamID {
	team1Wins, team2Wins, pardas := 0, 0, 0
	resolved := 0
	var firstWinner shared.TeamID

	for _, trick := range hand.Tricks {
		if !trick.Resolved() {
			continue
		}
		resolved++
		switch trick.Result {
		case shared.Team1Win:
			team1Wins++
			if firstWinner == "" {
				firstWinner = shared.Team1ID
			}
		case shared.Team2Win:
			team2Wins++
			if firstWinner == "" {
				firstWinner = shared.Team2ID
			}
		case shared.Parda:
			pardas++
		}
	}

	if resolved == 0 {
		return ""
	}

	if team1Wins >= 2 {
		return shared.Team1ID
	}
	if team2Wins >= 2 {
		return shared.Team2ID
	}

	if resolved == 3 {
		if team1Wins == 1 && team2Wins == 1 && pardas == 1 {
			return firstWinner
		}
		// Three pardas: the hand goes to the side that led it.
		if pardas == 3 && len(hand.Tricks[0].PlayedCards) > 0 {
			return positionToTeam[hand.Tricks[0].PlayedCards[0].Position]
		}
	}

	if resolved >= 2 {
		if team1Wins == 1 && team2Wins == 0 && pardas >= 1 {
			return shared.Team1ID
		}
		if team2Wins == 1 && team1Wins == 0 && pardas >= 1 {
			return shared.Team2ID
		}
	}

	return ""
}

// NeedsAnotherTrick reports whether the hand needs more play to decide a
// winner.
func NeedsAnotherTrick(hand shared.Hand, positionToTeam map[int]shared.TeamID) bool {
	if hand.Winner != "" {
		return false
	}
	if len(hand.Tricks) >= 3 && hand.Tricks[2].Resolved() {
		return false
	}
	return DetermineHandWinner(hand, positionToTeam) == ""
}

// NextTrickLeader returns the position that leads the current trick. The
// first trick is led by previousLeader; later tricks by the winner of the
// trick before, or by the same leader again after a parda.
func NextTrickLeader(hand shared.Hand, previousLeader int) (int, error) {
	if hand.CurrentTrick == 0 {
		return previousLeader, nil
	}

	previous := hand.Tricks[hand.CurrentTrick-1]
	if !previous.Resolved() {
		return shared.NoPosition, fmt.Errorf("%w: previous trick has no result", shared.ErrInvalidState)
	}

	if previous.Result == shared.Parda {
		return previousLeader, nil
	}

	if previous.WinnerPosition == shared.NoPosition {
		return shared.NoPosition, fmt.Errorf("%w: trick result %s has no winner position", shared.ErrInvalidState, previous.Result)
	}
	return previous.WinnerPosition, nil
}
