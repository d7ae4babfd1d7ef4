package shared

// GamePhase is the coarse phase of a hand.
type GamePhase string

const (
	PhaseWaiting  GamePhase = "waiting"
	PhaseDealing  GamePhase = "dealing"
	PhaseBetting  GamePhase = "betting"
	PhasePlaying  GamePhase = "playing"
	PhaseScoring  GamePhase = "scoring"
	PhaseFinished GamePhase = "finished"
)

// TrickResult is the outcome of a resolved trick. The zero value means the
// trick has not been resolved yet.
type TrickResult string

const (
	NoResult TrickResult = ""
	Team1Win TrickResult = "team1_win"
	Team2Win TrickResult = "team2_win"
	Parda    TrickResult = "parda"
)

// NoPosition marks an absent winner position (parda or unresolved trick).
const NoPosition = -1

// PlayedCard is a card on the table with who played it.
type PlayedCard struct {
	PlayerID PlayerID `json:"player_id"`
	Card     Card     `json:"card"`
	Position int      `json:"position"`
}

// Trick is one round of cards, at most one per active player, in play
// order.
type Trick struct {
	Number         int          `json:"number"` // 1, 2, or 3
	PlayedCards    []PlayedCard `json:"played_cards"`
	Result         TrickResult  `json:"result"`
	WinnerPosition int          `json:"winner_position"`
}

// NewTrick creates an empty, unresolved trick.
func NewTrick(number int) Trick {
	return Trick{
		Number:         number,
		PlayedCards:    []PlayedCard{},
		WinnerPosition: NoPosition,
	}
}

// WithCard returns a copy of the trick with the played card appended.
func (t Trick) WithCard(pc PlayedCard) Trick {
	next := t
	next.PlayedCards = make([]PlayedCard, 0, len(t.PlayedCards)+1)
	next.PlayedCards = append(next.PlayedCards, t.PlayedCards...)
	next.PlayedCards = append(next.PlayedCards, pc)
	return next
}

// WithResult returns a copy of the trick with its outcome set.
// winnerPosition must be NoPosition for a parda.
func (t Trick) WithResult(result TrickResult, winnerPosition int) Trick {
	next := t
	next.Result = result
	next.WinnerPosition = winnerPosition
	return next
}

// Resolved reports whether the trick has an outcome.
func (t Trick) Resolved() bool {
	return t.Result != NoResult
}

// Complete reports whether every active player has played into the trick.
func (t Trick) Complete(numPlayers int) bool {
	return len(t.PlayedCards) == numPlayers
}

// Hand is up to three tricks plus the stake they are worth.
type Hand struct {
	Number        int     `json:"number"`
	Tricks        []Trick `json:"tricks"`
	CurrentTrick  int     `json:"current_trick"` // index into Tricks
	Winner        TeamID  `json:"winner"`        // "" until decided
	PointsAtStake int     `json:"points_at_stake"`
}

// NewHand creates a hand containing its first empty trick.
func NewHand(number, pointsAtStake int) Hand {
	return Hand{
		Number:        number,
		Tricks:        []Trick{NewTrick(1)},
		PointsAtStake: pointsAtStake,
	}
}

// WithCurrentTrick returns a copy of the hand with the current trick
// replaced.
func (h Hand) WithCurrentTrick(t Trick) Hand {
	next := h
	next.Tricks = make([]Trick, len(h.Tricks))
	copy(next.Tricks, h.Tricks)
	next.Tricks[h.CurrentTrick] = t
	return next
}

// WithNextTrick returns a copy of the hand with a fresh trick appended and
// the current index advanced. The previous trick must be resolved first.
func (h Hand) WithNextTrick() Hand {
	next := h
	next.Tricks = make([]Trick, 0, len(h.Tricks)+1)
	next.Tricks = append(next.Tricks, h.Tricks...)
	next.Tricks = append(next.Tricks, NewTrick(len(h.Tricks)+1))
	next.CurrentTrick = h.CurrentTrick + 1
	return next
}

// WithWinner returns a copy of the hand with the winning team set.
func (h Hand) WithWinner(winner TeamID) Hand {
	next := h
	next.Winner = winner
	return next
}

// WithPoints returns a copy of the hand with the stake replaced.
func (h Hand) WithPoints(points int) Hand {
	next := h
	next.PointsAtStake = points
	return next
}
