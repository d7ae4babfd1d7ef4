package shared

import "fmt"

// BetFamily groups bet types into their three escalation ladders.
type BetFamily string

const (
	FamilyTruco  BetFamily = "truco"
	FamilyEnvido BetFamily = "envido"
	FamilyFlor   BetFamily = "flor"
)

// BetType is one rung of one of the three ladders.
type BetType string

const (
	// Truco ladder: raises the value of the hand's tricks.
	BetTruco      BetType = "truco"
	BetRetruco    BetType = "retruco"
	BetValeCuatro BetType = "vale_cuatro"

	// Envido ladder: side bet on same-suit card combinations.
	BetEnvido       BetType = "envido"
	BetEnvidoEnvido BetType = "envido_envido"
	BetRealEnvido   BetType = "real_envido"
	BetFaltaEnvido  BetType = "falta_envido"

	// Flor ladder: bonus bet on three cards of one suit.
	BetFlor            BetType = "flor"
	BetContraFlor      BetType = "contra_flor"
	BetContraFlorResto BetType = "contra_flor_al_resto"
)

// Family returns the ladder the bet type belongs to.
func (b BetType) Family() BetFamily {
	switch b {
	case BetTruco, BetRetruco, BetValeCuatro:
		return FamilyTruco
	case BetEnvido, BetEnvidoEnvido, BetRealEnvido, BetFaltaEnvido:
		return FamilyEnvido
	case BetFlor, BetContraFlor, BetContraFlorResto:
		return FamilyFlor
	}
	return ""
}

// EscalationRank returns the rung within the family's ladder, starting
// at 1. Zero for an unknown type.
func (b BetType) EscalationRank() int {
	switch b {
	case BetTruco, BetEnvido, BetFlor:
		return 1
	case BetRetruco, BetEnvidoEnvido, BetContraFlor:
		return 2
	case BetValeCuatro, BetRealEnvido, BetContraFlorResto:
		return 3
	case BetFaltaEnvido:
		return 4
	}
	return 0
}

// ParseBetType converts a wire string to a BetType.
func ParseBetType(s string) (BetType, bool) {
	b := BetType(s)
	if b.Family() == "" {
		return "", false
	}
	return b, true
}

// BetResponse is a player's answer to a pending bet.
type BetResponse string

const (
	ResponseAccept  BetResponse = "accept"
	ResponseDecline BetResponse = "decline"
	ResponseRaise   BetResponse = "raise"
)

// BetStatus tracks a bet through its lifecycle.
type BetStatus string

const (
	StatusPending  BetStatus = "pending"
	StatusAccepted BetStatus = "accepted"
	StatusDeclined BetStatus = "declined"
	StatusRaised   BetStatus = "raised"
)

// Bet is a single immutable bet. Responding produces a new Bet.
type Bet struct {
	Type          BetType     `json:"type"`
	CallerID      PlayerID    `json:"caller_id"`
	CallerTeamID  TeamID      `json:"caller_team_id"`
	PointsAtStake int         `json:"points_at_stake"`
	Status        BetStatus   `json:"status"`
	ResponderID   PlayerID    `json:"responder_id,omitempty"`
	Response      BetResponse `json:"response,omitempty"`
}

// NewBet creates a pending bet.
func NewBet(betType BetType, callerID PlayerID, callerTeamID TeamID, pointsAtStake int) Bet {
	return Bet{
		Type:          betType,
		CallerID:      callerID,
		CallerTeamID:  callerTeamID,
		PointsAtStake: pointsAtStake,
		Status:        StatusPending,
	}
}

// WithResponse returns a copy of the bet carrying the response.
func (b Bet) WithResponse(response BetResponse, responderID PlayerID) Bet {
	next := b
	next.Response = response
	next.ResponderID = responderID
	switch response {
	case ResponseAccept:
		next.Status = StatusAccepted
	case ResponseDecline:
		next.Status = StatusDeclined
	case ResponseRaise:
		next.Status = StatusRaised
	}
	return next
}

// BettingState holds the three append-only bet chains of one hand. Within
// each chain entries are chronological and only the last may be pending.
type BettingState struct {
	TrucoBets         []Bet `json:"truco_bets"`
	EnvidoBets        []Bet `json:"envido_bets"`
	FlorBets          []Bet `json:"flor_bets"`
	CurrentTrucoValue int   `json:"current_truco_value"`
	EnvidoResolved    bool  `json:"envido_resolved"`
	FlorResolved      bool  `json:"flor_resolved"`
}

// NewBettingState returns the state of a hand before any bets: the tricks
// are worth a single point.
func NewBettingState() BettingState {
	return BettingState{
		TrucoBets:         []Bet{},
		EnvidoBets:        []Bet{},
		FlorBets:          []Bet{},
		CurrentTrucoValue: 1,
	}
}

func appendBet(bets []Bet, b Bet) []Bet {
	next := make([]Bet, 0, len(bets)+1)
	next = append(next, bets...)
	next = append(next, b)
	return next
}

// WithBet returns a copy of the state with the bet appended to its
// family's chain.
func (s BettingState) WithBet(b Bet) BettingState {
	next := s
	switch b.Type.Family() {
	case FamilyTruco:
		next.TrucoBets = appendBet(s.TrucoBets, b)
	case FamilyEnvido:
		next.EnvidoBets = appendBet(s.EnvidoBets, b)
	case FamilyFlor:
		next.FlorBets = appendBet(s.FlorBets, b)
	}
	return next
}

// LastBet returns the most recent bet of the given family.
func (s BettingState) LastBet(family BetFamily) (Bet, bool) {
	var bets []Bet
	switch family {
	case FamilyTruco:
		bets = s.TrucoBets
	case FamilyEnvido:
		bets = s.EnvidoBets
	case FamilyFlor:
		bets = s.FlorBets
	}
	if len(bets) == 0 {
		return Bet{}, false
	}
	return bets[len(bets)-1], true
}

// HasPendingBet reports whether any family's last bet awaits a response.
func (s BettingState) HasPendingBet() bool {
	for _, family := range []BetFamily{FamilyTruco, FamilyEnvido, FamilyFlor} {
		if last, ok := s.LastBet(family); ok && last.Status == StatusPending {
			return true
		}
	}
	return false
}

// RespondToLast replaces the family's last bet with a responded copy and
// returns the new state plus the responded bet. Fails when the family has
// no pending bet.
func (s BettingState) RespondToLast(family BetFamily, response BetResponse, responderID PlayerID) (BettingState, Bet, error) {
	last, ok := s.LastBet(family)
	if !ok || last.Status != StatusPending {
		return BettingState{}, Bet{}, fmt.Errorf("%w: no pending %s bet to respond to", ErrInvalidState, family)
	}

	responded := last.WithResponse(response, responderID)
	next := s
	replace := func(bets []Bet) []Bet {
		out := make([]Bet, len(bets))
		copy(out, bets)
		out[len(out)-1] = responded
		return out
	}
	switch family {
	case FamilyTruco:
		next.TrucoBets = replace(s.TrucoBets)
	case FamilyEnvido:
		next.EnvidoBets = replace(s.EnvidoBets)
	case FamilyFlor:
		next.FlorBets = replace(s.FlorBets)
	}
	return next, responded, nil
}

// WithTrucoValue returns a copy of the state with the hand stake replaced.
func (s BettingState) WithTrucoValue(value int) BettingState {
	next := s
	next.CurrentTrucoValue = value
	return next
}

// WithEnvidoResolved marks the Envido chain as settled.
func (s BettingState) WithEnvidoResolved() BettingState {
	next := s
	next.EnvidoResolved = true
	return next
}

// WithFlorResolved marks the Flor chain as settled.
func (s BettingState) WithFlorResolved() BettingState {
	next := s
	next.FlorResolved = true
	return next
}

// TrucoPoints returns the accept value of a Truco-family bet: the number
// of points the hand's tricks are worth once the bet stands.
func TrucoPoints(betType BetType) int {
	switch betType {
	case BetTruco:
		return 2
	case BetRetruco:
		return 3
	case BetValeCuatro:
		return 4
	}
	return 1
}

// EnvidoPoints returns the points one Envido-family bet adds to the chain.
// Falta Envido returns -1: its value depends on the scores and config, see
// game.FaltaEnvidoPoints.
func EnvidoPoints(betType BetType) int {
	switch betType {
	case BetEnvido:
		return 2
	case BetEnvidoEnvido:
		return 2
	case BetRealEnvido:
		return 3
	case BetFaltaEnvido:
		return -1
	}
	return 0
}

// EnvidoChainPoints sums the fixed-value bets of the Envido chain.
func (s BettingState) EnvidoChainPoints() int {
	total := 0
	for _, bet := range s.EnvidoBets {
		if p := EnvidoPoints(bet.Type); p > 0 {
			total += p
		}
	}
	return total
}

// NextTrucoBet returns the rung above the given Truco bet, or false at the
// top of the ladder. Pass hasCurrent=false for the opening bet.
func NextTrucoBet(current BetType, hasCurrent bool) (BetType, bool) {
	if !hasCurrent {
		return BetTruco, true
	}
	switch current {
	case BetTruco:
		return BetRetruco, true
	case BetRetruco:
		return BetValeCuatro, true
	}
	return "", false
}
