package game

import (
	"truco-game/internal/shared"
)

// CanCallTrucoBet reports whether betType may be called on the Truco
// ladder right now. Truco opens the ladder, Retruco requires an accepted
// Truco, Vale Cuatro an accepted Retruco; nothing escalates past Vale
// Cuatro.
func CanCallTrucoBet(state shared.BettingState, betType shared.BetType) bool {
	if betType.Family() != shared.FamilyTruco {
		return false
	}

	last, hasLast := state.LastBet(shared.FamilyTruco)

	switch betType {
	case shared.BetTruco:
		return !hasLast || last.Status != shared.StatusPending
	case shared.BetRetruco:
		return hasLast && last.Type == shared.BetTruco && last.Status == shared.StatusAccepted
	case shared.BetValeCuatro:
		return hasLast && last.Type == shared.BetRetruco && last.Status == shared.StatusAccepted
	}
	return false
}

// CanCallEnvidoBet reports whether betType may be called on the Envido
// ladder. Envido bets are only open before the first card of the hand is
// played and while the chain is unresolved.
func CanCallEnvidoBet(state shared.BettingState, betType shared.BetType, phase shared.GamePhase, config shared.GameConfig) bool {
	if betType.Family() != shared.FamilyEnvido {
		return false
	}
	if phase != shared.PhaseBetting && phase != shared.PhaseDealing {
		return false
	}
	if state.EnvidoResolved {
		return false
	}

	last, hasLast := state.LastBet(shared.FamilyEnvido)
	accepted := hasLast && (last.Status == shared.StatusAccepted || last.Status == shared.StatusRaised)

	switch betType {
	case shared.BetEnvido:
		return !hasLast || last.Status != shared.StatusPending
	case shared.BetEnvidoEnvido:
		return accepted && last.Type == shared.BetEnvido
	case shared.BetRealEnvido:
		if config.RealEnvidoMultiple {
			return hasLast && last.Status != shared.StatusPending
		}
		return accepted && (last.Type == shared.BetEnvido || last.Type == shared.BetEnvidoEnvido)
	case shared.BetFaltaEnvido:
		return accepted
	}
	return false
}

// CanCallFlorBet reports whether betType may be called on the Flor ladder.
// The caller must actually hold Flor for Flor and Contra Flor.
func CanCallFlorBet(state shared.BettingState, betType shared.BetType, phase shared.GamePhase, callerHasFlor bool, config shared.GameConfig) bool {
	if betType.Family() != shared.FamilyFlor {
		return false
	}
	if !config.FlorEnabled {
		return false
	}
	if phase != shared.PhaseBetting && phase != shared.PhaseDealing {
		return false
	}
	if state.FlorResolved {
		return false
	}

	last, hasLast := state.LastBet(shared.FamilyFlor)

	switch betType {
	case shared.BetFlor:
		// No re-calling Flor, not even after a decline.
		return !hasLast && callerHasFlor
	case shared.BetContraFlor:
		return hasLast && last.Type == shared.BetFlor &&
			last.Status == shared.StatusPending && callerHasFlor
	case shared.BetContraFlorResto:
		return hasLast && last.Type == shared.BetContraFlor && last.Status == shared.StatusAccepted
	}
	return false
}

// CanRespondToBet reports whether playerId may answer the family's pending
// bet. A player never responds to their own call.
func CanRespondToBet(state shared.BettingState, betType shared.BetType, playerID, callerID shared.PlayerID) bool {
	if playerID == callerID {
		return false
	}

	family := betType.Family()
	if family == "" {
		return false
	}

	last, ok := state.LastBet(family)
	return ok && last.Status == shared.StatusPending
}

// DeclinePoints returns the points the caller's side is awarded when
// betType is declined.
//
// Truco declines award the value of the bet one rung below the declined
// one. Envido declines award the sum of all bets already in the chain
// before the declined one, with a floor of 1 when the chain exists. A
// declined Contra Flor al Resto returns -1: the award is the
// Falta-Envido-style remainder, which the caller computes from the scores.
func DeclinePoints(betType shared.BetType, state shared.BettingState) int {
	switch betType.Family() {
	case shared.FamilyTruco:
		switch betType {
		case shared.BetTruco:
			return 1
		case shared.BetRetruco:
			return 2
		case shared.BetValeCuatro:
			return 3
		}

	case shared.FamilyEnvido:
		if len(state.EnvidoBets) == 0 {
			return 0
		}
		total := 0
		for _, bet := range state.EnvidoBets[:len(state.EnvidoBets)-1] {
			if p := shared.EnvidoPoints(bet.Type); p > 0 {
				total += p
			}
		}
		if total == 0 {
			return 1
		}
		return total

	case shared.FamilyFlor:
		switch betType {
		case shared.BetFlor:
			return 3
		case shared.BetContraFlor:
			return 6
		case shared.BetContraFlorResto:
			return -1
		}
	}
	return 0
}

// FaltaEnvidoPoints values a won Falta Envido from the two team scores.
//
// In to-leader mode the award is what the leading team still needs. In
// to-loser mode the award is what the trailing team still needs while the
// leader is below the las buenas threshold, and what the leader needs once
// past it.
func FaltaEnvidoPoints(score1, score2 int, config shared.GameConfig) int {
	leader, loser := score1, score2
	if score2 > score1 {
		leader, loser = score2, score1
	}

	if config.FaltaEnvidoMode == shared.FaltaToLeader {
		return config.WinningScore - leader
	}

	if leader < config.LasBuenasThreshold {
		return config.WinningScore - loser
	}
	return config.WinningScore - leader
}
