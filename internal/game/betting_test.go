package game

import (
	"testing"

	"truco-game/internal/shared"

	"github.com/stretchr/testify/assert"
)

func pendingBet(betType shared.BetType) shared.Bet {
	return shared.NewBet(betType, "player-0", shared.Team1ID, 0)
}

func respondedBet(betType shared.BetType, response shared.BetResponse) shared.Bet {
	return pendingBet(betType).WithResponse(response, "player-1")
}

func TestCanCallTrucoBet(t *testing.T) {
	empty := shared.NewBettingState()

	assert.True(t, CanCallTrucoBet(empty, shared.BetTruco))
	assert.False(t, CanCallTrucoBet(empty, shared.BetRetruco))
	assert.False(t, CanCallTrucoBet(empty, shared.BetValeCuatro))

	pending := empty.WithBet(pendingBet(shared.BetTruco))
	assert.False(t, CanCallTrucoBet(pending, shared.BetTruco))
	assert.False(t, CanCallTrucoBet(pending, shared.BetRetruco), "retruco needs the truco accepted first")

	accepted := empty.WithBet(respondedBet(shared.BetTruco, shared.ResponseAccept))
	assert.True(t, CanCallTrucoBet(accepted, shared.BetRetruco))
	assert.False(t, CanCallTrucoBet(accepted, shared.BetValeCuatro))

	declined := empty.WithBet(respondedBet(shared.BetTruco, shared.ResponseDecline))
	assert.False(t, CanCallTrucoBet(declined, shared.BetRetruco))

	retrucoAccepted := accepted.WithBet(respondedBet(shared.BetRetruco, shared.ResponseAccept))
	assert.True(t, CanCallTrucoBet(retrucoAccepted, shared.BetValeCuatro))
	assert.False(t, CanCallTrucoBet(retrucoAccepted, shared.BetRetruco))

	assert.False(t, CanCallTrucoBet(empty, shared.BetEnvido))
}

func TestCanCallEnvidoBet(t *testing.T) {
	cfg := shared.DefaultGameConfig()
	empty := shared.NewBettingState()

	assert.True(t, CanCallEnvidoBet(empty, shared.BetEnvido, shared.PhaseBetting, cfg))
	assert.True(t, CanCallEnvidoBet(empty, shared.BetEnvido, shared.PhaseDealing, cfg))
	assert.False(t, CanCallEnvidoBet(empty, shared.BetEnvido, shared.PhasePlaying, cfg),
		"envido window closes with the first card")

	resolved := empty.WithEnvidoResolved()
	assert.False(t, CanCallEnvidoBet(resolved, shared.BetEnvido, shared.PhaseBetting, cfg))

	afterEnvido := empty.WithBet(respondedBet(shared.BetEnvido, shared.ResponseAccept))
	assert.True(t, CanCallEnvidoBet(afterEnvido, shared.BetEnvidoEnvido, shared.PhaseBetting, cfg))
	assert.True(t, CanCallEnvidoBet(afterEnvido, shared.BetRealEnvido, shared.PhaseBetting, cfg))
	assert.True(t, CanCallEnvidoBet(afterEnvido, shared.BetFaltaEnvido, shared.PhaseBetting, cfg))

	// Real Envido is called once in the traditional rules.
	afterReal := afterEnvido.WithBet(respondedBet(shared.BetRealEnvido, shared.ResponseAccept))
	assert.False(t, CanCallEnvidoBet(afterReal, shared.BetRealEnvido, shared.PhaseBetting, cfg))

	flexible := shared.FlexibleEnvidoConfig()
	assert.True(t, CanCallEnvidoBet(afterReal, shared.BetRealEnvido, shared.PhaseBetting, flexible))

	pending := empty.WithBet(pendingBet(shared.BetEnvido))
	assert.False(t, CanCallEnvidoBet(pending, shared.BetEnvido, shared.PhaseBetting, cfg))
	assert.False(t, CanCallEnvidoBet(pending, shared.BetFaltaEnvido, shared.PhaseBetting, cfg))
}

func TestCanCallFlorBet(t *testing.T) {
	cfg := shared.DefaultGameConfig()
	empty := shared.NewBettingState()

	assert.True(t, CanCallFlorBet(empty, shared.BetFlor, shared.PhaseBetting, true, cfg))
	assert.False(t, CanCallFlorBet(empty, shared.BetFlor, shared.PhaseBetting, false, cfg),
		"flor requires holding three of a suit")
	assert.False(t, CanCallFlorBet(empty, shared.BetFlor, shared.PhasePlaying, true, cfg))

	disabled := shared.TwoPlayerConfig()
	assert.False(t, CanCallFlorBet(empty, shared.BetFlor, shared.PhaseBetting, true, disabled))

	// Flor is never re-called, not even after a decline.
	afterDecline := empty.WithBet(respondedBet(shared.BetFlor, shared.ResponseDecline))
	assert.False(t, CanCallFlorBet(afterDecline, shared.BetFlor, shared.PhaseBetting, true, cfg))

	// Contra Flor answers a pending Flor and needs Flor in hand.
	florPending := empty.WithBet(pendingBet(shared.BetFlor))
	assert.True(t, CanCallFlorBet(florPending, shared.BetContraFlor, shared.PhaseBetting, true, cfg))
	assert.False(t, CanCallFlorBet(florPending, shared.BetContraFlor, shared.PhaseBetting, false, cfg))

	contraAccepted := empty.
		WithBet(respondedBet(shared.BetFlor, shared.ResponseRaise)).
		WithBet(respondedBet(shared.BetContraFlor, shared.ResponseAccept))
	assert.True(t, CanCallFlorBet(contraAccepted, shared.BetContraFlorResto, shared.PhaseBetting, false, cfg))
}

func TestCanRespondToBet(t *testing.T) {
	state := shared.NewBettingState().WithBet(pendingBet(shared.BetTruco))

	assert.True(t, CanRespondToBet(state, shared.BetTruco, "player-1", "player-0"))
	assert.False(t, CanRespondToBet(state, shared.BetTruco, "player-0", "player-0"),
		"callers cannot answer their own bet")
	assert.False(t, CanRespondToBet(state, shared.BetEnvido, "player-1", "player-0"))

	answered := shared.NewBettingState().WithBet(respondedBet(shared.BetTruco, shared.ResponseAccept))
	assert.False(t, CanRespondToBet(answered, shared.BetTruco, "player-1", "player-0"))
}

func TestDeclinePoints(t *testing.T) {
	empty := shared.NewBettingState()

	assert.Equal(t, 1, DeclinePoints(shared.BetTruco, empty))
	assert.Equal(t, 2, DeclinePoints(shared.BetRetruco, empty))
	assert.Equal(t, 3, DeclinePoints(shared.BetValeCuatro, empty))

	// Lone declined envido is worth 1.
	one := empty.WithBet(respondedBet(shared.BetEnvido, shared.ResponseDecline))
	assert.Equal(t, 1, DeclinePoints(shared.BetEnvido, one))

	// A declined raise pays the chain before it.
	chain := empty.
		WithBet(respondedBet(shared.BetEnvido, shared.ResponseRaise)).
		WithBet(respondedBet(shared.BetRealEnvido, shared.ResponseRaise)).
		WithBet(respondedBet(shared.BetFaltaEnvido, shared.ResponseDecline))
	assert.Equal(t, 5, DeclinePoints(shared.BetFaltaEnvido, chain))

	assert.Equal(t, 3, DeclinePoints(shared.BetFlor, empty))
	assert.Equal(t, 6, DeclinePoints(shared.BetContraFlor, empty))
	assert.Equal(t, -1, DeclinePoints(shared.BetContraFlorResto, empty))
}

func TestFaltaEnvidoPoints(t *testing.T) {
	cfg := shared.DefaultGameConfig() // to 30, las buenas at 15, to_loser

	// Leader in las malas: the trailing team's remainder.
	assert.Equal(t, 25, FaltaEnvidoPoints(10, 5, cfg))
	assert.Equal(t, 25, FaltaEnvidoPoints(5, 10, cfg), "symmetric in the scores")

	// Leader past las buenas: the leader's remainder.
	assert.Equal(t, 10, FaltaEnvidoPoints(20, 5, cfg))

	leaderMode := cfg
	leaderMode.FaltaEnvidoMode = shared.FaltaToLeader
	assert.Equal(t, 20, FaltaEnvidoPoints(10, 5, leaderMode))
	assert.Equal(t, 20, FaltaEnvidoPoints(5, 10, leaderMode))
}
