package game

import (
	"testing"

	"truco-game/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupGameStandardTeams(t *testing.T) {
	setup, err := SetupGame(shared.DefaultGameConfig(), []string{"Ana", "Beto", "Cata", "Dani"})
	require.NoError(t, err)

	require.Len(t, setup.Players, 4)
	require.Len(t, setup.Teams, 2)
	assert.Equal(t, 0, setup.DealerPosition)
	assert.True(t, setup.Players[0].IsDealer)

	// Even positions on team 1, odd on team 2.
	for _, p := range setup.Players {
		if p.Position%2 == 0 {
			assert.Equal(t, shared.Team1ID, p.TeamID, "position %d", p.Position)
		} else {
			assert.Equal(t, shared.Team2ID, p.TeamID, "position %d", p.Position)
		}
	}

	assert.Equal(t, "Ana", setup.Players[0].Name)
	assert.Len(t, setup.Teams[0].PlayerIDs, 2)
	assert.Len(t, setup.Teams[1].PlayerIDs, 2)
}

func TestSetupGameDefaultNames(t *testing.T) {
	setup, err := SetupGame(shared.TwoPlayerConfig(), []string{"Ana"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", setup.Players[0].Name)
	assert.Equal(t, "Player 2", setup.Players[1].Name)
}

func TestSetupGamePicaPica(t *testing.T) {
	setup, err := SetupGame(shared.PicaPicaConfig(), nil)
	require.NoError(t, err)

	require.Len(t, setup.Players, 6)
	require.Len(t, setup.Teams, 6)
	for i, team := range setup.Teams {
		assert.Len(t, team.PlayerIDs, 1, "team %d", i)
	}
}

func TestSetupGameInvalidConfig(t *testing.T) {
	cfg := shared.DefaultGameConfig()
	cfg.NumPlayers = 3
	_, err := SetupGame(cfg, nil)
	require.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestRotateDealerWraps(t *testing.T) {
	setup, err := SetupGame(shared.DefaultGameConfig(), nil)
	require.NoError(t, err)

	rotated := RotateDealer(setup.Players, 3)
	for _, p := range rotated {
		assert.Equal(t, p.Position == 0, p.IsDealer, "position %d", p.Position)
	}
}

func TestTurnOrder(t *testing.T) {
	assert.Equal(t, 1, FirstPlayer(0, 4))
	assert.Equal(t, 0, FirstPlayer(3, 4))
	assert.Equal(t, 0, NextPlayer(3, 4))

	setup, err := SetupGame(shared.DefaultGameConfig(), nil)
	require.NoError(t, err)

	ordered := PlayersInTurnOrder(setup.Players, 2)
	positions := make([]int, len(ordered))
	for i, p := range ordered {
		positions[i] = p.Position
	}
	assert.Equal(t, []int{2, 3, 0, 1}, positions)
}

func TestPlayerAtPosition(t *testing.T) {
	setup, err := SetupGame(shared.DefaultGameConfig(), nil)
	require.NoError(t, err)

	p, err := PlayerAtPosition(setup.Players, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Position)

	_, err = PlayerAtPosition(setup.Players, 9)
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPlayerTeamAndOpposingTeams(t *testing.T) {
	setup, err := SetupGame(shared.DefaultGameConfig(), nil)
	require.NoError(t, err)

	team, err := PlayerTeam(setup.Teams, setup.Players[1].ID)
	require.NoError(t, err)
	assert.Equal(t, shared.Team2ID, team.ID)

	opponents, err := OpposingTeams(setup.Teams, shared.Team1ID)
	require.NoError(t, err)
	require.Len(t, opponents, 1)
	assert.Equal(t, shared.Team2ID, opponents[0].ID)

	_, err = OpposingTeams(setup.Teams, "team-9")
	require.ErrorIs(t, err, shared.ErrNotFound)
}

func TestOpposingTeamsPicaPica(t *testing.T) {
	setup, err := SetupGame(shared.PicaPicaConfig(), nil)
	require.NoError(t, err)

	opponents, err := OpposingTeams(setup.Teams, setup.Teams[0].ID)
	require.NoError(t, err)
	assert.Len(t, opponents, 5)
}

func TestPositionToTeam(t *testing.T) {
	setup, err := SetupGame(shared.TwoPlayerConfig(), nil)
	require.NoError(t, err)

	m := PositionToTeam(setup.Players)
	assert.Equal(t, map[int]shared.TeamID{
		0: shared.Team1ID,
		1: shared.Team2ID,
	}, m)
}
