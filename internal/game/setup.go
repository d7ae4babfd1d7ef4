package game

import (
	"fmt"

	"truco-game/internal/shared"
)

// Setup is the result of assembling a new game: players seated in position
// order, their teams, and the initial dealer.
type Setup struct {
	Players        []shared.Player
	Teams          []shared.Team
	DealerPosition int
}

// SetupGame seats numPlayers players and assigns teams. In standard mode
// even positions join team-1 and odd positions team-2; in Pica Pica mode
// every position is its own team. Names beyond len(playerNames) default to
// "Player N". Position 0 is the initial dealer.
func SetupGame(config shared.GameConfig, playerNames []string) (Setup, error) {
	if err := config.Validate(); err != nil {
		return Setup{}, err
	}

	n := config.NumPlayers
	names := make([]string, n)
	for i := 0; i < n; i++ {
		if i < len(playerNames) && playerNames[i] != "" {
			names[i] = playerNames[i]
		} else {
			names[i] = fmt.Sprintf("Player %d", i+1)
		}
	}

	var players []shared.Player
	var teams []shared.Team

	if config.PicaPicaMode {
		for i := 0; i < n; i++ {
			playerID := shared.PlayerID(fmt.Sprintf("player-%d", i))
			teamID := shared.TeamID(fmt.Sprintf("team-%d", i))
			teams = append(teams, shared.NewTeam(teamID, names[i], playerID))
			players = append(players, shared.NewPlayer(playerID, names[i], teamID, i))
		}
	} else {
		for i := 0; i < n; i++ {
			playerID := shared.PlayerID(fmt.Sprintf("player-%d", i))
			teamID := shared.Team2ID
			if i%2 == 0 {
				teamID = shared.Team1ID
			}
			players = append(players, shared.NewPlayer(playerID, names[i], teamID, i))
		}

		team1 := shared.NewTeam(shared.Team1ID, "Team 1")
		team2 := shared.NewTeam(shared.Team2ID, "Team 2")
		for _, p := range players {
			if p.TeamID == shared.Team1ID {
				team1.PlayerIDs = append(team1.PlayerIDs, p.ID)
			} else {
				team2.PlayerIDs = append(team2.PlayerIDs, p.ID)
			}
		}
		teams = append(teams, team1, team2)
	}

	players[0] = players[0].WithDealer(true)

	return Setup{Players: players, Teams: teams, DealerPosition: 0}, nil
}

// RotateDealer returns a new player sequence with the dealer button moved
// one position forward.
func RotateDealer(players []shared.Player, currentDealerPosition int) []shared.Player {
	n := len(players)
	nextDealer := (currentDealerPosition + 1) % n

	rotated := make([]shared.Player, n)
	for i, p := range players {
		rotated[i] = p.WithDealer(i == nextDealer)
	}
	return rotated
}

// FirstPlayer returns the position that leads a hand: the player to the
// dealer's right in turn order.
func FirstPlayer(dealerPosition, numPlayers int) int {
	return (dealerPosition + 1) % numPlayers
}

// NextPlayer returns the position that acts after the given one.
func NextPlayer(position, numPlayers int) int {
	return (position + 1) % numPlayers
}

// PlayersInTurnOrder rotates the player list so play begins at start.
func PlayersInTurnOrder(players []shared.Player, start int) []shared.Player {
	n := len(players)
	ordered := make([]shared.Player, 0, n)
	for i := 0; i < n; i++ {
		position := (start + i) % n
		for _, p := range players {
			if p.Position == position {
				ordered = append(ordered, p)
				break
			}
		}
	}
	return ordered
}

// PlayerAtPosition finds the player seated at position.
func PlayerAtPosition(players []shared.Player, position int) (shared.Player, error) {
	for _, p := range players {
		if p.Position == position {
			return p, nil
		}
	}
	return shared.Player{}, fmt.Errorf("%w: no player at position %d", shared.ErrNotFound, position)
}

// TeamPlayers returns all players on the given team, in position order.
func TeamPlayers(players []shared.Player, teamID shared.TeamID) []shared.Player {
	var members []shared.Player
	for _, p := range players {
		if p.TeamID == teamID {
			members = append(members, p)
		}
	}
	return members
}

// PlayerTeam finds the team a player belongs to.
func PlayerTeam(teams []shared.Team, playerID shared.PlayerID) (shared.Team, error) {
	for _, t := range teams {
		if t.HasPlayer(playerID) {
			return t, nil
		}
	}
	return shared.Team{}, fmt.Errorf("%w: no team for player %s", shared.ErrNotFound, playerID)
}

// OpposingTeams returns every team other than teamID. In standard play the
// result has one element; in Pica Pica it has numPlayers-1.
func OpposingTeams(teams []shared.Team, teamID shared.TeamID) ([]shared.Team, error) {
	found := false
	var opponents []shared.Team
	for _, t := range teams {
		if t.ID == teamID {
			found = true
			continue
		}
		opponents = append(opponents, t)
	}
	if !found {
		return nil, fmt.Errorf("%w: team %s", shared.ErrNotFound, teamID)
	}
	return opponents, nil
}

// PositionToTeam builds the position→team map consumed by trick and hand
// resolution.
func PositionToTeam(players []shared.Player) map[int]shared.TeamID {
	m := make(map[int]shared.TeamID, len(players))
	for _, p := range players {
		m[p.Position] = p.TeamID
	}
	return m
}
