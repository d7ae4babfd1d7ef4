package shared

// Standard-mode team identifiers. Pica Pica games use one team per
// position, team-0 through team-5.
const (
	Team1ID TeamID = "team-1"
	Team2ID TeamID = "team-2"
)

// Team is the immutable state of one team. PlayerIDs keeps join order.
type Team struct {
	ID        TeamID     `json:"id"`
	Name      string     `json:"name"`
	PlayerIDs []PlayerID `json:"player_ids"`
	Score     int        `json:"score"`
}

// NewTeam creates a team with the given members and a zero score.
func NewTeam(id TeamID, name string, playerIDs ...PlayerID) Team {
	ids := make([]PlayerID, len(playerIDs))
	copy(ids, playerIDs)
	return Team{ID: id, Name: name, PlayerIDs: ids}
}

// AddPoints returns a copy of the team with points added to its score.
func (t Team) AddPoints(points int) Team {
	next := t
	next.Score += points
	return next
}

// WithScore returns a copy of the team with the score replaced.
func (t Team) WithScore(score int) Team {
	next := t
	next.Score = score
	return next
}

// HasPlayer reports whether the player belongs to this team.
func (t Team) HasPlayer(id PlayerID) bool {
	for _, pid := range t.PlayerIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// HasWon reports whether the team reached the winning score.
func (t Team) HasWon(winningScore int) bool {
	return t.Score >= winningScore
}
