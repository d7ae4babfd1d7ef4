package shared

import "fmt"

// FaltaEnvidoMode selects how a won Falta Envido is valued.
type FaltaEnvidoMode string

const (
	// FaltaToLeader awards the points the leading team still needs.
	FaltaToLeader FaltaEnvidoMode = "to_leader"
	// FaltaToLoser awards the points the trailing team still needs while
	// the leader is in "las malas" (traditional rule).
	FaltaToLoser FaltaEnvidoMode = "to_loser"
)

// GameConfig is the full, immutable rule configuration of a game. There is
// no implicit default object: construct one with DefaultGameConfig or a
// preset and override fields before Validate.
type GameConfig struct {
	NumPlayers         int             `json:"num_players"` // 2, 4, or 6
	FlorEnabled        bool            `json:"flor_enabled"`
	RealEnvidoMultiple bool            `json:"real_envido_multiple"`
	FaltaEnvidoMode    FaltaEnvidoMode `json:"falta_envido_mode"`
	WinningScore       int             `json:"winning_score"`
	LasBuenasThreshold int             `json:"las_buenas_threshold"`
	PicaPicaMode       bool            `json:"pica_pica_mode"` // 6 players only
}

// DefaultGameConfig is the traditional 4-player game with Flor, to 30
// points with las buenas at 15.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		NumPlayers:         4,
		FlorEnabled:        true,
		RealEnvidoMultiple: false,
		FaltaEnvidoMode:    FaltaToLoser,
		WinningScore:       30,
		LasBuenasThreshold: 15,
	}
}

// TwoPlayerConfig is a head-to-head game without Flor.
func TwoPlayerConfig() GameConfig {
	cfg := DefaultGameConfig()
	cfg.NumPlayers = 2
	cfg.FlorEnabled = false
	return cfg
}

// QuickConfig is a short game to 15 points.
func QuickConfig() GameConfig {
	cfg := DefaultGameConfig()
	cfg.WinningScore = 15
	cfg.LasBuenasThreshold = 8
	return cfg
}

// FlexibleEnvidoConfig allows Real Envido to be called repeatedly.
func FlexibleEnvidoConfig() GameConfig {
	cfg := DefaultGameConfig()
	cfg.RealEnvidoMultiple = true
	return cfg
}

// PicaPicaConfig is the 6-player all-individual variant.
func PicaPicaConfig() GameConfig {
	cfg := DefaultGameConfig()
	cfg.NumPlayers = 6
	cfg.PicaPicaMode = true
	return cfg
}

// Validate checks the configuration invariants.
func (c GameConfig) Validate() error {
	if c.NumPlayers != 2 && c.NumPlayers != 4 && c.NumPlayers != 6 {
		return fmt.Errorf("%w: truco is played with 2, 4, or 6 players, got %d", ErrInvalidConfiguration, c.NumPlayers)
	}
	if c.PicaPicaMode && c.NumPlayers != 6 {
		return fmt.Errorf("%w: pica pica mode requires 6 players", ErrInvalidConfiguration)
	}
	if c.WinningScore <= 0 {
		return fmt.Errorf("%w: winning score must be positive", ErrInvalidConfiguration)
	}
	if c.LasBuenasThreshold < 0 || c.LasBuenasThreshold >= c.WinningScore {
		return fmt.Errorf("%w: las buenas threshold must be in [0, winning score)", ErrInvalidConfiguration)
	}
	switch c.FaltaEnvidoMode {
	case FaltaToLeader, FaltaToLoser:
	default:
		return fmt.Errorf("%w: unknown falta envido mode %q", ErrInvalidConfiguration, c.FaltaEnvidoMode)
	}
	return nil
}
