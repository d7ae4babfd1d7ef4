package protocol

import (
	"encoding/json"

	"truco-game/internal/shared"
)

// Message is the websocket envelope: a type tag and a raw payload.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// --- Client -> Server payloads ---

type CreateGamePayload struct {
	Name   string            `json:"name"`
	Config shared.GameConfig `json:"config"`
}

type JoinGamePayload struct {
	Name     string `json:"name"`
	GameCode string `json:"game_code"`
}

type PlayCardPayload struct {
	CardIndex int `json:"card_index"`
}

type CallBetPayload struct {
	BetType string `json:"bet_type"`
}

type RespondBetPayload struct {
	BetType  string `json:"bet_type"`
	Response string `json:"response"`
}

// --- Server -> Client payloads ---

type GameCreatedPayload struct {
	GameCode string `json:"game_code"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position int    `json:"position"`
}

type TeamInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name"`
	Players []PlayerInfo `json:"players"`
	Score   int          `json:"score"`
}

type LobbyUpdatePayload struct {
	GameCode string       `json:"game_code"`
	Players  []PlayerInfo `json:"players"`
	Capacity int          `json:"capacity"`
}

type GameStartPayload struct {
	GameID  string            `json:"game_id"`
	Players []PlayerInfo      `json:"players"`
	Teams   []TeamInfo        `json:"teams"`
	Config  shared.GameConfig `json:"config"`
}

type DealHandPayload struct {
	HandNumber  int           `json:"hand_number"`
	Cards       []shared.Card `json:"cards"`
	EnvidoScore int           `json:"envido_score"`
	HasFlor     bool          `json:"has_flor"`
	DealerPos   int           `json:"dealer_position"`
}

type YourTurnPayload struct {
	Position int    `json:"position"`
	PlayerID string `json:"player_id"`
}

type BetCalledPayload struct {
	PlayerID string `json:"player_id"`
	Position int    `json:"position"`
	BetType  string `json:"bet_type"`
}

type BetResponsePayload struct {
	PlayerID string `json:"player_id"`
	BetType  string `json:"bet_type"`
	Response string `json:"response"`
}

type EnvidoResultPayload struct {
	Team1Score   int    `json:"team1_score"`
	Team2Score   int    `json:"team2_score"`
	WinnerTeamID string `json:"winner_team_id"`
	Points       int    `json:"points"`
	Declined     bool   `json:"declined"`
}

type FlorResultPayload struct {
	WinnerTeamID string `json:"winner_team_id"`
	Points       int    `json:"points"`
	Declined     bool   `json:"declined"`
}

type CardPlayedPayload struct {
	PlayerID string      `json:"player_id"`
	Position int         `json:"position"`
	Card     shared.Card `json:"card"`
}

type TrickEndPayload struct {
	TrickNumber    int    `json:"trick_number"`
	Result         string `json:"result"`
	WinnerPosition int    `json:"winner_position"`
}

type HandEndPayload struct {
	WinnerTeamID string         `json:"winner_team_id"`
	Points       int            `json:"points"`
	TeamScores   map[string]int `json:"team_scores"`
}

type GameOverPayload struct {
	WinnerTeamID string         `json:"winner_team_id"`
	TeamScores   map[string]int `json:"team_scores"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

// NewMessage marshals a typed message envelope.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		return json.Marshal(Message{Type: msgType})
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Message{Type: msgType, Payload: payloadBytes})
}
