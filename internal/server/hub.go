package server

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"sync"

	"truco-game/internal/game"
	"truco-game/internal/protocol"
	"truco-game/internal/shared"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// clientMessage pairs a message with the client that sent it.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

// lobby is a room that has not started yet: joined clients plus the game
// configuration chosen by the creator.
type lobby struct {
	code    string
	config  shared.GameConfig
	clients []*Client
}

func (l *lobby) full() bool {
	return len(l.clients) >= l.config.NumPlayers
}

// Hub manages WebSocket clients, lobbies, and running game sessions.
type Hub struct {
	clients      map[*Client]bool
	lobbies      map[string]*lobby
	games        map[string]*game.Session
	clientToGame map[*Client]string

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client

	clientMu sync.RWMutex
	lobbyMu  sync.RWMutex
	gameMu   sync.RWMutex

	rng *rand.Rand
	log *logrus.Entry
}

// NewHub creates a hub with the given random source (used for game codes
// and deck shuffles).
func NewHub(rng *rand.Rand) *Hub {
	return &Hub{
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string]*lobby),
		games:          make(map[string]*game.Session),
		clientToGame:   make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rng,
		log:            logrus.WithField("component", "hub"),
	}
}

// generateGameCode draws codes until one is free.
func (h *Hub) generateGameCode() string {
	for {
		code := randomGameCode(h.rng)

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.gameMu.RLock()
		_, gameExists := h.games[code]
		h.gameMu.RUnlock()

		if !lobbyExists && !gameExists {
			return code
		}
	}
}

// Run is the hub's main loop; start it in its own goroutine.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			h.log.WithField("client", client.ID).Info("client connected")
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.handleDisconnect(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

func (h *Hub) handleDisconnect(client *Client) {
	h.clientMu.Lock()
	gameCode, wasSeated := h.clientToGame[client]
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		delete(h.clientToGame, client)
		close(client.send)
		h.log.WithField("client", client.ID).Info("client disconnected")
	}
	h.clientMu.Unlock()

	if !wasSeated {
		return
	}

	h.lobbyMu.Lock()
	if l, ok := h.lobbies[gameCode]; ok {
		remaining := make([]*Client, 0, len(l.clients))
		for _, c := range l.clients {
			if c != client {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) == 0 {
			delete(h.lobbies, gameCode)
			h.lobbyMu.Unlock()
			return
		}
		l.clients = remaining
		h.lobbyMu.Unlock()
		h.broadcastLobbyUpdate(l)
		return
	}
	h.lobbyMu.Unlock()

	h.gameMu.Lock()
	if session, ok := h.games[gameCode]; ok {
		delete(h.games, gameCode)
		h.gameMu.Unlock()
		go session.HandleClientDisconnect(client.ID)
		return
	}
	h.gameMu.Unlock()
}

func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_game":
		h.handleCreateGame(client, msg)
	case "join_game":
		h.handleJoinGame(client, msg)
	case "play_card", "call_bet", "respond_bet":
		h.handleGameAction(client, msg)
	case "ping":
		pong, _ := protocol.NewMessage("pong", nil)
		h.sendMessageToClient(client.ID, pong)
	default:
		h.log.WithFields(logrus.Fields{"client": client.ID, "type": msg.Type}).Warn("unknown message type")
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// normalizeConfig fills defaults for fields the creator left at their zero
// value. An all-zero config means "the traditional game".
func normalizeConfig(cfg shared.GameConfig) shared.GameConfig {
	if cfg.NumPlayers == 0 {
		return shared.DefaultGameConfig()
	}
	if cfg.WinningScore == 0 {
		cfg.WinningScore = 30
		if cfg.LasBuenasThreshold == 0 {
			cfg.LasBuenasThreshold = 15
		}
	}
	if cfg.FaltaEnvidoMode == "" {
		cfg.FaltaEnvidoMode = shared.FaltaToLoser
	}
	return cfg
}

func (h *Hub) handleCreateGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadySeated := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadySeated {
		h.sendErrorToClient(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.CreateGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "Invalid create_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}

	cfg := normalizeConfig(payload.Config)
	if err := cfg.Validate(); err != nil {
		h.sendErrorToClient(client, "Invalid game configuration.")
		return
	}
	// TODO: enable once game.Session supports per-player scoring for the
	// all-individual variant.
	if cfg.PicaPicaMode {
		h.sendErrorToClient(client, "Pica Pica games are not available yet.")
		return
	}

	gameCode := h.generateGameCode()

	h.clientMu.Lock()
	client.Name = payload.Name
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	l := &lobby{code: gameCode, config: cfg, clients: []*Client{client}}
	h.lobbyMu.Lock()
	h.lobbies[gameCode] = l
	h.lobbyMu.Unlock()

	h.log.WithFields(logrus.Fields{"client": client.ID, "room": gameCode, "players": cfg.NumPlayers}).Info("lobby created")

	created, _ := protocol.NewMessage("game_created", protocol.GameCreatedPayload{GameCode: gameCode})
	h.sendMessageToClient(client.ID, created)
	h.broadcastLobbyUpdate(l)
}

func (h *Hub) handleJoinGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadySeated := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadySeated {
		h.sendJoinError(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.JoinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendJoinError(client, "Invalid join_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	gameCode := strings.ToUpper(payload.GameCode)
	if !ValidGameCode(gameCode) {
		h.sendJoinError(client, "Game code not found.")
		return
	}

	h.lobbyMu.Lock()
	l, ok := h.lobbies[gameCode]
	if !ok {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game code not found.")
		return
	}
	if l.full() {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game lobby is full.")
		return
	}
	for _, existing := range l.clients {
		if existing.Name == payload.Name {
			h.lobbyMu.Unlock()
			h.sendJoinError(client, "Name already taken in this lobby.")
			return
		}
	}

	client.Name = payload.Name
	l.clients = append(l.clients, client)
	full := l.full()
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	h.log.WithFields(logrus.Fields{"client": client.ID, "room": gameCode}).Info("client joined lobby")
	h.broadcastLobbyUpdate(l)

	if full {
		h.startGame(gameCode)
	}
}

// startGame promotes a full lobby into a running session.
func (h *Hub) startGame(gameCode string) {
	h.gameMu.Lock()
	h.lobbyMu.Lock()

	l, ok := h.lobbies[gameCode]
	if !ok || !l.full() {
		h.lobbyMu.Unlock()
		h.gameMu.Unlock()
		return
	}

	clientIDs := make([]string, len(l.clients))
	names := make([]string, len(l.clients))
	for i, c := range l.clients {
		clientIDs[i] = c.ID
		names[i] = c.Name
	}

	session, err := game.NewSession(clientIDs, names, l.config, h.sendMessageToClient, h.rng)
	if err != nil {
		h.lobbyMu.Unlock()
		h.gameMu.Unlock()
		h.log.WithError(err).WithField("room", gameCode).Error("failed to start game")
		errMsg, _ := protocol.NewMessage("error", protocol.ErrorPayload{Message: "Failed to start game."})
		for _, c := range l.clients {
			h.sendMessageToClient(c.ID, errMsg)
		}
		return
	}

	h.games[gameCode] = session
	delete(h.lobbies, gameCode)

	h.lobbyMu.Unlock()
	h.gameMu.Unlock()

	h.log.WithFields(logrus.Fields{"room": gameCode, "game": session.ID}).Info("game started")
	go session.Start()
}

func (h *Hub) handleGameAction(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	gameCode, seated := h.clientToGame[client]
	h.clientMu.RUnlock()
	if !seated {
		h.sendErrorToClient(client, "You are not in an active game.")
		return
	}

	h.gameMu.RLock()
	session, ok := h.games[gameCode]
	h.gameMu.RUnlock()
	if !ok {
		h.sendErrorToClient(client, "Game not found or not active.")
		return
	}

	session.HandleAction(client.ID, msg)

	if session.Finished() {
		h.gameMu.Lock()
		delete(h.games, gameCode)
		h.gameMu.Unlock()
	}
}

// RoomInfo is a diagnostic snapshot of one room.
type RoomInfo struct {
	Code     string `json:"code"`
	Players  int    `json:"players"`
	Capacity int    `json:"capacity"`
	Started  bool   `json:"started"`
}

// Rooms lists all lobbies and running games.
func (h *Hub) Rooms() []RoomInfo {
	rooms := []RoomInfo{}

	h.lobbyMu.RLock()
	for code, l := range h.lobbies {
		rooms = append(rooms, RoomInfo{
			Code:     code,
			Players:  len(l.clients),
			Capacity: l.config.NumPlayers,
			Started:  false,
		})
	}
	h.lobbyMu.RUnlock()

	h.gameMu.RLock()
	for code := range h.games {
		rooms = append(rooms, RoomInfo{Code: code, Started: true})
	}
	h.gameMu.RUnlock()

	return rooms
}

// sendMessageToClient delivers a message by client ID; passed to sessions
// as their MessageSender.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var target *Client
	for client := range h.clients {
		if client.ID == clientID {
			target = client
			break
		}
	}
	h.clientMu.RUnlock()

	if target == nil {
		return
	}

	select {
	case target.send <- message:
	default:
		// Channel full or closed; treat the client as gone.
		h.log.WithField("client", clientID).Warn("send failed, unregistering client")
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[target]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- target
			}
		}()
	}
}

func (h *Hub) broadcastLobbyUpdate(l *lobby) {
	h.lobbyMu.RLock()
	infos := make([]protocol.PlayerInfo, len(l.clients))
	clientIDs := make([]string, len(l.clients))
	for i, c := range l.clients {
		infos[i] = protocol.PlayerInfo{ID: c.ID, Name: c.Name, Position: i}
		clientIDs[i] = c.ID
	}
	capacity := l.config.NumPlayers
	code := l.code
	h.lobbyMu.RUnlock()

	msg, err := protocol.NewMessage("lobby_update", protocol.LobbyUpdatePayload{
		GameCode: code,
		Players:  infos,
		Capacity: capacity,
	})
	if err != nil {
		return
	}
	for _, id := range clientIDs {
		h.sendMessageToClient(id, msg)
	}
}

func (h *Hub) sendErrorToClient(client *Client, text string) {
	msg, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: text})
	if err != nil {
		return
	}
	h.sendMessageToClient(client.ID, msg)
}

func (h *Hub) sendJoinError(client *Client, text string) {
	msg, err := protocol.NewMessage("join_error", protocol.JoinErrorPayload{Message: text})
	if err != nil {
		return
	}
	h.sendMessageToClient(client.ID, msg)
}
