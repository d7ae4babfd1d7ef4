package game

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"truco-game/internal/protocol"
	"truco-game/internal/shared"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// MessageSender delivers a marshalled message to one client. The hub
// provides the implementation.
type MessageSender func(clientID string, message []byte)

// Session drives one Truco match over the pure rules engine. All state
// transitions replace values; the mutex only serializes the action stream
// into the engine, one bet or card play at a time.
type Session struct {
	ID     string
	config shared.GameConfig

	mu   sync.Mutex
	send MessageSender
	log  *logrus.Entry
	rng  *rand.Rand

	players []shared.Player
	teams   []shared.Team

	clientByPos map[int]string
	posByClient map[string]int

	phase      shared.GamePhase
	dealerPos  int
	currentPos int
	handLeader int
	handNumber int
	hand       shared.Hand
	betting    shared.BettingState
	dealtHands map[int][]shared.Card

	done bool
}

// NewSession builds a session for the given clients, seated in slice
// order. Pica Pica games are not playable here yet: trick results only
// encode the two standard teams.
func NewSession(clientIDs, names []string, config shared.GameConfig, sender MessageSender, rng *rand.Rand) (*Session, error) {
	if config.PicaPicaMode {
		return nil, fmt.Errorf("%w: pica pica games are not playable over this server", shared.ErrInvalidConfiguration)
	}
	if len(clientIDs) != config.NumPlayers {
		return nil, fmt.Errorf("%w: got %d clients for a %d player game", shared.ErrInvalidConfiguration, len(clientIDs), config.NumPlayers)
	}

	setup, err := SetupGame(config, names)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s := &Session{
		ID:          id,
		config:      config,
		send:        sender,
		log:         logrus.WithField("game", id),
		rng:         rng,
		players:     setup.Players,
		teams:       setup.Teams,
		clientByPos: make(map[int]string, len(clientIDs)),
		posByClient: make(map[string]int, len(clientIDs)),
		phase:       shared.PhaseWaiting,
		dealerPos:   setup.DealerPosition,
		dealtHands:  make(map[int][]shared.Card),
	}
	for i, cid := range clientIDs {
		s.clientByPos[i] = cid
		s.posByClient[cid] = i
	}
	return s, nil
}

// Start announces the game and deals the first hand. Called once, in its
// own goroutine, by the hub.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.WithField("players", s.config.NumPlayers).Info("starting game")

	playerInfos := make([]protocol.PlayerInfo, len(s.players))
	for i, p := range s.players {
		playerInfos[i] = protocol.PlayerInfo{ID: string(p.ID), Name: p.Name, Position: p.Position}
	}
	teamInfos := make([]protocol.TeamInfo, len(s.teams))
	for i, t := range s.teams {
		info := protocol.TeamInfo{ID: string(t.ID), Name: t.Name, Score: t.Score}
		for _, p := range TeamPlayers(s.players, t.ID) {
			info.Players = append(info.Players, protocol.PlayerInfo{ID: string(p.ID), Name: p.Name, Position: p.Position})
		}
		teamInfos[i] = info
	}
	s.broadcast("game_start", protocol.GameStartPayload{
		GameID:  s.ID,
		Players: playerInfos,
		Teams:   teamInfos,
		Config:  s.config,
	})

	s.handNumber = 1
	s.startHand()
}

// Finished reports whether the match has ended.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

// startHand shuffles, deals, and opens the betting phase. Lock held.
func (s *Session) startHand() {
	deck := shared.ShuffleDeck(shared.NewDeck(), s.rng)
	deal, err := shared.DealCards(deck, s.config.NumPlayers, shared.CardsPerHand)
	if err != nil {
		s.log.WithError(err).Error("deal failed")
		s.finish("")
		return
	}

	for i := range s.players {
		s.players[i] = s.players[i].WithHand(deal.Hands[i])
		s.dealtHands[i] = deal.Hands[i]
	}

	s.betting = shared.NewBettingState()
	s.hand = shared.NewHand(s.handNumber, 1)
	s.phase = shared.PhaseBetting
	s.handLeader = FirstPlayer(s.dealerPos, s.config.NumPlayers)
	s.currentPos = s.handLeader

	for i, p := range s.players {
		s.sendTo(i, "deal_hand", protocol.DealHandPayload{
			HandNumber:  s.handNumber,
			Cards:       p.Hand,
			EnvidoScore: EnvidoScore(p.Hand),
			HasFlor:     HasFlor(p.Hand),
			DealerPos:   s.dealerPos,
		})
	}
	s.announceTurn()
}

// HandleAction processes one client action. Unknown or invalid actions
// are answered with an error message, never a state change.
func (s *Session) HandleAction(clientID string, msg protocol.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		s.sendError(clientID, "The game has ended.")
		return
	}
	pos, ok := s.posByClient[clientID]
	if !ok {
		s.sendError(clientID, "You are not part of this game.")
		return
	}

	switch msg.Type {
	case "play_card":
		var payload protocol.PlayCardPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(clientID, "Invalid play_card payload.")
			return
		}
		s.playCard(pos, payload.CardIndex)

	case "call_bet":
		var payload protocol.CallBetPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(clientID, "Invalid call_bet payload.")
			return
		}
		betType, ok := shared.ParseBetType(payload.BetType)
		if !ok {
			s.sendError(clientID, "Unknown bet type.")
			return
		}
		s.callBet(pos, betType)

	case "respond_bet":
		var payload protocol.RespondBetPayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			s.sendError(clientID, "Invalid respond_bet payload.")
			return
		}
		betType, ok := shared.ParseBetType(payload.BetType)
		if !ok {
			s.sendError(clientID, "Unknown bet type.")
			return
		}
		s.respondBet(pos, betType, shared.BetResponse(payload.Response))

	default:
		s.sendError(clientID, "Unknown message type.")
	}
}

// HandleClientDisconnect ends the match when a seated player drops.
// Reconnection is a transport concern this server does not implement.
func (s *Session) HandleClientDisconnect(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.done {
		return
	}
	pos, ok := s.posByClient[clientID]
	if !ok {
		return
	}

	s.log.WithField("position", pos).Info("player disconnected, ending game")
	s.broadcast("player_left", protocol.PlayerLeftPayload{PlayerID: string(s.players[pos].ID)})
	s.finish("")
}

// callBet validates and records a bet call. Lock held.
func (s *Session) callBet(pos int, betType shared.BetType) {
	player := s.players[pos]
	clientID := s.clientByPos[pos]

	allowed := false
	switch betType.Family() {
	case shared.FamilyTruco:
		allowed = CanCallTrucoBet(s.betting, betType)
	case shared.FamilyEnvido:
		allowed = CanCallEnvidoBet(s.betting, betType, s.phase, s.config)
	case shared.FamilyFlor:
		allowed = CanCallFlorBet(s.betting, betType, s.phase, HasFlor(s.dealtHands[pos]), s.config)
	}
	if !allowed {
		s.sendError(clientID, fmt.Sprintf("You cannot call %s now.", betType))
		return
	}

	// Contra Flor answers the pending Flor by raising it, keeping the
	// chain's only-last-pending invariant.
	if betType == shared.BetContraFlor {
		next, _, err := s.betting.RespondToLast(shared.FamilyFlor, shared.ResponseRaise, player.ID)
		if err != nil {
			s.sendError(clientID, "No Flor to counter.")
			return
		}
		s.betting = next
	}

	points := 0
	switch betType.Family() {
	case shared.FamilyTruco:
		points = shared.TrucoPoints(betType)
	case shared.FamilyEnvido:
		points = shared.EnvidoPoints(betType)
	case shared.FamilyFlor:
		points = florAcceptPoints(betType)
	}

	s.betting = s.betting.WithBet(shared.NewBet(betType, player.ID, player.TeamID, points))
	s.log.WithFields(logrus.Fields{"position": pos, "bet": betType}).Info("bet called")
	s.broadcast("bet_called", protocol.BetCalledPayload{
		PlayerID: string(player.ID),
		Position: pos,
		BetType:  string(betType),
	})
}

// respondBet validates and applies a response to the pending bet of the
// given family. Lock held.
func (s *Session) respondBet(pos int, betType shared.BetType, response shared.BetResponse) {
	player := s.players[pos]
	clientID := s.clientByPos[pos]

	switch response {
	case shared.ResponseAccept, shared.ResponseDecline, shared.ResponseRaise:
	default:
		s.sendError(clientID, "Unknown bet response.")
		return
	}

	family := betType.Family()
	last, ok := s.betting.LastBet(family)
	if !ok {
		s.sendError(clientID, "There is no bet to respond to.")
		return
	}
	if !CanRespondToBet(s.betting, betType, player.ID, last.CallerID) {
		s.sendError(clientID, "You cannot respond to this bet.")
		return
	}
	if player.TeamID == last.CallerTeamID {
		s.sendError(clientID, "Your own side called this bet.")
		return
	}

	next, responded, err := s.betting.RespondToLast(family, response, player.ID)
	if err != nil {
		s.sendError(clientID, "There is no pending bet.")
		return
	}
	s.betting = next

	s.log.WithFields(logrus.Fields{"position": pos, "bet": responded.Type, "response": response}).Info("bet answered")
	s.broadcast("bet_response", protocol.BetResponsePayload{
		PlayerID: string(player.ID),
		BetType:  string(responded.Type),
		Response: string(response),
	})

	switch response {
	case shared.ResponseAccept:
		s.applyAcceptedBet(responded)
	case shared.ResponseDecline:
		s.applyDeclinedBet(responded)
	case shared.ResponseRaise:
		// The raiser follows up with call_bet for the higher rung.
	}
}

// applyAcceptedBet settles the consequences of an accepted bet. Lock held.
func (s *Session) applyAcceptedBet(bet shared.Bet) {
	switch bet.Type.Family() {
	case shared.FamilyTruco:
		value := shared.TrucoPoints(bet.Type)
		s.betting = s.betting.WithTrucoValue(value)
		s.hand = s.hand.WithPoints(value)

	case shared.FamilyEnvido:
		s.resolveEnvidoShowdown(bet)

	case shared.FamilyFlor:
		s.resolveFlorShowdown(bet)
	}
}

// applyDeclinedBet awards decline points to the calling side. A declined
// Truco-family bet also ends the hand. Lock held.
func (s *Session) applyDeclinedBet(bet shared.Bet) {
	points := DeclinePoints(bet.Type, s.betting)
	if points == -1 {
		points = s.faltaPoints()
	}

	switch bet.Type.Family() {
	case shared.FamilyTruco:
		s.endHand(bet.CallerTeamID, points)

	case shared.FamilyEnvido:
		s.betting = s.betting.WithEnvidoResolved()
		s.awardPoints(bet.CallerTeamID, points)
		s.broadcast("envido_result", protocol.EnvidoResultPayload{
			WinnerTeamID: string(bet.CallerTeamID),
			Points:       points,
			Declined:     true,
		})
		s.checkGameOver()

	case shared.FamilyFlor:
		s.betting = s.betting.WithFlorResolved()
		s.awardPoints(bet.CallerTeamID, points)
		s.broadcast("flor_result", protocol.FlorResultPayload{
			WinnerTeamID: string(bet.CallerTeamID),
			Points:       points,
			Declined:     true,
		})
		s.checkGameOver()
	}
}

// resolveEnvidoShowdown compares the teams' best Envido scores and awards
// the chain. Lock held.
func (s *Session) resolveEnvidoShowdown(bet shared.Bet) {
	score1 := s.bestTeamEnvido(shared.Team1ID)
	score2 := s.bestTeamEnvido(shared.Team2ID)
	winner := EnvidoWinner(score1, score2, bet.CallerTeamID)

	points := s.betting.EnvidoChainPoints()
	if bet.Type == shared.BetFaltaEnvido {
		points = s.faltaPoints()
	}

	s.betting = s.betting.WithEnvidoResolved()
	s.awardPoints(winner, points)
	s.broadcast("envido_result", protocol.EnvidoResultPayload{
		Team1Score:   score1,
		Team2Score:   score2,
		WinnerTeamID: string(winner),
		Points:       points,
	})
	s.checkGameOver()
}

// resolveFlorShowdown compares the teams' best Flor scores. Lock held.
func (s *Session) resolveFlorShowdown(bet shared.Bet) {
	score1, has1 := s.bestTeamFlor(shared.Team1ID)
	score2, has2 := s.bestTeamFlor(shared.Team2ID)
	winner := FlorWinner(score1, has1, score2, has2, bet.CallerTeamID)
	if winner == "" {
		// Cannot happen: the caller held Flor to open the chain.
		s.betting = s.betting.WithFlorResolved()
		return
	}

	points := florAcceptPoints(bet.Type)
	if points == -1 {
		points = s.faltaPoints()
	}

	s.betting = s.betting.WithFlorResolved()
	s.awardPoints(winner, points)
	s.broadcast("flor_result", protocol.FlorResultPayload{
		WinnerTeamID: string(winner),
		Points:       points,
	})
	s.checkGameOver()
}

// playCard validates a card play, advances the trick, and resolves the
// trick and hand when due. Lock held.
func (s *Session) playCard(pos, cardIndex int) {
	clientID := s.clientByPos[pos]

	if s.phase != shared.PhaseBetting && s.phase != shared.PhasePlaying {
		s.sendError(clientID, "Cards cannot be played right now.")
		return
	}
	if s.betting.HasPendingBet() {
		s.sendError(clientID, "Respond to the pending bet first.")
		return
	}
	if pos != s.currentPos {
		s.sendError(clientID, "It is not your turn.")
		return
	}

	player, card, err := s.players[pos].WithoutCard(cardIndex)
	if err != nil {
		s.sendError(clientID, "That card is not in your hand.")
		return
	}
	s.players[pos] = player

	// The first card of the hand closes the Envido/Flor window.
	s.phase = shared.PhasePlaying

	trick := s.hand.Tricks[s.hand.CurrentTrick].WithCard(shared.PlayedCard{
		PlayerID: player.ID,
		Card:     card,
		Position: pos,
	})
	s.hand = s.hand.WithCurrentTrick(trick)

	s.broadcast("card_played", protocol.CardPlayedPayload{
		PlayerID: string(player.ID),
		Position: pos,
		Card:     card,
	})

	if !trick.Complete(s.config.NumPlayers) {
		s.currentPos = NextPlayer(pos, s.config.NumPlayers)
		s.announceTurn()
		return
	}

	positionToTeam := PositionToTeam(s.players)
	result, winnerPos, err := ResolveTrick(trick, positionToTeam)
	if err != nil {
		s.log.WithError(err).Error("trick resolution failed")
		s.finish("")
		return
	}
	s.hand = s.hand.WithCurrentTrick(trick.WithResult(result, winnerPos))
	s.broadcast("trick_end", protocol.TrickEndPayload{
		TrickNumber:    trick.Number,
		Result:         string(result),
		WinnerPosition: winnerPos,
	})

	if winner := DetermineHandWinner(s.hand, positionToTeam); winner != "" {
		s.endHand(winner, s.hand.PointsAtStake)
		return
	}

	if !NeedsAnotherTrick(s.hand, positionToTeam) {
		// All tricks resolved with no winner. The rules engine decides
		// every complete hand, so this is unreachable; fail loudly.
		s.log.Error("hand complete without a winner")
		s.finish("")
		return
	}

	s.hand = s.hand.WithNextTrick()
	leader, err := NextTrickLeader(s.hand, s.handLeader)
	if err != nil {
		s.log.WithError(err).Error("leader lookup failed")
		s.finish("")
		return
	}
	s.handLeader = leader
	s.currentPos = leader
	s.announceTurn()
}

// endHand awards the stake, reports scores, and starts the next hand or
// ends the game. Lock held.
func (s *Session) endHand(winner shared.TeamID, points int) {
	s.phase = shared.PhaseScoring
	if winner != "" && points > 0 {
		s.awardPoints(winner, points)
	}

	s.broadcast("hand_end", protocol.HandEndPayload{
		WinnerTeamID: string(winner),
		Points:       points,
		TeamScores:   s.teamScores(),
	})

	if s.checkGameOver() {
		return
	}

	s.players = RotateDealer(s.players, s.dealerPos)
	s.dealerPos = NextPlayer(s.dealerPos, s.config.NumPlayers)
	s.handNumber++
	s.startHand()
}

// checkGameOver finishes the match when a team reached the winning score.
// Lock held.
func (s *Session) checkGameOver() bool {
	for _, t := range s.teams {
		if t.HasWon(s.config.WinningScore) {
			s.finish(t.ID)
			return true
		}
	}
	return false
}

// finish marks the session done and broadcasts the result. Lock held.
func (s *Session) finish(winner shared.TeamID) {
	if s.done {
		return
	}
	s.done = true
	s.phase = shared.PhaseFinished
	s.log.WithField("winner", winner).Info("game over")
	s.broadcast("game_over", protocol.GameOverPayload{
		WinnerTeamID: string(winner),
		TeamScores:   s.teamScores(),
	})
}

func (s *Session) bestTeamEnvido(teamID shared.TeamID) int {
	best := 0
	for _, p := range TeamPlayers(s.players, teamID) {
		if score := EnvidoScore(s.dealtHands[p.Position]); score > best {
			best = score
		}
	}
	return best
}

func (s *Session) bestTeamFlor(teamID shared.TeamID) (int, bool) {
	best, found := 0, false
	for _, p := range TeamPlayers(s.players, teamID) {
		if score, ok := FlorScore(s.dealtHands[p.Position]); ok {
			found = true
			if score > best {
				best = score
			}
		}
	}
	return best, found
}

func (s *Session) faltaPoints() int {
	score1, score2 := 0, 0
	for _, t := range s.teams {
		switch t.ID {
		case shared.Team1ID:
			score1 = t.Score
		case shared.Team2ID:
			score2 = t.Score
		}
	}
	return FaltaEnvidoPoints(score1, score2, s.config)
}

func (s *Session) awardPoints(teamID shared.TeamID, points int) {
	for i, t := range s.teams {
		if t.ID == teamID {
			s.teams[i] = t.AddPoints(points)
			return
		}
	}
}

func (s *Session) teamScores() map[string]int {
	scores := make(map[string]int, len(s.teams))
	for _, t := range s.teams {
		scores[string(t.ID)] = t.Score
	}
	return scores
}

func (s *Session) announceTurn() {
	s.broadcast("your_turn", protocol.YourTurnPayload{
		Position: s.currentPos,
		PlayerID: string(s.players[s.currentPos].ID),
	})
}

func (s *Session) broadcast(msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		s.log.WithError(err).Error("marshal broadcast failed")
		return
	}
	for _, clientID := range s.clientByPos {
		s.send(clientID, msg)
	}
}

func (s *Session) sendTo(pos int, msgType string, payload interface{}) {
	msg, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		s.log.WithError(err).Error("marshal message failed")
		return
	}
	s.send(s.clientByPos[pos], msg)
}

func (s *Session) sendError(clientID, text string) {
	msg, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: text})
	if err != nil {
		return
	}
	s.send(clientID, msg)
}

// florAcceptPoints is the value of an accepted Flor-family bet. Contra
// Flor al Resto returns -1: it is worth the Falta-Envido remainder.
func florAcceptPoints(betType shared.BetType) int {
	switch betType {
	case shared.BetFlor:
		return 4
	case shared.BetContraFlor:
		return 6
	case shared.BetContraFlorResto:
		return -1
	}
	return 0
}
