// server/server.go
package server

import (
	"encoding/json"
	"net/http"
	"net/rpc"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/wfunc/partyserver/broadcast"
	"github.com/wfunc/partyserver/config"
	"github.com/wfunc/partyserver/logger"
	"github.com/wfunc/partyserver/monitor"
	"github.com/wfunc/partyserver/network"
	"github.com/wfunc/partyserver/persistence"
	"github.com/wfunc/partyserver/room"
	partyrpc "github.com/wfunc/partyserver/rpc"
	"github.com/wfunc/partyserver/services"
	"github.com/wfunc/partyserver/session"
	"github.com/wfunc/partyserver/state"
)

type GameServer struct {
	cfg            *config.Config
	upgrader       websocket.Upgrader
	roomManager    *room.Manager
	sessionManager *session.Manager
	scoreService   *services.ScoreService
	broadcaster    broadcast.Broadcaster
	rpcServer      *partyrpc.Server
	monitor        *monitor.Monitor
	shutdownChan   chan struct{}
}

func NewGameServer(cfg *config.Config, db persistence.Database) *GameServer {
	s := &GameServer{
		cfg: cfg,
		roomManager: room.NewManager(cfg.Room.CodeLength, map[room.GameType]int{
			room.TicTacToe: cfg.Room.TicTacToeCapacity,
			room.DrawGuess: cfg.Room.DrawGuessCapacity,
		}),
		sessionManager: session.NewManager(),
		scoreService:   services.NewScoreService(db),
		shutdownChan:   make(chan struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // browsers connect from any origin
			},
		},
	}

	s.broadcaster = broadcast.NewRoomBroadcaster(s.roomManager, s.sessionManager)
	return s
}

// Start wires the RPC and metrics listeners and blocks serving /ws.
func (s *GameServer) Start() error {
	s.monitor = monitor.NewMonitor("partyserver")
	s.monitor.StartServer(s.cfg.Server.MetricsAddress)

	rpcServer, err := partyrpc.NewServer(s.cfg.Server.RPCAddress)
	if err != nil {
		return err
	}
	s.rpcServer = rpcServer
	rpc.Register(partyrpc.NewStatsService(s.scoreService, s.roomManager, s.sessionManager))
	go s.rpcServer.Start()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logger.Log.Infof("Game server listening on %s", s.cfg.Server.HTTPAddress)
	return http.ListenAndServe(s.cfg.Server.HTTPAddress, mux)
}

func (s *GameServer) Shutdown() {
	close(s.shutdownChan)
	if s.rpcServer != nil {
		s.rpcServer.Stop()
	}
}

func (s *GameServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Infof("Failed to upgrade connection: %v", err)
		return
	}
	s.handleConnection(network.NewWSConnection(conn))
}

func (s *GameServer) handleConnection(conn network.Connection) {
	sess := session.NewSession(uuid.New().String(), conn)
	s.sessionManager.Add(sess)
	s.incOnlinePlayers()

	logger.Log.Infof("New connection from %s, session ID: %s", conn.RemoteAddr(), sess.ID)

	defer func() {
		logger.Log.Infof("Connection closed, session ID: %s", sess.ID)
		s.handleDisconnect(sess)
		s.sessionManager.Remove(sess.ID)
		s.decOnlinePlayers()
		conn.Close()
	}()

	for {
		select {
		case <-s.shutdownChan:
			return
		default:
			env, err := conn.ReadEnvelope()
			if err != nil {
				return
			}
			s.handleEvent(sess, env)
		}
	}
}

// handleEvent is the error boundary: rule violations go back to the
// originator as an error event, and an unexpected panic is logged and
// reported generically. Room methods validate before they mutate, so a
// failed event leaves the session exactly as it was.
func (s *GameServer) handleEvent(sess *session.Session, env *network.Envelope) {
	start := time.Now()
	s.incEventsReceived()

	defer func() {
		if r := recover(); r != nil {
			logger.Log.Errorf("Panic handling %s from session %s: %v", env.Event, sess.ID, r)
			s.sendError(sess, "internal server error")
		}
		s.observeEventLatency(time.Since(start))
	}()

	switch env.Event {
	case network.EventCreateGame:
		s.handleCreateGame(sess, env.Data)
	case network.EventJoinGame:
		s.handleJoinGame(sess, env.Data)
	case network.EventStartGame:
		s.handleStartGame(sess, env.Data)
	case network.EventMakeMove:
		s.handleMakeMove(sess, env.Data)
	case network.EventDraw:
		s.handleDraw(sess, env.Data)
	case network.EventClearCanvas:
		s.handleClearCanvas(sess, env.Data)
	case network.EventGuess:
		s.handleGuess(sess, env.Data)
	default:
		logger.Log.Infof("Unknown event %q from session %s", env.Event, sess.ID)
		s.sendError(sess, "unknown event")
	}
}

func (s *GameServer) handleCreateGame(sess *session.Session, data json.RawMessage) {
	var payload network.CreateGamePayload
	if !s.decode(sess, data, &payload) {
		return
	}
	if sess.RoomCode() != "" {
		s.sendError(sess, "already in a room")
		return
	}

	gameType := room.GameType(payload.GameType)
	if gameType == "" {
		gameType = room.DrawGuess
	}

	rm, err := s.roomManager.CreateRoom(gameType)
	if err != nil {
		s.sendError(sess, err.Error())
		return
	}

	if _, err := rm.AddPlayer(sess.ID, payload.PlayerName); err != nil {
		s.roomManager.RemoveRoom(rm.Code)
		s.sendError(sess, err.Error())
		return
	}
	sess.SetRoomCode(rm.Code)
	s.updateRoomGauges()

	logger.Log.Infof("Session %s created room %s (%s)", sess.ID, rm.Code, rm.GameType)

	s.unicast(sess, network.EventGameCreated, map[string]interface{}{
		"room":      rm.Code,
		"player_id": sess.ID,
		"is_host":   true,
		"game_type": string(rm.GameType),
	})
}

func (s *GameServer) handleJoinGame(sess *session.Session, data json.RawMessage) {
	var payload network.JoinGamePayload
	if !s.decode(sess, data, &payload) {
		return
	}
	if sess.RoomCode() != "" {
		s.sendError(sess, "already in a room")
		return
	}

	rm, exists := s.roomManager.GetRoom(payload.Room)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound.Error())
		return
	}

	res, err := rm.AddPlayer(sess.ID, payload.PlayerName)
	if err != nil {
		s.sendError(sess, err.Error())
		return
	}
	sess.SetRoomCode(rm.Code)

	logger.Log.Infof("Session %s joined room %s", sess.ID, rm.Code)

	s.unicast(sess, network.EventGameJoined, map[string]interface{}{
		"room":      rm.Code,
		"player_id": sess.ID,
		"is_host":   res.IsHost,
	})
	s.broadcast(rm.Code, network.EventPlayerJoined, map[string]interface{}{
		"game_state": res.State,
	})
}

func (s *GameServer) handleStartGame(sess *session.Session, data json.RawMessage) {
	rm, ok := s.resolveRoom(sess, data)
	if !ok {
		return
	}

	res, err := rm.StartGame(sess.ID)
	if err != nil {
		s.sendError(sess, err.Error())
		return
	}

	logger.Log.Infof("Game started in room %s", rm.Code)

	s.broadcast(rm.Code, network.EventGameStarted, map[string]interface{}{
		"game_state": res.State,
	})
	if res.DrawerID != "" {
		s.sendWord(res.DrawerID, res.Word)
	}
}

func (s *GameServer) handleMakeMove(sess *session.Session, data json.RawMessage) {
	var payload network.MakeMovePayload
	if !s.decode(sess, data, &payload) {
		return
	}
	rm, ok := s.lookupRoom(sess, payload.Room)
	if !ok {
		return
	}

	res, err := rm.AttemptMove(sess.ID, payload.Row, payload.Col)
	if err != nil {
		s.sendError(sess, err.Error())
		return
	}

	s.broadcast(rm.Code, network.EventBoardUpdate, map[string]interface{}{
		"board":          res.Board,
		"next_player_id": res.NextPlayerID,
		"game_state":     res.State,
	})

	if res.Finished {
		s.broadcast(rm.Code, network.EventGameOver, map[string]interface{}{
			"winner_id":   res.WinnerID,
			"winner_mark": res.WinnerMark,
			"draw":        res.Draw,
			"game_state":  res.State,
		})
		s.scoreService.RecordMatch(res.State, res.WinnerID, res.Draw, rm.CreatedAt)
		s.teardownRoom(rm)
	}
}

func (s *GameServer) handleDraw(sess *session.Session, data json.RawMessage) {
	var payload network.DrawPayload
	if !s.decode(sess, data, &payload) {
		return
	}
	rm, ok := s.lookupRoom(sess, payload.Room)
	if !ok {
		return
	}

	// Strokes are a pure relay gated on the drawer role; no state moves.
	if !rm.CanDraw(sess.ID) {
		logger.Log.Debugf("Ignoring draw from non-drawer %s in room %s", sess.ID, rm.Code)
		return
	}

	s.broadcast(rm.Code, network.EventDrawData, map[string]interface{}{
		"points":    payload.Points,
		"color":     payload.Color,
		"thickness": payload.Thickness,
	})
}

func (s *GameServer) handleClearCanvas(sess *session.Session, data json.RawMessage) {
	rm, ok := s.resolveRoom(sess, data)
	if !ok {
		return
	}
	if !rm.CanDraw(sess.ID) {
		return
	}
	s.broadcast(rm.Code, network.EventClearCanvas, nil)
}

func (s *GameServer) handleGuess(sess *session.Session, data json.RawMessage) {
	var payload network.GuessPayload
	if !s.decode(sess, data, &payload) {
		return
	}
	rm, ok := s.lookupRoom(sess, payload.Room)
	if !ok {
		return
	}

	res, err := rm.SubmitGuess(sess.ID, payload.Guess)
	if err != nil {
		s.sendError(sess, err.Error())
		return
	}
	if !res.Correct {
		// Misses and stale guesses pass silently.
		return
	}

	logger.Log.Infof("Correct guess by %s in room %s", sess.ID, rm.Code)

	s.broadcast(rm.Code, network.EventCorrectGuess, map[string]interface{}{
		"player_id":  res.GuesserID,
		"game_state": res.State,
	})
	if res.DrawerID != "" {
		s.sendWord(res.DrawerID, res.Word)
	}
}

// handleDisconnect runs for every closed connection. The session's room
// code is the O(1) index back to the room; no scan over the registry.
func (s *GameServer) handleDisconnect(sess *session.Session) {
	code := sess.RoomCode()
	if code == "" {
		return
	}
	rm, exists := s.roomManager.GetRoom(code)
	if !exists {
		return
	}

	prior := rm.Snapshot()
	res := rm.RemovePlayer(sess.ID)
	if !res.Removed {
		return
	}
	sess.SetRoomCode("")

	if res.Empty {
		s.roomManager.RemoveRoom(code)
		s.updateRoomGauges()
		logger.Log.Infof("Room %s destroyed (last player left)", code)

		if prior.Phase == string(state.PhaseInProgress) {
			s.scoreService.RecordMatch(prior, "", false, rm.CreatedAt)
		}
		return
	}

	s.broadcast(code, network.EventPlayerDisconnected, map[string]interface{}{
		"player_id":  sess.ID,
		"game_state": res.State,
	})

	// A mid-game disconnect ends the turn variant; the match has no winner.
	if res.Finished {
		s.broadcast(code, network.EventGameOver, map[string]interface{}{
			"winner_id":  "",
			"draw":       false,
			"game_state": res.State,
		})
		s.scoreService.RecordMatch(res.State, "", false, rm.CreatedAt)
		s.teardownRoom(rm)
		return
	}

	if res.DrawerID != "" {
		s.sendWord(res.DrawerID, res.Word)
	}
}

// teardownRoom detaches every member and drops the code after a
// terminal board. The code becomes free for reuse immediately.
func (s *GameServer) teardownRoom(rm *room.Room) {
	for _, id := range rm.MemberIDs() {
		if member, ok := s.sessionManager.Get(id); ok {
			member.SetRoomCode("")
		}
	}
	s.roomManager.RemoveRoom(rm.Code)
	s.updateRoomGauges()
	logger.Log.Infof("Room %s torn down after game over", rm.Code)
}

// resolveRoom handles events whose payload is just {room}; an empty
// room field falls back to the session's current room.
func (s *GameServer) resolveRoom(sess *session.Session, data json.RawMessage) (*room.Room, bool) {
	var payload network.RoomPayload
	if !s.decode(sess, data, &payload) {
		return nil, false
	}
	return s.lookupRoom(sess, payload.Room)
}

func (s *GameServer) lookupRoom(sess *session.Session, code string) (*room.Room, bool) {
	if code == "" {
		code = sess.RoomCode()
	}
	rm, exists := s.roomManager.GetRoom(code)
	if !exists {
		s.sendError(sess, room.ErrRoomNotFound.Error())
		return nil, false
	}
	return rm, true
}

func (s *GameServer) decode(sess *session.Session, data json.RawMessage, v interface{}) bool {
	if len(data) == 0 {
		return true
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.sendError(sess, "malformed payload")
		return false
	}
	return true
}

func (s *GameServer) sendWord(drawerID, word string) {
	err := s.broadcaster.Unicast(drawerID, network.EventWordToDraw, map[string]interface{}{
		"word": word,
	})
	if err != nil {
		logger.Log.Warnf("Failed to deliver word to drawer %s: %v", drawerID, err)
	}
}

func (s *GameServer) sendError(sess *session.Session, message string) {
	_ = sess.Send(network.EventError, network.ErrorPayload{Message: message})
}

func (s *GameServer) unicast(sess *session.Session, event string, data interface{}) {
	if err := sess.Send(event, data); err != nil {
		logger.Log.Warnf("Failed to send %s to session %s: %v", event, sess.ID, err)
	}
}

func (s *GameServer) broadcast(roomCode, event string, data interface{}) {
	if err := s.broadcaster.BroadcastToRoom(roomCode, event, data); err != nil {
		logger.Log.Warnf("Failed to broadcast %s to room %s: %v", event, roomCode, err)
	}
}

// Metric helpers tolerate a nil monitor so the dispatch logic is
// testable without registering prometheus collectors.
func (s *GameServer) incOnlinePlayers() {
	if s.monitor != nil {
		s.monitor.IncOnlinePlayers()
	}
}

func (s *GameServer) decOnlinePlayers() {
	if s.monitor != nil {
		s.monitor.DecOnlinePlayers()
	}
}

func (s *GameServer) incEventsReceived() {
	if s.monitor != nil {
		s.monitor.IncEventsReceived()
	}
}

func (s *GameServer) observeEventLatency(d time.Duration) {
	if s.monitor != nil {
		s.monitor.ObserveEventLatency(d)
	}
}

func (s *GameServer) updateRoomGauges() {
	if s.monitor == nil {
		return
	}
	counts := s.roomManager.CountByType()
	for _, gameType := range []room.GameType{room.TicTacToe, room.DrawGuess} {
		s.monitor.SetActiveRooms(string(gameType), counts[gameType])
	}
}
