package rpc

import (
	"net"
	"net/rpc"

	"github.com/wfunc/partyserver/logger"
	"github.com/wfunc/partyserver/models"
	"github.com/wfunc/partyserver/room"
	"github.com/wfunc/partyserver/services"
	"github.com/wfunc/partyserver/session"
)

// Server manages the RPC listener for ops tooling.
type Server struct {
	listener net.Listener
	address  string
}

func NewServer(addr string) (*Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &Server{
		listener: listener,
		address:  addr,
	}, nil
}

// Start begins listening for RPC requests.
func (s *Server) Start() {
	logger.Log.Infof("RPC server listening on %s", s.address)
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if _, ok := err.(*net.OpError); ok {
				logger.Log.Info("RPC server listener closed.")
				return
			}
			logger.Log.Errorf("RPC server accept error: %v", err)
			continue
		}
		go rpc.ServeConn(conn)
	}
}

// Stop closes the RPC listener.
func (s *Server) Stop() {
	if s.listener != nil {
		logger.Log.Info("Stopping RPC server.")
		s.listener.Close()
	}
}

// StatsService exposes recorded player stats and live server counters
// over net/rpc. Methods follow the net/rpc signature rules.
type StatsService struct {
	scoreService   *services.ScoreService
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewStatsService(scoreService *services.ScoreService, roomManager *room.Manager, sessionManager *session.Manager) *StatsService {
	return &StatsService{
		scoreService:   scoreService,
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

type PlayerStatsArgs struct {
	Name string
}

type PlayerStatsReply struct {
	Stats *models.PlayerStats
}

func (s *StatsService) GetPlayerStats(args *PlayerStatsArgs, reply *PlayerStatsReply) error {
	stats, err := s.scoreService.PlayerStats(args.Name)
	if err != nil {
		return err
	}
	reply.Stats = stats
	return nil
}

type ServerStatusArgs struct{}

type ServerStatusReply struct {
	Sessions    int
	Rooms       int
	RoomsByType map[string]int
}

func (s *StatsService) GetServerStatus(args *ServerStatusArgs, reply *ServerStatusReply) error {
	reply.Sessions = s.sessionManager.Count()
	reply.Rooms = s.roomManager.Count()
	reply.RoomsByType = make(map[string]int)
	for gameType, count := range s.roomManager.CountByType() {
		reply.RoomsByType[string(gameType)] = count
	}
	return nil
}
