package broadcast

import (
	"net"
	"sync"
	"testing"

	"github.com/wfunc/partyserver/network"
	"github.com/wfunc/partyserver/room"
	"github.com/wfunc/partyserver/session"
)

// RecordingConnection captures every event sent through it.
type RecordingConnection struct {
	mu     sync.Mutex
	events []string
}

func (c *RecordingConnection) Send(event string, data interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, event)
	return nil
}

func (c *RecordingConnection) ReadEnvelope() (*network.Envelope, error) { return nil, nil }
func (c *RecordingConnection) Close() error                             { return nil }
func (c *RecordingConnection) RemoteAddr() net.Addr                     { return &net.TCPAddr{} }

func (c *RecordingConnection) Events() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.events...)
}

func TestRoomBroadcaster_BroadcastReachesAllMembers(t *testing.T) {
	roomManager := room.NewManager(4, map[room.GameType]int{room.DrawGuess: 10})
	sessionManager := session.NewManager()
	b := NewRoomBroadcaster(roomManager, sessionManager)

	rm, err := roomManager.CreateRoom(room.DrawGuess)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}

	conns := make(map[string]*RecordingConnection)
	for _, id := range []string{"s1", "s2", "s3"} {
		conn := &RecordingConnection{}
		conns[id] = conn
		sessionManager.Add(session.NewSession(id, conn))
		if _, err := rm.AddPlayer(id, ""); err != nil {
			t.Fatalf("AddPlayer failed: %v", err)
		}
	}

	if err := b.BroadcastToRoom(rm.Code, "player_joined", nil); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	for id, conn := range conns {
		events := conn.Events()
		if len(events) != 1 || events[0] != "player_joined" {
			t.Errorf("session %s: expected one player_joined event, got %v", id, events)
		}
	}
}

func TestRoomBroadcaster_UnknownRoom(t *testing.T) {
	b := NewRoomBroadcaster(room.NewManager(4, nil), session.NewManager())
	if err := b.BroadcastToRoom("NOPE", "x", nil); err != ErrRoomNotFound {
		t.Fatalf("expected ErrRoomNotFound, got %v", err)
	}
}

func TestRoomBroadcaster_Unicast(t *testing.T) {
	sessionManager := session.NewManager()
	b := NewRoomBroadcaster(room.NewManager(4, nil), sessionManager)

	conn := &RecordingConnection{}
	sessionManager.Add(session.NewSession("s1", conn))

	if err := b.Unicast("s1", "word_to_draw", nil); err != nil {
		t.Fatalf("Unicast failed: %v", err)
	}
	if events := conn.Events(); len(events) != 1 || events[0] != "word_to_draw" {
		t.Fatalf("expected one word_to_draw event, got %v", events)
	}

	if err := b.Unicast("ghost", "x", nil); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
