// broadcast/broadcast.go
package broadcast

import (
	"errors"

	"github.com/wfunc/partyserver/room"
	"github.com/wfunc/partyserver/session"
)

var (
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
)

// Broadcaster fans events out of the core: to everyone in a room or to
// one connection (private payloads such as the drawer's word).
type Broadcaster interface {
	BroadcastToRoom(roomCode, event string, data interface{}) error
	Unicast(sessionID, event string, data interface{}) error
}

// RoomBroadcaster resolves room membership through the registry and
// delivers through the session manager.
type RoomBroadcaster struct {
	roomManager    *room.Manager
	sessionManager *session.Manager
}

func NewRoomBroadcaster(roomManager *room.Manager, sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		roomManager:    roomManager,
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(roomCode, event string, data interface{}) error {
	rm, exists := b.roomManager.GetRoom(roomCode)
	if !exists {
		return ErrRoomNotFound
	}

	for _, id := range rm.MemberIDs() {
		sess, ok := b.sessionManager.Get(id)
		if !ok {
			continue
		}
		if err := sess.Send(event, data); err != nil {
			// A dead connection is cleaned up by its own read loop.
			continue
		}
	}
	return nil
}

func (b *RoomBroadcaster) Unicast(sessionID, event string, data interface{}) error {
	sess, ok := b.sessionManager.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	return sess.Send(event, data)
}
