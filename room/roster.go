package room

import "fmt"

// Player is one roster entry. A player belongs to exactly one room and
// is owned by it; the entry is deleted outright on disconnect.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Score     int    `json:"score"`
	Connected bool   `json:"connected"`
}

// Roster is the ordered collection of players in one room. It is not
// safe for concurrent use on its own; every call happens under the
// owning room's lock.
type Roster struct {
	order   []string
	players map[string]*Player
}

func NewRoster() *Roster {
	return &Roster{
		players: make(map[string]*Player),
	}
}

func (r *Roster) Len() int {
	return len(r.players)
}

// Add inserts a player with score 0. An empty name gets a default one
// derived from the join order. Adding an existing id is a no-op.
func (r *Roster) Add(id, name string) *Player {
	if p, exists := r.players[id]; exists {
		return p
	}
	if name == "" {
		name = fmt.Sprintf("Player_%d", len(r.players)+1)
	}
	p := &Player{ID: id, Name: name, Connected: true}
	r.players[id] = p
	r.order = append(r.order, id)
	return p
}

// Remove deletes the entry. Removing an absent id is a no-op so that
// duplicate disconnect delivery stays idempotent.
func (r *Roster) Remove(id string) bool {
	if _, exists := r.players[id]; !exists {
		return false
	}
	delete(r.players, id)
	for i, pid := range r.order {
		if pid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

func (r *Roster) Get(id string) (*Player, bool) {
	p, exists := r.players[id]
	return p, exists
}

func (r *Roster) Has(id string) bool {
	_, exists := r.players[id]
	return exists
}

// FirstConnected returns the earliest-joined connected player, or ""
// when nobody qualifies. Host election relies on this ordering.
func (r *Roster) FirstConnected() string {
	for _, id := range r.order {
		if p := r.players[id]; p != nil && p.Connected {
			return id
		}
	}
	return ""
}

// IDs returns the player ids in join order.
func (r *Roster) IDs() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Players returns copies of the entries in join order, safe to hand to
// snapshots after the room lock is released.
func (r *Roster) Players() []Player {
	out := make([]Player, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.players[id])
	}
	return out
}
