// room/manager.go
package room

import (
	"math/rand"
	"strings"
	"sync"
	"time"
)

const codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Manager is the process-wide registry mapping room codes to sessions.
// Its lock is short-lived and independent of any room's lock, so
// creating or destroying one room never serializes traffic in others.
type Manager struct {
	rooms      map[string]*Room
	codeLength int
	capacities map[GameType]int
	rng        *rand.Rand
	mutex      sync.RWMutex
}

func NewManager(codeLength int, capacities map[GameType]int) *Manager {
	if codeLength <= 0 {
		codeLength = 4
	}
	return &Manager{
		rooms:      make(map[string]*Room),
		codeLength: codeLength,
		capacities: capacities,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateRoom generates a free uppercase code, resampling on collision,
// and registers an empty lobby-phase session under it.
func (m *Manager) CreateRoom(gameType GameType) (*Room, error) {
	capacity, ok := m.capacities[gameType]
	if !ok {
		return nil, ErrUnknownGameType
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var code string
	for {
		code = m.generateCode()
		if _, taken := m.rooms[code]; !taken {
			break
		}
	}

	room, err := NewRoom(code, gameType, capacity)
	if err != nil {
		return nil, err
	}
	m.rooms[code] = room
	return room, nil
}

// GetRoom resolves a case-normalized room code.
func (m *Manager) GetRoom(code string) (*Room, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	room, exists := m.rooms[strings.ToUpper(code)]
	return room, exists
}

// RemoveRoom drops the code from the registry. Idempotent; called when
// the roster transitions to empty and after terminal boards.
func (m *Manager) RemoveRoom(code string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.rooms, strings.ToUpper(code))
}

// Count returns the number of live rooms.
func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms)
}

// CountByType returns live room counts per game type, for metrics.
func (m *Manager) CountByType() map[GameType]int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	counts := make(map[GameType]int)
	for _, r := range m.rooms {
		counts[r.GameType]++
	}
	return counts
}

func (m *Manager) generateCode() string {
	b := make([]byte, m.codeLength)
	for i := range b {
		b[i] = codeCharset[m.rng.Intn(len(codeCharset))]
	}
	return string(b)
}
