// room/room.go
package room

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/wfunc/partyserver/board"
	"github.com/wfunc/partyserver/state"
	"github.com/wfunc/partyserver/wordbank"
)

// GameType selects which rule set a room runs.
type GameType string

const (
	TicTacToe GameType = "tictactoe"
	DrawGuess GameType = "drawguess"
)

// Team identifies one side of the draw/guess game.
type Team string

const (
	TeamA Team = "A"
	TeamB Team = "B"
)

func (t Team) Other() Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}

// Room is one live game session. Every state-mutating operation takes
// the room mutex, so concurrent joins, moves, guesses and disconnects
// serialize into some sequential order. Nothing blocks while the lock
// is held; broadcasting happens in the caller after the method returns.
type Room struct {
	Code       string
	GameType   GameType
	MaxPlayers int
	CreatedAt  time.Time

	roster *Roster
	hostID string
	phase  *state.Machine

	// turn variant
	grid      *board.Board
	marks     map[string]board.Mark
	markOwner string

	// team variant
	teams       map[Team][]string
	teamScores  map[Team]int
	currentTeam Team
	drawerID    string
	currentWord string
	bank        *wordbank.Bank

	// closed marks a room that is on its way out of the registry (last
	// player left, or the game finished). A join racing the removal
	// sees the room as already gone.
	closed bool

	rng   *rand.Rand
	mutex sync.Mutex
}

// NewRoom creates a session in the lobby phase with an empty roster.
func NewRoom(code string, gameType GameType, maxPlayers int) (*Room, error) {
	r := &Room{
		Code:       code,
		GameType:   gameType,
		MaxPlayers: maxPlayers,
		CreatedAt:  time.Now(),
		roster:     NewRoster(),
		phase:      state.NewMachine(state.PhaseLobby),
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	switch gameType {
	case TicTacToe:
		r.grid = board.New()
		r.marks = make(map[string]board.Mark)
	case DrawGuess:
		bank, err := wordbank.New(wordbank.DefaultVocabulary)
		if err != nil {
			return nil, err
		}
		r.bank = bank
		r.teams = map[Team][]string{TeamA: {}, TeamB: {}}
		r.teamScores = map[Team]int{TeamA: 0, TeamB: 0}
	default:
		return nil, ErrUnknownGameType
	}

	return r, nil
}

// GameState is the public snapshot broadcast to a room. The current
// word never appears here; it travels only on the private word_to_draw
// unicast to the drawer.
type GameState struct {
	Room     string   `json:"room"`
	GameType string   `json:"game_type"`
	Phase    string   `json:"phase"`
	HostID   string   `json:"host_id,omitempty"`
	Players  []Player `json:"players"`

	Board           *[3][3]string     `json:"board,omitempty"`
	Marks           map[string]string `json:"marks,omitempty"`
	CurrentPlayerID string            `json:"current_player_id,omitempty"`

	Teams           map[string][]string `json:"teams,omitempty"`
	TeamScores      map[string]int      `json:"team_scores,omitempty"`
	CurrentTeam     string              `json:"current_team,omitempty"`
	CurrentDrawerID string              `json:"current_drawer_id,omitempty"`
}

type JoinResult struct {
	PlayerID string
	IsHost   bool
	State    GameState
}

type RemoveResult struct {
	Removed bool
	Empty   bool
	HostID  string
	// Finished is set when the removal ended a running turn-variant
	// game; such a match has no winner.
	Finished bool
	// Set when the drawer was re-elected as part of the removal.
	DrawerID string
	Word     string
	State    GameState
}

type StartResult struct {
	State    GameState
	DrawerID string
	Word     string
}

type MoveResult struct {
	Board        [3][3]string
	NextPlayerID string
	Finished     bool
	Draw         bool
	WinnerID     string
	WinnerMark   string
	State        GameState
}

type GuessResult struct {
	// Ignored marks a stale or out-of-band guess that produced no
	// observable effect and no error.
	Ignored   bool
	Correct   bool
	GuesserID string
	DrawerID  string
	Word      string
	State     GameState
}

// AddPlayer inserts a new player. The first player of an empty roster
// becomes host. Joining a running draw/guess game drops the player onto
// the smaller team so they are never left teamless.
func (r *Room) AddPlayer(id, name string) (JoinResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.closed {
		return JoinResult{}, ErrRoomNotFound
	}
	if r.roster.Len() >= r.MaxPlayers {
		return JoinResult{}, ErrRoomFull
	}

	r.roster.Add(id, name)
	if r.hostID == "" {
		r.hostID = id
	}

	if r.GameType == DrawGuess && r.phase.Current() == state.PhaseInProgress {
		team := TeamA
		if len(r.teams[TeamB]) < len(r.teams[TeamA]) {
			team = TeamB
		}
		r.teams[team] = append(r.teams[team], id)
	}

	return JoinResult{
		PlayerID: id,
		IsHost:   id == r.hostID,
		State:    r.snapshotLocked(),
	}, nil
}

// RemovePlayer deletes the entry and repairs every role it held. It is
// idempotent: removing an unknown id reports Removed=false and changes
// nothing.
func (r *Room) RemovePlayer(id string) RemoveResult {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if !r.roster.Remove(id) {
		return RemoveResult{}
	}

	result := RemoveResult{Removed: true}

	if r.GameType == DrawGuess {
		for team, members := range r.teams {
			for i, pid := range members {
				if pid == id {
					r.teams[team] = append(members[:i], members[i+1:]...)
					break
				}
			}
		}
	}

	if id == r.hostID {
		r.electHostLocked()
	}

	if r.phase.Current() == state.PhaseInProgress {
		switch r.GameType {
		case TicTacToe:
			// A two-player board cannot be played out with one side
			// gone; the match ends with no winner.
			_ = r.phase.Transition(state.PhaseFinished)
			r.closed = true
			result.Finished = true
		case DrawGuess:
			if id == r.drawerID {
				if r.electDrawerLocked() {
					result.DrawerID = r.drawerID
					result.Word = r.currentWord
				}
			}
		}
	}

	result.Empty = r.roster.Len() == 0
	if result.Empty {
		r.closed = true
	}
	result.HostID = r.hostID
	result.State = r.snapshotLocked()
	return result
}

// StartGame moves the session from lobby to in_progress. Only the host
// may trigger it, and at least two players must be present.
func (r *Room) StartGame(requesterID string) (StartResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if requesterID != r.hostID {
		return StartResult{}, ErrNotHost
	}
	if r.roster.Len() < 2 {
		return StartResult{}, ErrInsufficientPlayers
	}
	if err := r.phase.Transition(state.PhaseInProgress); err != nil {
		return StartResult{}, err
	}

	result := StartResult{}

	switch r.GameType {
	case TicTacToe:
		ids := r.roster.IDs()
		r.marks[ids[0]] = board.X
		r.marks[ids[1]] = board.O
		r.markOwner = ids[0]
	case DrawGuess:
		ids := r.roster.IDs()
		r.rng.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
		half := (len(ids) + 1) / 2
		r.teams[TeamA] = append([]string{}, ids[:half]...)
		r.teams[TeamB] = append([]string{}, ids[half:]...)
		r.currentTeam = TeamA
		if r.electDrawerLocked() {
			result.DrawerID = r.drawerID
			result.Word = r.currentWord
		}
	}

	result.State = r.snapshotLocked()
	return result, nil
}

// AttemptMove validates and applies one tic-tac-toe move. Preconditions
// are checked in order: phase, turn ownership, cell legality.
func (r *Room) AttemptMove(playerID string, row, col int) (MoveResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase.Current() != state.PhaseInProgress {
		return MoveResult{}, ErrNotInProgress
	}
	if playerID != r.markOwner {
		return MoveResult{}, ErrNotYourTurn
	}

	mark := r.marks[playerID]
	if !r.grid.Place(row, col, mark) {
		return MoveResult{}, ErrInvalidMove
	}

	// Flip the turn before evaluating termination so the snapshot is
	// consistent either way.
	for id := range r.marks {
		if id != playerID && r.roster.Has(id) {
			r.markOwner = id
		}
	}

	result := MoveResult{Board: r.grid.Cells()}

	if winner := r.grid.Winner(); winner != board.Empty {
		_ = r.phase.Transition(state.PhaseFinished)
		r.closed = true
		result.Finished = true
		result.WinnerID = playerID
		result.WinnerMark = string(winner)
		if p, ok := r.roster.Get(playerID); ok {
			p.Score++
		}
	} else if r.grid.Full() {
		_ = r.phase.Transition(state.PhaseFinished)
		r.closed = true
		result.Finished = true
		result.Draw = true
	} else {
		result.NextPlayerID = r.markOwner
	}

	result.State = r.snapshotLocked()
	return result, nil
}

// SubmitGuess scores one guess. Stale guesses (no live word, wrong
// phase, unknown or teamless player) are ignored without error; only a
// guess from the drawing team itself is a rule violation.
func (r *Room) SubmitGuess(playerID, text string) (GuessResult, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if r.phase.Current() != state.PhaseInProgress || r.currentWord == "" {
		return GuessResult{Ignored: true}, nil
	}

	player, ok := r.roster.Get(playerID)
	if !ok {
		return GuessResult{Ignored: true}, nil
	}

	team := r.teamOfLocked(playerID)
	if team == "" {
		return GuessResult{Ignored: true}, nil
	}
	if team == r.currentTeam {
		return GuessResult{}, ErrSameTeamGuess
	}

	if !strings.EqualFold(strings.TrimSpace(text), r.currentWord) {
		return GuessResult{}, nil
	}

	r.teamScores[team]++
	player.Score++
	r.currentTeam = team

	result := GuessResult{Correct: true, GuesserID: playerID}
	if r.electDrawerLocked() {
		result.DrawerID = r.drawerID
		result.Word = r.currentWord
	}

	result.State = r.snapshotLocked()
	return result, nil
}

// CanDraw reports whether playerID is the current drawer of a running
// round. Stroke relay and canvas clearing are gated on this read alone.
func (r *Room) CanDraw(playerID string) bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.phase.Current() == state.PhaseInProgress &&
		r.drawerID != "" && r.drawerID == playerID
}

// MemberIDs returns the session ids of everyone in the room, for fan-out.
func (r *Room) MemberIDs() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.roster.IDs()
}

func (r *Room) HostID() string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.hostID
}

func (r *Room) Phase() state.Phase {
	return r.phase.Current()
}

func (r *Room) IsEmpty() bool {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.roster.Len() == 0
}

// Snapshot returns the public state for broadcasting.
func (r *Room) Snapshot() GameState {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return r.snapshotLocked()
}

func (r *Room) teamOfLocked(playerID string) Team {
	for team, members := range r.teams {
		for _, id := range members {
			if id == playerID {
				return team
			}
		}
	}
	return ""
}

func (r *Room) snapshotLocked() GameState {
	gs := GameState{
		Room:     r.Code,
		GameType: string(r.GameType),
		Phase:    string(r.phase.Current()),
		HostID:   r.hostID,
		Players:  r.roster.Players(),
	}

	switch r.GameType {
	case TicTacToe:
		cells := r.grid.Cells()
		gs.Board = &cells
		gs.CurrentPlayerID = r.markOwner
		if len(r.marks) > 0 {
			gs.Marks = make(map[string]string, len(r.marks))
			for id, m := range r.marks {
				gs.Marks[id] = string(m)
			}
		}
	case DrawGuess:
		gs.Teams = map[string][]string{
			string(TeamA): append([]string{}, r.teams[TeamA]...),
			string(TeamB): append([]string{}, r.teams[TeamB]...),
		}
		gs.TeamScores = map[string]int{
			string(TeamA): r.teamScores[TeamA],
			string(TeamB): r.teamScores[TeamB],
		}
		gs.CurrentTeam = string(r.currentTeam)
		gs.CurrentDrawerID = r.drawerID
	}

	return gs
}
