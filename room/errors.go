package room

import "errors"

// Recoverable rule violations. These are surfaced only to the
// originating connection and never mutate session state.
var (
	ErrRoomNotFound        = errors.New("room not found")
	ErrRoomFull            = errors.New("room is full")
	ErrNotHost             = errors.New("only the host can start the game")
	ErrInsufficientPlayers = errors.New("not enough players to start")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidMove         = errors.New("invalid move")
	ErrSameTeamGuess       = errors.New("players on the drawing team cannot guess")
	ErrNotInProgress       = errors.New("game is not in progress")
	ErrUnknownGameType     = errors.New("unknown game type")
)
