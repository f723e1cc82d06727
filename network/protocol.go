package network

import "encoding/json"

// Inbound event names. Disconnect is implicit (socket close).
const (
	EventCreateGame  = "create_game"
	EventJoinGame    = "join_game"
	EventStartGame   = "start_game"
	EventMakeMove    = "make_move"
	EventDraw        = "draw"
	EventClearCanvas = "clear_canvas"
	EventGuess       = "guess"
)

// Outbound event names.
const (
	EventGameCreated        = "game_created"
	EventGameJoined         = "game_joined"
	EventPlayerJoined       = "player_joined"
	EventGameStarted        = "game_started"
	EventWordToDraw         = "word_to_draw"
	EventBoardUpdate        = "board_update"
	EventDrawData           = "draw_data"
	EventCorrectGuess       = "correct_guess"
	EventGameOver           = "game_over"
	EventPlayerDisconnected = "player_disconnected"
	EventError              = "error"
)

// Envelope is the wire format: one JSON object per websocket text frame.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type CreateGamePayload struct {
	GameType   string `json:"game_type,omitempty"`
	PlayerName string `json:"player_name,omitempty"`
}

type JoinGamePayload struct {
	Room       string `json:"room"`
	PlayerName string `json:"player_name,omitempty"`
}

type RoomPayload struct {
	Room string `json:"room"`
}

type MakeMovePayload struct {
	Room string `json:"room"`
	Row  int    `json:"row"`
	Col  int    `json:"col"`
}

type DrawPayload struct {
	Room      string          `json:"room"`
	Points    json.RawMessage `json:"points"`
	Color     string          `json:"color"`
	Thickness float64         `json:"thickness"`
}

type GuessPayload struct {
	Room  string `json:"room"`
	Guess string `json:"guess"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
