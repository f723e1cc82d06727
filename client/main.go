// Interactive command-line client for poking at a running party server.
//
//	go run ./client -addr ws://localhost:8080/ws
//
// Commands:
//
//	create [tictactoe|drawguess] [name]
//	join <code> [name]
//	start
//	move <row> <col>
//	guess <word>
//	draw
//	clear
//	quit
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/websocket"
)

type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data,omitempty"`
}

type client struct {
	conn *websocket.Conn

	mutex sync.Mutex
	room  string
}

func main() {
	addr := flag.String("addr", "ws://localhost:8080/ws", "websocket endpoint")
	flag.Parse()

	conn, _, err := websocket.DefaultDialer.Dial(*addr, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dial %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer conn.Close()

	c := &client{conn: conn}
	go c.readLoop()

	fmt.Println("Connected. Type 'create', 'join <code>', 'start', 'move <r> <c>', 'guess <word>', 'quit'.")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if !c.handleCommand(strings.Fields(scanner.Text())) {
			return
		}
	}
}

func (c *client) handleCommand(args []string) bool {
	if len(args) == 0 {
		return true
	}

	switch args[0] {
	case "create":
		gameType := "drawguess"
		if len(args) > 1 {
			gameType = args[1]
		}
		data := map[string]interface{}{"game_type": gameType}
		if len(args) > 2 {
			data["player_name"] = args[2]
		}
		c.send("create_game", data)
	case "join":
		if len(args) < 2 {
			fmt.Println("usage: join <code> [name]")
			return true
		}
		data := map[string]interface{}{"room": args[1]}
		if len(args) > 2 {
			data["player_name"] = args[2]
		}
		c.send("join_game", data)
	case "start":
		c.send("start_game", map[string]interface{}{"room": c.currentRoom()})
	case "move":
		if len(args) < 3 {
			fmt.Println("usage: move <row> <col>")
			return true
		}
		row, err1 := strconv.Atoi(args[1])
		col, err2 := strconv.Atoi(args[2])
		if err1 != nil || err2 != nil {
			fmt.Println("row and col must be integers")
			return true
		}
		c.send("make_move", map[string]interface{}{
			"room": c.currentRoom(), "row": row, "col": col,
		})
	case "guess":
		if len(args) < 2 {
			fmt.Println("usage: guess <word>")
			return true
		}
		c.send("guess", map[string]interface{}{
			"room": c.currentRoom(), "guess": strings.Join(args[1:], " "),
		})
	case "draw":
		// A fixed probe stroke, enough to watch the relay work.
		c.send("draw", map[string]interface{}{
			"room":   c.currentRoom(),
			"points": [][]int{{10, 10}, {20, 20}, {30, 25}},
			"color":  "#000000",
		})
	case "clear":
		c.send("clear_canvas", map[string]interface{}{"room": c.currentRoom()})
	case "quit", "exit":
		return false
	default:
		fmt.Printf("unknown command %q\n", args[0])
	}
	return true
}

func (c *client) send(event string, data interface{}) {
	if err := c.conn.WriteJSON(envelope{Event: event, Data: data}); err != nil {
		fmt.Fprintf(os.Stderr, "send %s: %v\n", event, err)
	}
}

func (c *client) readLoop() {
	for {
		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := c.conn.ReadJSON(&env); err != nil {
			fmt.Fprintf(os.Stderr, "connection closed: %v\n", err)
			os.Exit(0)
		}

		switch env.Event {
		case "game_created", "game_joined":
			var payload struct {
				Room string `json:"room"`
			}
			if json.Unmarshal(env.Data, &payload) == nil && payload.Room != "" {
				c.setRoom(payload.Room)
			}
		}

		fmt.Printf("<- %s %s\n", env.Event, string(env.Data))
	}
}

func (c *client) setRoom(code string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.room = code
}

func (c *client) currentRoom() string {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.room
}
