package room

import "testing"

func testCapacities() map[GameType]int {
	return map[GameType]int{TicTacToe: 2, DrawGuess: 10}
}

func TestManager_CreateAndGetRoom(t *testing.T) {
	manager := NewManager(4, testCapacities())

	room, err := manager.CreateRoom(TicTacToe)
	if err != nil {
		t.Fatalf("CreateRoom failed: %v", err)
	}
	if len(room.Code) != 4 {
		t.Fatalf("expected a 4-char code, got %q", room.Code)
	}
	if room.MaxPlayers != 2 {
		t.Fatalf("tictactoe rooms hold 2 players, got %d", room.MaxPlayers)
	}

	retrieved, exists := manager.GetRoom(room.Code)
	if !exists || retrieved != room {
		t.Fatal("GetRoom should return the created room instance")
	}
}

func TestManager_GetRoomNormalizesCase(t *testing.T) {
	manager := NewManager(4, testCapacities())
	room, _ := manager.CreateRoom(DrawGuess)

	lower := make([]byte, len(room.Code))
	for i := range room.Code {
		lower[i] = room.Code[i] | 0x20
	}

	if _, exists := manager.GetRoom(string(lower)); !exists {
		t.Fatalf("lookup of %q should resolve %q", string(lower), room.Code)
	}
}

func TestManager_CreateRoomUnknownType(t *testing.T) {
	manager := NewManager(4, testCapacities())
	if _, err := manager.CreateRoom(GameType("bingo")); err != ErrUnknownGameType {
		t.Fatalf("expected ErrUnknownGameType, got %v", err)
	}
}

func TestManager_RemoveRoomIsIdempotent(t *testing.T) {
	manager := NewManager(4, testCapacities())
	room, _ := manager.CreateRoom(TicTacToe)

	manager.RemoveRoom(room.Code)
	if _, exists := manager.GetRoom(room.Code); exists {
		t.Fatal("removed room should not resolve")
	}
	manager.RemoveRoom(room.Code) // second removal must not panic

	if manager.Count() != 0 {
		t.Fatalf("expected 0 rooms, got %d", manager.Count())
	}
}

func TestManager_CodesAreUnique(t *testing.T) {
	manager := NewManager(4, testCapacities())

	codes := make(map[string]bool)
	for i := 0; i < 50; i++ {
		room, err := manager.CreateRoom(DrawGuess)
		if err != nil {
			t.Fatalf("CreateRoom %d failed: %v", i, err)
		}
		if codes[room.Code] {
			t.Fatalf("duplicate room code %q", room.Code)
		}
		codes[room.Code] = true
	}
}

func TestManager_CountByType(t *testing.T) {
	manager := NewManager(4, testCapacities())
	manager.CreateRoom(TicTacToe)
	manager.CreateRoom(DrawGuess)
	manager.CreateRoom(DrawGuess)

	counts := manager.CountByType()
	if counts[TicTacToe] != 1 || counts[DrawGuess] != 2 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}
