package server_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/riverwalkmud/samud/internal/config"
	"github.com/riverwalkmud/samud/internal/database"
	"github.com/riverwalkmud/samud/internal/server"
	"github.com/riverwalkmud/samud/internal/testclient"
	"github.com/riverwalkmud/samud/internal/world"
)

// startGameServer brings up a full server on an ephemeral port with a
// sqlite store and a two-room world, and returns its dial address.
func startGameServer(t *testing.T) string {
	t.Helper()

	db, err := database.Open(database.Config{
		Driver:       "sqlite",
		SQLitePath:   filepath.Join(t.TempDir(), "samud.db"),
		StartingRoom: "alamo_plaza",
	})
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	content := &world.Content{
		Rooms: []*world.Room{
			{
				ID:          "alamo_plaza",
				Name:        "The Alamo Plaza",
				Description: "The historic heart of the city.",
				Exits:       map[string]string{"east": "riverwalk_north"},
				ExitOrder:   []string{"east"},
			},
			{
				ID:          "riverwalk_north",
				Name:        "River Walk North",
				Description: "Cypress trees shade the winding walkway.",
				Exits:       map[string]string{"west": "alamo_plaza"},
				ExitOrder:   []string{"west"},
			},
		},
		NPCs: []*world.NPC{
			{
				ID:          "maria",
				Name:        "Maria, the Tour Guide",
				Description: "A cheerful guide holding a clipboard.",
				RoomID:      "alamo_plaza",
				Responses: map[string]string{
					"default": "Welcome to the Alamo Plaza!",
				},
			},
		},
		Items: []*world.Item{
			{
				ID:          "brochure",
				Name:        "a historic brochure",
				Description: "A glossy pamphlet about the missions.",
				Location:    world.RoomLocation("alamo_plaza"),
			},
		},
	}
	if err := db.Seed(content); err != nil {
		t.Fatalf("seed: %v", err)
	}

	srv := server.NewServer("127.0.0.1:0", db, config.DefaultConfig())
	go srv.Start()
	t.Cleanup(srv.Shutdown)

	deadline := time.Now().Add(5 * time.Second)
	for srv.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not bind a listener")
		}
		time.Sleep(10 * time.Millisecond)
	}
	return srv.Addr().String()
}

func TestEndToEndSignupAndLook(t *testing.T) {
	addr := startGameServer(t)

	alice, err := testclient.NewTestClient("Alice", addr)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	defer alice.Close()

	if err := alice.SendCommand("look"); err != nil {
		t.Fatalf("send look: %v", err)
	}
	if !alice.WaitForMessage("The Alamo Plaza", 2*time.Second) {
		t.Fatalf("room name missing from look output: %v", alice.GetMessages())
	}
	if !alice.WaitForMessage("Maria, the Tour Guide", 2*time.Second) {
		t.Errorf("NPC missing from look output: %v", alice.GetMessages())
	}
	if !alice.WaitForMessage("a historic brochure", 2*time.Second) {
		t.Errorf("item missing from look output: %v", alice.GetMessages())
	}
}

func TestEndToEndRoomChat(t *testing.T) {
	addr := startGameServer(t)

	alice, err := testclient.NewTestClient("Alice", addr)
	if err != nil {
		t.Fatalf("signup alice: %v", err)
	}
	defer alice.Close()

	bob, err := testclient.NewTestClient("Bob", addr)
	if err != nil {
		t.Fatalf("signup bob: %v", err)
	}
	defer bob.Close()

	alice.ClearMessages()
	if err := bob.SendCommand("say howdy neighbor"); err != nil {
		t.Fatalf("send say: %v", err)
	}
	if !alice.WaitForMessage("[Room] Bob: howdy neighbor", 2*time.Second) {
		t.Fatalf("alice never heard bob: %v", alice.GetMessages())
	}

	bob.ClearMessages()
	if err := alice.SendCommand("shout remember the alamo"); err != nil {
		t.Fatalf("send shout: %v", err)
	}
	if !bob.WaitForMessage("[Global] Alice: remember the alamo", 2*time.Second) {
		t.Fatalf("bob never heard the shout: %v", bob.GetMessages())
	}
}

func TestEndToEndMoveAndInventory(t *testing.T) {
	addr := startGameServer(t)

	alice, err := testclient.NewTestClient("Alice", addr)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	defer alice.Close()

	if err := alice.SendCommand("get brochure"); err != nil {
		t.Fatal(err)
	}
	if !alice.WaitForMessage("You get a historic brochure.", 2*time.Second) {
		t.Fatalf("get failed: %v", alice.GetMessages())
	}

	if err := alice.SendCommand("east"); err != nil {
		t.Fatal(err)
	}
	if !alice.WaitForMessage("You head east.", 2*time.Second) {
		t.Fatalf("move failed: %v", alice.GetMessages())
	}
	if !alice.WaitForMessage("River Walk North", 2*time.Second) {
		t.Fatalf("destination room not rendered: %v", alice.GetMessages())
	}

	alice.ClearMessages()
	if err := alice.SendCommand("inventory"); err != nil {
		t.Fatal(err)
	}
	if !alice.WaitForMessage("a historic brochure", 2*time.Second) {
		t.Fatalf("carried item missing from inventory: %v", alice.GetMessages())
	}
}

func TestEndToEndLoginResumesRoom(t *testing.T) {
	addr := startGameServer(t)

	alice, err := testclient.NewTestClient("Alice", addr)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if err := alice.SendCommand("east"); err != nil {
		t.Fatal(err)
	}
	if !alice.WaitForMessage("You head east.", 2*time.Second) {
		t.Fatalf("move failed: %v", alice.GetMessages())
	}
	if err := alice.SendCommand("quit"); err != nil {
		t.Fatal(err)
	}
	if !alice.WaitForMessage("Goodbye!", 2*time.Second) {
		t.Fatalf("quit not acknowledged: %v", alice.GetMessages())
	}
	alice.Close()

	// The signup helper derives the password from the name.
	again, err := testclient.NewTestClientWithLogin(testclient.Credentials{
		Username: "Alice",
		Password: "Alicepass123",
	}, addr)
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	defer again.Close()

	if !again.WaitForMessage("You are at River Walk North", 2*time.Second) {
		t.Fatalf("login did not resume saved room: %v", again.GetMessages())
	}
}
