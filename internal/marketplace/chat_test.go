package marketplace

import (
	"errors"
	"testing"

	"github.com/Praveenkaushik12/CollegeFied/models"
)

func TestSendMessageMembershipAndActivity(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	chats := NewChatService(db)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	outsider := createUser(t, db, "outsider")
	product := createProduct(t, db, seller.ID, "Router")

	request, _ := engine.CreateRequest(buyer.ID, product.ID)
	engine.Transition(request.ID, seller.ID, models.RequestStatusAccepted)

	room := roomFor(t, db, product.ID, buyer.ID, seller.ID)
	if room == nil {
		t.Fatal("Expected a room after accept")
	}

	msg, err := chats.SendMessage(room.ID, buyer.ID, "is this still available?")
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}
	if msg.Sender.Username != "buyer" {
		t.Errorf("Expected sender preloaded, got %+v", msg.Sender)
	}

	if _, err := chats.SendMessage(room.ID, outsider.ID, "let me in"); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for outsider, got %v", err)
	}

	// Rejection freezes the room but keeps its history readable.
	engine.Transition(request.ID, seller.ID, models.RequestStatusRejected)
	if _, err := chats.SendMessage(room.ID, buyer.ID, "hello?"); !errors.Is(err, ErrChatInactive) {
		t.Errorf("Expected ErrChatInactive, got %v", err)
	}
	messages, err := chats.ListMessages(room.ID, buyer.ID, 0)
	if err != nil {
		t.Fatalf("ListMessages on inactive room failed: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("Expected 1 message, got %d", len(messages))
	}
}

func TestListMessagesSinceID(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	chats := NewChatService(db)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	product := createProduct(t, db, seller.ID, "Speaker")

	request, _ := engine.CreateRequest(buyer.ID, product.ID)
	engine.Transition(request.ID, seller.ID, models.RequestStatusAccepted)
	room := roomFor(t, db, product.ID, buyer.ID, seller.ID)

	first, _ := chats.SendMessage(room.ID, buyer.ID, "one")
	chats.SendMessage(room.ID, seller.ID, "two")
	chats.SendMessage(room.ID, buyer.ID, "three")

	messages, err := chats.ListMessages(room.ID, seller.ID, first.ID)
	if err != nil {
		t.Fatalf("ListMessages failed: %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("Expected 2 messages after since_id, got %d", len(messages))
	}
	if messages[0].Content != "two" || messages[1].Content != "three" {
		t.Errorf("Expected send order, got %q then %q", messages[0].Content, messages[1].Content)
	}

	if _, err := chats.ListMessages(room.ID, 9999, 0); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("Expected ErrUnauthorized for non-member, got %v", err)
	}
}

func TestListRoomsForUser(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	chats := NewChatService(db)
	seller := createUser(t, db, "seller")
	buyer := createUser(t, db, "buyer")
	other := createUser(t, db, "other")

	for _, title := range []string{"Table Fan", "Iron Box"} {
		product := createProduct(t, db, seller.ID, title)
		request, _ := engine.CreateRequest(buyer.ID, product.ID)
		engine.Transition(request.ID, seller.ID, models.RequestStatusAccepted)
	}

	rooms, err := chats.ListRoomsForUser(buyer.ID)
	if err != nil {
		t.Fatalf("ListRoomsForUser failed: %v", err)
	}
	if len(rooms) != 2 {
		t.Errorf("Expected 2 rooms for buyer, got %d", len(rooms))
	}

	rooms, err = chats.ListRoomsForUser(other.ID)
	if err != nil {
		t.Fatalf("ListRoomsForUser failed: %v", err)
	}
	if len(rooms) != 0 {
		t.Errorf("Expected no rooms for uninvolved user, got %d", len(rooms))
	}
}
