package ws

import (
	"testing"
	"time"
)

func testClient(roomID, userID uint, buffer int) *Client {
	return &Client{
		Send:   make(chan []byte, buffer),
		RoomID: roomID,
		UserID: userID,
	}
}

func recvOrTimeout(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case data := <-c.Send:
		return data
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for broadcast")
		return nil
	}
}

func TestBroadcastReachesAllRoomMembers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	buyer := testClient(1, 10, 4)
	seller := testClient(1, 20, 4)
	hub.Register <- buyer
	hub.Register <- seller

	hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte("hello")}

	if got := string(recvOrTimeout(t, buyer)); got != "hello" {
		t.Errorf("buyer got %q", got)
	}
	if got := string(recvOrTimeout(t, seller)); got != "hello" {
		t.Errorf("seller got %q", got)
	}
}

func TestBroadcastIsRoomScoped(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	member := testClient(1, 10, 4)
	bystander := testClient(2, 20, 4)
	hub.Register <- member
	hub.Register <- bystander

	hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte("room one only")}
	recvOrTimeout(t, member)

	select {
	case data := <-bystander.Send:
		t.Errorf("Client in another room received %q", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestBroadcastPreservesOrder(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(1, 10, 8)
	hub.Register <- client

	for _, payload := range []string{"one", "two", "three"} {
		hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte(payload)}
	}

	for _, want := range []string{"one", "two", "three"} {
		if got := string(recvOrTimeout(t, client)); got != want {
			t.Errorf("Expected %q, got %q", want, got)
		}
	}
}

func TestSlowClientDroppedOthersKeepReceiving(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Full buffer and nobody reading: the hub must drop this one.
	slow := testClient(1, 10, 0)
	healthy := testClient(1, 20, 8)
	hub.Register <- slow
	hub.Register <- healthy

	hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte("first")}
	hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte("second")}

	if got := string(recvOrTimeout(t, healthy)); got != "first" {
		t.Errorf("Expected %q, got %q", "first", got)
	}
	if got := string(recvOrTimeout(t, healthy)); got != "second" {
		t.Errorf("Expected %q, got %q", "second", got)
	}

	// The dropped client's channel is closed by the hub.
	select {
	case _, open := <-slow.Send:
		if open {
			t.Error("Expected slow client's channel closed")
		}
	case <-time.After(time.Second):
		t.Error("Timed out waiting for slow client's channel to close")
	}
}

func TestUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := testClient(1, 10, 4)
	hub.Register <- client
	hub.Unregister <- client

	select {
	case _, open := <-client.Send:
		if open {
			t.Error("Expected channel closed after unregister")
		}
	case <-time.After(time.Second):
		t.Error("Timed out waiting for close")
	}

	// Broadcasting into the now-empty room must not panic or block.
	hub.Broadcast <- RoomEvent{RoomID: 1, Data: []byte("nobody home")}
}
