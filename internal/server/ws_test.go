package server

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestEventsHandler_Broadcast(t *testing.T) {
	h := NewEventsHandler()

	ts := httptest.NewServer(h)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	// Wait for the server to register the client
	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	h.Broadcast(map[string]any{
		"type":      "alert",
		"id":        "a1",
		"reversals": 4,
	})

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read message: %v", err)
	}

	var ev struct {
		Type      string `json:"type"`
		ID        string `json:"id"`
		Reversals int    `json:"reversals"`
	}
	if err := json.Unmarshal(msg, &ev); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if ev.Type != "alert" || ev.ID != "a1" || ev.Reversals != 4 {
		t.Errorf("event = %+v, want alert a1 with 4 reversals", ev)
	}
}

func TestEventsHandler_ClientCleanup(t *testing.T) {
	h := NewEventsHandler()

	ts := httptest.NewServer(h)
	defer ts.Close()

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for h.ClientCount() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never registered")
		}
		time.Sleep(10 * time.Millisecond)
	}

	conn.Close()

	deadline = time.Now().Add(time.Second)
	for h.ClientCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("client never removed after close")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
