package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
)

func TestOversizedFrameDropsConnection(t *testing.T) {
	h := newTestHub(clockwork.NewFakeClock())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.Upgrade(w, r)
		if err != nil {
			return
		}
		client := h.NewClient(conn)
		h.Register() <- client
		go client.WritePump()
		go client.ReadPump(h)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	huge := `{"type":"join","data":{"room":"` + strings.Repeat("x", 2*maxMessageSize) + `"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(huge)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("expected the server to close the connection after an oversized frame")
	}
}

func TestNormalFrameSurvivesReadLimit(t *testing.T) {
	h := newTestHub(clockwork.NewFakeClock())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.Upgrade(w, r)
		if err != nil {
			return
		}
		client := h.NewClient(conn)
		h.Register() <- client
		go client.WritePump()
		go client.ReadPump(h)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	defer conn.Close()

	join := `{"type":"join","data":{"room":"r1"}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(join)); err != nil {
		t.Fatalf("failed to write: %v", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	var msg struct {
		Type string `json:"type"`
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("expected the private join sync, got error: %v", err)
	}
	if msg.Type != EventSync {
		t.Errorf("expected sync event, got %q", msg.Type)
	}
}
