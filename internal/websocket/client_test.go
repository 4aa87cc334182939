// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package websocket

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

// setupWebSocketServer creates a test WebSocket server with a custom handler
func setupWebSocketServer(t *testing.T, handler func(t *testing.T, conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		upgrader := websocket.Upgrader{}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("Failed to upgrade connection: %v", err)
			return
		}
		defer conn.Close()
		handler(t, conn)
	}))
}

// dialWebSocket establishes a WebSocket connection to the test server
func dialWebSocket(t *testing.T, server *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if resp != nil && resp.Body != nil {
		defer resp.Body.Close()
	}
	if err != nil {
		t.Fatalf("Failed to dial websocket: %v", err)
	}
	return conn
}

// waitForChannel waits for a channel signal with timeout
func waitForChannel(t *testing.T, ch <-chan bool, timeout time.Duration, msg string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Errorf("%s: timeout after %v", msg, timeout)
	}
}

func TestNewClient(t *testing.T) {
	hub := NewHub()

	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		time.Sleep(100 * time.Millisecond)
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	first := NewClient(hub, conn)
	second := NewClient(hub, conn)

	if first.hub != hub {
		t.Error("Client hub not set correctly")
	}
	if cap(first.send) != sendBuffer {
		t.Errorf("Expected send channel capacity %d, got %d", sendBuffer, cap(first.send))
	}
	if second.ID() <= first.ID() {
		t.Errorf("Expected increasing IDs, got %d then %d", first.ID(), second.ID())
	}
}

func TestClient_Constants(t *testing.T) {
	if pingPeriod >= pongWait {
		t.Errorf("pingPeriod %v must be shorter than pongWait %v", pingPeriod, pongWait)
	}
	if maxMessageSize != 64*1024 {
		t.Errorf("Expected maxMessageSize 64KiB, got %d", maxMessageSize)
	}
}

func TestAnswer(t *testing.T) {
	tests := []struct {
		in     Message
		want   string
		answer bool
	}{
		{Message{Type: MessageTypePing}, MessageTypePong, true},
		{Message{Type: MessageTypePong}, "", false},
		{Message{Type: MessageTypeAnalysisStarted, Data: "mock-0"}, "", false},
		{Message{}, "", false},
	}
	for _, tt := range tests {
		got, ok := answer(tt.in)
		if ok != tt.answer || got.Type != tt.want {
			t.Errorf("answer(%q) = %q, %v; want %q, %v", tt.in.Type, got.Type, ok, tt.want, tt.answer)
		}
	}
}

func TestClient_ReadPump_IgnoresMalformedFrames(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	receivedPong := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
			t.Errorf("Failed to write frame: %v", err)
			return
		}
		if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
			t.Errorf("Failed to write ping: %v", err)
			return
		}
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("Failed to read pong: %v", err)
			return
		}
		if msg.Type == MessageTypePong {
			receivedPong <- true
		}
		time.Sleep(100 * time.Millisecond)
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	client.Start()

	waitForChannel(t, receivedPong, time.Second, "Pong not received after malformed frame")
}

func TestClient_WritePump_SendMessage(t *testing.T) {
	hub := NewHub()

	messageReceived := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			t.Errorf("Failed to read message: %v", err)
			return
		}
		if msg.Type != MessageTypeAnalysisCompleted {
			t.Errorf("Expected message type %q, got %q", MessageTypeAnalysisCompleted, msg.Type)
		}
		messageReceived <- true
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	go client.writePump()

	client.send <- Message{Type: MessageTypeAnalysisCompleted, Data: "mock-0"}

	waitForChannel(t, messageReceived, time.Second, "Message not received")
}

func TestClient_ReadPump_PingPong(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	receivedPong := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		if err := conn.WriteJSON(Message{Type: MessageTypePing}); err != nil {
			t.Errorf("Failed to write ping: %v", err)
			return
		}

		var pongMsg Message
		if err := conn.ReadJSON(&pongMsg); err != nil {
			t.Errorf("Failed to read pong: %v", err)
			return
		}
		if pongMsg.Type == MessageTypePong {
			receivedPong <- true
		}
		time.Sleep(100 * time.Millisecond)
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	client.Start()

	waitForChannel(t, receivedPong, time.Second, "Pong not received")
}

func TestClient_ReadPump_ConnectionClose(t *testing.T) {
	hub := NewHub()

	unregistered := make(chan bool, 1)
	go func() {
		select {
		case <-hub.Unregister:
			unregistered <- true
		case <-time.After(2 * time.Second):
		}
	}()

	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		conn.Close()
	})
	defer server.Close()

	conn := dialWebSocket(t, server)

	client := NewClient(hub, conn)
	go client.readPump()

	waitForChannel(t, unregistered, time.Second, "Client not unregistered after connection close")
}

func TestClient_WritePump_ChannelClose(t *testing.T) {
	hub := NewHub()

	done := make(chan bool, 1)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				done <- true
				return
			}
		}
	})
	defer server.Close()

	conn := dialWebSocket(t, server)

	client := NewClient(hub, conn)
	go client.writePump()

	close(client.send)

	// The pump sends a close frame and closes the connection.
	waitForChannel(t, done, time.Second, "Connection not closed after send channel closed")
}

func TestClient_Integration(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	messagesReceived := make(chan Message, 10)
	server := setupWebSocketServer(t, func(t *testing.T, conn *websocket.Conn) {
		for {
			var msg Message
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			messagesReceived <- msg
		}
	})
	defer server.Close()

	conn := dialWebSocket(t, server)
	defer conn.Close()

	client := NewClient(hub, conn)
	client.Start()
	registerClient(t, hub, client, 1)

	hub.BroadcastAnalysisEvent(MessageTypeAnalysisStarted, AnalysisEventData{CompanyID: "mock-0"})

	select {
	case msg := <-messagesReceived:
		if msg.Type != MessageTypeAnalysisStarted {
			t.Errorf("Expected message type %q, got %q", MessageTypeAnalysisStarted, msg.Type)
		}
		data, ok := msg.Data.(map[string]interface{})
		if !ok || data["company_id"] != "mock-0" {
			t.Errorf("Unexpected payload %#v", msg.Data)
		}
		if ts, _ := data["timestamp"].(string); ts == "" {
			t.Error("Expected timestamp to be filled in")
		}
	case <-time.After(time.Second):
		t.Error("Message not received within timeout")
	}
}
