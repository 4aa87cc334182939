// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package websocket

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
)

//nolint:gochecknoinits // init ensures consistent logging for tests
func init() {
	logging.Init(logging.Config{
		Level:  "info",
		Format: "console",
		Output: io.Discard,
	})
}

// runHub starts a hub and returns a func that stops it and waits for exit.
func runHub(t *testing.T) (*Hub, func()) {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = hub.RunWithContext(ctx)
	}()
	return hub, func() {
		cancel()
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Error("hub did not stop")
		}
	}
}

// createTestClient creates a client with no connection.
func createTestClient(hub *Hub) *Client {
	return &Client{id: clientIDs.Add(1), hub: hub, send: make(chan Message, sendBuffer)}
}

// registerClient registers a client and waits until the hub holds want clients.
func registerClient(t *testing.T, hub *Hub, client *Client, want int) {
	t.Helper()
	hub.Register <- client
	waitForCount(t, hub, want)
}

func waitForCount(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.GetClientCount() == want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("expected %d clients, got %d", want, hub.GetClientCount())
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()
	select {
	case msg, ok := <-client.send:
		if !ok {
			t.Fatal("client channel closed")
		}
		return msg
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestNewHub(t *testing.T) {
	t.Parallel()

	hub := NewHub()
	if hub.clients == nil || hub.Register == nil || hub.Unregister == nil {
		t.Fatal("hub not initialized")
	}
	if cap(hub.broadcast) != broadcastBuffer {
		t.Errorf("expected broadcast capacity %d, got %d", broadcastBuffer, cap(hub.broadcast))
	}
	if hub.GetClientCount() != 0 {
		t.Errorf("expected 0 clients, got %d", hub.GetClientCount())
	}
}

func TestHub_ClientRegistration(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	a, b := createTestClient(hub), createTestClient(hub)
	registerClient(t, hub, a, 1)
	registerClient(t, hub, b, 2)

	hub.Unregister <- a
	waitForCount(t, hub, 1)

	if _, ok := <-a.send; ok {
		t.Error("unregistered client channel should be closed")
	}
}

func TestHub_UnregisterNonExistentClient(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	registerClient(t, hub, createTestClient(hub), 1)
	hub.Unregister <- createTestClient(hub)
	waitForCount(t, hub, 1)
}

func TestHub_BroadcastToClients(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	clients := []*Client{createTestClient(hub), createTestClient(hub), createTestClient(hub)}
	for i, c := range clients {
		registerClient(t, hub, c, i+1)
	}

	before := testutil.ToFloat64(metrics.WSMessagesSent)
	hub.BroadcastSimilarityProgress(SimilarityProgressData{AreaID: "op-1", Done: 1, Total: 2, Succeeded: 1, AnySucceeded: true})

	for _, c := range clients {
		msg := receive(t, c)
		if msg.Type != MessageTypeSimilarityProgress {
			t.Errorf("expected %q, got %q", MessageTypeSimilarityProgress, msg.Type)
		}
		data, ok := msg.Data.(SimilarityProgressData)
		if !ok || data.Done != 1 || data.Total != 2 {
			t.Errorf("unexpected payload %#v", msg.Data)
		}
	}
	if got := testutil.ToFloat64(metrics.WSMessagesSent) - before; got < 3 {
		t.Errorf("expected at least 3 sent messages counted, got %v", got)
	}
}

func TestHub_BroadcastToFullClient(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	slow := &Client{id: clientIDs.Add(1), hub: hub, send: make(chan Message)}
	fast := createTestClient(hub)
	registerClient(t, hub, slow, 1)
	registerClient(t, hub, fast, 2)

	hub.BroadcastJSON(MessageTypeReportCompleted, map[string]string{"id": "r1"})

	if msg := receive(t, fast); msg.Type != MessageTypeReportCompleted {
		t.Errorf("expected %q, got %q", MessageTypeReportCompleted, msg.Type)
	}
	waitForCount(t, hub, 1)
}

func TestHub_ChannelFullBehavior(t *testing.T) {
	t.Parallel()

	// Hub not running: the queue fills and later broadcasts are dropped.
	hub := NewHub()
	for i := 0; i < broadcastBuffer+10; i++ {
		hub.BroadcastJSON(MessageTypeAnalysisStarted, i)
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("expected %d queued messages, got %d", broadcastBuffer, len(hub.broadcast))
	}
}

func TestHub_ConcurrentOperations(t *testing.T) {
	hub, stop := runHub(t)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := createTestClient(hub)
			hub.Register <- c
			hub.BroadcastJSON(MessageTypePing, nil)
			hub.Unregister <- c
		}()
	}
	wg.Wait()
	waitForCount(t, hub, 0)
}

func TestMarshalMessage(t *testing.T) {
	t.Parallel()

	data, err := MarshalMessage(Message{Type: MessageTypeAnalysisFailed, Data: map[string]string{"error": "boom"}})
	if err != nil {
		t.Fatalf("MarshalMessage: %v", err)
	}
	want := `{"type":"analysis_failed","data":{"error":"boom"}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestHub_RunWithContext(t *testing.T) {
	t.Run("shuts down on context cancellation", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())

		errCh := make(chan error, 1)
		go func() {
			errCh <- hub.RunWithContext(ctx)
		}()

		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("RunWithContext did not return after context cancellation")
		}
	})

	t.Run("shuts down on context deadline", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		select {
		case err := <-runAsync(hub, ctx):
			if !errors.Is(err, context.DeadlineExceeded) {
				t.Errorf("expected context.DeadlineExceeded, got %v", err)
			}
		case <-time.After(time.Second):
			t.Error("RunWithContext did not return after deadline")
		}
	})

	t.Run("closes all clients on shutdown", func(t *testing.T) {
		hub := NewHub()
		ctx, cancel := context.WithCancel(context.Background())
		errCh := runAsync(hub, ctx)

		clients := make([]*Client, 3)
		for i := range clients {
			clients[i] = createTestClient(hub)
			registerClient(t, hub, clients[i], i+1)
		}

		cancel()
		<-errCh

		if hub.GetClientCount() != 0 {
			t.Errorf("expected 0 clients after shutdown, got %d", hub.GetClientCount())
		}
		for _, c := range clients {
			if _, ok := <-c.send; ok {
				t.Error("client channel should be closed")
			}
		}
	})
}

func runAsync(hub *Hub, ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- hub.RunWithContext(ctx)
	}()
	return errCh
}

func TestGetShutdownReason(t *testing.T) {
	t.Parallel()

	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	expired, cancel2 := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel2()

	tests := []struct {
		name string
		ctx  context.Context
		want ShutdownReason
	}{
		{"canceled", canceled, ShutdownReasonContextCanceled},
		{"deadline", expired, ShutdownReasonContextDeadline},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := getShutdownReason(tt.ctx); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func BenchmarkHub_BroadcastJSON(b *testing.B) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = hub.RunWithContext(ctx) }()

	data := SimilarityProgressData{AreaID: "op-1", Done: 1, Total: 3}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.BroadcastJSON(MessageTypeSimilarityProgress, data)
	}
}
