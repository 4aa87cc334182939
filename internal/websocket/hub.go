// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package websocket

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
)

// ShutdownReason identifies why the hub is shutting down.
type ShutdownReason string

const (
	// ShutdownReasonContextCanceled is the normal graceful shutdown path.
	ShutdownReasonContextCanceled ShutdownReason = "context_canceled"

	// ShutdownReasonContextDeadline may indicate a hung operation during shutdown.
	ShutdownReasonContextDeadline ShutdownReason = "context_deadline"
)

// Message types.
const (
	MessageTypePing               = "ping"
	MessageTypePong               = "pong"
	MessageTypeSimilarityProgress = "similarity_progress"
	MessageTypeAnalysisStarted    = "analysis_started"
	MessageTypeAnalysisCompleted  = "analysis_completed"
	MessageTypeAnalysisFailed     = "analysis_failed"
	MessageTypeReportCompleted    = "report_completed"
)

// Message is the envelope of every frame.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// broadcastBuffer is the number of pending broadcasts before new ones are
// dropped.
const broadcastBuffer = 256

// Hub maintains the set of active clients and broadcasts messages to them.
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan Message
	Register   chan *Client
	Unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan Message, broadcastBuffer),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// RunWithContext runs the hub until ctx is done, then closes every client
// and returns ctx.Err(). It is meant to run under the supervisor.
//
// Selection is prioritized: shutdown first, then client lifecycle events,
// then broadcasts. Client state is therefore settled before a message is
// fanned out.
func (h *Hub) RunWithContext(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		default:
		}

		select {
		case client := <-h.Register:
			h.register(client)
			continue
		case client := <-h.Unregister:
			h.unregister(client)
			continue
		default:
		}

		select {
		case <-ctx.Done():
			h.logGracefulShutdown(ctx)
			return ctx.Err()
		case client := <-h.Register:
			h.register(client)
		case client := <-h.Unregister:
			h.unregister(client)
		case message := <-h.broadcast:
			h.broadcastToClients(message)
		}
	}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	h.clients[client] = true
	n := len(h.clients)
	h.mu.Unlock()
	metrics.WSConnections.Inc()
	logging.Info().Int("total_clients", n).Msg("websocket client connected")
}

func (h *Hub) unregister(client *Client) {
	h.mu.Lock()
	_, ok := h.clients[client]
	if ok {
		delete(h.clients, client)
		close(client.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	if ok {
		metrics.WSConnections.Dec()
	}
	logging.Info().Int("total_clients", n).Msg("websocket client disconnected")
}

// logGracefulShutdown closes all clients and logs the shutdown. The
// context error is not logged as an error because cancellation is the
// expected path.
func (h *Hub) logGracefulShutdown(ctx context.Context) {
	clientCount := h.GetClientCount()
	h.closeAllClients()

	logging.Info().
		Str("component", "websocket-hub").
		Str("reason", string(getShutdownReason(ctx))).
		Int("clients_closed", clientCount).
		Msg("websocket hub stopped")
}

func getShutdownReason(ctx context.Context) ShutdownReason {
	if ctx.Err() == context.DeadlineExceeded {
		return ShutdownReasonContextDeadline
	}
	return ShutdownReasonContextCanceled
}

// broadcastToClients delivers message to every client in ID order. A client
// whose buffer is full is dropped.
func (h *Hub) broadcastToClients(message Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.sortedClientsLocked()
	var toRemove []*Client
	for _, client := range clients {
		select {
		case client.send <- message:
			metrics.WSMessagesSent.Inc()
		default:
			toRemove = append(toRemove, client)
		}
	}

	for _, client := range toRemove {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
		metrics.WSErrors.WithLabelValues("slow_client").Inc()
	}
}

func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.sortedClientsLocked() {
		close(client.send)
		delete(h.clients, client)
		metrics.WSConnections.Dec()
	}
}

func (h *Hub) sortedClientsLocked() []*Client {
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	sort.Slice(clients, func(i, j int) bool {
		return clients[i].id < clients[j].id
	})
	return clients
}

// BroadcastJSON queues a message for every connected client. It never
// blocks: when the queue is full the message is dropped and logged.
func (h *Hub) BroadcastJSON(messageType string, data interface{}) {
	select {
	case h.broadcast <- Message{Type: messageType, Data: data}:
	default:
		metrics.WSErrors.WithLabelValues("broadcast_dropped").Inc()
		logging.Warn().Str("message_type", messageType).Msg("broadcast channel full, dropping message")
	}
}

// GetClientCount returns the number of connected clients.
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// SimilarityProgressData reports the similarity fan-out of one run.
type SimilarityProgressData struct {
	CorrelationID string `json:"correlation_id"`
	AreaID        string `json:"area_id"`
	Done          int    `json:"done"`
	Total         int    `json:"total"`
	Succeeded     int    `json:"succeeded"`
	AnySucceeded  bool   `json:"any_succeeded"`
	Error         string `json:"error,omitempty"`
}

// BroadcastSimilarityProgress reports one settled similarity search.
func (h *Hub) BroadcastSimilarityProgress(data SimilarityProgressData) {
	h.BroadcastJSON(MessageTypeSimilarityProgress, data)
	logging.Debug().
		Str("area_id", data.AreaID).
		Int("done", data.Done).
		Int("total", data.Total).
		Msg("broadcast similarity_progress")
}

// AnalysisEventData reports a change in a company's analysis.
type AnalysisEventData struct {
	CorrelationID string `json:"correlation_id"`
	CompanyID     string `json:"company_id"`
	Quarter       string `json:"quarter,omitempty"`
	Status        string `json:"status,omitempty"`
	DurationMs    int64  `json:"duration_ms,omitempty"`
	Error         string `json:"error,omitempty"`
	Timestamp     string `json:"timestamp"`
}

// BroadcastAnalysisEvent sends an analysis_* message. Timestamp is filled
// in when empty.
func (h *Hub) BroadcastAnalysisEvent(messageType string, data AnalysisEventData) {
	if data.Timestamp == "" {
		data.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	h.BroadcastJSON(messageType, data)
}

// MarshalMessage converts a message to JSON.
func MarshalMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}
