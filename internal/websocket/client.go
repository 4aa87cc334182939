// Terrascope - Satellite Environmental Impact Analysis
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/terrascope

package websocket

import (
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/tomtom215/terrascope/internal/logging"
	"github.com/tomtom215/terrascope/internal/metrics"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024

	// sendBuffer holds a burst of similarity progress events, one per area,
	// for a dashboard that is briefly slow to read.
	sendBuffer = 256
)

var clientIDs atomic.Uint64

// Client is one dashboard connection. Dashboards only listen for pipeline
// and report events; a ping is the only frame they send that gets an answer.
type Client struct {
	id   uint64
	hub  *Hub
	conn *websocket.Conn
	send chan Message
	log  zerolog.Logger
}

// NewClient wraps conn. IDs increase, which fixes the broadcast order.
func NewClient(hub *Hub, conn *websocket.Conn) *Client {
	id := clientIDs.Add(1)
	return &Client{
		id:   id,
		hub:  hub,
		conn: conn,
		send: make(chan Message, sendBuffer),
		log: logging.WithComponent("websocket").With().
			Uint64("client_id", id).
			Str("remote_addr", conn.RemoteAddr().String()).
			Logger(),
	}
}

// ID returns the client's identifier.
func (c *Client) ID() uint64 { return c.id }

// Start runs the read and write pumps.
func (c *Client) Start() {
	go c.writePump()
	go c.readPump()
}

// answer returns the reply to an inbound frame, if any.
func answer(in Message) (Message, bool) {
	if in.Type == MessageTypePing {
		return Message{Type: MessageTypePong}, true
	}
	return Message{}, false
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister <- c
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.Warn().Err(err).Msg("set read deadline")
		return
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, frame, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				metrics.WSErrors.WithLabelValues("unexpected_close").Inc()
				c.log.Warn().Err(err).Msg("dashboard connection dropped")
			}
			return
		}

		var in Message
		if err := json.Unmarshal(frame, &in); err != nil {
			metrics.WSErrors.WithLabelValues("decode").Inc()
			c.log.Debug().Err(err).Msg("ignoring malformed frame")
			continue
		}
		reply, ok := answer(in)
		if !ok {
			continue
		}
		select {
		case c.send <- reply:
		default:
			metrics.WSErrors.WithLabelValues("reply_dropped").Inc()
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.Warn().Err(err).Msg("set write deadline")
				return
			}
			if !ok {
				// The hub closed the channel.
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.write(msg); err != nil {
				metrics.WSErrors.WithLabelValues("write").Inc()
				c.log.Warn().Err(err).Str("type", msg.Type).Msg("event not delivered")
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) write(msg Message) error {
	payload, err := MarshalMessage(msg)
	if err != nil {
		return err
	}
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}
