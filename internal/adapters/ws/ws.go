// Package ws implements ports.Messaging over a WebSocket connection.
//
// Frames are JSON objects:
//
//	{"type":"SUBSCRIBE","id":"<uuid>","topic":"/topic/comic-list.update"}
//	{"type":"UNSUBSCRIBE","id":"<uuid>"}
//	{"type":"MESSAGE","topic":"/topic/comic-list.update","body":{...}}
//
// The client reconnects with exponential backoff and resubscribes every
// active topic after each reconnect.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/comixed/comixed-client/internal/ports"
	"github.com/comixed/comixed-client/pkg/lifecycle"
	"github.com/comixed/comixed-client/pkg/log"
)

// Frame types.
const (
	FrameSubscribe   = "SUBSCRIBE"
	FrameUnsubscribe = "UNSUBSCRIBE"
	FrameMessage     = "MESSAGE"
)

const writeTimeout = 10 * time.Second

// Frame is one message on the wire.
type Frame struct {
	Type  string          `json:"type"`
	ID    string          `json:"id,omitempty"`
	Topic string          `json:"topic,omitempty"`
	Body  json.RawMessage `json:"body,omitempty"`
}

type subscription struct {
	id      string
	topic   string
	handler ports.MessageHandler
}

func (s *subscription) ID() string    { return s.id }
func (s *subscription) Topic() string { return s.topic }

// Option configures a Client.
type Option func(*Client)

// WithToken sends token as a bearer Authorization header on connect.
func WithToken(token string) Option {
	return func(c *Client) {
		if token != "" {
			c.header.Set("Authorization", "Bearer "+token)
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(logger log.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithDialer overrides the WebSocket dialer.
func WithDialer(d *websocket.Dialer) Option {
	return func(c *Client) { c.dialer = d }
}

// WithBackoff sets the reconnect delays.
func WithBackoff(initial, max time.Duration) Option {
	return func(c *Client) { c.backoff = lifecycle.NewBackoff(initial, max) }
}

// Client is a reconnecting WebSocket messaging client.
type Client struct {
	url     string
	header  http.Header
	dialer  *websocket.Dialer
	backoff *lifecycle.Backoff
	logger  log.Logger

	mu   sync.Mutex
	conn *websocket.Conn
	subs map[string]*subscription

	writeMu sync.Mutex

	// connected is closed and replaced on every successful dial.
	connected chan struct{}
}

var _ ports.Messaging = (*Client)(nil)

// New creates a client for the endpoint at url. Run must be called to
// connect.
func New(url string, opts ...Option) *Client {
	c := &Client{
		url:       url,
		header:    http.Header{},
		dialer:    websocket.DefaultDialer,
		backoff:   lifecycle.NewBackoff(500*time.Millisecond, 30*time.Second),
		subs:      map[string]*subscription{},
		connected: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = log.OrNoop(c.logger).With(log.String("component", "ws"))
	return c
}

// Run connects and serves the connection, reconnecting until ctx is done.
func (c *Client) Run(ctx context.Context) error {
	for {
		err := c.serve(ctx)
		if ctx.Err() != nil {
			return nil
		}
		c.logger.Warn("connection lost", log.Err(err), log.Duration("retry_in", c.backoff.Current()))
		if err := c.backoff.Wait(ctx); err != nil {
			return nil
		}
	}
}

// Connected returns a channel closed once the next connection is up.
func (c *Client) Connected() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) serve(ctx context.Context) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.url, c.header)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}
	c.backoff.Reset()

	c.mu.Lock()
	c.conn = conn
	active := make([]*subscription, 0, len(c.subs))
	for _, s := range c.subs {
		active = append(active, s)
	}
	connected := c.connected
	c.connected = make(chan struct{})
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.conn == conn {
			c.conn = nil
		}
		c.mu.Unlock()
		conn.Close()
	}()

	for _, s := range active {
		if err := c.write(conn, Frame{Type: FrameSubscribe, ID: s.id, Topic: s.topic}); err != nil {
			return fmt.Errorf("resubscribe %s: %w", s.topic, err)
		}
	}
	c.logger.Info("connected", log.String("url", c.url), log.Int("subscriptions", len(active)))
	close(connected)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		var f Frame
		if err := conn.ReadJSON(&f); err != nil {
			return err
		}
		if f.Type != FrameMessage {
			c.logger.Debug("ignoring frame", log.String("type", f.Type))
			continue
		}
		c.deliver(f)
	}
}

func (c *Client) deliver(f Frame) {
	c.mu.Lock()
	var handlers []ports.MessageHandler
	for _, s := range c.subs {
		if s.topic == f.Topic {
			handlers = append(handlers, s.handler)
		}
	}
	c.mu.Unlock()

	if len(handlers) == 0 {
		c.logger.Debug("message without subscriber", log.String("topic", f.Topic))
		return
	}
	for _, h := range handlers {
		h(f.Body)
	}
}

func (c *Client) write(conn *websocket.Conn, f Frame) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(f)
}

// Subscribe registers handler for topic. While disconnected the
// subscription is kept and sent once the connection is up.
func (c *Client) Subscribe(ctx context.Context, topic string, handler ports.MessageHandler) (ports.Subscription, error) {
	if topic == "" || handler == nil {
		return nil, errors.New("ws: subscribe needs a topic and a handler")
	}
	s := &subscription{id: uuid.NewString(), topic: topic, handler: handler}

	c.mu.Lock()
	c.subs[s.id] = s
	conn := c.conn
	c.mu.Unlock()

	if conn != nil {
		if err := c.write(conn, Frame{Type: FrameSubscribe, ID: s.id, Topic: topic}); err != nil {
			c.logger.Warn("subscribe deferred until reconnect", log.String("topic", topic), log.Err(err))
		}
	}
	return s, nil
}

// Unsubscribe cancels sub.
func (c *Client) Unsubscribe(ctx context.Context, sub ports.Subscription) error {
	if sub == nil {
		return nil
	}
	c.mu.Lock()
	_, ok := c.subs[sub.ID()]
	delete(c.subs, sub.ID())
	conn := c.conn
	c.mu.Unlock()

	if !ok || conn == nil {
		return nil
	}
	if err := c.write(conn, Frame{Type: FrameUnsubscribe, ID: sub.ID()}); err != nil {
		return fmt.Errorf("unsubscribe %s: %w", sub.Topic(), err)
	}
	return nil
}

// Topics returns the topics with an active subscription.
func (c *Client) Topics() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, s := range c.subs {
		if !seen[s.topic] {
			seen[s.topic] = true
			out = append(out, s.topic)
		}
	}
	return out
}
