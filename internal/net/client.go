package net

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is a CLIENT's connection to a host.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex // one writer at a time
}

// Dial connects to the host at addr ("host:port").
func Dial(ctx context.Context, addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: WebSocketPath}
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", addr, err)
	}
	conn.SetReadLimit(maxMessageSize)
	return &Client{conn: conn}, nil
}

// LocalAddr is the client's side of the connection.
func (c *Client) LocalAddr() string {
	return c.conn.LocalAddr().String()
}

// Send writes msg to the host.
func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteJSON(msg); err != nil {
		return fmt.Errorf("send %s: %w", msg.Type, err)
	}
	return nil
}

// Listen calls handle for every message from the host until the connection
// closes. A normal close returns nil.
func (c *Client) Listen(handle func(Message)) error {
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[CLIENT] Bad message from host: %v", err)
			continue
		}
		handle(msg)
	}
}

// Close says goodbye to the host and closes the connection.
func (c *Client) Close() error {
	c.mu.Lock()
	err := c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	c.mu.Unlock()
	if cerr := c.conn.Close(); err == nil {
		err = cerr
	}
	return err
}
