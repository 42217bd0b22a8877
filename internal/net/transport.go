package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	// Ornaments are small PNGs, but a 36-ornament snapshot is not.
	maxMessageSize = 16 << 20
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBuffer     = 64
)

// ErrPeerBusy is returned when a peer's outgoing queue is full.
var ErrPeerBusy = errors.New("peer is not keeping up")

// Peer is a client connected to the host.
type Peer struct {
	ID   string
	Name string

	conn *websocket.Conn
	send chan Message
	done chan struct{}
	once sync.Once
}

// Send queues msg for the peer without blocking.
func (p *Peer) Send(msg Message) error {
	select {
	case <-p.done:
		return websocket.ErrCloseSent
	default:
	}
	select {
	case p.send <- msg:
		return nil
	default:
		return ErrPeerBusy
	}
}

// RemoteAddr returns the peer's network address.
func (p *Peer) RemoteAddr() string {
	return p.conn.RemoteAddr().String()
}

func (p *Peer) close() {
	p.once.Do(func() {
		close(p.done)
		p.conn.Close()
	})
}

// Hub is used by the HOST to accept websocket clients and fan messages out
// to them.
type Hub struct {
	upgrader websocket.Upgrader
	peers    map[string]*Peer
	mu       sync.RWMutex

	// OnConnect runs before p receives any broadcast. It must not call
	// back into the hub.
	OnConnect    func(p *Peer)
	OnMessage    func(p *Peer, msg Message)
	OnDisconnect func(p *Peer)
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Peers are on the local network and are not browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		peers: make(map[string]*Peer),
	}
}

// ServeHTTP upgrades the request and serves the peer until it disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[HUB] Upgrade failed for %s: %v", r.RemoteAddr, err)
		return
	}
	p := &Peer{
		ID:   uuid.NewString(),
		conn: conn,
		send: make(chan Message, sendBuffer),
		done: make(chan struct{}),
	}
	go p.writePump()
	h.add(p)
	defer h.remove(p)

	h.readPump(p)
}

// Broadcast queues msg for every peer except exclude.
func (h *Hub) Broadcast(msg Message, exclude *Peer) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, p := range h.peers {
		if p == exclude {
			continue
		}
		if err := p.Send(msg); err != nil {
			log.Printf("[HUB] Error sending to %s: %v", p.RemoteAddr(), err)
		}
	}
}

// Len returns the number of connected peers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.peers)
}

// Close disconnects every peer.
func (h *Hub) Close() {
	h.mu.Lock()
	peers := h.peers
	h.peers = make(map[string]*Peer)
	h.mu.Unlock()
	for _, p := range peers {
		p.close()
	}
}

// add registers p and runs OnConnect under the same lock Broadcast takes,
// so whatever OnConnect queues reaches p before any broadcast does.
func (h *Hub) add(p *Peer) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.peers[p.ID] = p
	log.Printf("[HUB] Added connection: %s", p.RemoteAddr())
	if h.OnConnect != nil {
		h.OnConnect(p)
	}
}

func (h *Hub) remove(p *Peer) {
	h.mu.Lock()
	_, ok := h.peers[p.ID]
	delete(h.peers, p.ID)
	h.mu.Unlock()
	p.close()
	if ok {
		log.Printf("[HUB] Removed connection: %s", p.RemoteAddr())
		if h.OnDisconnect != nil {
			h.OnDisconnect(p)
		}
	}
}

func (h *Hub) readPump(p *Peer) {
	p.conn.SetReadLimit(maxMessageSize)
	p.conn.SetReadDeadline(time.Now().Add(pongWait))
	p.conn.SetPongHandler(func(string) error {
		return p.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, data, err := p.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[HUB] Client %s disconnected: %v", p.RemoteAddr(), err)
			}
			return
		}
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("[HUB] Bad message from %s: %v", p.RemoteAddr(), err)
			continue
		}
		if h.OnMessage != nil {
			h.OnMessage(p, msg)
		}
	}
}

func (p *Peer) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case msg := <-p.send:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteJSON(msg); err != nil {
				log.Printf("[HUB] Write to %s failed: %v", p.RemoteAddr(), err)
				p.close()
				return
			}
		case <-ticker.C:
			p.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := p.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				p.close()
				return
			}
		case <-p.done:
			return
		}
	}
}

// Serve runs the hub on port until ctx is cancelled.
func Serve(ctx context.Context, port int, hub *Hub) error {
	mux := http.NewServeMux()
	mux.Handle(WebSocketPath, hub)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		log.Printf("[HUB] Host server listening on port %d", port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("serve tree on port %d: %w", port, err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		hub.Close()
		return srv.Shutdown(shutdownCtx)
	}
}
