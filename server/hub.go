package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/beatball/player"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Ping period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Inbound frames are small command objects
	maxMessageSize = 512

	sendBuffer      = 64
	broadcastBuffer = 256
)

// Event names
const (
	EventFrame = "frame"
	EventHit   = "hit"
	EventError = "error"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is the outbound websocket envelope
type Message struct {
	Event string           `json:"event"`
	Frame *player.Snapshot `json:"frame,omitempty"`
	Hit   *player.Hit      `json:"hit,omitempty"`
	Error string           `json:"error,omitempty"`
}

// Request is the inbound websocket envelope
type Request struct {
	Command string `json:"command"`
}

// CommandSink accepts parsed client commands; false means dropped
type CommandSink func(cmd player.Command) bool

// Client is one websocket connection
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// direct is a message addressed to one client
type direct struct {
	client *Client
	data   []byte
}

// Hub tracks connected clients and fans messages out to them
// Only Run touches the client set
type Hub struct {
	clients    map[*Client]bool
	broadcast  chan []byte
	direct     chan direct
	register   chan *Client
	unregister chan *Client
	done       chan struct{}

	sink    CommandSink
	count   atomic.Int64
	dropped atomic.Int64
}

var _ player.HitListener = (*Hub)(nil)

// NewHub creates a hub that forwards client commands to sink
func NewHub(sink CommandSink) *Hub {
	return &Hub{
		clients:    make(map[*Client]bool),
		broadcast:  make(chan []byte, broadcastBuffer),
		direct:     make(chan direct, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		sink:       sink,
	}
}

// Run owns the client set until ctx is done, then closes every client
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for client := range h.clients {
				h.unregisterClient(client)
			}
			return

		case client := <-h.register:
			h.clients[client] = true
			h.count.Store(int64(len(h.clients)))
			log.Printf("server: client connected (total %d)", len(h.clients))

		case client := <-h.unregister:
			h.unregisterClient(client)

		case data := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					h.unregisterClient(client)
				}
			}

		case d := <-h.direct:
			if h.clients[d.client] {
				select {
				case d.client.send <- d.data:
				default:
				}
			}
		}
	}
}

// ClientCount returns the number of registered clients
func (h *Hub) ClientCount() int { return int(h.count.Load()) }

// Dropped returns messages discarded because the broadcast queue was full
func (h *Hub) Dropped() int64 { return h.dropped.Load() }

// Publish queues msg for every client without blocking
func (h *Hub) Publish(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("server: marshal %s: %v", msg.Event, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		h.dropped.Add(1)
	}
}

// PublishFrame broadcasts a snapshot
func (h *Hub) PublishFrame(snap *player.Snapshot) {
	if snap == nil || h.ClientCount() == 0 {
		return
	}
	h.Publish(&Message{Event: EventFrame, Frame: snap})
}

// OnHit broadcasts a hit event; runs on the driver goroutine
func (h *Hub) OnHit(hit player.Hit) {
	if h.ClientCount() == 0 {
		return
	}
	h.Publish(&Message{Event: EventHit, Hit: &hit})
}

// ServeWS upgrades the request and starts the client pumps
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("server: websocket upgrade: %v", err)
		return
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Hub) unregisterClient(client *Client) {
	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.send)
	h.count.Store(int64(len(h.clients)))
	log.Printf("server: client disconnected (remaining %d)", len(h.clients))
}

// reply sends a message to this client only, dropping it when the hub is busy
func (c *Client) reply(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.hub.direct <- direct{client: c, data: data}:
	default:
	}
}

// readPump forwards client commands to the hub's sink
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("server: websocket read: %v", err)
			}
			return
		}

		var req Request
		if err := json.Unmarshal(data, &req); err != nil {
			c.reply(&Message{Event: EventError, Error: "malformed request"})
			continue
		}
		cmd, err := player.ParseCommand(req.Command)
		if err != nil {
			c.reply(&Message{Event: EventError, Error: err.Error()})
			continue
		}
		if c.hub.sink != nil && !c.hub.sink(cmd) {
			c.reply(&Message{Event: EventError, Error: "command queue full"})
		}
	}
}

// writePump drains the send channel and keeps the connection alive
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
