package orders

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"munchmate/mq"
	"munchmate/utils"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

// Client is one connected order-status listener.
type Client struct {
	Conn   *websocket.Conn
	Send   chan []byte
	UserID string
}

type broadcastMsg struct {
	UserID string
	Data   []byte
}

// Hub fans order events out to each customer's open connections.
// Rooms are keyed by user id: you only see your own order updates.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.UserID] == nil {
				h.rooms[c.UserID] = make(map[*Client]bool)
			}
			h.rooms[c.UserID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.UserID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.UserID] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.UserID], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for _, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
					c.Conn.Close()
				}
			}
			h.rooms = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Deliver implements mq.Sink: forwards an order event to its owner's room.
func (h *Hub) Deliver(event mq.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Printf("Hub marshal error: %v", err)
		return
	}
	h.broadcast <- broadcastMsg{UserID: event.UserID, Data: data}
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// ServeWS upgrades the connection and streams the caller's order events.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("ServeWS upgrade error:", err)
		return
	}

	client := &Client{Conn: conn, Send: make(chan []byte, 16), UserID: userID}
	h.register <- client

	go func() {
		for msg := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				break
			}
		}
		conn.Close()
	}()

	// Reads keep the connection alive until the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister <- client
}
