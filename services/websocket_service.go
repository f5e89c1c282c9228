package services

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"mindspace-notes/mindspace/store"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type WebSocketServiceInterface interface {
	Start()
	Stop()
	HandleConnection(c *gin.Context)
	BroadcastMessage(message []byte)
}

// Client represents a connected WebSocket client
type Client struct {
	ID   string
	Conn *websocket.Conn
	Send chan []byte
}

// ServerMessage pushes a live-query snapshot to the client
type ServerMessage struct {
	Type    string      `json:"type"`
	Query   string      `json:"query,omitempty"`
	Payload interface{} `json:"payload"`
}

// WebSocketService bridges the store's live queries to connected UI clients:
// every committed mutation results in fresh snapshots of the active, trash
// and trash-count projections being broadcast.
type WebSocketService struct {
	noteStore *store.NoteStore

	clients      map[string]*Client
	register     chan *Client
	unregister   chan *Client
	broadcast    chan []byte
	clientsMutex sync.RWMutex

	upgrader websocket.Upgrader

	mu        sync.Mutex
	isRunning bool
	stopChan  chan struct{}
	stopFns   []func()
}

func NewWebSocketService(noteStore *store.NoteStore) *WebSocketService {
	return &WebSocketService{
		noteStore:  noteStore,
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		stopChan: make(chan struct{}),
	}
}

func (ws *WebSocketService) Start() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if ws.isRunning {
		return
	}
	ws.isRunning = true

	go ws.run()

	activeSub := ws.noteStore.WatchActiveNotes()
	trashSub := ws.noteStore.WatchTrashNotes()
	countSub := ws.noteStore.WatchTrashCount()
	ws.stopFns = append(ws.stopFns, activeSub.Unsubscribe, trashSub.Unsubscribe, countSub.Unsubscribe)

	go forwardSnapshots(ws, "active_notes", activeSub)
	go forwardSnapshots(ws, "trash_notes", trashSub)
	go forwardSnapshots(ws, "trash_count", countSub)
}

func (ws *WebSocketService) Stop() {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if !ws.isRunning {
		return
	}
	ws.isRunning = false

	for _, stop := range ws.stopFns {
		stop()
	}
	ws.stopFns = nil
	close(ws.stopChan)
}

// BroadcastMessage sends a message to all connected clients
func (ws *WebSocketService) BroadcastMessage(message []byte) {
	select {
	case ws.broadcast <- message:
	case <-ws.stopChan:
	}
}

func (ws *WebSocketService) HandleConnection(c *gin.Context) {
	conn, err := ws.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.New().String(),
		Conn: conn,
		Send: make(chan []byte, 16),
	}

	ws.register <- client
	go ws.writePump(client)
	go ws.readPump(client)
}

func (ws *WebSocketService) run() {
	for {
		select {
		case <-ws.stopChan:
			ws.clientsMutex.Lock()
			for _, client := range ws.clients {
				close(client.Send)
			}
			ws.clients = make(map[string]*Client)
			ws.clientsMutex.Unlock()
			return

		case client := <-ws.register:
			ws.clientsMutex.Lock()
			ws.clients[client.ID] = client
			ws.clientsMutex.Unlock()
			log.Printf("WebSocket client connected: %s", client.ID)

		case client := <-ws.unregister:
			ws.clientsMutex.Lock()
			if _, ok := ws.clients[client.ID]; ok {
				delete(ws.clients, client.ID)
				close(client.Send)
			}
			ws.clientsMutex.Unlock()
			log.Printf("WebSocket client disconnected: %s", client.ID)

		case message := <-ws.broadcast:
			ws.clientsMutex.RLock()
			for _, client := range ws.clients {
				select {
				case client.Send <- message:
				default:
					// Slow consumer; it will catch up with the next snapshot.
				}
			}
			ws.clientsMutex.RUnlock()
		}
	}
}

func (ws *WebSocketService) writePump(client *Client) {
	defer client.Conn.Close()
	for message := range client.Send {
		if err := client.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (ws *WebSocketService) readPump(client *Client) {
	defer func() {
		select {
		case ws.unregister <- client:
		case <-ws.stopChan:
		}
		client.Conn.Close()
	}()
	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			return
		}
	}
}

func forwardSnapshots[T any](ws *WebSocketService, query string, sub *store.Subscription[T]) {
	for {
		select {
		case <-ws.stopChan:
			return
		case snapshot, ok := <-sub.C:
			if !ok {
				return
			}
			message, err := json.Marshal(ServerMessage{
				Type:    "snapshot",
				Query:   query,
				Payload: snapshot,
			})
			if err != nil {
				log.Printf("Failed to encode %s snapshot: %v", query, err)
				continue
			}
			ws.BroadcastMessage(message)
		}
	}
}
