package ws

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
)

type Client struct {
	Conn *websocket.Conn
	Send chan []byte
}

type Hub struct {
	Clients       map[string]map[*websocket.Conn]*Client // keyed by subject code
	GlobalClients map[*websocket.Conn]*Client
	Mutex         sync.RWMutex
}

var H = Hub{
	Clients:       make(map[string]map[*websocket.Conn]*Client),
	GlobalClients: make(map[*websocket.Conn]*Client),
}

// LoadStatusUpdate is pushed to clients watching one subject's load.
type LoadStatusUpdate struct {
	SubjectCode string  `json:"subject_code"`
	Stage       string  `json:"stage"` // loading|done|error
	Progress    float64 `json:"progress"`
	Error       string  `json:"error,omitempty"`
}

func (h *Hub) Register(subjectCode string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if _, ok := h.Clients[subjectCode]; !ok {
		h.Clients[subjectCode] = make(map[*websocket.Conn]*Client)
	}

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.Clients[subjectCode][conn] = client

	go h.readPump(subjectCode, conn)
	go h.writePump(subjectCode, conn)
}

func (h *Hub) RegisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	client := &Client{
		Conn: conn,
		Send: make(chan []byte, 256),
	}
	h.GlobalClients[conn] = client

	go h.readGlobalPump(conn)
	go h.writeGlobalPump(conn)
}

func (h *Hub) Broadcast(subjectCode string, data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	if clients, ok := h.Clients[subjectCode]; ok {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
			}
		}
	}
}

func (h *Hub) BroadcastGlobal(data []byte) {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	for _, client := range h.GlobalClients {
		select {
		case client.Send <- data:
		default:
		}
	}
}

// SendLoadStatus pushes a curriculum load progress update to everyone
// watching that subject code.
func SendLoadStatus(subjectCode, stage string, progress float64, errorMsg string) {
	update := LoadStatusUpdate{
		SubjectCode: subjectCode,
		Stage:       stage,
		Progress:    progress,
		Error:       errorMsg,
	}
	data, err := json.Marshal(update)
	if err != nil {
		log.Println("JSON marshal error:", err)
		return
	}
	H.Broadcast(subjectCode, data)
}

// BroadcastCurriculumChanged signals list views to refetch.
func BroadcastCurriculumChanged() {
	H.BroadcastGlobal([]byte(`{"type": "curriculum_changed"}`))
}

func (h *Hub) Unregister(subjectCode string, conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if clients, ok := h.Clients[subjectCode]; ok {
		if client, ok := clients[conn]; ok {
			close(client.Send)
			delete(clients, conn)
		}
		if len(clients) == 0 {
			delete(h.Clients, subjectCode)
		}
	}
}

func (h *Hub) UnregisterGlobal(conn *websocket.Conn) {
	h.Mutex.Lock()
	defer h.Mutex.Unlock()

	if client, ok := h.GlobalClients[conn]; ok {
		close(client.Send)
		delete(h.GlobalClients, conn)
	}
}

// GetStats reports connection counts for the health endpoint.
func (h *Hub) GetStats() map[string]int {
	h.Mutex.RLock()
	defer h.Mutex.RUnlock()

	perSubject := 0
	for _, clients := range h.Clients {
		perSubject += len(clients)
	}
	return map[string]int{
		"subject_clients": perSubject,
		"global_clients":  len(h.GlobalClients),
	}
}

func (h *Hub) readPump(subjectCode string, conn *websocket.Conn) {
	defer h.Unregister(subjectCode, conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(subjectCode string, conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.Clients[subjectCode][conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}

func (h *Hub) readGlobalPump(conn *websocket.Conn) {
	defer h.UnregisterGlobal(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writeGlobalPump(conn *websocket.Conn) {
	h.Mutex.RLock()
	client := h.GlobalClients[conn]
	h.Mutex.RUnlock()
	if client == nil {
		return
	}
	defer func() {
		conn.WriteMessage(websocket.CloseMessage, []byte{})
		conn.Close()
	}()
	for msg := range client.Send {
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			break
		}
	}
}
