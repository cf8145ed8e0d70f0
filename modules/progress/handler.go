package progress

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type ProgressHandler struct {
	hub *Hub
}

func NewProgressHandler(hub *Hub) *ProgressHandler {
	return &ProgressHandler{hub: hub}
}

// RegisterRoutes wires the progress WebSocket endpoint.
func (h *ProgressHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/ws/progress", h.HandleProgress)
	log.Println("✅ Progress routes registered: /ws/progress")
}

// HandleProgress upgrades the connection and streams the job's progress
// updates until either side closes.
func (h *ProgressHandler) HandleProgress(w http.ResponseWriter, r *http.Request) {
	jobID := r.URL.Query().Get("job")
	if jobID == "" {
		http.Error(w, "Missing job parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ [Progress] WebSocket upgrade failed: %v", err)
		return
	}

	sub := h.hub.Subscribe(jobID)

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

func (h *ProgressHandler) writePump(conn *websocket.Conn, sub *Subscriber) {
	defer conn.Close()

	for message := range sub.Messages() {
		if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
			log.Printf("⚠️  [Progress] WebSocket write error: %v", err)
			return
		}
	}

	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards inbound frames; it exists to notice the peer closing.
func (h *ProgressHandler) readPump(conn *websocket.Conn, sub *Subscriber) {
	defer func() {
		h.hub.Unsubscribe(sub)
		conn.Close()
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️  [Progress] WebSocket error: %v", err)
			}
			return
		}
	}
}
