// Package live pushes dashboard events (new bookings, check-ins) to
// connected websocket clients so the recent-activity view updates without
// polling.
package live

import (
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins — adjust for production if needed
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

// HandleWS subscribes the client to a topic for the lifetime of the
// connection. The dashboard uses the "dashboard" topic.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	topic := ps.ByName("topic")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[topic] = append(subscribers[topic], conn)
	mu.Unlock()

	for {
		// This keeps the connection alive until the client disconnects
		_, _, err := conn.ReadMessage()
		if err != nil {
			break
		}
	}

	// Clean up on disconnect
	mu.Lock()
	conns := subscribers[topic]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[topic] = newList
	mu.Unlock()

	conn.Close()
}

// Broadcast sends val to every subscriber of the topic, dropping dead
// connections along the way.
func Broadcast(topic string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[topic]
	newList := conns[:0]

	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}

	subscribers[topic] = newList
}
