package handler

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

const (
	queueUpdateChannel = "queue:updates"
	queueSlipChannel   = "queue:print"
)

var (
	redisClient = redis.NewClient(&redis.Options{Addr: "localhost:6379"})

	clients       = make(map[*websocket.Conn]bool)
	mu            sync.Mutex
	subscribeOnce sync.Once
)

// WebSocketConnection: client màn hình chờ nhận bảng xếp hàng realtime.
// Mỗi process đúng một subscriber redis — connection chỉ đăng ký/hủy đăng ký,
// không tự chạy vòng subscribe riêng (N client sẽ gửi trùng N lần).
func WebSocketConnection(c *websocket.Conn) {
	subscribeOnce.Do(func() {
		go fanOutQueueUpdates()
	})

	mu.Lock()
	clients[c] = true
	mu.Unlock()

	defer func() {
		mu.Lock()
		delete(clients, c)
		mu.Unlock()
		c.Close()
	}()

	// giữ connection, thoát khi client đóng
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func fanOutQueueUpdates() {
	pubsub := redisClient.Subscribe(context.Background(), queueUpdateChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients {
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients, conn)
			}
		}
		mu.Unlock()
	}
}

// BroadcastQueueUpdate bắn tín hiệu refresh cho mọi màn hình chờ qua redis
func BroadcastQueueUpdate() {
	payload, _ := json.Marshal(map[string]string{"event": "queue_changed"})
	if err := redisClient.Publish(context.Background(), queueUpdateChannel, payload).Err(); err != nil {
		log.Printf("Lỗi publish queue update: %v", err)
	}
}

// PublishQueueSlip đẩy yêu cầu in phiếu cho printer daemon (collaborator
// ngoài) — fire-and-forget, lỗi không ảnh hưởng việc tạo vé
func PublishQueueSlip(queueNumber, transactionType string) {
	payload, _ := json.Marshal(map[string]string{
		"queueNumber":     queueNumber,
		"transactionType": transactionType,
	})
	if err := redisClient.Publish(context.Background(), queueSlipChannel, payload).Err(); err != nil {
		log.Printf("Lỗi publish queue slip %s: %v", queueNumber, err)
	}
}
