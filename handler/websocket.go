package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"sync"

	"github.com/ecoradom4/cine-backend/config"
	"github.com/gofiber/contrib/websocket"
	"github.com/redis/go-redis/v9"
)

var (
	redisClient = redis.NewClient(&redis.Options{
		Addr: config.ConfigDefault("REDIS_ADDR", "localhost:6379"),
	})

	clients = make(map[uint]map[*websocket.Conn]bool)
	mu      sync.Mutex
)

// SeatUpdateMessage payload đẩy qua Redis mỗi khi trạng thái ghế đổi
type SeatUpdateMessage struct {
	ShowtimeId uint              `json:"showtimeId"`
	Seats      map[string]string `json:"seats"` // seat -> occupied | reserved
	Available  int               `json:"available"`
}

func showtimeChannel(showtimeId uint) string {
	return fmt.Sprintf("showtime:%d", showtimeId)
}

// PublishSeatChange đẩy trạng thái ghế mới nhất lên Redis cho các WS client
func PublishSeatChange(showtimeId uint) {
	msg, err := BuildSeatUpdateMessage(showtimeId)
	if err != nil {
		log.Printf("Lỗi build seat update: %v", err)
		return
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(), showtimeChannel(showtimeId), payload).Err(); err != nil {
		log.Printf("Lỗi publish Redis: %v", err)
	}
}

// WebSocketConnection xử lý WS connection theo từng suất chiếu
func WebSocketConnection(c *websocket.Conn) {
	// Lấy showtimeId từ route
	showtimeIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(showtimeIdStr, 10, 64)
	showtimeId := uint(id64)

	// Khi WS disconnect → xoá client
	defer func() {
		mu.Lock()
		if clients[showtimeId] != nil {
			delete(clients[showtimeId], c)
		}
		mu.Unlock()
		c.Close()
	}()

	// Thêm client mới vào room
	mu.Lock()
	if clients[showtimeId] == nil {
		clients[showtimeId] = make(map[*websocket.Conn]bool)
	}
	clients[showtimeId][c] = true
	mu.Unlock()

	// Gửi trạng thái ghế lần đầu
	if msg, err := BuildSeatUpdateMessage(showtimeId); err == nil {
		c.WriteJSON(msg)
	}

	// Sub kênh Redis
	pubsub := redisClient.Subscribe(context.Background(), showtimeChannel(showtimeId))
	defer pubsub.Close()

	// Lắng nghe message từ Redis
	channel := pubsub.Channel()

	for msg := range channel {
		payload := []byte(msg.Payload)

		mu.Lock()
		for conn := range clients[showtimeId] {
			// Nếu client lỗi → xoá
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				conn.Close()
				delete(clients[showtimeId], conn)
			}
		}
		mu.Unlock()
	}
}
