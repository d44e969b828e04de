package server

import (
	"context"
	"net/http"
	"time"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
	"advanced-melee/pkg/utils"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	joinTimeout    = 5 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService
type Client struct {
	Game     *engine.GameService
	Conn     *websocket.Conn
	Send     chan api.ServerResponse
	EntityID string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game: game,
		Conn: conn,
		Send: make(chan api.ServerResponse, 256),
	}
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	var updates chan api.ServerResponse
	defer func() {
		if updates != nil {
			c.Game.Hub.Unregister(c.EntityID, updates)
			ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
			if err := c.Game.Leave(ctx, c.EntityID); err != nil {
				logger.Log.WithError(err).Warn("failed to release entity")
			}
			cancel()
			logger.Log.WithField("entity_id", c.EntityID).Info("Client disconnected")
		} else {
			// writePump допишет ошибку входа и сам закроет соединение
			close(c.Send)
			return
		}
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN): Token - ID пешки
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}
	c.EntityID = loginCmd.Token

	ctx, cancel := context.WithTimeout(context.Background(), joinTimeout)
	err := c.Game.Join(ctx, c.EntityID)
	cancel()
	if err != nil {
		logger.Log.WithError(err).WithField("entity_id", c.EntityID).Warn("Login rejected")
		c.Send <- errorResponse(err.Error())
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"entity_id": c.EntityID,
	}).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates = c.Game.Hub.Register(c.EntityID)

	// Пересылка обновлений из Hub в writePump
	go func(in chan api.ServerResponse) {
		for msg := range in {
			c.Send <- msg
		}
		close(c.Send)
	}(updates)

	// Отправляем INIT (триггер первой отрисовки)
	c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: c.EntityID})

	// 3. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		// Команды всегда от имени своей пешки
		cmd.Token = c.EntityID
		c.Game.ProcessCommand(cmd)
	}
}

func errorResponse(text string) api.ServerResponse {
	return api.ServerResponse{
		Type: "ERROR",
		Logs: []api.LogEntry{{
			ID:        utils.GenerateID(),
			Text:      text,
			Type:      domain.LogError,
			Timestamp: time.Now().UnixMilli(),
		}},
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
