package network

import (
	"sync"

	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
)

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: EntityID -> Личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сущности
func (b *Broadcaster) Register(entityID string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем: старое соединение вытесняется
	if old, ok := b.subscribers[entityID]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[entityID] = ch
	return ch
}

// Unregister удаляет подписчика, только если канал тот же.
// Иначе отключение старого соединения закрыло бы канал нового.
func (b *Broadcaster) Unregister(entityID string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[entityID]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, entityID)
	}
}

// SendTo отправляет сообщение конкретному ID (Unicast)
func (b *Broadcaster) SendTo(entityID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[entityID]; ok {
		select {
		case ch <- msg:
		default:
			logger.Component("hub").WithField("entity_id", entityID).Warn("Channel full, update dropped")
		}
	}
}

// Subscribers - ID всех подключенных сущностей
func (b *Broadcaster) Subscribers() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]string, 0, len(b.subscribers))
	for id := range b.subscribers {
		out = append(out, id)
	}
	return out
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
