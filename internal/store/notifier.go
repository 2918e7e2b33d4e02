package store

import (
	"context"
	log "log/slog"
	"sync"

	"postflow/internal/pkg/consts"
	"postflow/internal/pkg/redis"
)

// Notifier 写成功之后的变更广播
// 不携带负载：订阅方收到信号后自行重新拉取，契约只保证"有东西变了"。
type Notifier interface {
	Publish(ctx context.Context, ownerID string)
	Subscribe(ownerID string) (<-chan struct{}, func())
}

// LocalNotifier 进程内的变更分发，访客会话与无 Redis 部署使用
type LocalNotifier struct {
	mu   sync.Mutex
	subs map[string]map[int]chan struct{}
	next int
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{subs: make(map[string]map[int]chan struct{})}
}

func (n *LocalNotifier) Publish(_ context.Context, ownerID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, ch := range n.subs[ownerID] {
		select {
		case ch <- struct{}{}:
		default:
			// 订阅方没在消费就丢弃，至少一次投递由下一次写触发
		}
	}
}

func (n *LocalNotifier) Subscribe(ownerID string) (<-chan struct{}, func()) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs[ownerID] == nil {
		n.subs[ownerID] = make(map[int]chan struct{})
	}
	id := n.next
	n.next++
	ch := make(chan struct{}, 1)
	n.subs[ownerID][id] = ch

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if subs, ok := n.subs[ownerID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(n.subs, ownerID)
			}
		}
	}
	return ch, cancel
}

// RedisNotifier 跨实例/跨标签页的变更广播，托管会话使用
type RedisNotifier struct{}

func NewRedisNotifier() *RedisNotifier {
	return &RedisNotifier{}
}

func (n *RedisNotifier) Publish(ctx context.Context, ownerID string) {
	if err := redis.Publish(ctx, consts.StoreChangedCh+ownerID, "changed"); err != nil {
		log.WarnContext(ctx, "变更广播失败", "ownerID", ownerID, "err", err)
	}
}

func (n *RedisNotifier) Subscribe(ownerID string) (<-chan struct{}, func()) {
	ctx, cancel := context.WithCancel(context.Background())
	pubsub := redis.Subscribe(ctx, consts.StoreChangedCh+ownerID)

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		for {
			select {
			case _, ok := <-pubsub.Channel():
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	stop := func() {
		cancel()
		_ = pubsub.Close()
	}
	return out, stop
}
