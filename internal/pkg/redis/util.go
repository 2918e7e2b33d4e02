package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// SetWithExpiration 设置键值对并设置过期时间
func SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	return Rdb.Set(ctx, key, value, expiration).Err()
}

// GetValue 获取字符串类型的值；键不存在返回空串
func GetValue(ctx context.Context, key string) (string, error) {
	value, err := Rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", err
	}
	return value, nil
}

// TryLock SetNX 抢锁，带重试
func TryLock(ctx context.Context, key string, value interface{}, expiration time.Duration, retryTimes int) (bool, error) {
	for i := 0; i < retryTimes || retryTimes == -1; i++ {
		success, err := Rdb.SetNX(ctx, key, value, expiration).Result()
		if err != nil {
			return false, err
		}
		if success {
			return true, nil
		}
		time.Sleep(time.Millisecond * 200)
	}
	return false, nil
}

// UnLock 释放锁（值匹配才删除）
func UnLock(ctx context.Context, key string, value interface{}) {
	Rdb.Eval(ctx, "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end", []string{key}, value)
}

// DeleteKey 删除一个键
func DeleteKey(ctx context.Context, key string) error {
	return Rdb.Del(ctx, key).Err()
}

// HSet 设置哈希字段
func HSet(ctx context.Context, key string, field string, value interface{}) error {
	return Rdb.HSet(ctx, key, field, value).Err()
}

// HGetAll 获取整个哈希
func HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return Rdb.HGetAll(ctx, key).Result()
}

// HDel 删除哈希字段
func HDel(ctx context.Context, key string, fields ...string) error {
	return Rdb.HDel(ctx, key, fields...).Err()
}

// Publish 向频道广播消息
func Publish(ctx context.Context, channel string, payload interface{}) error {
	return Rdb.Publish(ctx, channel, payload).Err()
}

// Subscribe 订阅频道
func Subscribe(ctx context.Context, channels ...string) *redis.PubSub {
	return Rdb.Subscribe(ctx, channels...)
}
