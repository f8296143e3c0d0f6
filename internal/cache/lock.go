package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	ri "github.com/redis/go-redis/v9"

	"SkiBuddy/storage/redis"
)

// 通过 SetNX 实现的分布式锁，用于防止同一用户重复提交资料
const (
	lockPrefix = "lock"
)

// 只删除自己持有的锁
var unlockScript = ri.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// TryLock 获取锁，成功时返回持有者 token
func TryLock(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()

	ok, err := redis.Client().SetNX(ctx, redis.Key(lockPrefix, key), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Unlock 释放由 token 持有的锁
func Unlock(ctx context.Context, key, token string) error {
	return unlockScript.Run(ctx, redis.Client(), []string{redis.Key(lockPrefix, key)}, token).Err()
}

// SubmitLock 资料提交锁，每个用户同一时间只允许一次提交
type SubmitLock struct {
	ttl time.Duration
}

func NewSubmitLock(ttl time.Duration) *SubmitLock {
	return &SubmitLock{ttl: ttl}
}

func submitLockKey(userID string) string {
	return "onboarding:submit:" + userID
}

// Acquire 获取失败时 ok 为 false；成功时返回的 release 必须调用
func (l *SubmitLock) Acquire(ctx context.Context, userID string) (release func(context.Context) error, ok bool, err error) {
	key := submitLockKey(userID)

	token, ok, err := TryLock(ctx, key, l.ttl)
	if err != nil || !ok {
		return nil, ok, err
	}

	return func(ctx context.Context) error {
		return Unlock(ctx, key, token)
	}, true, nil
}
