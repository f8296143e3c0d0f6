package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	ri "github.com/redis/go-redis/v9"

	"SkiBuddy/internal/onboarding"
	"SkiBuddy/storage/redis"
)

const wizardPrefix = "onboarding:wizard"

// WizardCache 向导草稿存放在 Redis，每次写入刷新草稿及其照片的 TTL。
// Key: {prefix}:onboarding:wizard:{user_id}
type WizardCache struct {
	ttl time.Duration
}

func NewWizardCache(ttl time.Duration) *WizardCache {
	return &WizardCache{ttl: ttl}
}

func wizardKey(userID string) string {
	return redis.Key(wizardPrefix, userID)
}

// Load 没有草稿时返回 ok=false
func (c *WizardCache) Load(ctx context.Context, userID string) (onboarding.Wizard, bool, error) {
	data, err := redis.Client().Get(ctx, wizardKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, ri.Nil) {
			return onboarding.Wizard{}, false, nil
		}
		return onboarding.Wizard{}, false, fmt.Errorf("load wizard: %w", err)
	}

	var w onboarding.Wizard
	if err := json.Unmarshal(data, &w); err != nil || !w.Step.Valid() {
		// 损坏的数据当作没有草稿
		return onboarding.Wizard{}, false, nil
	}
	return w, true, nil
}

func (c *WizardCache) Save(ctx context.Context, userID string, w onboarding.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode wizard: %w", err)
	}

	// 草稿续期时同时续期它引用的暂存照片，否则照片会先于草稿过期
	pipe := redis.Client().TxPipeline()
	pipe.Set(ctx, wizardKey(userID), data, c.ttl)
	for _, ref := range w.Draft.Photos {
		if id, ok := AssetID(ref); ok {
			pipe.Expire(ctx, assetKey(id), c.ttl)
		}
	}
	pipe.Expire(ctx, assetSetKey(userID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save wizard: %w", err)
	}
	return nil
}

func (c *WizardCache) Discard(ctx context.Context, userID string) error {
	return redis.Client().Del(ctx, wizardKey(userID)).Err()
}
