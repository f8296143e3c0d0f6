package cache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	ri "github.com/redis/go-redis/v9"

	"SkiBuddy/storage/redis"
)

const (
	assetPrefix    = "onboarding:asset"
	assetSetPrefix = "onboarding:assets"

	// AssetRefScheme 本地素材引用前缀，草稿中的照片都是 asset:<uuid>
	AssetRefScheme = "asset:"
)

// ErrAssetNotFound 素材不存在或已过期
var ErrAssetNotFound = errors.New("asset not found or expired")

// AssetCache 暂存用户选中的照片字节，直到提交时上传到对象存储。
// 每个用户的素材引用另记在一个集合里，放弃引导时一起删除。
type AssetCache struct {
	ttl time.Duration
}

func NewAssetCache(ttl time.Duration) *AssetCache {
	return &AssetCache{ttl: ttl}
}

func assetKey(id string) string {
	return redis.Key(assetPrefix, id)
}

func assetSetKey(userID string) string {
	return redis.Key(assetSetPrefix, userID)
}

// AssetID 从引用中取出 id，不是素材引用时返回 false
func AssetID(ref string) (string, bool) {
	id, ok := strings.CutPrefix(ref, AssetRefScheme)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Stage 暂存照片并返回引用
func (c *AssetCache) Stage(ctx context.Context, userID string, data []byte) (string, error) {
	id := uuid.NewString()

	pipe := redis.Client().TxPipeline()
	pipe.Set(ctx, assetKey(id), data, c.ttl)
	pipe.SAdd(ctx, assetSetKey(userID), id)
	pipe.Expire(ctx, assetSetKey(userID), c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("stage asset: %w", err)
	}

	return AssetRefScheme + id, nil
}

// Open 读取暂存的照片字节
func (c *AssetCache) Open(ctx context.Context, ref string) ([]byte, error) {
	id, ok := AssetID(ref)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not an asset reference", ErrAssetNotFound, ref)
	}

	data, err := redis.Client().Get(ctx, assetKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, ri.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, ref)
		}
		return nil, fmt.Errorf("open asset: %w", err)
	}
	return data, nil
}

// DiscardAll 删除用户暂存的全部照片
func (c *AssetCache) DiscardAll(ctx context.Context, userID string) error {
	client := redis.Client()

	ids, err := client.SMembers(ctx, assetSetKey(userID)).Result()
	if err != nil && !errors.Is(err, ri.Nil) {
		return fmt.Errorf("list assets: %w", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, assetKey(id))
	}
	keys = append(keys, assetSetKey(userID))

	return client.Del(ctx, keys...).Err()
}
