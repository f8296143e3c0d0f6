package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"SkiBuddy/config"
	"SkiBuddy/pkg/logger"
)

// Store 单个桶上的对象存储，上传后返回公开访问地址
type Store struct {
	client     *minio.Client
	bucket     string
	region     string
	publicBase string
}

var (
	store     *Store
	storeOnce sync.Once
	storeErr  error
)

// Init 使用全局配置创建对象存储客户端，并确保桶存在
func Init() error {
	storeOnce.Do(func() {
		cfg := config.Cfg
		store, storeErr = New(cfg.ObjectStorageEndpoint, cfg.ObjectStorageAccessKey, cfg.ObjectStorageSecretKey,
			cfg.ObjectStorageUseSSL, cfg.ObjectStorageRegion, cfg.ObjectStorageBucket, cfg.ObjectStoragePublicBaseURL)
		if storeErr != nil {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		storeErr = store.EnsureBucket(ctx)
	})
	return storeErr
}

// Default 返回 Init 创建的全局实例
func Default() *Store {
	if store == nil {
		panic("object store not init")
	}
	return store
}

func New(endpoint, accessKey, secretKey string, useSSL bool, region, bucket, publicBase string) (*Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	return &Store{
		client:     client,
		bucket:     bucket,
		region:     region,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// EnsureBucket 桶不存在时创建
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	logger.Logger.Info("Created bucket", zap.String("bucket", s.bucket))
	return nil
}

// Upload 上传对象并返回公开地址
func (s *Store) Upload(ctx context.Context, path string, data []byte, contentType string) (string, error) {
	if strings.Contains(path, "..") {
		return "", fmt.Errorf("invalid object name %q", path)
	}

	_, err := s.client.PutObject(ctx, s.bucket, path, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", path, err)
	}

	return PublicURL(s.publicBase, s.bucket, path), nil
}

// PublicURL 拼接对象的公开访问地址 {base}/{bucket}/{path}
func PublicURL(base, bucket, path string) string {
	return strings.TrimRight(base, "/") + "/" + bucket + "/" + strings.TrimLeft(path, "/")
}
