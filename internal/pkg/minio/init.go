package minio

import (
	"context"
	"fmt"
	log "log/slog"
	"postflow/internal/api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// MainBucket 主要存储桶
	MainBucket string
)

// Init 初始化 MinIO 客户端
func Init() error {
	cfg := config.Cfg.MinIO

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	if _, err = client.ListBuckets(ctx); err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}

	Client = client
	MainBucket = cfg.MainBucket

	log.Info("MinIO initialized successfully", "endpoint", cfg.Endpoint)
	return nil
}
