package minio

import (
	"context"
	"fmt"
	log "log/slog"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例，未配置时为 nil，媒体归档整体关闭
	Client *minio.Client
	// BucketName 归档存储桶
	BucketName string
)

// Init 初始化 MinIO 客户端，endpoint 为空时静默跳过
func Init() error {
	cfg := config.Cfg.MinIO
	if cfg.Endpoint == "" {
		log.Info("MinIO 未配置，媒体归档功能关闭")
		return nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if !exists {
		if err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	Client = client
	BucketName = cfg.Bucket
	return nil
}

// Enabled 媒体归档是否可用
func Enabled() bool {
	return Client != nil
}
