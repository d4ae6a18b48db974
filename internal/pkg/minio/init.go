package minio

import (
	"RecipeHub/internal/api/config"
	"context"
	"fmt"
	log "log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	// Client 全局 MinIO 客户端实例
	Client *minio.Client
	// BucketName 菜谱图片存储桶
	BucketName string

	publicEndpoint string
	publicSSL      bool
)

// Init 初始化 MinIO 客户端，存储桶不存在时自动创建并设置只读策略
func Init(cfg config.MinIOConfig) error {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize minio client: %w", err)
	}

	Client = client
	BucketName = cfg.Bucket
	publicEndpoint = cfg.PublicEndpoint
	if publicEndpoint == "" {
		publicEndpoint = cfg.Endpoint
	}
	publicSSL = cfg.UseSSL

	return EnsureBucket(context.Background())
}

// EnsureBucket 保证存储桶存在，并允许匿名读取 recipes/ 下的对象
func EnsureBucket(ctx context.Context) error {
	exists, err := Client.BucketExists(ctx, BucketName)
	if err != nil {
		return fmt.Errorf("failed to connect to minio server: %w", err)
	}
	if exists {
		return nil
	}

	if err = Client.MakeBucket(ctx, BucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}

	policy := fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/%s*"]}]}`, BucketName, PhotoPrefix)
	if err = Client.SetBucketPolicy(ctx, BucketName, policy); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	log.Info("MinIO bucket created", "bucket", BucketName)
	return nil
}
