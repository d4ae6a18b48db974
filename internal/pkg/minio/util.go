package minio

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// PhotoPrefix 菜谱图片对象前缀
const PhotoPrefix = "recipes/"

// PhotoKey 对象路径为 recipes/<username>-<slug>
func PhotoKey(username, slug string) string {
	return fmt.Sprintf("%s%s-%s", PhotoPrefix, username, slug)
}

// UploadFile 上传文件到MinIO
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, BucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// DeleteFile 删除MinIO中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL，空对象名返回空串
func GetPublicURL(objectName string) string {
	if objectName == "" {
		return ""
	}
	protocol := "http"
	if publicSSL {
		protocol = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", protocol, publicEndpoint, BucketName, objectName)
}

// PhotoStore 对外暴露的图片存储，实现 service.PhotoStorage
type PhotoStore struct{}

func NewPhotoStore() *PhotoStore {
	return &PhotoStore{}
}

func (PhotoStore) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	return UploadFile(ctx, key, reader, size, contentType)
}

func (PhotoStore) Delete(ctx context.Context, key string) error {
	return DeleteFile(ctx, key)
}

func (PhotoStore) PublicURL(key string) string {
	return GetPublicURL(key)
}
