package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"postflow/internal/api/config"

	"github.com/minio/minio-go/v7"
)

// UploadFile 上传文件到主存储桶，返回对象键
func UploadFile(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if Client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	uploadInfo, err := Client.PutObject(ctx, MainBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return uploadInfo.Key, nil
}

// UploadBytes 上传内存中的数据，AI 生成的配图走这条路
func UploadBytes(ctx context.Context, objectName string, data []byte, contentType string) (string, error) {
	return UploadFile(ctx, objectName, bytes.NewReader(data), int64(len(data)), contentType)
}

// DeleteFile 删除主存储桶中的文件
func DeleteFile(ctx context.Context, objectName string) error {
	if Client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	err := Client.RemoveObject(ctx, MainBucket, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetPublicURL 获取文件的公共访问URL
// 发布连接器要求媒体是公网可达的 http(s) 地址，本地路径和 data URI 都不行。
func GetPublicURL(objectName string) string {
	cfg := config.Cfg.MinIO

	protocol := "http"
	if cfg.UseSSL {
		protocol = "https"
	}

	return fmt.Sprintf("%s://%s/%s/%s", protocol, cfg.Endpoint, cfg.MainBucket, objectName)
}
