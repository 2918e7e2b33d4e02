package job

import (
	"context"
	log "log/slog"
	"strconv"
	"time"

	"postflow/internal/pkg/consts"
	"postflow/internal/pkg/minio"
	"postflow/internal/pkg/redis"
)

// MediaCleanupJob 清理超过保留期仍未被帖子引用的临时媒体文件
type MediaCleanupJob struct{}

func NewMediaCleanupJob() *MediaCleanupJob {
	return &MediaCleanupJob{}
}

func (s *MediaCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start media cleanup job")

	allMedia, err := redis.HGetAll(ctx, consts.MediaTempKey)
	if err != nil {
		log.Error("failed to get media temp hash", "err", err)
		return
	}

	now := time.Now().Unix()
	count := 0

	for objectName, val := range allMedia {
		deadline, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			log.Warn("invalid media deadline format", "objectName", objectName)
			continue
		}

		if now > deadline {
			if err = minio.DeleteFile(ctx, objectName); err != nil {
				log.Error("failed to delete expired file from minio", "objectName", objectName, "err", err)
				continue
			}
			// 缩略图与原图同名加后缀，一并清理
			if err = minio.DeleteFile(ctx, objectName+".thumb.jpg"); err != nil {
				log.Warn("failed to delete thumbnail from minio", "objectName", objectName, "err", err)
			}

			if err = redis.HDel(ctx, consts.MediaTempKey, objectName); err != nil {
				log.Error("failed to remove media token from redis", "objectName", objectName, "err", err)
			}

			count++
			log.Info("cleanup expired media resource", "objectName", objectName)
		}
	}

	if count > 0 {
		log.Info("media cleanup job finished", "cleaned_count", count)
	}
}
