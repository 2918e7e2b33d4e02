package handler

import (
	"bytes"
	log "log/slog"
	"time"

	"postflow/internal/api/dto"
	"postflow/internal/pkg/consts"
	"postflow/internal/pkg/minio"
	"postflow/internal/pkg/redis"
	"postflow/internal/pkg/response"
	"postflow/internal/pkg/util"
	"postflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20

type MediaHandler struct{}

func NewMediaHandler() *MediaHandler {
	return &MediaHandler{}
}

// Upload 上传帖子配图：按内容嗅探类型，主图 + 缩略图一起入桶
// 对象先进临时索引，保存帖子时移除，超时未用由清理任务回收。
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > maxUploadBytes {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	data, err := util.ReadAll(reader, maxUploadBytes)
	if err != nil {
		response.Error(c, service.UnExpectedError)
		return
	}

	contentType, ok := util.DetectImageMime(data)
	if !ok {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + util.ExtForMime(contentType)
	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	thumbnailURL := ""
	if thumb, err := util.MakeThumbnail(data); err == nil {
		thumbName := objectName + ".thumb.jpg"
		if _, err = minio.UploadBytes(c.Request.Context(), thumbName, thumb, "image/jpeg"); err == nil {
			thumbnailURL = minio.GetPublicURL(thumbName)
		} else {
			log.WarnContext(c.Request.Context(), "thumbnail upload failed", "err", err)
		}
	} else {
		log.WarnContext(c.Request.Context(), "thumbnail generation failed", "err", err)
	}

	deadline := time.Now().Add(24 * time.Hour).Unix()
	_ = redis.HSet(c.Request.Context(), consts.MediaTempKey, fileKey, deadline)

	log.InfoContext(c.Request.Context(), "media upload success", "fileKey", fileKey, "type", contentType)
	response.Success(c, &dto.MediaDTO{
		ObjectName:   fileKey,
		URL:          minio.GetPublicURL(fileKey),
		ThumbnailURL: thumbnailURL,
	})
}
