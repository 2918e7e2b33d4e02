package util

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	"postflow/internal/pkg/consts"

	"github.com/disintegration/imaging"
)

const thumbnailMaxSize = 480

// mime 到对象后缀的映射，上传文件名不可信
var mimeExt = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// DetectImageMime 按内容嗅探 MIME，非图片返回 false
func DetectImageMime(data []byte) (string, bool) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, consts.MimePrefixImage) {
		return "", false
	}
	return mime, true
}

// ExtForMime 返回该 MIME 对应的对象名后缀
func ExtForMime(mime string) string {
	if ext, ok := mimeExt[mime]; ok {
		return ext
	}
	return ".bin"
}

// MakeThumbnail 生成列表页缩略图，统一转为 JPEG
func MakeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, err
	}

	thumb := imaging.Fit(img, thumbnailMaxSize, thumbnailMaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err = imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadAll 读取上传流，限制最大体积
func ReadAll(r io.Reader, maxBytes int64) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r, maxBytes))
}
