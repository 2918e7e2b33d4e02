package llm

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"postflow/internal/api/config"

	"google.golang.org/genai"
)

// ImageData 生成的配图，原始字节 + MIME 类型
type ImageData struct {
	Data []byte
	MIME string
}

// GenerateImage 为帖子生成一张配图
// customPrompt 非空时原样使用（只追加风格与比例后缀），否则由主题+风格推导。
// 模型没有返回图片部件时返回 nil, nil，不算错误。
func GenerateImage(ctx context.Context, topic string, style string, customPrompt string) (*ImageData, error) {
	if genClient == nil {
		return nil, ErrMissingKey
	}
	if err := ImageSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer ImageSem.Release(1)

	var prompt string
	if strings.TrimSpace(customPrompt) != "" {
		prompt = fmt.Sprintf("%s. Style: %s. Square 1:1 aspect ratio, no text overlay.", strings.TrimSpace(customPrompt), style)
	} else {
		prompt = fmt.Sprintf("A striking social media image about \"%s\". Style: %s. Square 1:1 aspect ratio, no text overlay.", topic, style)
	}

	log.InfoContext(ctx, "正在请求AI大模型生成配图", "style", style)
	result, err := genClient.Models.GenerateContent(ctx, config.Cfg.LLM.ImageModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseModalities: []string{"IMAGE", "TEXT"},
		})
	if err != nil {
		log.ErrorContext(ctx, "AI大模型请求失败", "err", err)
		return nil, err
	}

	for _, cand := range result.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageData{
					Data: part.InlineData.Data,
					MIME: part.InlineData.MIMEType,
				}, nil
			}
		}
	}

	// 模型只回了文字，视为无图
	log.WarnContext(ctx, "AI大模型未返回图片部件")
	return nil, nil
}
