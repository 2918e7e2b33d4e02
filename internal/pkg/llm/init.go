package llm

import (
	"context"
	"errors"
	log "log/slog"
	"os"

	"postflow/internal/api/config"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/genai"
)

var genClient *genai.Client
var scoreClient llms.Model

var (
	ErrMissingKey  = errors.New("gemini api key 未配置")
	ErrUnparseable = errors.New("模型返回内容无法解析")
)

// InitLLM 初始化生成与评分两路模型客户端
// Key 缺失不视为启动失败：生成接口在调用时报错，评分接口降级为中性结果。
func InitLLM(ctx context.Context) error {
	cfg := config.Cfg.LLM

	key := cfg.GeminiKey
	if key == "" {
		key = os.Getenv("GEMINI_API_KEY")
	}
	if key == "" {
		log.Warn("Gemini API Key 未配置，内容生成不可用")
	} else {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey: key,
		})
		if err != nil {
			log.Error("AI大模型初始化失败", "err", err)
			return err
		}
		genClient = client
	}

	if cfg.ScoreURL == "" {
		log.Warn("评分模型未配置，内容评分降级为中性结果")
		return nil
	}
	llm, err := openai.New(
		openai.WithModel(cfg.ScoreModel),
		openai.WithToken(cfg.ScoreKey),
		openai.WithBaseURL(cfg.ScoreURL),
	)
	if err != nil {
		log.Error("评分模型初始化失败", "err", err)
		return err
	}
	scoreClient = llm

	return nil
}
