package llm

import (
	"context"
	"fmt"
	log "log/slog"

	"postflow/internal/model"

	"github.com/goccy/go-json"
	"github.com/tmc/langchaingo/llms"
)

const scoreSystemPrompt = `Eres un analista de redes sociales. Evalúa el impacto potencial de un post.
Devuelve SOLAMENTE un objeto JSON con esta forma: {"score": <entero 1-100>, "suggestion": "<sugerencia de mejora breve>"}`

// Score 发布前的影响力评估，纯建议性质
type Score struct {
	Score      int    `json:"score"`
	Suggestion string `json:"suggestion"`
}

var neutralScore = Score{Score: 50, Suggestion: "No se pudo conectar con la IA."}

// ScorePost 对文案做发布前打分
// 任何失败都降级为中性结果，绝不阻塞保存流程。
func ScorePost(ctx context.Context, content string, platform model.Platform) Score {
	if scoreClient == nil {
		return neutralScore
	}

	userPrompt := fmt.Sprintf("Analiza el siguiente post de %s y dame una puntuación del 1 al 100 de impacto potencial y una sugerencia de mejora breve.\n\nPost: %q", platform.Spec().Display, content)

	resp, err := fetchScoreModel(ctx, scoreSystemPrompt, userPrompt, 0.1)
	if err != nil {
		log.WarnContext(ctx, "评分模型请求失败，返回中性结果", "err", err)
		return neutralScore
	}
	if len(resp.Choices) == 0 {
		return neutralScore
	}

	var score Score
	if err = json.Unmarshal([]byte(cleanJSON(resp.Choices[0].Content)), &score); err != nil {
		log.WarnContext(ctx, "评分结果解析失败，返回中性结果", "err", err)
		return neutralScore
	}
	if score.Score < 1 || score.Score > 100 {
		return neutralScore
	}
	return score
}

func fetchScoreModel(ctx context.Context, systemPrompt string, userPrompt string, temp float64) (*llms.ContentResponse, error) {
	if err := ScoreSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer ScoreSem.Release(1)
	messages := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userPrompt),
			},
		},
	}
	return scoreClient.GenerateContent(ctx, messages,
		llms.WithTemperature(temp),
	)
}
