package llm

import (
	"context"
	"fmt"
	log "log/slog"
	"strings"

	"postflow/internal/api/config"
	"postflow/internal/model"

	"github.com/goccy/go-json"
	"google.golang.org/genai"
)

// 各平台在结构化输出 schema 中的字段说明
var platformFieldDesc = map[model.Platform]string{
	model.PlatformTwitter:   "A short, engaging tweet (under 280 chars) with hashtags.",
	model.PlatformLinkedIn:  "A professional, insightful post suitable for LinkedIn.",
	model.PlatformInstagram: "A visual-heavy caption with emojis and a block of hashtags.",
	model.PlatformFacebook:  "A conversational and community-focused post.",
}

// GenerateDrafts 按企业档案与主题为每个目标平台生成一份文案
// 通过 ResponseSchema 强约束返回形态，调用方拿到的 map 保证每个请求平台都有非空内容。
func GenerateDrafts(ctx context.Context, topic string, profile *model.CompanyProfile, platforms []model.Platform) (map[model.Platform]string, error) {
	if genClient == nil {
		return nil, ErrMissingKey
	}
	if err := TextSem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer TextSem.Release(1)

	properties := make(map[string]*genai.Schema, len(platforms))
	required := make([]string, 0, len(platforms))
	for _, p := range platforms {
		properties[string(p)] = &genai.Schema{
			Type:        genai.TypeString,
			Description: platformFieldDesc[p],
		}
		required = append(required, string(p))
	}

	prompt := buildDraftPrompt(topic, profile, platforms)

	log.InfoContext(ctx, "正在请求AI大模型生成文案", "topic", topic, "platforms", platforms)
	result, err := genClient.Models.GenerateContent(ctx, config.Cfg.LLM.TextModel,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: properties,
				Required:   required,
			},
			Temperature: genai.Ptr(float32(0.7)),
		})
	if err != nil {
		log.ErrorContext(ctx, "AI大模型请求失败", "err", err)
		return nil, err
	}

	text := result.Text()
	if text == "" {
		return nil, ErrUnparseable
	}

	raw := make(map[string]string, len(platforms))
	if err = json.Unmarshal([]byte(cleanJSON(text)), &raw); err != nil {
		log.ErrorContext(ctx, "AI返回内容解析失败", "err", err)
		return nil, ErrUnparseable
	}

	drafts := make(map[model.Platform]string, len(platforms))
	for _, p := range platforms {
		content := strings.TrimSpace(raw[string(p)])
		if content == "" {
			return nil, ErrUnparseable
		}
		drafts[p] = content
	}
	return drafts, nil
}

func buildDraftPrompt(topic string, profile *model.CompanyProfile, platforms []model.Platform) string {
	var styles strings.Builder
	for _, p := range platforms {
		styles.WriteString(fmt.Sprintf("- %s: %s\n", p, p.Spec().PromptStyle))
	}

	return fmt.Sprintf(`Actúa como un experto Community Manager para la empresa "%s".

Detalles de la empresa:
- Industria: %s
- Tono de voz: %s
- Descripción: %s

Tarea: Genera variaciones de posts para redes sociales sobre el siguiente tema: "%s".

Estilo por red social:
%s
Requisitos:
1. Adapta el contenido a la audiencia y formato de cada red social.
2. Mantén el tono de marca definido.
3. Incluye hashtags relevantes.
4. Devuelve SOLAMENTE el objeto JSON.`,
		profile.Name, profile.Industry, profile.Tone, profile.Description, topic, styles.String())
}

func cleanJSON(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}
