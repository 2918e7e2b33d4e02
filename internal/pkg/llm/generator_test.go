package llm

import (
	"testing"

	"postflow/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestBuildDraftPromptIncludesProfileAndTopic(t *testing.T) {
	profile := &model.CompanyProfile{
		Name:        "TechNova",
		Industry:    "Tecnología",
		Tone:        "Innovador y Profesional",
		Description: "Líderes en soluciones SaaS.",
	}

	prompt := buildDraftPrompt("lanzamiento de producto", profile, []model.Platform{model.PlatformTwitter, model.PlatformLinkedIn})

	assert.Contains(t, prompt, `empresa "TechNova"`)
	assert.Contains(t, prompt, "Tecnología")
	assert.Contains(t, prompt, "lanzamiento de producto")
	assert.Contains(t, prompt, "- twitter:")
	assert.Contains(t, prompt, "- linkedin:")
	assert.NotContains(t, prompt, "- instagram:")
}

func TestPlatformFieldDescCoversAllPlatforms(t *testing.T) {
	for _, p := range model.AllPlatforms() {
		assert.NotEmpty(t, platformFieldDesc[p], "platform %s has no schema description", p)
	}
}

func TestCleanJSONStripsFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cleanJSON(tt.in))
	}
}
