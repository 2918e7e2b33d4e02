package store

import (
	"time"

	"postflow/internal/model"
)

// seedOwnerData 首次使用时写入演示数据：公司档案 + 一条已发布帖子
func seedOwnerData(data *ownerData, ownerID string) {
	data.Profile = &model.CompanyProfile{
		OwnerID:     ownerID,
		Name:        "TechNova",
		Industry:    "Tecnología",
		Tone:        "Innovador y Profesional",
		Description: "Líderes en soluciones SaaS para el futuro del trabajo.",
		Keywords:    []string{"SaaS", "AI", "Futuro"},
	}

	post := &model.Post{
		OwnerID:  ownerID,
		Content:  "¡Estamos emocionados de lanzar nuestra nueva feature de IA! #TechNova #AI",
		Platform: model.PlatformTwitter,
		Status:   model.StatusPublished,
	}
	finalizeNew(post)
	post.CreatedAt = time.Now().Add(-24 * time.Hour)
	data.Posts = append(data.Posts, post)
}
