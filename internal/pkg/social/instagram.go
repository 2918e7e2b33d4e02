package social

import (
	"context"
	"fmt"
)

func (s *Connector) verifyInstagram(ctx context.Context, credentials map[string]string) (*VerifyResult, error) {
	accessToken := cred(credentials, "accessToken")
	accountID := cred(credentials, "pageId")

	if accessToken == "" || accountID == "" {
		return &VerifyResult{OK: false, Message: "Faltan datos: Instagram Business ID y Access Token son obligatorios."}, nil
	}
	if !numericID.MatchString(accountID) {
		return &VerifyResult{OK: false, Message: "El ID debe ser numérico. Parece que has copiado un Token o Secret en lugar del ID."}, nil
	}

	env, err := s.graph.get(ctx, "/"+accountID, map[string]string{
		"fields":       "username",
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}

	if env.Error == nil {
		return &VerifyResult{OK: true, Message: fmt.Sprintf("Conectado correctamente como: @%s", env.Username)}, nil
	}

	if env.Error.Code == graphCodeInvalidToken {
		return &VerifyResult{OK: false, Message: "Error de Token (190): El Access Token es inválido o tiene espacios extra. Cópialo de nuevo asegurándote de no incluir espacios."}, nil
	}

	// 100/OAuthException 多半是把 Facebook 页面 ID 当成了 Instagram ID，探测一下
	if env.Error.Code == graphCodeBadParam || env.Error.Type == graphTypeOAuth {
		if result := s.probeFacebookPage(ctx, accountID, accessToken); result != nil {
			return result, nil
		}
	}

	return &VerifyResult{OK: false, Message: "Instagram API: " + env.Error.Message}, nil
}

// probeFacebookPage 检查该 ID 是否其实是 Facebook 页面，并给出正确的 Instagram ID
func (s *Connector) probeFacebookPage(ctx context.Context, pageID string, accessToken string) *VerifyResult {
	env, err := s.graph.get(ctx, "/"+pageID, map[string]string{
		"fields":       "instagram_business_account",
		"access_token": accessToken,
	})
	if err != nil || env.Error != nil {
		return nil
	}

	if env.InstagramBusinessAccount != nil && env.InstagramBusinessAccount.ID != "" {
		return &VerifyResult{
			OK:      false,
			Message: fmt.Sprintf("¡Error de ID! Has puesto el ID de Facebook. Tu ID de Instagram es: %s (Cópialo y pégalo).", env.InstagramBusinessAccount.ID),
		}
	}
	if env.ID != "" {
		return &VerifyResult{
			OK:      false,
			Message: "Este ID es de Facebook y NO tiene un Instagram Business conectado. Vincula tu cuenta en la configuración de Facebook.",
		}
	}
	return nil
}

// publishInstagram 两步发布：先建媒体容器，成功后才提交发布
func (s *Connector) publishInstagram(ctx context.Context, caption string, mediaURL string, credentials map[string]string) (*PublishResult, error) {
	accessToken := cred(credentials, "accessToken")
	accountID := cred(credentials, "pageId")

	if accessToken == "" || accountID == "" {
		return &PublishResult{OK: false, Error: "Faltan Instagram Business ID o Access Token."}, nil
	}

	imageURL, ok := publicMediaURL(mediaURL)
	if !ok {
		return &PublishResult{OK: false, Error: "Instagram requiere una URL de imagen pública. Las imágenes locales deben subirse primero."}, nil
	}

	container, err := s.graph.post(ctx, "/"+accountID+"/media", map[string]string{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}
	if container.Error != nil {
		return &PublishResult{OK: false, Error: "Error creando contenedor IG: " + container.Error.Message}, nil
	}

	published, err := s.graph.post(ctx, "/"+accountID+"/media_publish", map[string]string{
		"creation_id":  container.ID,
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}
	if published.Error != nil {
		return &PublishResult{OK: false, Error: "Error publicando en IG: " + published.Error.Message}, nil
	}

	return &PublishResult{OK: true, RemoteID: published.ID}, nil
}
