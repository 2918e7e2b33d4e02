package social

import (
	"context"
	"fmt"
)

func (s *Connector) verifyFacebook(ctx context.Context, credentials map[string]string) (*VerifyResult, error) {
	accessToken := cred(credentials, "accessToken")
	pageID := cred(credentials, "pageId")

	if accessToken == "" || pageID == "" {
		return &VerifyResult{OK: false, Message: "Faltan datos: Page ID y Access Token son obligatorios."}, nil
	}
	if !numericID.MatchString(pageID) {
		return &VerifyResult{OK: false, Message: "El ID de Página debe contener solo números."}, nil
	}

	env, err := s.graph.get(ctx, "/"+pageID, map[string]string{
		"fields":       "name,id",
		"access_token": accessToken,
	})
	if err != nil {
		return nil, err
	}

	if env.Error != nil {
		if env.Error.Code == graphCodeInvalidToken {
			return &VerifyResult{OK: false, Message: "Token inválido (Error 190). Verifica que no haya espacios al copiarlo o genera uno nuevo."}, nil
		}
		return &VerifyResult{OK: false, Message: "Facebook API: " + env.Error.Message}, nil
	}

	return &VerifyResult{OK: true, Message: fmt.Sprintf("Conectado correctamente con la página: %s", env.Name)}, nil
}

// publishFacebook 发布到页面动态；有公网图片时作为 link 附带
func (s *Connector) publishFacebook(ctx context.Context, message string, mediaURL string, credentials map[string]string) (*PublishResult, error) {
	accessToken := cred(credentials, "accessToken")
	pageID := cred(credentials, "pageId")

	if accessToken == "" || pageID == "" {
		return &PublishResult{OK: false, Error: "Faltan Page ID o Access Token."}, nil
	}

	params := map[string]string{
		"message":      message,
		"access_token": accessToken,
	}
	if u, ok := publicMediaURL(mediaURL); ok {
		params["link"] = u
	}

	env, err := s.graph.post(ctx, "/"+pageID+"/feed", params)
	if err != nil {
		return nil, err
	}
	if env.Error != nil {
		return &PublishResult{OK: false, Error: "Facebook API: " + env.Error.Message}, nil
	}

	return &PublishResult{OK: true, RemoteID: env.ID}, nil
}
