package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"postflow/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGraph struct {
	mux      *http.ServeMux
	requests []string
}

func newFakeGraph(t *testing.T) (*fakeGraph, *Connector) {
	t.Helper()
	f := &fakeGraph{mux: http.NewServeMux()}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path)
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)
	return f, NewConnector(server.URL)
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func fbConn(pageID string) *model.Connection {
	return &model.Connection{
		Platform:    model.PlatformFacebook,
		Connected:   true,
		Credentials: map[string]string{"pageId": pageID, "accessToken": "tok"},
	}
}

func TestVerifyMissingFieldsSkipsNetwork(t *testing.T) {
	f, c := newFakeGraph(t)

	result, err := c.Verify(context.Background(), model.PlatformFacebook, map[string]string{"pageId": "123"})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "Faltan datos")
	assert.Empty(t, f.requests)
}

func TestVerifyRejectsNonNumericIDLocally(t *testing.T) {
	f, c := newFakeGraph(t)

	result, err := c.Verify(context.Background(), model.PlatformInstagram, map[string]string{
		"pageId":      "EAATok123abc",
		"accessToken": "tok",
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "numérico")
	assert.Empty(t, f.requests)
}

func TestVerifyFacebookExpiredToken(t *testing.T) {
	f, c := newFakeGraph(t)
	f.mux.HandleFunc("/123", func(w http.ResponseWriter, r *http.Request) {
		// Graph 在 HTTP 200 上也可能返回错误信封
		writeJSON(w, `{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`)
	})

	result, err := c.Verify(context.Background(), model.PlatformFacebook, map[string]string{
		"pageId":      "123",
		"accessToken": " tok-with-space ",
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "190")
}

func TestVerifyFacebookSuccess(t *testing.T) {
	f, c := newFakeGraph(t)
	f.mux.HandleFunc("/123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "name,id", r.URL.Query().Get("fields"))
		writeJSON(w, `{"name":"TechNova Oficial","id":"123"}`)
	})

	result, err := c.Verify(context.Background(), model.PlatformFacebook, map[string]string{
		"pageId":      "123",
		"accessToken": "tok",
	})
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Contains(t, result.Message, "TechNova Oficial")
}

func TestVerifyInstagramDetectsFacebookPageID(t *testing.T) {
	f, c := newFakeGraph(t)
	f.mux.HandleFunc("/456", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("fields") == "username" {
			writeJSON(w, `{"error":{"message":"Unsupported get request.","type":"OAuthException","code":100}}`)
			return
		}
		writeJSON(w, `{"id":"456","instagram_business_account":{"id":"789"}}`)
	})

	result, err := c.Verify(context.Background(), model.PlatformInstagram, map[string]string{
		"pageId":      "456",
		"accessToken": "tok",
	})
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Message, "789")
	assert.Len(t, f.requests, 2)
}

func TestVerifySimulatedPlatforms(t *testing.T) {
	f, c := newFakeGraph(t)

	for _, p := range []model.Platform{model.PlatformTwitter, model.PlatformLinkedIn} {
		result, err := c.Verify(context.Background(), p, map[string]string{})
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Contains(t, result.Message, "simulada")
	}
	assert.Empty(t, f.requests)
}

func TestPublishNotConnectedSkipsNetwork(t *testing.T) {
	f, c := newFakeGraph(t)

	conn := &model.Connection{Platform: model.PlatformFacebook, Connected: false}
	result, err := c.Publish(context.Background(), model.PlatformFacebook, "hola", "", conn)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "No estás conectado")
	assert.Empty(t, f.requests)
}

func TestPublishUnsupportedPlatform(t *testing.T) {
	f, c := newFakeGraph(t)

	conn := &model.Connection{Platform: model.PlatformTwitter, Connected: true}
	result, err := c.Publish(context.Background(), model.PlatformTwitter, "hola", "", conn)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "no está soportada")
	assert.Empty(t, f.requests)
}

func TestPublishFacebookAttachesPublicMediaOnly(t *testing.T) {
	f, c := newFakeGraph(t)
	var gotLink string
	f.mux.HandleFunc("/123/feed", func(w http.ResponseWriter, r *http.Request) {
		gotLink = r.FormValue("link")
		assert.Equal(t, "hola mundo", r.FormValue("message"))
		writeJSON(w, `{"id":"123_999"}`)
	})

	result, err := c.Publish(context.Background(), model.PlatformFacebook, "hola mundo", "https://cdn.example.com/img.png", fbConn("123"))
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "123_999", result.RemoteID)
	assert.Equal(t, "https://cdn.example.com/img.png", gotLink)

	// data URI 不算公网图片，发文字但不带 link
	result, err = c.Publish(context.Background(), model.PlatformFacebook, "hola mundo", "data:image/png;base64,AAAA", fbConn("123"))
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Empty(t, gotLink)
}

func TestPublishInstagramRequiresPublicMedia(t *testing.T) {
	f, c := newFakeGraph(t)

	conn := &model.Connection{
		Platform:    model.PlatformInstagram,
		Connected:   true,
		Credentials: map[string]string{"pageId": "456", "accessToken": "tok"},
	}
	result, err := c.Publish(context.Background(), model.PlatformInstagram, "hola", "data:image/png;base64,AAAA", conn)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "URL de imagen pública")
	assert.Empty(t, f.requests)
}

func TestPublishInstagramTwoStep(t *testing.T) {
	f, c := newFakeGraph(t)
	f.mux.HandleFunc("/456/media", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://cdn.example.com/img.png", r.FormValue("image_url"))
		writeJSON(w, `{"id":"container-1"}`)
	})
	f.mux.HandleFunc("/456/media_publish", func(w http.ResponseWriter, r *http.Request) {
		// 第一步的容器 ID 必须传进第二步
		assert.Equal(t, "container-1", r.FormValue("creation_id"))
		writeJSON(w, `{"id":"ig-777"}`)
	})

	conn := &model.Connection{
		Platform:    model.PlatformInstagram,
		Connected:   true,
		Credentials: map[string]string{"pageId": "456", "accessToken": "tok"},
	}
	result, err := c.Publish(context.Background(), model.PlatformInstagram, "hola", "https://cdn.example.com/img.png", conn)
	require.NoError(t, err)
	assert.True(t, result.OK)
	assert.Equal(t, "ig-777", result.RemoteID)
	assert.Equal(t, []string{"POST /456/media", "POST /456/media_publish"}, f.requests)
}

func TestPublishInstagramStopsAfterContainerError(t *testing.T) {
	f, c := newFakeGraph(t)
	f.mux.HandleFunc("/456/media", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"error":{"message":"Invalid image URL","type":"OAuthException","code":100}}`)
	})

	conn := &model.Connection{
		Platform:    model.PlatformInstagram,
		Connected:   true,
		Credentials: map[string]string{"pageId": "456", "accessToken": "tok"},
	}
	result, err := c.Publish(context.Background(), model.PlatformInstagram, "hola", "https://cdn.example.com/img.png", conn)
	require.NoError(t, err)
	assert.False(t, result.OK)
	assert.Contains(t, result.Error, "contenedor IG")
	assert.Equal(t, []string{"POST /456/media"}, f.requests)
}
