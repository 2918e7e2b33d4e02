package social

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

const (
	// Graph API 的错误码：190 令牌失效，100 资源/参数错误
	graphCodeInvalidToken = 190
	graphCodeBadParam     = 100

	graphTypeOAuth = "OAuthException"
)

// graphError Graph API 的错误信封，HTTP 200 也可能携带
type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

// graphEnvelope Graph API 响应的通用形态，各接口只填其中几个字段
type graphEnvelope struct {
	Error    *graphError `json:"error"`
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Username string      `json:"username"`

	InstagramBusinessAccount *struct {
		ID string `json:"id"`
	} `json:"instagram_business_account"`
}

type graphClient struct {
	client  *resty.Client
	baseURL string
}

func newGraphClient(baseURL string) *graphClient {
	return &graphClient{
		client:  resty.New().SetTimeout(20 * time.Second),
		baseURL: baseURL,
	}
}

// get 任何响应都先按错误信封解析，再看业务字段
func (c *graphClient) get(ctx context.Context, path string, params map[string]string) (*graphEnvelope, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("graph api request failed: %w", err)
	}
	return parseEnvelope(resp.Body())
}

func (c *graphClient) post(ctx context.Context, path string, params map[string]string) (*graphEnvelope, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetFormData(params).
		Post(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("graph api request failed: %w", err)
	}
	return parseEnvelope(resp.Body())
}

func parseEnvelope(body []byte) (*graphEnvelope, error) {
	env := &graphEnvelope{}
	if err := json.Unmarshal(body, env); err != nil {
		return nil, fmt.Errorf("graph api response unparseable: %w", err)
	}
	return env, nil
}
