package image

import (
	"context"
	"fmt"
	"net/http"
)

const defaultGoogleURL = "https://www.googleapis.com/customsearch/v1"

type googleSearchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
	} `json:"items"`
}

// searchGoogle 经 Custom Search 引擎做图片搜索，品牌类查询优先走这里
func (s *Resolver) searchGoogle(ctx context.Context, query string) ([]*Reference, error) {
	cfg := s.cfg.Google
	if cfg.ApiKey == "" || cfg.CX == "" {
		return nil, errCapabilityUnavailable
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = defaultGoogleURL
	}

	var body googleSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":        cfg.ApiKey,
			"cx":         cfg.CX,
			"q":          query,
			"searchType": "image",
			"num":        "10",
			"safe":       "active",
		}).
		SetResult(&body).
		Get(baseURL)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("google image search returned status %d", resp.StatusCode())
	}

	refs := make([]*Reference, 0, len(body.Items))
	for _, item := range body.Items {
		refs = append(refs, &Reference{
			URL:         item.Link,
			Description: item.Title,
		})
	}
	return refs, nil
}
