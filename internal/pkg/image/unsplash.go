package image

import (
	"context"
	"fmt"
	log "log/slog"
	"net/http"
	"sort"
)

const defaultUnsplashURL = "https://api.unsplash.com"

type unsplashSearchResponse struct {
	Results []struct {
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		Likes          int    `json:"likes"`
		Downloads      int    `json:"downloads"`
		URLs           struct {
			Regular string `json:"regular"`
		} `json:"urls"`
		Links struct {
			DownloadLocation string `json:"download_location"`
		} `json:"links"`
		User struct {
			Name  string `json:"name"`
			Links struct {
				HTML string `json:"html"`
			} `json:"links"`
		} `json:"user"`
	} `json:"results"`
}

// searchUnsplash 搜索横版图片，按质量指标排序取前 5 作为候选
func (s *Resolver) searchUnsplash(ctx context.Context, query string) ([]*Reference, error) {
	cfg := s.cfg.Unsplash
	if cfg.AccessKey == "" {
		return nil, errCapabilityUnavailable
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = defaultUnsplashURL
	}

	var body unsplashSearchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Client-ID "+cfg.AccessKey).
		SetQueryParams(map[string]string{
			"query":          query,
			"per_page":       "15",
			"orientation":    "landscape",
			"content_filter": "high",
		}).
		SetResult(&body).
		Get(baseURL + "/search/photos")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unsplash search returned status %d", resp.StatusCode())
	}

	results := body.Results
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Likes+results[i].Downloads/10 > results[j].Likes+results[j].Downloads/10
	})
	if len(results) > 5 {
		results = results[:5]
	}

	refs := make([]*Reference, 0, len(results))
	for _, r := range results {
		desc := r.Description
		if desc == "" {
			desc = r.AltDescription
		}
		refs = append(refs, &Reference{
			URL:             r.URLs.Regular,
			DownloadURL:     r.Links.DownloadLocation,
			Photographer:    r.User.Name,
			PhotographerURL: r.User.Links.HTML,
			Description:     desc,
		})
	}
	return refs, nil
}

// confirmDownload 按 Unsplash 使用条款上报下载事件，失败不影响主流程
func (s *Resolver) confirmDownload(ctx context.Context, ref *Reference) {
	if ref == nil || ref.DownloadURL == "" || s.cfg.Unsplash.AccessKey == "" {
		return
	}

	_, err := s.client.R().
		SetContext(ctx).
		SetHeader("Authorization", "Client-ID "+s.cfg.Unsplash.AccessKey).
		Get(ref.DownloadURL)
	if err != nil {
		log.WarnContext(ctx, "Unsplash 下载确认失败", "err", err)
	}
}
