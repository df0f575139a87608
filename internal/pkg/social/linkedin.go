package social

import (
	"bytes"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// LinkedInClient LinkedIn UGC 客户端，图文发布走 registerUpload 两段式
type LinkedInClient struct {
	cfg    config.LinkedInConfig
	client *resty.Client
}

func NewLinkedInClient(cfg config.LinkedInConfig) *LinkedInClient {
	client := resty.New().
		SetBaseURL(cfg.URL).
		SetTimeout(60 * time.Second).
		SetHeader("Authorization", "Bearer "+cfg.AccessToken).
		SetHeader("X-Restli-Protocol-Version", "2.0.0")

	return &LinkedInClient{
		cfg:    cfg,
		client: client,
	}
}

type registerUploadResp struct {
	Value struct {
		Asset     string `json:"asset"`
		Mechanism map[string]struct {
			UploadURL string `json:"uploadUrl"`
		} `json:"uploadMechanism"`
	} `json:"value"`
}

// registerUpload 申请上传凭证，返回 uploadUrl 与 asset URN
func (s *LinkedInClient) registerUpload(ctx context.Context) (string, string, error) {
	body := map[string]interface{}{
		"registerUploadRequest": map[string]interface{}{
			"recipes": []string{"urn:li:digitalmediaRecipe:feedshare-image"},
			"owner":   s.cfg.PersonURN,
			"serviceRelationships": []map[string]string{
				{
					"relationshipType": "OWNER",
					"identifier":       "urn:li:userGeneratedContent",
				},
			},
		},
	}

	var result registerUploadResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/v2/assets?action=registerUpload")
	if err != nil {
		return "", "", fmt.Errorf("register upload: %w", err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("register upload: status %d", resp.StatusCode())
	}

	mech, ok := result.Value.Mechanism["com.linkedin.digitalmedia.uploading.MediaUploadHttpRequest"]
	if !ok || mech.UploadURL == "" || result.Value.Asset == "" {
		return "", "", fmt.Errorf("register upload: 响应缺少 uploadUrl 或 asset")
	}
	return mech.UploadURL, result.Value.Asset, nil
}

func (s *LinkedInClient) uploadImage(ctx context.Context, uploadURL string, data []byte) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetBody(bytes.NewReader(data)).
		Put(uploadURL)
	if err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upload image: status %d", resp.StatusCode())
	}
	return nil
}

type ugcPostResp struct {
	ID string `json:"id"`
}

// CreatePost 发布动态。图片上传失败时降级为纯文本，不让整次发布失败
func (s *LinkedInClient) CreatePost(ctx context.Context, text string, imageData []byte) (string, bool, error) {
	var asset string
	if len(imageData) > 0 {
		uploadURL, a, err := s.registerUpload(ctx)
		if err == nil {
			err = s.uploadImage(ctx, uploadURL, imageData)
		}
		if err != nil {
			log.WarnContext(ctx, "linkedin image upload failed, 降级纯文本", "err", err)
		} else {
			asset = a
		}
	}

	shareContent := map[string]interface{}{
		"shareCommentary": map[string]string{
			"text": text,
		},
		"shareMediaCategory": "NONE",
	}
	if asset != "" {
		shareContent["shareMediaCategory"] = "IMAGE"
		shareContent["media"] = []map[string]interface{}{
			{
				"status": "READY",
				"media":  asset,
			},
		}
	}

	body := map[string]interface{}{
		"author":         s.cfg.PersonURN,
		"lifecycleState": "PUBLISHED",
		"specificContent": map[string]interface{}{
			"com.linkedin.ugc.ShareContent": shareContent,
		},
		"visibility": map[string]string{
			"com.linkedin.ugc.MemberNetworkVisibility": "PUBLIC",
		},
	}

	var result ugcPostResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/v2/ugcPosts")
	if err != nil {
		return "", false, fmt.Errorf("create ugc post: %w", err)
	}
	if resp.IsError() {
		return "", false, fmt.Errorf("create ugc post: status %d, %s", resp.StatusCode(), resp.String())
	}

	id := result.ID
	if id == "" {
		id = resp.Header().Get("X-Restli-Id")
	}
	return id, asset != "", nil
}

// PostURL 拼动态落地页链接
func (s *LinkedInClient) PostURL(id string) string {
	return "https://www.linkedin.com/feed/update/" + id
}
