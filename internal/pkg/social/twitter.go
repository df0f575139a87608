package social

import (
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/dghubble/oauth1"
	"github.com/go-resty/resty/v2"
)

// threadReplyDelay 串推间隔，连续回复太快会被限流
const threadReplyDelay = time.Second

// TwitterClient Twitter API v2 客户端，OAuth 1.0a 用户上下文签名
type TwitterClient struct {
	cfg    config.TwitterConfig
	client *resty.Client
}

func NewTwitterClient(cfg config.TwitterConfig) *TwitterClient {
	oauthCfg := oauth1.NewConfig(cfg.ApiKey, cfg.ApiSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessSecret)
	httpClient := oauthCfg.Client(oauth1.NoContext, token)

	client := resty.NewWithClient(httpClient).
		SetBaseURL(cfg.URL).
		SetTimeout(30 * time.Second)

	return &TwitterClient{
		cfg:    cfg,
		client: client,
	}
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

type tweetReq struct {
	Text  string      `json:"text"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetResp struct {
	Data struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	} `json:"data"`
	Detail string `json:"detail"`
	Title  string `json:"title"`
}

// PostTweet 发单条推文，inReplyTo 非空时挂在对应推文下
func (s *TwitterClient) PostTweet(ctx context.Context, text string, inReplyTo string) (string, error) {
	body := tweetReq{Text: text}
	if inReplyTo != "" {
		body.Reply = &tweetReply{InReplyToTweetID: inReplyTo}
	}

	var result tweetResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&result).
		SetError(&result).
		Post("/2/tweets")
	if err != nil {
		return "", fmt.Errorf("post tweet: %w", err)
	}
	if resp.IsError() || result.Data.ID == "" {
		return "", fmt.Errorf("post tweet: status %d, %s %s", resp.StatusCode(), result.Title, result.Detail)
	}
	return result.Data.ID, nil
}

// PostThread 主推文先发，后续逐条串链回复，返回主推文 ID
func (s *TwitterClient) PostThread(ctx context.Context, tweet string, thread []string) (string, error) {
	firstID, err := s.PostTweet(ctx, tweet, "")
	if err != nil {
		return "", err
	}

	lastID := firstID
	for i, part := range thread {
		select {
		case <-ctx.Done():
			return firstID, ctx.Err()
		case <-time.After(threadReplyDelay):
		}

		id, err := s.PostTweet(ctx, part, lastID)
		if err != nil {
			// 主推文已发出，剩余部分放弃但不算整体失败
			log.WarnContext(ctx, "thread reply failed, 串推中断", "index", i, "err", err)
			return firstID, nil
		}
		lastID = id
	}
	return firstID, nil
}

// TweetURL 拼推文落地页链接
func (s *TwitterClient) TweetURL(id string) string {
	return "https://twitter.com/i/web/status/" + id
}
