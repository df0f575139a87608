package image

import (
	"context"
	"errors"
	log "log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/go-resty/resty/v2"
)

// 去重抽签的最大次数，抽不到新图就接受重复
const maxFreshDraws = 4

// Resolver 持有会话级状态：轮换计数器与已用图片集合。
// 找不到图不是错误，Resolve 返回 nil 即可无图发帖。
type Resolver struct {
	cfg    config.ImageConfig
	client *resty.Client

	mu      sync.Mutex
	counter int
	used    map[string]bool
	rnd     *rand.Rand
}

func NewResolver(cfg config.ImageConfig) *Resolver {
	return &Resolver{
		cfg:    cfg,
		client: resty.New().SetTimeout(20 * time.Second),
		used:   make(map[string]bool),
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Resolve 推导搜索词并从两个可互换的搜索源取一张候选图。
// 品牌化查询固定走 Google（品牌图覆盖好），其余按调用奇偶在两源间轮换，
// 任一源失败落到另一个；两个都拿不到结果时返回 nil。
func (s *Resolver) Resolve(ctx context.Context, searchHint string, postText string) *Reference {
	query := searchHint
	branded := false
	if postText != "" {
		query, branded = DeriveQuery(postText)
		log.InfoContext(ctx, "图片搜索词", "query", query, "branded", branded)
	}

	s.mu.Lock()
	s.counter++
	n := s.counter
	s.mu.Unlock()

	// 品牌查询固定从 Google 起步，不参与轮换
	primary, secondary := s.searchUnsplash, s.searchGoogle
	if branded || n%2 == 0 {
		primary, secondary = s.searchGoogle, s.searchUnsplash
	}

	candidates, err := primary(ctx, query)
	if err != nil || len(candidates) == 0 {
		if err != nil {
			log.WarnContext(ctx, "图片搜索失败，切换备用源", "err", err)
		}
		candidates, err = secondary(ctx, query)
		if err != nil || len(candidates) == 0 {
			if err != nil {
				log.WarnContext(ctx, "备用图片源也失败", "err", err)
			}
			return nil
		}
	}

	chosen := s.pickFresh(candidates)
	s.confirmDownload(ctx, chosen)
	return chosen
}

// MarkUsed 把一张图记入已用集合，换图时先登记旧图以免原样抽回
func (s *Resolver) MarkUsed(url string) {
	if url == "" {
		return
	}
	s.mu.Lock()
	s.used[url] = true
	s.mu.Unlock()
}

// pickFresh 有限次随机抽签偏向未用过的图，尽力而为，不保证永不重复
func (s *Resolver) pickFresh(candidates []*Reference) *Reference {
	s.mu.Lock()
	defer s.mu.Unlock()

	chosen := candidates[0]
	for i := 0; i < maxFreshDraws; i++ {
		pick := candidates[s.rnd.Intn(len(candidates))]
		if !s.used[pick.URL] {
			chosen = pick
			break
		}
	}
	s.used[chosen.URL] = true
	return chosen
}

var errCapabilityUnavailable = errors.New("image capability not configured")
