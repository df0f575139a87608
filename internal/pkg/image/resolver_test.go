package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearchBackend struct {
	unsplash      *httptest.Server
	google        *httptest.Server
	unsplashHits  atomic.Int32
	googleHits    atomic.Int32
	downloadPings atomic.Int32
}

func newFakeSearchBackend(t *testing.T) *fakeSearchBackend {
	t.Helper()
	b := &fakeSearchBackend{}

	b.unsplash = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/download-ping" {
			b.downloadPings.Add(1)
			w.WriteHeader(http.StatusOK)
			return
		}
		require.Equal(t, "/search/photos", r.URL.Path)
		b.unsplashHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{
			"description":"desk",
			"likes":100,"downloads":500,
			"urls":{"regular":"https://images.test/u1"},
			"links":{"download_location":"` + b.unsplash.URL + `/download-ping"},
			"user":{"name":"Ana","links":{"html":"https://unsplash.test/@ana"}}
		}]}`))
	}))
	t.Cleanup(b.unsplash.Close)

	b.google = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.googleHits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[{"title":"brand shot","link":"https://images.test/g1"}]}`))
	}))
	t.Cleanup(b.google.Close)

	return b
}

func (b *fakeSearchBackend) config() config.ImageConfig {
	return config.ImageConfig{
		Unsplash: config.UnsplashConfig{
			URL:       b.unsplash.URL,
			AccessKey: "unsplash-key",
		},
		Google: config.GoogleConfig{
			URL:    b.google.URL,
			ApiKey: "google-key",
			CX:     "cx",
		},
	}
}

func TestResolve_BrandedQueryPrefersGoogle(t *testing.T) {
	backend := newFakeSearchBackend(t)
	resolver := NewResolver(backend.config())

	ref := resolver.Resolve(context.Background(), "", "my week with ChatGPT as a pair programmer")
	require.NotNil(t, ref)
	assert.Equal(t, "https://images.test/g1", ref.URL)

	// 品牌查询不参与轮换，连续调用也不会切到 Unsplash
	ref = resolver.Resolve(context.Background(), "", "my week with ChatGPT as a pair programmer")
	require.NotNil(t, ref)
	assert.Equal(t, int32(2), backend.googleHits.Load())
	assert.Equal(t, int32(0), backend.unsplashHits.Load())
}

func TestResolve_RotatesBetweenSources(t *testing.T) {
	backend := newFakeSearchBackend(t)
	resolver := NewResolver(backend.config())

	// 第一次走 Unsplash，第二次轮换到 Google
	first := resolver.Resolve(context.Background(), "", "writing better code reviews")
	require.NotNil(t, first)
	assert.Equal(t, "https://images.test/u1", first.URL)

	second := resolver.Resolve(context.Background(), "", "writing better code reviews")
	require.NotNil(t, second)
	assert.Equal(t, "https://images.test/g1", second.URL)

	assert.Equal(t, int32(1), backend.unsplashHits.Load())
	assert.Equal(t, int32(1), backend.googleHits.Load())
}

func TestResolve_FallsBackWhenPrimaryFails(t *testing.T) {
	backend := newFakeSearchBackend(t)
	cfg := backend.config()

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()
	cfg.Unsplash.URL = broken.URL

	resolver := NewResolver(cfg)
	ref := resolver.Resolve(context.Background(), "", "writing better code reviews")
	require.NotNil(t, ref)
	assert.Equal(t, "https://images.test/g1", ref.URL)
}

func TestResolve_NilWhenNothingConfigured(t *testing.T) {
	resolver := NewResolver(config.ImageConfig{})
	ref := resolver.Resolve(context.Background(), "", "writing better code reviews")
	assert.Nil(t, ref)
}

func TestResolve_ConfirmsUnsplashDownload(t *testing.T) {
	backend := newFakeSearchBackend(t)
	resolver := NewResolver(backend.config())

	ref := resolver.Resolve(context.Background(), "", "writing better code reviews")
	require.NotNil(t, ref)
	assert.Equal(t, int32(1), backend.downloadPings.Load())
}
