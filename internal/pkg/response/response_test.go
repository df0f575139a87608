package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/api/dto"
	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/bind", func(c *gin.Context) {
		var req struct {
			PostID uint64 `json:"post_id" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			Error(c, err)
			return
		}
		Success(c, req.PostID)
	})
	return r
}

func doPost(t *testing.T, r *gin.Engine, body string) *dto.Response {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bind", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return &resp
}

func TestError_JSONTypeMismatch(t *testing.T) {
	resp := doPost(t, bindRouter(t), `{"post_id":"not-a-number"}`)
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, "Json错误", resp.Message)
}

func TestError_ValidationFailure(t *testing.T) {
	resp := doPost(t, bindRouter(t), `{}`)
	assert.Equal(t, BadRequest, resp.Code)
	assert.Equal(t, "参数错误", resp.Message)
}

func TestError_MappedSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/missing", func(c *gin.Context) {
		Error(c, service.ErrPostNotFound)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, NotFound, resp.Code)
	assert.Equal(t, service.ErrPostNotFound.Error(), resp.Message)
}
