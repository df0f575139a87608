package job

import (
	"strings"
	"testing"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobContext_CarriesTraceID(t *testing.T) {
	ctx := jobContext("fetch")

	traceID, ok := ctx.Value(logger.TraceIDKey).(string)
	require.True(t, ok)
	require.True(t, strings.HasPrefix(traceID, "job-fetch-"))

	_, err := uuid.Parse(strings.TrimPrefix(traceID, "job-fetch-"))
	assert.NoError(t, err)
}

func TestJobContext_UniquePerRun(t *testing.T) {
	first := jobContext("quota").Value(logger.TraceIDKey)
	second := jobContext("quota").Value(logger.TraceIDKey)
	assert.NotEqual(t, first, second)
}
