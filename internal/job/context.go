package job

import (
	"context"

	"github.com/Rishab-Kumar09/Auto-Poster-Linkedin/internal/pkg/logger"

	"github.com/google/uuid"
)

// jobContext 为一次定时任务生成带 trace_id 的上下文，同一轮任务的日志可串起来
func jobContext(name string) context.Context {
	return context.WithValue(context.Background(), logger.TraceIDKey, "job-"+name+"-"+uuid.NewString())
}
