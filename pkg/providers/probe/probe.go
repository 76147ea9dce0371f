// Package probe 检查翻译后端的连通性并按延迟排序
package probe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// Result 单个提供商的探测结果
type Result struct {
	Kind    providers.Kind
	OK      bool
	Message string
	Latency time.Duration
	Err     error
}

// TestConnection 发送测试消息，返回是否成功及说明
func TestConnection(ctx context.Context, p providers.Provider) (bool, string) {
	err := p.HealthCheck(ctx)
	return err == nil, message(p.Kind(), err)
}

func message(kind providers.Kind, err error) string {
	if err != nil {
		return fmt.Sprintf("%s API connection failed: %v", kind, err)
	}
	return fmt.Sprintf("%s API connection succeeded", kind)
}

// MeasureLatency 测量一次健康检查的耗时
func MeasureLatency(ctx context.Context, p providers.Provider) (time.Duration, error) {
	start := time.Now()
	err := p.HealthCheck(ctx)
	return time.Since(start), err
}

// Rank 逐个探测提供商，可用的按延迟升序排在前面，失败的排在最后
func Rank(ctx context.Context, ps []providers.Provider, logger *zap.Logger) []Result {
	if logger == nil {
		logger = zap.NewNop()
	}

	results := make([]Result, 0, len(ps))
	for _, p := range ps {
		latency, err := MeasureLatency(ctx, p)
		r := Result{Kind: p.Kind(), OK: err == nil, Message: message(p.Kind(), err), Latency: latency, Err: err}
		if err != nil {
			logger.Warn("provider unreachable",
				zap.String("provider", p.Kind().String()),
				zap.Error(err))
		} else {
			logger.Debug("provider reachable",
				zap.String("provider", p.Kind().String()),
				zap.Duration("latency", latency))
		}
		results = append(results, r)
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].OK != results[j].OK {
			return results[i].OK
		}
		if !results[i].OK {
			return false
		}
		return results[i].Latency < results[j].Latency
	})
	return results
}

// Best 返回排序结果中第一个可用的提供商
func Best(results []Result) (providers.Kind, bool) {
	for _, r := range results {
		if r.OK {
			return r.Kind, true
		}
	}
	return "", false
}
