// Package stats 记录提供商请求的次数、失败、token 和耗时
package stats

import (
	"context"
	"sync"
	"time"

	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

// ProviderStats 单个提供商的累计统计
type ProviderStats struct {
	Provider           string
	Model              string
	TotalRequests      int64
	SuccessfulRequests int64
	FailedRequests     int64
	TotalTokensIn      int64
	TotalTokensOut     int64
	TotalLatency       time.Duration
	MinLatency         time.Duration
	MaxLatency         time.Duration
	ErrorTypes         map[string]int64 // 按错误码统计
}

// AverageLatency 平均耗时
func (s ProviderStats) AverageLatency() time.Duration {
	if s.TotalRequests == 0 {
		return 0
	}
	return s.TotalLatency / time.Duration(s.TotalRequests)
}

// StatisticsMiddleware 包装提供商并记录每次翻译请求，健康检查不计入
type StatisticsMiddleware struct {
	next providers.Provider

	mu    sync.Mutex
	stats ProviderStats
}

var _ providers.Provider = (*StatisticsMiddleware)(nil)

// NewStatisticsMiddleware 创建统计中间件
func NewStatisticsMiddleware(next providers.Provider) *StatisticsMiddleware {
	return &StatisticsMiddleware{
		next: next,
		stats: ProviderStats{
			Provider:   next.GetName(),
			ErrorTypes: make(map[string]int64),
		},
	}
}

// Translate 带统计的翻译方法
func (sm *StatisticsMiddleware) Translate(ctx context.Context, req *providers.ProviderRequest) (*providers.ProviderResponse, error) {
	start := time.Now()
	resp, err := sm.next.Translate(ctx, req)
	sm.record(resp, err, time.Since(start))
	return resp, err
}

func (sm *StatisticsMiddleware) record(resp *providers.ProviderResponse, err error, latency time.Duration) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	s := &sm.stats
	s.TotalRequests++
	s.TotalLatency += latency
	if s.MinLatency == 0 || latency < s.MinLatency {
		s.MinLatency = latency
	}
	if latency > s.MaxLatency {
		s.MaxLatency = latency
	}

	if err != nil {
		s.FailedRequests++
		code := providers.ErrorCode(err)
		if code == "" {
			code = "unknown"
		}
		s.ErrorTypes[code]++
		return
	}

	s.SuccessfulRequests++
	if resp != nil {
		s.TotalTokensIn += int64(resp.TokensIn)
		s.TotalTokensOut += int64(resp.TokensOut)
		if resp.Model != "" {
			s.Model = resp.Model
		}
	}
}

// Stats 返回统计快照
func (sm *StatisticsMiddleware) Stats() ProviderStats {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	snapshot := sm.stats
	snapshot.ErrorTypes = make(map[string]int64, len(sm.stats.ErrorTypes))
	for k, v := range sm.stats.ErrorTypes {
		snapshot.ErrorTypes[k] = v
	}
	return snapshot
}

func (sm *StatisticsMiddleware) HealthCheck(ctx context.Context) error {
	return sm.next.HealthCheck(ctx)
}

func (sm *StatisticsMiddleware) GetName() string {
	return sm.next.GetName()
}

func (sm *StatisticsMiddleware) Kind() providers.Kind {
	return sm.next.Kind()
}
