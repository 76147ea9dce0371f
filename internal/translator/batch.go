package translator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-docx-translator/internal/document"
	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
)

// BatchConfig 批量翻译配置
type BatchConfig struct {
	OutputDir  string
	TargetLang string
	// Cancel 可以为 nil
	Cancel *rewriter.CancelToken
}

// DocumentResult 单个文档的翻译结果
type DocumentResult struct {
	Input    string
	Output   string // 未保存时为空
	Stats    rewriter.Stats
	Err      error
	Duration time.Duration
}

// OK 文档已翻译并保存
func (r DocumentResult) OK() bool {
	return r.Err == nil && r.Output != ""
}

// Cancelled 文档因取消而未保存
func (r DocumentResult) Cancelled() bool {
	return errors.Is(r.Err, rewriter.ErrCancelled)
}

// BatchResult 批量翻译汇总
type BatchResult struct {
	TargetLang string
	Documents  []DocumentResult
	// Cancelled 为 true 时，之后的文档都没有处理
	Cancelled bool
	Duration  time.Duration
}

// Succeeded 成功保存的文档数
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, d := range r.Documents {
		if d.OK() {
			n++
		}
	}
	return n
}

// Failed 出错的文档数，取消不计入
func (r *BatchResult) Failed() int {
	n := 0
	for _, d := range r.Documents {
		if d.Err != nil && !d.Cancelled() {
			n++
		}
	}
	return n
}

// Batch 按顺序翻译一组文档
type Batch struct {
	translator rewriter.Translator
	config     BatchConfig
	logger     *zap.Logger
}

// NewBatch 创建批量翻译器
func NewBatch(translator rewriter.Translator, config BatchConfig, logger *zap.Logger) *Batch {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Batch{
		translator: translator,
		config:     config,
		logger:     logger,
	}
}

// Run 依次翻译文件。单个文档的错误记录在结果中并继续下一个；
// 取消后当前文档不保存，后续文档不再处理
func (b *Batch) Run(ctx context.Context, files []string) (*BatchResult, error) {
	start := time.Now()
	result := &BatchResult{TargetLang: b.config.TargetLang}

	if err := os.MkdirAll(b.config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	used := make(map[string]bool)
	for i, file := range files {
		if b.config.Cancel.Cancelled() {
			b.logger.Info("batch cancelled", zap.Int("remaining", len(files)-i))
			result.Cancelled = true
			break
		}

		doc := b.translateDocument(ctx, file, used)
		result.Documents = append(result.Documents, doc)
		if doc.Cancelled() {
			result.Cancelled = true
			break
		}
	}

	result.Duration = time.Since(start)
	b.logger.Info("batch finished",
		zap.Int("documents", len(result.Documents)),
		zap.Int("succeeded", result.Succeeded()),
		zap.Int("failed", result.Failed()),
		zap.Bool("cancelled", result.Cancelled),
		zap.Duration("duration", result.Duration))
	return result, nil
}

func (b *Batch) translateDocument(ctx context.Context, file string, used map[string]bool) (res DocumentResult) {
	start := time.Now()
	res = DocumentResult{Input: file}
	logger := b.logger.With(zap.String("file", filepath.Base(file)))

	defer func() {
		res.Duration = time.Since(start)
	}()

	doc, err := document.Open(file, logger)
	if err != nil {
		res.Err = err
		logger.Error("failed to open document", zap.Error(err))
		return res
	}

	walker := rewriter.NewWalker(b.translator, b.config.TargetLang, b.config.Cancel, logger)
	res.Stats, err = walker.Walk(ctx, doc)
	if err != nil {
		res.Err = err
		if errors.Is(err, rewriter.ErrCancelled) {
			logger.Warn("translation cancelled, document not saved")
		} else {
			logger.Error("failed to translate document", zap.Error(err))
		}
		return res
	}

	name := TranslateFilename(ctx, b.translator, filepath.Base(file), b.config.TargetLang)
	output := uniquePath(filepath.Join(b.config.OutputDir, name), used)

	// 文件名翻译期间也可能收到取消信号
	if b.config.Cancel.Cancelled() {
		res.Err = rewriter.ErrCancelled
		logger.Warn("translation cancelled, document not saved")
		return res
	}

	if err := doc.Save(output); err != nil {
		res.Err = err
		logger.Error("failed to save document", zap.Error(err))
		return res
	}
	used[output] = true
	res.Output = output

	logger.Info("document translated",
		zap.String("output", output),
		zap.Int("paragraphs", res.Stats.Paragraphs),
		zap.Int("paragraphs_skipped", res.Stats.ParagraphsSkipped),
		zap.Int("cells", res.Stats.Cells),
		zap.Int("cells_skipped", res.Stats.CellsSkipped),
		zap.Int("images", res.Stats.Images),
		zap.Duration("duration", time.Since(start)))
	return res
}

// uniquePath 避免同一批次里两个文档翻译成同一个文件名
func uniquePath(path string, used map[string]bool) string {
	if !used[path] {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if !used[candidate] {
			return candidate
		}
	}
}
