package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nerdneilsfield/go-docx-translator/internal/cache"
	"github.com/nerdneilsfield/go-docx-translator/internal/config"
	"github.com/nerdneilsfield/go-docx-translator/internal/logger"
	"github.com/nerdneilsfield/go-docx-translator/internal/rewriter"
	"github.com/nerdneilsfield/go-docx-translator/internal/translator"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/factory"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/probe"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers/stats"
)

// options 命令行标志
type options struct {
	configFile  string
	envFile     string
	targetLang  string
	provider    string
	inputDir    string
	outputDir   string
	cache       string
	predefined  string
	match       string
	debug       bool
	interactive bool
}

// NewRootCommand 创建根命令
func NewRootCommand(version, commit, buildDate string) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "docx-translator [flags] [files...]",
		Short: "Translate Word documents while keeping their formatting",
		Long: `docx-translator 翻译 .docx 文档中的段落、表格、页眉和页脚，
尽量保留每个文本片段的格式（粗体、斜体、字体、字号、颜色、高亮）和内嵌图片。

未指定文件时，翻译 --input-dir 下的所有 .docx 文件，结果写入 --output-dir，
文件名同样会被翻译。

支持的翻译提供商:
  - GROK: xAI Grok（OpenAI 兼容接口）
  - FREE_CHATGPT: OpenAI 兼容的免费 ChatGPT 代理
  - GEMINI: Google Gemini
  - auto: 探测全部提供商，使用延迟最低的一个`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd, opts, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "配置文件路径（默认 ~/.docx-translator.yaml 或 ./.docx-translator.yaml）")
	flags.StringVar(&opts.envFile, "env-file", "", "dotenv 文件路径（默认 ./.env）")
	flags.BoolVar(&opts.debug, "debug", false, "启用调试日志")

	rootCmd.Flags().StringVarP(&opts.targetLang, "target", "t", "", "目标语言，例如 english、thai、zh-TW")
	rootCmd.Flags().StringVarP(&opts.provider, "provider", "p", "", "翻译提供商：grok、free_chatgpt、gemini 或 auto")
	rootCmd.Flags().StringVar(&opts.inputDir, "input-dir", "", "未指定文件时的输入目录")
	rootCmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "输出目录")
	rootCmd.Flags().StringVar(&opts.cache, "cache", "", "翻译缓存：none、memory 或 redis")
	rootCmd.Flags().StringVar(&opts.predefined, "predefined-translations", "", "预定义翻译 TOML 文件")
	rootCmd.Flags().StringVar(&opts.match, "match", "", "按模糊匹配筛选输入目录中的文件")
	rootCmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "交互式选择文件、目标语言和提供商")

	rootCmd.AddCommand(newProbeCommand(opts), newLanguagesCommand())
	return rootCmd
}

// loadConfig 加载配置并应用命令行上显式给出的标志
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(config.LoadOptions{
		ConfigFile: opts.configFile,
		EnvFile:    opts.envFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("target") {
		cfg.TargetLang = opts.targetLang
	}
	if changed("provider") {
		cfg.Provider = opts.provider
	}
	if changed("input-dir") {
		cfg.InputDir = opts.inputDir
	}
	if changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if changed("cache") {
		cfg.Cache = opts.cache
	}
	if changed("predefined-translations") {
		cfg.PredefinedTranslations = opts.predefined
	}
	if changed("debug") {
		cfg.Debug = opts.debug
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runTranslate(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	log, runID := logger.WithRunID(logger.NewLogger(cfg.Debug))
	defer func() {
		_ = log.Sync()
	}()

	files := args
	if len(files) == 0 {
		files, err = listInputFiles(cfg.InputDir, opts.match)
		if err != nil {
			return err
		}
	}

	if opts.interactive {
		if files, err = runMenu(cfg, files); err != nil {
			return err
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .docx files to translate in %s", cfg.InputDir)
	}

	log.Info("starting translation",
		zap.String("run_id", runID),
		zap.Int("files", len(files)),
		zap.String("target", cfg.TargetLang),
		zap.String("provider", cfg.Provider))

	provider, err := selectProvider(cmd.Context(), cmd, cfg, log)
	if err != nil {
		return err
	}

	adapterOpts, closeCache, err := adapterOptions(cfg, log)
	if err != nil {
		return err
	}
	defer closeCache()

	// SIGINT/SIGTERM 只设置取消标记，正在进行的请求会完成
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	token := rewriter.NewCancelToken()
	token.CancelOnDone(sigCtx)

	tracked := stats.NewStatisticsMiddleware(provider)
	adapter := translator.NewAdapter(tracked, log, adapterOpts...)
	batch := translator.NewBatch(adapter, translator.BatchConfig{
		OutputDir:  cfg.OutputDir,
		TargetLang: cfg.TargetLang,
		Cancel:     token,
	}, log)

	result, err := batch.Run(cmd.Context(), files)
	if err != nil {
		return err
	}

	usage := tracked.Stats()
	log.Info("provider usage",
		zap.String("provider", usage.Provider),
		zap.Int64("requests", usage.TotalRequests),
		zap.Int64("tokens_in", usage.TotalTokensIn),
		zap.Int64("tokens_out", usage.TotalTokensOut),
		zap.Duration("avg_latency", usage.AverageLatency()))

	printSummary(cmd.OutOrStdout(), result, adapter.Counters(), usage)
	if failed := result.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d documents failed", failed, len(result.Documents))
	}
	return nil
}

// selectProvider 按配置创建提供商；auto 时探测全部提供商并选择最快的
func selectProvider(ctx context.Context, cmd *cobra.Command, cfg *config.Config, log *zap.Logger) (providers.Provider, error) {
	registry, err := factory.NewRegistry(cfg, factory.Options{Timeout: cfg.Timeout()})
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(cfg.Provider, config.AutoProvider) {
		kind, err := providers.ParseKind(cfg.Provider)
		if err != nil {
			return nil, err
		}
		return registry.Get(kind)
	}

	results := probe.Rank(ctx, registry.List(), log)
	printProbe(cmd.OutOrStdout(), results)

	kind, ok := probe.Best(results)
	if !ok {
		return nil, errors.New("no translation provider is reachable")
	}
	log.Info("selected provider", zap.String("provider", kind.String()))
	return registry.Get(kind)
}

func adapterOptions(cfg *config.Config, log *zap.Logger) ([]translator.AdapterOption, func(), error) {
	var opts []translator.AdapterOption
	closeFn := func() {}

	if cfg.PredefinedTranslations != "" {
		table, err := config.LoadPredefinedTranslations(cfg.PredefinedTranslations)
		if err != nil {
			return nil, closeFn, err
		}
		log.Info("loaded predefined translations",
			zap.String("target", table.TargetLang),
			zap.Int("entries", len(table.Translations)))
		opts = append(opts, translator.WithPredefined(table))
	}

	c, err := cache.New(cfg.CacheOptions(), log)
	if err != nil {
		return nil, closeFn, err
	}
	if c != nil {
		opts = append(opts, translator.WithCache(c))
		if rc, ok := c.(*cache.RedisCache); ok {
			closeFn = func() { _ = rc.Close() }
		}
	}
	return opts, closeFn, nil
}
