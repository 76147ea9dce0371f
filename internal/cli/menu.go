package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"

	"github.com/nerdneilsfield/go-docx-translator/internal/config"
	"github.com/nerdneilsfield/go-docx-translator/pkg/providers"
)

var errNotTerminal = errors.New("interactive mode requires a terminal")

func isTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// runMenu 交互式选择文件、目标语言和提供商，结果写回 cfg
func runMenu(cfg *config.Config, files []string) ([]string, error) {
	if !isTerminal() {
		return nil, errNotTerminal
	}

	selected, err := selectFiles(files)
	if err != nil {
		return nil, err
	}

	langOptions := make([]string, 0, len(config.Languages()))
	byOption := make(map[string]config.Language)
	for _, l := range config.Languages() {
		option := fmt.Sprintf("%s (%s)", l.DisplayName(), l.SelfName())
		langOptions = append(langOptions, option)
		byOption[option] = l
	}
	langChoice, err := pterm.DefaultInteractiveSelect.
		WithOptions(langOptions).
		Show("选择目标语言 / Target language")
	if err != nil {
		return nil, err
	}
	cfg.TargetLang = byOption[langChoice].Name

	providerOptions := []string{config.AutoProvider}
	for _, k := range providers.Kinds() {
		providerOptions = append(providerOptions, k.String())
	}
	providerChoice, err := pterm.DefaultInteractiveSelect.
		WithOptions(providerOptions).
		WithDefaultOption(cfg.Provider).
		Show("选择翻译提供商 / Provider")
	if err != nil {
		return nil, err
	}
	cfg.Provider = providerChoice

	return selected, cfg.Validate()
}

func selectFiles(files []string) ([]string, error) {
	if len(files) <= 1 {
		return files, nil
	}

	names := make([]string, len(files))
	byName := make(map[string]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
		byName[names[i]] = f
	}

	chosen, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(names).
		WithDefaultOptions(names).
		Show("选择要翻译的文件 / Documents")
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(chosen))
	for _, name := range chosen {
		selected = append(selected, byName[name])
	}
	return selected, nil
}
