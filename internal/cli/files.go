package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// listInputFiles 列出目录中的 .docx 文件，跳过 Word 的锁文件（~$ 开头）。
// match 不为空时只保留模糊匹配的文件，按匹配距离排序
func listInputFiles(dir, match string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || strings.HasPrefix(name, "~$") {
			continue
		}
		if strings.EqualFold(filepath.Ext(name), ".docx") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	if match != "" {
		ranks := fuzzy.RankFindFold(match, names)
		sort.Sort(ranks)
		matched := make([]string, 0, len(ranks))
		for _, r := range ranks {
			matched = append(matched, r.Target)
		}
		names = matched
	}

	files := make([]string, 0, len(names))
	for _, name := range names {
		files = append(files, filepath.Join(dir, name))
	}
	return files, nil
}
