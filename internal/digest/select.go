// Package digest 从候选池中挑选头条并生成 news.json。
package digest

import (
	"strings"

	"github.com/iabetor/newsdigest/internal/rss"
)

// Select 按池内顺序挑选前 n 个标题不重复（忽略大小写）的条目。
// 保留首次出现时的原始大小写；凑满 n 条后立即停止扫描。
// blockWords 非空时，标题包含任一屏蔽词（忽略大小写）的条目在去重前被跳过。
func Select(pool []rss.Item, n int, blockWords []string) []rss.Item {
	if n <= 0 {
		return nil
	}

	blocked := make([]string, 0, len(blockWords))
	for _, w := range blockWords {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			blocked = append(blocked, w)
		}
	}

	seen := make(map[string]struct{}, n)
	top := make([]rss.Item, 0, n)
	for _, it := range pool {
		key := strings.ToLower(it.Title)
		if containsAny(key, blocked) {
			continue
		}
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			top = append(top, it)
		}
		if len(top) == n {
			break
		}
	}
	return top
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
