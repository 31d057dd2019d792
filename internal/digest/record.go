package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/iabetor/newsdigest/internal/rss"
)

// UpdatedLayout updated_local 的时间格式（不含时区标签），如 "Jan 05, 2024 02:30 PM"。
const UpdatedLayout = "Jan 02, 2006 03:04 PM"

// Record 写入 news.json 的内容。
type Record struct {
	UpdatedLocal string     `json:"updated_local"`
	Sources      []string   `json:"sources"`
	Items        []rss.Item `json:"items"`
}

// Placeholder 没有任何可用头条时的占位条目。
func Placeholder() rss.Item {
	return rss.Item{
		Title:     "No headlines found (feeds may be temporarily down).",
		Link:      "https://github.com",
		Source:    "System",
		Published: rss.DatePlaceholder,
	}
}

// Build 组装输出记录。sources 为全部已配置的源名称，与抓取是否成功无关；
// top 为空时 Items 只包含一个占位条目。
func Build(now time.Time, loc *time.Location, zoneLabel string, sources []string, top []rss.Item) Record {
	updated := now.In(loc).Format(UpdatedLayout)
	if zoneLabel != "" {
		updated += " " + zoneLabel
	}

	items := append([]rss.Item(nil), top...)
	if len(items) == 0 {
		items = []rss.Item{Placeholder()}
	}

	return Record{
		UpdatedLocal: updated,
		Sources:      append([]string{}, sources...),
		Items:        items,
	}
}

// Encode 以两个空格缩进写出 JSON，非 ASCII 字符与 HTML 字符均原样输出。
func Encode(w io.Writer, rec Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// WriteFile 覆盖写入 path，必要时创建父目录。
func WriteFile(path string, rec Record) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("创建输出目录失败: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("创建 %s 失败: %w", path, err)
	}
	if err := Encode(f, rec); err != nil {
		f.Close()
		return fmt.Errorf("写入 %s 失败: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("关闭 %s 失败: %w", path, err)
	}
	return nil
}
