package rss

import (
	"strings"
	"time"
	"unicode"

	"github.com/iabetor/newsdigest/internal/logger"
)

// DatePlaceholder 条目没有可用日期时使用的占位符。
const DatePlaceholder = "—"

// DateLayout 条目发布日期的展示格式，如 "Jan 05, 2024"。
const DateLayout = "Jan 02, 2006"

// isSpace 在 unicode.IsSpace 之外，把 U+001C–U+001F（信息分隔符）也视为空白。
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Clean 合并连续空白（含 Unicode 空白）为单个空格并去除首尾空白。
func Clean(s string) string {
	return strings.Join(strings.FieldsFunc(s, isSpace), " ")
}

// FormatDate 依次检查 Published、Updated，将第一个存在的时间转换到 loc 后格式化。
// 两者都没有解析出时间（缺失或格式无法识别）时返回 DatePlaceholder。
func FormatDate(e Entry, loc *time.Location) string {
	for _, t := range []*time.Time{e.Published, e.Updated} {
		if t != nil && !t.IsZero() {
			return t.In(loc).Format(DateLayout)
		}
	}
	return DatePlaceholder
}

// Normalize 将原始条目转换为 Item。标题或链接为空时返回 false。
func Normalize(e Entry, source string, loc *time.Location) (Item, bool) {
	title := Clean(e.Title)
	link := Clean(e.Link)
	if title == "" || link == "" {
		return Item{}, false
	}

	published := FormatDate(e, loc)
	if published == DatePlaceholder && (e.PublishedRaw != "" || e.UpdatedRaw != "") {
		logger.Debugf("[rss] 无法识别 %q (%s) 的日期 %q/%q，使用占位符",
			title, source, e.PublishedRaw, e.UpdatedRaw)
	}

	return Item{
		Title:     title,
		Link:      link,
		Source:    source,
		Published: published,
	}, true
}

// Pool 按抓取结果顺序规范化所有条目，得到候选池。
func Pool(results []Result, loc *time.Location) []Item {
	var pool []Item
	for _, r := range results {
		for _, e := range r.Entries {
			if it, ok := Normalize(e, r.Source.Name, loc); ok {
				pool = append(pool, it)
			}
		}
	}
	return pool
}
