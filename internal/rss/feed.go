// Package rss 负责抓取 RSS/Atom 订阅源并将条目规范化为摘要条目。
package rss

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// Source 订阅源信息。
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Entry 订阅源中的原始条目。日期字段在缺失或无法解析时为 nil。
type Entry struct {
	Title        string
	Link         string
	Published    *time.Time
	Updated      *time.Time
	PublishedRaw string
	UpdatedRaw   string
}

// Item 规范化后的摘要条目，Title 和 Link 均非空。
type Item struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Published string `json:"published"`
}

// Result 单个订阅源的抓取结果。Err 非空时 Entries 为空。
type Result struct {
	Source  Source
	Entries []Entry
	Err     error
}

// entryFromItem 将 gofeed 条目转换为 Entry。
func entryFromItem(it *gofeed.Item) Entry {
	return Entry{
		Title:        it.Title,
		Link:         it.Link,
		Published:    it.PublishedParsed,
		Updated:      it.UpdatedParsed,
		PublishedRaw: it.Published,
		UpdatedRaw:   it.Updated,
	}
}
