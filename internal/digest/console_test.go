package digest

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/iabetor/newsdigest/internal/rss"
	"github.com/mattn/go-runewidth"
)

func TestPrintSummary(t *testing.T) {
	rep := &Report{
		RunID:  "0123456789abcdef",
		Output: "news.json",
		Record: Build(time.Date(2024, 1, 5, 22, 7, 0, 0, time.UTC), time.UTC, "UTC", []string{"财经快讯", "Wire"}, []rss.Item{
			{Title: strings.Repeat("很长的中文标题", 20), Link: "https://example.com/1", Source: "财经快讯", Published: "Jan 05, 2024"},
			{Title: "Short", Link: "https://example.com/2", Source: "Wire", Published: "—"},
		}),
		Sources: []SourceStat{
			{Name: "财经快讯", Entries: 15},
			{Name: "Wire", Err: errors.New("HTTP 500")},
		},
	}

	var buf bytes.Buffer
	PrintSummary(&buf, rep, 80)
	out := buf.String()

	for _, want := range []string{"(run 01234567)", "Short", "15 条", "失败: HTTP 500", "→ news.json", "https://example.com/2"} {
		if !strings.Contains(out, want) {
			t.Errorf("输出缺少 %q:\n%s", want, out)
		}
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "很长") && runewidth.StringWidth(line) > 80 {
			t.Errorf("标题行超出宽度 (%d): %s", runewidth.StringWidth(line), line)
		}
	}
}

func TestPrintSummaryMinWidth(t *testing.T) {
	rep := &Report{RunID: "abc", Record: Build(time.Now(), time.UTC, "", nil, nil)}
	var buf bytes.Buffer
	PrintSummary(&buf, rep, 10)
	if !strings.Contains(buf.String(), strings.Repeat("-", minConsoleWidth)) {
		t.Errorf("宽度应至少为 %d:\n%s", minConsoleWidth, buf.String())
	}
	if !strings.Contains(buf.String(), "System") {
		t.Errorf("应打印占位条目:\n%s", buf.String())
	}
}
