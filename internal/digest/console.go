package digest

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	minConsoleWidth = 40
	sourceColWidth  = 18
)

// PrintSummary 在终端打印本次运行的头条表格，按显示宽度对齐（兼容中日韩字符）。
func PrintSummary(w io.Writer, rep *Report, width int) {
	if width < minConsoleWidth {
		width = minConsoleWidth
	}
	// "  " + source + "  " + title
	titleWidth := width - sourceColWidth - 4

	fmt.Fprintf(w, "%s  (run %s)\n", rep.Record.UpdatedLocal, shortID(rep.RunID))
	fmt.Fprintln(w, strings.Repeat("-", width))
	for _, it := range rep.Record.Items {
		src := runewidth.FillRight(runewidth.Truncate(it.Source, sourceColWidth, "…"), sourceColWidth)
		title := runewidth.Truncate(it.Title, titleWidth, "…")
		fmt.Fprintf(w, "  %s  %s\n", src, title)
		fmt.Fprintf(w, "  %s  %s · %s\n", strings.Repeat(" ", sourceColWidth), it.Published, it.Link)
	}
	fmt.Fprintln(w, strings.Repeat("-", width))

	for _, s := range rep.Sources {
		status := fmt.Sprintf("%d 条", s.Entries)
		if s.Err != nil {
			status = "失败: " + s.Err.Error()
		}
		name := runewidth.FillRight(runewidth.Truncate(s.Name, sourceColWidth+10, "…"), sourceColWidth+10)
		fmt.Fprintf(w, "  %s  %s\n", name, status)
	}
	fmt.Fprintf(w, "→ %s\n", rep.Output)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
