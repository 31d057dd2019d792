package rss

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/iabetor/newsdigest/internal/logger"
	"github.com/mmcdole/gofeed"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultMaxItems     = 15
	defaultFetchTimeout = 15 * time.Second
	defaultConcurrency  = 4
	defaultUserAgent    = "newsdigest/1.0 RSS Reader"
)

// Options Fetcher 配置，零值字段使用默认值。
type Options struct {
	Timeout     time.Duration
	MaxItems    int
	Concurrency int
	// RatePerSec 每秒最多发起的请求数，<=0 表示不限制。
	RatePerSec float64
	UserAgent  string
	// Client 为空时使用带 Timeout 的默认 http.Client。
	Client *http.Client
}

// Fetcher 负责抓取 RSS 内容。每个源只请求一次，不重试。
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	limiter     *rate.Limiter
	maxItems    int
	concurrency int
	userAgent   string
}

// NewFetcher 创建 RSS 内容抓取器。
func NewFetcher(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}
	maxItems := opts.MaxItems
	if maxItems <= 0 {
		maxItems = defaultMaxItems
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}

	limit := rate.Inf
	if opts.RatePerSec > 0 {
		limit = rate.Limit(opts.RatePerSec)
	}

	return &Fetcher{
		client:      client,
		timeout:     timeout,
		limiter:     rate.NewLimiter(limit, 1),
		maxItems:    maxItems,
		concurrency: concurrency,
		userAgent:   ua,
	}
}

// FetchAll 抓取所有订阅源。单个源失败只记录日志，不影响其他源。
// 返回结果与 sources 顺序一一对应，与并发度无关。日志写入 ctx 中的 logger。
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []Result {
	log := logger.FromContext(ctx)
	results := make([]Result, len(sources))

	var g errgroup.Group
	g.SetLimit(f.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			entries, err := f.Fetch(ctx, src)
			if err != nil {
				log.Warnf("[rss] 获取 %s 失败: %v", src.Name, err)
				entries = nil
			} else {
				log.Debugf("[rss] %s 返回 %d 条", src.Name, len(entries))
			}
			results[i] = Result{Source: src, Entries: entries, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Fetch 抓取单个订阅源，返回前 maxItems 个条目，保持源内顺序。
func (f *Fetcher) Fetch(ctx context.Context, src Source) ([]Entry, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	feed, err := f.parseFeed(fetchCtx, src.URL)
	if err != nil {
		return nil, err
	}

	n := len(feed.Items)
	if n > f.maxItems {
		n = f.maxItems
	}
	entries := make([]Entry, 0, n)
	for _, it := range feed.Items[:n] {
		if it == nil {
			continue
		}
		entries = append(entries, entryFromItem(it))
	}
	return entries, nil
}

// parseFeed 请求并解析 Feed URL。
func (f *Fetcher) parseFeed(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	// gofeed.Parser 解析时会保存中间状态，并发抓取时每次新建。
	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("解析 %s 失败: %w", url, err)
	}
	return feed, nil
}
