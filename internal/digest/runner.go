package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iabetor/newsdigest/internal/config"
	"github.com/iabetor/newsdigest/internal/logger"
	"github.com/iabetor/newsdigest/internal/rss"
)

// FeedFetcher 抓取一组订阅源，结果与输入顺序一致。
type FeedFetcher interface {
	FetchAll(ctx context.Context, sources []rss.Source) []rss.Result
}

// SourceStat 单个源在本次运行中的结果。
type SourceStat struct {
	Name    string
	Entries int
	Err     error
}

// Report 一次运行的结果汇总。
type Report struct {
	RunID    string
	Output   string
	Record   Record
	Sources  []SourceStat
	PoolSize int
	Duration time.Duration
}

// Fallback 是否因没有可用头条而写入了占位条目。
func (r *Report) Fallback() bool {
	return len(r.Record.Items) == 1 && r.Record.Items[0] == Placeholder()
}

// Runner 执行一次完整的抓取、挑选和写出流程。
type Runner struct {
	cfg     *config.Config
	fetcher FeedFetcher
	loc     *time.Location
	now     func() time.Time
}

// NewRunner 根据配置创建 Runner。fetcher 为 nil 时按配置创建 rss.Fetcher。
func NewRunner(cfg *config.Config, fetcher FeedFetcher) (*Runner, error) {
	loc, err := cfg.Digest.Location()
	if err != nil {
		return nil, fmt.Errorf("加载时区 %s 失败: %w", cfg.Digest.Timezone, err)
	}
	if fetcher == nil {
		fetcher = rss.NewFetcher(rss.Options{
			Timeout:     cfg.Fetch.Timeout(),
			MaxItems:    cfg.Fetch.MaxItems,
			Concurrency: cfg.Fetch.Concurrency,
			RatePerSec:  cfg.Fetch.RatePerSec,
			UserAgent:   cfg.Fetch.UserAgent,
		})
	}
	return &Runner{cfg: cfg, fetcher: fetcher, loc: loc, now: time.Now}, nil
}

// SetClock 替换当前时间来源，用于测试。
func (r *Runner) SetClock(now func() time.Time) {
	r.now = now
}

// Run 抓取所有源并写出 news.json。抓取失败只影响条目数量。
// ctx 在抓取期间被取消时不写文件，保留上一次的输出并返回错误；写文件失败同样返回错误。
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	rep := &Report{RunID: uuid.NewString(), Output: r.cfg.Digest.Output}
	log := logger.WithRun(rep.RunID)
	ctx = logger.NewContext(ctx, log)

	sources := make([]rss.Source, len(r.cfg.Feeds))
	for i, f := range r.cfg.Feeds {
		sources[i] = rss.Source{Name: f.Name, URL: f.URL}
	}

	log.Infof("[digest] 开始抓取 %d 个订阅源", len(sources))
	results := r.fetcher.FetchAll(ctx, sources)
	if err := ctx.Err(); err != nil {
		log.Warnf("[digest] 抓取被取消，保留原有 %s", rep.Output)
		return rep, fmt.Errorf("抓取被取消: %w", err)
	}
	for _, res := range results {
		rep.Sources = append(rep.Sources, SourceStat{
			Name:    res.Source.Name,
			Entries: len(res.Entries),
			Err:     res.Err,
		})
	}

	pool := rss.Pool(results, r.loc)
	rep.PoolSize = len(pool)
	top := Select(pool, r.cfg.Digest.TopN, r.cfg.Filter.ActiveBlockWords())

	rep.Record = Build(r.now(), r.loc, r.cfg.Digest.ZoneLabel, r.cfg.FeedNames(), top)
	if len(top) == 0 {
		log.Warn("[digest] 没有可用头条，写入占位条目")
	}

	if err := WriteFile(rep.Output, rep.Record); err != nil {
		return rep, err
	}

	rep.Duration = time.Since(start)
	log.Infof("[digest] 已写入 %s: 候选 %d 条，选出 %d 条，耗时 %v",
		rep.Output, rep.PoolSize, len(top), rep.Duration)
	return rep, nil
}
