package logger

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		" error ": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q) 返回错误: %v", in, err)
		}
		if got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("期望未知级别返回错误")
	}
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	z := New(&buf, zapcore.WarnLevel)
	z.Sugar().Infof("hidden %d", 1)
	z.Sugar().Warnf("shown %d", 2)
	_ = z.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info 日志不应输出: %s", out)
	}
	if !strings.Contains(out, "shown 2") || !strings.Contains(out, "WARN") {
		t.Errorf("warn 日志缺失: %s", out)
	}
}

func TestInitWithFile(t *testing.T) {
	old, oldZ := L, Z
	defer func() { L, Z = old, oldZ }()

	path := filepath.Join(t.TempDir(), "logs", "newsdigest.log")
	if err := Init(Config{Level: "debug", File: path}); err != nil {
		t.Fatalf("Init 失败: %v", err)
	}
	Debugf("[test] %s", "ok")
	Sync()
}

func TestInitRejectsBadLevel(t *testing.T) {
	if err := Init(Config{Level: "loud"}); err == nil {
		t.Fatal("期望非法级别返回错误")
	}
}

func TestFromContext(t *testing.T) {
	if FromContext(context.Background()) != L {
		t.Error("没有 logger 时应返回全局 L")
	}

	var buf bytes.Buffer
	l := New(&buf, zapcore.InfoLevel).Sugar().With("run_id", "run-42")
	ctx := NewContext(context.Background(), l)
	FromContext(ctx).Infof("[test] %s", "scoped")
	_ = l.Sync()

	out := buf.String()
	if !strings.Contains(out, "scoped") || !strings.Contains(out, "run-42") {
		t.Errorf("应使用 context 中的 logger: %s", out)
	}
}
