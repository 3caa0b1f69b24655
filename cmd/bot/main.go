package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/natefinch/lumberjack.v2"

	"homework_bot/internal/config"
	"homework_bot/internal/notifier"
	"homework_bot/internal/poller"
	"homework_bot/internal/practicum"
)

// LevelCritical marks failures that stop the process.
const LevelCritical = slog.Level(12)

// httpDoer is satisfied by both the Practicum and the Telegram HTTP clients.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("load .env", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, http.DefaultClient, os.Stdout)
	cancel()
	os.Exit(code)
}

// run checks the configuration and polls until ctx is cancelled. Only a
// configuration failure makes it return a non-zero code, and in that case no
// request has been sent.
func run(ctx context.Context, client httpDoer, stdout io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		log := newLogger(config.DefaultLogLevel, stdout)
		log.Log(ctx, LevelCritical, "configuration check failed, stopping", "error", err)
		return 1
	}

	out, closeOut := logOutput(cfg.LogFile, stdout)
	defer closeOut()
	log := newLogger(cfg.LogLevel, out)

	tg := notifier.NewWithClient(cfg.TelegramToken, cfg.TelegramChatID, client, log)

	api := practicum.New(client, cfg.PracticumToken, log)
	api.SetTimeout(cfg.HTTPTimeout)
	if cfg.Endpoint != "" {
		api.SetEndpoint(cfg.Endpoint)
	}

	p := poller.New(api, tg, time.Now(), log)
	p.SetInterval(cfg.PollInterval)

	log.Info("starting bot", "interval", cfg.PollInterval, "from_date", p.Cursor())

	p.Run(ctx)

	log.Info("bot stopped")
	return 0
}

// logOutput returns stdout, teed into a log file when path is set. The file
// is rotated on every start so each run gets its own log.
func logOutput(path string, stdout io.Writer) (io.Writer, func()) {
	if path == "" {
		return stdout, func() {}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			slog.Error("create log directory", "path", dir, "error", err)
			return stdout, func() {}
		}
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
	}
	if _, err := os.Stat(path); err == nil {
		if err := file.Rotate(); err != nil {
			slog.Error("rotate log file", "path", path, "error", err)
		}
	}
	return io.MultiWriter(stdout, file), func() { _ = file.Close() }
}

func newLogger(level string, out io.Writer) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level:       lvl,
		ReplaceAttr: replaceLevel,
	}))
}

func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
		a.Value = slog.StringValue("CRITICAL")
	}
	return a
}
