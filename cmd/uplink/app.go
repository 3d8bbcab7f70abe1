package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"neural-uplink/internal/config"
	"neural-uplink/internal/generation"
	"neural-uplink/internal/llm"
	"neural-uplink/internal/reveal"
	"neural-uplink/internal/session"
	"neural-uplink/internal/storage"
)

type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	gen  *generation.Generator
	rec  storage.Recorder
	logf io.Closer
}

// newApp loads configuration and wires the generator. Missing credentials
// are not fatal: the session runs in demo mode and every turn gets the
// configuration advisory.
func newApp(ctx context.Context, fallback io.Writer) (*app, error) {
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}

	logger, closer, err := newLogger(cfg, fallback)
	if err != nil {
		return nil, err
	}

	factory := llm.NewFactory(cfg)
	factory.Log = logger.WithField("component", "llm")
	client, err := factory.CreateClient(ctx)
	switch {
	case errors.Is(err, llm.ErrMissingCredentials):
		logger.WithField("provider", cfg.LLMProvider).Warn("llm credentials missing, running in demo mode")
		client = nil
	case err != nil:
		if closer != nil {
			_ = closer.Close()
		}
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	gen := generation.New(client,
		generation.WithSystemInstruction(readSystemPrompt(cfg.SystemPromptPath, logger)),
		generation.WithAssistantName(cfg.AssistantName),
		generation.WithTimeout(cfg.RequestTimeout),
		generation.WithLogger(logger.WithField("component", "generation")),
	)

	var rec storage.Recorder
	if cfg.JournalFilePath != "" {
		r, err := storage.Open(cfg.JournalDriver, cfg.JournalFilePath)
		if err != nil {
			logger.WithError(err).Warn("failed to init turn journal")
		} else {
			rec = r
		}
	}

	logger.WithFields(logrus.Fields{
		"provider": cfg.LLMProvider,
		"model":    cfg.Model(),
		"demo":     client == nil,
	}).Info("uplink ready")

	return &app{cfg: cfg, log: logger, gen: gen, rec: rec, logf: closer}, nil
}

func (a *app) newSession(observer session.Observer, charsPerTick int) *session.Controller {
	if charsPerTick <= 0 {
		charsPerTick = a.cfg.RevealCharsPerTick
	}
	opts := []session.Option{
		session.WithGreeting(a.cfg.Greeting),
		session.WithLogger(a.log.WithField("component", "session")),
		session.WithObserver(observer),
		session.WithStage(reveal.NewStage(
			reveal.WithInterval(a.cfg.RevealInterval),
			reveal.WithCharsPerTick(charsPerTick),
		)),
	}
	if a.rec != nil {
		opts = append(opts, session.WithRecorder(a.rec))
	}
	return session.New(a.gen, opts...)
}

func (a *app) Close() {
	if c, ok := a.rec.(io.Closer); ok {
		_ = c.Close()
	}
	if a.logf != nil {
		_ = a.logf.Close()
	}
}

// newLogger writes to LOG_FILE_PATH when set, otherwise to fallback.
func newLogger(cfg *config.Config, fallback io.Writer) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	logger.SetLevel(level)

	switch strings.ToLower(cfg.LogFormat) {
	case "json":
		logger.SetFormatter(&logrus.JSONFormatter{})
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	}

	if cfg.LogFilePath == "" {
		logger.SetOutput(fallback)
		return logger, nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger.SetOutput(f)
	return logger, f, nil
}

func readSystemPrompt(path string, log logrus.FieldLogger) string {
	if path == "" {
		return generation.DefaultSystemInstruction
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).WithField("path", path).Warn("system prompt unreadable, using built-in default")
		return generation.DefaultSystemInstruction
	}
	s := strings.TrimSpace(string(data))
	if s == "" {
		return generation.DefaultSystemInstruction
	}
	return s
}
