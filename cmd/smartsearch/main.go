// Command smartsearch runs the smart search engine against a YAML question
// bank and prints the results as JSON.
//
//	smartsearch [-config config.yaml] [-bank questions.yaml] search [-category c] [-difficulty d] <query>
//	smartsearch related <question-id>
//	smartsearch recommend -history answers.yaml
//	smartsearch path -history answers.yaml [-level n]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/qiyas-prep/smartsearch/infrastructure/middleware"
	"github.com/qiyas-prep/smartsearch/infrastructure/questionbank"
	"github.com/qiyas-prep/smartsearch/internal/application"
	"github.com/qiyas-prep/smartsearch/internal/domain"
	"github.com/qiyas-prep/smartsearch/internal/logger"
	"github.com/qiyas-prep/smartsearch/internal/ports"
)

var errUsage = errors.New("usage: smartsearch [-config file] [-bank file] <search|related|recommend|path> [args]")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	global := flag.NewFlagSet("smartsearch", flag.ContinueOnError)
	configPath := global.String("config", "", "Path to the YAML config file")
	bankPath := global.String("bank", "", "Path to the question bank (overrides bank.path)")
	if err := global.Parse(args); err != nil {
		return err
	}

	cfg, err := application.LoadConfig(*configPath)
	if err != nil {
		return err
	}
	if *bankPath != "" {
		cfg.Bank.Path = *bankPath
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	var (
		metrics  ports.MetricsCollector
		registry *prometheus.Registry
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		metrics = middleware.NewPrometheusMetrics(registry)
	}

	source := questionbank.NewFileSource(questionbank.NewLoader(), cfg.Bank.Path)
	svc, err := application.NewService(cfg, source, metrics)
	if err != nil {
		return err
	}

	log.Debug("configuration resolved",
		zap.String("env", cfg.Env),
		zap.String("bank", cfg.Bank.Path),
		zap.Float64("threshold", cfg.Search.Threshold),
		zap.Int("workers", cfg.Engine.Workers),
	)

	rest := global.Args()
	if len(rest) == 0 {
		return errUsage
	}

	var out any
	switch cmd, cmdArgs := rest[0], rest[1:]; cmd {
	case "search":
		out, err = runSearch(ctx, svc, cmdArgs)
	case "related":
		out, err = runRelated(ctx, svc, cmdArgs)
	case "recommend":
		out, err = runRecommend(ctx, svc, cmdArgs)
	case "path":
		out, err = runPath(ctx, svc, cmdArgs)
	default:
		err = fmt.Errorf("unknown command %q: %w", cmd, errUsage)
	}
	if err != nil {
		log.Error("command failed", zap.String("command", rest[0]), zap.Error(err))
		return err
	}

	if registry != nil {
		logMetrics(log, registry)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func runSearch(ctx context.Context, svc *application.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	category := fs.String("category", "", "Restrict to a category")
	difficulty := fs.String("difficulty", "", "Restrict to a difficulty")
	threshold := fs.Float64("threshold", 0, "Minimum fuzzy similarity (0 uses the configured value)")
	maxResults := fs.Int("max", 0, "Maximum number of results (0 uses the configured value)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return svc.Search(ctx, application.SearchParams{
		Query:      strings.Join(fs.Args(), " "),
		Category:   domain.Category(*category),
		Difficulty: domain.Difficulty(*difficulty),
		Threshold:  *threshold,
		MaxResults: *maxResults,
	})
}

func runRelated(ctx context.Context, svc *application.Service, args []string) (any, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("related takes exactly one question id: %w", errUsage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return nil, fmt.Errorf("invalid question id %q: %w", args[0], err)
	}
	return svc.Related(ctx, id)
}

func runRecommend(ctx context.Context, svc *application.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("recommend", flag.ContinueOnError)
	historyPath := fs.String("history", "", "YAML or JSON file with answered questions")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	history, err := loadHistory(*historyPath)
	if err != nil {
		return nil, err
	}
	return svc.Recommend(ctx, history)
}

func runPath(ctx context.Context, svc *application.Service, args []string) (any, error) {
	fs := flag.NewFlagSet("path", flag.ContinueOnError)
	historyPath := fs.String("history", "", "YAML or JSON file with answered questions")
	level := fs.Int("level", 1, "Current user level")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	history, err := loadHistory(*historyPath)
	if err != nil {
		return nil, err
	}
	return svc.LearningPath(ctx, history, *level)
}

// loadHistory reads a list of answered records. YAML is a superset of
// JSON, so both formats decode. An empty path means no history.
func loadHistory(path string) ([]domain.AnsweredRecord, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	var records []domain.AnsweredRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return records, nil
}

func logMetrics(log *zap.Logger, registry *prometheus.Registry) {
	families, err := registry.Gather()
	if err != nil {
		log.Warn("failed to gather metrics", zap.Error(err))
		return
	}
	for _, mf := range families {
		log.Info("metric", zap.String("name", mf.GetName()), zap.Int("series", len(mf.GetMetric())))
	}
}
