// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/wellwise"
	"github.com/poiesic/wellwise/ai"
	"github.com/poiesic/wellwise/console"
	"github.com/poiesic/wellwise/dataset"
	"github.com/poiesic/wellwise/dialogue"
	"github.com/poiesic/wellwise/index"
	"github.com/poiesic/wellwise/session"
	"github.com/poiesic/wellwise/symptom"
	"github.com/poiesic/wellwise/web"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// logFile is the rotating log sink installed by --log-file.
var logFile *lumberjack.Logger

func main() {
	// A missing .env file is fine; real environment variables still apply.
	_ = godotenv.Load()

	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	defaults := index.DefaultConfig()

	return &cli.App{
		Name:  "wellwise",
		Usage: "Conversational symptom checker",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
				EnvVars: []string{"WELLWISE_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-file",
				Usage:   "Write logs to a rotating file instead of stderr",
				EnvVars: []string{"WELLWISE_LOG_FILE"},
			},
		},
		Before: setupLogger,
		After:  closeLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive symptom-checking conversation",
				Action: chatCommand,
				Flags:  append(engineFlags(), dialogueFlags()...),
			},
			{
				Name:   "serve",
				Usage:  "Serve the web chat UI",
				Action: serveCommand,
				Flags: append(append(engineFlags(), dialogueFlags()...),
					&cli.StringFlag{
						Name:    "addr",
						Usage:   "Address to listen on",
						Value:   ":8080",
						EnvVars: []string{"WELLWISE_ADDR"},
					},
					&cli.DurationFlag{
						Name:    "session-ttl",
						Usage:   "Idle time after which a web session is discarded",
						Value:   session.DefaultTTL,
						EnvVars: []string{"WELLWISE_SESSION_TTL"},
					},
				),
			},
			{
				Name:   "index",
				Usage:  "Build or refresh the embedding cache",
				Action: indexCommand,
				Flags: append(engineFlags(),
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of records to embed in each batch",
						Value: defaults.BatchSize,
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of batches embedded concurrently",
						Value: defaults.Workers,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum attempts per batch",
						Value: defaults.MaxRetries,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: defaults.RetryDelay,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N records",
						Value: defaults.ReportInterval,
					},
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Re-embed every record even if the cache is current",
					},
				),
			},
			{
				Name:   "evaluate",
				Usage:  "Print retrieval accuracy, latency and coverage on the built-in cases",
				Action: evaluateCommand,
				Flags:  engineFlags(),
			},
		},
	}
}

// engineFlags are shared by every command that opens the engine.
func engineFlags() []cli.Flag {
	aiDefaults := ai.DefaultConfig()
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			Aliases: []string{"d"},
			Usage:   "Path to the BadgerDB embedding cache (in-memory when empty)",
			EnvVars: []string{"WELLWISE_DB"},
		},
		&cli.StringFlag{
			Name:    "data",
			Usage:   "Directory holding the data files (built-in sample data when empty)",
			EnvVars: []string{"WELLWISE_DATA"},
		},
		&cli.StringFlag{
			Name:    "embedding-host",
			Usage:   "Embedding service host URL",
			Value:   aiDefaults.EmbeddingHost,
			EnvVars: []string{"WELLWISE_EMBEDDING_HOST"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   aiDefaults.EmbeddingModel,
			EnvVars: []string{"WELLWISE_EMBEDDING_MODEL"},
		},
		&cli.StringFlag{
			Name:    "token",
			Usage:   "API token for the embedding service",
			Value:   aiDefaults.Token,
			EnvVars: []string{"WELLWISE_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "synonyms",
			Usage:   "Extra synonyms YAML file applied on top of the data directory's",
			EnvVars: []string{"WELLWISE_SYNONYMS"},
		},
	}
}

func dialogueFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "top-k",
			Usage: "Maximum number of possible conditions shown",
			Value: dialogue.DefaultTopK,
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Score an FAQ answer must exceed to be shown",
			Value: float64(dialogue.DefaultFAQThreshold),
		},
	}
}

func openEngine(c *cli.Context, extra ...wellwise.Option) (*wellwise.Engine, error) {
	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	opts := []wellwise.Option{
		wellwise.WithAIConfig(aiConfig),
		wellwise.WithProgress(os.Stderr),
		wellwise.WithLogger(slog.Default()),
	}
	if db := c.String("db"); db != "" {
		opts = append(opts, wellwise.WithDatabasePath(db))
	}
	if dir := c.String("data"); dir != "" {
		opts = append(opts, wellwise.WithDataDir(dir))
	}
	if path := c.String("synonyms"); path != "" {
		synonyms, err := loadSynonyms(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, wellwise.WithSynonyms(synonyms))
	}
	opts = append(opts, extra...)

	fmt.Fprintf(os.Stderr, "Database: %s\n", orDefault(c.String("db"), "(in memory)"))
	fmt.Fprintf(os.Stderr, "Data: %s\n", orDefault(c.String("data"), "(built-in sample)"))
	fmt.Fprintf(os.Stderr, "Embedding host: %s\n", aiConfig.EmbeddingHost)
	fmt.Fprintf(os.Stderr, "Embedding model: %s\n", aiConfig.EmbeddingModel)
	fmt.Fprintln(os.Stderr)

	engine, err := wellwise.Open(c.Context, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to start: %w", err)
	}
	return engine, nil
}

func loadSynonyms(path string) (symptom.SynonymMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open synonyms file: %w", err)
	}
	defer f.Close()

	synonyms, err := dataset.LoadSynonyms(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read synonyms file: %w", err)
	}
	return synonyms, nil
}

func newController(c *cli.Context, engine *wellwise.Engine) (*dialogue.Controller, error) {
	return engine.NewController(
		dialogue.WithTopK(c.Int("top-k")),
		dialogue.WithFAQThreshold(float32(c.Float64("threshold"))),
	)
}

func chatCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	controller, err := newController(c, engine)
	if err != nil {
		return err
	}

	repl := console.NewREPL(controller, os.Stdin, console.NewRenderer(os.Stdout), slog.Default())
	return repl.Run(c.Context)
}

func serveCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	controller, err := newController(c, engine)
	if err != nil {
		return err
	}

	store := session.NewStore(
		session.WithTTL(c.Duration("session-ttl")),
		session.WithStoreLogger(slog.Default()),
	)
	server, err := web.NewServer(controller, store, web.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "Serving on %s\n", c.String("addr"))
	return server.ListenAndServe(ctx, c.String("addr"))
}

func indexCommand(c *cli.Context) error {
	config := &index.Config{
		BatchSize:      c.Int("batch-size"),
		Workers:        c.Int("workers"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
		ReportInterval: c.Int("report-interval"),
		Force:          c.Bool("force"),
	}
	if err := config.Validate(); err != nil {
		return err
	}

	start := time.Now()
	engine, err := openEngine(c, wellwise.WithIndexConfig(config))
	if err != nil {
		return err
	}
	defer engine.Close()

	printIndexResult(os.Stderr, engine.LastIndex())
	fmt.Fprintf(os.Stderr, "Done in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func printIndexResult(w io.Writer, result *index.Result) {
	for _, r := range []index.CorpusResult{result.Symptoms, result.FAQs} {
		if r.Current {
			fmt.Fprintf(w, "%s: %d records, cache current\n", r.Corpus, r.Total)
			continue
		}
		fmt.Fprintf(w, "%s: %d records, %d embedded, %d reused, %d deleted\n",
			r.Corpus, r.Total, r.Embedded, r.Reused, r.Deleted)
	}
}

func evaluateCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	report, err := engine.Evaluate(c.Context, wellwise.DefaultEvalCases())
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}
	console.NewRenderer(os.Stdout).Report(report)
	return nil
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	var out io.Writer = os.Stderr
	if path := c.String("log-file"); path != "" {
		logFile = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
			Compress:   true,
		}
		out = logFile
	}

	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

func closeLogger(*cli.Context) error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
