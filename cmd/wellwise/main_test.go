package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/wellwise/index"
	"github.com/poiesic/wellwise/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func findCommand(t *testing.T, app *cli.App, name string) *cli.Command {
	t.Helper()
	for _, cmd := range app.Commands {
		if cmd.Name == name {
			return cmd
		}
	}
	t.Fatalf("command %q not found", name)
	return nil
}

func findFlag[F cli.Flag](t *testing.T, cmd *cli.Command, name string) F {
	t.Helper()
	for _, flag := range cmd.Flags {
		if f, ok := flag.(F); ok && flag.Names()[0] == name {
			return f
		}
	}
	t.Fatalf("flag %q not found on %s", name, cmd.Name)
	var zero F
	return zero
}

func TestAppCommands(t *testing.T) {
	app := newApp()

	for _, name := range []string{"chat", "serve", "index", "evaluate"} {
		t.Run(name, func(t *testing.T) {
			cmd := findCommand(t, app, name)
			require.NotNil(t, cmd.Action)

			host := findFlag[*cli.StringFlag](t, cmd, "embedding-host")
			assert.Equal(t, "http://localhost:11434/v1", host.Value)
			model := findFlag[*cli.StringFlag](t, cmd, "embedding-model")
			assert.Equal(t, "all-minilm", model.Value)
			db := findFlag[*cli.StringFlag](t, cmd, "db")
			assert.Empty(t, db.Value)
			assert.Equal(t, []string{"WELLWISE_DB"}, db.EnvVars)
		})
	}
}

func TestChatCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(), "chat")

	assert.Equal(t, 5, findFlag[*cli.IntFlag](t, cmd, "top-k").Value)
	assert.InDelta(t, 0.5, findFlag[*cli.Float64Flag](t, cmd, "threshold").Value, 1e-9)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(), "serve")

	assert.Equal(t, ":8080", findFlag[*cli.StringFlag](t, cmd, "addr").Value)
	assert.Equal(t, session.DefaultTTL, findFlag[*cli.DurationFlag](t, cmd, "session-ttl").Value)
}

func TestIndexCommandFlags(t *testing.T) {
	cmd := findCommand(t, newApp(), "index")
	defaults := index.DefaultConfig()

	assert.Equal(t, defaults.BatchSize, findFlag[*cli.IntFlag](t, cmd, "batch-size").Value)
	assert.Equal(t, defaults.Workers, findFlag[*cli.IntFlag](t, cmd, "workers").Value)
	assert.Equal(t, defaults.MaxRetries, findFlag[*cli.IntFlag](t, cmd, "max-retries").Value)
	assert.Equal(t, time.Second, findFlag[*cli.DurationFlag](t, cmd, "retry-delay").Value)
	assert.False(t, findFlag[*cli.BoolFlag](t, cmd, "force").Value)
}

func TestIndexCommandValidation(t *testing.T) {
	testCases := []struct {
		name string
		args []string
	}{
		{"zero batch size", []string{"--batch-size", "0"}},
		{"zero workers", []string{"--workers", "0"}},
		{"zero max retries", []string{"--max-retries", "0"}},
		{"negative retry delay", []string{"--retry-delay", "-1s"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"wellwise", "index"}, tc.args...)
			err := newApp().Run(args)
			require.Error(t, err)
			assert.ErrorIs(t, err, index.ErrInvalidConfig)
		})
	}
}

func TestEmbeddingModelRequired(t *testing.T) {
	err := newApp().Run([]string{"wellwise", "evaluate", "--embedding-model", " "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EmbeddingModel")
}

func TestMissingSynonymsFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.yaml")
	err := newApp().Run([]string{"wellwise", "chat", "--synonyms", missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "synonyms")
}

func TestSetupLogger(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("valid log levels", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "WaRn"} {
			t.Run(level, func(t *testing.T) {
				app := newApp()
				app.Commands = nil
				app.Action = func(*cli.Context) error { return nil }

				require.NoError(t, app.Run([]string{"wellwise", "--log-level", level}))
			})
		}
	})

	t.Run("invalid log level returns error", func(t *testing.T) {
		app := newApp()
		app.Commands = nil
		app.Action = func(*cli.Context) error { return nil }

		err := app.Run([]string{"wellwise", "--log-level", "loud"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid log level")
	})

	t.Run("log file receives output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "wellwise.log")
		app := newApp()
		app.Commands = nil
		app.Action = func(c *cli.Context) error {
			require.NotNil(t, logFile)
			slog.Info("hello from test")
			return nil
		}

		require.NoError(t, app.Run([]string{"wellwise", "--log-file", path}))
		assert.Nil(t, logFile, "the log file is closed after the command")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "hello from test")
	})
}

func TestPrintIndexResult(t *testing.T) {
	var buf bytes.Buffer
	printIndexResult(&buf, &index.Result{
		Symptoms: index.CorpusResult{Corpus: index.CorpusSymptoms, Total: 41, Embedded: 2, Reused: 39},
		FAQs:     index.CorpusResult{Corpus: index.CorpusFAQs, Total: 12, Current: true},
	})

	assert.Equal(t,
		"symptoms: 41 records, 2 embedded, 39 reused, 0 deleted\n"+
			"faqs: 12 records, cache current\n",
		buf.String())
}
