package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/matside/pkg/utils/logging"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{"", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			lv, err := logging.ParseLevel(tc.input)
			if tc.wantErr {
				gt.Error(t, err)
				gt.True(t, errors.Is(err, logging.ErrInvalidLevel))
			} else {
				gt.NoError(t, err)
			}
			gt.Equal(t, lv, tc.want)
		})
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	testCases := []struct {
		level       string
		expectDebug bool
		expectWarn  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"error", false, false},
		{"invalid", false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := logging.New(tc.level, buf)

			logger.Debug("debug message")
			logger.Warn("warn message")
			logger.Error("error message")

			output := buf.String()
			if tc.expectDebug {
				gt.S(t, output).Contains("debug message")
			} else {
				gt.S(t, output).NotContains("debug message")
			}
			if tc.expectWarn {
				gt.S(t, output).Contains("warn message")
			} else {
				gt.S(t, output).NotContains("warn message")
			}
			gt.S(t, output).Contains("error message")
		})
	}
}

func TestJSONFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.NewWithFormat("info", logging.FormatJSON, buf)
	logger.Info("request handled", "status", 200)

	var rec map[string]any
	gt.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	gt.Equal(t, rec["msg"], any("request handled"))
	gt.Equal(t, rec["status"], any(float64(200)))
}

func TestWithAndFrom(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := logging.New("debug", buf).With("component", "queue")
	ctx := logging.With(context.Background(), logger)

	retrieved := logging.From(ctx)
	gt.Equal(t, retrieved, logger)

	retrieved.Info("context message")
	gt.S(t, buf.String()).Contains("context message")
	gt.S(t, buf.String()).Contains("queue")
}

func TestFromUsesDefault(t *testing.T) {
	original := logging.Default()
	defer logging.SetDefault(original)

	buf := &bytes.Buffer{}
	customDefault := logging.New("warn", buf)
	logging.SetDefault(customDefault)

	retrieved := logging.From(context.Background())
	gt.Equal(t, retrieved, customDefault)

	retrieved.Warn("warning from default")
	gt.S(t, buf.String()).Contains("warning from default")
}
