package database

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func TestSlowQueryTracer(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	tracer := newSlowQueryTracer(100*time.Millisecond, &logger)
	tracer.now = func() time.Time { return now }

	run := func(elapsed time.Duration) {
		ctx := tracer.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{SQL: "SELECT 1"})
		now = now.Add(elapsed)
		tracer.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("SELECT 1")})
	}

	run(20 * time.Millisecond)
	if buf.Len() != 0 {
		t.Fatalf("fast query logged: %s", buf.String())
	}

	run(250 * time.Millisecond)
	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("slow query not logged as json: %q", buf.String())
	}
	if line["message"] != "slow query" || line["sql"] != "SELECT 1" || line["level"] != "warn" {
		t.Fatalf("log line = %v", line)
	}
}

func TestSlowQueryTracerIgnoresUntrackedQueries(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	tracer := newSlowQueryTracer(0, &logger)

	tracer.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if buf.Len() != 0 {
		t.Fatal("query end without a start should not log")
	}
}
