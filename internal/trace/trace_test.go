package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestStreamTracerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)

	run := Begin(tr, ScopeRun, "demo", 0)
	gen := Begin(tr, ScopeGrammar, "generate:L1", run.ID())
	gen.End("")
	stage := Begin(tr, ScopeStage, "intersect", run.ID())
	stage.WithExtra("members", "6").End("ok")
	run.End("")

	out := buf.String()
	if strings.Contains(out, "generate:L1") {
		t.Fatalf("grammar scope must be filtered at phase level:\n%s", out)
	}
	for _, want := range []string{"→ demo", "← intersect (ok) {members=6}", "[stage]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestNDJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelDebug, Format: FormatNDJSON, Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	Point(tr, ScopeGrammar, "lint", "2 warnings", 0)

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got["name"] != "lint" || got["kind"] != "point" || got["scope"] != "grammar" {
		t.Fatalf("unexpected event: %v", got)
	}
}

func TestOffLevelIsNop(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatal("off tracer must be disabled")
	}
	if s := Begin(tr, ScopeRun, "x", 0); s.ID() != 0 {
		t.Fatalf("span on nop tracer got id %d", s.ID())
	}
}

func TestContextPropagation(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatText)
	ctx := WithTracer(context.Background(), tr)
	span := Begin(FromContext(ctx), ScopeStage, "s", 0)
	ctx = WithSpan(ctx, span)
	if CurrentSpan(ctx).SpanID != span.ID() {
		t.Fatalf("CurrentSpan = %d, want %d", CurrentSpan(ctx).SpanID, span.ID())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"off": LevelOff, "PHASE": LevelPhase, "detail": LevelDetail, "debug": LevelDebug}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestErrorLevelEmitsOnlyErrors(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelError, FormatText)

	run := Begin(tr, ScopeRun, "demo", 0)
	Point(tr, ScopeStage, "lint", "0 diagnostics", 0)
	Error(tr, ScopeStage, "intersect", errors.New("cache unreadable"), 0)
	Error(tr, ScopeStage, "verify", nil, 0)
	run.End("")

	out := buf.String()
	if strings.Count(out, "\n") != 1 {
		t.Fatalf("want exactly one event, got:\n%s", out)
	}
	if !strings.Contains(out, "✗ intersect (cache unreadable)") {
		t.Fatalf("missing error event in:\n%s", out)
	}

	buf.Reset()
	Error(NewStreamTracer(&buf, LevelOff, FormatText), ScopeStage, "x", errors.New("boom"), 0)
	if buf.Len() != 0 {
		t.Fatalf("off level emitted %q", buf.String())
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{"": FormatAuto, "auto": FormatAuto, "TEXT": FormatText, "ndjson": FormatNDJSON, "json": FormatNDJSON}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormat(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseFormat("chrome"); err == nil {
		t.Fatal("expected error for unknown format")
	}
}
