package ui

import (
	"errors"
	"strings"
	"testing"

	"cflclosure/internal/pipeline"
)

func TestApplyEventTracksStages(t *testing.T) {
	m := NewProgressModel("demo", pipeline.Stages, nil).(*progressModel)

	m.applyEvent(pipeline.Event{Stage: pipeline.StageLint, Status: pipeline.StatusDone, Note: "0 diagnostics"})
	m.applyEvent(pipeline.Event{Stage: pipeline.StageSample, Status: pipeline.StatusWorking})
	if got := m.fraction(); got != 1.5/4 {
		t.Fatalf("fraction = %v, want %v", got, 1.5/4)
	}

	m.applyEvent(pipeline.Event{Stage: pipeline.StageSample, Status: pipeline.StatusError, Err: errors.New("boom")})
	m.applyEvent(pipeline.Event{Stage: pipeline.Stage("unknown"), Status: pipeline.StatusDone})

	view := m.View()
	for _, want := range []string{"demo", "0 diagnostics", "boom", "intersect"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefgh", 6); got != "abc..." {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abc", 6); got != "abc" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("abcdef", 2); got != "ab" {
		t.Fatalf("truncate = %q", got)
	}
}

func TestStatusLabel(t *testing.T) {
	if got := statusLabel(stageItem{stage: pipeline.StageVerify, status: pipeline.StatusWorking}); got != "verifying" {
		t.Fatalf("statusLabel = %q", got)
	}
	if got := statusLabel(stageItem{stage: pipeline.StageVerify, status: pipeline.StatusQueued}); got != "queued" {
		t.Fatalf("statusLabel = %q", got)
	}
}
