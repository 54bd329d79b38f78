package pipeline

import "time"

// Stage describes one step of the demonstration.
type Stage string

const (
	// StageLint checks both grammars for dead rules.
	StageLint Stage = "lint"
	// StageSample generates short sample strings from each grammar.
	StageSample Stage = "sample"
	// StageIntersect intersects the bounded languages.
	StageIntersect Stage = "intersect"
	// StageVerify runs the membership test on every member.
	StageVerify Stage = "verify"
)

// Stages lists the stages in execution order.
var Stages = []Stage{StageLint, StageSample, StageIntersect, StageVerify}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the stage is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for one stage.
type Event struct {
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Note    string
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}
