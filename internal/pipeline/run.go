package pipeline

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"cflclosure/internal/cache"
	"cflclosure/internal/diag"
	"cflclosure/internal/grammar"
	"cflclosure/internal/lang"
	"cflclosure/internal/observ"
	"cflclosure/internal/trace"
)

const (
	// DefaultSampleLength bounds the sample strings shown per grammar.
	DefaultSampleLength = 10
	// DefaultSampleCount is how many sorted samples are kept per grammar.
	DefaultSampleCount = 10
	// maxDiagnostics caps lint output per run.
	maxDiagnostics = 100
)

// Request configures a demonstration run.
type Request struct {
	Left, Right  *grammar.Grammar // nil means L1 / L2
	SampleLimits grammar.Limits
	SampleCount  int
	Limits       grammar.Limits // intersection bounds
	Examples     int
	Jobs         int
	Cache        *cache.Cache
	Progress     ProgressSink
	Timer        *observ.Timer
}

// DefaultRequest mirrors the classic demonstration: samples of length 10,
// intersection of length 15, examples up to n = 5.
func DefaultRequest() Request {
	return Request{
		SampleLimits: grammar.DefaultLimits(DefaultSampleLength),
		SampleCount:  DefaultSampleCount,
		Limits:       grammar.DefaultLimits(lang.DefaultMaxLength),
		Examples:     lang.DefaultExamples,
	}
}

// Result carries everything the report prints.
type Result struct {
	Left, Right  *grammar.Grammar
	Diagnostics  *diag.Bag
	LeftSample   []string
	RightSample  []string
	Examples     []string
	Intersection *lang.Intersection
	Members      []string // sorted
	Verdicts     []lang.Verdict
}

// Run executes every stage in order. It fails only on cancellation or a
// cache error.
func Run(ctx context.Context, req *Request) (Result, error) {
	var res Result
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return res, fmt.Errorf("missing request")
	}
	res.Left, res.Right = req.Left, req.Right
	if res.Left == nil {
		res.Left = lang.L1()
	}
	if res.Right == nil {
		res.Right = lang.L2()
	}

	runSpan := trace.Begin(trace.FromContext(ctx), trace.ScopeRun, "demonstration", 0)
	ctx = trace.WithSpan(ctx, runSpan)
	defer runSpan.End("")

	for _, st := range Stages {
		emit(req.Progress, Event{Stage: st, Status: StatusQueued})
	}

	r := runner{ctx: ctx, req: req}
	r.stage(StageLint, func() (string, error) {
		res.Diagnostics = diag.NewBag(maxDiagnostics)
		for _, g := range []*grammar.Grammar{res.Left, res.Right} {
			bag := diag.NewBag(maxDiagnostics)
			grammar.Lint(g, diag.BagReporter{Bag: bag})
			trace.Point(trace.FromContext(r.ctx), trace.ScopeStage, "lint:"+g.Name(),
				strconv.Itoa(bag.Len())+" diagnostics", trace.CurrentSpan(r.ctx).SpanID)
			res.Diagnostics.Merge(bag)
		}
		res.Diagnostics.Dedup()
		res.Diagnostics.Sort()
		return strconv.Itoa(res.Diagnostics.Len()) + " diagnostics", nil
	})
	r.stage(StageSample, func() (string, error) {
		res.LeftSample = head(res.Left.GenerateContext(r.ctx, req.SampleLimits).Sorted(), req.SampleCount)
		res.RightSample = head(res.Right.GenerateContext(r.ctx, req.SampleLimits).Sorted(), req.SampleCount)
		res.Examples = lang.Examples(req.Examples)
		return fmt.Sprintf("%d + %d samples", len(res.LeftSample), len(res.RightSample)), nil
	})
	r.stage(StageIntersect, func() (string, error) {
		in, err := lang.Intersect(r.ctx, lang.Options{
			Left:     res.Left,
			Right:    res.Right,
			Limits:   req.Limits,
			Examples: req.Examples,
			Jobs:     req.Jobs,
			Cache:    req.Cache,
		})
		if err != nil {
			return "", err
		}
		res.Intersection = in
		res.Members = in.Members.Sorted()
		note := strconv.Itoa(len(res.Members)) + " members"
		if in.CacheHits > 0 {
			note += ", " + strconv.Itoa(in.CacheHits) + " cached"
		}
		return note, nil
	})
	r.stage(StageVerify, func() (string, error) {
		res.Verdicts = lang.Verify(res.Members)
		bad := 0
		for _, v := range res.Verdicts {
			if !v.Member {
				bad++
			}
		}
		return fmt.Sprintf("%d/%d members", len(res.Verdicts)-bad, len(res.Verdicts)), nil
	})
	return res, r.err
}

type runner struct {
	ctx context.Context
	req *Request
	err error
}

// stage runs fn unless an earlier stage failed, reporting progress,
// timing and a trace span around it.
func (r *runner) stage(st Stage, fn func() (string, error)) {
	if r.err != nil {
		return
	}
	if err := r.ctx.Err(); err != nil {
		r.err = err
		trace.Error(trace.FromContext(r.ctx), trace.ScopeStage, string(st), err, trace.CurrentSpan(r.ctx).SpanID)
		emit(r.req.Progress, Event{Stage: st, Status: StatusError, Err: err})
		return
	}
	emit(r.req.Progress, Event{Stage: st, Status: StatusWorking})
	idx := -1
	if r.req.Timer != nil {
		idx = r.req.Timer.Begin(string(st))
	}
	span := trace.Begin(trace.FromContext(r.ctx), trace.ScopeStage, string(st), trace.CurrentSpan(r.ctx).SpanID)
	outer := r.ctx
	r.ctx = trace.WithSpan(outer, span)
	start := time.Now()

	note, err := fn()

	r.ctx = outer
	elapsed := time.Since(start)
	if r.req.Timer != nil {
		r.req.Timer.End(idx, note)
	}
	if err != nil {
		r.err = fmt.Errorf("%s: %w", st, err)
		trace.Error(trace.FromContext(r.ctx), trace.ScopeStage, string(st), err, trace.CurrentSpan(r.ctx).SpanID)
		span.End("error: " + err.Error())
		emit(r.req.Progress, Event{Stage: st, Status: StatusError, Err: err, Elapsed: elapsed})
		return
	}
	span.End(note)
	emit(r.req.Progress, Event{Stage: st, Status: StatusDone, Elapsed: elapsed, Note: note})
}

func emit(sink ProgressSink, ev Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(ev)
}

func head(items []string, n int) []string {
	if n < 0 || n >= len(items) {
		return items
	}
	return items[:n]
}
