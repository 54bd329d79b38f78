package lang

import (
	"context"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"cflclosure/internal/cache"
	"cflclosure/internal/grammar"
	"cflclosure/internal/trace"
)

const (
	// DefaultMaxLength bounds the strings generated for the intersection.
	DefaultMaxLength = 15
	// DefaultExamples is the largest n whose a^n b^n c^n is added directly.
	DefaultExamples = 5
)

// Options configures Intersect.
type Options struct {
	Left, Right *grammar.Grammar // nil means L1 / L2
	Limits      grammar.Limits
	Examples    int          // largest n seeded from Examples; negative disables
	Jobs        int          // generation goroutines; <= 0 means GOMAXPROCS
	Cache       *cache.Cache // optional
}

// DefaultOptions intersects L1 and L2 with length 15, depth 10 and
// examples up to n = 5.
func DefaultOptions() Options {
	return Options{
		Left:     L1(),
		Right:    L2(),
		Limits:   grammar.DefaultLimits(DefaultMaxLength),
		Examples: DefaultExamples,
	}
}

// Intersection holds the sets produced by Intersect.
type Intersection struct {
	Left      grammar.Set // bounded strings of the left grammar
	Right     grammar.Set // bounded strings of the right grammar
	Common    grammar.Set // Left ∩ Right
	Members   grammar.Set // Common ∪ direct examples
	CacheHits int
}

// Intersect generates both grammars within opts.Limits, intersects the
// results and adds the direct examples, which cover members the bounded
// generator cannot reach. Errors come only from ctx or the cache.
func Intersect(ctx context.Context, opts Options) (*Intersection, error) {
	if opts.Left == nil {
		opts.Left = L1()
	}
	if opts.Right == nil {
		opts.Right = L2()
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	tr := trace.FromContext(ctx)
	span := trace.Begin(tr, trace.ScopeStage, "intersection", trace.CurrentSpan(ctx).SpanID)
	ctx = trace.WithSpan(ctx, span)

	grammars := [2]*grammar.Grammar{opts.Left, opts.Right}
	var sets [2]grammar.Set
	var hits [2]bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(grammars)))
	for i, gr := range grammars {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			set, hit, err := opts.Cache.Generate(gr, opts.Limits, func() grammar.Set {
				return gr.GenerateContext(gctx, opts.Limits)
			})
			if err != nil {
				return err
			}
			sets[i], hits[i] = set, hit
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End("error: " + err.Error())
		return nil, err
	}

	res := &Intersection{
		Left:   sets[0],
		Right:  sets[1],
		Common: sets[0].Intersect(sets[1]),
	}
	for _, hit := range hits {
		if hit {
			res.CacheHits++
		}
	}
	res.Members = grammar.NewSet(res.Common.Sorted()...).Union(grammar.NewSet(Examples(opts.Examples)...))

	span.WithExtra("left", strconv.Itoa(len(res.Left))).
		WithExtra("right", strconv.Itoa(len(res.Right))).
		WithExtra("common", strconv.Itoa(len(res.Common))).
		End(strconv.Itoa(len(res.Members)) + " members")
	return res, nil
}
