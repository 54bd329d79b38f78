package cache_test

import (
	"path/filepath"
	"testing"

	"cflclosure/internal/cache"
	"cflclosure/internal/grammar"
)

func sampleGrammar(name string) *grammar.Grammar {
	return grammar.New(name, []grammar.Rule{
		{Head: 'S', Productions: []string{"aSb", ""}},
	})
}

func TestGenerateStoresAndReuses(t *testing.T) {
	c, err := cache.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	g := sampleGrammar("balanced")
	lim := grammar.Limits{MaxLength: 6, MaxDepth: 10}

	calls := 0
	gen := func() grammar.Set {
		calls++
		return g.Generate(lim)
	}

	first, hit, err := c.Generate(g, lim, gen)
	if err != nil || hit {
		t.Fatalf("first Generate: hit=%v err=%v", hit, err)
	}
	second, hit, err := c.Generate(g, lim, gen)
	if err != nil || !hit {
		t.Fatalf("second Generate: hit=%v err=%v", hit, err)
	}
	if calls != 1 {
		t.Fatalf("generator ran %d times, want 1", calls)
	}
	if len(first) != len(second) {
		t.Fatalf("cached set differs: %v vs %v", first.Sorted(), second.Sorted())
	}
	for s := range first {
		if !second.Has(s) {
			t.Fatalf("cached set lacks %q", s)
		}
	}
}

func TestKeyIgnoresNameButNotLimits(t *testing.T) {
	lim := grammar.Limits{MaxLength: 6, MaxDepth: 10}
	a, err := cache.KeyFor(sampleGrammar("a"), lim)
	if err != nil {
		t.Fatalf("KeyFor: %v", err)
	}
	b, _ := cache.KeyFor(sampleGrammar("b"), lim)
	if a != b {
		t.Fatal("keys must not depend on the grammar name")
	}
	c, _ := cache.KeyFor(sampleGrammar("a"), grammar.Limits{MaxLength: 7, MaxDepth: 10})
	if a == c {
		t.Fatal("keys must depend on limits")
	}
	if _, err := cache.KeyFor(sampleGrammar("a"), grammar.Limits{MaxLength: -1}); err == nil {
		t.Fatal("negative limits must not produce a key")
	}
}

func TestGetMissAndDropAll(t *testing.T) {
	dir := t.TempDir()
	c, err := cache.OpenDir(dir)
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	key, _ := cache.KeyFor(sampleGrammar("x"), grammar.Limits{MaxLength: 4, MaxDepth: 4})
	var p cache.Payload
	if hit, err := c.Get(key, &p); hit || err != nil {
		t.Fatalf("empty cache Get: hit=%v err=%v", hit, err)
	}
	if err := c.Put(key, &cache.Payload{Strings: []string{"ab"}}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if hit, err := c.Get(key, &p); !hit || err != nil || len(p.Strings) != 1 {
		t.Fatalf("Get after Put: hit=%v err=%v payload=%+v", hit, err, p)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	if hit, _ := c.Get(key, &p); hit {
		t.Fatal("DropAll should remove entries")
	}
}

func TestOpenUsesXDGCacheHome(t *testing.T) {
	base := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", base)
	c, err := cache.Open("cflclosure")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if want := filepath.Join(base, "cflclosure"); c.Dir() != want {
		t.Fatalf("Dir = %q, want %q", c.Dir(), want)
	}
}

func TestNilCacheGenerates(t *testing.T) {
	var c *cache.Cache
	g := sampleGrammar("n")
	set, hit, err := c.Generate(g, grammar.Limits{MaxLength: 2, MaxDepth: 4}, func() grammar.Set { return grammar.NewSet("ab") })
	if err != nil || hit || !set.Has("ab") {
		t.Fatalf("nil cache: set=%v hit=%v err=%v", set, hit, err)
	}
}

func TestDistinctRulesGetDistinctKeys(t *testing.T) {
	lim := grammar.Limits{MaxLength: 6, MaxDepth: 10}
	tests := []struct {
		name string
		a, b []grammar.Rule
	}{
		{
			name: "empty vs epsilon letter",
			a:    []grammar.Rule{{Head: 'S', Productions: []string{""}}},
			b:    []grammar.Rule{{Head: 'S', Productions: []string{"ε"}}},
		},
		{
			name: "separator inside production",
			a:    []grammar.Rule{{Head: 'S', Productions: []string{"a", "b"}}},
			b:    []grammar.Rule{{Head: 'S', Productions: []string{"a | b"}}},
		},
		{
			name: "newline inside production",
			a: []grammar.Rule{
				{Head: 'S', Productions: []string{"a"}},
				{Head: 'A', Productions: []string{"b"}},
			},
			b: []grammar.Rule{{Head: 'S', Productions: []string{"a\nA → b"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, err := cache.KeyFor(grammar.New("a", tt.a), lim)
			if err != nil {
				t.Fatalf("KeyFor: %v", err)
			}
			kb, err := cache.KeyFor(grammar.New("b", tt.b), lim)
			if err != nil {
				t.Fatalf("KeyFor: %v", err)
			}
			if ka == kb {
				t.Fatalf("distinct grammars share key %s", ka)
			}
		})
	}
}

func TestGenerateDoesNotServeOtherGrammar(t *testing.T) {
	c, err := cache.OpenDir(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDir: %v", err)
	}
	lim := grammar.Limits{MaxLength: 4, MaxDepth: 4}
	empty := grammar.New("empty", []grammar.Rule{{Head: 'S', Productions: []string{""}}})
	letter := grammar.New("letter", []grammar.Rule{{Head: 'S', Productions: []string{"ε"}}})

	if _, _, err := c.Generate(empty, lim, func() grammar.Set { return empty.Generate(lim) }); err != nil {
		t.Fatalf("Generate empty: %v", err)
	}
	got, hit, err := c.Generate(letter, lim, func() grammar.Set { return letter.Generate(lim) })
	if err != nil {
		t.Fatalf("Generate letter: %v", err)
	}
	if hit || !got.Has("ε") || got.Has("") {
		t.Fatalf("letter grammar got %v (hit=%v)", got.Sorted(), hit)
	}

	key, _ := cache.KeyFor(letter, lim)
	var p cache.Payload
	if ok, err := c.Get(key, &p); !ok || err != nil {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if p.MaxLength != 4 || p.MaxDepth != 4 || p.Grammar != "letter" {
		t.Fatalf("payload = %+v", p)
	}
}
