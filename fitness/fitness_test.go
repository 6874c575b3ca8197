package fitness

import (
	"testing"

	"github.com/pthm-cable/knapsack/genome"
)

func defaultEvaluator(t *testing.T) *Evaluator {
	t.Helper()
	table, err := NewCostTable(DefaultItems())
	if err != nil {
		t.Fatalf("NewCostTable: %v", err)
	}
	return NewEvaluator(table, DefaultWeightCap)
}

func mustParse(t *testing.T, s string) genome.Genome {
	t.Helper()
	g, err := genome.Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}
	return g
}

func TestEvaluate(t *testing.T) {
	e := defaultEvaluator(t)

	tests := []struct {
		name   string
		genome string
		want   int
	}{
		{"empty", "0000000000", 0},
		{"bit 0 only", "0000000001", 375},
		{"bit 9 only", "1000000000", 50},
		{"two items", "0000000011", 675},
		{"optimum", "0011101011", 1375},
		{"under cap", "0010001111", 1275},
		{"all items overweight", "1111111111", 0},
		{"just over cap", "0110001111", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := mustParse(t, tt.genome)
			if got := e.Evaluate(g); got != tt.want {
				t.Errorf("Evaluate(%s) = %d, want %d (weight %v)", tt.genome, got, tt.want, e.Weight(g))
			}
		})
	}
}

func TestEvaluateCapIsStrict(t *testing.T) {
	e := defaultEvaluator(t)
	// 3.5 + 2.5 + 2.0 + 3.0 + 3.0 + 1.0 = 15.0
	g := mustParse(t, "0010011111")
	if w := e.Weight(g); w != 15.0 {
		t.Fatalf("Weight = %v, want 15", w)
	}
	if got := e.Evaluate(g); got != 1325 {
		t.Errorf("Evaluate at exactly the cap = %d, want 1325", got)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	e := defaultEvaluator(t)
	for v := 0; v <= genome.Max; v++ {
		g := genome.New(v)
		first := e.Evaluate(g)
		for i := 0; i < 3; i++ {
			if got := e.Evaluate(g); got != first {
				t.Fatalf("Evaluate(%s) not deterministic: %d then %d", g, first, got)
			}
		}
	}
}

func TestOverweightIsZero(t *testing.T) {
	e := defaultEvaluator(t)
	for v := 0; v <= genome.Max; v++ {
		g := genome.New(v)
		if e.Weight(g) > DefaultWeightCap {
			if got := e.Evaluate(g); got != 0 {
				t.Fatalf("overweight genome %s (weight %v) scored %d", g, e.Weight(g), got)
			}
		} else if got, want := e.Evaluate(g), e.Value(g); got != want {
			t.Fatalf("feasible genome %s scored %d, want value %d", g, got, want)
		}
	}
}

func TestOptimum(t *testing.T) {
	e := defaultEvaluator(t)
	g, f := Optimum(e)
	if g.String() != "0011101011" || f != 1375 {
		t.Errorf("Optimum = %s - %d, want 0011101011 - 1375", g, f)
	}
	if w := e.Weight(g); w != 14.5 {
		t.Errorf("optimum weight = %v, want 14.5", w)
	}
}

func TestNewCostTable(t *testing.T) {
	if _, err := NewCostTable(DefaultItems()[:9]); err == nil {
		t.Error("expected error for 9 items")
	}

	items := DefaultItems()
	items[4].Weight = -1
	if _, err := NewCostTable(items); err == nil {
		t.Error("expected error for negative weight")
	}

	items = DefaultItems()
	table, err := NewCostTable(items)
	if err != nil {
		t.Fatalf("NewCostTable: %v", err)
	}
	items[0].Value = 1
	if table.Item(0).Value != 375 {
		t.Error("cost table must not alias its input slice")
	}
	out := table.Items()
	out[1].Value = 1
	if table.Item(1).Value != 300 {
		t.Error("Items must return a copy")
	}
}
