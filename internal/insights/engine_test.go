package insights

import (
	"testing"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
)

// --- Engine.Run ---

func TestEngineRun_EmptyContext(t *testing.T) {
	engine := NewEngine()
	insights := engine.Run(&Context{})
	if len(insights) != 0 {
		t.Fatalf("expected no insights for empty context, got %d", len(insights))
	}
}

func TestEngineRun_SortedByScore(t *testing.T) {
	engine := NewEngine()
	ctx := &Context{
		Period: analytics.PeriodMonth,
		Habits: []HabitContext{
			{Name: "reading", CompletionRate: 85.7, CurrentStreak: 12, Active: true},
			{Name: "gym", CompletionRate: 30.0, Active: true},
		},
		AverageRate: 57.9,
		ActiveCount: 2,
		TotalCount:  3,
	}

	insights := engine.Run(ctx)
	if len(insights) == 0 {
		t.Fatal("expected insights from populated context")
	}
	for i := 1; i < len(insights); i++ {
		if insights[i].Score > insights[i-1].Score {
			t.Errorf("insights not sorted: index %d (%.2f) > index %d (%.2f)",
				i, insights[i].Score, i-1, insights[i-1].Score)
		}
	}
}

func TestEngineRun_NoRules(t *testing.T) {
	engine := &Engine{rules: nil}
	insights := engine.Run(&Context{TotalCount: 3})
	if len(insights) != 0 {
		t.Fatalf("expected 0 insights from engine with no rules, got %d", len(insights))
	}
}

func TestEngineRun_CustomRule(t *testing.T) {
	customRule := func(ctx *Context) []Insight {
		return []Insight{{
			Category: "custom",
			Priority: PriorityHigh,
			Message:  "custom insight",
			Score:    100.0,
		}}
	}
	engine := &Engine{rules: []Rule{customRule}}
	insights := engine.Run(&Context{})
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight, got %d", len(insights))
	}
	if insights[0].Category != "custom" {
		t.Errorf("expected category %q, got %q", "custom", insights[0].Category)
	}
}

// --- NewEngine ---

func TestNewEngine_HasAllRules(t *testing.T) {
	engine := NewEngine()
	expectedCount := 7
	if len(engine.rules) != expectedCount {
		t.Errorf("expected %d rules, got %d", expectedCount, len(engine.rules))
	}
}

// --- RankInsights ---

func TestRankInsights_SortedDescending(t *testing.T) {
	input := []Insight{
		{Message: "low", Score: 1.0},
		{Message: "high", Score: 10.0},
		{Message: "mid", Score: 5.0},
	}
	sorted := RankInsights(input)
	if len(sorted) != 3 {
		t.Fatalf("expected 3 insights, got %d", len(sorted))
	}
	if sorted[0].Message != "high" || sorted[1].Message != "mid" || sorted[2].Message != "low" {
		t.Errorf("unexpected order: %q, %q, %q", sorted[0].Message, sorted[1].Message, sorted[2].Message)
	}
}

func TestRankInsights_DoesNotMutateInput(t *testing.T) {
	input := []Insight{
		{Message: "low", Score: 1.0},
		{Message: "high", Score: 10.0},
	}
	_ = RankInsights(input)
	if input[0].Message != "low" {
		t.Error("RankInsights mutated the input slice")
	}
}

func TestRankInsights_StableForEqualScores(t *testing.T) {
	input := []Insight{
		{Message: "first", Score: 5.0},
		{Message: "second", Score: 5.0},
		{Message: "third", Score: 5.0},
	}
	sorted := RankInsights(input)
	if sorted[0].Message != "first" || sorted[1].Message != "second" || sorted[2].Message != "third" {
		t.Errorf("equal scores must keep input order, got %q, %q, %q",
			sorted[0].Message, sorted[1].Message, sorted[2].Message)
	}
}

func TestRankInsights_EmptySlice(t *testing.T) {
	if sorted := RankInsights(nil); len(sorted) != 0 {
		t.Fatalf("expected 0 insights, got %d", len(sorted))
	}
}

// --- Integration: Engine with full triggering context ---

func TestEngineRun_FullContext(t *testing.T) {
	engine := NewEngine()
	ctx := &Context{
		Period: analytics.PeriodMonth,
		Habits: []HabitContext{
			{
				Name:           "reading",
				CompletionRate: 85.7,
				CurrentStreak:  12,
				Active:         true,
			},
			{
				Name:           "gym",
				CompletionRate: 30.0,
				Active:         true,
				TrendDirection: analytics.TrendSlightDownward,
				TrendChange:    -7.5,
			},
		},
		AverageRate: 57.9,
		ActiveCount: 2,
		TotalCount:  3,
	}

	insights := engine.Run(ctx)
	if len(insights) == 0 {
		t.Fatal("expected multiple insights from full context")
	}

	categories := make(map[string]bool)
	for _, in := range insights {
		categories[in.Category] = true
		if in.Message == "" {
			t.Error("got insight with empty message")
		}
	}

	for _, want := range []string{"performance", "attention", "streaks", "trend", "lifecycle", "assessment"} {
		if !categories[want] {
			t.Errorf("expected category %q in insights, got categories: %v", want, categories)
		}
	}
}
