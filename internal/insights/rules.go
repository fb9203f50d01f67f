package insights

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/habitwatch/internal/analytics"
)

// Rule scores range 0-100. Attention items score by severity, celebratory
// items by magnitude, and the fixed-score reminders anchor the bottom of
// the ranking.

// TopPerformer names the habit with the highest completion rate, as long
// as it completed anything at all.
func TopPerformer(ctx *Context) []Insight {
	var best *HabitContext
	for i := range ctx.Habits {
		h := &ctx.Habits[i]
		if best == nil || h.CompletionRate > best.CompletionRate {
			best = h
		}
	}
	if best == nil || best.CompletionRate <= 0 {
		return nil
	}

	return []Insight{{
		Category: "performance",
		Priority: PriorityMedium,
		Message: fmt.Sprintf("🏆 Your best habit is '%s' with %.1f%% completion rate",
			best.Name, best.CompletionRate),
		Score: best.CompletionRate * 0.8,
	}}
}

// NeedsAttention flags active habits completing less than half the time.
// At most three are named; the score tracks the worst of them.
func NeedsAttention(ctx *Context) []Insight {
	var names []string
	worst := 50.0
	for _, h := range ctx.Habits {
		if !h.Active || h.CompletionRate >= 50 {
			continue
		}
		if len(names) < 3 {
			names = append(names, fmt.Sprintf("'%s'", h.Name))
		}
		if h.CompletionRate < worst {
			worst = h.CompletionRate
		}
	}
	if len(names) == 0 {
		return nil
	}

	message := fmt.Sprintf("💪 %s could use more attention (below 50%% completion)", names[0])
	if len(names) > 1 {
		message = fmt.Sprintf("💪 These habits could use more attention: %s", strings.Join(names, ", "))
	}

	return []Insight{{
		Category: "attention",
		Priority: PriorityHigh,
		Message:  message,
		Score:    100 - worst,
	}}
}

// StreakLeader names the habit with the longest active streak.
func StreakLeader(ctx *Context) []Insight {
	var leader *HabitContext
	for i := range ctx.Habits {
		h := &ctx.Habits[i]
		if leader == nil || h.CurrentStreak > leader.CurrentStreak {
			leader = h
		}
	}
	if leader == nil || leader.CurrentStreak <= 0 {
		return nil
	}

	score := 50.0 + float64(leader.CurrentStreak)
	if score > 95 {
		score = 95
	}

	return []Insight{{
		Category: "streaks",
		Priority: PriorityMedium,
		Message:  fmt.Sprintf("🔥 Streak leader: '%s' (%d days)", leader.Name, leader.CurrentStreak),
		Score:    score,
	}}
}

// DecliningTrend flags habits whose completion trend points downward.
func DecliningTrend(ctx *Context) []Insight {
	var insights []Insight
	for _, h := range ctx.Habits {
		if h.TrendDirection != analytics.TrendSlightDownward &&
			h.TrendDirection != analytics.TrendConcerningDownward {
			continue
		}

		priority := PriorityMedium
		if h.TrendDirection == analytics.TrendConcerningDownward {
			priority = PriorityHigh
		}

		change := h.TrendChange
		if change < 0 {
			change = -change
		}

		insights = append(insights, Insight{
			Category: "trend",
			Priority: priority,
			Message: fmt.Sprintf("📉 '%s' is on a %s trend (%+.1f points)",
				h.Name, h.TrendDirection, h.TrendChange),
			Score: 60 + 2*change,
		})
	}
	return insights
}

// HighPerformers lists habits completing at least 80% of days, up to three.
func HighPerformers(ctx *Context) []Insight {
	var names []string
	count := 0
	for _, h := range ctx.Habits {
		if h.CompletionRate < 80 {
			continue
		}
		count++
		if len(names) < 3 {
			names = append(names, fmt.Sprintf("'%s'", h.Name))
		}
	}
	if count == 0 {
		return nil
	}

	score := 40.0 + 5.0*float64(count)
	if score > 70 {
		score = 70
	}

	return []Insight{{
		Category: "performance",
		Priority: PriorityMedium,
		Message:  fmt.Sprintf("🏆 Top performers: %s", strings.Join(names, ", ")),
		Score:    score,
	}}
}

// ArchivedHabits reminds about habits sitting in the archive.
func ArchivedHabits(ctx *Context) []Insight {
	archived := ctx.TotalCount - ctx.ActiveCount
	if archived <= 0 {
		return nil
	}

	plural := "s"
	if archived == 1 {
		plural = ""
	}

	return []Insight{{
		Category: "lifecycle",
		Priority: PriorityLow,
		Message: fmt.Sprintf("📦 You have %d archived habit%s. Consider using 'habitwatch restore' if you want to restart any.",
			archived, plural),
		Score: 10,
	}}
}

// OverallAssessment summarizes the fleet's average completion rate.
func OverallAssessment(ctx *Context) []Insight {
	if ctx.TotalCount == 0 {
		return nil
	}

	var message string
	switch {
	case ctx.AverageRate >= 80:
		message = "🎉 Excellent overall performance! You're crushing your goals!"
	case ctx.AverageRate >= 60:
		message = "👍 Solid performance across your habits. Keep up the momentum!"
	case ctx.AverageRate >= 40:
		message = "📈 Room for improvement. Focus on consistency with your most important habits."
	default:
		message = "🌱 Building habits takes time. Start with just one habit and be consistent."
	}

	return []Insight{{
		Category: "assessment",
		Priority: PriorityLow,
		Message:  message,
		Score:    20,
	}}
}
