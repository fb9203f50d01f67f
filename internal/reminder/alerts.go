package reminder

import (
	"fmt"
	"strings"
	"time"
)

// streakRiskMin is the streak length from which losing a day warrants a
// critical alert.
const streakRiskMin = 7

// Compare detects notable changes between two same-day states and returns
// info alerts for new completions, milestones reached, and new habits.
func Compare(prev, curr *State, milestones []int) []Alert {
	var alerts []Alert

	alerts = append(alerts, compareTracked(prev, curr)...)
	alerts = append(alerts, compareMilestones(prev, curr, milestones)...)
	alerts = append(alerts, compareNew(prev, curr)...)

	return alerts
}

// compareTracked emits an info alert for each habit tracked since the
// previous check.
func compareTracked(prev, curr *State) []Alert {
	var alerts []Alert
	before := statusByName(prev)

	for _, h := range curr.Habits {
		p, existed := before[h.Name]
		if !existed || !h.TrackedToday || p.TrackedToday {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("Tracked: %s", h.Name),
			Message: fmt.Sprintf("Completion logged, streak is now %d day(s)", h.CurrentStreak),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

// compareMilestones emits an info alert when a habit's streak first
// reaches a configured milestone. When one completion crosses several
// milestones at once, only the largest is announced.
func compareMilestones(prev, curr *State, milestones []int) []Alert {
	if len(milestones) == 0 {
		return nil
	}

	var alerts []Alert
	before := statusByName(prev)

	for _, h := range curr.Habits {
		p, existed := before[h.Name]
		if !existed {
			continue
		}

		reached := 0
		for _, m := range milestones {
			if p.CurrentStreak < m && h.CurrentStreak >= m && m > reached {
				reached = m
			}
		}
		if reached == 0 {
			continue
		}

		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("Milestone: %s", h.Name),
			Message: fmt.Sprintf("🎉 %d-day streak reached!", reached),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

// compareNew emits an info alert for habits that appeared since the
// previous check.
func compareNew(prev, curr *State) []Alert {
	var alerts []Alert
	before := statusByName(prev)

	for _, h := range curr.Habits {
		if _, existed := before[h.Name]; existed {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "info",
			Title:   fmt.Sprintf("New habit: %s", h.Name),
			Message: fmt.Sprintf("Now tracking '%s'", h.Name),
			Time:    curr.Timestamp,
		})
	}

	return alerts
}

// UntrackedReminder returns a warning listing habits with no entry today,
// once the clock passes reminderHour.
func UntrackedReminder(curr *State, at time.Time, reminderHour int) []Alert {
	if at.Hour() < reminderHour {
		return nil
	}

	var names []string
	for _, h := range curr.Habits {
		if !h.TrackedToday {
			names = append(names, fmt.Sprintf("'%s'", h.Name))
		}
	}
	if len(names) == 0 {
		return nil
	}

	return []Alert{{
		Level:   "warning",
		Title:   "Daily reminder",
		Message: fmt.Sprintf("%d habit(s) still untracked today: %s", len(names), strings.Join(names, ", ")),
		Time:    at,
	}}
}

// StreakRisks returns a critical alert for each streak of at least seven
// days that ends today unless tracked, once the clock passes riskHour.
func StreakRisks(curr *State, at time.Time, riskHour int) []Alert {
	if at.Hour() < riskHour {
		return nil
	}

	var alerts []Alert
	for _, h := range curr.Habits {
		if h.TrackedToday || !h.DidYesterday || h.CurrentStreak < streakRiskMin {
			continue
		}
		alerts = append(alerts, Alert{
			Level:   "critical",
			Title:   fmt.Sprintf("Streak at risk: %s", h.Name),
			Message: fmt.Sprintf("%d-day streak ends unless you track today", h.CurrentStreak),
			Time:    at,
		})
	}

	return alerts
}

// statusByName indexes a state's habits by name.
func statusByName(s *State) map[string]HabitStatus {
	byName := make(map[string]HabitStatus, len(s.Habits))
	for _, h := range s.Habits {
		byName[h.Name] = h
	}
	return byName
}
