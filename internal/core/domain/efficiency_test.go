package domain

import "testing"

func TestTeamTotals_Efficiency(t *testing.T) {
	cases := []struct {
		name   string
		totals TeamTotals
		want   int
	}{
		{"minutes preferred", TeamTotals{TotalTasks: 10, CompletedTasks: 10, TotalMinutes: 200, CompletedMinutes: 60}, 30},
		{"falls back to tasks", TeamTotals{TotalTasks: 3, CompletedTasks: 1}, 33},
		{"nothing logged", TeamTotals{}, 0},
		{"half rounds to even down", TeamTotals{TotalTasks: 8, CompletedTasks: 1}, 12},
		{"half rounds to even up", TeamTotals{TotalTasks: 8, CompletedTasks: 3}, 38},
		{"all done", TeamTotals{TotalMinutes: 45, CompletedMinutes: 45}, 100},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.totals.Efficiency(); got != tc.want {
				t.Errorf("Efficiency() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestTeamTotals_Label(t *testing.T) {
	cases := map[string]string{
		"seo":      "Seo Team",
		"branding": "Branding Team",
		"SOCIAL":   "Social Team",
		"":         "Team",
	}
	for team, want := range cases {
		if got := (TeamTotals{Team: team}).Label(); got != want {
			t.Errorf("Label(%q) = %q, want %q", team, got, want)
		}
	}
}
