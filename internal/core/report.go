package core

import "sort"

// UserTotal is the minutes/hours pair reported for one user in one period.
// Hours is always derived from the summed minutes, never summed itself.
type UserTotal struct {
	Minutes int     `json:"minutos"`
	Hours   float64 `json:"horas"`
}

// MonthTotal aggregates all users for one month inside an annual report.
type MonthTotal struct {
	TotalMinutes int     `json:"total_minutos"`
	TotalHours   float64 `json:"total_horas"`
}

// MonthlyReport is a read-only snapshot of one month. Every roster user
// appears, with zero values when they have no entries.
type MonthlyReport struct {
	Month        int                  `json:"mes"`
	Year         int                  `json:"ano"`
	Users        map[string]UserTotal `json:"usuarios"`
	TotalMinutes int                  `json:"total_minutos"`
	TotalHours   float64              `json:"total_horas"`
}

// AnnualUserTotal nests the dense 12-month breakdown of one user.
type AnnualUserTotal struct {
	Minutes int               `json:"minutos"`
	Hours   float64           `json:"horas"`
	Months  map[int]UserTotal `json:"meses"`
}

// AnnualReport covers a full year: per-(user,month), per-user, per-month and
// grand totals. Months with no entries are present with zero values so the
// report can be rendered without existence checks.
type AnnualReport struct {
	Year         int                         `json:"ano"`
	Users        map[string]*AnnualUserTotal `json:"usuarios"`
	Months       map[int]MonthTotal          `json:"meses"`
	TotalMinutes int                         `json:"total_minutos"`
	TotalHours   float64                     `json:"total_horas"`
}

// RankingRow is one line of a report ranking.
type RankingRow struct {
	Name    string  `json:"nome"`
	Minutes int     `json:"minutos"`
	Hours   float64 `json:"horas"`
}

// Ranking returns the report users ordered by worked minutes, highest
// first. Ties are broken by name so the order is stable.
func (r MonthlyReport) Ranking() []RankingRow {
	rows := make([]RankingRow, 0, len(r.Users))
	for name, total := range r.Users {
		rows = append(rows, RankingRow{Name: name, Minutes: total.Minutes, Hours: total.Hours})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Minutes != rows[j].Minutes {
			return rows[i].Minutes > rows[j].Minutes
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
