package ledger

import (
	"log/slog"

	"ponto/internal/core"
)

// defaultPeriod fills month/year zero values with the current date.
func (l *Ledger) defaultPeriod(month, year int) (int, int) {
	now := l.now()
	if month == 0 {
		month = int(now.Month())
	}
	if year == 0 {
		year = now.Year()
	}
	return month, year
}

// MinutesForDay sums the minutes of a user's entries on the given
// "DD/MM/YYYY" date. An empty date means today.
func (l *Ledger) MinutesForDay(name, date string) (int, error) {
	if err := l.checkUser(name); err != nil {
		return 0, err
	}
	if date == "" {
		date = l.now().Format(core.DateLayout)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, e := range l.doc.Usuarios[name].Registros {
		if e.Date == date {
			total += e.EffectiveMinutes()
		}
	}
	return total, nil
}

// MinutesForMonth sums the minutes of a user's entries in the given month
// and year. Zero month/year default to the current ones.
func (l *Ledger) MinutesForMonth(name string, month, year int) (int, error) {
	if err := l.checkUser(name); err != nil {
		return 0, err
	}
	month, year = l.defaultPeriod(month, year)
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.minutesForMonthLocked(name, month, year), nil
}

// HoursForDay is MinutesForDay expressed in hours.
func (l *Ledger) HoursForDay(name, date string) (float64, error) {
	minutes, err := l.MinutesForDay(name, date)
	if err != nil {
		return 0, err
	}
	return core.HoursFromMinutes(minutes), nil
}

// HoursForMonth is MinutesForMonth expressed in hours.
func (l *Ledger) HoursForMonth(name string, month, year int) (float64, error) {
	minutes, err := l.MinutesForMonth(name, month, year)
	if err != nil {
		return 0, err
	}
	return core.HoursFromMinutes(minutes), nil
}

func (l *Ledger) minutesForMonthLocked(name string, month, year int) int {
	total := 0
	for _, e := range l.doc.Usuarios[name].Registros {
		if m, y, ok := entryMonthYear(e); ok && m == month && y == year {
			total += e.EffectiveMinutes()
		}
	}
	return total
}

// entryMonthYear parses the entry date. Entries recorded through the ledger
// always parse; a hand-edited document may not, and those entries are left
// out of the aggregation rather than aborting the whole report.
func entryMonthYear(e core.Entry) (month, year int, ok bool) {
	t, err := core.ParseDate(e.Date)
	if err != nil {
		slog.Warn("Registro com data inválida ignorado", "data", e.Date)
		return 0, 0, false
	}
	return int(t.Month()), t.Year(), true
}

// MonthlyReport aggregates one month for every roster user, including the
// ones with zero entries. The global total_horas is recomputed from the
// summed minutes, never from the per-user rounded hours.
func (l *Ledger) MonthlyReport(month, year int) core.MonthlyReport {
	month, year = l.defaultPeriod(month, year)
	l.mu.Lock()
	defer l.mu.Unlock()

	report := core.MonthlyReport{
		Month: month,
		Year:  year,
		Users: make(map[string]core.UserTotal, len(l.roster)),
	}
	for _, user := range l.roster {
		minutes := l.minutesForMonthLocked(user, month, year)
		report.Users[user] = core.UserTotal{
			Minutes: minutes,
			Hours:   core.HoursFromMinutes(minutes),
		}
		report.TotalMinutes += minutes
		report.TotalHours = core.HoursFromMinutes(report.TotalMinutes)
	}
	return report
}

// AnnualReport aggregates a full year: a dense 12-month breakdown per
// roster user plus per-user, per-month and grand totals, all minute-summed
// and hour-derived.
func (l *Ledger) AnnualReport(year int) core.AnnualReport {
	if year == 0 {
		year = l.now().Year()
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	report := core.AnnualReport{
		Year:   year,
		Users:  make(map[string]*core.AnnualUserTotal, len(l.roster)),
		Months: make(map[int]core.MonthTotal, 12),
	}
	for month := 1; month <= 12; month++ {
		report.Months[month] = core.MonthTotal{}
	}

	for _, user := range l.roster {
		userTotal := &core.AnnualUserTotal{Months: make(map[int]core.UserTotal, 12)}
		report.Users[user] = userTotal

		for month := 1; month <= 12; month++ {
			minutes := l.minutesForMonthLocked(user, month, year)
			userTotal.Months[month] = core.UserTotal{
				Minutes: minutes,
				Hours:   core.HoursFromMinutes(minutes),
			}

			userTotal.Minutes += minutes
			userTotal.Hours = core.HoursFromMinutes(userTotal.Minutes)

			monthTotal := report.Months[month]
			monthTotal.TotalMinutes += minutes
			monthTotal.TotalHours = core.HoursFromMinutes(monthTotal.TotalMinutes)
			report.Months[month] = monthTotal

			report.TotalMinutes += minutes
			report.TotalHours = core.HoursFromMinutes(report.TotalMinutes)
		}
	}
	return report
}
