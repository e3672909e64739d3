package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"ponto/internal/core"
	"ponto/internal/store/memory"
)

var testRoster = []string{"Márcio", "Samuel", "Caio", "Robson"}

// fixedClock pins "today" to 20/03/2023.
func fixedClock() time.Time {
	return time.Date(2023, 3, 20, 10, 30, 0, 0, time.Local)
}

func newTestLedger(t *testing.T, opts ...Option) (*Ledger, *memory.Store) {
	t.Helper()
	st := memory.New()
	opts = append([]Option{WithClock(fixedClock)}, opts...)
	led, err := New(context.Background(), testRoster, st, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return led, st
}

type capturePublisher struct {
	users   []string
	entries []core.Entry
	err     error
}

func (p *capturePublisher) PublishEntryRecorded(_ context.Context, user string, e core.Entry) error {
	if p.err != nil {
		return p.err
	}
	p.users = append(p.users, user)
	p.entries = append(p.entries, e)
	return nil
}

func TestRegisterByTimes(t *testing.T) {
	led, st := newTestLedger(t)

	entry, err := led.RegisterByTimes(context.Background(), "Samuel", "08:30", "17:45")
	if err != nil {
		t.Fatalf("RegisterByTimes: %v", err)
	}
	if entry.Minutes != 555 {
		t.Fatalf("minutes = %d, want 555", entry.Minutes)
	}
	if entry.Hours != 9.25 {
		t.Fatalf("hours = %v, want 9.25", entry.Hours)
	}
	if entry.Date != "20/03/2023" {
		t.Fatalf("date = %q, want today's date", entry.Date)
	}
	if st.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", st.Saves())
	}
}

func TestRegisterByTimesRejectsNonPositiveSpan(t *testing.T) {
	led, st := newTestLedger(t)

	for _, exit := range []string{"08:30", "08:00"} {
		_, err := led.RegisterByTimes(context.Background(), "Samuel", "08:30", exit)
		if err == nil {
			t.Fatalf("exit %q expected error", exit)
		}
		if !core.IsValidation(err) {
			t.Fatalf("exit %q: error is not a ValidationError: %v", exit, err)
		}
	}

	if st.Saves() != 0 {
		t.Fatalf("rejected registrations must not persist, saves = %d", st.Saves())
	}
	entries, _ := led.EntriesForUser("Samuel")
	if len(entries) != 0 {
		t.Fatalf("rejected registrations must not append entries, got %d", len(entries))
	}
}

func TestRegisterByTimesMalformedTime(t *testing.T) {
	led, _ := newTestLedger(t)

	for _, in := range []string{"0830", "ab:cd", ""} {
		if _, err := led.RegisterByTimes(context.Background(), "Samuel", in, "17:00"); !core.IsValidation(err) {
			t.Fatalf("entry time %q: want ValidationError, got %v", in, err)
		}
	}
}

func TestUnknownUser(t *testing.T) {
	led, st := newTestLedger(t)

	_, err := led.RegisterByTimes(context.Background(), "Intruso", "08:00", "12:00")
	if !core.IsValidation(err) {
		t.Fatalf("want ValidationError for unknown user, got %v", err)
	}
	if _, err := led.RecordMinutes(context.Background(), "Intruso", "15/03/2023", 60, ""); !core.IsValidation(err) {
		t.Fatalf("want ValidationError for unknown user, got %v", err)
	}
	if _, err := led.EntriesForUser("Intruso"); !core.IsValidation(err) {
		t.Fatalf("want ValidationError for unknown user, got %v", err)
	}
	if st.Saves() != 0 {
		t.Fatalf("saves = %d, want 0", st.Saves())
	}
}

func TestRecordMinutes(t *testing.T) {
	led, _ := newTestLedger(t)

	entry, err := led.RecordMinutes(context.Background(), "Caio", "15/03/2023", 480, "")
	if err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if entry.Minutes != 480 || entry.Hours != 8.0 {
		t.Fatalf("entry = %d min / %v h, want 480 / 8", entry.Minutes, entry.Hours)
	}

	report := led.MonthlyReport(3, 2023)
	if got := report.Users["Caio"].Minutes; got != 480 {
		t.Fatalf("monthly report Caio minutes = %d, want 480", got)
	}
}

func TestRecordMinutesValidation(t *testing.T) {
	led, st := newTestLedger(t)

	tests := []struct {
		name    string
		date    string
		minutes int
	}{
		{"malformed date", "2023-03-15", 60},
		{"impossible date", "31/02/2023", 60},
		{"zero minutes", "15/03/2023", 0},
		{"negative minutes", "15/03/2023", -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := led.RecordMinutes(context.Background(), "Caio", tt.date, tt.minutes, "")
			if !core.IsValidation(err) {
				t.Fatalf("want ValidationError, got %v", err)
			}
		})
	}
	if st.Saves() != 0 {
		t.Fatalf("saves = %d, want 0", st.Saves())
	}
}

func TestRecordManual(t *testing.T) {
	led, _ := newTestLedger(t)

	entry, err := led.RecordManual(context.Background(), "Robson", "02/01/2023", "13:15", "18:00", "suporte")
	if err != nil {
		t.Fatalf("RecordManual: %v", err)
	}
	if entry.Minutes != 285 {
		t.Fatalf("minutes = %d, want 285", entry.Minutes)
	}
	if entry.Description != "suporte" {
		t.Fatalf("description = %q", entry.Description)
	}

	// Same ordering rule as the punch clock: no overnight spans.
	if _, err := led.RecordManual(context.Background(), "Robson", "02/01/2023", "22:00", "06:00", ""); !core.IsValidation(err) {
		t.Fatalf("overnight span: want ValidationError, got %v", err)
	}
}

func TestMinutesForDay(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	// Two entries on the same date are summed.
	if _, err := led.RecordMinutes(ctx, "Samuel", "20/03/2023", 120, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RegisterByTimes(ctx, "Samuel", "14:00", "16:00"); err != nil {
		t.Fatalf("RegisterByTimes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Samuel", "19/03/2023", 45, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	got, err := led.MinutesForDay("Samuel", "20/03/2023")
	if err != nil {
		t.Fatalf("MinutesForDay: %v", err)
	}
	if got != 240 {
		t.Fatalf("minutes for day = %d, want 240", got)
	}

	// Empty date means today.
	today, err := led.MinutesForDay("Samuel", "")
	if err != nil {
		t.Fatalf("MinutesForDay: %v", err)
	}
	if today != 240 {
		t.Fatalf("minutes for today = %d, want 240", today)
	}

	hours, err := led.HoursForDay("Samuel", "20/03/2023")
	if err != nil {
		t.Fatalf("HoursForDay: %v", err)
	}
	if hours != 4.0 {
		t.Fatalf("hours for day = %v, want 4", hours)
	}
}

func TestMinutesForMonthDefaults(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := led.RecordMinutes(ctx, "Caio", "05/03/2023", 100, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Caio", "05/02/2023", 999, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	// Zero month/year default to the clock's current month and year.
	got, err := led.MinutesForMonth("Caio", 0, 0)
	if err != nil {
		t.Fatalf("MinutesForMonth: %v", err)
	}
	if got != 100 {
		t.Fatalf("minutes for current month = %d, want 100", got)
	}
}

func TestMonthlyReportIncludesZeroUsers(t *testing.T) {
	led, _ := newTestLedger(t)

	if _, err := led.RecordMinutes(context.Background(), "Caio", "15/03/2023", 480, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	report := led.MonthlyReport(3, 2023)
	if len(report.Users) != len(testRoster) {
		t.Fatalf("report has %d users, want %d", len(report.Users), len(testRoster))
	}
	for _, name := range []string{"Márcio", "Samuel", "Robson"} {
		total, ok := report.Users[name]
		if !ok {
			t.Fatalf("user %s missing from report", name)
		}
		if total.Minutes != 0 || total.Hours != 0.0 {
			t.Fatalf("user %s = %+v, want zero values", name, total)
		}
	}
}

func TestMonthlyReportTotalsFromMinutes(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	// 50 + 50 minutes: per-user hours round to 0.83 each, but the global
	// total must be derived from 100 minutes (1.67), not 0.83 + 0.83.
	if _, err := led.RecordMinutes(ctx, "Samuel", "10/03/2023", 50, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Caio", "10/03/2023", 50, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	report := led.MonthlyReport(3, 2023)
	if report.TotalMinutes != 100 {
		t.Fatalf("total minutes = %d, want 100", report.TotalMinutes)
	}
	if report.TotalHours != 1.67 {
		t.Fatalf("total hours = %v, want 1.67", report.TotalHours)
	}
}

func TestAnnualReport(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	if _, err := led.RecordMinutes(ctx, "Samuel", "10/03/2023", 300, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Samuel", "05/11/2023", 200, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Caio", "12/11/2023", 100, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	// Outside the queried year.
	if _, err := led.RecordMinutes(ctx, "Samuel", "10/03/2022", 999, ""); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	report := led.AnnualReport(2023)

	for _, name := range testRoster {
		user, ok := report.Users[name]
		if !ok {
			t.Fatalf("user %s missing from annual report", name)
		}
		if len(user.Months) != 12 {
			t.Fatalf("user %s has %d month buckets, want 12", name, len(user.Months))
		}
	}

	samuel := report.Users["Samuel"]
	if samuel.Months[3].Minutes != 300 || samuel.Months[11].Minutes != 200 {
		t.Fatalf("Samuel buckets = %+v", samuel.Months)
	}
	for month := 1; month <= 12; month++ {
		if month == 3 || month == 11 {
			continue
		}
		if samuel.Months[month].Minutes != 0 {
			t.Fatalf("month %d should be zero, got %d", month, samuel.Months[month].Minutes)
		}
	}

	// Per-user yearly total equals the sum of the 12 buckets.
	if samuel.Minutes != 500 {
		t.Fatalf("Samuel yearly minutes = %d, want 500", samuel.Minutes)
	}
	if samuel.Hours != core.HoursFromMinutes(500) {
		t.Fatalf("Samuel yearly hours = %v", samuel.Hours)
	}

	if report.Months[11].TotalMinutes != 300 {
		t.Fatalf("November total = %d, want 300", report.Months[11].TotalMinutes)
	}
	if report.TotalMinutes != 600 {
		t.Fatalf("grand total = %d, want 600", report.TotalMinutes)
	}
	if report.TotalHours != core.HoursFromMinutes(600) {
		t.Fatalf("grand total hours = %v", report.TotalHours)
	}
}

func TestLegacyHoursOnlyEntries(t *testing.T) {
	doc := core.NewDocument(testRoster)
	doc.Usuarios["Márcio"].Registros = []core.Entry{
		{Date: "10/03/2023", Hours: 9.25},       // legacy, no minutes
		{Date: "10/03/2023", Minutes: 60, Hours: 1},
	}
	st := memory.NewWithDocument(doc)

	led, err := New(context.Background(), testRoster, st, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, err := led.MinutesForDay("Márcio", "10/03/2023")
	if err != nil {
		t.Fatalf("MinutesForDay: %v", err)
	}
	if got != 615 {
		t.Fatalf("minutes = %d, want 615 (555 reconstructed + 60 native)", got)
	}

	report := led.MonthlyReport(3, 2023)
	if report.Users["Márcio"].Minutes != 615 {
		t.Fatalf("report minutes = %d, want 615", report.Users["Márcio"].Minutes)
	}
}

func TestNewBackfillsRosterAndKeepsExtraUsers(t *testing.T) {
	doc := core.Document{Usuarios: map[string]*core.UserRecords{
		"Samuel": {Registros: []core.Entry{{Date: "01/03/2023", Minutes: 60, Hours: 1}}},
		"Antigo": {Registros: []core.Entry{{Date: "02/03/2023", Minutes: 30, Hours: 0.5}}},
	}}
	st := memory.NewWithDocument(doc)

	led, err := New(context.Background(), testRoster, st, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	// Back-filled roster user works immediately.
	if _, err := led.RecordMinutes(context.Background(), "Caio", "15/03/2023", 60, ""); err != nil {
		t.Fatalf("RecordMinutes on back-filled user: %v", err)
	}

	// The persisted document must still carry the user that left the roster.
	saved := st.Document()
	if _, ok := saved.Usuarios["Antigo"]; !ok {
		t.Fatalf("user outside the roster was dropped on save")
	}
	if len(saved.Usuarios["Samuel"].Registros) != 1 {
		t.Fatalf("existing entries were lost")
	}
}

func TestEntriesForUserInsertionOrder(t *testing.T) {
	led, _ := newTestLedger(t)
	ctx := context.Background()

	// Retroactive entry recorded after a later-dated one: insertion order
	// is preserved, not date order.
	if _, err := led.RecordMinutes(ctx, "Samuel", "10/03/2023", 60, "primeiro"); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}
	if _, err := led.RecordMinutes(ctx, "Samuel", "01/01/2023", 30, "retroativo"); err != nil {
		t.Fatalf("RecordMinutes: %v", err)
	}

	entries, err := led.EntriesForUser("Samuel")
	if err != nil {
		t.Fatalf("EntriesForUser: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len = %d, want 2", len(entries))
	}
	if entries[0].Description != "primeiro" || entries[1].Description != "retroativo" {
		t.Fatalf("unexpected order: %+v", entries)
	}
}

func TestEventsPublishedAfterPersist(t *testing.T) {
	pub := &capturePublisher{}
	led, _ := newTestLedger(t, WithEvents(pub))

	if _, err := led.RegisterByTimes(context.Background(), "Samuel", "08:00", "12:00"); err != nil {
		t.Fatalf("RegisterByTimes: %v", err)
	}
	if len(pub.entries) != 1 || pub.users[0] != "Samuel" {
		t.Fatalf("expected one published event for Samuel, got %+v", pub.users)
	}
	if pub.entries[0].Minutes != 240 {
		t.Fatalf("event minutes = %d, want 240", pub.entries[0].Minutes)
	}

	// Validation failures never publish.
	_, _ = led.RegisterByTimes(context.Background(), "Samuel", "12:00", "08:00")
	if len(pub.entries) != 1 {
		t.Fatalf("rejected registration published an event")
	}
}

func TestPublishFailureDoesNotFailRecording(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	led, st := newTestLedger(t, WithEvents(pub))

	entry, err := led.RecordMinutes(context.Background(), "Caio", "15/03/2023", 60, "")
	if err != nil {
		t.Fatalf("RecordMinutes should tolerate publish failure: %v", err)
	}
	if entry.Minutes != 60 {
		t.Fatalf("entry = %+v", entry)
	}
	if st.Saves() != 1 {
		t.Fatalf("saves = %d, want 1", st.Saves())
	}
}

func TestNewRequiresRoster(t *testing.T) {
	if _, err := New(context.Background(), nil, memory.New()); err == nil {
		t.Fatalf("expected error for empty roster")
	}
}
