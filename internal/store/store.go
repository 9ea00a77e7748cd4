// Package store is the sqlite-backed entity repository for trips,
// legs, expenses, locations, and persisted budgets.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/oskarlind/tripkit/internal/budget"
	"github.com/oskarlind/tripkit/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps the sqlite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func dateString(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(model.DateLayout), Valid: true}
}

func parseDate(ns sql.NullString) *time.Time {
	if !ns.Valid || ns.String == "" {
		return nil
	}
	t, err := time.Parse(model.DateLayout, ns.String)
	if err != nil {
		return nil
	}
	return &t
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

// SaveTrip inserts or replaces a trip and its category amounts.
func (s *Store) SaveTrip(t model.Trip) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	destName, destCountry := "", ""
	if t.Destination != nil {
		destName, destCountry = t.Destination.Name, t.Destination.Country
	}

	created := t.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	updated := t.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}

	_, err = tx.Exec(`INSERT OR REPLACE INTO trips
		(trip_id, name, location_id, dest_name, dest_country,
		 start_date, end_date, budget_method, travel_style,
		 total_budget, daily_budget, emergency_pct, notes, participants,
		 status, manual_status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Name, t.LocationID, destName, destCountry,
		dateString(t.StartDate), dateString(t.EndDate), string(t.BudgetMethod), string(t.TravelStyle),
		nullFloat(t.TotalBudget), nullFloat(t.DailyBudget), t.EmergencyFundPercentage,
		t.Notes, strings.Join(t.Participants, ","),
		string(t.Status), string(t.ManualStatus),
		created.UTC().Format(time.RFC3339), updated.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	if _, err = tx.Exec("DELETE FROM trip_categories WHERE trip_id = ?", t.ID); err != nil {
		return err
	}
	for category, amount := range t.Categories {
		_, err = tx.Exec(`INSERT INTO trip_categories (trip_id, category, amount) VALUES (?, ?, ?)`,
			t.ID, category, amount)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

const tripColumns = `trip_id, name, location_id, dest_name, dest_country,
	start_date, end_date, budget_method, travel_style,
	total_budget, daily_budget, emergency_pct, notes, participants,
	status, manual_status, created_at, updated_at`

func scanTrip(row interface{ Scan(...any) error }) (model.Trip, error) {
	var t model.Trip
	var locationID, destName, destCountry sql.NullString
	var startStr, endStr sql.NullString
	var method, style, notes, participants, statusStr, manual sql.NullString
	var totalBudget, dailyBudget sql.NullFloat64
	var createdStr, updatedStr string

	err := row.Scan(
		&t.ID, &t.Name, &locationID, &destName, &destCountry,
		&startStr, &endStr, &method, &style,
		&totalBudget, &dailyBudget, &t.EmergencyFundPercentage, &notes, &participants,
		&statusStr, &manual, &createdStr, &updatedStr,
	)
	if err != nil {
		return t, err
	}

	t.LocationID = locationID.String
	if destName.String != "" || destCountry.String != "" {
		t.Destination = &model.Destination{Name: destName.String, Country: destCountry.String}
	}
	t.StartDate = parseDate(startStr)
	t.EndDate = parseDate(endStr)
	t.BudgetMethod = model.BudgetMethod(method.String)
	t.TravelStyle = model.TravelStyle(style.String)
	t.TotalBudget = floatPtr(totalBudget)
	t.DailyBudget = floatPtr(dailyBudget)
	t.Notes = notes.String
	if participants.String != "" {
		t.Participants = strings.Split(participants.String, ",")
	}
	t.Status = model.Status(statusStr.String)
	t.ManualStatus = model.Status(manual.String)
	t.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	t.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return t, nil
}

func (s *Store) loadCategories(tripID string) (map[string]float64, error) {
	rows, err := s.db.Query("SELECT category, amount FROM trip_categories WHERE trip_id = ?", tripID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	cats := make(map[string]float64)
	for rows.Next() {
		var category string
		var amount float64
		if err := rows.Scan(&category, &amount); err != nil {
			return nil, err
		}
		cats[category] = amount
	}
	if len(cats) == 0 {
		cats = nil
	}
	return cats, rows.Err()
}

// GetTrip loads one trip with its category amounts.
func (s *Store) GetTrip(id string) (model.Trip, error) {
	row := s.db.QueryRow("SELECT "+tripColumns+" FROM trips WHERE trip_id = ?", id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		return t, ErrNotFound
	}
	if err != nil {
		return t, err
	}
	t.Categories, err = s.loadCategories(id)
	return t, err
}

// ListTrips returns all trips sorted by start date (undated trips
// last, then by name).
func (s *Store) ListTrips() ([]model.Trip, error) {
	rows, err := s.db.Query("SELECT " + tripColumns + " FROM trips")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var trips []model.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range trips {
		cats, err := s.loadCategories(trips[i].ID)
		if err != nil {
			return nil, err
		}
		trips[i].Categories = cats
	}

	sort.Slice(trips, func(i, j int) bool {
		a, b := trips[i], trips[j]
		switch {
		case a.StartDate == nil && b.StartDate == nil:
			return a.Name < b.Name
		case a.StartDate == nil:
			return false
		case b.StartDate == nil:
			return true
		case !a.StartDate.Equal(*b.StartDate):
			return a.StartDate.Before(*b.StartDate)
		default:
			return a.Name < b.Name
		}
	})
	return trips, nil
}

// DeleteTrip removes a trip; legs, expenses, categories, and its
// budget cascade away with it.
func (s *Store) DeleteTrip(id string) error {
	res, err := s.db.Exec("DELETE FROM trips WHERE trip_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// TripCount returns the number of stored trips.
func (s *Store) TripCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM trips").Scan(&count)
	return count, err
}

// SaveLeg inserts or replaces one trip leg.
func (s *Store) SaveLeg(l model.Leg) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO legs
		(leg_id, trip_id, country, start_date, end_date, position)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.TripID, l.Country, dateString(l.StartDate), dateString(l.EndDate), l.Position)
	return err
}

// DeleteLeg removes one leg.
func (s *Store) DeleteLeg(id string) error {
	res, err := s.db.Exec("DELETE FROM legs WHERE leg_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// LegsForTrip returns a trip's legs in position order.
func (s *Store) LegsForTrip(tripID string) ([]model.Leg, error) {
	rows, err := s.db.Query(`SELECT leg_id, trip_id, country, start_date, end_date, position
		FROM legs WHERE trip_id = ? ORDER BY position, start_date`, tripID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var legs []model.Leg
	for rows.Next() {
		var l model.Leg
		var startStr, endStr sql.NullString
		if err := rows.Scan(&l.ID, &l.TripID, &l.Country, &startStr, &endStr, &l.Position); err != nil {
			return nil, err
		}
		l.StartDate = parseDate(startStr)
		l.EndDate = parseDate(endStr)
		legs = append(legs, l)
	}
	return legs, rows.Err()
}

// AddExpense inserts or replaces one expense.
func (s *Store) AddExpense(e model.Expense) error {
	var spent sql.NullString
	if !e.SpentOn.IsZero() {
		spent = sql.NullString{String: e.SpentOn.Format(model.DateLayout), Valid: true}
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO expenses
		(expense_id, trip_id, location_id, amount, currency, category, spent_on, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.TripID, e.LocationID, e.Amount, e.Currency, e.Category, spent, e.Note)
	return err
}

// DeleteExpense removes one expense.
func (s *Store) DeleteExpense(id string) error {
	res, err := s.db.Exec("DELETE FROM expenses WHERE expense_id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpensesForTrip returns a trip's expenses, most recent first.
func (s *Store) ExpensesForTrip(tripID string) ([]model.Expense, error) {
	rows, err := s.db.Query(`SELECT expense_id, trip_id, location_id, amount, currency, category, spent_on, note
		FROM expenses WHERE trip_id = ? ORDER BY spent_on DESC`, tripID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		var tripID, locationID, currency, category, spent, note sql.NullString
		if err := rows.Scan(&e.ID, &tripID, &locationID, &e.Amount, &currency, &category, &spent, &note); err != nil {
			return nil, err
		}
		e.TripID = tripID.String
		e.LocationID = locationID.String
		e.Currency = currency.String
		e.Category = category.String
		e.Note = note.String
		if d := parseDate(spent); d != nil {
			e.SpentOn = *d
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// SaveBudget persists a trip's budget.
func (s *Store) SaveBudget(tripID string, b budget.TripBudget) error {
	auto := 0
	if b.AutoSuggested {
		auto = 1
	}
	_, err := s.db.Exec(`INSERT OR REPLACE INTO trip_budgets
		(trip_id, currency, style, auto_suggested, total, per_day,
		 accommodation, food, transport, activities, misc, warn_pct, stop_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tripID, b.Currency, string(b.Style), auto, b.Total, b.PerDay,
		b.Categories.Accommodation, b.Categories.Food, b.Categories.Transport,
		b.Categories.Activities, b.Categories.Misc, b.Thresholds.Warn, b.Thresholds.Stop)
	return err
}

// GetBudget loads a trip's persisted budget. The boolean is false when
// no budget has been saved for the trip.
func (s *Store) GetBudget(tripID string) (budget.TripBudget, bool, error) {
	var b budget.TripBudget
	var style string
	var auto int
	err := s.db.QueryRow(`SELECT currency, style, auto_suggested, total, per_day,
		accommodation, food, transport, activities, misc, warn_pct, stop_pct
		FROM trip_budgets WHERE trip_id = ?`, tripID).Scan(
		&b.Currency, &style, &auto, &b.Total, &b.PerDay,
		&b.Categories.Accommodation, &b.Categories.Food, &b.Categories.Transport,
		&b.Categories.Activities, &b.Categories.Misc, &b.Thresholds.Warn, &b.Thresholds.Stop,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return b, false, nil
	}
	if err != nil {
		return b, false, err
	}
	b.Style = budget.Style(style)
	b.AutoSuggested = auto != 0
	return b, true, nil
}

// SaveLocation inserts or replaces a location.
func (s *Store) SaveLocation(l model.Location) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO locations (location_id, name, country) VALUES (?, ?, ?)`,
		l.ID, l.Name, l.Country)
	return err
}

// GetLocation loads one location.
func (s *Store) GetLocation(id string) (model.Location, error) {
	var l model.Location
	var country sql.NullString
	err := s.db.QueryRow("SELECT location_id, name, country FROM locations WHERE location_id = ?", id).
		Scan(&l.ID, &l.Name, &country)
	if errors.Is(err, sql.ErrNoRows) {
		return l, ErrNotFound
	}
	l.Country = country.String
	return l, err
}

// FileInfo holds the tracked mtime and size for an imported file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// TrackedFiles returns a map of file_path -> FileInfo for all files
// already imported.
func (s *Store) TrackedFiles() (map[string]FileInfo, error) {
	rows, err := s.db.Query("SELECT file_path, mtime_ns, size_bytes FROM import_tracker")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	result := make(map[string]FileInfo)
	for rows.Next() {
		var path string
		var fi FileInfo
		if err := rows.Scan(&path, &fi.MtimeNs, &fi.SizeBytes); err != nil {
			return nil, err
		}
		result[path] = fi
	}
	return result, rows.Err()
}

// TrackFile records an imported file's mtime and size.
func (s *Store) TrackFile(path string, mtimeNs, sizeBytes int64) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO import_tracker (file_path, mtime_ns, size_bytes)
		VALUES (?, ?, ?)`, path, mtimeNs, sizeBytes)
	return err
}
