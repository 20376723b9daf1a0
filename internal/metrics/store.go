// Package metrics records page views with privacy protections: IP addresses
// are salted and hashed before storage, Do Not Track is honored upstream, and
// records expire after twelve months.
package metrics

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// retention is how long visit records are kept before cleanup removes them.
const retention = 12 * 30 * 24 * time.Hour

// Visit is a single recorded page view. HashedIP is a salted hash, never a
// raw address.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Stats aggregates the dashboard numbers.
type Stats struct {
	TotalVisits    int64   `json:"total_visits"`
	UniqueVisitors int64   `json:"unique_visitors"`
	VisitsToday    int64   `json:"visits_today"`
	VisitsThisWeek int64   `json:"visits_this_week"`
	RecentVisits   []Visit `json:"recent_visits"`
}

// Store is the SQLite-backed visit log.
type Store struct {
	db   *sql.DB
	salt string
	log  *zap.Logger
}

// Open opens (creating if needed) the metrics database at path. The hashing
// salt is regenerated per process, so hashes are consistent within a run but
// not linkable across restarts.
func Open(path string, log *zap.Logger) (*Store, error) {
	// _time_format=sqlite stores time.Time values in a form SQLite's date
	// functions can parse.
	dsn := "file:" + path + "?_time_format=sqlite&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open metrics db: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create visits table: %w", err)
	}

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("generate hashing salt: %w", err)
	}

	return &Store{db: db, salt: salt, log: log}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// HashIP returns the salted, truncated hash stored in place of the raw IP.
// The same IP hashes consistently within a process lifetime.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one page view. Errors are logged, not returned; tracking must
// never affect request handling.
func (s *Store) Record(ip, userAgent, path string) {
	_, err := s.db.Exec(
		`INSERT INTO visits (hashed_ip, user_agent, path, timestamp) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, time.Now().UTC(),
	)
	if err != nil {
		s.log.Warn("record visit", zap.Error(err))
	}
}

// Stats returns the aggregate dashboard numbers plus the most recent visits.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&stats.TotalVisits); err != nil {
		return nil, fmt.Errorf("count visits: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT hashed_ip) FROM visits`).Scan(&stats.UniqueVisitors); err != nil {
		return nil, fmt.Errorf("count unique visitors: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM visits WHERE DATE(timestamp) = DATE('now')`,
	).Scan(&stats.VisitsToday); err != nil {
		return nil, fmt.Errorf("count visits today: %w", err)
	}
	if err := s.db.QueryRow(
		`SELECT COUNT(*) FROM visits WHERE datetime(timestamp) >= datetime('now', '-7 days')`,
	).Scan(&stats.VisitsThisWeek); err != nil {
		return nil, fmt.Errorf("count visits this week: %w", err)
	}

	rows, err := s.db.Query(
		`SELECT id, hashed_ip, user_agent, path, timestamp
		 FROM visits ORDER BY timestamp DESC LIMIT 50`,
	)
	if err != nil {
		return nil, fmt.Errorf("recent visits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		stats.RecentVisits = append(stats.RecentVisits, v)
	}

	return stats, rows.Err()
}

// Recent returns up to limit visits, newest first.
func (s *Store) Recent(limit int) ([]Visit, error) {
	rows, err := s.db.Query(
		`SELECT id, hashed_ip, user_agent, path, timestamp
		 FROM visits ORDER BY timestamp DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &v.Timestamp); err != nil {
			continue
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}

// Cleanup removes visits older than the retention window and returns how many
// rows were deleted.
func (s *Store) Cleanup() (int64, error) {
	cutoff := time.Now().UTC().Add(-retention)
	result, err := s.db.Exec(`DELETE FROM visits WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	deleted, _ := result.RowsAffected()
	if deleted > 0 {
		s.log.Info("privacy cleanup removed old visit records", zap.Int64("deleted", deleted))
	}
	return deleted, nil
}

func randomHex(n int) (string, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
