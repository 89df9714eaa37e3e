// Package sqlite implements the meeting store on modernc.org/sqlite.
//
// SQLite's LIKE and lower() only fold ASCII, so the case-insensitive
// substring match is done against shadow columns normalized in Go
// (TitleNorm, LocationNorm) rather than in SQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// Open opens (or creates) a SQLite database at the given path and enables
// WAL journal mode for better read concurrency.
func Open(path string) (*sql.DB, error) {
	// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the meetings table if it does not exist.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS Meetings (
            MeetingId TEXT PRIMARY KEY,
            OwnerId TEXT NOT NULL,
            Title TEXT NOT NULL,
            TitleNorm TEXT NOT NULL,
            StartTime TIMESTAMP NOT NULL,
            DurationMinutes INTEGER NOT NULL DEFAULT 30,
            Location TEXT,
            LocationNorm TEXT,
            CreationTime TIMESTAMP NOT NULL
        );`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_owner_start ON Meetings(OwnerId, StartTime);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// New opens the database, ensures the schema and returns a store.Store.
func New(path string) (store.Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &sqliteStore{db: db}, nil
}

// NewWithDB wires an existing connection (used by tests and the factory).
func NewWithDB(db *sql.DB) store.Store { return &sqliteStore{db: db} }

type sqliteStore struct{ db *sql.DB }

func (s *sqliteStore) Meetings() store.Meetings { return &meetings{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *sqliteStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type meetings struct{ db *sql.DB }

func (m *meetings) Create(ctx context.Context, mt *model.Meeting) (*model.Meeting, error) {
	id := mt.MeetingID
	if id == "" {
		id = uuid.New().String()
	}
	now := time.Now().UTC()

	var locNorm *string
	if mt.Location != nil {
		n := strings.ToLower(*mt.Location)
		locNorm = &n
	}
	_, err := m.db.ExecContext(ctx, `INSERT INTO Meetings
        (MeetingId, OwnerId, Title, TitleNorm, StartTime, DurationMinutes, Location, LocationNorm, CreationTime)
        VALUES (?,?,?,?,?,?,?,?,?)`,
		id, mt.OwnerID, mt.Title, strings.ToLower(mt.Title), mt.StartTime.UTC(), mt.DurationMinutes, mt.Location, locNorm, now)
	if err != nil {
		return nil, err
	}

	out := *mt
	out.MeetingID = id
	out.StartTime = mt.StartTime.UTC()
	out.CreationTime = now
	return &out, nil
}

func (m *meetings) Search(ctx context.Context, f model.MeetingFilter) ([]*model.Meeting, error) {
	q := `SELECT MeetingId, OwnerId, Title, StartTime, DurationMinutes, Location, CreationTime
        FROM Meetings WHERE OwnerId = ?`
	args := []interface{}{f.OwnerID}
	if f.TimeMin != nil {
		q += ` AND StartTime >= ?`
		args = append(args, f.TimeMin.UTC())
	}
	if f.TimeMax != nil {
		q += ` AND StartTime < ?`
		args = append(args, f.TimeMax.UTC())
	}
	if f.Query != nil {
		q += ` AND (instr(TitleNorm, ?) > 0 OR instr(ifnull(LocationNorm,''), ?) > 0)`
		needle := strings.ToLower(*f.Query)
		args = append(args, needle, needle)
	}
	q += ` ORDER BY StartTime ASC`

	rows, err := m.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var res []*model.Meeting
	for rows.Next() {
		mt, err := scanMeeting(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, mt)
	}
	return res, rows.Err()
}

func (m *meetings) LatestMatch(ctx context.Context, ownerID, query string) (*model.Meeting, error) {
	needle := strings.ToLower(query)
	row := m.db.QueryRowContext(ctx, `SELECT MeetingId, OwnerId, Title, StartTime, DurationMinutes, Location, CreationTime
        FROM Meetings
        WHERE OwnerId = ? AND (instr(TitleNorm, ?) > 0 OR instr(ifnull(LocationNorm,''), ?) > 0)
        ORDER BY StartTime DESC LIMIT 1`, ownerID, needle, needle)

	mt, err := scanMeeting(row)
	if err == sql.ErrNoRows {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return mt, nil
}

func (m *meetings) UpdateLocation(ctx context.Context, ownerID, title string, start time.Time, newLocation string) error {
	res, err := m.db.ExecContext(ctx, `UPDATE Meetings
        SET Location = ?, LocationNorm = ?
        WHERE OwnerId = ? AND Title = ? AND StartTime = ?`,
		newLocation, strings.ToLower(newLocation), ownerID, title, start.UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (m *meetings) UpdateTitle(ctx context.Context, ownerID, title string, start time.Time, newTitle string) error {
	res, err := m.db.ExecContext(ctx, `UPDATE Meetings
        SET Title = ?, TitleNorm = ?
        WHERE OwnerId = ? AND Title = ? AND StartTime = ?`,
		newTitle, strings.ToLower(newTitle), ownerID, title, start.UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

type scanner interface{ Scan(dest ...interface{}) error }

func scanMeeting(row scanner) (*model.Meeting, error) {
	var mt model.Meeting
	if err := row.Scan(&mt.MeetingID, &mt.OwnerID, &mt.Title, &mt.StartTime, &mt.DurationMinutes, &mt.Location, &mt.CreationTime); err != nil {
		return nil, err
	}
	mt.StartTime = mt.StartTime.UTC()
	mt.CreationTime = mt.CreationTime.UTC()
	return &mt, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return model.ErrNotFound
	}
	return nil
}
