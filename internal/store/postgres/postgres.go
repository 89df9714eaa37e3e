// Package postgres implements the meeting store on PostgreSQL via the
// pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/strelka-labs/meeting-assistant/internal/model"
	"github.com/strelka-labs/meeting-assistant/internal/store"
)

// Open opens a PostgreSQL connection and verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
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
		`CREATE TABLE IF NOT EXISTS meetings (
            meeting_id UUID PRIMARY KEY,
            owner_id TEXT NOT NULL,
            title TEXT NOT NULL,
            start_time TIMESTAMPTZ NOT NULL,
            duration_minutes INTEGER NOT NULL DEFAULT 30,
            location TEXT,
            creation_time TIMESTAMPTZ NOT NULL DEFAULT now()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_meetings_owner_start ON meetings(owner_id, start_time);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// New opens the database, ensures the schema and returns a store.Store.
func New(dsn string) (store.Store, error) {
	db, err := Open(dsn)
	if err != nil {
		return nil, err
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &pgStore{db: db}, nil
}

// NewWithDB constructs a Postgres store backed by an existing connection.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Meetings() store.Meetings { return &meetings{db: s.db} }

// HealthPing implements store.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

type meetings struct{ db *sql.DB }

func (m *meetings) Create(ctx context.Context, mt *model.Meeting) (*model.Meeting, error) {
	id := mt.MeetingID
	if id == "" {
		id = uuid.New().String()
	}
	var created time.Time
	row := m.db.QueryRowContext(ctx, `INSERT INTO meetings
        (meeting_id, owner_id, title, start_time, duration_minutes, location)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING creation_time`,
		id, mt.OwnerID, mt.Title, mt.StartTime.UTC(), mt.DurationMinutes, mt.Location)
	if err := row.Scan(&created); err != nil {
		return nil, err
	}

	out := *mt
	out.MeetingID = id
	out.StartTime = mt.StartTime.UTC()
	out.CreationTime = created.UTC()
	return &out, nil
}

func (m *meetings) Search(ctx context.Context, f model.MeetingFilter) ([]*model.Meeting, error) {
	q := `SELECT meeting_id, owner_id, title, start_time, duration_minutes, location, creation_time
        FROM meetings WHERE owner_id = $1`
	args := []interface{}{f.OwnerID}
	if f.TimeMin != nil {
		args = append(args, f.TimeMin.UTC())
		q += fmt.Sprintf(` AND start_time >= $%d`, len(args))
	}
	if f.TimeMax != nil {
		args = append(args, f.TimeMax.UTC())
		q += fmt.Sprintf(` AND start_time < $%d`, len(args))
	}
	if f.Query != nil {
		args = append(args, *f.Query)
		n := len(args)
		q += fmt.Sprintf(` AND (strpos(lower(title), lower($%d)) > 0 OR strpos(lower(coalesce(location,'')), lower($%d)) > 0)`, n, n)
	}
	q += ` ORDER BY start_time ASC`

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
	row := m.db.QueryRowContext(ctx, `SELECT meeting_id, owner_id, title, start_time, duration_minutes, location, creation_time
        FROM meetings
        WHERE owner_id = $1 AND (strpos(lower(title), lower($2)) > 0 OR strpos(lower(coalesce(location,'')), lower($2)) > 0)
        ORDER BY start_time DESC LIMIT 1`, ownerID, query)

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
	res, err := m.db.ExecContext(ctx, `UPDATE meetings SET location = $1
        WHERE owner_id = $2 AND title = $3 AND start_time = $4`,
		newLocation, ownerID, title, start.UTC())
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (m *meetings) UpdateTitle(ctx context.Context, ownerID, title string, start time.Time, newTitle string) error {
	res, err := m.db.ExecContext(ctx, `UPDATE meetings SET title = $1
        WHERE owner_id = $2 AND title = $3 AND start_time = $4`,
		newTitle, ownerID, title, start.UTC())
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
