package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/phillipc0/PP-CGA-BE-Public/pkg/db"
	"github.com/phillipc0/PP-CGA-BE-Public/pkg/session"
)

// Dialect selects the placeholder and timestamp encoding of a SQL store
type Dialect int

// dialect constants
const (
	Postgres Dialect = iota
	SQLite
)

const selectColumns = `SELECT id, type, code, settings, state, players, created, updated FROM games`

var placeholderRx = regexp.MustCompile(`\$\d+`)

// SQL is a Store backed by a games table
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

var _ Store = &SQL{}

// NewSQL returns a store that uses the database handle
func NewSQL(sqlDB *sql.DB, dialect Dialect) *SQL {
	return &SQL{
		db:      sqlDB,
		dialect: dialect,
	}
}

// queries are written with $N placeholders and rebound for SQLite
func (s *SQL) rebind(query string) string {
	if s.dialect == SQLite {
		return placeholderRx.ReplaceAllString(query, "?")
	}

	return query
}

func (s *SQL) timeArg(t time.Time) interface{} {
	if s.dialect == SQLite {
		return t.UTC().UnixMilli()
	}

	return t.UTC()
}

// Create inserts a new session
func (s *SQL) Create(ctx context.Context, sess *session.Session) error {
	settings, err := json.Marshal(sess.Settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	state, players, err := encodeMutable(sess)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO games (id, type, code, settings, state, players, created, updated)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if _, err := s.db.ExecContext(ctx, s.rebind(query),
		sess.ID,
		string(sess.Type),
		sess.Code,
		string(settings),
		state,
		players,
		s.timeArg(sess.Created),
		s.timeArg(sess.Updated),
	); err != nil {
		return fmt.Errorf("insert game %s: %w", sess.ID, err)
	}

	return nil
}

// Load returns the session with the id
func (s *SQL) Load(ctx context.Context, id string) (*session.Session, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE id = $1`), id)
	return scanSession(row)
}

// LoadByCode returns the session with the join code
func (s *SQL) LoadByCode(ctx context.Context, code string) (*session.Session, error) {
	row := s.db.QueryRowContext(ctx, s.rebind(selectColumns+` WHERE code = $1`), code)
	return scanSession(row)
}

// Save writes the state and players of the session
func (s *SQL) Save(ctx context.Context, sess *session.Session) error {
	state, players, err := encodeMutable(sess)
	if err != nil {
		return err
	}

	const query = `UPDATE games SET state = $1, players = $2, updated = $3 WHERE id = $4`
	res, err := s.db.ExecContext(ctx, s.rebind(query), state, players, s.timeArg(sess.Updated), sess.ID)
	if err != nil {
		return fmt.Errorf("update game %s: %w", sess.ID, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update game %s: %w", sess.ID, err)
	}

	if n == 0 {
		return ErrNotFound
	}

	return nil
}

// CodeExists reports whether a join code is in use
func (s *SQL) CodeExists(ctx context.Context, code string) (bool, error) {
	var count int
	row := s.db.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM games WHERE code = $1`), code)
	if err := row.Scan(&count); err != nil {
		return false, fmt.Errorf("check join code: %w", err)
	}

	return count > 0, nil
}

func encodeMutable(sess *session.Session) (string, string, error) {
	state, err := json.Marshal(sess.State)
	if err != nil {
		return "", "", fmt.Errorf("encode state: %w", err)
	}

	players, err := json.Marshal(sess.Players)
	if err != nil {
		return "", "", fmt.Errorf("encode players: %w", err)
	}

	return string(state), string(players), nil
}

func scanSession(row db.Scanner) (*session.Session, error) {
	var sess session.Session
	var variant string
	var settings, state, players []byte
	var created, updated timestamp

	if err := row.Scan(&sess.ID, &variant, &sess.Code, &settings, &state, &players, &created, &updated); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("scan game: %w", err)
	}

	sess.Type = session.Variant(variant)
	sess.Created = created.Time
	sess.Updated = updated.Time

	if err := json.Unmarshal(settings, &sess.Settings); err != nil {
		return nil, fmt.Errorf("decode settings of %s: %w", sess.ID, err)
	}

	if err := json.Unmarshal(state, &sess.State); err != nil {
		return nil, fmt.Errorf("decode state of %s: %w", sess.ID, err)
	}

	if err := json.Unmarshal(players, &sess.Players); err != nil {
		return nil, fmt.Errorf("decode players of %s: %w", sess.ID, err)
	}

	if sess.Players == nil {
		sess.Players = make(map[string]*session.Player)
	}

	return &sess, nil
}

// timestamp scans both a native timestamp and unix milliseconds
type timestamp struct {
	time.Time
}

func (t *timestamp) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = v.UTC()
	case int64:
		t.Time = time.UnixMilli(v).UTC()
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}

	return nil
}
