package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps the book in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Data, error) {
	var data Data

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, phone, email FROM persons ORDER BY position`)
	if err != nil {
		return Data{}, fmt.Errorf("query persons: %w", err)
	}
	for rows.Next() {
		var (
			r  PersonRecord
			id string
		)
		if err := rows.Scan(&id, &r.Name, &r.Phone, &r.Email); err != nil {
			rows.Close()
			return Data{}, fmt.Errorf("scan person: %w", err)
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			rows.Close()
			return Data{}, fmt.Errorf("parse person id %q: %w", id, err)
		}
		data.Persons = append(data.Persons, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return Data{}, fmt.Errorf("read persons: %w", err)
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx,
		`SELECT id, value, start_date, return_date, returned, assignee FROM loans ORDER BY position`)
	if err != nil {
		return Data{}, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			r        LoanRecord
			assignee string
		)
		if err := rows.Scan(&r.ID, &r.Value, &r.Start, &r.Return, &r.Returned, &assignee); err != nil {
			return Data{}, fmt.Errorf("scan loan: %w", err)
		}
		if r.Assignee, err = uuid.Parse(assignee); err != nil {
			return Data{}, fmt.Errorf("parse assignee %q: %w", assignee, err)
		}
		data.Loans = append(data.Loans, r)
	}
	if err := rows.Err(); err != nil {
		return Data{}, fmt.Errorf("read loans: %w", err)
	}

	return data, nil
}

// Save replaces the stored book in one transaction.
func (s *SQLiteStore) Save(ctx context.Context, data Data) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM loans`); err != nil {
		return fmt.Errorf("clear loans: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM persons`); err != nil {
		return fmt.Errorf("clear persons: %w", err)
	}

	for i, p := range data.Persons {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO persons (id, name, phone, email, position) VALUES (?, ?, ?, ?, ?)`,
			p.ID.String(), p.Name, p.Phone, p.Email, i,
		); err != nil {
			return fmt.Errorf("insert person %s: %w", p.ID, err)
		}
	}
	for i, l := range data.Loans {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO loans (id, value, start_date, return_date, returned, assignee, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			l.ID, l.Value, l.Start, l.Return, l.Returned, l.Assignee.String(), i,
		); err != nil {
			return fmt.Errorf("insert loan %d: %w", l.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
