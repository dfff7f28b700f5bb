package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRecordStore keeps each collection as one JSONB document row.
type PGRecordStore struct {
	db *pgxpool.Pool
}

func NewPGRecordStore(db *pgxpool.Pool) *PGRecordStore {
	return &PGRecordStore{db: db}
}

func (s *PGRecordStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		records JSONB NOT NULL DEFAULT '[]'::jsonb,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	return err
}

func (s *PGRecordStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *PGRecordStore) LoadAll(ctx context.Context, collection string, out any) error {
	var raw []byte
	err := s.db.QueryRow(ctx, `SELECT records FROM collections WHERE name=$1`, collection).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("load %s: %w", collection, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *PGRecordStore) SaveAll(ctx context.Context, collection string, records any) error {
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", collection, err)
	}
	_, err = s.db.Exec(ctx, `INSERT INTO collections (name, records, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE SET records = EXCLUDED.records, updated_at = now()`, collection, payload)
	if err != nil {
		return fmt.Errorf("save %s: %w", collection, err)
	}
	return nil
}

var _ RecordStore = (*PGRecordStore)(nil)
