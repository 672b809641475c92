package repository

import (
	"context"
	"database/sql"
	"errors"

	"pokelearn/internal/database"
)

// SQLStore keeps records in the records table of a SQL database
type SQLStore struct {
	db *database.DB
}

// NewSQLStore creates a store over an initialized and migrated database
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Put(ctx context.Context, partition Partition, key string, value []byte) error {
	if err := upsertRecord(ctx, s.db, partition, key, value); err != nil {
		return storageErr("put", partition, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, partition Partition, key string) ([]byte, bool, error) {
	var value string
	query := `SELECT value FROM records WHERE partition_name = ? AND record_key = ?`
	err := s.db.QueryRowContext(ctx, query, string(partition), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", partition, err)
	}
	return []byte(value), true, nil
}

func (s *SQLStore) GetAll(ctx context.Context, partition Partition) ([]Record, error) {
	query := `SELECT record_key, value FROM records WHERE partition_name = ? ORDER BY record_key`
	rows, err := s.db.QueryContext(ctx, query, string(partition))
	if err != nil {
		return nil, storageErr("get all", partition, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, storageErr("get all", partition, err)
		}
		records = append(records, Record{Key: key, Value: []byte(value)})
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("get all", partition, err)
	}
	return records, nil
}

func (s *SQLStore) Delete(ctx context.Context, partition Partition, key string) error {
	query := `DELETE FROM records WHERE partition_name = ? AND record_key = ?`
	if _, err := s.db.ExecContext(ctx, query, string(partition), key); err != nil {
		return storageErr("delete", partition, err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context, partition Partition) error {
	if err := clearPartition(ctx, s.db, partition); err != nil {
		return storageErr("clear", partition, err)
	}
	return nil
}

func (s *SQLStore) Replace(ctx context.Context, partition Partition, records []Record) error {
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		if err := clearPartition(ctx, tx, partition); err != nil {
			return err
		}
		for _, r := range records {
			if err := upsertRecord(ctx, tx, partition, r.Key, r.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return storageErr("replace", partition, err)
	}
	return nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func upsertRecord(ctx context.Context, q database.DBTX, partition Partition, key string, value []byte) error {
	_, err := q.ExecContext(ctx, q.GetDialect().UpsertRecordQuery(), string(partition), key, string(value))
	return err
}

func clearPartition(ctx context.Context, q database.DBTX, partition Partition) error {
	_, err := q.ExecContext(ctx, `DELETE FROM records WHERE partition_name = ?`, string(partition))
	return err
}
