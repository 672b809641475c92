package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Partition names one independent group of records
type Partition string

const (
	PartitionPokemon  Partition = "pokemon"
	PartitionProgress Partition = "progress"
	PartitionSettings Partition = "settings"
)

// SingletonKey is the fixed key of single-document partitions (progress, settings)
const SingletonKey = "main"

// ErrStorage marks every failure coming from the underlying storage engine
var ErrStorage = errors.New("storage error")

// Record is a stored value together with its key
type Record struct {
	Key   string
	Value []byte
}

// Store is a durable, partitioned key-value store.
// Writes return only after the engine reports the commit. Deleting or clearing
// something that does not exist is not an error.
type Store interface {
	Put(ctx context.Context, partition Partition, key string, value []byte) error
	Get(ctx context.Context, partition Partition, key string) ([]byte, bool, error)
	GetAll(ctx context.Context, partition Partition) ([]Record, error)
	Delete(ctx context.Context, partition Partition, key string) error
	Clear(ctx context.Context, partition Partition) error
	// Replace clears the partition and writes records as one unit where the engine allows it
	Replace(ctx context.Context, partition Partition, records []Record) error
	Close() error
}

// GetSingleton returns the record stored under SingletonKey
func GetSingleton(ctx context.Context, s Store, partition Partition) ([]byte, bool, error) {
	return s.Get(ctx, partition, SingletonKey)
}

func storageErr(op string, partition Partition, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrStorage, op, partition, err)
}

func putJSON(ctx context.Context, s Store, partition Partition, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s record %s: %w", partition, key, err)
	}
	return s.Put(ctx, partition, key, data)
}

func getJSON[T any](ctx context.Context, s Store, partition Partition, key string) (T, bool, error) {
	var v T
	data, found, err := s.Get(ctx, partition, key)
	if err != nil || !found {
		return v, found, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, false, fmt.Errorf("failed to decode %s record %s: %w", partition, key, err)
	}
	return v, true, nil
}
