package repository

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each partition in one Redis hash
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a store over a connected client. Hash keys are prefix + partition.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) hashKey(partition Partition) string {
	return s.prefix + string(partition)
}

func (s *RedisStore) Put(ctx context.Context, partition Partition, key string, value []byte) error {
	if err := s.client.HSet(ctx, s.hashKey(partition), key, value).Err(); err != nil {
		return storageErr("put", partition, err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, partition Partition, key string) ([]byte, bool, error) {
	value, err := s.client.HGet(ctx, s.hashKey(partition), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, storageErr("get", partition, err)
	}
	return value, true, nil
}

func (s *RedisStore) GetAll(ctx context.Context, partition Partition) ([]Record, error) {
	values, err := s.client.HGetAll(ctx, s.hashKey(partition)).Result()
	if err != nil {
		return nil, storageErr("get all", partition, err)
	}
	records := make([]Record, 0, len(values))
	for key, value := range values {
		records = append(records, Record{Key: key, Value: []byte(value)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func (s *RedisStore) Delete(ctx context.Context, partition Partition, key string) error {
	if err := s.client.HDel(ctx, s.hashKey(partition), key).Err(); err != nil {
		return storageErr("delete", partition, err)
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, partition Partition) error {
	if err := s.client.Del(ctx, s.hashKey(partition)).Err(); err != nil {
		return storageErr("clear", partition, err)
	}
	return nil
}

func (s *RedisStore) Replace(ctx context.Context, partition Partition, records []Record) error {
	hashKey := s.hashKey(partition)
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, hashKey)
		if len(records) == 0 {
			return nil
		}
		fields := make([]interface{}, 0, len(records)*2)
		for _, r := range records {
			fields = append(fields, r.Key, r.Value)
		}
		pipe.HSet(ctx, hashKey, fields...)
		return nil
	})
	if err != nil {
		return storageErr("replace", partition, err)
	}
	return nil
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}
