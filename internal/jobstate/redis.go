package jobstate

import (
	"context"
	"sort"
	"strconv"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "jobstate:"

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func savedKey(userID uint) string {
	return keyPrefix + "saved:" + strconv.FormatUint(uint64(userID), 10)
}

func searchesKey(userID uint) string {
	return keyPrefix + "searches:" + strconv.FormatUint(uint64(userID), 10)
}

func countsKey(userID uint) string {
	return keyPrefix + "counts:" + strconv.FormatUint(uint64(userID), 10)
}

// ====================================================
// Saved jobs (SET)
// ====================================================

func (s *RedisStore) SavedJobs(ctx context.Context, userID uint) ([]string, error) {
	ids, err := s.client.SMembers(ctx, savedKey(userID)).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (s *RedisStore) InitSavedJobs(ctx context.Context, userID uint, jobIDs []string) error {
	members := make([]interface{}, 0, len(jobIDs))
	for _, id := range jobIDs {
		if id != "" {
			members = append(members, id)
		}
	}

	key := savedKey(userID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, key)
		if len(members) > 0 {
			p.SAdd(ctx, key, members...)
		}
		return nil
	})
	return err
}

func (s *RedisStore) SaveJob(ctx context.Context, userID uint, jobID string) error {
	return s.client.SAdd(ctx, savedKey(userID), jobID).Err()
}

func (s *RedisStore) UnsaveJob(ctx context.Context, userID uint, jobID string) error {
	return s.client.SRem(ctx, savedKey(userID), jobID).Err()
}

func (s *RedisStore) ResetSavedJobs(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, savedKey(userID)).Err()
}

// ====================================================
// Recent searches (LIST, head is most recent)
// ====================================================

func (s *RedisStore) RecentSearches(ctx context.Context, userID uint) ([]string, error) {
	return s.client.LRange(ctx, searchesKey(userID), 0, MaxRecentSearches-1).Result()
}

func (s *RedisStore) PushSearch(ctx context.Context, userID uint, query string) error {
	q := normalizeQuery(query)
	if q == "" {
		return nil
	}

	key := searchesKey(userID)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.LRem(ctx, key, 0, q)
		p.LPush(ctx, key, q)
		p.LTrim(ctx, key, 0, MaxRecentSearches-1)
		return nil
	})
	return err
}

func (s *RedisStore) ClearSearches(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, searchesKey(userID)).Err()
}

// ====================================================
// Tab counts (HASH)
// ====================================================

func (s *RedisStore) TabCounts(ctx context.Context, userID uint) (TabCounts, error) {
	vals, err := s.client.HGetAll(ctx, countsKey(userID)).Result()
	if err != nil {
		return TabCounts{}, err
	}

	var c TabCounts
	c.Saved, _ = strconv.Atoi(vals["saved"])
	c.Archived, _ = strconv.Atoi(vals["archived"])
	c.Applied, _ = strconv.Atoi(vals["applied"])
	return c, nil
}

func (s *RedisStore) SetTabCounts(ctx context.Context, userID uint, c TabCounts) error {
	return s.client.HSet(ctx, countsKey(userID),
		"saved", c.Saved,
		"archived", c.Archived,
		"applied", c.Applied,
	).Err()
}

func (s *RedisStore) ResetTabCounts(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, countsKey(userID)).Err()
}

var _ Store = (*RedisStore)(nil)
