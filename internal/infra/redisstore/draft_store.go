package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/recruit-scheduler/internal/domain/interview"
)

const draftPrefix = "interview:draft:"

// DraftStore keeps proposal drafts as JSON with a sliding TTL: every Save
// pushes the expiry back.
type DraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDraftStore(client *redis.Client, ttl time.Duration) *DraftStore {
	return &DraftStore{client: client, ttl: ttl}
}

func (s *DraftStore) Save(ctx context.Context, d interview.Draft) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, draftPrefix+d.ID, b, s.ttl).Err()
}

func (s *DraftStore) Get(ctx context.Context, id string) (interview.Draft, error) {
	data, err := s.client.Get(ctx, draftPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return interview.Draft{}, interview.ErrDraftNotFound
	}
	if err != nil {
		return interview.Draft{}, err
	}

	var d interview.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return interview.Draft{}, err
	}
	return d, nil
}

func (s *DraftStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, draftPrefix+id).Err()
}

var _ interview.DraftStore = (*DraftStore)(nil)
