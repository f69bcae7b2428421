package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tripcraft/models"
)

// ErrNoSession is the navigation guard: reading a stage slot that was never
// written sends the caller back to the search stage.
var ErrNoSession = errors.New("no planning session")

const (
	sessionTTL = time.Hour
	lockTTL    = 10 * time.Second
)

// Store holds the hand-off state between pipeline stages: one slot per
// session for the search results and one for the generated itinerary, plus
// the save lock. Slots expire on their own; there is no explicit teardown.
type Store interface {
	SetSearchData(ctx context.Context, sessionID string, data *models.SearchSession) error
	SearchData(ctx context.Context, sessionID string) (*models.SearchSession, error)
	SetItineraryData(ctx context.Context, sessionID string, data *models.ItineraryData) error
	ItineraryData(ctx context.Context, sessionID string) (*models.ItineraryData, error)
	AcquireSaveLock(ctx context.Context, sessionID string) (bool, error)
	ReleaseSaveLock(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	conn *redis.Client
}

func NewRedisStore(conn *redis.Client) *RedisStore {
	return &RedisStore{conn: conn}
}

func searchKey(sessionID string) string    { return fmt.Sprintf("plan:%s:searchData", sessionID) }
func itineraryKey(sessionID string) string { return fmt.Sprintf("plan:%s:itineraryData", sessionID) }
func lockKey(sessionID string) string      { return fmt.Sprintf("plan:%s:saving", sessionID) }

func (s *RedisStore) setJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.conn.Set(ctx, key, data, sessionTTL).Err()
}

func (s *RedisStore) getJSON(ctx context.Context, key string, out any) error {
	data, err := s.conn.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrNoSession
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (s *RedisStore) SetSearchData(ctx context.Context, sessionID string, data *models.SearchSession) error {
	return s.setJSON(ctx, searchKey(sessionID), data)
}

func (s *RedisStore) SearchData(ctx context.Context, sessionID string) (*models.SearchSession, error) {
	var sess models.SearchSession
	if err := s.getJSON(ctx, searchKey(sessionID), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisStore) SetItineraryData(ctx context.Context, sessionID string, data *models.ItineraryData) error {
	return s.setJSON(ctx, itineraryKey(sessionID), data)
}

func (s *RedisStore) ItineraryData(ctx context.Context, sessionID string) (*models.ItineraryData, error) {
	var data models.ItineraryData
	if err := s.getJSON(ctx, itineraryKey(sessionID), &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *RedisStore) AcquireSaveLock(ctx context.Context, sessionID string) (bool, error) {
	return s.conn.SetNX(ctx, lockKey(sessionID), "1", lockTTL).Result()
}

func (s *RedisStore) ReleaseSaveLock(ctx context.Context, sessionID string) error {
	return s.conn.Del(ctx, lockKey(sessionID)).Err()
}
