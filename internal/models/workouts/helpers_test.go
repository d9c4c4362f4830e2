package models

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	user "github.com/mnuddindev/routinely/internal/models/user"
	"github.com/mnuddindev/routinely/internal/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testutil.NewDB(t, append([]interface{}{&user.User{}}, Models()...)...)
}

func newUser(t *testing.T, db *gorm.DB, username string) uuid.UUID {
	t.Helper()
	u, err := user.NewUser(context.Background(), db, username, username+"@example.com", "hash")
	require.NoError(t, err)
	return u.ID
}

func newRoutine(t *testing.T, db *gorm.DB, owner uuid.UUID, title, tags string) *Routine {
	t.Helper()
	r, err := CreateRoutine(context.Background(), nil, db, owner, RoutineInput{
		Title:   title,
		Text:    "Squat, bench and row for five sets of five.",
		TagList: tags,
	})
	require.NoError(t, err)
	return r
}

func tagTexts(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Text
	}
	return out
}

// memoryCache is an in-process Cache used to observe listing cache traffic.
// Values go through JSON like they do in Redis.
type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
	gens   map[string]int64
	hits   int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, gens: map[string]int64{}}
}

func (m *memoryCache) Fetch(_ context.Context, key string, dst interface{}) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.values[key]
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false
	}
	m.hits++
	return true
}

func (m *memoryCache) Store(_ context.Context, key string, value interface{}, _ time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = data
}

func (m *memoryCache) Generation(_ context.Context, key string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gens[key]
}

func (m *memoryCache) Bump(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gens[key]++
}
