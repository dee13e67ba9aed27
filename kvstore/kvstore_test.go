package kvstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/kvstore"
)

// mapCommands keeps values in memory.
type mapCommands map[string]string

func (m mapCommands) Get(_ context.Context, key string) *redis.StringCmd {
	val, ok := m[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}

	return redis.NewStringResult(val, nil)
}

func (m mapCommands) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

func (m mapCommands) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m[k]; ok {
			delete(m, k)
			n++
		}
	}

	return redis.NewIntResult(n, nil)
}

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestConn(t *testing.T) {
	// Arrange
	ctx := context.Background()
	var released int
	cn := kvstore.NewConn(mapCommands{}, func() error { released++; return nil })

	// Act
	err := cn.SetJSON(ctx, "doc:1", doc{Name: "first", Count: 3}, time.Minute)
	require.Nil(t, err)

	actual := new(doc)
	err = cn.GetJSON(ctx, "doc:1", actual)

	// Assert
	require.Nil(t, err)
	require.Equal(t, &doc{Name: "first", Count: 3}, actual)

	n, err := cn.Del(ctx, "doc:1", "doc:2")
	require.Nil(t, err)
	require.Equal(t, int64(1), n)

	err = cn.GetJSON(ctx, "doc:1", actual)
	require.ErrorIs(t, err, kvstore.ErrNotFound)

	require.Nil(t, cn.Release())
	require.Nil(t, cn.Release())
	require.Equal(t, 1, released)
	require.True(t, cn.Released())

	err = cn.SetJSON(ctx, "doc:1", doc{}, 0)
	require.ErrorIs(t, err, kvstore.ErrReleased)
}

func TestConnGetJSONGarbled(t *testing.T) {
	// Arrange
	cn := kvstore.NewConn(mapCommands{"doc:1": `{"name":`}, nil)

	// Act
	err := cn.GetJSON(context.Background(), "doc:1", new(doc))

	// Assert
	require.NotNil(t, err)
	require.NotErrorIs(t, err, kvstore.ErrNotFound)
}

func TestOpen(t *testing.T) {
	tcs := []struct {
		name     string
		cfg      kvstore.Config
		addr     string
		db       int
		hasError bool
	}{
		{"Addr", kvstore.Config{Addr: "localhost:6379", DB: 1}, "localhost:6379", 1, false},
		{"URL", kvstore.Config{URL: "redis://:secret@cache:6380/2", Addr: "ignored:1"}, "cache:6380", 2, false},
		{"Bad-URL", kvstore.Config{URL: "http://cache"}, "", 0, true},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			s, err := kvstore.Open(tc.cfg)

			// Assert
			if tc.hasError {
				require.ErrorIs(t, err, kvstore.ErrConnection)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.addr, s.Client().Options().Addr)
			require.Equal(t, tc.db, s.Client().Options().DB)
			require.Nil(t, s.Close())
		})
	}
}
