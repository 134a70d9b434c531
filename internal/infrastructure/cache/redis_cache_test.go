package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	Period string `json:"period"`
	Sales  string `json:"sales"`
}

func TestGet_MissDevuelveFalse(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisSummaryCache(db, time.Minute)

	mock.ExpectGet("dashboard:summary:mes:2026-03-01:5").RedisNil()

	var dst summary
	ok, err := c.Get(context.Background(), "dashboard:summary:mes:2026-03-01:5", &dst)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetYGet(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisSummaryCache(db, 30*time.Second)
	ctx := context.Background()
	key := "dashboard:summary:dia:2026-03-15:5"
	payload := []byte(`{"period":"dia","sales":"27"}`)

	mock.ExpectSet(key, payload, 30*time.Second).SetVal("OK")
	mock.ExpectGet(key).SetVal(string(payload))

	require.NoError(t, c.Set(ctx, key, summary{Period: "dia", Sales: "27"}))
	var dst summary
	ok, err := c.Get(ctx, key, &dst)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "27", dst.Sales)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_RecorreTodasLasPaginas(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisSummaryCache(db, 0)

	mock.ExpectScan(0, keyPattern, 100).SetVal([]string{"dashboard:summary:a", "dashboard:summary:b"}, 7)
	mock.ExpectDel("dashboard:summary:a", "dashboard:summary:b").SetVal(2)
	mock.ExpectScan(7, keyPattern, 100).SetVal([]string{}, 0)

	require.NoError(t, c.Invalidate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidate_PropagaError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := NewRedisSummaryCache(db, 0)
	mock.ExpectScan(0, keyPattern, 100).SetErr(errors.New("conexión rechazada"))

	assert.Error(t, c.Invalidate(context.Background()))
}
