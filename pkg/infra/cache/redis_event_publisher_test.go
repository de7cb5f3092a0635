package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/NeuralTrust/AgeLock/pkg/infra/cache"
	"github.com/NeuralTrust/AgeLock/pkg/infra/cache/event"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisEventPublisher_Publish(t *testing.T) {
	db, mock := redismock.NewClientMock()
	pub := cache.NewRedisEventPublisher(cache.NewFromRedis(db), cache.EventsChannel)

	payload := []byte(`{"type":"ProfileChangedEvent","event":{"origin":"node-1","profile":"teenagers"}}`)
	mock.ExpectPublish(string(cache.EventsChannel), payload).SetVal(1)

	err := pub.Publish(context.Background(), event.ProfileChangedEvent{Origin: "node-1", Profile: "teenagers"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisEventPublisher_PublishError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	pub := cache.NewRedisEventPublisher(cache.NewFromRedis(db), cache.EventsChannel)

	payload := []byte(`{"type":"ReloadRulesEvent","event":{"origin":"node-1","reason":"ad_domain_added"}}`)
	mock.ExpectPublish(string(cache.EventsChannel), payload).SetErr(errors.New("down"))

	err := pub.Publish(context.Background(), event.ReloadRulesEvent{Origin: "node-1", Reason: "ad_domain_added"})
	assert.Error(t, err)
}

func TestClient_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	c := cache.NewFromRedis(db)

	mock.ExpectGet(cache.ProfileKey).RedisNil()
	_, ok, err := c.Get(context.Background(), cache.ProfileKey)
	require.NoError(t, err)
	assert.False(t, ok)

	mock.ExpectSet(cache.ProfileKey, "adults", time.Duration(0)).SetVal("OK")
	require.NoError(t, c.Set(context.Background(), cache.ProfileKey, "adults", 0))

	mock.ExpectGet(cache.ProfileKey).SetVal("adults")
	v, ok, err := c.Get(context.Background(), cache.ProfileKey)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "adults", v)
	assert.NoError(t, mock.ExpectationsWereMet())
}
