package rules_test

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	appRules "github.com/NeuralTrust/AgeLock/pkg/app/rules"
	"github.com/NeuralTrust/AgeLock/pkg/domain/policy"
	"github.com/NeuralTrust/AgeLock/pkg/engine"
	cacheMocks "github.com/NeuralTrust/AgeLock/pkg/infra/cache/mocks"
	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	storeMocks "github.com/NeuralTrust/AgeLock/pkg/infra/rulestore/mocks"
	domainRules "github.com/NeuralTrust/AgeLock/pkg/rules"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	e, err := engine.New(quietLogger(), domainRules.MustCompile(domainRules.Minimal()), engine.DefaultOptions())
	require.NoError(t, err)
	return e
}

func navigation(url string) policy.RequestDescriptor {
	return policy.RequestDescriptor{URL: url, ResourceType: policy.MainFrame}
}

func TestReloader_MergesStores(t *testing.T) {
	e := newEngine(t)
	first := new(storeMocks.MockStore)
	second := new(storeMocks.MockStore)
	first.On("Load", mock.Anything).Return(rulestore.Supplement{AdDomains: []string{"ads.example"}}, nil)
	second.On("Load", mock.Anything).Return(rulestore.Supplement{MaliciousDomains: []string{"evil.example"}}, nil)

	r := appRules.NewReloader(quietLogger(), domainRules.Minimal(), e, first, second)
	require.False(t, e.Decide(navigation("https://evil.example/"), policy.Adults).Blocked())

	require.NoError(t, r.Reload(context.Background()))

	v := e.Decide(navigation("https://evil.example/"), policy.Adults)
	assert.Equal(t, policy.CategoryMalicious, v.Category)
	v = e.Decide(navigation("https://cdn.ads.example/x"), policy.Adults)
	assert.Equal(t, policy.CategoryAds, v.Category)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
}

func TestReloader_CorruptStoreSkipped(t *testing.T) {
	e := newEngine(t)
	broken := new(storeMocks.MockStore)
	broken.On("Load", mock.Anything).Return(rulestore.Supplement{MaliciousDomains: []string{"evil.example"}}, rulestore.ErrCorruptList)

	r := appRules.NewReloader(quietLogger(), domainRules.Minimal(), e, broken)
	require.NoError(t, r.Reload(context.Background()))
	assert.True(t, e.Decide(navigation("https://evil.example/"), policy.Adults).Blocked())
}

type failingLoader struct{}

func (failingLoader) Load(*domainRules.Registry) error { return errors.New("rejected") }

func TestReloader_LoadErrorReturned(t *testing.T) {
	r := appRules.NewReloader(quietLogger(), domainRules.Minimal(), failingLoader{})
	assert.Error(t, r.Reload(context.Background()))
}

func TestReloader_InvalidBaseKeepsCurrent(t *testing.T) {
	e := newEngine(t)
	base := domainRules.Minimal()
	base.ContentFarms = []string{"("}

	r := appRules.NewReloader(quietLogger(), base, e)
	err := r.Reload(context.Background())
	assert.ErrorIs(t, err, domainRules.ErrInvalidRuleSet)
	assert.Equal(t, "agelock-minimal", e.Registry().Name)
}

type countingLoader struct {
	calls atomic.Int32
	gate  chan struct{}
}

func (l *countingLoader) Load(*domainRules.Registry) error {
	l.calls.Add(1)
	<-l.gate
	return nil
}

func TestReloader_ConcurrentCallsShareOneReload(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	r := appRules.NewReloader(quietLogger(), domainRules.Minimal(), loader)

	var wg sync.WaitGroup
	started := make(chan struct{})
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-started
			assert.NoError(t, r.Reload(context.Background()))
		}()
	}
	close(started)
	require.Eventually(t, func() bool { return loader.calls.Load() > 0 }, time.Second, time.Millisecond)
	close(loader.gate)
	wg.Wait()
	assert.LessOrEqual(t, loader.calls.Load(), int32(5))
	assert.GreaterOrEqual(t, loader.calls.Load(), int32(1))
}

func TestDomainAdder(t *testing.T) {
	e := newEngine(t)
	store := new(storeMocks.MockStore)
	publisher := new(cacheMocks.MockEventPublisher)

	store.On("Add", mock.Anything, rulestore.AdList, "ads.example").Return(true, nil).Once()
	store.On("Load", mock.Anything).Return(rulestore.Supplement{AdDomains: []string{"ads.example"}}, nil)
	publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	reloader := appRules.NewReloader(quietLogger(), domainRules.Minimal(), e, store)
	adder := appRules.NewDomainAdder(quietLogger(), "node-1", store, reloader, publisher)

	added, err := adder.Add(context.Background(), rulestore.AdList, "ads.example")
	require.NoError(t, err)
	assert.True(t, added)
	assert.True(t, e.Decide(navigation("https://ads.example/"), policy.Adults).Blocked())
	publisher.AssertNumberOfCalls(t, "Publish", 1)

	store.On("Add", mock.Anything, rulestore.AdList, "ads.example").Return(false, nil)
	added, err = adder.Add(context.Background(), rulestore.AdList, "ads.example")
	require.NoError(t, err)
	assert.False(t, added)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}
