package rulestore_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/NeuralTrust/AgeLock/pkg/infra/rulestore"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0600))
}

func TestFileStore_LoadMissingFiles(t *testing.T) {
	store := rulestore.NewFileStore(quietLogger(), t.TempDir())

	sup, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sup.Len())
}

func TestFileStore_Load(t *testing.T) {
	tests := []struct {
		name      string
		ads       string
		malicious string
		wantAds   []string
		wantMal   []string
		corrupt   bool
	}{
		{
			name:      "valid lists",
			ads:       `["Tracker.Example.com", "*.adnet.example"]`,
			malicious: `["evil.example"]`,
			wantAds:   []string{"tracker.example.com", "adnet.example"},
			wantMal:   []string{"evil.example"},
		},
		{
			name:    "non-string and invalid entries skipped",
			ads:     `["ok.example", 42, null, {"domain": "x"}, "", "ok.example"]`,
			wantAds: []string{"ok.example"},
		},
		{
			name:      "corrupt file skipped, other list kept",
			ads:       `["ads.example",`,
			malicious: `["evil.example"]`,
			wantMal:   []string{"evil.example"},
			corrupt:   true,
		},
		{
			name:    "object instead of array is corrupt",
			ads:     `{"domains": ["ads.example"]}`,
			corrupt: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.ads != "" {
				writeFile(t, dir, rulestore.AdListFile, tt.ads)
			}
			if tt.malicious != "" {
				writeFile(t, dir, rulestore.MaliciousListFile, tt.malicious)
			}
			store := rulestore.NewFileStore(quietLogger(), dir)

			sup, err := store.Load(context.Background())
			if tt.corrupt {
				assert.ErrorIs(t, err, rulestore.ErrCorruptList)
			} else {
				require.NoError(t, err)
			}
			assert.ElementsMatch(t, tt.wantAds, sup.AdDomains)
			assert.ElementsMatch(t, tt.wantMal, sup.MaliciousDomains)
		})
	}
}

func TestFileStore_Add(t *testing.T) {
	dir := t.TempDir()
	store := rulestore.NewFileStore(quietLogger(), dir)
	ctx := context.Background()

	added, err := store.Add(ctx, rulestore.AdList, "Ads.Example.com")
	require.NoError(t, err)
	assert.True(t, added)

	added, err = store.Add(ctx, rulestore.AdList, "ads.example.com")
	require.NoError(t, err)
	assert.False(t, added)

	added, err = store.Add(ctx, rulestore.MaliciousList, "evil.example")
	require.NoError(t, err)
	assert.True(t, added)

	sup, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ads.example.com"}, sup.AdDomains)
	assert.Equal(t, []string{"evil.example"}, sup.MaliciousDomains)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileStore_AddReplacesCorruptList(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, rulestore.AdListFile, `not json`)
	store := rulestore.NewFileStore(quietLogger(), dir)

	added, err := store.Add(context.Background(), rulestore.AdList, "ads.example")
	require.NoError(t, err)
	assert.True(t, added)

	sup, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"ads.example"}, sup.AdDomains)
}

func TestFileStore_AddRejectsInvalid(t *testing.T) {
	store := rulestore.NewFileStore(quietLogger(), t.TempDir())

	_, err := store.Add(context.Background(), rulestore.AdList, "  ")
	assert.ErrorIs(t, err, rulestore.ErrInvalidDomain)

	_, err = store.Add(context.Background(), rulestore.List("cookies"), "ads.example")
	assert.ErrorIs(t, err, rulestore.ErrUnknownList)
}

func TestSupplement_Union(t *testing.T) {
	a := rulestore.Supplement{AdDomains: []string{"a.example", "b.example"}}
	b := rulestore.Supplement{AdDomains: []string{"b.example", "c.example"}, MaliciousDomains: []string{"evil.example"}}

	got := a.Union(b)
	assert.Equal(t, []string{"a.example", "b.example", "c.example"}, got.AdDomains)
	assert.Equal(t, []string{"evil.example"}, got.MaliciousDomains)
	assert.Equal(t, 4, got.Len())
}
