package rulestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/valyala/fastjson"
)

const (
	AdListFile        = "user-ad-blocklist.json"
	MaliciousListFile = "user-malicious-sites.json"
)

// FileStore keeps each list as a JSON array of domain strings in dir.
type FileStore struct {
	logger *logrus.Logger
	dir    string
	mu     sync.Mutex
}

func NewFileStore(logger *logrus.Logger, dir string) *FileStore {
	return &FileStore{logger: logger, dir: filepath.Clean(dir)}
}

func (s *FileStore) path(list List) (string, error) {
	switch list {
	case AdList:
		return filepath.Join(s.dir, AdListFile), nil
	case MaliciousList:
		return filepath.Join(s.dir, MaliciousListFile), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, list)
}

func (s *FileStore) Load(_ context.Context) (Supplement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sup Supplement
	var errs []error
	ads, err := s.read(AdList)
	if err != nil {
		errs = append(errs, err)
	}
	sup.AdDomains = ads
	malicious, err := s.read(MaliciousList)
	if err != nil {
		errs = append(errs, err)
	}
	sup.MaliciousDomains = malicious
	return sup, errors.Join(errs...)
}

// read returns nil for a missing file. Entries that are not strings or not
// valid domain patterns are skipped.
func (s *FileStore) read(list List) ([]string, error) {
	path, err := s.path(list)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) // #nosec G304
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	domains, skipped, err := parseList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if skipped > 0 {
		s.logger.WithFields(logrus.Fields{
			"file":    path,
			"skipped": skipped,
		}).Warn("skipped invalid entries in supplementary rule list")
	}
	return domains, nil
}

func parseList(data []byte) ([]string, int, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, 0, nil
	}
	v, err := fastjson.ParseBytes(data)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptList, err)
	}
	items, err := v.Array()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: want a JSON array of strings", ErrCorruptList)
	}
	out := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	skipped := 0
	for _, item := range items {
		b, err := item.StringBytes()
		if err != nil {
			skipped++
			continue
		}
		d, err := canonical(string(b))
		if err != nil {
			skipped++
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out, skipped, nil
}

// Add appends domain to the list file. A corrupt file is replaced rather
// than extended.
func (s *FileStore) Add(_ context.Context, list List, domain string) (bool, error) {
	d, err := canonical(domain)
	if err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.read(list)
	if err != nil {
		if !errors.Is(err, ErrCorruptList) {
			return false, err
		}
		s.logger.WithError(err).Warn("replacing corrupt supplementary rule list")
		current = nil
	}
	for _, existing := range current {
		if existing == d {
			return false, nil
		}
	}
	if err := s.write(list, append(current, d)); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) write(list List, domains []string) error {
	path, err := s.path(list)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0750); err != nil {
		return fmt.Errorf("create rules dir: %w", err)
	}
	data, err := json.MarshalIndent(domains, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
