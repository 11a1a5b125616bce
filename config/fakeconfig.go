package config

import (
	"github.com/bpineau/dirpush/pkg/log"
	"github.com/bpineau/dirpush/pkg/remote"
)

// FakeConfig returns a dry-run configuration publishing dir, for unit tests
func FakeConfig(dir string) *DpConfig {
	logger, _ := log.New("debug", "", "test")

	return &DpConfig{
		DryRun:   true,
		Logger:   logger,
		LocalDir: dir,
		Remote:   remote.FromURL("https://example.test/repo.git"),
	}
}
