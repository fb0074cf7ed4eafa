package domain_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdidvp/minimart/internal/adapters/outbound/config"
	"github.com/abdidvp/minimart/internal/adapters/outbound/sampledata"
	"github.com/abdidvp/minimart/internal/domain"
)

func TestConfigLoaderPort(t *testing.T) {
	var loader domain.ConfigLoader = config.New()
	cfg, err := loader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestSampleGeneratorPort(t *testing.T) {
	now := func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }
	var gen domain.SampleGenerator = sampledata.New(sampledata.WithSeed(11), sampledata.WithClock(now))

	products := gen.Generate(50)
	require.Len(t, products, 50)

	keys := map[string]bool{}
	for _, p := range products {
		require.NoError(t, p.Validate())
		assert.False(t, keys[p.Key()], "duplicate code %s", p.Code)
		keys[p.Key()] = true
	}
}
