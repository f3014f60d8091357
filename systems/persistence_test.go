package systems

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	items   map[string][]byte
	loadErr error
}

func newMemStore() *memStore { return &memStore{items: map[string][]byte{}} }

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	m.items[key] = data
	return nil
}

func TestRecordRunKeepsTheBest(t *testing.T) {
	p := NewPersistence(newMemStore())

	progress, err := p.LoadProgress()
	require.NoError(t, err)
	assert.Nil(t, progress)

	_, err = p.RecordRun(11, 4200, "Cliffs")
	require.NoError(t, err)
	_, err = p.RecordRun(12, 900, "Foothills")
	require.NoError(t, err)

	progress, err = p.LoadProgress()
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, SavedProgress{
		LastSeed:   12,
		BestHeight: 4200,
		BestTier:   "Cliffs",
		BestSeed:   11,
		Runs:       2,
	}, *progress)

	require.NoError(t, p.ClearProgress())
	progress, err = p.LoadProgress()
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestPersistenceToleratesBadData(t *testing.T) {
	store := newMemStore()
	p := NewPersistence(store)

	store.items[progressKey] = []byte("{not json")
	_, err := p.LoadProgress()
	assert.Error(t, err)

	progress, err := p.RecordRun(5, 100, "Foothills")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Runs)

	diskGone := errors.New("disk gone")
	store.loadErr = diskGone
	progress, err = p.LoadProgress()
	assert.ErrorIs(t, err, diskGone)
	assert.Nil(t, progress)

	progress, err = p.RecordRun(6, 50, "Foothills")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Runs)
}

func TestNilPersistenceIsANoop(t *testing.T) {
	var p *Persistence
	progress, err := p.LoadProgress()
	assert.NoError(t, err)
	assert.Nil(t, progress)
	assert.NoError(t, p.SaveProgress(&SavedProgress{Runs: 1}))
	assert.NoError(t, p.ClearProgress())

	progress, err = NewPersistence(nil).RecordRun(1, 10, "Foothills")
	assert.NoError(t, err)
	assert.Equal(t, 10.0, progress.BestHeight)
}
