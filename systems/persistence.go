package systems

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/quasilyte/gdata"
)

const progressKey = "progress"

// ItemStore is the subset of gdata.Manager used for persistence.
type ItemStore interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

// SavedProgress is the climb history stored on disk
type SavedProgress struct {
	LastSeed   int64   `json:"lastSeed"`
	BestHeight float64 `json:"bestHeight"`
	BestTier   string  `json:"bestTier"`
	BestSeed   int64   `json:"bestSeed"`
	Runs       int     `json:"runs"`
}

// Persistence loads and saves climb progress. A nil store makes every
// operation a no-op.
type Persistence struct {
	store ItemStore
}

// InitPersistence opens the gdata store for appName. On error the returned
// Persistence is still usable and saves nothing.
func InitPersistence(appName string) (*Persistence, error) {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return &Persistence{}, fmt.Errorf("open store: %w", err)
	}
	return NewPersistence(m), nil
}

func NewPersistence(store ItemStore) *Persistence {
	return &Persistence{store: store}
}

// LoadProgress returns the saved progress, or nil when nothing was saved.
func (p *Persistence) LoadProgress() (*SavedProgress, error) {
	if p == nil || p.store == nil {
		return nil, nil
	}

	data, err := p.store.LoadItem(progressKey)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var progress SavedProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, fmt.Errorf("parse progress: %w", err)
	}
	return &progress, nil
}

func (p *Persistence) SaveProgress(progress *SavedProgress) error {
	if p == nil || p.store == nil || progress == nil {
		return nil
	}

	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("serialize progress: %w", err)
	}
	if err := p.store.SaveItem(progressKey, data); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

// RecordRun folds a finished run into the saved progress and returns the
// updated record. Progress that cannot be read is replaced.
func (p *Persistence) RecordRun(seed int64, height float64, tier string) (*SavedProgress, error) {
	progress, err := p.LoadProgress()
	if err != nil {
		log.Printf("Warning: Discarding saved progress: %v", err)
	}
	if progress == nil {
		progress = &SavedProgress{}
	}

	progress.LastSeed = seed
	progress.Runs++
	if height > progress.BestHeight {
		progress.BestHeight = height
		progress.BestTier = tier
		progress.BestSeed = seed
	}
	return progress, p.SaveProgress(progress)
}

// ClearProgress removes any saved progress
func (p *Persistence) ClearProgress() error {
	if p == nil || p.store == nil {
		return nil
	}
	if err := p.store.SaveItem(progressKey, nil); err != nil {
		return fmt.Errorf("clear progress: %w", err)
	}
	return nil
}
