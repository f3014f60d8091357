package levelgen

import "github.com/automoto/skyclimb/shared/leveldata"

// Recorder receives generation events for metrics.
type Recorder interface {
	SlotGenerated(t leveldata.SlotType)
	SlotsCleaned(n int)
	CapHit()
	DriftCorrected()
	PoolExhausted(kind leveldata.PlacementKind)
	PlacementRejected()
	FallbackUsed()
	ActiveSlots(n int)
}

// NopRecorder discards every event.
type NopRecorder struct{}

func (NopRecorder) SlotGenerated(leveldata.SlotType)      {}
func (NopRecorder) SlotsCleaned(int)                      {}
func (NopRecorder) CapHit()                               {}
func (NopRecorder) DriftCorrected()                       {}
func (NopRecorder) PoolExhausted(leveldata.PlacementKind) {}
func (NopRecorder) PlacementRejected()                    {}
func (NopRecorder) FallbackUsed()                         {}
func (NopRecorder) ActiveSlots(int)                       {}
