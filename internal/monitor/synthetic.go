package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/vitalsync/vitalsync-api/internal/models"
	"github.com/vitalsync/vitalsync-api/internal/simulator"
)

// SyntheticSource drives the mock generator on a timer. Each subscription
// gets its own ticker, so cancelling one consumer never starves another.
type SyntheticSource struct {
	mu           sync.Mutex // guards gen, which is not safe for concurrent use
	gen          *simulator.Generator
	interval     time.Duration
	biasAbnormal bool
}

func NewSyntheticSource(gen *simulator.Generator, interval time.Duration, biasAbnormal bool) *SyntheticSource {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	return &SyntheticSource{
		gen:          gen,
		interval:     interval,
		biasAbnormal: biasAbnormal,
	}
}

func (s *SyntheticSource) ProduceReading(_ context.Context) (models.VitalReading, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen.Reading(s.biasAbnormal), nil
}

func (s *SyntheticSource) Subscribe(fn func(models.VitalReading)) (func(), error) {
	ticker := time.NewTicker(s.interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				reading, _ := s.ProduceReading(context.Background())
				fn(reading)
			}
		}
	}()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
	return cancel, nil
}
