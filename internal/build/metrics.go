package build

import (
	"sync"
	"time"
)

// StageTiming is the duration of one pipeline stage.
type StageTiming struct {
	Stage    string        `json:"stage"`
	Duration time.Duration `json:"duration"`
}

// Metrics tracks how long each pipeline stage took
type Metrics struct {
	stages        []StageTiming
	TotalDuration time.Duration
	mutex         sync.RWMutex
}

// NewMetrics creates a new metrics tracker
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordStage records a completed stage
func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stages = append(m.stages, StageTiming{Stage: stage, Duration: duration})
	m.TotalDuration += duration
}

// Track starts timing a stage and returns the function that records it
func (m *Metrics) Track(stage string) func() {
	start := time.Now()
	return func() {
		m.RecordStage(stage, time.Since(start))
	}
}

// Stages returns the recorded stages in completion order
func (m *Metrics) Stages() []StageTiming {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	stages := make([]StageTiming, len(m.stages))
	copy(stages, m.stages)
	return stages
}

// Total returns the summed duration of all recorded stages
func (m *Metrics) Total() time.Duration {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.TotalDuration
}

// Reset resets all metrics
func (m *Metrics) Reset() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.stages = nil
	m.TotalDuration = 0
}
