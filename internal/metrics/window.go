package metrics

import (
	"slices"
	"sync"
	"time"
)

// Sample is one completed HTTP request.
type Sample struct {
	At       time.Time
	Method   string
	Route    string
	Status   int
	Duration time.Duration
}

// Summary is the rollup of the samples currently held by a RequestWindow.
type Summary struct {
	Capacity          int       `json:"capacity"`
	Count             int       `json:"count"`
	ErrorCount        int       `json:"error_count"`
	ErrorRate         float64   `json:"error_rate"` // percent of samples with status >= 500
	AvgLatencyMs      float64   `json:"avg_latency_ms"`
	P95LatencyMs      float64   `json:"p95_latency_ms"`
	RequestsPerMinute float64   `json:"requests_per_minute"`
	Oldest            time.Time `json:"oldest,omitempty"`
	GeneratedAt       time.Time `json:"generated_at"`
}

// RequestWindow is a fixed-size ring buffer of recent requests.
// Once full, each new sample overwrites the oldest one.
type RequestWindow struct {
	mu   sync.Mutex
	buf  []Sample
	next int
	full bool
	now  func() time.Time
}

// NewRequestWindow returns a window holding up to capacity samples.
// now defaults to time.Now when nil.
func NewRequestWindow(capacity int, now func() time.Time) *RequestWindow {
	if capacity < 1 {
		capacity = 1
	}
	if now == nil {
		now = time.Now
	}
	return &RequestWindow{buf: make([]Sample, capacity), now: now}
}

// Record adds a sample. A zero At is stamped with the window's clock.
func (w *RequestWindow) Record(s Sample) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if s.At.IsZero() {
		s.At = w.now()
	}
	w.buf[w.next] = s
	w.next = (w.next + 1) % len(w.buf)
	if w.next == 0 {
		w.full = true
	}
}

// Samples returns the held samples, oldest first.
func (w *RequestWindow) Samples() []Sample {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.samplesLocked()
}

func (w *RequestWindow) samplesLocked() []Sample {
	if !w.full {
		return slices.Clone(w.buf[:w.next])
	}
	out := make([]Sample, 0, len(w.buf))
	out = append(out, w.buf[w.next:]...)
	return append(out, w.buf[:w.next]...)
}

// Summary computes latency and error statistics over the held samples.
func (w *RequestWindow) Summary() Summary {
	w.mu.Lock()
	samples := w.samplesLocked()
	now := w.now()
	capacity := len(w.buf)
	w.mu.Unlock()

	sum := Summary{Capacity: capacity, Count: len(samples), GeneratedAt: now}
	if len(samples) == 0 {
		return sum
	}

	durations := make([]time.Duration, len(samples))
	var total time.Duration
	for i, s := range samples {
		durations[i] = s.Duration
		total += s.Duration
		if s.Status >= 500 {
			sum.ErrorCount++
		}
	}
	slices.Sort(durations)

	sum.ErrorRate = float64(sum.ErrorCount) / float64(len(samples)) * 100
	sum.AvgLatencyMs = ms(total) / float64(len(samples))
	sum.P95LatencyMs = ms(durations[percentileIndex(len(durations), 0.95)])
	sum.Oldest = samples[0].At

	if span := now.Sub(sum.Oldest); span > 0 {
		sum.RequestsPerMinute = float64(len(samples)) / span.Minutes()
	}
	return sum
}

// percentileIndex uses the nearest-rank method.
func percentileIndex(n int, p float64) int {
	idx := int(float64(n)*p+0.999999) - 1
	return max(0, min(idx, n-1))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
