package metrics

import (
	"sort"
	"sync"
	"time"

	"futures-testnet-bot/internal/logger"
)

// Tracker counts order outcomes and gateway latency for one session.
type Tracker struct {
	mu sync.Mutex

	MinTime    time.Duration
	MaxTime    time.Duration
	TotalTime  time.Duration
	CallCount  int64
	Accepted   int64
	Rejections map[string]int64
	StartTime  time.Time
}

type Summary struct {
	Accepted   int64
	Rejected   int64
	Rejections map[string]int64
	Calls      int64
	Min        time.Duration
	Max        time.Duration
	Avg        time.Duration
	Uptime     time.Duration
}

func NewTracker() *Tracker {
	return &Tracker{
		MinTime:    time.Duration(1<<63 - 1), // Max duration
		Rejections: make(map[string]int64),
		StartTime:  time.Now(),
	}
}

// TrackCall records the duration of one gateway round trip.
// A nil Tracker records nothing.
func (t *Tracker) TrackCall(duration time.Duration) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.CallCount++
	t.TotalTime += duration
	if duration < t.MinTime {
		t.MinTime = duration
	}
	if duration > t.MaxTime {
		t.MaxTime = duration
	}
}

// TrackOutcome records one finished order attempt. An empty reason means accepted.
func (t *Tracker) TrackOutcome(reason string) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if reason == "" {
		t.Accepted++
		return
	}
	t.Rejections[reason]++
}

func (t *Tracker) Summary() Summary {
	if t == nil {
		return Summary{Rejections: map[string]int64{}}
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Summary{
		Accepted:   t.Accepted,
		Rejections: make(map[string]int64, len(t.Rejections)),
		Calls:      t.CallCount,
		Max:        t.MaxTime,
		Uptime:     time.Since(t.StartTime),
	}
	for reason, n := range t.Rejections {
		s.Rejections[reason] = n
		s.Rejected += n
	}
	if t.CallCount > 0 {
		s.Min = t.MinTime
		s.Avg = t.TotalTime / time.Duration(t.CallCount)
	}
	return s
}

func (t *Tracker) LogSummary() {
	s := t.Summary()

	args := []any{
		"accepted", s.Accepted,
		"rejected", s.Rejected,
		"gateway_calls", s.Calls,
		"min_ms", s.Min.Milliseconds(),
		"max_ms", s.Max.Milliseconds(),
		"avg_ms", s.Avg.Milliseconds(),
		"uptime", s.Uptime.Round(time.Second).String(),
	}

	reasons := make([]string, 0, len(s.Rejections))
	for reason := range s.Rejections {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		args = append(args, "rejected_"+reason, s.Rejections[reason])
	}

	logger.Info("Session Metrics", args...)
}
