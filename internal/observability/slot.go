package observability

import (
	"context"
	"errors"
	"time"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

type instrumentedSlot struct {
	next    ledger.Slot
	metrics *Metrics
}

// InstrumentSlot wraps s so every read and write is counted and timed.
func InstrumentSlot(s ledger.Slot, m *Metrics) ledger.Slot {
	if m == nil {
		return s
	}

	return &instrumentedSlot{next: s, metrics: m}
}

func (s *instrumentedSlot) Read(ctx context.Context) ([]byte, error) {
	start := time.Now()
	b, err := s.next.Read(ctx)
	s.observe("read", start, len(b), err)

	return b, err
}

func (s *instrumentedSlot) Write(ctx context.Context, payload []byte) error {
	start := time.Now()
	err := s.next.Write(ctx, payload)
	s.observe("write", start, len(payload), err)

	return err
}

func (s *instrumentedSlot) observe(op string, start time.Time, size int, err error) {
	result := "ok"

	switch {
	case errors.Is(err, ledger.ErrSlotEmpty):
		result = "empty"
	case err != nil:
		result = "error"
	default:
		s.metrics.slotBytes.Set(float64(size))
	}

	s.metrics.slotOps.WithLabelValues(op, result).Inc()
	s.metrics.slotDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}
