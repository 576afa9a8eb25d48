package ledger

import "context"

// DefaultKey is the key the data set is stored under.
const DefaultKey = "vip_financial_data"

//go:generate mockgen -source=slot.go -destination=slot_mock.go -package=ledger
type Slot interface {
	// Read returns the stored document, or ErrSlotEmpty when nothing was written yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored document.
	Write(ctx context.Context, payload []byte) error
}
