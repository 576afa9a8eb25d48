package slot

import (
	"context"
	"fmt"

	"github.com/MrJamesThe3rd/vipledger/internal/config"
	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

// Open builds the slot selected by cfg.Storage.Driver. The returned close function
// releases any connection the slot holds.
func Open(ctx context.Context, cfg *config.Config) (ledger.Slot, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Storage.Driver {
	case config.DriverFile:
		return NewFile(cfg.Storage.Dir, cfg.Storage.Key), noop, nil
	case config.DriverSQLite:
		s, err := NewSQLite(cfg.Storage.SQLitePath, cfg.Storage.Key)
		if err != nil {
			return nil, noop, fmt.Errorf("open sqlite slot: %w", err)
		}

		return s, s.Close, nil
	case config.DriverPostgres:
		s, err := NewPostgres(cfg.ConnectionString(), cfg.Storage.Key)
		if err != nil {
			return nil, noop, fmt.Errorf("open postgres slot: %w", err)
		}

		return s, s.Close, nil
	case config.DriverRedis:
		s, err := NewRedis(ctx, cfg.Storage.RedisAddr, cfg.Storage.Key)
		if err != nil {
			return nil, noop, fmt.Errorf("open redis slot: %w", err)
		}

		return s, s.Close, nil
	default:
		return nil, noop, fmt.Errorf("%w: unknown storage driver %q", config.ErrInvalidConfig, cfg.Storage.Driver)
	}
}
