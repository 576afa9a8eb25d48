package render

import (
	"encoding/json"
	"fmt"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

// Amount accepts a JSON number or a string such as "1,250.50".
type Amount float64

func (a *Amount) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := ledger.ParseAmount(s)
		if err != nil {
			return err
		}

		*a = Amount(v)

		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("amount: %w", ledger.ErrInvalidAmount)
	}

	if v < 0 {
		return ledger.ErrInvalidAmount
	}

	*a = Amount(v)

	return nil
}

// Ptr converts an optional request amount into an optional patch value.
func (a *Amount) Ptr() *float64 {
	if a == nil {
		return nil
	}

	return new(float64(*a))
}
