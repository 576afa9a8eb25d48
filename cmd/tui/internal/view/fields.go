package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/vipledger/internal/ledger"
)

func amountInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("0").
		Value(value).
		Validate(func(s string) error {
			_, err := ledger.ParseAmount(s)
			return err
		})
}

// optionalAmountInput accepts a blank value, meaning "not set".
func optionalAmountInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}

			_, err := ledger.ParseAmount(s)

			return err
		})
}

func dateInput(title string, value *string, optional bool) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(ledger.DisplayDateLayout).
		Value(value).
		Validate(func(s string) error {
			if optional && strings.TrimSpace(s) == "" {
				return nil
			}

			_, err := ledger.ParseDate(s)

			return err
		})
}

func requiredInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Value(value).
		Validate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("%s cannot be empty", strings.ToLower(title))
			}

			return nil
		})
}

func newForm(fields ...huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(fields...)).WithWidth(48).WithShowHelp(false)
}

// parsed collects the first parse error across a form's text fields.
type parsed struct {
	err error
}

func (p *parsed) amount(s string) float64 {
	v, err := ledger.ParseAmount(s)
	p.err = errors.Join(p.err, err)

	return v
}

func (p *parsed) date(s string) ledger.Date {
	if strings.TrimSpace(s) == "" {
		return ledger.Date{}
	}

	d, err := ledger.ParseDate(s)
	p.err = errors.Join(p.err, err)

	return d
}

func plainAmount(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
