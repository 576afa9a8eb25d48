// Package sheet reads spreadsheet CSV exports whose header row may be preceded by
// free-form metadata lines and whose columns may appear in any order.
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

type Column string

const (
	ColDate        Column = "date"
	ColAmount      Column = "amount"
	ColDescription Column = "description"
	ColCategory    Column = "category"
	ColName        Column = "name"
	ColPaymentType Column = "paymentType"
)

// headerAliases lists the header captions recognised for each column, English and Hebrew.
var headerAliases = map[string]Column{
	"date":         ColDate,
	"תאריך":        ColDate,
	"amount":       ColAmount,
	"sum":          ColAmount,
	"סכום":         ColAmount,
	"description":  ColDescription,
	"details":      ColDescription,
	"תיאור":        ColDescription,
	"category":     ColCategory,
	"קטגוריה":      ColCategory,
	"name":         ColName,
	"שם":           ColName,
	"payment type": ColPaymentType,
	"paymenttype":  ColPaymentType,
	"payment":      ColPaymentType,
	"אמצעי תשלום":  ColPaymentType,
}

// Row is one data row keyed by column. Line is the 1-based line in the source file.
type Row struct {
	Line   int
	Values map[Column]string
}

func (r Row) Get(c Column) string {
	return r.Values[c]
}

type Parser struct {
	required []Column
}

// New returns a parser that treats the first row containing every required column
// caption as the header.
func New(required ...Column) *Parser {
	return &Parser{required: required}
}

func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = sniffDelimiter(raw)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		rows    []Row
		columns map[int]Column
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		line, _ := reader.FieldPos(0)

		if columns == nil {
			columns = p.matchHeader(record)
			continue
		}

		row := Row{Line: line, Values: make(map[Column]string, len(columns))}
		empty := true

		for i, col := range columns {
			if i >= len(record) {
				continue
			}

			v := strings.TrimSpace(record[i])
			if v != "" {
				empty = false
			}

			row.Values[col] = v
		}

		if !empty {
			rows = append(rows, row)
		}
	}

	return rows, nil
}

// matchHeader maps column positions when record holds every required caption.
func (p *Parser) matchHeader(record []string) map[int]Column {
	found := make(map[int]Column)
	seen := make(map[Column]bool)

	for i, caption := range record {
		col, ok := headerAliases[strings.ToLower(strings.TrimSpace(caption))]
		if !ok || seen[col] {
			continue
		}

		found[i] = col
		seen[col] = true
	}

	for _, c := range p.required {
		if !seen[c] {
			return nil
		}
	}

	if len(found) == 0 {
		return nil
	}

	return found
}

const sniffLines = 20

// sniffDelimiter picks whichever of ',', ';' and tab occurs most in the leading lines.
func sniffDelimiter(raw []byte) rune {
	counts := map[rune]int{}
	seen := 0

	for line := range bytes.Lines(raw) {
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}

		for _, d := range []rune{',', ';', '\t'} {
			counts[d] += bytes.Count(line, []byte(string(d)))
		}

		seen++
		if seen == sniffLines {
			break
		}
	}

	best := ','
	for _, d := range []rune{';', '\t'} {
		if counts[d] > counts[best] {
			best = d
		}
	}

	return best
}
