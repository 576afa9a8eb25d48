package sheet_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/vipledger/internal/importer/sheet"
)

func TestParser_Parse(t *testing.T) {
	type args struct {
		csvContent string
	}

	type testCase struct {
		name    string
		args    args
		wantLen int
		verify  func(t *testing.T, rows []sheet.Row)
	}

	tests := []testCase{
		{
			name: "MetadataBeforeHeader",
			args: args{
				csvContent: `VIP Garage monthly export
Generated;2025-02-01

Date;Amount;Description;Category
2025-01-05;1.250;Register;Daily Summary
2025-01-31;300;Close;Monthly Summary
`,
			},
			wantLen: 2,
			verify: func(t *testing.T, rows []sheet.Row) {
				assert.Equal(t, "2025-01-05", rows[0].Get(sheet.ColDate))
				assert.Equal(t, "1.250", rows[0].Get(sheet.ColAmount))
				assert.Equal(t, "Daily Summary", rows[0].Get(sheet.ColCategory))
				assert.Equal(t, 5, rows[0].Line)
				assert.Equal(t, "Close", rows[1].Get(sheet.ColDescription))
			},
		},
		{
			name: "HebrewHeadersAnyOrder",
			args: args{
				csvContent: "סכום,תיאור,תאריך,הערות\n80,נייר,05/01/2025,x\n",
			},
			wantLen: 1,
			verify: func(t *testing.T, rows []sheet.Row) {
				assert.Equal(t, "80", rows[0].Get(sheet.ColAmount))
				assert.Equal(t, "נייר", rows[0].Get(sheet.ColDescription))
				assert.Equal(t, "05/01/2025", rows[0].Get(sheet.ColDate))
			},
		},
		{
			name:    "EmptyFile",
			args:    args{csvContent: ""},
			wantLen: 0,
		},
		{
			name:    "HeaderOnly",
			args:    args{csvContent: "date,amount,description\n"},
			wantLen: 0,
		},
		{
			name:    "NoRecognisedHeader",
			args:    args{csvContent: "a,b,c\n1,2,3\n"},
			wantLen: 0,
		},
		{
			name: "BlankRowsSkipped",
			args: args{
				csvContent: "date\tamount\n2025-01-01\t10\n\t\n2025-01-02\t20\n",
			},
			wantLen: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := sheet.New(sheet.ColDate, sheet.ColAmount)
			got, err := parser.Parse(strings.NewReader(tt.args.csvContent))

			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)

			if tt.verify != nil {
				tt.verify(t, got)
			}
		})
	}
}
