package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komsit37/fscore/pkg/fscore/types"
)

func TestParse(t *testing.T) {
	tests := []struct {
		expr  string
		in    string
		match bool
	}{
		{"", "anything", true},
		{"NMS,NYQ", "NYQ", true},
		{"NMS,NYQ", "GER", false},
		{"NY*", "NYQ", true},
		{"NY*", "NMS", false},
		{"/^(NMS|GER)$/", "GER", true},
		{"/^(NMS|GER)$/", "GERX", false},
		{"equity", "EQUITY", true},
		{"equity", "ETF", false},
	}
	for _, tt := range tests {
		t.Run(tt.expr+"/"+tt.in, func(t *testing.T) {
			f, err := Parse(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.match, f.Match(tt.in))
		})
	}
}

func TestParse_BadRegex(t *testing.T) {
	_, err := Parse("/([/")
	assert.Error(t, err)
}

func TestCandidates(t *testing.T) {
	in := []types.Candidate{
		{Symbol: "AAPL", Exchange: "NMS", QuoteType: "EQUITY"},
		{Symbol: "APC.F", Exchange: "FRA", QuoteType: "EQUITY"},
		{Symbol: "AAPL240621C", Exchange: "OPR", QuoteType: "OPTION"},
	}

	assert.Equal(t, in, Candidates(nil, in))

	f, err := Parse("EQUITY")
	require.NoError(t, err)
	got := Candidates(f, in)
	require.Len(t, got, 2)
	assert.Equal(t, "AAPL", got[0].Symbol)

	f, err = Parse("FRA,GER")
	require.NoError(t, err)
	got = Candidates(f, in)
	require.Len(t, got, 1)
	assert.Equal(t, "APC.F", got[0].Symbol)
}
