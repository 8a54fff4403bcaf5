package idx_test

import (
	"sort"
	"testing"
	"time"

	"github.com/shanco/accessissues/pkg/idx"
	"github.com/stretchr/testify/require"
)

func TestNewParses(t *testing.T) {
	id := idx.New()

	parsed, err := idx.Parse(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)
	require.True(t, idx.Valid(id.String()))
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"uuid", "0190c8e4-5b1a-7cc3-9d3e-2a4f6b8c0d1e"},
		{"too short", "01HQ7T3Z1M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := idx.Parse(tt.input)
			require.ErrorIs(t, err, idx.ErrInvalid)
		})
	}
}

func TestSortsByCreation(t *testing.T) {
	base := time.Unix(1700000000, 0).UTC()

	ids := []string{
		idx.NewAt(base.Add(2 * time.Second)).String(),
		idx.NewAt(base).String(),
		idx.NewAt(base.Add(time.Second)).String(),
	}
	sorted := append([]string(nil), ids...)
	sort.Strings(sorted)

	require.Equal(t, []string{ids[1], ids[2], ids[0]}, sorted)
}

func TestTime(t *testing.T) {
	tm := time.Unix(1700000000, 0).UTC()
	require.WithinDuration(t, tm, idx.NewAt(tm).Time(), time.Millisecond)
	require.True(t, idx.ID("nope").Time().IsZero())
}
