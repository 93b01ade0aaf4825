package outcomes

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableWriter_RoundTrip(t *testing.T) {
	table := BuildTable([]RawRecord{
		{State: "TX", Hospital: "HospA", HeartAttackRate: f64Ptr(10.0)},
		{State: "TX", Hospital: "HospB", HeartAttackRate: f64Ptr(10.0)},
		{State: "TX", Hospital: "HospC", HeartAttackRate: f64Ptr(9.0), PneumoniaRate: f64Ptr(8.8)},
	})

	path := filepath.Join(t.TempDir(), "outcomes.parquet")
	w, err := NewTableWriter(path)
	require.NoError(t, err)

	n, err := w.Write(table.Records())
	require.NoError(t, err)
	assert.Equal(t, table.Len(), n)
	require.NoError(t, w.Close())
	assert.Equal(t, table.Len(), w.Count())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	reader := parquet.NewGenericReader[Record](f)
	defer reader.Close()
	require.Equal(t, int64(table.Len()), reader.NumRows())

	got := make([]Record, table.Len())
	n, err = reader.Read(got)
	if err != nil && err != io.EOF {
		t.Fatalf("read parquet rows: %v", err)
	}
	require.Equal(t, table.Len(), n)

	byKey := make(map[string]Record, len(got))
	for _, rec := range got {
		byKey[rec.State+"/"+rec.Hospital+"/"+rec.Cause] = rec
	}

	rec, ok := byKey["TX/HospC/heart attack"]
	require.True(t, ok)
	assert.Equal(t, 9.0, rec.DeathRate30Day)
	assert.Equal(t, int32(1), rec.StateRankBest)
	assert.Equal(t, int32(3), rec.StateRankWorst)
	assert.Equal(t, int32(3), rec.OutOf)

	rec, ok = byKey["TX/HospB/heart attack"]
	require.True(t, ok)
	assert.Equal(t, int32(3), rec.StateRankBest)
	assert.Equal(t, int32(1), rec.StateRankWorst)
}

func TestTableWriter_EmptyTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.parquet")
	w, err := NewTableWriter(path)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	assert.Equal(t, 0, w.Count())
}
