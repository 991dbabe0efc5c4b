package ionex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordIndexing(t *testing.T) {
	rec := NewRecord()
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	key := NewKey(t0, 87.5, -180.0, 350.0)
	rec.Insert(key, TECFromQuantized(92, -1))

	tec, ok := rec.Get(key)
	require.True(t, ok)
	assert.Equal(t, 9.2, tec.TecuValue())

	_, ok = rec.Get(NewKey(t0, 0.0, 0.0, 350.0))
	assert.False(t, ok)

	// replacing keeps a single entry
	rec.Insert(key, TECFromQuantized(95, -1))
	assert.Equal(t, 1, rec.Len())
}

func TestRecordTraversals(t *testing.T) {
	rec := NewRecord()
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	rec.Insert(NewKey(t1, 0.0, 5.0, 350.0), TECFromTecu(4.0))
	rec.Insert(NewKey(t0, 2.5, 0.0, 350.0), TECFromTecu(1.0))
	rec.Insert(NewKey(t0, 0.0, 0.0, 350.0), TECFromTecu(2.0))
	rec.Insert(NewKey(t0, 0.0, 5.0, 350.0), TECFromTecu(3.0))

	keys := rec.Keys()
	require.Len(t, keys, 4)
	// chronological then spatial order
	assert.True(t, keys[0].Epoch.Equal(t0))
	assert.Equal(t, 0.0, keys[0].LatitudeDdeg())
	assert.Equal(t, 0.0, keys[0].LongitudeDdeg())
	assert.Equal(t, 5.0, keys[1].LongitudeDdeg())
	assert.Equal(t, 2.5, keys[2].LatitudeDdeg())
	assert.True(t, keys[3].Epoch.Equal(t1))

	epochs := rec.Epochs()
	require.Len(t, epochs, 2)
	assert.True(t, epochs[0].Equal(t0))
	assert.True(t, epochs[1].Equal(t1))

	first, ok := rec.FirstEpoch()
	require.True(t, ok)
	assert.True(t, first.Equal(t0))

	last, ok := rec.LastEpoch()
	require.True(t, ok)
	assert.True(t, last.Equal(t1))

	sync := rec.SynchronousKeys(t0)
	assert.Len(t, sync, 3)

	count := 0
	rec.Range(func(Key, TEC) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)
}

func TestRecordMerge(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	lhs := NewRecord()
	lhs.Insert(NewKey(t0, 0.0, 0.0, 350.0), TECFromTecu(2.0))

	rhs := NewRecord()
	rhs.Insert(NewKey(t0, 0.0, 0.0, 350.0), TECFromTecu(9.0).WithRMS(0.5))
	rhs.Insert(NewKey(t0, 0.0, 5.0, 350.0), TECFromTecu(3.0))

	lhs.MergeMut(rhs)
	assert.Equal(t, 2, lhs.Len())

	// existing estimates keep their value, missing RMS is filled
	tec, ok := lhs.Get(NewKey(t0, 0.0, 0.0, 350.0))
	require.True(t, ok)
	assert.Equal(t, 2.0, tec.TecuValue())
	rms, ok := tec.RMS()
	require.True(t, ok)
	assert.Equal(t, 0.5, rms)

	tec, ok = lhs.Get(NewKey(t0, 0.0, 5.0, 350.0))
	require.True(t, ok)
	assert.Equal(t, 3.0, tec.TecuValue())
}

func TestRecordClone(t *testing.T) {
	t0 := time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC)

	rec := NewRecord()
	rec.Insert(NewKey(t0, 0.0, 0.0, 350.0), TECFromTecu(2.0).WithRMS(0.1))

	clone := rec.Clone()
	assert.True(t, rec.Equal(clone))

	clone.Insert(NewKey(t0, 0.0, 5.0, 350.0), TECFromTecu(3.0))
	assert.False(t, rec.Equal(clone))
}

// Rebuilding a record from map cells is the inverse of the cell iteration.
func TestRecordFromMapCells(t *testing.T) {
	ionx := buildTestIONEX(t, 2)

	cells := ionx.MapCells()
	require.NotEmpty(t, cells)

	rebuilt := RecordFromMapCells(cells, ionx.Header.Grid.Altitude.Start)
	assert.True(t, ionx.Record.Equal(rebuilt))
}
