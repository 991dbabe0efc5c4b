package ionex

import (
	"sort"
	"time"
)

// Record is the ordered mapping from Key to TEC holding the actual
// file content. Traversals yield keys in chronological order first,
// then in spatial order.
type Record struct {
	data map[Key]TEC
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{data: make(map[Key]TEC)}
}

// Len returns the number of stored estimates.
func (r *Record) Len() int {
	return len(r.data)
}

// Insert stores a TEC estimate, replacing any previous entry at the same key.
func (r *Record) Insert(key Key, tec TEC) {
	r.data[key] = tec
}

// Get returns the estimate stored at the given coordinates, which must
// exist exactly. This is an indexing method, not an interpolation
// method; for interpolation use the MapCell API.
func (r *Record) Get(key Key) (TEC, bool) {
	tec, ok := r.data[key]
	return tec, ok
}

// Keys returns all keys in chronological, then spatial order.
func (r *Record) Keys() []Key {
	keys := make([]Key, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Range calls fn for every (key, TEC) pair in key order, stopping
// early when fn returns false.
func (r *Record) Range(fn func(Key, TEC) bool) {
	for _, k := range r.Keys() {
		if !fn(k, r.data[k]) {
			return
		}
	}
}

// SynchronousKeys returns the keys sampled at the given epoch, in
// spatial order.
func (r *Record) SynchronousKeys(epoch time.Time) []Key {
	keys := make([]Key, 0)
	for k := range r.data {
		if k.Epoch.Equal(epoch) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	return keys
}

// Epochs returns the distinct sampling instants in chronological order.
func (r *Record) Epochs() []time.Time {
	seen := make(map[time.Time]struct{})
	epochs := make([]time.Time, 0)
	for k := range r.data {
		if _, ok := seen[k.Epoch]; !ok {
			seen[k.Epoch] = struct{}{}
			epochs = append(epochs, k.Epoch)
		}
	}
	sort.Slice(epochs, func(i, j int) bool { return epochs[i].Before(epochs[j]) })
	return epochs
}

// FirstEpoch returns the first sampling instant in chronological order.
func (r *Record) FirstEpoch() (time.Time, bool) {
	epochs := r.Epochs()
	if len(epochs) == 0 {
		return time.Time{}, false
	}
	return epochs[0], true
}

// LastEpoch returns the last sampling instant in chronological order.
func (r *Record) LastEpoch() (time.Time, bool) {
	epochs := r.Epochs()
	if len(epochs) == 0 {
		return time.Time{}, false
	}
	return epochs[len(epochs)-1], true
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	c := NewRecord()
	for k, v := range r.data {
		c.data[k] = v.clone()
	}
	return c
}

// Equal reports whether both records hold the same estimates at the
// same coordinates.
func (r *Record) Equal(rhs *Record) bool {
	if len(r.data) != len(rhs.data) {
		return false
	}
	for k, v := range r.data {
		w, ok := rhs.data[k]
		if !ok || !v.Equal(w) {
			return false
		}
	}
	return true
}

// RecordFromMapCells rebuilds a record from map cells at a fixed
// altitude, deduplicating corners that neighboring cells share.
// This operation is the inverse of the map-cell iteration over a
// conforming grid.
func RecordFromMapCells(cells []MapCell, fixedAltitudeKm float64) *Record {
	rec := NewRecord()
	for _, cell := range cells {
		for _, corner := range []TecPoint{
			cell.NorthEast, cell.NorthWest, cell.SouthEast, cell.SouthWest,
		} {
			key := NewKey(cell.Epoch, corner.Point.Y(), corner.Point.X(), fixedAltitudeKm)
			if _, ok := rec.Get(key); !ok {
				rec.Insert(key, corner.TEC.clone())
			}
		}
	}
	return rec
}

// MergeMut unions the right-hand record into this one. Estimates
// already present keep their value; their missing RMS or height
// companions are filled from the right side without overwriting.
func (r *Record) MergeMut(rhs *Record) {
	for k, v := range rhs.data {
		lhs, ok := r.data[k]
		if !ok {
			r.data[k] = v.clone()
			continue
		}
		if lhs.Rms == nil && v.Rms != nil {
			rms := *v.Rms
			lhs.Rms = &rms
		}
		if lhs.Height == nil && v.Height != nil {
			height := *v.Height
			lhs.Height = &height
		}
		r.data[k] = lhs
	}
}
