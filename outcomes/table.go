package outcomes

import "sort"

// Table is the long-form, ranked outcome table. It is built once by
// BuildTable and never mutated, so concurrent reads need no locking.
type Table struct {
	records []Record

	// groups indexes record positions by (state, cause), preserving the
	// canonical (rate asc, hospital asc) order within each group.
	groups map[groupKey][]int
}

type groupKey struct {
	state string
	cause Cause
}

// BuildTable melts wide RawRecords into long-form Records and ranks each
// (state, cause) group. Records with a missing rate are dropped, never
// carried as nulls. An empty input yields an empty table.
func BuildTable(rows []RawRecord) *Table {
	byGroup := make(map[groupKey][]Record)
	for _, row := range rows {
		for _, cause := range Causes {
			rate := row.Rate(cause)
			if rate == nil {
				continue
			}
			key := groupKey{state: row.State, cause: cause}
			byGroup[key] = append(byGroup[key], Record{
				State:          row.State,
				Hospital:       row.Hospital,
				Cause:          cause.String(),
				DeathRate30Day: *rate,
			})
		}
	}

	keys := make([]groupKey, 0, len(byGroup))
	for key := range byGroup {
		keys = append(keys, key)
	}
	// Deterministic record order: groups sorted by (state, cause).
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].state != keys[j].state {
			return keys[i].state < keys[j].state
		}
		return keys[i].cause < keys[j].cause
	})

	t := &Table{groups: make(map[groupKey][]int, len(byGroup))}
	for _, key := range keys {
		group := byGroup[key]
		rankGroup(group)
		start := len(t.records)
		t.records = append(t.records, group...)
		idx := make([]int, len(group))
		for i := range group {
			idx[i] = start + i
		}
		t.groups[key] = idx
	}
	return t
}

// rankGroup stamps StateRankBest, StateRankWorst, and OutOf on every record
// of one (state, cause) group, leaving the group in canonical order.
//
// The two rank columns use different tie-break conventions and are assigned
// by two independent sort passes; for tied rates they disagree on purpose,
// so neither may be derived from the other.
func rankGroup(group []Record) {
	n := int32(len(group))

	// Best rank: canonical order (rate asc, hospital asc), ranks 1..n in
	// sequence. Tied rates resolve first-by-name.
	sort.SliceStable(group, func(i, j int) bool {
		if group[i].DeathRate30Day != group[j].DeathRate30Day {
			return group[i].DeathRate30Day < group[j].DeathRate30Day
		}
		return group[i].Hospital < group[j].Hospital
	})
	for i := range group {
		group[i].StateRankBest = int32(i) + 1
		group[i].OutOf = n
	}

	// Worst rank: sort by (rate desc, hospital desc) and assign 1..n in
	// sequence. Within a tied rate the hospital that is last by ascending
	// name gets the smallest worst rank.
	worst := make([]*Record, len(group))
	for i := range group {
		worst[i] = &group[i]
	}
	sort.SliceStable(worst, func(i, j int) bool {
		if worst[i].DeathRate30Day != worst[j].DeathRate30Day {
			return worst[i].DeathRate30Day > worst[j].DeathRate30Day
		}
		return worst[i].Hospital > worst[j].Hospital
	})
	for i, rec := range worst {
		rec.StateRankWorst = int32(i) + 1
	}
}

// Records returns all records. The slice is shared; callers must not modify
// it.
func (t *Table) Records() []Record {
	return t.records
}

// Len returns the number of records in the table.
func (t *Table) Len() int {
	return len(t.records)
}

// group returns the (state, cause) subset in canonical order, or nil when
// the state has no data for that cause.
func (t *Table) group(state string, cause Cause) []Record {
	idx := t.groups[groupKey{state: state, cause: cause}]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Record, len(idx))
	for i, j := range idx {
		out[i] = t.records[j]
	}
	return out
}
