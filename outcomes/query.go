package outcomes

import "fmt"

// Best returns the hospital with the lowest 30-day mortality rate in state
// for the given outcome. ok is false when the state has no data for that
// outcome. The state and outcome are validated before the table is touched.
func Best(t *Table, state, outcome string) (hospital string, ok bool, err error) {
	if !ValidState(state) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	cause, err := ParseCause(outcome)
	if err != nil {
		return "", false, err
	}
	for _, rec := range t.group(state, cause) {
		if rec.StateRankBest == 1 {
			return rec.Hospital, true, nil
		}
	}
	return "", false, nil
}

// RankHospital returns the hospital at the given rank within state for the
// given outcome. RankBest and RankWorst resolve to rank 1 on their
// respective axes; RankNth(n) resolves to rank n on the best axis. ok is
// false when the state has fewer hospitals than the requested rank, or no
// data at all.
func RankHospital(t *Table, state, outcome string, rank Rank) (hospital string, ok bool, err error) {
	if !ValidState(state) {
		return "", false, fmt.Errorf("%w: %q", ErrInvalidState, state)
	}
	cause, err := ParseCause(outcome)
	if err != nil {
		return "", false, err
	}
	if !rank.valid() {
		return "", false, fmt.Errorf("%w: %s", ErrInvalidRank, rank)
	}
	hospital, ok = lookupRank(t.group(state, cause), rank)
	return hospital, ok, nil
}

// StateRanking is one RankAll row: a state code and the hospital resolved at
// the requested rank, or Found=false when the state has none.
type StateRanking struct {
	State    string
	Hospital string
	Found    bool
}

// RankAll resolves the requested rank independently within every recognized
// state/territory, returning exactly one row per code in StateCodes order.
// States with no hospital at the rank (or no data for the outcome) appear
// with Found=false rather than being omitted.
func RankAll(t *Table, outcome string, rank Rank) ([]StateRanking, error) {
	cause, err := ParseCause(outcome)
	if err != nil {
		return nil, err
	}
	if !rank.valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRank, rank)
	}

	out := make([]StateRanking, len(StateCodes))
	for i, state := range StateCodes {
		hospital, ok := lookupRank(t.group(state, cause), rank)
		out[i] = StateRanking{State: state, Hospital: hospital, Found: ok}
	}
	return out, nil
}

// lookupRank resolves a validated rank within one (state, cause) group. The
// bounds check happens in int before the rank fields are compared, so ranks
// beyond the int32 range fall out as absent instead of wrapping.
func lookupRank(group []Record, rank Rank) (string, bool) {
	target := 1
	best := true
	switch rank.kind {
	case rankWorst:
		best = false
	case rankNth:
		target = rank.n
	}

	if target > len(group) {
		return "", false
	}
	for _, rec := range group {
		r := int(rec.StateRankBest)
		if !best {
			r = int(rec.StateRankWorst)
		}
		if r == target {
			return rec.Hospital, true
		}
	}
	return "", false
}
