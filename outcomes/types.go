// Package outcomes derives per-hospital 30-day mortality rankings from the
// CMS Hospital Compare outcome-of-care measures file.
//
// The raw file is wide (one mortality column per cause of death); BuildTable
// melts it into one record per hospital × cause, drops rows without a usable
// rate, and ranks each record among hospitals in the same state for the same
// cause. The resulting Table is immutable and answers three queries: Best,
// RankHospital, and RankAll.
package outcomes

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Validation errors. Data absence (no hospital at a requested rank, no data
// for a state) is never an error; only unrecognized inputs are.
var (
	ErrInvalidState   = errors.New("invalid state")
	ErrInvalidOutcome = errors.New("invalid outcome")
	ErrInvalidRank    = errors.New("invalid rank")
)

// Cause identifies one of the three measured causes of death.
type Cause int

const (
	HeartAttack Cause = iota
	HeartFailure
	Pneumonia
)

// causeNames maps the recognized outcome strings (case-sensitive) to causes.
var causeNames = map[string]Cause{
	"heart attack":  HeartAttack,
	"heart failure": HeartFailure,
	"pneumonia":     Pneumonia,
}

// Causes lists all causes in melt order.
var Causes = []Cause{HeartAttack, HeartFailure, Pneumonia}

// ParseCause maps an outcome string ("heart attack", "heart failure",
// "pneumonia") to its Cause. The match is exact and case-sensitive.
func ParseCause(outcome string) (Cause, error) {
	c, ok := causeNames[outcome]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidOutcome, outcome)
	}
	return c, nil
}

func (c Cause) String() string {
	switch c {
	case HeartAttack:
		return "heart attack"
	case HeartFailure:
		return "heart failure"
	case Pneumonia:
		return "pneumonia"
	}
	return fmt.Sprintf("Cause(%d)", int(c))
}

// StateCodes lists the 54 recognized state/territory codes (50 states plus
// DC, GU, PR, VI) in canonical order. RankAll emits one row per code in this
// order.
var StateCodes = []string{
	"AK", "AL", "AR", "AZ", "CA", "CO", "CT", "DC", "DE", "FL",
	"GA", "GU", "HI", "IA", "ID", "IL", "IN", "KS", "KY", "LA",
	"MA", "MD", "ME", "MI", "MN", "MO", "MS", "MT", "NC", "ND",
	"NE", "NH", "NJ", "NM", "NV", "NY", "OH", "OK", "OR", "PA",
	"PR", "RI", "SC", "SD", "TN", "TX", "UT", "VA", "VI", "VT",
	"WA", "WI", "WV", "WY",
}

var stateSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(StateCodes))
	for _, s := range StateCodes {
		m[s] = struct{}{}
	}
	return m
}()

// ValidState reports whether code is a recognized state/territory code.
func ValidState(code string) bool {
	_, ok := stateSet[code]
	return ok
}

// RawRecord is one wide input row: a hospital with up to three mortality
// rates. A nil rate means the source value was missing or unparseable.
type RawRecord struct {
	State    string
	Hospital string

	HeartAttackRate  *float64
	HeartFailureRate *float64
	PneumoniaRate    *float64
}

// Rate returns the rate column for the given cause.
func (r RawRecord) Rate(c Cause) *float64 {
	switch c {
	case HeartAttack:
		return r.HeartAttackRate
	case HeartFailure:
		return r.HeartFailureRate
	case Pneumonia:
		return r.PneumoniaRate
	}
	return nil
}

// Record is one long-form outcome row: a hospital's 30-day mortality rate
// for a single cause of death, ranked among hospitals in its state.
type Record struct {
	State          string  `parquet:"state"`
	Hospital       string  `parquet:"hospital"`
	Cause          string  `parquet:"cause_of_death"`
	DeathRate30Day float64 `parquet:"death_rate_30_day"`
	StateRankBest  int32   `parquet:"state_rank_best"`
	StateRankWorst int32   `parquet:"state_rank_worst"`
	OutOf          int32   `parquet:"out_of"`
}

// rankKind discriminates the three Rank variants.
type rankKind int

const (
	rankBest rankKind = iota
	rankWorst
	rankNth
)

// Rank selects a position within a (state, cause) group: the best hospital,
// the worst hospital, or the Nth best.
type Rank struct {
	kind rankKind
	n    int
}

// RankBest selects the top-ranked hospital on the best-rate axis.
func RankBest() Rank { return Rank{kind: rankBest} }

// RankWorst selects the top-ranked hospital on the worst-rate axis.
func RankWorst() Rank { return Rank{kind: rankWorst} }

// RankNth selects the hospital ranked n on the best-rate axis. n < 1 is
// rejected by the query functions with ErrInvalidRank.
func RankNth(n int) Rank { return Rank{kind: rankNth, n: n} }

// ParseRank parses a rank selector: "best", "worst", or a positive decimal
// integer. Surrounding whitespace is ignored for all three forms.
func ParseRank(s string) (Rank, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "best":
		return RankBest(), nil
	case "worst":
		return RankWorst(), nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Rank{}, fmt.Errorf("%w: %q", ErrInvalidRank, s)
	}
	return RankNth(n), nil
}

func (r Rank) valid() bool {
	return r.kind != rankNth || r.n >= 1
}

func (r Rank) String() string {
	switch r.kind {
	case rankBest:
		return "best"
	case rankWorst:
		return "worst"
	default:
		return strconv.Itoa(r.n)
	}
}
