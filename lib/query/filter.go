package query

import (
	"fmt"
	"math"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/kfdigitals/battedball/lib/dataset"
)

// Query parameter names accepted by ParseFilters.
const (
	ParamBatter         = "batter"
	ParamPitcher        = "pitcher"
	ParamMinExitSpeed   = "min_exit_speed"
	ParamMaxExitSpeed   = "max_exit_speed"
	ParamMinLaunchAngle = "min_launch_angle"
	ParamMaxLaunchAngle = "max_launch_angle"
)

// Params lists every query parameter accepted by ParseFilters.
var Params = []string{
	ParamBatter,
	ParamPitcher,
	ParamMinExitSpeed,
	ParamMaxExitSpeed,
	ParamMinLaunchAngle,
	ParamMaxLaunchAngle,
}

// Filters selects rows. A zero value field means "no filter" on that dimension.
type Filters struct {
	Batter         string
	Pitcher        string
	MinExitSpeed   *float64
	MaxExitSpeed   *float64
	MinLaunchAngle *float64
	MaxLaunchAngle *float64
}

// IsEmpty reports whether no filter is set.
func (f Filters) IsEmpty() bool {
	return f.Batter == "" && f.Pitcher == "" &&
		f.MinExitSpeed == nil && f.MaxExitSpeed == nil &&
		f.MinLaunchAngle == nil && f.MaxLaunchAngle == nil
}

// ParseFilters extracts filters from query parameters.
//
// Empty values are treated as absent. Numeric values that do not parse as a
// finite number are dropped; in that case the returned error has code
// RetCInvalidParameter and names the offending parameters, while the returned
// Filters still holds every valid filter.
func ParseFilters(params url.Values) (Filters, error) {
	f := Filters{
		Batter:  params.Get(ParamBatter),
		Pitcher: params.Get(ParamPitcher),
	}

	var invalid []string
	parse := func(name string) *float64 {
		raw := strings.TrimSpace(params.Get(name))
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			invalid = append(invalid, fmt.Sprintf("%s=%q", name, raw))
			return nil
		}
		return &v
	}

	f.MinExitSpeed = parse(ParamMinExitSpeed)
	f.MaxExitSpeed = parse(ParamMaxExitSpeed)
	f.MinLaunchAngle = parse(ParamMinLaunchAngle)
	f.MaxLaunchAngle = parse(ParamMaxLaunchAngle)

	if len(invalid) > 0 {
		sort.Strings(invalid)
		return f, NewError(RetCInvalidParameter, "invalid numeric parameter: "+strings.Join(invalid, ", "))
	}
	return f, nil
}

// Values renders the filters as query parameters.
func (f Filters) Values() url.Values {
	v := url.Values{}
	if f.Batter != "" {
		v.Set(ParamBatter, f.Batter)
	}
	if f.Pitcher != "" {
		v.Set(ParamPitcher, f.Pitcher)
	}
	set := func(name string, p *float64) {
		if p != nil {
			v.Set(name, strconv.FormatFloat(*p, 'f', -1, 64))
		}
	}
	set(ParamMinExitSpeed, f.MinExitSpeed)
	set(ParamMaxExitSpeed, f.MaxExitSpeed)
	set(ParamMinLaunchAngle, f.MinLaunchAngle)
	set(ParamMaxLaunchAngle, f.MaxLaunchAngle)
	return v
}

// --------------------------------------------------------------------------
// Predicates
// --------------------------------------------------------------------------

// predicate reports whether a row passes one filter.
type predicate func(r *dataset.Row) bool

// predicates builds one predicate per supplied filter.
func (f Filters) predicates() []predicate {
	var preds []predicate

	if f.Batter != "" {
		needle := strings.ToLower(f.Batter)
		preds = append(preds, func(r *dataset.Row) bool { return containsFold(r.Batter, needle) })
	}
	if f.Pitcher != "" {
		needle := strings.ToLower(f.Pitcher)
		preds = append(preds, func(r *dataset.Row) bool { return containsFold(r.Pitcher, needle) })
	}
	if f.MinExitSpeed != nil {
		preds = append(preds, atLeast(*f.MinExitSpeed, func(r *dataset.Row) dataset.Float { return r.ExitSpeed }))
	}
	if f.MaxExitSpeed != nil {
		preds = append(preds, atMost(*f.MaxExitSpeed, func(r *dataset.Row) dataset.Float { return r.ExitSpeed }))
	}
	if f.MinLaunchAngle != nil {
		preds = append(preds, atLeast(*f.MinLaunchAngle, func(r *dataset.Row) dataset.Float { return r.LaunchAngle }))
	}
	if f.MaxLaunchAngle != nil {
		preds = append(preds, atMost(*f.MaxLaunchAngle, func(r *dataset.Row) dataset.Float { return r.LaunchAngle }))
	}

	return preds
}

// containsFold matches a lower-case needle anywhere in s. Missing values never match.
func containsFold(s, needle string) bool {
	if s == "" {
		return false
	}
	return strings.Contains(strings.ToLower(s), needle)
}

func atLeast(bound float64, field func(r *dataset.Row) dataset.Float) predicate {
	return func(r *dataset.Row) bool {
		v := field(r)
		return v.Valid && v.Value >= bound
	}
}

func atMost(bound float64, field func(r *dataset.Row) dataset.Float) predicate {
	return func(r *dataset.Row) bool {
		v := field(r)
		return v.Valid && v.Value <= bound
	}
}
