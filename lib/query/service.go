package query

import (
	"github.com/kfdigitals/battedball/lib/dataset"
	"github.com/kfdigitals/battedball/lib/util"
	"github.com/lni/dragonboat/v4/logger"
)

var Logger = logger.GetLogger("query")

// MsgDataNotLoaded is returned by every query against an empty table.
const MsgDataNotLoaded = "Data not loaded"

type queryServiceImpl struct {
	table *dataset.Table
}

// NewQueryService creates a query service over table.
// A nil table behaves like an empty one.
func NewQueryService(table *dataset.Table) IQueryService {
	if table == nil {
		table = dataset.EmptyTable()
	}
	return &queryServiceImpl{table: table}
}

// --------------------------------------------------------------------------
// Interface Methods (docu see query.IQueryService)
// --------------------------------------------------------------------------

func (s *queryServiceImpl) ListRows(filters Filters) ([]dataset.Row, error) {
	if s.table.IsEmpty() {
		return nil, NewError(RetCDataUnavailable, MsgDataNotLoaded)
	}

	preds := filters.predicates()

	// single stable pass, a row must pass every predicate
	rows := make([]dataset.Row, 0)
	for _, row := range s.table.All() {
		if matchAll(&row, preds) {
			rows = append(rows, row)
		}
	}

	Logger.Debugf("ListRows matched %d of %d rows (%d filters)", len(rows), s.table.Len(), len(preds))
	return rows, nil
}

func (s *queryServiceImpl) Summarize() (Summary, error) {
	if s.table.IsEmpty() {
		return Summary{}, NewError(RetCDataUnavailable, MsgDataNotLoaded)
	}

	n := s.table.Len()
	exitSpeeds := make([]float64, 0, n)
	launchAngles := make([]float64, 0, n)
	batters := make([]string, 0, n)
	pitchers := make([]string, 0, n)

	for _, row := range s.table.All() {
		if row.ExitSpeed.Valid {
			exitSpeeds = append(exitSpeeds, row.ExitSpeed.Value)
		}
		if row.LaunchAngle.Valid {
			launchAngles = append(launchAngles, row.LaunchAngle.Value)
		}
		batters = append(batters, row.Batter)
		pitchers = append(pitchers, row.Pitcher)
	}

	return Summary{
		AvgExitSpeed:     mean(exitSpeeds),
		AvgLaunchAngle:   mean(launchAngles),
		TotalBattedBalls: n,
		UniqueBatters:    util.CountDistinct(batters),
		UniquePitchers:   util.CountDistinct(pitchers),
	}, nil
}

func (s *queryServiceImpl) Health() Health {
	return Health{
		DataLoaded: !s.table.IsEmpty(),
		Rows:       s.table.Len(),
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

func matchAll(row *dataset.Row, preds []predicate) bool {
	for _, p := range preds {
		if !p(row) {
			return false
		}
	}
	return true
}

// mean returns nil when there are no values.
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := util.NewStats(values).Mean
	return &m
}
