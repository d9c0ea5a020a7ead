package query

import (
	"errors"
	"fmt"

	"github.com/kfdigitals/battedball/lib/dataset"
)

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IQueryService answers queries against a single immutable table.
type IQueryService interface {
	// ListRows returns the rows matching all supplied filters in their original order.
	// It fails with RetCDataUnavailable if the table is empty.
	ListRows(filters Filters) (rows []dataset.Row, err error)
	// Summarize computes the fixed aggregate statistics over the whole table.
	// It fails with RetCDataUnavailable if the table is empty.
	Summarize() (summary Summary, err error)
	// Health reports whether data is loaded. It never fails.
	Health() Health
}

// Summary holds the aggregate statistics of the table. The averages are nil
// when the column has no values at all.
type Summary struct {
	AvgExitSpeed     *float64 `json:"avg_exit_speed"`
	AvgLaunchAngle   *float64 `json:"avg_launch_angle"`
	TotalBattedBalls int      `json:"total_batted_balls"`
	UniqueBatters    int      `json:"unique_batters"`
	UniquePitchers   int      `json:"unique_pitchers"`
}

// Health describes the state of the loaded table.
type Health struct {
	DataLoaded bool
	Rows       int
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error wraps a return code and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Msg
}

// NewError creates a new Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// CodeOf returns the code of the first *Error in err's chain.
// Errors of any other type are reported as RetCQueryError, nil as RetCSuccess.
func CodeOf(err error) RetCode {
	if err == nil {
		return RetCSuccess
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return RetCQueryError
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Query executed successfully.
	RetCDataUnavailable                 // 1: The table failed to load or is empty.
	RetCQueryError                      // 2: Filtering or aggregation failed.
	RetCInvalidParameter                // 3: A request parameter could not be parsed.
)

func (c RetCode) String() string {
	switch c {
	case RetCSuccess:
		return "Success"
	case RetCDataUnavailable:
		return "DataUnavailable"
	case RetCQueryError:
		return "QueryError"
	case RetCInvalidParameter:
		return "InvalidParameter"
	default:
		return fmt.Sprintf("RetCode(%d)", uint64(c))
	}
}
