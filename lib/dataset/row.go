package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Columns
// --------------------------------------------------------------------------

// Column is the header name of a column in the source file.
type Column string

const (
	ColBatter        Column = "BATTER"
	ColPitcher       Column = "PITCHER"
	ColGameDate      Column = "GAME_DATE"
	ColLaunchAngle   Column = "LAUNCH_ANGLE"
	ColExitSpeed     Column = "EXIT_SPEED"
	ColExitDirection Column = "EXIT_DIRECTION"
	ColHitDistance   Column = "HIT_DISTANCE"
	ColHangTime      Column = "HANG_TIME"
	ColHitSpinRate   Column = "HIT_SPIN_RATE"
	ColPlayOutcome   Column = "PLAY_OUTCOME"
	ColVideoLink     Column = "VIDEO_LINK"
)

// Columns lists every required column in output order.
var Columns = []Column{
	ColBatter,
	ColPitcher,
	ColGameDate,
	ColLaunchAngle,
	ColExitSpeed,
	ColExitDirection,
	ColHitDistance,
	ColHangTime,
	ColHitSpinRate,
	ColPlayOutcome,
	ColVideoLink,
}

// --------------------------------------------------------------------------
// Float (nullable numeric cell)
// --------------------------------------------------------------------------

// Float is a numeric cell that may be missing.
type Float struct {
	Value float64
	Valid bool
}

// Num returns a present Float.
func Num(v float64) Float {
	return Float{Value: v, Valid: true}
}

// ParseFloat converts a cell to a Float. Empty, unparsable and non-finite
// values are treated as missing.
func ParseFloat(s string) Float {
	s = strings.TrimSpace(s)
	if s == "" {
		return Float{}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Float{}
	}
	return Num(v)
}

// MarshalJSON renders a missing value as an empty string.
func (f Float) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(f.Value)
}

// UnmarshalJSON accepts a number, an empty string or null.
func (f *Float) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		*f = Float{}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("invalid numeric cell %s: %w", b, err)
	}
	*f = Num(v)
	return nil
}

// String returns the value or an empty string when missing.
func (f Float) String() string {
	if !f.Valid {
		return ""
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

// --------------------------------------------------------------------------
// Row
// --------------------------------------------------------------------------

// Row is a single batted-ball event. Text fields use the empty string for a
// missing value.
type Row struct {
	Batter        string `json:"BATTER"`
	Pitcher       string `json:"PITCHER"`
	GameDate      string `json:"GAME_DATE"`
	LaunchAngle   Float  `json:"LAUNCH_ANGLE"`
	ExitSpeed     Float  `json:"EXIT_SPEED"`
	ExitDirection Float  `json:"EXIT_DIRECTION"`
	HitDistance   Float  `json:"HIT_DISTANCE"`
	HangTime      Float  `json:"HANG_TIME"`
	HitSpinRate   Float  `json:"HIT_SPIN_RATE"`
	PlayOutcome   string `json:"PLAY_OUTCOME"`
	VideoLink     string `json:"VIDEO_LINK"`
}

// set assigns a raw cell value to the field backing the given column.
func (r *Row) set(col Column, raw string) {
	switch col {
	case ColBatter:
		r.Batter = strings.TrimSpace(raw)
	case ColPitcher:
		r.Pitcher = strings.TrimSpace(raw)
	case ColGameDate:
		r.GameDate = strings.TrimSpace(raw)
	case ColLaunchAngle:
		r.LaunchAngle = ParseFloat(raw)
	case ColExitSpeed:
		r.ExitSpeed = ParseFloat(raw)
	case ColExitDirection:
		r.ExitDirection = ParseFloat(raw)
	case ColHitDistance:
		r.HitDistance = ParseFloat(raw)
	case ColHangTime:
		r.HangTime = ParseFloat(raw)
	case ColHitSpinRate:
		r.HitSpinRate = ParseFloat(raw)
	case ColPlayOutcome:
		r.PlayOutcome = strings.TrimSpace(raw)
	case ColVideoLink:
		r.VideoLink = strings.TrimSpace(raw)
	}
}

// Values returns the row rendered as strings in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Batter,
		r.Pitcher,
		r.GameDate,
		r.LaunchAngle.String(),
		r.ExitSpeed.String(),
		r.ExitDirection.String(),
		r.HitDistance.String(),
		r.HangTime.String(),
		r.HitSpinRate.String(),
		r.PlayOutcome,
		r.VideoLink,
	}
}
