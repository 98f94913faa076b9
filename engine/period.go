package engine

// =============================================================================
// PERIOD - Inclusive date range
// =============================================================================

// Period is the inclusive range [Start, End]. Lease terms require End to be
// strictly after Start; report windows built with Window may be a single day.
type Period struct {
	Start Date
	End   Date
}

// NewPeriod returns ErrInvalidPeriod unless end is after start.
func NewPeriod(start, end Date) (Period, error) {
	if !end.After(start) {
		return Period{}, &PreconditionError{
			Field: "period",
			Value: "[" + start.String() + ", " + end.String() + "]",
			Err:   ErrInvalidPeriod,
		}
	}
	return Period{Start: start, End: end}, nil
}

// Window is an unchecked inclusive range used for report filters.
func Window(start, end Date) Period {
	return Period{Start: start, End: end}
}

// Contains returns true if the day is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

// Days returns the number of calendar days covered, both ends included.
func (p Period) Days() int {
	return DaysBetween(p.Start, p.End) + 1
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
