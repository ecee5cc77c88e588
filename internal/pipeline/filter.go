package pipeline

import (
	"time"

	"ados/internal"
	"ados/internal/util"
)

// Filter returns the records matching every active predicate of spec, in
// input order. A record without a parsed DocDate fails any active date-range
// predicate; it is out of range, not "unknown".
func Filter(records []internal.DocumentRecord, spec internal.FilterSpec) []internal.DocumentRecord {
	if spec.IsZero() {
		return records
	}
	out := make([]internal.DocumentRecord, 0, len(records))
	for _, rec := range records {
		if matches(rec, spec) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec internal.DocumentRecord, spec internal.FilterSpec) bool {
	if spec.Type != "" && rec.Type != spec.Type {
		return false
	}
	if spec.IssuingDept != "" && rec.IssuingDepartment != spec.IssuingDept {
		return false
	}
	if spec.SearchSubject != "" && !util.ContainsFold(rec.Subject, spec.SearchSubject) {
		return false
	}
	if spec.SearchPersonnel != "" && !util.ContainsFold(rec.Personnel, spec.SearchPersonnel) {
		return false
	}
	if spec.StartDate != nil {
		if rec.DocDate == nil {
			return false
		}
		if dayOf(*rec.DocDate).Before(dayOf(*spec.StartDate)) {
			return false
		}
	}
	if spec.EndDate != nil {
		if rec.DocDate == nil {
			return false
		}
		if dayOf(*rec.DocDate).After(dayOf(*spec.EndDate)) {
			return false
		}
	}
	return true
}

// dayOf strips any time-of-day component so range bounds compare at day
// granularity and stay inclusive of the whole boundary day.
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
