package internal

import "time"

// RawRow is one tabular row keyed by the source column label. Labels are
// free text and mostly Thai; no value is guaranteed non-empty.
type RawRow map[string]string

// DocumentRecord is the canonical in-memory form of one registry entry.
// DocDate and ReceivedDate are derived from the raw date text and stay nil
// when the text could not be parsed; the raw text is always kept for display.
type DocumentRecord struct {
	ID                string     `json:"id"`
	Type              string     `json:"type"`
	Subject           string     `json:"subject"`
	Department        string     `json:"department"`
	ReceivedDate      *time.Time `json:"receivedDate"`
	ReceivedDateRaw   string     `json:"receivedDateStr"`
	Personnel         string     `json:"personnel"`
	Email             string     `json:"email"`
	DocDate           *time.Time `json:"docDate"`
	DocDateRaw        string     `json:"docDateStr"`
	DocNumber         string     `json:"docNumber"`
	IssuingDepartment string     `json:"issuingDepartment"`
	EventDate         string     `json:"eventDate"`
	Keyword           string     `json:"keyword"`
	URL               string     `json:"url"`
}

// FilterSpec holds the user-selected predicates. Empty string / nil means
// the predicate is inactive; active predicates are ANDed.
type FilterSpec struct {
	Type            string
	IssuingDept     string
	SearchSubject   string
	SearchPersonnel string
	StartDate       *time.Time
	EndDate         *time.Time
}

func (f FilterSpec) IsZero() bool {
	return f.Type == "" && f.IssuingDept == "" && f.SearchSubject == "" &&
		f.SearchPersonnel == "" && f.StartDate == nil && f.EndDate == nil
}

// ValueCount is one entry of a frequency ranking or category distribution.
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// MonthBucket is one bucket of the calendar-month histogram.
type MonthBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// Summary holds the dashboard headline scalars. LatestDocDate is nil when
// no record carries a parsed document date.
type Summary struct {
	DocumentCount   int        `json:"documentCount"`
	PersonnelCount  int        `json:"personnelCount"`
	DepartmentCount int        `json:"departmentCount"`
	LatestDocDate   *time.Time `json:"latestDocDate"`
}
