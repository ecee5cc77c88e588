package pipeline

import (
	"sort"
	"time"

	"ados/internal"
)

// Field selectors used by the aggregations and the server.
func TypeOf(r internal.DocumentRecord) string { return r.Type }

func PersonnelOf(r internal.DocumentRecord) string { return r.Personnel }

func IssuingDeptOf(r internal.DocumentRecord) string { return r.IssuingDepartment }

// DistinctValues collects the non-empty values of one field, de-duplicated,
// in first-seen order. Used to populate the filter selectors from the
// unfiltered set.
func DistinctValues(records []internal.DocumentRecord, field func(internal.DocumentRecord) string) []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, rec := range records {
		v := field(rec)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// CategoryDistribution counts non-empty occurrences of one field, sorted by
// descending count. Ties keep first-seen order so the output is deterministic.
func CategoryDistribution(records []internal.DocumentRecord, field func(internal.DocumentRecord) string) []internal.ValueCount {
	counts := map[string]int{}
	order := []string{}
	for _, rec := range records {
		v := field(rec)
		if v == "" {
			continue
		}
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	out := make([]internal.ValueCount, 0, len(order))
	for _, v := range order {
		out = append(out, internal.ValueCount{Value: v, Count: counts[v]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// TopN is CategoryDistribution truncated to the n highest counts.
func TopN(records []internal.DocumentRecord, field func(internal.DocumentRecord) string, n int) []internal.ValueCount {
	out := CategoryDistribution(records, field)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// MonthlyHistogram buckets records by the calendar month of DocDate,
// merging years. Always returns twelve buckets in January..December order;
// records without a parsed DocDate are not counted.
func MonthlyHistogram(records []internal.DocumentRecord) []internal.MonthBucket {
	out := make([]internal.MonthBucket, 12)
	for i := range out {
		out[i].Month = ThaiShortMonths[i]
	}
	for _, rec := range records {
		if rec.DocDate == nil {
			continue
		}
		out[int(rec.DocDate.Month())-1].Count++
	}
	return out
}

// Summarize computes the headline scalars for whatever set it is given.
// The distinct-document key falls back from ID to DocNumber per record.
func Summarize(records []internal.DocumentRecord) internal.Summary {
	docs := map[string]struct{}{}
	personnel := map[string]struct{}{}
	departments := map[string]struct{}{}
	var latest *time.Time

	for _, rec := range records {
		key := rec.ID
		if key == "" {
			key = rec.DocNumber
		}
		if key != "" {
			docs[key] = struct{}{}
		}
		if rec.Personnel != "" {
			personnel[rec.Personnel] = struct{}{}
		}
		if rec.IssuingDepartment != "" {
			departments[rec.IssuingDepartment] = struct{}{}
		}
		if rec.DocDate != nil && (latest == nil || rec.DocDate.After(*latest)) {
			d := *rec.DocDate
			latest = &d
		}
	}

	return internal.Summary{
		DocumentCount:   len(docs),
		PersonnelCount:  len(personnel),
		DepartmentCount: len(departments),
		LatestDocDate:   latest,
	}
}
