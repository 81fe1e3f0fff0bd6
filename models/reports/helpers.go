package reports

import "gorm.io/gorm"

type bucket struct {
	Label string
	Total int64
}

// groupCount runs a GROUP BY count over one column and returns label->count.
// Rows with a null label are excluded unless includeNull is set.
func groupCount(q *gorm.DB, column string, includeNull bool) (map[string]int64, error) {
	if !includeNull {
		q = q.Where(column + " IS NOT NULL")
	}
	var buckets []bucket
	err := q.Select(column + " AS label, COUNT(*) AS total").Group(column).Scan(&buckets).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(buckets))
	for _, b := range buckets {
		out[b.Label] = b.Total
	}
	return out, nil
}

func countRows(q *gorm.DB) (int64, error) {
	var n int64
	err := q.Count(&n).Error
	return n, err
}
