package model

// CourseSummary aggregates every grade in a course into per-grade
// percentage statistics. Each grade contributes one observation of
// score/max_score*100; statistics are population statistics.
type CourseSummary struct {
	CourseID    int     `json:"course_id"`
	Code        string  `json:"code"`
	Assignments int     `json:"assignments"`
	Students    int     `json:"students"`
	AvgPct      float64 `json:"avg_pct"`
	MedianPct   float64 `json:"median_pct"`
	StddevPct   float64 `json:"stddev_pct"`
	PassRatePct float64 `json:"pass_rate_pct"`
}

// DistributionBucket is one of the 11 fixed histogram buckets covering
// 0–100%. Buckets 0–9 are ten points wide; bucket 10 holds only perfect
// scores.
type DistributionBucket struct {
	Bucket int    `json:"bucket"`
	Count  int    `json:"count"`
	Label  string `json:"bucketLabel"`
}

// AssignmentTrend is one point on a course's trend line: the mean
// percentage score for a single assignment.
type AssignmentTrend struct {
	AssignmentID int     `json:"assignmentId"`
	Title        string  `json:"title"`
	DueDate      *string `json:"dueDate"`
	AvgPct       float64 `json:"avg_pct"`
}

// IngestResult reports the outcome of one CSV upload batch.
type IngestResult struct {
	Upserts   int `json:"upserts"`
	NewGrades int `json:"new_grades"`
}
