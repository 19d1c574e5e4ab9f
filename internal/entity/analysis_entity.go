package entity

import "time"

type Priority string

const (
	PriorityUrgent Priority = "URGENT"
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

type Insight struct {
	Title   string
	Content string
}

type Recommendation struct {
	Title    string
	Content  string
	Priority Priority
}

type AnalysisSummary struct {
	SessionId       string
	Insights        []Insight
	Recommendations []Recommendation
	Degraded        bool
	GeneratedAt     time.Time
}

type CentralProblem struct {
	SessionId   string
	Problem     string
	Rationale   string
	Degraded    bool
	GeneratedAt time.Time
}
