package dto

import "time"

type InsightResponse struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type RecommendationResponse struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Priority string `json:"priority"`
}

type AnalysisSummaryResponse struct {
	SessionId       string                   `json:"session_id"`
	Insights        []InsightResponse        `json:"insights"`
	Recommendations []RecommendationResponse `json:"recommendations"`
	Degraded        bool                     `json:"degraded"`
	GeneratedAt     time.Time                `json:"generated_at"`
}

type CentralProblemResponse struct {
	SessionId   string    `json:"session_id"`
	Problem     string    `json:"problem"`
	Rationale   string    `json:"rationale"`
	Degraded    bool      `json:"degraded"`
	GeneratedAt time.Time `json:"generated_at"`
}
