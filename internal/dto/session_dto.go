package dto

import "time"

type CreateSessionRequest struct {
	ProjectName string `json:"project_name" validate:"max=255"`
	ThemeName   string `json:"theme_name" validate:"max=255"`
}

type UpdateSessionRequest struct {
	ProjectName string `json:"project_name" validate:"max=255"`
	ThemeName   string `json:"theme_name" validate:"max=255"`
}

type SessionLinksResponse struct {
	Token       string `json:"token"`
	Participant string `json:"participant_url"`
	Facilitator string `json:"facilitator_url"`
}

type SessionResponse struct {
	Token          string               `json:"token"`
	ProjectName    string               `json:"project_name"`
	ThemeName      string               `json:"theme_name"`
	LastActivityAt *time.Time           `json:"last_activity_at"`
	Counts         BucketCountsResponse `json:"counts"`
	Links          SessionLinksResponse `json:"links"`
}
