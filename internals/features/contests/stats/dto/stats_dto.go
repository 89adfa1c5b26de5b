package dto

import (
	contestDTO "ievents_backend/internals/features/contests/contests/dto"
	resultDTO "ievents_backend/internals/features/contests/results/dto"
)

type StatusCounts struct {
	Pending  int64 `json:"pending"`
	Approved int64 `json:"approved"`
	Rejected int64 `json:"rejected"`
	Total    int64 `json:"total"`
}

type ResultSummary struct {
	Count        int64    `json:"count"`
	AverageScore *float64 `json:"average_score"`
	BestScore    *float64 `json:"best_score"`
}

type ContestStatsResponse struct {
	Contest      contestDTO.ContestResponse `json:"contest"`
	Participants StatusCounts               `json:"participants"`
	Results      ResultSummary              `json:"results"`
}

type StudentDashboardResponse struct {
	Registrations       StatusCounts                  `json:"registrations"`
	Results             []resultDTO.StudentResultView `json:"results"`
	AverageScore        *float64                      `json:"average_score"`
	PredictedScore      *float64                      `json:"predicted_score"`
	UnreadNotifications int64                         `json:"unread_notifications"`
}
