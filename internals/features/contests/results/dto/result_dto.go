package dto

import (
	"math"
	"time"

	"github.com/google/uuid"

	contestDTO "ievents_backend/internals/features/contests/contests/dto"
	helper "ievents_backend/internals/helpers"
)

/* =========================================================
   Requests
   ========================================================= */

// UpsertResultRequest — POST /api/contests/:id/results
type UpsertResultRequest struct {
	StudentID string   `json:"student_id" validate:"required,uuid"`
	Score     *float64 `json:"score" validate:"required"`
	Rank      *int     `json:"rank" validate:"omitempty,min=1"`
}

// PatchResultRequest — PATCH /api/contests/:id/results/:studentId
// score: absent | value (null ditolak). rank: absent | null (clear) | value.
type PatchResultRequest struct {
	Score helper.PatchField[float64] `json:"score"`
	Rank  helper.PatchField[int]     `json:"rank"`
}

func ValidateScore(score float64) error {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return helper.InvalidInput("score must be a finite number")
	}
	return nil
}

func ValidateRank(rank *int) error {
	if rank != nil && *rank < 1 {
		return helper.InvalidInput("rank must be >= 1")
	}
	return nil
}

func (p *PatchResultRequest) ValidatePartial() error {
	if p.Score.Present {
		if p.Score.Value == nil {
			return helper.InvalidInput("score cannot be null")
		}
		if err := ValidateScore(*p.Score.Value); err != nil {
			return err
		}
	}
	if p.Rank.Present {
		return ValidateRank(p.Rank.Value)
	}
	return nil
}

func (p *PatchResultRequest) IsEmpty() bool {
	return !p.Score.Present && !p.Rank.Present
}

/* =========================================================
   Views
   ========================================================= */

// ResultView: baris leaderboard (join users).
type ResultView struct {
	ResultID        uuid.UUID `json:"result_id"`
	ResultStudentID uuid.UUID `json:"result_student_id"`
	StudentFullName string    `json:"student_full_name"`
	ResultScore     float64   `json:"result_score"`
	ResultRank      *int      `json:"result_rank"`
	ResultUpdatedAt time.Time `json:"result_updated_at"`
}

// StudentResultView: hasil satu student lintas contest.
type StudentResultView struct {
	ResultID        uuid.UUID `json:"result_id"`
	ContestID       uuid.UUID `json:"contest_id"`
	ContestTitle    string    `json:"contest_title"`
	ResultScore     float64   `json:"result_score"`
	ResultRank      *int      `json:"result_rank"`
	ResultUpdatedAt time.Time `json:"result_updated_at"`
}

type ContestResultsResponse struct {
	Contest contestDTO.ContestResponse `json:"contest"`
	Results []ResultView               `json:"results"`
	Count   int                        `json:"count"`
}
