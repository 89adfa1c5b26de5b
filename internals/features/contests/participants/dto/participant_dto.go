package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	contestModel "ievents_backend/internals/features/contests/contests/model"
	model "ievents_backend/internals/features/contests/participants/model"
	helper "ievents_backend/internals/helpers"
)

/* =========================================================
   Requests
   ========================================================= */

// RegisterStudentsRequest — POST /api/contests/:id/register
type RegisterStudentsRequest struct {
	StudentIDs []string `json:"student_ids"`
}

// ParseIDs: urutan input dipertahankan (termasuk duplikat).
func (r *RegisterStudentsRequest) ParseIDs() ([]uuid.UUID, error) {
	out := make([]uuid.UUID, 0, len(r.StudentIDs))
	var bad []string
	for _, raw := range r.StudentIDs {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			bad = append(bad, raw)
			continue
		}
		out = append(out, id)
	}
	if len(bad) > 0 {
		return nil, helper.InvalidInput("student_ids must contain valid UUIDs").WithHint("invalid", bad)
	}
	return out, nil
}

// UpdateStatusRequest — PATCH /api/contests/:id/participants/:participantId
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Normalize() {
	r.Status = strings.ToLower(strings.TrimSpace(r.Status))
}

/* =========================================================
   Responses
   ========================================================= */

type RegistrationResult struct {
	Registered        []model.ContestParticipantModel `json:"registered"`
	AlreadyRegistered []uuid.UUID                     `json:"alreadyRegistered"`
	RegisteredCount   int                             `json:"registeredCount"`
}

// ParticipantView: baris peserta + identitas student (join users).
type ParticipantView struct {
	ParticipantID           uuid.UUID               `json:"participant_id"`
	ParticipantContestID    uuid.UUID               `json:"participant_contest_id"`
	ParticipantStudentID    uuid.UUID               `json:"participant_student_id"`
	ParticipantRegisteredBy *uuid.UUID              `json:"participant_registered_by,omitempty"`
	ParticipantStatus       model.ParticipantStatus `json:"participant_status"`
	ParticipantCreatedAt    time.Time               `json:"participant_created_at"`
	StudentFullName         string                  `json:"student_full_name"`
	StudentEmail            string                  `json:"student_email"`
}

// RegistrationView: registrasi milik satu student + ringkasan contest.
type RegistrationView struct {
	ParticipantID        uuid.UUID                  `json:"participant_id"`
	ParticipantStatus    model.ParticipantStatus    `json:"participant_status"`
	ParticipantCreatedAt time.Time                  `json:"participant_created_at"`
	ContestID            uuid.UUID                  `json:"contest_id"`
	ContestTitle         string                     `json:"contest_title"`
	ContestDeadline      time.Time                  `json:"contest_deadline"`
	ContestStatus        contestModel.ContestStatus `json:"contest_status"`
}
