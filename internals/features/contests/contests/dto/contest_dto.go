// file: internals/features/contests/contests/dto/contest_dto.go
package dto

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	model "ievents_backend/internals/features/contests/contests/model"
	helper "ievents_backend/internals/helpers"
)

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

/* =========================================================
   Requests: CREATE
   ========================================================= */

type CreateContestRequest struct {
	ContestTitle       string    `json:"contest_title" validate:"required,min=3,max=200"`
	ContestDescription *string   `json:"contest_description" validate:"omitempty,max=5000"`
	ContestRules       *string   `json:"contest_rules" validate:"omitempty,max=10000"`
	ContestDeadline    time.Time `json:"contest_deadline" validate:"required"`
}

func (r *CreateContestRequest) Normalize() {
	r.ContestTitle = strings.TrimSpace(r.ContestTitle)
	r.ContestDescription = trimPtr(r.ContestDescription)
	r.ContestRules = trimPtr(r.ContestRules)
	r.ContestDeadline = r.ContestDeadline.UTC()
}

func (r *CreateContestRequest) Validate(v *validator.Validate) error {
	return v.Struct(r)
}

func (r *CreateContestRequest) ToModel(creatorID uuid.UUID) *model.ContestModel {
	return &model.ContestModel{
		ContestTitle:       r.ContestTitle,
		ContestDescription: r.ContestDescription,
		ContestRules:       r.ContestRules,
		ContestDeadline:    r.ContestDeadline,
		ContestStatus:      model.ContestActive,
		ContestCreatedBy:   creatorID,
	}
}

/* =========================================================
   Requests: PATCH (partial)
   ========================================================= */

type PatchContestRequest struct {
	ContestTitle       helper.PatchField[string]    `json:"contest_title"`
	ContestDescription helper.PatchField[string]    `json:"contest_description"`
	ContestRules       helper.PatchField[string]    `json:"contest_rules"`
	ContestDeadline    helper.PatchField[time.Time] `json:"contest_deadline"`
	ContestStatus      helper.PatchField[string]    `json:"contest_status"`
}

func (p *PatchContestRequest) Normalize() {
	if p.ContestTitle.Present && p.ContestTitle.Value != nil {
		v := strings.TrimSpace(*p.ContestTitle.Value)
		p.ContestTitle.Value = &v
	}
	if p.ContestDescription.Present {
		p.ContestDescription.Value = trimPtr(p.ContestDescription.Value)
	}
	if p.ContestRules.Present {
		p.ContestRules.Value = trimPtr(p.ContestRules.Value)
	}
	if p.ContestDeadline.Present && p.ContestDeadline.Value != nil {
		v := p.ContestDeadline.Value.UTC()
		p.ContestDeadline.Value = &v
	}
	if p.ContestStatus.Present && p.ContestStatus.Value != nil {
		v := strings.ToLower(strings.TrimSpace(*p.ContestStatus.Value))
		p.ContestStatus.Value = &v
	}
}

// ValidatePartial: hanya field yang dikirim. Kolom NOT NULL tidak boleh null.
func (p *PatchContestRequest) ValidatePartial() error {
	if p.ContestTitle.Present {
		if p.ContestTitle.Value == nil {
			return helper.InvalidInput("contest_title cannot be null")
		}
		// hitung rune, sama dengan tag min/max validator saat create
		if n := utf8.RuneCountInString(*p.ContestTitle.Value); n < 3 || n > 200 {
			return helper.InvalidInput("contest_title must be 3-200 characters")
		}
	}
	if p.ContestDeadline.IsNull() {
		return helper.InvalidInput("contest_deadline cannot be null")
	}
	if p.ContestStatus.Present {
		if p.ContestStatus.Value == nil || !model.ContestStatus(*p.ContestStatus.Value).Valid() {
			return helper.InvalidInput("invalid contest_status").
				WithHint("allowed", []string{string(model.ContestActive), string(model.ContestArchived)})
		}
	}
	return nil
}

func (p *PatchContestRequest) IsEmpty() bool {
	return !p.ContestTitle.Present && !p.ContestDescription.Present && !p.ContestRules.Present &&
		!p.ContestDeadline.Present && !p.ContestStatus.Present
}

// ApplyPatch: ubah model in-place sesuai field yang Present. Return true kalau deadline berubah.
func (p *PatchContestRequest) ApplyPatch(m *model.ContestModel) (deadlineChanged bool) {
	if val, ok := p.ContestTitle.Get(); ok && val != nil {
		m.ContestTitle = *val
	}
	if val, ok := p.ContestDescription.Get(); ok {
		// nullable → boleh nil (clear)
		m.ContestDescription = val
	}
	if val, ok := p.ContestRules.Get(); ok {
		m.ContestRules = val
	}
	if val, ok := p.ContestDeadline.Get(); ok && val != nil && !val.Equal(m.ContestDeadline) {
		m.ContestDeadline = *val
		deadlineChanged = true
	}
	if val, ok := p.ContestStatus.Get(); ok && val != nil {
		m.ContestStatus = model.ContestStatus(*val)
	}
	return deadlineChanged
}

/* =========================================================
   Query: LIST
   ========================================================= */

type ListContestsQuery struct {
	Status string `query:"status"`
	From   string `query:"from"`
	To     string `query:"to"`
	Q      string `query:"q"`
}

type ContestFilter struct {
	Status *model.ContestStatus
	From   *time.Time
	To     *time.Time
	Q      string
}

// ToFilter: from/to menerima RFC3339 atau YYYY-MM-DD (to = akhir hari).
func (q *ListContestsQuery) ToFilter() (ContestFilter, error) {
	var f ContestFilter
	if s := strings.ToLower(strings.TrimSpace(q.Status)); s != "" {
		st := model.ContestStatus(s)
		if !st.Valid() {
			return f, helper.InvalidInput("invalid status").
				WithHint("allowed", []string{string(model.ContestActive), string(model.ContestArchived)})
		}
		f.Status = &st
	}
	if s := strings.TrimSpace(q.From); s != "" {
		t, _, err := parseDateOrTime(s)
		if err != nil {
			return f, helper.InvalidInput("invalid from date")
		}
		f.From = &t
	}
	if s := strings.TrimSpace(q.To); s != "" {
		t, dateOnly, err := parseDateOrTime(s)
		if err != nil {
			return f, helper.InvalidInput("invalid to date")
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		f.To = &t
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		return f, helper.InvalidInput("to must not be before from")
	}
	f.Q = strings.TrimSpace(q.Q)
	return f, nil
}

func parseDateOrTime(s string) (time.Time, bool, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false, err
	}
	return t.UTC(), true, nil
}

/* =========================================================
   Response
   ========================================================= */

type ContestResponse struct {
	ContestID          uuid.UUID           `json:"contest_id"`
	ContestTitle       string              `json:"contest_title"`
	ContestDescription *string             `json:"contest_description"`
	ContestRules       *string             `json:"contest_rules"`
	ContestDeadline    time.Time           `json:"contest_deadline"`
	ContestStatus      model.ContestStatus `json:"contest_status"`
	ContestCreatedBy   uuid.UUID           `json:"contest_created_by"`
	ContestIsOpen      bool                `json:"contest_is_open"`
	ContestCreatedAt   time.Time           `json:"contest_created_at"`
	ContestUpdatedAt   time.Time           `json:"contest_updated_at"`
}

func ToContestResponse(m *model.ContestModel, now time.Time) ContestResponse {
	return ContestResponse{
		ContestID:          m.ContestID,
		ContestTitle:       m.ContestTitle,
		ContestDescription: m.ContestDescription,
		ContestRules:       m.ContestRules,
		ContestDeadline:    m.ContestDeadline,
		ContestStatus:      m.ContestStatus,
		ContestCreatedBy:   m.ContestCreatedBy,
		ContestIsOpen:      m.IsOpenAt(now),
		ContestCreatedAt:   m.ContestCreatedAt,
		ContestUpdatedAt:   m.ContestUpdatedAt,
	}
}

func ToContestResponseList(rows []model.ContestModel, now time.Time) []ContestResponse {
	out := make([]ContestResponse, 0, len(rows))
	for i := range rows {
		out = append(out, ToContestResponse(&rows[i], now))
	}
	return out
}
