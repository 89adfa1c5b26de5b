package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	"ievents_backend/internals/databases/dbtest"
	contestModel "ievents_backend/internals/features/contests/contests/model"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	"ievents_backend/internals/features/contests/results/dto"
	model "ievents_backend/internals/features/contests/results/model"
	notifModel "ievents_backend/internals/features/home/notifications/model"
	helper "ievents_backend/internals/helpers"
)

func intPtr(v int) *int { return &v }

func setup(t *testing.T) (*gorm.DB, *ResultService, *contestModel.ContestModel) {
	db := dbtest.Open(t)
	m := dbtest.CreateUser(t, db, constants.RoleMethodist, "Mila")
	c := dbtest.CreateContest(t, db, m.ID, "Math Olympiad", time.Now().Add(24*time.Hour))
	return db, NewResultService(db), c
}

func approvedStudent(t *testing.T, db *gorm.DB, contestID uuid.UUID, name string) uuid.UUID {
	s := dbtest.CreateUser(t, db, constants.RoleStudent, name)
	dbtest.CreateParticipant(t, db, contestID, s.ID, nil, participantModel.StatusApproved)
	return s.ID
}

func TestUpsertResult_RequiresApprovedParticipant(t *testing.T) {
	db, svc, c := setup(t)
	ctx := context.Background()

	pending := dbtest.CreateUser(t, db, constants.RoleStudent, "Pending")
	dbtest.CreateParticipant(t, db, c.ContestID, pending.ID, nil, participantModel.StatusPending)
	stranger := dbtest.CreateUser(t, db, constants.RoleStudent, "Stranger")

	for _, id := range []uuid.UUID{pending.ID, stranger.ID} {
		_, err := svc.UpsertResult(ctx, c.ContestID, id, 50, nil)
		require.Error(t, err)
		assert.True(t, helper.IsKind(err, helper.KindInvalidState))
		assert.Contains(t, err.Error(), "student not approved participant")
	}

	_, err := svc.UpsertResult(ctx, uuid.New(), pending.ID, 50, nil)
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	var n int64
	require.NoError(t, db.Model(&model.ContestResultModel{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestUpsertResult_OverwritesSingleRow(t *testing.T) {
	db, svc, c := setup(t)
	ctx := context.Background()
	sid := approvedStudent(t, db, c.ContestID, "Ana")

	first, err := svc.UpsertResult(ctx, c.ContestID, sid, 80, intPtr(2))
	require.NoError(t, err)
	second, err := svc.UpsertResult(ctx, c.ContestID, sid, 92.5, intPtr(1))
	require.NoError(t, err)

	assert.Equal(t, first.ResultID, second.ResultID)
	assert.Equal(t, 92.5, second.ResultScore)
	require.NotNil(t, second.ResultRank)
	assert.Equal(t, 1, *second.ResultRank)

	var n int64
	require.NoError(t, db.Model(&model.ContestResultModel{}).
		Where("result_contest_id = ? AND result_student_id = ?", c.ContestID, sid).Count(&n).Error)
	assert.EqualValues(t, 1, n)

	// one result notification per write
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_user_id = ? AND notification_type = ?", sid, notifModel.TypeResult).Count(&n).Error)
	assert.EqualValues(t, 2, n)
}

func TestUpsertResult_RejectsBadValues(t *testing.T) {
	db, svc, c := setup(t)
	sid := approvedStudent(t, db, c.ContestID, "Ana")

	_, err := svc.UpsertResult(context.Background(), c.ContestID, sid, 10, intPtr(0))
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))
}

func TestGetContestResults_LeaderboardOrder(t *testing.T) {
	db, svc, c := setup(t)
	ctx := context.Background()

	a := approvedStudent(t, db, c.ContestID, "A")
	b := approvedStudent(t, db, c.ContestID, "B")
	cc := approvedStudent(t, db, c.ContestID, "C")
	d := approvedStudent(t, db, c.ContestID, "D")

	_, err := svc.UpsertResult(ctx, c.ContestID, a, 60, nil)
	require.NoError(t, err)
	_, err = svc.UpsertResult(ctx, c.ContestID, b, 99, nil)
	require.NoError(t, err)
	_, err = svc.UpsertResult(ctx, c.ContestID, cc, 50, intPtr(2))
	require.NoError(t, err)
	_, err = svc.UpsertResult(ctx, c.ContestID, d, 40, intPtr(1))
	require.NoError(t, err)

	_, rows, err := svc.GetContestResults(ctx, c.ContestID)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	names := make([]string, 0, len(rows))
	for _, r := range rows {
		names = append(names, r.StudentFullName)
	}
	assert.Equal(t, []string{"D", "C", "B", "A"}, names)
}

func TestPatchResult(t *testing.T) {
	db, svc, c := setup(t)
	ctx := context.Background()
	sid := approvedStudent(t, db, c.ContestID, "Ana")

	_, err := svc.PatchResult(ctx, c.ContestID, sid, dto.PatchResultRequest{Score: helper.Set(1.0)})
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	_, err = svc.UpsertResult(ctx, c.ContestID, sid, 70, intPtr(3))
	require.NoError(t, err)

	// absent rank stays
	out, err := svc.PatchResult(ctx, c.ContestID, sid, dto.PatchResultRequest{Score: helper.Set(75.0)})
	require.NoError(t, err)
	assert.Equal(t, 75.0, out.ResultScore)
	require.NotNil(t, out.ResultRank)
	assert.Equal(t, 3, *out.ResultRank)

	// explicit null clears rank
	out, err = svc.PatchResult(ctx, c.ContestID, sid, dto.PatchResultRequest{Rank: helper.Null[int]()})
	require.NoError(t, err)
	assert.Nil(t, out.ResultRank)

	var stored model.ContestResultModel
	require.NoError(t, db.Where("result_student_id = ?", sid).First(&stored).Error)
	assert.Nil(t, stored.ResultRank)
	assert.Equal(t, 75.0, stored.ResultScore)

	_, err = svc.PatchResult(ctx, c.ContestID, sid, dto.PatchResultRequest{Score: helper.Null[float64]()})
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))
}

func TestListStudentResults(t *testing.T) {
	db, svc, c := setup(t)
	ctx := context.Background()
	sid := approvedStudent(t, db, c.ContestID, "Ana")

	_, err := svc.UpsertResult(ctx, c.ContestID, sid, 88, nil)
	require.NoError(t, err)

	rows, err := svc.ListStudentResults(ctx, sid)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Math Olympiad", rows[0].ContestTitle)
	assert.Equal(t, 88.0, rows[0].ResultScore)
}

func TestUpsertResult_NotificationFailureLeavesNoResult(t *testing.T) {
	db, svc, c := setup(t)
	sid := approvedStudent(t, db, c.ContestID, "Ana")
	dbtest.FailNthCreate(t, db, "notifications", 1)

	_, err := svc.UpsertResult(context.Background(), c.ContestID, sid, 88, intPtr(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, dbtest.ErrInjected)

	var n int64
	require.NoError(t, db.Model(&model.ContestResultModel{}).
		Where("result_contest_id = ? AND result_student_id = ?", c.ContestID, sid).Count(&n).Error)
	assert.Zero(t, n)
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).Where("notification_user_id = ?", sid).Count(&n).Error)
	assert.Zero(t, n)
}
