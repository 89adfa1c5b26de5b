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
	model "ievents_backend/internals/features/contests/participants/model"
	resultModel "ievents_backend/internals/features/contests/results/model"
	notifModel "ievents_backend/internals/features/home/notifications/model"
	helper "ievents_backend/internals/helpers"
)

type fixture struct {
	db        *gorm.DB
	svc       *ParticipantService
	methodist uuid.UUID
	teacher   uuid.UUID
	contest   *contestModel.ContestModel
}

func setup(t *testing.T) *fixture {
	db := dbtest.Open(t)
	m := dbtest.CreateUser(t, db, constants.RoleMethodist, "Mila Methodist")
	tc := dbtest.CreateUser(t, db, constants.RoleTeacher, "Tono Teacher")
	c := dbtest.CreateContest(t, db, m.ID, "Math Olympiad", time.Now().Add(48*time.Hour))
	return &fixture{db: db, svc: NewParticipantService(db), methodist: m.ID, teacher: tc.ID, contest: c}
}

func (f *fixture) student(t *testing.T, name string) uuid.UUID {
	return dbtest.CreateUser(t, f.db, constants.RoleStudent, name).ID
}

func countRows(t *testing.T, db *gorm.DB, m any, where string, args ...any) int64 {
	var n int64
	require.NoError(t, db.Model(m).Where(where, args...).Count(&n).Error)
	return n
}

func TestRegisterStudents_CreatesPendingAndNotifies(t *testing.T) {
	f := setup(t)
	s1, s2 := f.student(t, "Ana"), f.student(t, "Budi")

	res, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{s1, s2}, f.teacher)
	require.NoError(t, err)
	assert.Equal(t, 2, res.RegisteredCount)
	assert.Len(t, res.Registered, 2)
	assert.Empty(t, res.AlreadyRegistered)

	for _, p := range res.Registered {
		assert.Equal(t, model.StatusPending, p.ParticipantStatus)
		require.NotNil(t, p.ParticipantRegisteredBy)
		assert.Equal(t, f.teacher, *p.ParticipantRegisteredBy)
	}
	assert.EqualValues(t, 1, countRows(t, f.db, &notifModel.NotificationModel{},
		"notification_user_id = ? AND notification_type = ?", s1, notifModel.TypeRegistered))
	assert.EqualValues(t, 1, countRows(t, f.db, &notifModel.NotificationModel{},
		"notification_user_id = ? AND notification_type = ?", s2, notifModel.TypeRegistered))
}

func TestRegisterStudents_DuplicateIsToleratedNotRenotified(t *testing.T) {
	f := setup(t)
	s1, s2 := f.student(t, "Ana"), f.student(t, "Budi")
	ctx := context.Background()

	_, err := f.svc.RegisterStudents(ctx, f.contest.ContestID, []uuid.UUID{s1}, f.teacher)
	require.NoError(t, err)

	res, err := f.svc.RegisterStudents(ctx, f.contest.ContestID, []uuid.UUID{s1, s2}, f.teacher)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RegisteredCount)
	assert.Equal(t, []uuid.UUID{s1}, res.AlreadyRegistered)
	assert.Equal(t, len(res.Registered)+len(res.AlreadyRegistered), 2)

	assert.EqualValues(t, 1, countRows(t, f.db, &notifModel.NotificationModel{},
		"notification_user_id = ? AND notification_type = ?", s1, notifModel.TypeRegistered))
	assert.EqualValues(t, 2, countRows(t, f.db, &model.ContestParticipantModel{},
		"participant_contest_id = ?", f.contest.ContestID))
}

func TestRegisterStudents_SameIDTwiceInOneRequest(t *testing.T) {
	f := setup(t)
	s1 := f.student(t, "Ana")

	res, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{s1, s1}, f.teacher)
	require.NoError(t, err)
	assert.Equal(t, 1, res.RegisteredCount)
	assert.Equal(t, []uuid.UUID{s1}, res.AlreadyRegistered)
}

func TestRegisterStudents_RejectsWholeBatchOnNonStudent(t *testing.T) {
	f := setup(t)
	s1 := f.student(t, "Ana")

	_, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{s1, f.teacher}, f.teacher)
	require.Error(t, err)
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, []uuid.UUID{f.teacher}, appErr.Hints["invalid"])

	assert.EqualValues(t, 0, countRows(t, f.db, &model.ContestParticipantModel{}, "1 = 1"))
	assert.EqualValues(t, 0, countRows(t, f.db, &notifModel.NotificationModel{}, "1 = 1"))
}

func TestRegisterStudents_UnknownIDRejected(t *testing.T) {
	f := setup(t)
	_, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{uuid.New()}, f.teacher)
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))
}

func TestRegisterStudents_Guards(t *testing.T) {
	f := setup(t)
	s1 := f.student(t, "Ana")
	ctx := context.Background()

	t.Run("empty list", func(t *testing.T) {
		_, err := f.svc.RegisterStudents(ctx, f.contest.ContestID, nil, f.teacher)
		assert.True(t, helper.IsKind(err, helper.KindInvalidInput))
	})

	t.Run("unknown contest", func(t *testing.T) {
		_, err := f.svc.RegisterStudents(ctx, uuid.New(), []uuid.UUID{s1}, f.teacher)
		assert.True(t, helper.IsKind(err, helper.KindNotFound))
	})

	t.Run("deadline passed", func(t *testing.T) {
		svc := NewParticipantService(f.db)
		svc.Now = func() time.Time { return f.contest.ContestDeadline.Add(time.Second) }
		_, err := svc.RegisterStudents(ctx, f.contest.ContestID, []uuid.UUID{s1}, f.teacher)
		require.Error(t, err)
		assert.True(t, helper.IsKind(err, helper.KindInvalidState))
		assert.Contains(t, err.Error(), "deadline passed")
	})

	t.Run("deadline exactly now", func(t *testing.T) {
		svc := NewParticipantService(f.db)
		svc.Now = func() time.Time { return f.contest.ContestDeadline }
		_, err := svc.RegisterStudents(ctx, f.contest.ContestID, []uuid.UUID{s1}, f.teacher)
		assert.True(t, helper.IsKind(err, helper.KindInvalidState))
	})

	t.Run("archived contest", func(t *testing.T) {
		archived := dbtest.CreateContest(t, f.db, f.methodist, "Old", time.Now().Add(time.Hour))
		require.NoError(t, f.db.Model(archived).Update("contest_status", contestModel.ContestArchived).Error)
		_, err := f.svc.RegisterStudents(ctx, archived.ContestID, []uuid.UUID{s1}, f.teacher)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "contest not active")
	})

	assert.EqualValues(t, 0, countRows(t, f.db, &model.ContestParticipantModel{}, "1 = 1"))
}

func TestSetRegistrationStatus(t *testing.T) {
	f := setup(t)
	s1 := f.student(t, "Ana")
	p := dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s1, &f.teacher, model.StatusPending)
	ctx := context.Background()

	out, err := f.svc.SetRegistrationStatus(ctx, f.contest.ContestID, p.ParticipantID, "approved")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, out.ParticipantStatus)

	// repeat is not a no-op: a second notification is written
	_, err = f.svc.SetRegistrationStatus(ctx, f.contest.ContestID, p.ParticipantID, "approved")
	require.NoError(t, err)
	assert.EqualValues(t, 2, countRows(t, f.db, &notifModel.NotificationModel{},
		"notification_user_id = ? AND notification_type = ?", s1, notifModel.TypeApproved))

	out, err = f.svc.SetRegistrationStatus(ctx, f.contest.ContestID, p.ParticipantID, "rejected")
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, out.ParticipantStatus)
	assert.EqualValues(t, 1, countRows(t, f.db, &notifModel.NotificationModel{},
		"notification_user_id = ? AND notification_type = ?", s1, notifModel.TypeRejected))

	_, err = f.svc.SetRegistrationStatus(ctx, f.contest.ContestID, p.ParticipantID, "pending")
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	_, err = f.svc.SetRegistrationStatus(ctx, f.contest.ContestID, uuid.New(), "approved")
	assert.True(t, helper.IsKind(err, helper.KindNotFound))

	// participant of another contest is not reachable through this contest
	other := dbtest.CreateContest(t, f.db, f.methodist, "Physics", time.Now().Add(time.Hour))
	_, err = f.svc.SetRegistrationStatus(ctx, other.ContestID, p.ParticipantID, "approved")
	assert.True(t, helper.IsKind(err, helper.KindNotFound))
}

func TestCancel(t *testing.T) {
	f := setup(t)
	s1, s2 := f.student(t, "Ana"), f.student(t, "Budi")
	ctx := context.Background()

	p1 := dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s1, &f.teacher, model.StatusPending)
	p2 := dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s2, &f.teacher, model.StatusApproved)

	err := f.svc.Cancel(ctx, f.contest.ContestID, p1.ParticipantID, s2)
	assert.True(t, helper.IsKind(err, helper.KindForbidden))

	require.NoError(t, f.svc.Cancel(ctx, f.contest.ContestID, p1.ParticipantID, s1))
	assert.EqualValues(t, 0, countRows(t, f.db, &model.ContestParticipantModel{}, "participant_id = ?", p1.ParticipantID))

	require.NoError(t, f.db.Create(&resultModel.ContestResultModel{
		ResultContestID: f.contest.ContestID,
		ResultStudentID: s2,
		ResultScore:     70,
	}).Error)
	err = f.svc.Cancel(ctx, f.contest.ContestID, p2.ParticipantID, f.teacher)
	assert.True(t, helper.IsKind(err, helper.KindInvalidState))
	assert.EqualValues(t, 1, countRows(t, f.db, &model.ContestParticipantModel{}, "participant_id = ?", p2.ParticipantID))
}

func TestListParticipantsAndRegistrations(t *testing.T) {
	f := setup(t)
	s1, s2 := f.student(t, "Ana"), f.student(t, "Budi")
	ctx := context.Background()
	dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s1, &f.teacher, model.StatusApproved)
	dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s2, &f.teacher, model.StatusPending)

	all, err := f.svc.ListParticipants(ctx, f.contest.ContestID, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	approved, err := f.svc.ListParticipants(ctx, f.contest.ContestID, "approved")
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Ana", approved[0].StudentFullName)

	_, err = f.svc.ListParticipants(ctx, f.contest.ContestID, "withdrawn")
	assert.True(t, helper.IsKind(err, helper.KindInvalidInput))

	regs, err := f.svc.ListRegistrations(ctx, s2)
	require.NoError(t, err)
	require.Len(t, regs, 1)
	assert.Equal(t, "Math Olympiad", regs[0].ContestTitle)
}

func TestRegisterStudents_NotificationFailureRollsBackWholeBatch(t *testing.T) {
	f := setup(t)
	s1, s2 := f.student(t, "Ana"), f.student(t, "Budi")
	dbtest.FailNthCreate(t, f.db, "notifications", 2)

	res, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{s1, s2}, f.teacher)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, dbtest.ErrInjected)
	assert.True(t, helper.IsKind(err, helper.KindInternal))

	// baris Ana sudah ter-insert sebelum kegagalan, tetap harus hilang
	assert.Zero(t, countRows(t, f.db, &model.ContestParticipantModel{}, "participant_contest_id = ?", f.contest.ContestID))
	assert.Zero(t, countRows(t, f.db, &notifModel.NotificationModel{}, "notification_user_id IN ?", []uuid.UUID{s1, s2}))
}

func TestRegisterStudents_InsertFailureRollsBackWholeBatch(t *testing.T) {
	f := setup(t)
	s1, s2, s3 := f.student(t, "Ana"), f.student(t, "Budi"), f.student(t, "Citra")
	dbtest.FailNthCreate(t, f.db, "contest_participants", 3)

	_, err := f.svc.RegisterStudents(context.Background(), f.contest.ContestID, []uuid.UUID{s1, s2, s3}, f.teacher)
	require.Error(t, err)
	assert.ErrorIs(t, err, dbtest.ErrInjected)

	assert.Zero(t, countRows(t, f.db, &model.ContestParticipantModel{}, "participant_contest_id = ?", f.contest.ContestID))
	assert.Zero(t, countRows(t, f.db, &notifModel.NotificationModel{}, "notification_user_id IN ?", []uuid.UUID{s1, s2, s3}))
}

func TestSetRegistrationStatus_NotificationFailureKeepsStatus(t *testing.T) {
	f := setup(t)
	s1 := f.student(t, "Ana")
	p := dbtest.CreateParticipant(t, f.db, f.contest.ContestID, s1, &f.teacher, model.StatusPending)
	dbtest.FailNthCreate(t, f.db, "notifications", 1)

	_, err := f.svc.SetRegistrationStatus(context.Background(), f.contest.ContestID, p.ParticipantID, "approved")
	require.Error(t, err)
	assert.ErrorIs(t, err, dbtest.ErrInjected)

	var got model.ContestParticipantModel
	require.NoError(t, f.db.First(&got, "participant_id = ?", p.ParticipantID).Error)
	assert.Equal(t, model.StatusPending, got.ParticipantStatus)
	assert.Zero(t, countRows(t, f.db, &notifModel.NotificationModel{}, "notification_user_id = ?", s1))
}
