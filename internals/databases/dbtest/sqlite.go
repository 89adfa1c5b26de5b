// Package dbtest menyiapkan database sqlite sementara untuk test service/handler.
package dbtest

import (
	"errors"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "ievents_backend/internals/databases"
	contestModel "ievents_backend/internals/features/contests/contests/model"
	participantModel "ievents_backend/internals/features/contests/participants/model"
	userModel "ievents_backend/internals/features/users/user/model"
)

// Open: file sqlite di t.TempDir() dengan skema lengkap. Ditutup otomatis.
func Open(t testing.TB) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_busy_timeout=5000"),
		database.GormConfig(gormLogger.Default.LogMode(gormLogger.Silent)))
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func CreateUser(t testing.TB, db *gorm.DB, role, name string) *userModel.UserModel {
	t.Helper()
	u := &userModel.UserModel{
		FullName: name,
		Email:    uuid.NewString()[:8] + "@" + role + ".test",
		Password: "x",
		Role:     role,
		IsActive: true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateContest(t testing.TB, db *gorm.DB, creator uuid.UUID, title string, deadline time.Time) *contestModel.ContestModel {
	t.Helper()
	c := &contestModel.ContestModel{
		ContestTitle:     title,
		ContestDeadline:  deadline.UTC(),
		ContestStatus:    contestModel.ContestActive,
		ContestCreatedBy: creator,
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func CreateParticipant(t testing.TB, db *gorm.DB, contestID, studentID uuid.UUID, registeredBy *uuid.UUID, status participantModel.ParticipantStatus) *participantModel.ContestParticipantModel {
	t.Helper()
	p := &participantModel.ContestParticipantModel{
		ParticipantContestID:    contestID,
		ParticipantStudentID:    studentID,
		ParticipantRegisteredBy: registeredBy,
		ParticipantStatus:       status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

// ErrInjected dikembalikan oleh FailNthCreate.
var ErrInjected = errors.New("injected insert failure")

// FailNthCreate: insert ke-n (1-based) ke tabel table gagal dengan ErrInjected.
// Callback dilepas saat test selesai.
func FailNthCreate(t testing.TB, db *gorm.DB, table string, n int) {
	t.Helper()
	name := "dbtest:fail_" + table
	var seen atomic.Int32
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register(name, func(tx *gorm.DB) {
		if tx.Statement.Table != table {
			return
		}
		if int(seen.Add(1)) == n {
			_ = tx.AddError(ErrInjected)
		}
	}))
	t.Cleanup(func() {
		_ = db.Callback().Create().Remove(name)
	})
}
