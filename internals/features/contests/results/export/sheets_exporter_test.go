package export

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ievents_backend/internals/features/contests/results/dto"
)

func TestLeaderboardTable(t *testing.T) {
	rank := 1
	at := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	rows := []dto.ResultView{
		{ResultID: uuid.New(), StudentFullName: "Ana", ResultScore: 97.5, ResultRank: &rank, ResultUpdatedAt: at},
		{ResultID: uuid.New(), StudentFullName: "Budi", ResultScore: 80, ResultUpdatedAt: at},
	}

	table := LeaderboardTable(rows)
	require.Len(t, table, 3)
	assert.Equal(t, []interface{}{"Position", "Student", "Score", "Rank", "Updated at"}, table[0])
	assert.Equal(t, []interface{}{1, "Ana", "97.5", "1", "2026-03-01 10:30:00"}, table[1])
	assert.Equal(t, []interface{}{2, "Budi", "80", "", "2026-03-01 10:30:00"}, table[2])
}

func TestNewSheetsClient_NotConfigured(t *testing.T) {
	_, err := NewSheetsClient(context.Background(), "", "sheet")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
