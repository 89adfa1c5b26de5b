package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"ievents_backend/internals/features/contests/results/dto"
	notifService "ievents_backend/internals/features/home/notifications/service"
)

var ErrNotConfigured = errors.New("sheets export is not configured")

// Writer menulis satu tab penuh (header + rows), menimpa isi lama.
type Writer interface {
	WriteTable(ctx context.Context, tab string, rows [][]interface{}) error
}

type SheetsClient struct {
	srv           *sheetsv4.Service
	spreadsheetID string
}

func NewSheetsClient(ctx context.Context, serviceAccountJSONPath, spreadsheetID string) (*SheetsClient, error) {
	if strings.TrimSpace(serviceAccountJSONPath) == "" || strings.TrimSpace(spreadsheetID) == "" {
		return nil, ErrNotConfigured
	}
	if _, err := os.Stat(serviceAccountJSONPath); err != nil {
		return nil, fmt.Errorf("service account json: %w", err)
	}
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, err
	}
	return &SheetsClient{srv: srv, spreadsheetID: spreadsheetID}, nil
}

func (c *SheetsClient) SpreadsheetID() string { return c.spreadsheetID }

func (c *SheetsClient) ensureTab(ctx context.Context, tab string) error {
	ss, err := c.srv.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && sh.Properties.Title == tab {
			return nil
		}
	}
	req := &sheetsv4.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsv4.Request{{
			AddSheet: &sheetsv4.AddSheetRequest{Properties: &sheetsv4.SheetProperties{Title: tab}},
		}},
	}
	_, err = c.srv.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (c *SheetsClient) WriteTable(ctx context.Context, tab string, rows [][]interface{}) error {
	if err := c.ensureTab(ctx, tab); err != nil {
		return fmt.Errorf("ensure tab: %w", err)
	}
	rng := tab + "!A:Z"
	if _, err := c.srv.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &sheetsv4.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	vr := &sheetsv4.ValueRange{Values: rows}
	_, err := c.srv.Spreadsheets.Values.Update(c.spreadsheetID, tab+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

// LeaderboardTable: header + baris dalam urutan leaderboard yang sudah diterima.
func LeaderboardTable(rows []dto.ResultView) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	out = append(out, []interface{}{"Position", "Student", "Score", "Rank", "Updated at"})
	for i, r := range rows {
		rank := ""
		if r.ResultRank != nil {
			rank = fmt.Sprint(*r.ResultRank)
		}
		out = append(out, []interface{}{
			i + 1,
			r.StudentFullName,
			notifService.FormatScore(r.ResultScore),
			rank,
			r.ResultUpdatedAt.UTC().Format("2006-01-02 15:04:05"),
		})
	}
	return out
}
