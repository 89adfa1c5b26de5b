package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ievents_backend/internals/constants"
	participantService "ievents_backend/internals/features/contests/participants/service"
	resultService "ievents_backend/internals/features/contests/results/service"
	notifModel "ievents_backend/internals/features/home/notifications/model"
	notifService "ievents_backend/internals/features/home/notifications/service"
	userModel "ievents_backend/internals/features/users/user/model"
)

const (
	dateLayout           = "02 Jan 2006 15:04"
	notificationsPreview = 10
)

// Digests merender ringkasan on-demand langsung dari tabel sumber.
type Digests struct {
	DB           *gorm.DB
	Participants *participantService.ParticipantService
	Results      *resultService.ResultService
	Notifs       *notifService.NotificationService
}

func NewDigests(db *gorm.DB) *Digests {
	return &Digests{
		DB:           db,
		Participants: participantService.NewParticipantService(db),
		Results:      resultService.NewResultService(db),
		Notifs:       notifService.NewNotificationService(db),
	}
}

func (d *Digests) MyCompetitions(ctx context.Context, u *userModel.UserModel) (string, error) {
	switch u.Role {
	case constants.RoleStudent:
		return d.studentCompetitions(ctx, u.ID)
	case constants.RoleTeacher:
		return d.teacherCompetitions(ctx, u.ID)
	default:
		return d.methodistCompetitions(ctx, u.ID)
	}
}

func (d *Digests) studentCompetitions(ctx context.Context, studentID uuid.UUID) (string, error) {
	rows, err := d.Participants.ListRegistrations(ctx, studentID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "You are not registered for any competitions yet.", nil
	}
	var b strings.Builder
	b.WriteString("Your competitions:\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. %s (deadline %s) - %s\n", i+1, r.ContestTitle, r.ContestDeadline.UTC().Format(dateLayout), r.ParticipantStatus)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type teacherRow struct {
	ContestID         uuid.UUID
	ContestTitle      string
	ContestDeadline   time.Time
	StudentFullName   string
	ParticipantStatus string
}

func (d *Digests) teacherCompetitions(ctx context.Context, teacherID uuid.UUID) (string, error) {
	var rows []teacherRow
	if err := d.DB.WithContext(ctx).Table("contest_participants AS p").
		Select("c.contest_id, c.contest_title, c.contest_deadline, u.full_name AS student_full_name, p.participant_status").
		Joins("JOIN contests c ON c.contest_id = p.participant_contest_id").
		Joins("JOIN users u ON u.id = p.participant_student_id").
		Where("p.participant_registered_by = ?", teacherID).
		Order("c.contest_deadline ASC, c.contest_id ASC, u.full_name ASC").
		Scan(&rows).Error; err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "You have not registered any students yet.", nil
	}
	var b strings.Builder
	b.WriteString("Students you registered:\n")
	// judul bisa kembar, kelompokkan per id
	var last uuid.UUID
	for _, r := range rows {
		if r.ContestID != last {
			fmt.Fprintf(&b, "\n%s (deadline %s)\n", r.ContestTitle, r.ContestDeadline.UTC().Format(dateLayout))
			last = r.ContestID
		}
		fmt.Fprintf(&b, "  - %s: %s\n", r.StudentFullName, r.ParticipantStatus)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

type methodistRow struct {
	ContestTitle    string
	ContestDeadline time.Time
	ContestStatus   string
	Participants    int64
}

func (d *Digests) methodistCompetitions(ctx context.Context, methodistID uuid.UUID) (string, error) {
	var rows []methodistRow
	if err := d.DB.WithContext(ctx).Table("contests AS c").
		Select("c.contest_title, c.contest_deadline, c.contest_status, COUNT(p.participant_id) AS participants").
		Joins("LEFT JOIN contest_participants p ON p.participant_contest_id = c.contest_id").
		Where("c.contest_created_by = ?", methodistID).
		Group("c.contest_id, c.contest_title, c.contest_deadline, c.contest_status").
		Order("c.contest_deadline DESC").
		Scan(&rows).Error; err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "You have not created any competitions yet.", nil
	}
	var b strings.Builder
	b.WriteString("Competitions you manage:\n")
	for i, r := range rows {
		fmt.Fprintf(&b, "%d. %s [%s] deadline %s, %d participants\n",
			i+1, r.ContestTitle, r.ContestStatus, r.ContestDeadline.UTC().Format(dateLayout), r.Participants)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (d *Digests) MyResults(ctx context.Context, u *userModel.UserModel) (string, error) {
	if u.Role != constants.RoleStudent {
		return "Results are only available for student accounts.", nil
	}
	rows, err := d.Results.ListStudentResults(ctx, u.ID)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "No results have been posted for you yet.", nil
	}
	var b strings.Builder
	b.WriteString("Your results:\n")
	for _, r := range rows {
		line := fmt.Sprintf("- %s: score %s", r.ContestTitle, notifService.FormatScore(r.ResultScore))
		if r.ResultRank != nil {
			line += fmt.Sprintf(", rank %d", *r.ResultRank)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func Profile(u *userModel.UserModel) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\nEmail: %s\nRole: %s", u.FullName, u.Email, u.Role)
	if u.TelegramLinkedAt != nil {
		fmt.Fprintf(&b, "\nLinked since: %s", u.TelegramLinkedAt.UTC().Format(dateLayout))
	}
	return b.String()
}

func (d *Digests) UnreadNotifications(ctx context.Context, u *userModel.UserModel) (string, error) {
	unread := false
	rows, err := d.Notifs.List(ctx, u.ID, &unread)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "You have no unread notifications.", nil
	}
	// List dibatasi; sisa dihitung dari total unread
	total, err := d.Notifs.UnreadCount(ctx, u.ID)
	if err != nil {
		return "", err
	}
	return renderNotifications(rows, total), nil
}

func renderNotifications(rows []notifModel.NotificationModel, total int64) string {
	var b strings.Builder
	b.WriteString("Unread notifications:\n")
	for i, n := range rows {
		if i == notificationsPreview {
			fmt.Fprintf(&b, "...and %d more in the web app.\n", total-notificationsPreview)
			break
		}
		fmt.Fprintf(&b, "- %s: %s\n", n.NotificationTitle, n.NotificationMessage)
	}
	return strings.TrimRight(b.String(), "\n")
}
