package service

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"ievents_backend/internals/features/home/notifications/model"
)

const deadlineLayout = "02 Jan 2006 15:04 MST"

// Teks dibuat saat transisi; rename contest belakangan tidak mengubah histori.

func ContestCreated(userID, contestID uuid.UUID, title string, deadline time.Time) NewNotification {
	return NewNotification{
		UserID:  userID,
		Type:    model.TypeContestCreated,
		Title:   "New contest",
		Message: fmt.Sprintf("New contest %q is open for registration until %s.", title, deadline.UTC().Format(deadlineLayout)),
		Payload: map[string]any{"contest_id": contestID.String()},
	}
}

func Registered(studentID, contestID uuid.UUID, title string) NewNotification {
	return NewNotification{
		UserID:  studentID,
		Type:    model.TypeRegistered,
		Title:   "Registered for contest",
		Message: fmt.Sprintf("You have been registered for contest %q. Your application is pending review.", title),
		Payload: map[string]any{"contest_id": contestID.String()},
	}
}

func Approved(studentID, contestID uuid.UUID, title string) NewNotification {
	return NewNotification{
		UserID:  studentID,
		Type:    model.TypeApproved,
		Title:   "Participation confirmed",
		Message: fmt.Sprintf("Your participation in contest %q is confirmed.", title),
		Payload: map[string]any{"contest_id": contestID.String()},
	}
}

func Rejected(studentID, contestID uuid.UUID, title string) NewNotification {
	return NewNotification{
		UserID:  studentID,
		Type:    model.TypeRejected,
		Title:   "Application rejected",
		Message: fmt.Sprintf("Your application for contest %q was rejected.", title),
		Payload: map[string]any{"contest_id": contestID.String()},
	}
}

func ResultPosted(studentID, contestID uuid.UUID, title string, score float64, rank *int) NewNotification {
	msg := fmt.Sprintf("Your result for contest %q: score %s", title, FormatScore(score))
	payload := map[string]any{"contest_id": contestID.String(), "score": score}
	if rank != nil {
		msg += fmt.Sprintf(", rank %d", *rank)
		payload["rank"] = *rank
	}
	return NewNotification{
		UserID:  studentID,
		Type:    model.TypeResult,
		Title:   "Result posted",
		Message: msg + ".",
		Payload: payload,
	}
}

func DeadlineReminder(userID, contestID uuid.UUID, title string, deadline time.Time) NewNotification {
	return NewNotification{
		UserID:  userID,
		Type:    model.TypeDeadlineReminder,
		Title:   "Deadline approaching",
		Message: fmt.Sprintf("Contest %q closes at %s.", title, deadline.UTC().Format(deadlineLayout)),
		Payload: map[string]any{"contest_id": contestID.String()},
	}
}

// FormatScore: 87 → "87", 87.5 → "87.5"
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', -1, 64)
}
