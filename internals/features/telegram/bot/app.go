package bot

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"gorm.io/gorm"

	"ievents_backend/internals/features/telegram/session"
	userModel "ievents_backend/internals/features/users/user/model"
)

const (
	msgHelp = "Available commands:\n" +
		"/login - link this chat to your iEvents account\n" +
		"/logout - unlink this chat\n" +
		"/mycompetitions - your competitions\n" +
		"/myresults - your results\n" +
		"/notifications - unread notifications\n" +
		"/profile - your account\n" +
		"/help - this message"
	msgNotLinked    = "This chat is not linked yet. Send /login to connect your account."
	msgAskEmail     = "Please send the email address of your iEvents account."
	msgBadEmail     = "That does not look like an email address. Please try again."
	msgNoSuchUser   = "No account was found for this email. Send /login to try again."
	msgUnlinked     = "This chat has been unlinked from your account."
	msgInternalFail = "Something went wrong, please try again later."
)

type App struct {
	api      *tgbotapi.BotAPI
	msg      Messenger
	sessions session.Store
	links    *Linker
	digests  *Digests
	validate *validator.Validate
}

func New(token string, db *gorm.DB, sessions session.Store) (*App, error) {
	b, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	b.Debug = false
	a := NewWithMessenger(NewAPIMessenger(b), db, sessions)
	a.api = b
	return a, nil
}

// NewWithMessenger: tanpa koneksi Telegram (dipakai test dan relay).
func NewWithMessenger(m Messenger, db *gorm.DB, sessions session.Store) *App {
	return &App{
		msg:      m,
		sessions: sessions,
		links:    NewLinker(db),
		digests:  NewDigests(db),
		validate: validator.New(),
	}
}

func (a *App) Messenger() Messenger { return a.msg }

func (a *App) Run(ctx context.Context) error {
	if a.api == nil {
		return errors.New("bot: no telegram api configured")
	}
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := a.api.GetUpdatesChan(u)
	defer a.api.StopReceivingUpdates()

	log.Printf("[BOT] authorized as @%s", a.api.Self.UserName)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				return errors.New("bot: updates channel closed")
			}
			if upd.Message == nil {
				continue
			}
			m := upd.Message
			username := ""
			if m.From != nil {
				username = m.From.UserName
			}
			if err := a.HandleMessage(ctx, m.Chat.ID, username, m.Text); err != nil {
				log.Printf("[BOT] handle msg chat=%d: %v", m.Chat.ID, err)
			}
		}
	}
}

func (a *App) reply(chatID int64, text string) error {
	return SendLong(a.msg, chatID, text)
}

// HandleMessage: satu update teks. Error internal dibalas pesan generik lalu dikembalikan untuk log.
func (a *App) HandleMessage(ctx context.Context, chatID int64, username, text string) error {
	txt := strings.TrimSpace(text)
	cmd := commandOf(txt)

	var err error
	switch cmd {
	case "/start":
		err = a.handleStart(ctx, chatID)
	case "/login":
		err = a.handleLogin(ctx, chatID)
	case "/logout":
		err = a.handleLogout(ctx, chatID)
	case "/mycompetitions":
		err = a.withUser(ctx, chatID, func(u *userModel.UserModel) (string, error) {
			return a.digests.MyCompetitions(ctx, u)
		})
	case "/myresults":
		err = a.withUser(ctx, chatID, func(u *userModel.UserModel) (string, error) {
			return a.digests.MyResults(ctx, u)
		})
	case "/notifications":
		err = a.withUser(ctx, chatID, func(u *userModel.UserModel) (string, error) {
			return a.digests.UnreadNotifications(ctx, u)
		})
	case "/profile":
		err = a.withUser(ctx, chatID, func(u *userModel.UserModel) (string, error) {
			return Profile(u), nil
		})
	case "/help":
		err = a.reply(chatID, msgHelp)
	case "":
		err = a.handleFreeText(ctx, chatID, username, txt)
	default:
		err = a.reply(chatID, msgHelp)
	}

	if err != nil {
		_ = a.msg.SendText(chatID, msgInternalFail)
	}
	return err
}

// commandOf: "/login@iEventsBot foo" → "/login"; teks biasa → "".
func commandOf(txt string) string {
	if !strings.HasPrefix(txt, "/") {
		return ""
	}
	first := strings.Fields(txt)[0]
	if i := strings.IndexByte(first, '@'); i > 0 {
		first = first[:i]
	}
	return strings.ToLower(first)
}

func (a *App) handleStart(ctx context.Context, chatID int64) error {
	u, err := a.links.UserByChat(ctx, chatID)
	if err != nil {
		return err
	}
	if u == nil {
		return a.reply(chatID, "Welcome to iEvents!\n"+msgNotLinked+"\n\n"+msgHelp)
	}
	return a.reply(chatID, "Welcome back, "+u.FullName+"!\n\n"+msgHelp)
}

func (a *App) handleLogin(ctx context.Context, chatID int64) error {
	if err := a.sessions.Set(ctx, chatID, session.Session{State: session.StateAwaitingEmailInput}); err != nil {
		return err
	}
	return a.reply(chatID, msgAskEmail)
}

func (a *App) handleLogout(ctx context.Context, chatID int64) error {
	if err := a.sessions.Delete(ctx, chatID); err != nil {
		return err
	}
	if _, err := a.links.Unlink(ctx, chatID); err != nil {
		return err
	}
	return a.reply(chatID, msgUnlinked)
}

// handleFreeText: teks bebas hanya dianggap email saat sesi awaiting_email_input.
func (a *App) handleFreeText(ctx context.Context, chatID int64, username, txt string) error {
	s, ok, err := a.sessions.Get(ctx, chatID)
	if err != nil {
		return err
	}
	if !ok || s.State != session.StateAwaitingEmailInput {
		return a.reply(chatID, msgHelp)
	}

	if a.validate.Var(txt, "required,email") != nil {
		return a.reply(chatID, msgBadEmail)
	}

	u, err := a.links.LinkByEmail(ctx, chatID, username, txt)
	if errors.Is(err, ErrNoSuchUser) {
		if err := a.sessions.Delete(ctx, chatID); err != nil {
			return err
		}
		return a.reply(chatID, msgNoSuchUser)
	}
	if err != nil {
		return err
	}
	if err := a.sessions.Delete(ctx, chatID); err != nil {
		return err
	}
	log.Printf("[BOT] chat=%d linked to user=%s", chatID, u.ID)
	return a.reply(chatID, "Linked to "+u.FullName+" ("+u.Role+"). You will receive notifications here.")
}

func (a *App) withUser(ctx context.Context, chatID int64, render func(u *userModel.UserModel) (string, error)) error {
	u, err := a.links.UserByChat(ctx, chatID)
	if err != nil {
		return err
	}
	if u == nil {
		return a.reply(chatID, msgNotLinked)
	}
	text, err := render(u)
	if err != nil {
		return err
	}
	return a.reply(chatID, text)
}
