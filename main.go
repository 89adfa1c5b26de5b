package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"

	"ievents_backend/internals/configs"
	database "ievents_backend/internals/databases"
	"ievents_backend/internals/features/contests/results/export"
	"ievents_backend/internals/features/telegram/bot"
	"ievents_backend/internals/features/telegram/relay"
	"ievents_backend/internals/features/telegram/scheduler"
	"ievents_backend/internals/features/telegram/session"
	helper "ievents_backend/internals/helpers"
	middlewares "ievents_backend/internals/middlewares"
	routes "ievents_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return helper.JsonError(c, fe.Code, fe.Message)
			}
			log.Printf("[ERROR] unhandled: %v", err)
			return helper.JsonError(c, fiber.StatusInternalServerError, "Internal server error")
		},
	})

	middlewares.SetupMiddlewares(app)

	// 🔌 DB connect + pool + warm-up
	database.ConnectDB()
	database.TunePool()
	database.WarmUpQueries()
	if configs.GetEnvBool("DB_AUTO_MIGRATE", true) {
		database.MigrateTables()
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// 📊 Google Sheets (opsional)
	var sheets export.Writer
	if configs.GoogleSAJSONPath != "" && configs.GoogleSpreadsheetID != "" {
		sc, err := export.NewSheetsClient(ctx, configs.GoogleSAJSONPath, configs.GoogleSpreadsheetID)
		if err != nil {
			log.Printf("[WARN] sheets export disabled: %v", err)
		} else {
			sheets = sc
			log.Printf("[INFO] sheets export → %s", sc.SpreadsheetID())
		}
	}

	// ✅ Routes
	routes.SetupRoutes(app, database.DB, routes.Options{Sheets: sheets})

	// ⏱ worker setelah DB siap
	go scheduler.NewReminder(database.DB, configs.ReminderEvery, configs.ReminderWindow).Run(ctx)
	if configs.TelegramToken != "" {
		startTelegram(ctx)
	}

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	go func() {
		log.Printf("✅ Listening on :%s", configs.Port)
		if err := app.Listen("0.0.0.0:" + configs.Port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown + tutup pool DB
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(shutdownCtx)

	database.Close()
}

func startTelegram(ctx context.Context) {
	var store session.Store
	if configs.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     configs.RedisAddr,
			Password: configs.RedisPassword,
			DB:       configs.RedisDB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("[ERROR] redis ping: %v", err)
		}
		store = session.NewRedisStore(rdb, session.DefaultTTL)
		log.Println("[INFO] telegram sessions → redis")
	} else {
		mem := session.NewMemoryStore(session.DefaultTTL)
		go func() {
			t := time.NewTicker(time.Minute)
			defer t.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-t.C:
					mem.Sweep()
				}
			}
		}()
		store = mem
		log.Println("[INFO] telegram sessions → memory")
	}

	tg, err := bot.New(configs.TelegramToken, database.DB, store)
	if err != nil {
		log.Printf("[ERROR] telegram bot disabled: %v", err)
		return
	}
	go func() {
		if err := tg.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] telegram bot stopped: %v", err)
		}
	}()

	go relay.NewWorker(database.DB, tg.Messenger(), configs.TelegramRelayEvery, configs.TelegramSendDelay).Run(ctx)
}
