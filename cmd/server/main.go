package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"ordermail/config"
	"ordermail/internal/adapters/email"
	deliveryhttp "ordermail/internal/delivery/http"
	"ordermail/internal/delivery/http/controllers"
	"ordermail/internal/domain"
	"ordermail/internal/format"
	"ordermail/internal/services"
)

const (
	verifyTimeout   = 10 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log, flush := config.NewLogger(cfg)
	defer flush()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mailer, err := email.NewMailer(cfg.MailerConfig(), log)
	if err != nil {
		log.Error("mailer setup failed", slog.Any("err", err), slog.String("provider", cfg.MailProvider))
		flush()
		os.Exit(1)
	}
	verifyMailer(ctx, log, mailer, cfg.MailProvider)

	renderer := email.NewTemplateRenderer()
	if cfg.TemplatesDir != "" {
		renderer = email.NewTemplateRendererFS(os.DirFS(cfg.TemplatesDir))
	}
	emailService := services.NewEmailService(
		mailer,
		renderer,
		format.New(cfg.MailLocation),
		services.EmailServiceConfig{
			From:        cfg.From(),
			AdminEmail:  cfg.AdminEmail,
			SendTimeout: cfg.MailSendTimeout,
		},
		log,
	)

	orderController := controllers.NewOrderEmailController(log, emailService)
	systemController := controllers.NewSystemController()
	router := deliveryhttp.NewRouter(orderController, systemController)

	addr := ":" + cfg.Port
	server := &http.Server{
		Addr:              addr,
		Handler:           deliveryhttp.NewHandler(router, log, cfg.CORSAllowedOrigins),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Sends run up to MAIL_SEND_TIMEOUT before the response is written.
		WriteTimeout: cfg.MailSendTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info("mail server starting",
			slog.String("addr", addr),
			slog.String("provider", cfg.MailProvider),
			slog.String("smtp_user", cfg.SMTPUser),
			slog.String("admin_email", cfg.AdminEmail),
			slog.String("health", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", slog.Any("err", err))
			cancel()
		}
	}()

	<-ctx.Done()
	log.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	wg.Wait()
	log.Info("bye")
}

// verifyMailer checks the relay once at startup. A failure is only a warning:
// the relay may come up later and each send reports its own error.
func verifyMailer(ctx context.Context, log *slog.Logger, mailer domain.Mailer, provider string) {
	verifyCtx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()
	if err := mailer.Verify(verifyCtx); err != nil {
		log.Warn("mail relay verification failed", slog.String("provider", provider), slog.Any("err", err))
		return
	}
	log.Info("mail relay ready", slog.String("provider", provider))
}
