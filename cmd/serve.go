package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Leganyst/maid-marketplace/internal/account"
	"github.com/Leganyst/maid-marketplace/internal/auth"
	"github.com/Leganyst/maid-marketplace/internal/booking"
	"github.com/Leganyst/maid-marketplace/internal/catalog"
	"github.com/Leganyst/maid-marketplace/internal/config"
	"github.com/Leganyst/maid-marketplace/internal/db"
	"github.com/Leganyst/maid-marketplace/internal/jobs"
	"github.com/Leganyst/maid-marketplace/internal/ledger"
	"github.com/Leganyst/maid-marketplace/internal/metrics"
	"github.com/Leganyst/maid-marketplace/internal/model"
	"github.com/Leganyst/maid-marketplace/internal/notify"
	"github.com/Leganyst/maid-marketplace/internal/otp"
	"github.com/Leganyst/maid-marketplace/internal/service"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the gRPC API, the ops HTTP endpoint and maintenance jobs",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	// 1. Конфиг.
	appCfg, err := config.LoadAppConfig()
	if err != nil {
		return fmt.Errorf("load app config: %w", err)
	}
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return fmt.Errorf("load db config: %w", err)
	}
	log := newLogger(appCfg)
	loc, err := appCfg.Location()
	if err != nil {
		return err
	}

	// 2. БД и миграции.
	gormDB, err := db.NewGormDB(dbCfg)
	if err != nil {
		return fmt.Errorf("init db: %w", err)
	}
	defer db.Close(gormDB)

	if err := model.AutoMigrate(gormDB); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("sql DB: %w", err)
	}

	// 3. Уведомления: таблица notifications + брокер, если задан.
	sinks := notify.Multi{notify.NewStoreNotifier(gormDB)}
	if appCfg.AMQPURL != "" {
		pub, err := notify.DialAMQPPublisher(appCfg.AMQPURL, appCfg.NotifyExchange)
		if err != nil {
			return fmt.Errorf("dial amqp: %w", err)
		}
		defer pub.Close()
		sinks = append(sinks, pub)
		log.Info("amqp notifications enabled", slog.String("exchange", appCfg.NotifyExchange))
	}
	dispatcher := notify.NewDispatcher(sinks, log)

	// 4. Доменные сервисы.
	l := ledger.New(gormDB, log)
	verifier := otp.NewVerifier(gormDB, otp.NewLogSender(log),
		otp.WithTTL(appCfg.OTPTTL()),
		otp.WithMaxAttempts(appCfg.OTPMaxAttempts),
		otp.WithLogger(log),
	)
	accounts := account.NewService(gormDB, l, account.WithLogger(log))
	bookings := booking.NewService(gormDB, l, dispatcher,
		booking.WithLocation(loc),
		booking.WithCodeRetries(appCfg.BookingCodeMaxRetries),
		booking.WithLogger(log),
	)
	catalogSvc := catalog.NewService(gormDB, catalog.WithLogger(log))

	// 5. gRPC.
	grpcServer, health := service.NewGRPCServer(service.Deps{
		DB:       gormDB,
		Ledger:   l,
		Verifier: verifier,
		Accounts: accounts,
		Bookings: bookings,
		Catalog:  catalogSvc,
		Issuer:   auth.NewIssuer(appCfg.JWTSecret, appCfg.JWTTTL()),
		Log:      log,
	})

	lis, err := net.Listen("tcp", appCfg.GRPCAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", appCfg.GRPCAddr, err)
	}

	// 6. HTTP: /healthz и /metrics.
	opsServer := &http.Server{
		Addr:              appCfg.HTTPAddr,
		Handler:           metrics.Handler(sqlDB),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// 7. Фоновые задачи.
	scheduler := jobs.NewScheduler(jobs.NewJobs(verifier, log), log)
	if err := scheduler.Start(appCfg.OTPPurgeSchedule); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	go func() {
		log.Info("grpc server listening", slog.String("addr", appCfg.GRPCAddr))
		errCh <- grpcServer.Serve(lis)
	}()
	go func() {
		log.Info("ops http server listening", slog.String("addr", appCfg.HTTPAddr))
		if err := opsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
		log.Error("server stopped", slog.Any("error", runErr))
	}

	// 8. Грейсфул-шатдаун.
	log.Info("shutting down")
	health.Shutdown()
	<-scheduler.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := opsServer.Shutdown(shutdownCtx); err != nil {
		log.Warn("ops server shutdown", slog.Any("error", err))
	}

	done := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		grpcServer.Stop()
	}
	return runErr
}
