package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/heptiolabs/healthcheck"
	"go.elastic.co/ecszap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/jobs"
)

type config struct {
	DSN      string `env:"DB_DSN,required"`
	QueueDir string `env:"JOB_QUEUE_DIR" envDefault:"/var/lib/emc/jobs"`

	SMTPHost     string `env:"SMTP_HOST,required"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"25"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"noreply@emc.example.org"`

	HealthBind string `env:"HEALTH_BIND" envDefault:"0.0.0.0:8086"`
	LogLevel   string `env:"LOGGING_LEVEL"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Error parsing configuration: %v", err)
	}

	encoderConfig := ecszap.NewDefaultEncoderConfig()
	var core zapcore.Core
	switch cfg.LogLevel {
	case "DEVELOPMENT":
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.DebugLevel)
	default:
		core = ecszap.NewCore(encoderConfig, os.Stdout, zap.InfoLevel)
	}
	zapLogger := zap.New(core, zap.AddCaller())
	zap.ReplaceGlobals(zapLogger)
	defer zapLogger.Sync()

	zap.S().Infof("Starting notification worker, version %s", emc.Version)

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		zap.S().Fatalf("Error connecting to database: %v", err)
	}

	queue, err := jobs.OpenQueue(cfg.QueueDir)
	if err != nil {
		zap.S().Fatalf("Error opening job queue: %v", err)
	}
	defer queue.Close()

	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(100))
	go func() {
		if err := http.ListenAndServe(cfg.HealthBind, health); err != nil {
			zap.S().Errorf("Healthcheck server stopped: %v", err)
		}
	}()

	mailer := jobs.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailFrom)

	worker := jobs.NewWorker(queue)
	worker.Register(emc.NotifyOrgAdminsJob, jobs.NotifyOrgAdmins(db, mailer))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigs
		zap.S().Infof("Received signal %s, shutting down", sig)
		cancel()
	}()

	go reportQueueLength(ctx, queue)

	worker.Run(ctx)
	zap.S().Infof("Worker stopped")
}

// reportQueueLength prints the current queue length.
func reportQueueLength(ctx context.Context, queue *jobs.Queue) {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			zap.S().Infof("Current elements in queue: %d", queue.Length())
		}
	}
}
