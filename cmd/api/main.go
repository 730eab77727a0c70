package main

import (
	"log"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/action"
	"github.com/dalrrd-emc/emc/api"
	"github.com/dalrrd-emc/emc/jobs"
)

type config struct {
	DSN      string `env:"DB_DSN,required"`
	Bind     string `env:"BIND" envDefault:":5000"`
	QueueDir string `env:"JOB_QUEUE_DIR" envDefault:"/var/lib/emc/jobs"`
}

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("Error parsing configuration: %v", err)
	}

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		panic("failed to connect database")
	}

	err = db.AutoMigrate(emc.Models()...)
	if err != nil {
		log.Fatalf("Error during AutoMigrate: %v", err)
	}

	queue, err := jobs.OpenQueue(cfg.QueueDir)
	if err != nil {
		log.Fatalf("Error opening job queue: %v", err)
	}
	defer queue.Close()

	svc := action.New(db, queue)
	e := api.New(db, svc)

	e.Logger.Fatal(e.Start(cfg.Bind))
}
