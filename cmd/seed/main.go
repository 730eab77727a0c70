package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dalrrd-emc/emc"
)

// Seedfile is the bootstrap payload: organizations, users and
// datasets to load into an empty catalog.
type Seedfile struct {
	Organizations []emc.Group  `json:"organizations"`
	Users         []emc.User   `json:"users"`
	Members       []emc.Member `json:"members"`
	Datasets      []Dataset    `json:"datasets"`
}

type Dataset struct {
	emc.Package
	Extras map[string]string `json:"extras"`
}

func main() {
	if len(os.Args) != 2 {
		log.Fatalf("usage: %s <seedfile.json>", os.Args[0])
	}

	raw, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("Error reading seedfile: %v", err)
	}
	var seed Seedfile
	err = json.Unmarshal(raw, &seed)
	if err != nil {
		log.Fatalf("Error decoding seedfile: %v", err)
	}

	dsn := os.Getenv("DB_DSN")

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             300 * time.Millisecond, // Slow SQL threshold
			LogLevel:                  logger.Warn,            // Log level
			IgnoreRecordNotFoundError: true,                   // Ignore ErrRecordNotFound error for logger
			Colorful:                  true,                   // Enable color
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
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

	for _, org := range seed.Organizations {
		if org.ID == "" {
			org.ID = uuid.NewString()
		}
		err := db.Save(&org).Error
		if err != nil {
			log.Printf("Error inserting organization %s: %v", org.Name, err)
		}
	}

	for _, user := range seed.Users {
		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		if user.State == "" {
			user.State = emc.StateActive
		}
		err := db.Save(&user).Error
		if err != nil {
			log.Printf("Error inserting user %s: %v", user.Name, err)
		}
	}

	for _, member := range seed.Members {
		if member.ID == "" {
			member.ID = uuid.NewString()
		}
		if member.State == "" {
			member.State = emc.StateActive
		}
		err := db.Save(&member).Error
		if err != nil {
			log.Printf("Error inserting member %s/%s: %v", member.GroupID, member.UserID, err)
		}
	}

	for _, dataset := range seed.Datasets {
		pkg := dataset.Package
		if pkg.ID == "" {
			pkg.ID = uuid.NewString()
		}
		if pkg.State == "" {
			pkg.State = emc.StateActive
		}
		if pkg.MetadataModified.IsZero() {
			pkg.MetadataModified = time.Now().UTC()
		}
		err := db.Save(&pkg).Error
		if err != nil {
			log.Printf("Error inserting dataset %s: %v", pkg.Name, err)
			continue
		}
		for key, value := range dataset.Extras {
			extra := emc.PackageExtra{
				ID:        uuid.NewString(),
				PackageID: pkg.ID,
				Key:       key,
				Value:     value,
			}
			err := db.Save(&extra).Error
			if err != nil {
				log.Printf("Error inserting extra %s for dataset %s: %v", key, pkg.Name, err)
			}
		}
	}

	log.Printf("Seeded %d organizations, %d users, %d members, %d datasets",
		len(seed.Organizations), len(seed.Users), len(seed.Members), len(seed.Datasets))
}
