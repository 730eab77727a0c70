package action

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/jobs"
)

type fakeQueue struct {
	enqueued []jobs.Job
	err      error
}

func (f *fakeQueue) Enqueue(name string, args ...string) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, jobs.Job{Name: name, Args: args, EnqueuedAt: time.Now().UTC()})
	return nil
}

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "emc.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(emc.Models()...))
	return db
}

func testService(t *testing.T) (*Service, *fakeQueue, *gorm.DB) {
	t.Helper()
	db := testDB(t)
	queue := &fakeQueue{}
	return New(db, queue), queue, db
}

func createUser(t *testing.T, db *gorm.DB, name string) *emc.User {
	t.Helper()
	user := emc.User{
		ID:     uuid.NewString(),
		Name:   name,
		Email:  name + "@example.org",
		APIKey: "key-" + name,
		State:  emc.StateActive,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createDataset(t *testing.T, db *gorm.DB, name string, private bool, extras map[string]string) *emc.Package {
	t.Helper()
	pkg := emc.Package{
		ID:               uuid.NewString(),
		Name:             name,
		Title:            name,
		Private:          private,
		State:            emc.StateActive,
		MetadataModified: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&pkg).Error)
	for key, value := range extras {
		extra := emc.PackageExtra{
			ID:        uuid.NewString(),
			PackageID: pkg.ID,
			Key:       key,
			Value:     value,
		}
		require.NoError(t, db.Create(&extra).Error)
	}
	return &pkg
}
