// Package action implements the public catalog actions: version
// reporting, featured dataset listing and the dataset maintenance and
// publication request workflows.
package action

import (
	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/jobs"
)

// Service exposes the catalog actions over a database handle and a
// background job queue.
type Service struct {
	db    *gorm.DB
	queue jobs.Enqueuer
}

func New(db *gorm.DB, queue jobs.Enqueuer) *Service {
	return &Service{db: db, queue: queue}
}

// Context carries the authenticated caller. A nil User means the call
// is anonymous.
type Context struct {
	User *emc.User
}
