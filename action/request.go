package action

import (
	"errors"

	"gorm.io/datatypes"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/validation"
)

// RequestDatasetMaintenance asks for a dataset to be put in
// maintenance mode (i.e. made private again). It records an activity
// for the user's dashboard, makes sure the user will get notified of
// followups, and enqueues the job that emails the owning org's
// admins.
func (s *Service) RequestDatasetMaintenance(ctx *Context, pkgID string) error {
	if err := checkAccess(ctx, AuthRequestDatasetMaintenance); err != nil {
		return err
	}
	return s.requestDatasetManagement(ctx, pkgID, emc.ActivityTypeRequestMaintenance)
}

// RequestDatasetPublication asks for a dataset to be published. Same
// flow as RequestDatasetMaintenance; only the recorded activity type
// differs.
func (s *Service) RequestDatasetPublication(ctx *Context, pkgID string) error {
	if err := checkAccess(ctx, AuthRequestDatasetPublication); err != nil {
		return err
	}
	return s.requestDatasetManagement(ctx, pkgID, emc.ActivityTypeRequestPublication)
}

// Any failure before the enqueue aborts the flow: a created activity
// without a queued notification job is possible and not rolled back.
func (s *Service) requestDatasetManagement(ctx *Context, pkgID, activityType string) error {
	act, err := s.createDatasetManagementActivity(ctx, pkgID, activityType)
	if err != nil {
		return err
	}
	if err := s.ensureUserIsNotifiable(ctx.User.ID, pkgID); err != nil {
		return err
	}
	return s.queue.Enqueue(emc.NotifyOrgAdminsJob, act.ID)
}

// ensureUserIsNotifiable turns on activity-stream email delivery for
// the user and subscribes them to the dataset. An already-following
// ValidationError is swallowed.
func (s *Service) ensureUserIsNotifiable(userID, datasetID string) error {
	_, err := s.UserPatch(userID, map[string]any{
		"activity_streams_email_notifications": true,
	})
	if err != nil {
		return err
	}
	err = s.FollowDataset(userID, datasetID)
	var validationErr *emc.ValidationError
	if errors.As(err, &validationErr) {
		return nil
	}
	return err
}

// createDatasetManagementActivity records the request as an activity
// embedding a full snapshot of the dataset. The stock create-activity
// schema rejects custom activity types, so a patched copy is used:
// activity_type_exists and object_id_validator are removed and a
// narrower dataset existence check takes their place.
func (s *Service) createDatasetManagementActivity(ctx *Context, pkgID, activityType string) (*emc.Activity, error) {
	schema := createActivitySchema()
	dataset, err := s.PackageShow(pkgID)
	if err != nil {
		return nil, err
	}
	return s.ActivityCreate(ActivityCreateRequest{
		UserID:       ctx.User.ID,
		ObjectID:     pkgID,
		ActivityType: activityType,
		Data:         datatypes.JSONMap{"package": dataset},
	}, schema)
}

func createActivitySchema() validation.Schema {
	schema := validation.DefaultCreateActivitySchema()
	schema.Remove("activity_type", "activity_type_exists")
	schema.Remove("object_id", "object_id_validator")
	if v, ok := validation.Get("package_id_exists"); ok {
		schema.Append("object_id", v)
	}
	return schema
}
