package action

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/validation"
)

func TestRequestDatasetMaintenance(t *testing.T) {
	svc, queue, db := testService(t)
	user := createUser(t, db, "bob")
	pkg := createDataset(t, db, "rainfall-2023", true, map[string]string{"featured": "true"})
	ctx := &Context{User: user}

	require.NoError(t, svc.RequestDatasetMaintenance(ctx, pkg.ID))

	var activities []emc.Activity
	require.NoError(t, db.Where("object_id = ?", pkg.ID).Find(&activities).Error)
	require.Len(t, activities, 1)
	act := activities[0]
	assert.Equal(t, emc.ActivityTypeRequestMaintenance, act.ActivityType)
	assert.Equal(t, user.ID, act.UserID)

	// payload embeds a full dataset snapshot
	require.Contains(t, act.Data, "package")
	snapshot, isMap := act.Data["package"].(map[string]any)
	require.True(t, isMap)
	assert.Equal(t, pkg.Name, snapshot["name"])

	var patched emc.User
	require.NoError(t, db.First(&patched, "id = ?", user.ID).Error)
	assert.True(t, patched.ActivityStreamsEmailNotifications)

	var follows int64
	db.Model(&emc.Follower{}).Where("user_id = ? AND object_id = ?", user.ID, pkg.ID).Count(&follows)
	assert.EqualValues(t, 1, follows)

	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, emc.NotifyOrgAdminsJob, queue.enqueued[0].Name)
	assert.Equal(t, []string{act.ID}, queue.enqueued[0].Args)
}

func TestRequestDatasetPublication(t *testing.T) {
	svc, queue, db := testService(t)
	user := createUser(t, db, "carol")
	pkg := createDataset(t, db, "boundaries", true, nil)

	require.NoError(t, svc.RequestDatasetPublication(&Context{User: user}, pkg.ID))

	var act emc.Activity
	require.NoError(t, db.First(&act, "object_id = ?", pkg.ID).Error)
	assert.Equal(t, emc.ActivityTypeRequestPublication, act.ActivityType)
	require.Len(t, queue.enqueued, 1)
	assert.Equal(t, []string{act.ID}, queue.enqueued[0].Args)
}

func TestRequestDatasetMaintenanceRepeated(t *testing.T) {
	svc, queue, db := testService(t)
	user := createUser(t, db, "dave")
	pkg := createDataset(t, db, "census", true, nil)
	ctx := &Context{User: user}

	require.NoError(t, svc.RequestDatasetMaintenance(ctx, pkg.ID))
	// second call hits the duplicate-follow path, which must stay quiet
	require.NoError(t, svc.RequestDatasetMaintenance(ctx, pkg.ID))

	var activities int64
	db.Model(&emc.Activity{}).Where("object_id = ?", pkg.ID).Count(&activities)
	assert.EqualValues(t, 2, activities)

	var follows int64
	db.Model(&emc.Follower{}).Where("user_id = ? AND object_id = ?", user.ID, pkg.ID).Count(&follows)
	assert.EqualValues(t, 1, follows)

	assert.Len(t, queue.enqueued, 2)
}

func TestRequestDatasetMaintenanceNotAuthorized(t *testing.T) {
	svc, queue, db := testService(t)
	pkg := createDataset(t, db, "protected", true, nil)

	err := svc.RequestDatasetMaintenance(&Context{}, pkg.ID)
	var notAuthorized *emc.NotAuthorizedError
	require.ErrorAs(t, err, &notAuthorized)
	assert.Equal(t, AuthRequestDatasetMaintenance, notAuthorized.Action)

	// no side effects at all
	var activities int64
	db.Model(&emc.Activity{}).Count(&activities)
	assert.Zero(t, activities)
	var follows int64
	db.Model(&emc.Follower{}).Count(&follows)
	assert.Zero(t, follows)
	assert.Empty(t, queue.enqueued)
}

func TestRequestDatasetMaintenanceUnknownDataset(t *testing.T) {
	svc, queue, db := testService(t)
	user := createUser(t, db, "erin")

	err := svc.RequestDatasetMaintenance(&Context{User: user}, "no-such-dataset")
	var validationErr *emc.ValidationError
	require.ErrorAs(t, err, &validationErr)

	// activity creation failed, so nothing may reach the queue
	var activities int64
	db.Model(&emc.Activity{}).Count(&activities)
	assert.Zero(t, activities)
	assert.Empty(t, queue.enqueued)

	var refetched emc.User
	require.NoError(t, db.First(&refetched, "id = ?", user.ID).Error)
	assert.False(t, refetched.ActivityStreamsEmailNotifications)
}

func TestCreateActivitySchemaPatched(t *testing.T) {
	schema := createActivitySchema()

	names := func(field string) []string {
		var out []string
		for _, v := range schema[field] {
			out = append(out, v.Name)
		}
		return out
	}

	assert.NotContains(t, names("activity_type"), "activity_type_exists")
	assert.NotContains(t, names("object_id"), "object_id_validator")
	assert.Contains(t, names("object_id"), "package_id_exists")
	// unrelated chains stay intact
	assert.Contains(t, names("user_id"), "user_id_exists")
}

func TestActivityCreateRejectsCustomTypeWithDefaultSchema(t *testing.T) {
	svc, _, db := testService(t)
	user := createUser(t, db, "frank")
	pkg := createDataset(t, db, "soil-samples", false, nil)

	_, err := svc.ActivityCreate(ActivityCreateRequest{
		UserID:       user.ID,
		ObjectID:     pkg.ID,
		ActivityType: emc.ActivityTypeRequestMaintenance,
	}, validation.DefaultCreateActivitySchema())
	var validationErr *emc.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Errors, "activity_type")
}

func TestFollowDatasetIdempotenceError(t *testing.T) {
	svc, _, db := testService(t)
	user := createUser(t, db, "grace")
	pkg := createDataset(t, db, "geology", false, nil)

	require.NoError(t, svc.FollowDataset(user.ID, pkg.ID))
	err := svc.FollowDataset(user.ID, pkg.ID)
	var validationErr *emc.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
