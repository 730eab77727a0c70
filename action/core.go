package action

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
	"github.com/dalrrd-emc/emc/validation"
)

// PackageShow returns the dataset plus its extras as a snapshot map,
// the shape embedded in activity payloads.
func (s *Service) PackageShow(id string) (map[string]any, error) {
	var pkg emc.Package
	err := s.db.Where("id = ? OR name = ?", id, id).First(&pkg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, emc.NewValidationError("id", "Not found: Dataset")
	}
	if err != nil {
		return nil, err
	}

	var extras []emc.PackageExtra
	if err := s.db.Where("package_id = ?", pkg.ID).Order("key").Find(&extras).Error; err != nil {
		return nil, err
	}
	extraDicts := make([]map[string]any, 0, len(extras))
	for _, e := range extras {
		extraDicts = append(extraDicts, map[string]any{"key": e.Key, "value": e.Value})
	}

	return map[string]any{
		"id":                pkg.ID,
		"name":              pkg.Name,
		"title":             pkg.Title,
		"private":           pkg.Private,
		"state":             pkg.State,
		"owner_org":         pkg.OwnerOrg,
		"metadata_modified": pkg.MetadataModified.UTC().Format(time.RFC3339),
		"extras":            extraDicts,
	}, nil
}

// ActivityCreateRequest is the payload of ActivityCreate. The string
// fields are what the schema validates; Data goes in as-is.
type ActivityCreateRequest struct {
	UserID       string
	ObjectID     string
	ActivityType string
	Data         datatypes.JSONMap
}

// ActivityCreate validates req against schema and inserts the
// activity record.
func (s *Service) ActivityCreate(req ActivityCreateRequest, schema validation.Schema) (*emc.Activity, error) {
	err := schema.Validate(s.db, map[string]string{
		"user_id":       req.UserID,
		"object_id":     req.ObjectID,
		"activity_type": req.ActivityType,
	})
	if err != nil {
		return nil, err
	}

	act := emc.Activity{
		ID:           uuid.NewString(),
		UserID:       req.UserID,
		ObjectID:     req.ObjectID,
		Timestamp:    time.Now().UTC(),
		ActivityType: req.ActivityType,
		Data:         req.Data,
	}
	if err := s.db.Create(&act).Error; err != nil {
		return nil, err
	}
	return &act, nil
}

// UserPatch applies a partial update to the user and returns the
// updated record.
func (s *Service) UserPatch(id string, updates map[string]any) (*emc.User, error) {
	var user emc.User
	err := s.db.Where("id = ? OR name = ?", id, id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, emc.NewValidationError("id", "Not found: User")
	}
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FollowDataset subscribes the user to the dataset. Following a
// dataset the user already follows is a ValidationError, mirroring
// how follow actions report duplicates.
func (s *Service) FollowDataset(userID, datasetID string) error {
	var count int64
	s.db.Model(&emc.Follower{}).
		Where("user_id = ? AND object_id = ?", userID, datasetID).
		Count(&count)
	if count > 0 {
		return emc.NewValidationError("id", "You are already following this dataset")
	}
	follower := emc.Follower{
		ID:         uuid.NewString(),
		UserID:     userID,
		ObjectID:   datasetID,
		ObjectType: "dataset",
		CreatedAt:  time.Now().UTC(),
	}
	return s.db.Create(&follower).Error
}
