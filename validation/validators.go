package validation

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dalrrd-emc/emc"
)

// Stock validators. Each is registered by the name schemas refer to
// it by.
var (
	NotEmpty = register("not_empty", func(db *gorm.DB, value string) error {
		if value == "" {
			return errors.New("Missing value")
		}
		return nil
	})

	IgnoreMissing = register("ignore_missing", func(db *gorm.DB, value string) error {
		if value == "" {
			return errStopValidation
		}
		return nil
	})

	UserIDExists = register("user_id_exists", func(db *gorm.DB, value string) error {
		var count int64
		db.Model(&emc.User{}).Where("id = ?", value).Count(&count)
		if count == 0 {
			return errors.New("Not found: User")
		}
		return nil
	})

	// ObjectIDValidator accepts ids of the known object kinds only.
	ObjectIDValidator = register("object_id_validator", func(db *gorm.DB, value string) error {
		var count int64
		db.Model(&emc.Package{}).Where("id = ?", value).Count(&count)
		if count > 0 {
			return nil
		}
		db.Model(&emc.User{}).Where("id = ?", value).Count(&count)
		if count > 0 {
			return nil
		}
		return errors.New("Not found: Object")
	})

	ActivityTypeExists = register("activity_type_exists", func(db *gorm.DB, value string) error {
		if !emc.BuiltinActivityTypes[value] {
			return errors.New("Not found: Activity type")
		}
		return nil
	})

	PackageIDExists = register("package_id_exists", func(db *gorm.DB, value string) error {
		var count int64
		db.Model(&emc.Package{}).
			Where("id = ? AND state <> ?", value, emc.StateDeleted).
			Count(&count)
		if count == 0 {
			return errors.New("Not found: Dataset")
		}
		return nil
	})
)

// DefaultCreateActivitySchema returns a fresh copy of the stock
// create-activity schema on every call.
func DefaultCreateActivitySchema() Schema {
	return Schema{
		"user_id":       {NotEmpty, UserIDExists},
		"object_id":     {NotEmpty, ObjectIDValidator},
		"activity_type": {NotEmpty, ActivityTypeExists},
		"data":          {IgnoreMissing},
	}.Copy()
}
