package emc

import (
	"time"

	"gorm.io/datatypes"
)

type Package struct {
	ID               string    `json:"id" gorm:"primaryKey"`
	Name             string    `json:"name" gorm:"uniqueIndex;type:text"`
	Title            string    `json:"title" gorm:"type:text"`
	Private          bool      `json:"private" gorm:"type:boolean;default:false"`
	State            string    `json:"state" gorm:"type:text;default:active"`
	OwnerOrg         string    `json:"owner_org" gorm:"index"`
	MetadataModified time.Time `json:"metadata_modified" gorm:"type:timestamp without time zone"`
}

type PackageExtra struct {
	ID        string `json:"id" gorm:"primaryKey"`
	PackageID string `json:"package_id" gorm:"index"`
	Key       string `json:"key" gorm:"type:text"`
	Value     string `json:"value" gorm:"type:text"`
}

type User struct {
	ID       string `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"uniqueIndex;type:text"`
	Email    string `json:"email" gorm:"type:text"`
	APIKey   string `json:"-" gorm:"column:apikey;index"`
	Sysadmin bool   `json:"sysadmin" gorm:"type:boolean;default:false"`
	State    string `json:"state" gorm:"type:text;default:active"`

	ActivityStreamsEmailNotifications bool `json:"activity_streams_email_notifications" gorm:"type:boolean;default:false"`
}

type Group struct {
	ID    string `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"uniqueIndex;type:text"`
	Title string `json:"title" gorm:"type:text"`
}

type Member struct {
	ID       string `json:"id" gorm:"primaryKey"`
	GroupID  string `json:"group_id" gorm:"index"`
	UserID   string `json:"user_id" gorm:"index"`
	Capacity string `json:"capacity" gorm:"type:text"`
	State    string `json:"state" gorm:"type:text;default:active"`
}

type Activity struct {
	ID           string            `json:"id" gorm:"primaryKey"`
	UserID       string            `json:"user_id" gorm:"index"`
	ObjectID     string            `json:"object_id" gorm:"index"`
	Timestamp    time.Time         `json:"timestamp" gorm:"type:timestamp without time zone"`
	ActivityType string            `json:"activity_type" gorm:"type:text"`
	Data         datatypes.JSONMap `json:"data" gorm:"type:json"`
}

type Follower struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index:idx_follower_user_object,unique"`
	ObjectID   string    `json:"object_id" gorm:"index:idx_follower_user_object,unique"`
	ObjectType string    `json:"object_type" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"type:timestamp without time zone"`
}

// Models lists every table the service owns, in AutoMigrate order.
func Models() []any {
	return []any{
		&Package{},
		&PackageExtra{},
		&User{},
		&Group{},
		&Member{},
		&Activity{},
		&Follower{},
	}
}
