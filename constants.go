package emc

// Version is the release version reported by show_version.
const Version = "1.0.1"

// Activity types recorded by the dataset management request actions.
// These are not part of the built-in activity type set on purpose:
// the create-activity schema is patched to let them through.
const (
	ActivityTypeRequestMaintenance = "REQUEST_MAINTENANCE"
	ActivityTypeRequestPublication = "REQUEST_PUBLICATION"
)

// BuiltinActivityTypes is the set accepted by the stock
// activity_type_exists validator.
var BuiltinActivityTypes = map[string]bool{
	"new package":     true,
	"changed package": true,
	"deleted package": true,
	"new user":        true,
	"changed user":    true,
	"follow dataset":  true,
	"follow user":     true,
	"follow group":    true,
}

// NotifyOrgAdminsJob is the job name the worker dispatches on. The
// single argument is the id of the activity that triggered the
// request.
const NotifyOrgAdminsJob = "notify_org_admins_of_dataset_management_request"

const (
	StateActive  = "active"
	StateDeleted = "deleted"
)
