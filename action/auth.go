package action

import "github.com/dalrrd-emc/emc"

// Auth function names, one per protected action.
const (
	AuthListFeaturedDatasets      = "emc_authorize_list_featured_datasets"
	AuthRequestDatasetMaintenance = "emc_request_dataset_maintenance"
	AuthRequestDatasetPublication = "emc_request_dataset_publication"
)

type authFunc func(ctx *Context) bool

// Every protected action requires an active registered user;
// sysadmins always pass.
var authFunctions = map[string]authFunc{
	AuthListFeaturedDatasets:      requireActiveUser,
	AuthRequestDatasetMaintenance: requireActiveUser,
	AuthRequestDatasetPublication: requireActiveUser,
}

func requireActiveUser(ctx *Context) bool {
	if ctx == nil || ctx.User == nil {
		return false
	}
	if ctx.User.Sysadmin {
		return true
	}
	return ctx.User.State == emc.StateActive
}

// checkAccess runs the named auth function, returning
// NotAuthorizedError on failure. An unknown name always denies.
func checkAccess(ctx *Context, name string) error {
	fn, ok := authFunctions[name]
	if !ok || !fn(ctx) {
		return &emc.NotAuthorizedError{Action: name}
	}
	return nil
}
