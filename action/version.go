package action

import (
	"os"

	"github.com/dalrrd-emc/emc"
)

type VersionInfo struct {
	Version string  `json:"version"`
	GitSHA  *string `json:"git_sha"`
}

// ShowVersion reports the release version and, when the GIT_COMMIT
// environment variable is set, the source revision it was built from.
// No auth required, no failure modes.
func (s *Service) ShowVersion() VersionInfo {
	info := VersionInfo{Version: emc.Version}
	if sha := os.Getenv("GIT_COMMIT"); sha != "" {
		info.GitSHA = &sha
	}
	return info
}
