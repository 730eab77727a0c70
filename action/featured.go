package action

import "github.com/dalrrd-emc/emc"

const (
	defaultFeaturedLimit = 10

	// Extras store values as text, so the featured flag is compared
	// against the literal string "true".
	featuredExtraKey   = "featured"
	featuredExtraValue = "true"
)

type ListFeaturedOptions struct {
	IncludePrivate bool `json:"include_private" query:"include_private"`
	Limit          int  `json:"limit" query:"limit"`
	Offset         int  `json:"offset" query:"offset"`
}

type DatasetName struct {
	Name string `json:"name"`
}

// ListFeaturedDatasets returns the names of active datasets carrying
// a "featured" extra set to "true", paginated and ordered by name.
func (s *Service) ListFeaturedDatasets(ctx *Context, opts ListFeaturedOptions) ([]DatasetName, error) {
	if err := checkAccess(ctx, AuthListFeaturedDatasets); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFeaturedLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	var names []DatasetName
	err := s.db.
		Model(&emc.Package{}).
		Select("packages.name").
		Joins("JOIN package_extras ON package_extras.package_id = packages.id").
		Where("package_extras.key = ? AND package_extras.value = ?", featuredExtraKey, featuredExtraValue).
		Where("packages.state = ? AND packages.private = ?", emc.StateActive, opts.IncludePrivate).
		Order("packages.name").
		Limit(limit).
		Offset(offset).
		Scan(&names).Error
	if err != nil {
		return nil, err
	}
	return names, nil
}
