package directory

import "errors"

// Domain-level error values returned by the directory service.
var (
	ErrBrandNotFound        = errors.New("brand not found")
	ErrCreatorNotFound      = errors.New("creator not found")
	ErrCampaignNotFound     = errors.New("campaign not found")
	ErrInvalidID            = errors.New("invalid id")
	ErrInvalidCampaign      = errors.New("invalid campaign")
	ErrInvalidBrand         = errors.New("invalid brand")
	ErrInvalidCreator       = errors.New("invalid creator")
	ErrInvalidServiceConfig = errors.New("invalid service config")
)
