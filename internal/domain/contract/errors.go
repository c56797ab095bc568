package contract

import "errors"

var (
	ErrNotFound         = errors.New("contract not found")
	ErrValidation       = errors.New("validation failed")
	ErrDuplicate        = errors.New("duplicate record")
	ErrInvalidStage     = errors.New("stage not in catalog")
	ErrInvalidRole      = errors.New("invalid client role")
	ErrPermissionDenied = errors.New("permission denied")
)
