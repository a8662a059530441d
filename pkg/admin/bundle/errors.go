package bundle

import "errors"

var (
	ErrBundleNotFound     = errors.New("bundle not found")
	ErrBaseBundleNotFound = errors.New("base bundle not found")
	ErrEmptyName          = errors.New("bundle name must not be empty")
)
