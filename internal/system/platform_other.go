//go:build !windows

package system

import "context"

type unsupportedPlatform struct{}

// NewPlatform returns a Platform whose methods all fail with ErrUnsupported.
func NewPlatform() Platform {
	return unsupportedPlatform{}
}

func (unsupportedPlatform) EmptyRecycleBin(context.Context) error { return ErrUnsupported }

func (unsupportedPlatform) PageFiles(context.Context) ([]PageFile, error) {
	return nil, ErrUnsupported
}

func (unsupportedPlatform) AutomaticPageFile(context.Context) (bool, error) {
	return false, ErrUnsupported
}

func (unsupportedPlatform) SetAutomaticPageFile(context.Context, bool) error {
	return ErrUnsupported
}

func (unsupportedPlatform) SetPageFileSize(context.Context, string, uint32, uint32) error {
	return ErrUnsupported
}

func (unsupportedPlatform) Profiles(context.Context) ([]Profile, error) {
	return nil, ErrUnsupported
}

func (unsupportedPlatform) DeleteProfileRegistration(context.Context, string) error {
	return ErrUnsupported
}

func (unsupportedPlatform) CurrentUserSID() (string, error) { return "", ErrUnsupported }
