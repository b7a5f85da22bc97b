//go:build !linux

package platform

// InhibitScreenSaver is unavailable without a session bus.
func InhibitScreenSaver(app, reason string) (uint32, error) {
	return 0, ErrUnsupported
}

// UninhibitScreenSaver is unavailable without a session bus.
func UninhibitScreenSaver(cookie uint32) error {
	return ErrUnsupported
}
