//go:build !linux

package injector

// InhibitScreenSaver is a no-op on platforms without a D-Bus screensaver
// service.
func InhibitScreenSaver(reason string) (release func(), err error) {
	return func() {}, nil
}
