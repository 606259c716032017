//go:build !linux

package injector

func newPlatformKeyboard() (Keyboard, error) {
	return nil, ErrUnavailable
}
