//go:build linux

package injector

import (
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	screenSaverBusName = "org.freedesktop.ScreenSaver"
	screenSaverPath    = "/org/freedesktop/ScreenSaver"
)

// InhibitScreenSaver asks the desktop session not to blank or lock the
// screen while keys are being injected; a locked screen swallows the
// injected events. It returns a release function. Sessions without a
// screensaver service (or without a session bus at all) return an error
// the caller can log and ignore.
func InhibitScreenSaver(reason string) (release func(), err error) {
	conn, err := dbus.SessionBus()
	if err != nil {
		return nil, fmt.Errorf("session bus: %w", err)
	}

	obj := conn.Object(screenSaverBusName, dbus.ObjectPath(screenSaverPath))
	var cookie uint32
	call := obj.Call(screenSaverBusName+".Inhibit", 0, "vpiano", reason)
	if call.Err != nil {
		return nil, fmt.Errorf("inhibit screensaver: %w", call.Err)
	}
	if err := call.Store(&cookie); err != nil {
		return nil, fmt.Errorf("inhibit cookie: %w", err)
	}

	return func() {
		obj.Call(screenSaverBusName+".UnInhibit", 0, cookie)
	}, nil
}
