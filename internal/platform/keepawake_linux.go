//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

// InhibitScreenSaver asks the session's screensaver service to stay out of
// the way while an overlay is on screen, using the Freedesktop.org
// ScreenSaver interface. The returned cookie releases the inhibition.
func InhibitScreenSaver(app, reason string) (uint32, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.ScreenSaver", "/org/freedesktop/ScreenSaver")
	var cookie uint32
	call := obj.Call("org.freedesktop.ScreenSaver.Inhibit", 0, app, reason)
	if call.Err != nil {
		return 0, call.Err
	}
	if err := call.Store(&cookie); err != nil {
		return 0, err
	}
	return cookie, nil
}

// UninhibitScreenSaver releases an inhibition taken with InhibitScreenSaver.
func UninhibitScreenSaver(cookie uint32) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	obj := conn.Object("org.freedesktop.ScreenSaver", "/org/freedesktop/ScreenSaver")
	return obj.Call("org.freedesktop.ScreenSaver.UnInhibit", 0, cookie).Err
}
