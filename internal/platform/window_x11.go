//go:build linux || freebsd || openbsd || netbsd

package platform

import (
	"fmt"
	"strings"
	"time"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/shape"
	"github.com/jezek/xgb/xfixes"
	"github.com/jezek/xgb/xproto"
)

const (
	wmStateRemove = 0
	wmStateAdd    = 1

	iconicState = 3
)

type x11Window struct {
	conn  *xgb.Conn
	root  xproto.Window
	win   xproto.Window
	atoms map[string]xproto.Atom

	shapeOK  bool
	xfixesOK bool
}

// Attach locates the top-level X11 window belonging to pid and returns a
// controller for it. The window manager registers new clients asynchronously,
// so the lookup retries briefly before giving up. The title hint breaks ties
// when the process owns more than one top-level window.
func Attach(pid int, titleHint string) (Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	setup := xproto.Setup(conn)
	if setup == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		conn.Close()
		return nil, fmt.Errorf("xproto screen unavailable")
	}

	w := &x11Window{
		conn:  conn,
		root:  screen.Root,
		atoms: map[string]xproto.Atom{},
	}

	var found xproto.Window
	deadline := time.Now().Add(2 * time.Second)
	for {
		found, err = w.findByPID(uint32(pid), titleHint)
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			conn.Close()
			return nil, err
		}
		time.Sleep(50 * time.Millisecond)
	}
	w.win = found

	if err := shape.Init(conn); err == nil {
		w.shapeOK = true
	}
	if err := xfixes.Init(conn); err == nil {
		if _, err := xfixes.QueryVersion(conn, 4, 0).Reply(); err == nil {
			w.xfixesOK = true
		}
	}
	return w, nil
}

func (w *x11Window) findByPID(pid uint32, titleHint string) (xproto.Window, error) {
	listAtom, err := w.atom("_NET_CLIENT_LIST")
	if err != nil {
		return 0, err
	}
	reply, err := xproto.GetProperty(w.conn, false, w.root, listAtom, xproto.AtomWindow, 0, 1<<16).Reply()
	if err != nil {
		return 0, fmt.Errorf("read client list: %w", err)
	}
	var fallback xproto.Window
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		win := xproto.Window(xgb.Get32(reply.Value[i:]))
		if w.readPID(win) != pid {
			continue
		}
		if titleHint == "" || w.readTitle(win) == titleHint {
			return win, nil
		}
		if fallback == 0 {
			fallback = win
		}
	}
	if fallback != 0 {
		return fallback, nil
	}
	return 0, ErrWindowNotFound
}

func (w *x11Window) readPID(win xproto.Window) uint32 {
	atom, err := w.atom("_NET_WM_PID")
	if err != nil {
		return 0
	}
	reply, err := xproto.GetProperty(w.conn, false, win, atom, xproto.AtomCardinal, 0, 1).Reply()
	if err != nil || reply.Format != 32 || reply.ValueLen == 0 {
		return 0
	}
	return xgb.Get32(reply.Value)
}

func (w *x11Window) readTitle(win xproto.Window) string {
	atom, err := w.atom("_NET_WM_NAME")
	if err != nil {
		return ""
	}
	utf8String, err := w.atom("UTF8_STRING")
	if err != nil {
		return ""
	}
	reply, err := xproto.GetProperty(w.conn, false, win, atom, utf8String, 0, 1<<16).Reply()
	if err != nil || reply.ValueLen == 0 {
		return ""
	}
	return strings.TrimRight(string(reply.Value), "\x00")
}

func (w *x11Window) atom(name string) (xproto.Atom, error) {
	if a, ok := w.atoms[name]; ok {
		return a, nil
	}
	reply, err := xproto.InternAtom(w.conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, fmt.Errorf("intern atom %s: %w", name, err)
	}
	w.atoms[name] = reply.Atom
	return reply.Atom, nil
}

func (w *x11Window) Move(x, y int) error {
	err := xproto.ConfigureWindowChecked(w.conn, w.win,
		xproto.ConfigWindowX|xproto.ConfigWindowY,
		[]uint32{uint32(int32(x)), uint32(int32(y))}).Check()
	if err != nil {
		return fmt.Errorf("move window: %w", err)
	}
	return nil
}

func (w *x11Window) Position() (int, int, error) {
	reply, err := xproto.TranslateCoordinates(w.conn, w.win, w.root, 0, 0).Reply()
	if err != nil {
		return 0, 0, fmt.Errorf("query position: %w", err)
	}
	return int(reply.DstX), int(reply.DstY), nil
}

func (w *x11Window) Resize(width, height int) error {
	err := xproto.ConfigureWindowChecked(w.conn, w.win,
		xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{uint32(width), uint32(height)}).Check()
	if err != nil {
		return fmt.Errorf("resize window: %w", err)
	}
	return nil
}

func (w *x11Window) SetTitle(title string) error {
	nameAtom, err := w.atom("_NET_WM_NAME")
	if err != nil {
		return err
	}
	utf8String, err := w.atom("UTF8_STRING")
	if err != nil {
		return err
	}
	err = xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.win,
		nameAtom, utf8String, 8, uint32(len(title)), []byte(title)).Check()
	if err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	// Legacy WM_NAME keeps non-EWMH tooling in sync.
	return xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.win,
		xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title)).Check()
}

func (w *x11Window) SetVisible(visible bool) error {
	if visible {
		return xproto.MapWindowChecked(w.conn, w.win).Check()
	}
	return xproto.UnmapWindowChecked(w.conn, w.win).Check()
}

func (w *x11Window) Minimize() error {
	atom, err := w.atom("WM_CHANGE_STATE")
	if err != nil {
		return err
	}
	return w.sendClientMessage(atom, [5]uint32{iconicState})
}

func (w *x11Window) Maximize() error {
	vert, horz, err := w.maximizeAtoms()
	if err != nil {
		return err
	}
	return w.sendWMState(wmStateAdd, vert, horz)
}

func (w *x11Window) Restore() error {
	vert, horz, err := w.maximizeAtoms()
	if err != nil {
		return err
	}
	if err := w.sendWMState(wmStateRemove, vert, horz); err != nil {
		return err
	}
	// Mapping the window again leaves the iconified state.
	return xproto.MapWindowChecked(w.conn, w.win).Check()
}

func (w *x11Window) maximizeAtoms() (xproto.Atom, xproto.Atom, error) {
	vert, err := w.atom("_NET_WM_STATE_MAXIMIZED_VERT")
	if err != nil {
		return 0, 0, err
	}
	horz, err := w.atom("_NET_WM_STATE_MAXIMIZED_HORZ")
	if err != nil {
		return 0, 0, err
	}
	return vert, horz, nil
}

func (w *x11Window) SetFullscreen(fullscreen bool) error {
	atom, err := w.atom("_NET_WM_STATE_FULLSCREEN")
	if err != nil {
		return err
	}
	action := uint32(wmStateRemove)
	if fullscreen {
		action = wmStateAdd
	}
	return w.sendWMState(action, atom, 0)
}

func (w *x11Window) Fullscreen() (bool, error) {
	stateAtom, err := w.atom("_NET_WM_STATE")
	if err != nil {
		return false, err
	}
	fsAtom, err := w.atom("_NET_WM_STATE_FULLSCREEN")
	if err != nil {
		return false, err
	}
	reply, err := xproto.GetProperty(w.conn, false, w.win, stateAtom, xproto.AtomAtom, 0, 64).Reply()
	if err != nil {
		return false, fmt.Errorf("read window state: %w", err)
	}
	for i := 0; i+4 <= len(reply.Value); i += 4 {
		if xproto.Atom(xgb.Get32(reply.Value[i:])) == fsAtom {
			return true, nil
		}
	}
	return false, nil
}

func (w *x11Window) SetLevel(level Level) error {
	above, err := w.atom("_NET_WM_STATE_ABOVE")
	if err != nil {
		return err
	}
	below, err := w.atom("_NET_WM_STATE_BELOW")
	if err != nil {
		return err
	}
	if err := w.sendWMState(wmStateRemove, above, below); err != nil {
		return err
	}
	switch level {
	case LevelAbove:
		return w.sendWMState(wmStateAdd, above, 0)
	case LevelBelow:
		return w.sendWMState(wmStateAdd, below, 0)
	}
	return nil
}

func (w *x11Window) SetDecorations(decorated bool) error {
	atom, err := w.atom("_MOTIF_WM_HINTS")
	if err != nil {
		return err
	}
	var dec uint32
	if decorated {
		dec = 1
	}
	// flags bit 1 selects the decorations field.
	hints := [5]uint32{2, 0, dec, 0, 0}
	data := make([]byte, 20)
	for i, v := range hints {
		xgb.Put32(data[i*4:], v)
	}
	return xproto.ChangePropertyChecked(w.conn, xproto.PropModeReplace, w.win,
		atom, atom, 32, 5, data).Check()
}

func (w *x11Window) SetClickThrough(enabled bool) error {
	if !w.shapeOK {
		return fmt.Errorf("click-through: shape extension unavailable: %w", ErrUnsupported)
	}
	if enabled {
		// An empty input region routes all pointer events to whatever is
		// underneath the overlay.
		return shape.RectanglesChecked(w.conn, shape.SoSet, shape.SkInput,
			xproto.ClipOrderingUnsorted, w.win, 0, 0, nil).Check()
	}
	return shape.MaskChecked(w.conn, shape.SoSet, shape.SkInput, w.win, 0, 0, xproto.PixmapNone).Check()
}

func (w *x11Window) SetCursorVisible(visible bool) error {
	if !w.xfixesOK {
		return fmt.Errorf("cursor visibility: xfixes extension unavailable: %w", ErrUnsupported)
	}
	if visible {
		return xfixes.ShowCursorChecked(w.conn, w.win).Check()
	}
	return xfixes.HideCursorChecked(w.conn, w.win).Check()
}

func (w *x11Window) Close() error {
	w.conn.Close()
	return nil
}

func (w *x11Window) sendWMState(action uint32, a1, a2 xproto.Atom) error {
	stateAtom, err := w.atom("_NET_WM_STATE")
	if err != nil {
		return err
	}
	return w.sendClientMessage(stateAtom, [5]uint32{action, uint32(a1), uint32(a2), 1, 0})
}

func (w *x11Window) sendClientMessage(msgType xproto.Atom, data [5]uint32) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.win,
		Type:   msgType,
		Data:   xproto.ClientMessageDataUnionData32New(data[:]),
	}
	err := xproto.SendEventChecked(w.conn, false, w.root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes())).Check()
	if err != nil {
		return fmt.Errorf("send client message: %w", err)
	}
	return nil
}

// Monitors retrieves the desktop layout using the X RandR extension.
func Monitors() ([]Monitor, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect X server: %w", err)
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	if setup == nil {
		return nil, fmt.Errorf("xproto setup unavailable")
	}
	screen := setup.DefaultScreen(conn)
	if screen == nil {
		return nil, fmt.Errorf("xproto screen unavailable")
	}
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("init randr: %w", err)
	}
	res, err := randr.GetScreenResources(conn, screen.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("randr screen resources: %w", err)
	}
	primaryOutput := randr.Output(0)
	if primary, err := randr.GetOutputPrimary(conn, screen.Root).Reply(); err == nil {
		primaryOutput = primary.Output
	}
	var monitors []Monitor
	for _, output := range res.Outputs {
		info, err := randr.GetOutputInfo(conn, output, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(conn, info.Crtc, res.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		monitors = append(monitors, Monitor{
			Name:    strings.TrimSpace(string(info.Name)),
			X:       int(crtc.X),
			Y:       int(crtc.Y),
			Width:   int(crtc.Width),
			Height:  int(crtc.Height),
			Primary: output == primaryOutput,
		})
	}
	return monitors, nil
}
