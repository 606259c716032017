//go:build linux

package injector

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"vpiano/internal/notation"
)

// uinput ioctls and event types (linux/uinput.h, linux/input.h).
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evSyn = 0x00
	evKey = 0x01

	synReport = 0

	busUSB = 0x03
)

const uinputPath = "/dev/uinput"

// uinputUserDev mirrors struct uinput_user_dev for the device setup
// write. The abs arrays are unused for a keyboard but part of the layout.
type uinputUserDev struct {
	Name                              [80]byte
	Bustype, Vendor, Product, Version uint16
	FFEffectsMax                      uint32
	AbsMax, AbsMin, AbsFuzz, AbsFlat  [64]int32
}

// UinputKeyboard injects keys through a uinput virtual keyboard device.
// Requires write access to /dev/uinput (typically the input group or
// root).
type UinputKeyboard struct {
	mu sync.Mutex
	fd int

	// shift press/release bookkeeping so shifted keys held in a chord
	// do not drop shift while a sibling key still needs it.
	shiftHeld int
}

func newPlatformKeyboard() (Keyboard, error) {
	fd, err := unix.Open(uinputPath, unix.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, uinputPath, err)
	}

	if err := unix.IoctlSetInt(fd, uiSetEvBit, evKey); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("enable key events: %w", err)
	}
	for _, code := range supportedCodes() {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			unix.Close(fd)
			return nil, fmt.Errorf("register key %d: %w", code, err)
		}
	}

	var dev uinputUserDev
	copy(dev.Name[:], "vpiano virtual keyboard")
	dev.Bustype = busUSB
	dev.Vendor = 0x1
	dev.Product = 0x1
	dev.Version = 1

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &dev); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("encode device setup: %w", err)
	}
	if _, err := unix.Write(fd, buf.Bytes()); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("write device setup: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}

	return &UinputKeyboard{fd: fd}, nil
}

// Press presses the key. Unknown symbols are skipped without error.
func (u *UinputKeyboard) Press(k notation.Key) error {
	st, ok := strokeFor(k)
	if !ok {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if st.shift {
		if u.shiftHeld == 0 {
			if err := u.emit(evKey, keyLeftShift, 1); err != nil {
				return err
			}
		}
		u.shiftHeld++
	}
	if err := u.emit(evKey, st.code, 1); err != nil {
		return err
	}
	return u.emit(evSyn, synReport, 0)
}

// Release releases the key.
func (u *UinputKeyboard) Release(k notation.Key) error {
	st, ok := strokeFor(k)
	if !ok {
		return nil
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.emit(evKey, st.code, 0); err != nil {
		return err
	}
	if st.shift {
		u.shiftHeld--
		if u.shiftHeld == 0 {
			if err := u.emit(evKey, keyLeftShift, 0); err != nil {
				return err
			}
		}
	}
	return u.emit(evSyn, synReport, 0)
}

// Close destroys the virtual device.
func (u *UinputKeyboard) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.fd < 0 {
		return nil
	}
	_ = unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	err := unix.Close(u.fd)
	u.fd = -1
	return err
}

// emit writes one input_event. The kernel fills in the timestamp, so the
// timeval is left zero.
func (u *UinputKeyboard) emit(typ, code uint16, value int32) error {
	var ev struct {
		Time  unix.Timeval
		Type  uint16
		Code  uint16
		Value int32
	}
	ev.Type = typ
	ev.Code = code
	ev.Value = value

	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, &ev); err != nil {
		return err
	}
	if _, err := unix.Write(u.fd, buf.Bytes()); err != nil {
		return fmt.Errorf("emit event: %w", err)
	}
	return nil
}
