//go:build linux

package i2cdev

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// <linux/i2c-dev.h>, <linux/i2c.h>
const (
	ioctlFuncs = 0x0705
	ioctlRdWr  = 0x0707

	msgRead = 0x0001

	funcI2C = 0x00000001
)

// i2cMsg mirrors struct i2c_msg.
type i2cMsg struct {
	addr  uint16
	flags uint16
	len   uint16
	buf   *byte
}

// rdwrData mirrors struct i2c_rdwr_ioctl_data.
type rdwrData struct {
	msgs  *i2cMsg
	nmsgs uint32
}

// Bus is an open adapter. Tx issues a combined write/read with a repeated
// start, as SMBus read-word and block-read need.
type Bus struct {
	mu   sync.Mutex
	fd   int
	path string
}

// Open opens the adapter at path and checks it supports plain I2C
// transfers.
func Open(path string) (*Bus, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "i2cdev: open %s", path)
	}
	var funcs uint // unsigned long
	if _, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ioctlFuncs, uintptr(unsafe.Pointer(&funcs))); errno != 0 {
		unix.Close(fd)
		return nil, errors.Wrapf(errno, "i2cdev: query functionality of %s", path)
	}
	if funcs&funcI2C == 0 {
		unix.Close(fd)
		return nil, errors.Errorf("i2cdev: %s does not support plain I2C transfers", path)
	}
	return &Bus{fd: fd, path: path}, nil
}

func (b *Bus) Tx(addr uint16, w, r []byte) error {
	var msgs [2]i2cMsg
	n := 0
	if len(w) > 0 {
		msgs[n] = i2cMsg{addr: addr, len: uint16(len(w)), buf: &w[0]}
		n++
	}
	if len(r) > 0 {
		msgs[n] = i2cMsg{addr: addr, flags: msgRead, len: uint16(len(r)), buf: &r[0]}
		n++
	}
	if n == 0 {
		return ErrEmptyTx
	}
	data := rdwrData{msgs: &msgs[0], nmsgs: uint32(n)}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fd < 0 {
		return errors.Errorf("i2cdev: %s is closed", b.path)
	}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(b.fd), ioctlRdWr, uintptr(unsafe.Pointer(&data)))
	runtime.KeepAlive(w)
	runtime.KeepAlive(r)
	runtime.KeepAlive(&msgs)
	if errno != 0 {
		return errors.Wrapf(errno, "i2cdev: %s addr 0x%02X", b.path, addr)
	}
	return nil
}

func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fd < 0 {
		return nil
	}
	err := unix.Close(b.fd)
	b.fd = -1
	return errors.Wrapf(err, "i2cdev: close %s", b.path)
}
