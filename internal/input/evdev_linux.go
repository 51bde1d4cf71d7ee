//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// EvdevSource reads keyboards and touchscreens under /dev/input. It is
// best-effort: devices that cannot be opened are skipped.
type EvdevSource struct {
	Glob   string
	Canvas func() (int, int)
	Logger interface {
		Infof(string, string, ...interface{})
		Errorf(string, string, ...interface{})
	}

	events chan Event
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once
}

func NewEvdevSource(canvas func() (int, int)) *EvdevSource {
	return &EvdevSource{Glob: "/dev/input/event*", Canvas: canvas, events: make(chan Event, 64)}
}

func (s *EvdevSource) Events() <-chan Event { return s.events }

func (s *EvdevSource) Start(ctx context.Context) error {
	paths, err := filepath.Glob(s.Glob)
	if err != nil || len(paths) == 0 {
		s.infof("no evdev devices found under %s", s.Glob)
		return nil
	}
	ctx, s.cancel = context.WithCancel(ctx)
	for _, path := range paths {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
		if err != nil {
			s.errorf("open %s: %v", path, err)
			continue
		}
		dec := &decoder{
			xRange: probeAbs(fd, absX, absMTPosX),
			yRange: probeAbs(fd, absY, absMTPosY),
			canvas: s.Canvas,
		}
		s.infof("reading %s (x %d..%d, y %d..%d)", path, dec.xRange.min, dec.xRange.max, dec.yRange.min, dec.yRange.max)
		s.wg.Add(1)
		go s.read(ctx, path, fd, dec)
	}
	return nil
}

func (s *EvdevSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	s.once.Do(func() { close(s.events) })
	return nil
}

func (s *EvdevSource) read(ctx context.Context, path string, fd int, dec *decoder) {
	defer s.wg.Done()
	f := os.NewFile(uintptr(fd), path)
	defer func() {
		_ = f.Close()
	}()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := int(binary.Size(unix.Timeval{}))
	eventSize := tvSize + 2 + 2 + 4
	buf := make([]byte, eventSize*64)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			s.errorf("poll %s: %v", path, err)
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			s.errorf("read %s: %v", path, err)
			return
		}
		for off := 0; off+eventSize <= n; off += eventSize {
			rec := buf[off : off+eventSize]
			typ := binary.LittleEndian.Uint16(rec[tvSize : tvSize+2])
			code := binary.LittleEndian.Uint16(rec[tvSize+2 : tvSize+4])
			value := int32(binary.LittleEndian.Uint32(rec[tvSize+4 : tvSize+8]))
			for _, ev := range dec.decode(typ, code, value) {
				select {
				case s.events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}

// inputAbsinfo mirrors struct input_absinfo.
type inputAbsinfo struct {
	Value, Minimum, Maximum, Fuzz, Flat, Resolution int32
}

// probeAbs returns the range of the first axis the device reports.
func probeAbs(fd int, axes ...uint16) absRange {
	for _, axis := range axes {
		var info inputAbsinfo
		req := eviocgabs(axis)
		_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(unsafe.Pointer(&info)))
		if errno == 0 && info.Maximum > info.Minimum {
			return absRange{min: info.Minimum, max: info.Maximum}
		}
	}
	return absRange{}
}

// eviocgabs is _IOR('E', 0x40 + axis, struct input_absinfo).
func eviocgabs(axis uint16) uintptr {
	const iocRead = 2
	size := uintptr(unsafe.Sizeof(inputAbsinfo{}))
	return iocRead<<30 | size<<16 | uintptr('E')<<8 | uintptr(0x40+axis)
}

func (s *EvdevSource) infof(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Infof("input", format, args...)
	}
}

func (s *EvdevSource) errorf(format string, args ...interface{}) {
	if s.Logger != nil {
		s.Logger.Errorf("input", format, args...)
	}
}
