package source

import (
	"context"
	"errors"
	"fmt"
	"log"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/jupiterrider/purego-sdl3/sdl"

	"github.com/soar/padbridge/internal/gamepad"
)

const defaultPollInterval = 16 * time.Millisecond // ~60Hz

// Handler consumes host input. It is satisfied by translate.Translator.
type Handler interface {
	HandleKey(ev gamepad.KeyEvent) bool
	HandleMotion(ev gamepad.MotionSample) bool
}

// DeviceObserver is told which joystick is driving the console.
type DeviceObserver interface {
	SetDevice(name, layout string, connected bool)
}

type joystickInfo struct {
	joystick *sdl.Joystick
	layout   *gamepad.Layout
	device   *gamepad.Device
	hasHat   bool
	id       sdl.JoystickID
}

// Reader reads joysticks through the SDL3 Joystick API and feeds the active
// one into a Handler: buttons as key transitions, axes and the hat as one
// motion sample per poll.
type Reader struct {
	handler  Handler
	observer DeviceObserver
	interval time.Duration

	joysticks map[sdl.JoystickID]*joystickInfo
	order     []sdl.JoystickID
	activeID  sdl.JoystickID
	hasActive bool

	selectCh chan int
	devices  []gamepad.DeviceInfo
	mu       sync.RWMutex
}

// NewReader creates a Reader. observer may be nil; a zero interval means the
// default poll rate.
func NewReader(h Handler, observer DeviceObserver, interval time.Duration) *Reader {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Reader{
		handler:   h,
		observer:  observer,
		interval:  interval,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
		selectCh:  make(chan int, 1),
	}
}

// Devices returns the open joysticks in connection order.
func (r *Reader) Devices() []gamepad.DeviceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.devices)
}

// SelectDevice asks the reader to make the joystick at index active. It
// reports whether the index was valid and the request queued.
func (r *Reader) SelectDevice(index int) bool {
	r.mu.RLock()
	n := len(r.devices)
	r.mu.RUnlock()
	if index < 0 || index >= n {
		return false
	}
	select {
	case r.selectCh <- index:
		return true
	default:
		return false
	}
}

// Run initializes SDL and runs the event and polling loop until ctx is done.
// SDL is bound to the calling OS thread for the duration.
func (r *Reader) Run(ctx context.Context) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if !sdl.Init(sdl.InitJoystick) {
		return fmt.Errorf("SDL init: %w", errors.New(sdl.GetError()))
	}
	defer sdl.Quit()

	log.Println("SDL3 Joystick subsystem initialized")

	for _, id := range sdl.GetJoysticks() {
		r.openJoystick(id)
	}

	for {
		select {
		case <-ctx.Done():
			r.closeAll()
			return nil
		case index := <-r.selectCh:
			r.selectIndex(index)
		default:
		}

		r.processEvents()
		r.pollAxes()
		sdl.DelayNS(uint64(r.interval.Nanoseconds()))
	}
}

func (r *Reader) processEvents() {
	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			r.openJoystick(event.JDevice().Which)

		case sdl.EventJoystickRemoved:
			r.removeJoystick(event.JDevice().Which)

		case sdl.EventJoystickButtonDown, sdl.EventJoystickButtonUp:
			be := event.JButton()
			info := r.active(be.Which)
			if info == nil {
				continue
			}
			code, ok := info.layout.KeyForButton(int32(be.Button))
			if !ok {
				log.Printf("[DEBUG] Unmapped button: index=%d joystick=%d", be.Button, be.Which)
				continue
			}
			action := gamepad.KeyUp
			if event.Type() == sdl.EventJoystickButtonDown {
				action = gamepad.KeyDown
			}
			r.handler.HandleKey(gamepad.KeyEvent{Code: code, Action: action, Device: info.device})
		}
	}
}

// active returns the joystick if it is the active one.
func (r *Reader) active(id sdl.JoystickID) *joystickInfo {
	if !r.hasActive || id != r.activeID {
		return nil
	}
	return r.joysticks[id]
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID) {
	if _, exists := r.joysticks[instanceID]; exists {
		return
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		log.Printf("Failed to open joystick %d: %s", instanceID, sdl.GetError())
		return
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	layout := gamepad.GetLayout(vendorID, productID)
	hasHat := layout.HasHat && sdl.GetNumJoystickHats(js) > 0

	info := &joystickInfo{
		joystick: js,
		layout:   layout,
		hasHat:   hasHat,
		id:       jsID,
		device: &gamepad.Device{
			Descriptor: fmt.Sprintf("%04x:%04x:%d", vendorID, productID, jsID),
			Name:       name,
			VendorID:   vendorID,
			ProductID:  productID,
			Axes:       axisRanges(layout, sdl.GetNumJoystickAxes(js), hasHat),
		},
	}
	r.joysticks[jsID] = info
	r.order = append(r.order, jsID)

	log.Printf("Joystick connected: %s (VID=%04X PID=%04X) layout=%s axes=%d buttons=%d hats=%d",
		name, vendorID, productID, layout.Name,
		sdl.GetNumJoystickAxes(js), sdl.GetNumJoystickButtons(js), sdl.GetNumJoystickHats(js))

	// the first connected joystick drives the console
	if !r.hasActive {
		r.activate(info)
	}
	r.publishDevices()
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID) {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return
	}

	log.Printf("Joystick disconnected: %s", info.device.Name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)
	r.order = slices.DeleteFunc(r.order, func(id sdl.JoystickID) bool { return id == instanceID })

	if r.hasActive && r.activeID == instanceID {
		r.hasActive = false
		r.setDevice(nil)

		// Promote the next available joystick
		for _, id := range r.order {
			if js := r.joysticks[id]; sdl.JoystickConnected(js.joystick) {
				r.activate(js)
				break
			}
		}
	}
	r.publishDevices()
}

// axisRanges lists the host axes a joystick reports, the first hat counting
// as HAT_X and HAT_Y. SDL does not expose flat or fuzz, so both are left at
// zero.
func axisRanges(layout *gamepad.Layout, numAxes int32, hasHat bool) []gamepad.AxisRange {
	var ranges []gamepad.AxisRange
	for _, am := range layout.Axes {
		if am.Index < numAxes {
			ranges = append(ranges, gamepad.AxisRange{Axis: am.Axis})
		}
	}
	if hasHat {
		ranges = append(ranges, gamepad.AxisRange{Axis: gamepad.AxisHatX}, gamepad.AxisRange{Axis: gamepad.AxisHatY})
	}
	return ranges
}

func (r *Reader) selectIndex(index int) {
	if index < 0 || index >= len(r.order) {
		return
	}
	info := r.joysticks[r.order[index]]
	if r.hasActive && r.activeID == info.id {
		return
	}
	// start the new controller from a clean console state
	r.setDevice(nil)
	r.activate(info)
	r.publishDevices()
}

func (r *Reader) activate(info *joystickInfo) {
	r.activeID = info.id
	r.hasActive = true
	log.Printf("Active joystick set: %s (ID=%d)", info.device.Name, info.id)
	r.setDevice(info)
}

func (r *Reader) setDevice(info *joystickInfo) {
	if r.observer == nil {
		return
	}
	if info == nil {
		r.observer.SetDevice("", "", false)
		return
	}
	r.observer.SetDevice(info.device.Name, info.layout.Name, true)
}

func (r *Reader) publishDevices() {
	devices := make([]gamepad.DeviceInfo, 0, len(r.order))
	for i, id := range r.order {
		info := r.joysticks[id]
		devices = append(devices, gamepad.DeviceInfo{
			Index:      i,
			Name:       info.device.Name,
			Layout:     info.layout.Name,
			Descriptor: info.device.Descriptor,
			Active:     r.hasActive && r.activeID == id,
		})
	}
	r.mu.Lock()
	r.devices = devices
	r.mu.Unlock()
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.order = nil
	r.hasActive = false
	r.publishDevices()
}

func (r *Reader) pollAxes() {
	if !r.hasActive {
		return
	}

	info, exists := r.joysticks[r.activeID]
	if !exists || !sdl.JoystickConnected(info.joystick) {
		return
	}

	numAxes := sdl.GetNumJoystickAxes(info.joystick)
	values := make(map[gamepad.AxisID]float64, len(info.layout.Axes))
	for _, am := range info.layout.Axes {
		if am.Index >= numAxes {
			continue
		}
		values[am.Axis] = am.Value(sdl.GetJoystickAxis(info.joystick, am.Index))
	}
	// the hat is level-triggered like every other axis, so a held direction
	// is re-asserted on each sample
	if info.hasHat {
		values[gamepad.AxisHatX], values[gamepad.AxisHatY] = gamepad.HatAxes(sdl.GetJoystickHat(info.joystick, 0))
	}

	r.handler.HandleMotion(gamepad.MotionSample{
		Device: info.device,
		Source: gamepad.SourceJoystick,
		Action: gamepad.MotionMove,
		Values: values,
	})
}
