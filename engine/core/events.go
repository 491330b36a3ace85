package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type EventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed.
	/* Context usage:
	 * data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released.
	/* Context usage:
	 * data.(*KeyEvent).KeyCode
	 */
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Framebuffer resized from the OS. Either dimension can be zero while minimized.
	/* Context usage:
	 * data.(*ResizeEvent).Width / .Height
	 */
	EVENT_CODE_RESIZED EventCode = 0x08

	// The window asked for a new frame.
	EVENT_CODE_REDRAW_REQUESTED EventCode = 0x09

	// All pending OS events have been processed.
	EVENT_CODE_ABOUT_TO_WAIT EventCode = 0x0A

	// A watched asset changed on disk.
	/* Context usage:
	 * data.(*AssetEvent).Path
	 */
	EVENT_CODE_ASSET_CHANGED EventCode = 0x0B

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type AssetEvent struct {
	Path string
}

// FnOnEvent should return true if the event was handled; handled events
// are not passed to the remaining listeners.
type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	id       uint64
	callback FnOnEvent
}

// State structure.
type eventSystemState struct {
	mu         sync.Mutex
	nextID     uint64
	registered map[EventCode][]registeredEvent
}

/**
 * Event system internal state.
 */
var eventState *eventSystemState = nil

// EventSystemInitialize (re)creates the event system. Any previous
// registration is dropped.
func EventSystemInitialize() bool {
	eventState = &eventSystemState{
		registered: make(map[EventCode][]registeredEvent),
	}
	return true
}

func EventSystemShutdown() error {
	eventState = nil
	return nil
}

/**
 * Register to listen for when events are sent with the provided code.
 * @param code The event code to listen for.
 * @param onEvent The callback to be invoked when the event code is fired.
 * @returns The listener id to unregister with, 0 if the system is not running.
 */
func EventRegister(code EventCode, onEvent FnOnEvent) uint64 {
	if eventState == nil {
		return 0
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	eventState.nextID++
	eventState.registered[code] = append(eventState.registered[code], registeredEvent{
		id:       eventState.nextID,
		callback: onEvent,
	})
	return eventState.nextID
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns true if the listener was found and removed.
 */
func EventUnregister(code EventCode, id uint64) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	defer eventState.mu.Unlock()

	events := eventState.registered[code]
	for i, e := range events {
		if e.id == id {
			eventState.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code, in registration order.
 * @returns true if a listener handled it.
 */
func EventFire(context EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	listeners := make([]registeredEvent, len(eventState.registered[context.Type]))
	copy(listeners, eventState.registered[context.Type])
	eventState.mu.Unlock()

	for _, e := range listeners {
		if e.callback(context) {
			return true
		}
	}
	return false
}
