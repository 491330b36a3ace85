package core

import "fmt"

// FPSSampleFrames is the number of frames averaged per FPS sample.
const FPSSampleFrames uint32 = 200

// FPSObserver receives every new FPS sample.
type FPSObserver func(fps uint64)

type FPSCounter struct {
	clock    *Clock
	frames   uint32
	fps      uint64
	observer FPSObserver
}

func NewFPSCounter(clock *Clock) *FPSCounter {
	clock.Start()
	return &FPSCounter{clock: clock}
}

func (f *FPSCounter) SetObserver(observer FPSObserver) {
	f.observer = observer
}

// Frame counts one presented frame. Once FPSSampleFrames frames have been
// counted, fps = 1e6 * frames / elapsed microseconds is computed, the
// window restarts and the observer is notified.
func (f *FPSCounter) Frame() {
	f.frames++
	if f.frames < FPSSampleFrames {
		return
	}
	f.clock.Update()
	elapsed := f.clock.Elapsed().Microseconds()
	if elapsed <= 0 {
		elapsed = 1
	}
	f.fps = uint64(1_000_000) * uint64(f.frames) / uint64(elapsed)
	f.frames = 0
	f.clock.Start()
	if f.observer != nil {
		f.observer(f.fps)
	}
}

func (f *FPSCounter) FPS() uint64 {
	return f.fps
}

// FPSTitle formats a sample the way the window title shows it.
func FPSTitle(fps uint64) string {
	return fmt.Sprintf("FPS: %v", fps)
}
