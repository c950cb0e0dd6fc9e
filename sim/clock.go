package sim

import "time"

// Clock is a periodic tick source. Start after Start restarts the period;
// Stop is idempotent and no tick fires after it returns.
type Clock interface {
	Start()
	Stop()
	OnTick(fn func())
}

// Dispatcher runs fn on the goroutine that owns the game.
type Dispatcher func(fn func())

// TickerClock ticks in real time. Ticks are handed to the dispatcher so the
// callback always runs on the owner goroutine; Start and Stop must be called
// there too.
type TickerClock struct {
	interval time.Duration
	dispatch Dispatcher
	onTick   func()
	gen      int
	quit     chan struct{}
}

func NewTickerClock(interval time.Duration, dispatch Dispatcher) *TickerClock {
	return &TickerClock{interval: interval, dispatch: dispatch}
}

func (c *TickerClock) OnTick(fn func()) {
	c.onTick = fn
}

func (c *TickerClock) Start() {
	c.Stop()
	c.gen++
	c.quit = make(chan struct{})
	go c.run(c.gen, c.quit)
}

func (c *TickerClock) Stop() {
	if c.quit != nil {
		close(c.quit)
		c.quit = nil
	}
}

func (c *TickerClock) Running() bool {
	return c.quit != nil
}

func (c *TickerClock) run(gen int, quit chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			c.dispatch(func() { c.fire(gen) })
		}
	}
}

// fire drops ticks queued by a run that has since been stopped.
func (c *TickerClock) fire(gen int) {
	if c.quit == nil || gen != c.gen || c.onTick == nil {
		return
	}
	c.onTick()
}

// FrameClock is driven by a host frame loop: Advance feeds elapsed time and
// fires the due ticks inline.
type FrameClock struct {
	interval time.Duration
	elapsed  time.Duration
	running  bool
	onTick   func()
}

func NewFrameClock(interval time.Duration) *FrameClock {
	return &FrameClock{interval: interval}
}

func (c *FrameClock) OnTick(fn func()) {
	c.onTick = fn
}

func (c *FrameClock) Start() {
	c.elapsed = 0
	c.running = true
}

func (c *FrameClock) Stop() {
	c.running = false
}

// Advance returns the number of ticks fired. A tick that stops the clock
// ends the batch.
func (c *FrameClock) Advance(dt time.Duration) int {
	if !c.running || c.interval <= 0 {
		return 0
	}
	c.elapsed += dt
	fired := 0
	for c.running && c.elapsed >= c.interval {
		c.elapsed -= c.interval
		fired++
		if c.onTick != nil {
			c.onTick()
		}
	}
	return fired
}

// Progress is how far the clock is into the current period, in [0,1).
func (c *FrameClock) Progress() float64 {
	if c.interval <= 0 {
		return 0
	}
	return float64(c.elapsed) / float64(c.interval)
}

// ManualClock only ticks when stepped.
type ManualClock struct {
	running bool
	onTick  func()
	Ticks   int
}

func (c *ManualClock) OnTick(fn func()) {
	c.onTick = fn
}

func (c *ManualClock) Start() {
	c.running = true
}

func (c *ManualClock) Stop() {
	c.running = false
}

func (c *ManualClock) Running() bool {
	return c.running
}

func (c *ManualClock) Step() bool {
	if !c.running || c.onTick == nil {
		return false
	}
	c.Ticks++
	c.onTick()
	return true
}

// Advance steps up to n times and returns how many ticks fired.
func (c *ManualClock) Advance(n int) int {
	fired := 0
	for i := 0; i < n && c.Step(); i++ {
		fired++
	}
	return fired
}
