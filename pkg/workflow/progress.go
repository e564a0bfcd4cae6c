package workflow

import (
	"sync"
	"time"
)

// LoadingSteps are shown one after another while recommendations are
// generated. They do not reflect real progress.
var LoadingSteps = []string{
	"Scanning your skills profile...",
	"Cross-referencing industry demand...",
	"Identifying skill gaps...",
	"Generating personalised roadmaps...",
}

// DefaultLoadingTick is the pace of the loading steps.
const DefaultLoadingTick = 1200 * time.Millisecond

// Progress advances an index from 0 towards steps-1 on a fixed interval and
// stays on the last step. One Progress belongs to one generation call.
type Progress struct {
	mu    sync.Mutex
	index int

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// StartProgress starts ticking. onTick, if set, receives each new index from
// the ticker goroutine and is never called after Stop returns.
func StartProgress(steps int, interval time.Duration, onTick func(index int)) *Progress {
	p := &Progress{stop: make(chan struct{}), done: make(chan struct{})}
	last := steps - 1
	if last <= 0 || interval <= 0 {
		close(p.done)
		return p
	}
	go p.run(last, interval, onTick)
	return p
}

func (p *Progress) run(last int, interval time.Duration, onTick func(int)) {
	defer close(p.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			return
		case <-ticker.C:
			p.mu.Lock()
			p.index++
			idx := p.index
			p.mu.Unlock()
			if onTick != nil {
				onTick(idx)
			}
			if idx >= last {
				return
			}
		}
	}
}

// Index is the current step, never above steps-1.
func (p *Progress) Index() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.index
}

// Stop halts the ticker and waits for it to exit. Safe to call repeatedly.
func (p *Progress) Stop() {
	p.stopOnce.Do(func() { close(p.stop) })
	<-p.done
}

// Done is closed once the ticker goroutine has exited.
func (p *Progress) Done() <-chan struct{} { return p.done }
