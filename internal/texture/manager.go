package texture

import (
	"context"
	"image"
	"sync"

	"golang.org/x/sync/semaphore"

	"gallery-room/internal/logger"
)

// Uploader turns a decoded image into a GPU texture. It is called on the render thread.
type Uploader interface {
	Upload(img image.Image) (Handle, error)
}

// NopUploader accepts every image without touching a GPU (headless runs and tests).
type NopUploader struct{}

type nopHandle struct{}

func (nopHandle) Release() {}

// Upload implements Uploader.
func (NopUploader) Upload(image.Image) (Handle, error) { return nopHandle{}, nil }

// Options configures a Manager. Zero values pick defaults.
type Options struct {
	Source        Source
	Uploader      Uploader
	Log           *logger.Logger
	MaxDimension  int // downscale bound in pixels; 0 disables
	MaxConcurrent int // concurrent fetch+decode jobs; default 4
}

// Stats counts live (not yet disposed) resources by state.
type Stats struct {
	Pending int
	Loaded  int
	Failed  int
}

type result struct {
	id     uint64
	img    image.Image
	aspect float32
	err    error
}

// Manager loads textures in the background and hands them back on the render thread.
// Load, Pump, Close and every Resource method must be called from the render thread;
// only fetch and decode run on other goroutines.
type Manager struct {
	src    Source
	up     Uploader
	log    *logger.Logger
	maxDim int
	sem    *semaphore.Weighted

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	results chan result
	live    map[uint64]*Resource
	nextID  uint64
}

// NewManager returns a Manager ready to accept loads.
func NewManager(opts Options) *Manager {
	if opts.Source == nil {
		opts.Source = DefaultSource{}
	}
	if opts.Uploader == nil {
		opts.Uploader = NopUploader{}
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 4
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		src:     opts.Source,
		up:      opts.Uploader,
		log:     opts.Log,
		maxDim:  opts.MaxDimension,
		sem:     semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		ctx:     ctx,
		cancel:  cancel,
		results: make(chan result, 64),
		live:    make(map[uint64]*Resource),
	}
}

// Load starts fetching and decoding ref in the background and returns its Pending resource.
// onDone (optional) runs on the render thread, from Pump, once the resource is Loaded or Failed;
// it never runs for a resource disposed before its load landed.
func (m *Manager) Load(ref string, onDone func(*Resource)) *Resource {
	m.nextID++
	r := &Resource{
		id:     m.nextID,
		ref:    ref,
		state:  Pending,
		aspect: DefaultAspect,
		onDone: onDone,
		mgr:    m,
	}
	m.live[r.id] = r
	if m.ctx.Err() != nil {
		r.state = Failed
		r.err = context.Canceled
		return r
	}

	m.wg.Add(1)
	go m.run(r.id, ref)
	return r
}

func (m *Manager) run(id uint64, ref string) {
	defer m.wg.Done()
	if err := m.sem.Acquire(m.ctx, 1); err != nil {
		return
	}
	defer m.sem.Release(1)

	res := result{id: id}
	data, err := m.src.Fetch(m.ctx, ref)
	if err == nil {
		res.img, res.aspect, err = Decode(data, m.maxDim)
	}
	res.err = err

	select {
	case m.results <- res:
	case <-m.ctx.Done():
	}
}

// Pump delivers every load that has completed since the last call and returns how many it
// delivered. Call it once per frame from the render loop; it never blocks.
func (m *Manager) Pump() int {
	n := 0
	for {
		select {
		case res := <-m.results:
			if m.deliver(res) {
				n++
			}
		default:
			return n
		}
	}
}

// deliver settles one completed load. Results for resources that were disposed meanwhile are dropped.
func (m *Manager) deliver(res result) bool {
	r, ok := m.live[res.id]
	if !ok || r.disposed {
		return false
	}
	if res.err == nil {
		h, err := m.up.Upload(res.img)
		if err != nil {
			res.err = err
		} else {
			r.handle = h
			r.aspect = res.aspect
			r.state = Loaded
		}
	}
	if res.err != nil {
		r.state = Failed
		r.err = res.err
		m.log.Warnf("texture: %s: %v", r.ref, res.err)
	}
	if done := r.onDone; done != nil {
		r.onDone = nil
		done(r)
	}
	return true
}

func (m *Manager) forget(r *Resource) {
	delete(m.live, r.id)
}

// Live returns the number of resources requested and not yet disposed.
func (m *Manager) Live() int {
	return len(m.live)
}

// Stats counts live resources by state.
func (m *Manager) Stats() Stats {
	var s Stats
	for _, r := range m.live {
		switch r.state {
		case Pending:
			s.Pending++
		case Loaded:
			s.Loaded++
		case Failed:
			s.Failed++
		}
	}
	return s
}

// Close stops in-flight loads, disposes every live resource and waits for the background
// goroutines to exit. Loads requested after Close fail immediately.
func (m *Manager) Close() {
	m.cancel()
	for _, r := range m.live {
		r.Dispose()
	}
	m.wg.Wait()
	for {
		select {
		case <-m.results:
		default:
			return
		}
	}
}
