package texture

// State is where a Resource is in its load.
type State int

const (
	Pending State = iota
	Loaded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// DefaultAspect is the width/height ratio assumed until an image lands.
const DefaultAspect float32 = 1.5

// Handle is an uploaded GPU texture. Release frees it.
type Handle interface {
	Release()
}

// Resource is one requested texture. It is owned by exactly one holder, which must call Dispose
// exactly once when it no longer needs it. Resources are only touched on the render thread.
type Resource struct {
	id       uint64
	ref      string
	state    State
	aspect   float32
	handle   Handle
	err      error
	disposed bool
	onDone   func(*Resource)
	mgr      *Manager
}

// Ref returns the image reference this resource was requested for.
func (r *Resource) Ref() string { return r.ref }

// State returns the load state.
func (r *Resource) State() State { return r.state }

// Aspect returns width/height of the natural image, or DefaultAspect while pending or after a failure.
func (r *Resource) Aspect() float32 { return r.aspect }

// Handle returns the uploaded texture, or nil unless Loaded and not disposed.
func (r *Resource) Handle() Handle { return r.handle }

// Err returns the load error of a Failed resource.
func (r *Resource) Err() error { return r.err }

// Disposed reports whether Dispose has been called.
func (r *Resource) Disposed() bool { return r.disposed }

// Dispose releases the GPU handle (if any) and stops tracking the resource. A load still in flight
// for it is ignored when it completes. Calls after the first are no-ops.
func (r *Resource) Dispose() {
	if r == nil || r.disposed {
		return
	}
	r.disposed = true
	if r.handle != nil {
		r.handle.Release()
		r.handle = nil
	}
	r.onDone = nil
	if r.mgr != nil {
		r.mgr.forget(r)
	}
}
