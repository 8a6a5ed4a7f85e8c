package progress

import (
	"crypto/rand"
	"log"
	"runtime"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/oklog/ulid/v2"
)

// Observer receives checkpoints from long-running passes.
// Calls are made synchronously on the goroutine doing the work.
type Observer interface {
	// Step reports that done of total units of stage have completed.
	Step(stage string, done, total int)
	// Phase reports that a named phase has finished.
	Phase(stage, msg string)
	// Warn reports a non-fatal diagnostic. The computation continues.
	Warn(err error)
}

// Nop discards every notification.
var Nop Observer = nop{}

type nop struct{}

func (nop) Step(string, int, int) {}
func (nop) Phase(string, string)  {}
func (nop) Warn(error)            {}

// OrNop returns obs, or Nop when obs is nil.
func OrNop(obs Observer) Observer {
	if obs == nil {
		return Nop
	}
	return obs
}

// MemorySampler returns the number of bytes currently held by the process.
type MemorySampler func() uint64

// RuntimeMemory reports memory obtained from the OS by the Go runtime.
func RuntimeMemory() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.Sys
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

// NewRunID returns a sortable identifier for one extraction or counting run.
func NewRunID() string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Now(), entropy).String()
}

// LogObserver writes progress through the standard logger.
// Step output is throttled to every tenth of the total and the final step.
type LogObserver struct {
	RunID  string
	Memory MemorySampler
	Logger *log.Logger

	lastDecile map[string]int
}

// NewLogObserver creates a log observer with a fresh run ID.
func NewLogObserver() *LogObserver {
	return &LogObserver{
		RunID:  NewRunID(),
		Memory: RuntimeMemory,
	}
}

func (o *LogObserver) printf(format string, args ...interface{}) {
	args = append([]interface{}{o.RunID}, args...)
	if o.Logger != nil {
		o.Logger.Printf("[%s] "+format, args...)
		return
	}
	log.Printf("[%s] "+format, args...)
}

// Step logs progress at most once per decile of total.
func (o *LogObserver) Step(stage string, done, total int) {
	if total <= 0 {
		return
	}
	if o.lastDecile == nil {
		o.lastDecile = make(map[string]int)
	}
	decile := done * 10 / total
	if done == 1 {
		o.lastDecile[stage] = -1
	}
	if decile == o.lastDecile[stage] && done != total {
		return
	}
	o.lastDecile[stage] = decile
	o.printf("%s: %d/%d (%.1f%%)", stage, done, total, 100*float64(done)/float64(total))
}

// Phase logs a finished phase together with the current memory usage.
func (o *LogObserver) Phase(stage, msg string) {
	if o.Memory == nil {
		o.printf("# %s: %s", stage, msg)
		return
	}
	o.printf("# %s: %s (memory %s)", stage, msg, humanize.Bytes(o.Memory()))
}

// Warn logs a diagnostic.
func (o *LogObserver) Warn(err error) {
	o.printf("WARNING: %v", err)
}

// Recorder keeps every notification in memory. Useful in tests and for
// callers that want to inspect diagnostics after a run.
type Recorder struct {
	Steps    map[string]int
	Phases   []string
	Warnings []error
}

// Step records the latest done count for stage.
func (r *Recorder) Step(stage string, done, total int) {
	if r.Steps == nil {
		r.Steps = make(map[string]int)
	}
	r.Steps[stage] = done
}

// Phase records the phase name.
func (r *Recorder) Phase(stage, msg string) {
	r.Phases = append(r.Phases, stage)
}

// Warn records err.
func (r *Recorder) Warn(err error) {
	r.Warnings = append(r.Warnings, err)
}
