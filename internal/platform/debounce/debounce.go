// Package debounce agrupa llamadas repetidas: solo la última se ejecuta,
// una vez, cuando pasa el delay sin nuevas llamadas.
package debounce

import (
	"sync"
	"time"
)

// Timer es la parte de *time.Timer que usamos.
type Timer interface {
	Stop() bool
}

// Clock programa callbacks. En producción es time.AfterFunc; los tests inyectan uno falso.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// RealClock usa el reloj del sistema.
var RealClock Clock = realClock{}

type config struct {
	clock Clock
}

type Option func(*config)

// WithClock reemplaza el reloj (tests).
func WithClock(c Clock) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.clock = c
		}
	}
}

// Debouncer mantiene a lo sumo un timer pendiente.
// Cada Call cancela el anterior y reprograma con el último argumento.
type Debouncer[T any] struct {
	delay time.Duration
	fn    func(T)
	clock Clock

	mu      sync.Mutex
	timer   Timer
	gen     uint64
	pending bool
	arg     T

	// run serializa ejecuciones de fn
	run sync.Mutex
}

func New[T any](delay time.Duration, fn func(T), opts ...Option) *Debouncer[T] {
	cfg := config{clock: RealClock}
	for _, o := range opts {
		o(&cfg)
	}
	if delay < 0 {
		delay = 0
	}
	return &Debouncer[T]{
		delay: delay,
		fn:    fn,
		clock: cfg.clock,
	}
}

// Call programa fn(arg) para dentro de delay, descartando lo pendiente.
func (d *Debouncer[T]) Call(arg T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.arg = arg
	d.pending = true

	g := d.gen
	d.timer = d.clock.AfterFunc(d.delay, func() { d.fire(g) })
}

// Stop cancela la ejecución pendiente. Devuelve true si había una.
func (d *Debouncer[T]) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	had := d.pending
	d.cancelLocked()
	return had
}

// Flush ejecuta ya la llamada pendiente, si la hay.
func (d *Debouncer[T]) Flush() bool {
	d.mu.Lock()
	if !d.pending {
		d.mu.Unlock()
		return false
	}
	arg := d.arg
	d.cancelLocked()
	d.mu.Unlock()

	d.exec(arg)
	return true
}

// Pending indica si hay una ejecución programada.
func (d *Debouncer[T]) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

func (d *Debouncer[T]) fire(g uint64) {
	d.mu.Lock()
	// un timer ya disparado pudo perder la carrera contra Call/Stop
	if g != d.gen || !d.pending {
		d.mu.Unlock()
		return
	}
	arg := d.arg
	d.pending = false
	d.timer = nil
	d.mu.Unlock()

	d.exec(arg)
}

func (d *Debouncer[T]) exec(arg T) {
	d.run.Lock()
	defer d.run.Unlock()
	d.fn(arg)
}

func (d *Debouncer[T]) cancelLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	d.pending = false
	var zero T
	d.arg = zero
}
