package jsloader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"remote-loader/core/logger"
	"remote-loader/core/remote"

	"github.com/dop251/goja"
	"go.uber.org/zap"
)

// Sentinel errors for script loading.
var (
	ErrScriptTooLarge  = errors.New("jsloader: entry script too large")
	ErrScript          = errors.New("jsloader: entry script failed")
	ErrNoContainer     = errors.New("jsloader: container not found")
	ErrNotExposed      = errors.New("jsloader: module not exposed")
	ErrRejected        = errors.New("jsloader: promise rejected")
	ErrPending         = errors.New("jsloader: promise did not settle")
	ErrNotObject       = errors.New("jsloader: module is not an object")
	ErrBudgetExhausted = errors.New("jsloader: execution budget exhausted")
)

// ScriptFetcher downloads an entry script.
type ScriptFetcher interface {
	FetchText(ctx context.Context, url string) (string, error)
}

// Loader evaluates remote entry scripts.
type Loader struct {
	fetcher ScriptFetcher
	cfg     Config
	log     *zap.Logger
}

// New creates a Loader.
func New(fetcher ScriptFetcher, cfg Config, l *zap.Logger) *Loader {
	return &Loader{fetcher: fetcher, cfg: cfg, log: logger.Component(l, "jsloader")}
}

// LoadModule implements remote.ModuleLoader.
func (l *Loader) LoadModule(ctx context.Context, req remote.ModuleRequest) (remote.ModuleRecord, error) {
	src, err := l.fetcher.FetchText(ctx, req.Entry)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch entry script: %w", err)
	}
	if int64(len(src)) > l.cfg.maxBytes() {
		return nil, fmt.Errorf("%w: %d bytes", ErrScriptTooLarge, len(src))
	}
	return l.Evaluate(ctx, req.Entry, src, req.ExposedKey)
}

// Evaluate runs src and resolves exposedKey from its container.
func (l *Loader) Evaluate(ctx context.Context, name, src, exposedKey string) (remote.ModuleRecord, error) {
	vm := goja.New()
	l.installGlobals(vm, name)

	stop := l.watch(ctx, vm)
	defer stop()

	rec, err := l.evaluate(vm, name, src, exposedKey)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, fmt.Errorf("%w: %s", ErrBudgetExhausted, name)
		}
		return nil, err
	}
	return rec, nil
}

func (l *Loader) evaluate(vm *goja.Runtime, name, src, exposedKey string) (remote.ModuleRecord, error) {
	if _, err := vm.RunScript(name, src); err != nil {
		return nil, wrapScriptErr(err)
	}

	container, err := l.container(vm)
	if err != nil {
		return nil, err
	}

	if initFn, ok := goja.AssertFunction(container.Get("init")); ok {
		v, err := initFn(container, vm.NewObject())
		if err != nil {
			return nil, wrapScriptErr(err)
		}
		if _, err := settle(v); err != nil {
			return nil, fmt.Errorf("container init: %w", err)
		}
	}

	getFn, ok := goja.AssertFunction(container.Get("get"))
	if !ok {
		return nil, fmt.Errorf("%w: get is not a function", ErrNoContainer)
	}
	v, err := getFn(container, vm.ToValue(exposedKey))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotExposed, exposedKey, wrapScriptErr(err))
	}
	factory, err := settle(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotExposed, exposedKey, err)
	}

	module := factory
	if fn, ok := goja.AssertFunction(factory); ok {
		mv, err := fn(goja.Undefined())
		if err != nil {
			return nil, wrapScriptErr(err)
		}
		if module, err = settle(mv); err != nil {
			return nil, err
		}
	}

	if isNullish(module) {
		return nil, fmt.Errorf("%w: %s resolved to nothing", ErrNotExposed, exposedKey)
	}
	exported, ok := module.Export().(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: got %T", ErrNotObject, module.Export())
	}
	return remote.ModuleRecord(exported), nil
}

func (l *Loader) container(vm *goja.Runtime) (*goja.Object, error) {
	if l.cfg.ContainerName == "" {
		if _, ok := goja.AssertFunction(vm.Get("get")); !ok {
			return nil, fmt.Errorf("%w: no global get()", ErrNoContainer)
		}
		return vm.GlobalObject(), nil
	}

	v := vm.Get(l.cfg.ContainerName)
	if isNullish(v) {
		return nil, fmt.Errorf("%w: %s is undefined", ErrNoContainer, l.cfg.ContainerName)
	}
	return v.ToObject(vm), nil
}

// watch interrupts vm when ctx ends or the budget runs out.
func (l *Loader) watch(ctx context.Context, vm *goja.Runtime) func() {
	done := make(chan struct{})
	budget := l.cfg.budget()
	go func() {
		timer := time.NewTimer(budget)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			vm.Interrupt("context done")
		case <-timer.C:
			l.log.Warn("entry script exceeded execution budget", zap.Duration("budget", budget))
			vm.Interrupt("execution budget exhausted")
		case <-done:
		}
	}()
	return func() { close(done) }
}

func (l *Loader) installGlobals(vm *goja.Runtime, name string) {
	global := vm.GlobalObject()
	_ = vm.Set("self", global)
	_ = vm.Set("window", global)

	log := l.log.With(zap.String("script", name))
	console := vm.NewObject()
	printer := func(emit func(string, ...zap.Field)) func(goja.FunctionCall) goja.Value {
		return func(call goja.FunctionCall) goja.Value {
			args := make([]any, len(call.Arguments))
			for i, arg := range call.Arguments {
				args[i] = arg.Export()
			}
			emit(fmt.Sprint(args...))
			return goja.Undefined()
		}
	}
	_ = console.Set("log", printer(log.Debug))
	_ = console.Set("info", printer(log.Info))
	_ = console.Set("debug", printer(log.Debug))
	_ = console.Set("warn", printer(log.Warn))
	_ = console.Set("error", printer(log.Error))
	_ = vm.Set("console", console)
}

// settle unwraps a settled Promise; other values pass through.
func settle(v goja.Value) (goja.Value, error) {
	if isNullish(v) {
		return v, nil
	}
	p, ok := v.Export().(*goja.Promise)
	if !ok {
		return v, nil
	}
	switch p.State() {
	case goja.PromiseStateFulfilled:
		return p.Result(), nil
	case goja.PromiseStateRejected:
		return nil, fmt.Errorf("%w: %v", ErrRejected, p.Result())
	default:
		return nil, ErrPending
	}
}

func isNullish(v goja.Value) bool {
	return v == nil || goja.IsUndefined(v) || goja.IsNull(v)
}

func wrapScriptErr(err error) error {
	var interrupted *goja.InterruptedError
	if errors.As(err, &interrupted) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrScript, err)
}
