package runtime

import (
	"context"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/sagudev/fp-bindgen/bridge"
	"github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/layout"
)

// Config holds configuration for runtime creation.
type Config struct {
	// MemoryLimitPages caps plugin memory in 64KB pages. 0 means the
	// wazero default.
	MemoryLimitPages uint32

	// StrictCancellation makes a resolution arriving for a cancelled
	// host-side call an error requiring acknowledgement, instead of a
	// silent discard.
	StrictCancellation bool
}

// HostFunc is one bound host function. Arguments and the optional result
// are packed references, except the trailing call handle of asynchronous
// functions. A returned error traps the calling plugin.
type HostFunc func(ctx context.Context, args []uint64) (uint64, error)

type hostFunc struct {
	name    string
	params  int
	results int
	fn      HostFunc
}

// Runtime hosts one plugin module.
type Runtime struct {
	cfg     Config
	wazero  wazero.Runtime
	imports []hostFunc

	// callMu serializes every entry into the single-threaded plugin:
	// exported-function calls, guest allocations and frees all contend
	// on it. Host-import handlers run inside a guest call on the
	// goroutine already holding it, so they must use the unlocked
	// TakeArg and ShareResult accessors.
	callMu sync.Mutex
	mod    api.Module
	malloc api.Function
	free   api.Function

	// calls tracks host-initiated async calls awaiting guest resolution.
	calls *bridge.Registry

	// cancelled records guest-side cancellations of host-executed async
	// imports; a matching resolution is discarded instead of delivered.
	cancelMu  sync.Mutex
	cancelled map[uint32]struct{}
}

// New creates a runtime. Define imports, then Load a plugin module.
func New(ctx context.Context, cfg Config) *Runtime {
	wazeroCfg := wazero.NewRuntimeConfig()
	if cfg.MemoryLimitPages > 0 {
		wazeroCfg = wazeroCfg.WithMemoryLimitPages(cfg.MemoryLimitPages)
	}
	calls := bridge.NewRegistry()
	if cfg.StrictCancellation {
		calls = bridge.NewStrictRegistry()
	}
	return &Runtime{
		cfg:       cfg,
		wazero:    wazero.NewRuntimeWithConfig(ctx, wazeroCfg),
		calls:     calls,
		cancelled: make(map[uint32]struct{}),
	}
}

// DefineImport binds one host function under the shared import module.
// Synchronous functions take params packed refs and return one; the
// asynchronous convention is results == 0 with a trailing i32 call
// handle. Must be called before Load.
func (r *Runtime) DefineImport(name string, params, results int, fn HostFunc) {
	r.imports = append(r.imports, hostFunc{name: name, params: params, results: results, fn: fn})
}

// Bridge returns the registry tracking host-initiated async calls.
func (r *Runtime) Bridge() *bridge.Registry {
	return r.calls
}

// Load instantiates the host import module and the plugin, then verifies
// the plugin's ABI version. A version mismatch fails fast and unloads
// the module.
func (r *Runtime) Load(ctx context.Context, wasmBytes []byte) error {
	if r.mod != nil {
		return errors.InvalidInput(errors.PhaseLoad, "a plugin module is already loaded")
	}
	if err := r.instantiateHostModule(ctx); err != nil {
		return err
	}

	mod, err := r.wazero.Instantiate(ctx, wasmBytes)
	if err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "instantiate plugin module")
	}

	malloc := mod.ExportedFunction(layout.AllocExport)
	free := mod.ExportedFunction(layout.FreeExport)
	version := mod.ExportedFunction(layout.VersionExport)
	if malloc == nil || free == nil || version == nil {
		_ = mod.Close(ctx)
		return errors.New(errors.PhaseLoad, errors.KindNotFound).
			Detail("plugin does not export the allocator and version entry points").
			Build()
	}

	res, err := version.Call(ctx)
	if err != nil {
		_ = mod.Close(ctx)
		return errors.Wrap(errors.PhaseLoad, errors.KindVersionMismatch, err, "query plugin ABI version")
	}
	if got := uint32(res[0]); got != layout.ABIVersion {
		_ = mod.Close(ctx)
		return errors.VersionMismatch(layout.ABIVersion, got)
	}

	r.mod = mod
	r.malloc = malloc
	r.free = free
	Logger().Info("plugin loaded",
		zap.Uint32("abi_version", layout.ABIVersion),
		zap.Int("imports", len(r.imports)))
	return nil
}

func (r *Runtime) instantiateHostModule(ctx context.Context) error {
	builder := r.wazero.NewHostModuleBuilder(layout.HostModule)

	for _, hf := range r.imports {
		hf := hf
		params := make([]api.ValueType, hf.params)
		for i := range params {
			params[i] = api.ValueTypeI64
		}
		var results []api.ValueType
		if hf.results > 0 {
			results = []api.ValueType{api.ValueTypeI64}
		} else if hf.params > 0 {
			// async convention: trailing call handle is i32
			params[hf.params-1] = api.ValueTypeI32
		}
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				args := append([]uint64(nil), stack[:hf.params]...)
				ret, err := hf.fn(ctx, args)
				if err != nil {
					Logger().Error("host import failed",
						zap.String("function", hf.name), zap.Error(err))
					panic(err) // traps the calling plugin
				}
				if hf.results > 0 {
					stack[0] = ret
				}
			}), params, results).
			Export(hf.name)
	}

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			handle := bridge.Handle(uint32(stack[0]))
			payload, err := r.takeFromModule(ctx, mod, layout.PackedRef(stack[1]))
			if err != nil {
				panic(err)
			}
			if err := r.calls.Resolve(handle, payload); err != nil {
				panic(err)
			}
		}), []api.ValueType{api.ValueTypeI32, api.ValueTypeI64}, nil).
		Export(layout.HostResolveImport)

	builder.NewFunctionBuilder().
		WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
			r.cancelMu.Lock()
			r.cancelled[uint32(stack[0])] = struct{}{}
			r.cancelMu.Unlock()
		}), []api.ValueType{api.ValueTypeI32}, nil).
		Export(layout.CancelImport)

	if _, err := builder.Instantiate(ctx); err != nil {
		return errors.Wrap(errors.PhaseLoad, errors.KindInvalidInput, err, "instantiate host module")
	}
	return nil
}

// Call invokes an exported plugin function. It returns the first result,
// or zero for functions with none.
func (r *Runtime) Call(ctx context.Context, name string, args ...uint64) (uint64, error) {
	if r.mod == nil {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	fn := r.mod.ExportedFunction(name)
	if fn == nil {
		return 0, errors.New(errors.PhaseRuntime, errors.KindNotFound).
			Detail("plugin does not export %s", name).
			Build()
	}

	r.callMu.Lock()
	defer r.callMu.Unlock()
	return r.invoke(ctx, fn, name, args...)
}

func (r *Runtime) invoke(ctx context.Context, fn api.Function, name string, args ...uint64) (uint64, error) {
	res, err := fn.Call(ctx, args...)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseRuntime, errors.KindInvalidData, err, "call "+name)
	}
	if len(res) == 0 {
		return 0, nil
	}
	return res[0], nil
}

// ExportToGuest copies data into guest memory and returns a packed
// reference. Ownership of the allocation passes to the next callee.
// It takes the call lock; host-import handlers use ShareResult instead.
func (r *Runtime) ExportToGuest(ctx context.Context, data []byte) (layout.PackedRef, error) {
	if r.mod == nil {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	r.callMu.Lock()
	defer r.callMu.Unlock()
	return r.share(ctx, data)
}

// ShareResult copies data into guest memory without taking the call
// lock. It is for host-import handlers only: they run inside a guest
// call on the goroutine that already holds the lock.
func (r *Runtime) ShareResult(ctx context.Context, data []byte) (layout.PackedRef, error) {
	if r.mod == nil {
		return 0, errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	return r.share(ctx, data)
}

func (r *Runtime) share(ctx context.Context, data []byte) (layout.PackedRef, error) {
	if len(data) == 0 {
		return 0, nil
	}
	size := uint32(len(data))
	res, err := r.malloc.Call(ctx, uint64(size))
	if err != nil {
		return 0, errors.Wrap(errors.PhaseRuntime, errors.KindAllocation, err, "guest allocation")
	}
	offset := uint32(res[0])
	if offset == 0 {
		return 0, errors.AllocationFailed(errors.PhaseRuntime, size)
	}
	if !r.mod.Memory().Write(offset, data) {
		return 0, errors.InvalidData(errors.PhaseRuntime, nil, "guest memory write out of range")
	}
	return layout.Pack(offset, size), nil
}

// ImportFromGuest copies the referenced bytes out of guest memory and
// releases the guest allocation. It takes the call lock; host-import
// handlers use TakeArg instead.
func (r *Runtime) ImportFromGuest(ctx context.Context, ref layout.PackedRef) ([]byte, error) {
	if r.mod == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	r.callMu.Lock()
	defer r.callMu.Unlock()
	return r.takeFromModule(ctx, r.mod, ref)
}

// TakeArg copies the referenced bytes out of guest memory without
// taking the call lock. It is for host-import handlers only: they run
// inside a guest call on the goroutine that already holds the lock.
func (r *Runtime) TakeArg(ctx context.Context, ref layout.PackedRef) ([]byte, error) {
	if r.mod == nil {
		return nil, errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	return r.takeFromModule(ctx, r.mod, ref)
}

func (r *Runtime) takeFromModule(ctx context.Context, mod api.Module, ref layout.PackedRef) ([]byte, error) {
	if ref.IsZero() {
		return nil, nil
	}
	view, ok := mod.Memory().Read(ref.Offset(), ref.Length())
	if !ok {
		return nil, errors.InvalidData(errors.PhaseRuntime, nil, "guest memory read out of range")
	}
	out := append([]byte(nil), view...)
	free := mod.ExportedFunction(layout.FreeExport)
	if free != nil {
		if _, err := free.Call(ctx, uint64(ref.Offset()), uint64(ref.Length())); err != nil {
			return nil, errors.Wrap(errors.PhaseRuntime, errors.KindAllocation, err, "guest free")
		}
	}
	return out, nil
}

// ResolveGuest delivers an async import's result to the plugin. If the
// guest cancelled the call in the meantime the payload is discarded,
// matching the advisory cancellation contract. The call lock is held
// across the whole delivery, so the payload allocation and the resolve
// entry cannot interleave with another call into the plugin.
func (r *Runtime) ResolveGuest(ctx context.Context, handle bridge.Handle, payload []byte) error {
	if r.mod == nil {
		return errors.NotInitialized(errors.PhaseRuntime, "plugin module")
	}
	r.cancelMu.Lock()
	if _, gone := r.cancelled[uint32(handle)]; gone {
		delete(r.cancelled, uint32(handle))
		r.cancelMu.Unlock()
		Logger().Debug("discarding resolution for cancelled call",
			zap.Uint32("handle", uint32(handle)))
		return nil
	}
	r.cancelMu.Unlock()

	r.callMu.Lock()
	defer r.callMu.Unlock()
	ref, err := r.share(ctx, payload)
	if err != nil {
		return err
	}
	fn := r.mod.ExportedFunction(layout.GuestResolveExport)
	if fn == nil {
		return errors.New(errors.PhaseRuntime, errors.KindNotFound).
			Detail("plugin does not export %s", layout.GuestResolveExport).
			Build()
	}
	_, err = r.invoke(ctx, fn, layout.GuestResolveExport, uint64(uint32(handle)), uint64(ref))
	return err
}

// Close releases the runtime and any loaded module.
func (r *Runtime) Close(ctx context.Context) error {
	return r.wazero.Close(ctx)
}
