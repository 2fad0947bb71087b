package runtime

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tetratelabs/wazero/api"

	"github.com/sagudev/fp-bindgen/bridge"
	fperrors "github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/layout"
)

func TestRuntime_CallBeforeLoad(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Config{})
	defer r.Close(ctx)

	_, err := r.Call(ctx, "__fp_gen_anything")
	var fpErr *fperrors.Error
	if !errors.As(err, &fpErr) || fpErr.Kind != fperrors.KindNotInitialized {
		t.Errorf("expected not_initialized, got %v", err)
	}
}

func TestRuntime_MemoryOpsBeforeLoad(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Config{})
	defer r.Close(ctx)

	if _, err := r.ExportToGuest(ctx, []byte{1}); err == nil {
		t.Error("ExportToGuest must fail before a module is loaded")
	}
	if _, err := r.ImportFromGuest(ctx, 42); err == nil {
		t.Error("ImportFromGuest must fail before a module is loaded")
	}
}

func TestRuntime_LoadRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	r := New(ctx, Config{})
	defer r.Close(ctx)

	err := r.Load(ctx, []byte("not a wasm module"))
	if err == nil {
		t.Fatal("loading a non-wasm byte string must fail")
	}
	var fpErr *fperrors.Error
	if !errors.As(err, &fpErr) || fpErr.Phase != fperrors.PhaseLoad {
		t.Errorf("expected a load-phase error, got %v", err)
	}
}

func TestRuntime_BridgeModeFollowsConfig(t *testing.T) {
	ctx := context.Background()

	r := New(ctx, Config{})
	defer r.Close(ctx)
	h := r.Bridge().Mint(func([]byte) {})
	r.Bridge().Cancel(h)
	if err := r.Bridge().Resolve(h, nil); err != nil {
		t.Errorf("default mode must discard late resolutions: %v", err)
	}

	strict := New(ctx, Config{StrictCancellation: true})
	defer strict.Close(ctx)
	h = strict.Bridge().Mint(func([]byte) {})
	strict.Bridge().Cancel(h)
	if err := strict.Bridge().Resolve(h, nil); err == nil {
		t.Error("strict mode must surface late resolutions")
	}
}

// The fakes below stand in for a loaded wazero module so locking can be
// exercised without instantiating real wasm. Every entry into the fake
// guest, whether an exported call, an allocation or a free, bumps a
// gauge that trips when two entries overlap.

type entryGauge struct {
	inside  atomic.Int32
	overlap atomic.Bool
}

func (g *entryGauge) enter() {
	if g.inside.Add(1) > 1 {
		g.overlap.Store(true)
	}
	time.Sleep(200 * time.Microsecond)
	g.inside.Add(-1)
}

type fakeFunction struct {
	api.Function
	call func(ctx context.Context, params ...uint64) ([]uint64, error)
}

func (f *fakeFunction) Call(ctx context.Context, params ...uint64) ([]uint64, error) {
	return f.call(ctx, params...)
}

type fakeMemory struct {
	api.Memory
	buf [1 << 16]byte
}

func (m *fakeMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if int(offset)+int(byteCount) > len(m.buf) {
		return nil, false
	}
	return m.buf[offset : offset+byteCount], true
}

func (m *fakeMemory) Write(offset uint32, v []byte) bool {
	if int(offset)+len(v) > len(m.buf) {
		return false
	}
	copy(m.buf[offset:], v)
	return true
}

type fakeModule struct {
	api.Module
	mem     *fakeMemory
	exports map[string]api.Function
}

func (m *fakeModule) Memory() api.Memory                      { return m.mem }
func (m *fakeModule) ExportedFunction(name string) api.Function { return m.exports[name] }

// An async import resolution runs on its own goroutine, so its guest
// allocation and resolve entry race any concurrent host-initiated call.
// Both paths must hold the call lock for their whole time in the guest.
func TestRuntime_ResolveGuestSerializedWithCalls(t *testing.T) {
	ctx := context.Background()
	gauge := &entryGauge{}

	var next atomic.Uint32
	next.Store(8)
	malloc := &fakeFunction{call: func(_ context.Context, params ...uint64) ([]uint64, error) {
		gauge.enter()
		size := uint32(params[0])
		return []uint64{uint64(next.Add(size) - size)}, nil
	}}
	free := &fakeFunction{call: func(context.Context, ...uint64) ([]uint64, error) {
		gauge.enter()
		return nil, nil
	}}
	entered := &fakeFunction{call: func(context.Context, ...uint64) ([]uint64, error) {
		gauge.enter()
		return []uint64{0}, nil
	}}

	mod := &fakeModule{
		mem: &fakeMemory{},
		exports: map[string]api.Function{
			layout.AllocExport:        malloc,
			layout.FreeExport:         free,
			layout.GuestResolveExport: entered,
			"__fp_gen_work":           entered,
		},
	}
	r := &Runtime{
		mod:       mod,
		malloc:    malloc,
		free:      free,
		calls:     bridge.NewRegistry(),
		cancelled: make(map[uint32]struct{}),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		handle := bridge.Handle(uint32(i + 1))
		wg.Add(3)
		go func() {
			defer wg.Done()
			if _, err := r.Call(ctx, "__fp_gen_work"); err != nil {
				t.Errorf("Call failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := r.ResolveGuest(ctx, handle, []byte{1, 2, 3}); err != nil {
				t.Errorf("ResolveGuest failed: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := r.ExportToGuest(ctx, []byte{9}); err != nil {
				t.Errorf("ExportToGuest failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if gauge.overlap.Load() {
		t.Error("two goroutines were inside the plugin at once")
	}
}
