package registry

import (
	"errors"
	"testing"

	fperrors "github.com/sagudev/fp-bindgen/errors"
	"github.com/sagudev/fp-bindgen/types"
)

func TestResolve_EnabledFlag(t *testing.T) {
	r := New(FlagTime)

	e, ok, err := r.Resolve("Timestamp")
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if !ok {
		t.Fatal("Timestamp should resolve with time flag enabled")
	}
	if e.Flag != FlagTime {
		t.Errorf("Flag = %v, want %v", e.Flag, FlagTime)
	}
	m, ok := e.Targets["gohost"]
	if !ok || m.TypeName != "time.Time" {
		t.Errorf("gohost mapping = %+v", m)
	}
}

func TestResolve_DisabledFlag(t *testing.T) {
	r := New(FlagBytes)

	_, ok, err := r.Resolve("Timestamp")
	if err == nil {
		t.Fatal("known entry with disabled flag must be a configuration error")
	}
	if ok {
		t.Error("ok should be false on error")
	}
	var fpErr *fperrors.Error
	if !errors.As(err, &fpErr) || fpErr.Kind != fperrors.KindFlagDisabled {
		t.Errorf("expected flag_disabled, got %v", err)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := New(FlagBytes, FlagTime, FlagHTTP, FlagValue)

	_, ok, err := r.Resolve("Point")
	if err != nil {
		t.Fatalf("unknown name should not error: %v", err)
	}
	if ok {
		t.Error("unknown name should not resolve")
	}
}

func TestFromFeatures(t *testing.T) {
	r, err := FromFeatures([]string{"bytes", "http"})
	if err != nil {
		t.Fatalf("FromFeatures failed: %v", err)
	}
	if !r.Enabled(FlagBytes) || !r.Enabled(FlagHTTP) || r.Enabled(FlagTime) {
		t.Error("enabled flags do not match features")
	}

	if _, err := FromFeatures([]string{"bogus"}); err == nil {
		t.Error("unknown feature name should fail")
	}
}

func TestRegister_Provider(t *testing.T) {
	r := New()
	custom := Entry{
		Ident: types.Ident("UUID"),
		Flag:  Flag("uuid"),
		Targets: map[string]TargetMapping{
			"gohost": {TypeName: "string", EncodeFn: "wire.WriteString", DecodeFn: "wire.ReadString"},
		},
	}
	r.Register(custom)

	e, ok, err := r.Resolve("UUID")
	if err != nil || !ok {
		t.Fatalf("provider entry should resolve, ok=%v err=%v", ok, err)
	}
	if _, hasPlugin := e.Targets["goplugin"]; hasPlugin {
		t.Error("custom entry should only map gohost")
	}
}

func TestEntries_Sorted(t *testing.T) {
	r := New(FlagBytes, FlagTime, FlagHTTP, FlagValue)
	entries := r.Entries()
	if len(entries) != 5 {
		t.Fatalf("expected 5 builtin entries, got %d", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Ident.String() >= entries[i].Ident.String() {
			t.Errorf("entries not sorted: %s before %s", entries[i-1].Ident, entries[i].Ident)
		}
	}
}

func TestHTTPEntriesShareFlag(t *testing.T) {
	r := New(FlagHTTP)
	for _, name := range []string{"HTTPRequest", "HTTPResponse"} {
		if _, ok, err := r.Resolve(name); err != nil || !ok {
			t.Errorf("%s should resolve under http flag, ok=%v err=%v", name, ok, err)
		}
	}
}
