package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // protocol registration
	PhaseGraph    Phase = "graph"    // type graph construction
	PhaseLayout   Phase = "layout"   // encoding plan assignment
	PhaseGenerate Phase = "generate" // target code generation
	PhaseEncode   Phase = "encode"   // value to wire bytes
	PhaseDecode   Phase = "decode"   // wire bytes to value
	PhaseLoad     Phase = "load"     // plugin module loading
	PhaseRuntime  Phase = "runtime"  // cross-boundary calls
)

// Kind categorizes the error
type Kind string

const (
	KindUnsupported     Kind = "unsupported_shape"
	KindUnresolved      Kind = "unresolved_reference"
	KindNameCollision   Kind = "name_collision"
	KindFlagDisabled    Kind = "flag_disabled"
	KindNoTargetMapping Kind = "no_target_mapping"
	KindTruncated       Kind = "truncated"
	KindInvalidData     Kind = "invalid_data"
	KindInvalidUTF8     Kind = "invalid_utf8"
	KindInvalidVariant  Kind = "invalid_variant"
	KindFieldMissing    Kind = "field_missing"
	KindOverflow        Kind = "overflow"
	KindAllocation      Kind = "allocation"
	KindVersionMismatch Kind = "version_mismatch"
	KindHandleViolation Kind = "handle_violation"
	KindNotFound        Kind = "not_found"
	KindNotInitialized  Kind = "not_initialized"
	KindInvalidInput    Kind = "invalid_input"
)

// Error is the structured error type used throughout the generator
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Decl   string
	Target string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Decl != "" {
		b.WriteString(" in ")
		b.WriteString(e.Decl)
	}

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Target != "" {
		b.WriteString(" (target ")
		b.WriteString(e.Target)
		b.WriteByte(')')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Decl names the offending declaration
func (b *Builder) Decl(name string) *Builder {
	b.err.Decl = name
	return b
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Target sets the output target name
func (b *Builder) Target(t string) *Builder {
	b.err.Target = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Unresolved creates an unresolved type reference error
func Unresolved(decl string, path []string, ref string) *Error {
	return &Error{
		Phase:  PhaseGraph,
		Kind:   KindUnresolved,
		Decl:   decl,
		Path:   path,
		Detail: fmt.Sprintf("no declaration named %q", ref),
	}
}

// UnsupportedShape creates an unsupported type shape error
func UnsupportedShape(phase Phase, decl string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Decl:   decl,
		Detail: detail,
	}
}

// NameCollision reports two structurally different declarations sharing a name
func NameCollision(name string) *Error {
	return &Error{
		Phase:  PhaseGraph,
		Kind:   KindNameCollision,
		Decl:   name,
		Detail: "two structurally different declarations share this generated name",
	}
}

// FlagDisabled reports a compatibility entry referenced without its flag
func FlagDisabled(decl string, flag string) *Error {
	return &Error{
		Phase:  PhaseGraph,
		Kind:   KindFlagDisabled,
		Decl:   decl,
		Detail: fmt.Sprintf("type matches compatibility entry gated by disabled flag %q", flag),
	}
}

// NoTargetMapping reports a node with no mapping for an output target
func NoTargetMapping(decl string, target string) *Error {
	return &Error{
		Phase:  PhaseGenerate,
		Kind:   KindNoTargetMapping,
		Decl:   decl,
		Target: target,
		Detail: "encoding plan has no defined mapping for this target",
	}
}

// Truncated creates a truncated buffer error
func Truncated(phase Phase, path []string, want, have int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Path:   path,
		Detail: fmt.Sprintf("need %d more bytes, have %d", want, have),
	}
}

// InvalidUTF8 creates an invalid UTF-8 error
func InvalidUTF8(phase Phase, path []string, data []byte) *Error {
	preview := data
	if len(preview) > 32 {
		preview = preview[:32]
	}
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidUTF8,
		Path:   path,
		Detail: fmt.Sprintf("invalid UTF-8 sequence: %x", preview),
	}
}

// AllocationFailed creates an allocation failure error
func AllocationFailed(phase Phase, size uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindAllocation,
		Detail: fmt.Sprintf("failed to allocate %d bytes", size),
	}
}

// FieldMissing creates a missing field error
func FieldMissing(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldMissing,
		Path:   path,
		Detail: fmt.Sprintf("required field %q not found", fieldName),
	}
}

// InvalidVariant creates an unknown variant error for enums
func InvalidVariant(phase Phase, path []string, variant string, enumType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidVariant,
		Path:   path,
		Decl:   enumType,
		Detail: fmt.Sprintf("unknown variant %q", variant),
		Value:  variant,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// VersionMismatch reports an ABI version disagreement at load time
func VersionMismatch(want, got uint32) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindVersionMismatch,
		Detail: fmt.Sprintf("host ABI version %d, plugin presents %d", want, got),
	}
}

// HandleViolation reports resolving an unknown or already-resolved handle
func HandleViolation(handle uint32, detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindHandleViolation,
		Detail: fmt.Sprintf("handle %d: %s", handle, detail),
		Value:  handle,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotInitialized creates a not initialized error
func NotInitialized(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", what),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
