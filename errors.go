package framegraph

import "errors"

// Sentinel errors returned by Builder and FrameGraph methods. All of them
// are contract violations on the caller's part: the graph never retries
// and the offending mutation never takes effect.
var (
	// ErrInvalidHandle is returned when a handle's version does not match
	// the current version of the virtual resource it addresses, or when it
	// addresses a slot that was never allocated.
	ErrInvalidHandle = errors.New("framegraph: invalid handle")

	// ErrIncompatibleUsage is returned when a read or write requests a
	// usage flag that the resource (in particular an imported one) does
	// not support.
	ErrIncompatibleUsage = errors.New("framegraph: incompatible usage")

	// ErrRenderTargetMisconfigured is returned by UseAsRenderTarget when the
	// descriptor has zero attachments, or when an attachment's own texture
	// descriptor declares a non-zero sample count that conflicts with the
	// render target's declared Samples. There is only one virtual resource
	// kind in this module (Texture), so the "incompatible attachment kinds"
	// case from the distilled spec has no counterpart here: every
	// attachment is a texture, and nothing else can be bound as one.
	ErrRenderTargetMisconfigured = errors.New("framegraph: render target misconfigured")

	// ErrDoubleCompile is returned by Compile when called more than once
	// on the same frame graph.
	ErrDoubleCompile = errors.New("framegraph: compile called more than once")

	// ErrExecuteBeforeCompile is returned by Execute when Compile has
	// not yet run.
	ErrExecuteBeforeCompile = errors.New("framegraph: execute called before compile")
)
