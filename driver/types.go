package driver

import "github.com/gogpu/gputypes"

// TextureHandle is an opaque handle to a concrete GPU texture, returned by
// [ResourceAllocator.CreateTexture] and released with
// [ResourceAllocator.DestroyTexture].
type TextureHandle uint32

// RenderTargetHandle is an opaque handle to a concrete GPU render target,
// returned by [ResourceAllocator.CreateRenderTarget] and released with
// [ResourceAllocator.DestroyRenderTarget].
type RenderTargetHandle uint32

// InvalidTextureHandle is the zero value, representing no concrete texture.
const InvalidTextureHandle TextureHandle = 0

// InvalidRenderTargetHandle is the zero value, representing no concrete
// render target.
const InvalidRenderTargetHandle RenderTargetHandle = 0

// SamplerKind selects the sampling behavior of a texture view.
type SamplerKind uint32

// Sampler kinds.
const (
	// Sampler2D samples a regular 2D texture.
	Sampler2D SamplerKind = iota
	// SamplerCube samples a cubemap texture.
	SamplerCube
	// Sampler2DArray samples a layered 2D texture array.
	Sampler2DArray
	// Sampler3D samples a volumetric 3D texture.
	Sampler3D
)

// TextureDescriptor describes parameters for creating a texture.
type TextureDescriptor struct {
	// Width is the texture width in pixels.
	Width uint32

	// Height is the texture height in pixels.
	Height uint32

	// Depth is the texture depth for 3D textures, or array layer count.
	// Use 1 for regular 2D textures.
	Depth uint32

	// Levels is the number of mipmap levels. Use 1 for no mipmaps.
	Levels uint32

	// SampleCount is the number of samples for multisampling.
	// Use 1 for no multisampling.
	SampleCount uint8

	// Format is the texture pixel format.
	Format gputypes.TextureFormat

	// Sampler selects how the texture is addressed by shaders.
	Sampler SamplerKind
}

// SubResourceDescriptor addresses a single mip level / array layer of a
// parent texture, as produced by the framegraph package's
// Builder.CreateSubresource.
type SubResourceDescriptor struct {
	// Level is the mip level this subresource refers to.
	Level uint8

	// Layer is the array layer (or depth slice) this subresource refers to.
	Layer uint16
}

// TextureUsage is a bitmask describing how a texture is used by the passes
// that reference it. The frame graph ORs together the usage of every valid
// edge touching a resource to compute its effective usage (see
// VirtualResource.resolveUsage in the compile pipeline).
type TextureUsage uint8

// Texture usage flags.
const (
	// TextureUsageSampleable allows the texture to be bound and sampled.
	TextureUsageSampleable TextureUsage = 1 << iota

	// TextureUsageColorAttachment allows the texture to be used as a color
	// render target attachment.
	TextureUsageColorAttachment

	// TextureUsageDepthAttachment allows the texture to be used as a depth
	// render target attachment.
	TextureUsageDepthAttachment

	// TextureUsageStencilAttachment allows the texture to be used as a
	// stencil render target attachment.
	TextureUsageStencilAttachment

	// TextureUsageUploadable allows CPU data to be uploaded into the
	// texture.
	TextureUsageUploadable
)

// String renders the usage bitmask as a human-readable, pipe-separated list
// for diagnostics (e.g. "SAMPLEABLE|COLOR_ATTACHMENT").
func (u TextureUsage) String() string {
	if u == 0 {
		return "NONE"
	}
	names := []struct {
		bit  TextureUsage
		name string
	}{
		{TextureUsageSampleable, "SAMPLEABLE"},
		{TextureUsageColorAttachment, "COLOR_ATTACHMENT"},
		{TextureUsageDepthAttachment, "DEPTH_ATTACHMENT"},
		{TextureUsageStencilAttachment, "STENCIL_ATTACHMENT"},
		{TextureUsageUploadable, "UPLOADABLE"},
	}
	s := ""
	for _, n := range names {
		if u&n.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += n.name
		}
	}
	return s
}

// TargetBufferFlags is a bitmask over the six attachment slots of a render
// target: four color attachments, depth and stencil. It is used both to
// mark which attachments are present (the present mask passed to
// [ResourceAllocator.CreateRenderTarget]) and to carry per-attachment clear / discard state (RenderPassParams).
type TargetBufferFlags uint8

// Attachment slot flags, in the fixed slot order the compile pipeline
// iterates: color0..color3, depth, stencil.
const (
	TargetBufferColor0 TargetBufferFlags = 1 << iota
	TargetBufferColor1
	TargetBufferColor2
	TargetBufferColor3
	TargetBufferDepth
	TargetBufferStencil

	// TargetBufferColorAll covers all four color attachment slots.
	TargetBufferColorAll = TargetBufferColor0 | TargetBufferColor1 | TargetBufferColor2 | TargetBufferColor3
	// TargetBufferNone marks no attachment slots.
	TargetBufferNone TargetBufferFlags = 0
)

// ClearColor holds an RGBA clear value for a color attachment.
type ClearColor struct {
	R, G, B, A float32
}

// Viewport describes the pixel rectangle a render pass draws into.
type Viewport struct {
	Left, Bottom  int32
	Width, Height uint32
}

// RenderPassParams is the data the frame graph hands the backend for one
// declared render target: the resolved viewport and the clear/discard
// flags computed by the compile pipeline's discard inference (see
// resolveRenderTarget).
type RenderPassParams struct {
	// Clear marks attachments that should be cleared to ClearColor at the
	// start of the pass.
	Clear TargetBufferFlags

	// DiscardStart marks attachments whose contents are undefined when the
	// pass begins (no load required).
	DiscardStart TargetBufferFlags

	// DiscardEnd marks attachments whose contents may be discarded once the
	// pass ends (no store required).
	DiscardEnd TargetBufferFlags

	// ClearColor is applied to every color attachment marked in Clear.
	ClearColor ClearColor

	// Viewport is the resolved draw rectangle, in pixels.
	Viewport Viewport
}

// TargetBufferInfo identifies one concrete attachment passed to
// [ResourceAllocator.CreateRenderTarget]: which texture, and which mip
// level / array layer of it.
type TargetBufferInfo struct {
	Handle TextureHandle
	Level  uint8
	Layer  uint16
}

