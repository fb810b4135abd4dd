package driver

import "testing"

func TestTextureUsageString(t *testing.T) {
	cases := []struct {
		u    TextureUsage
		want string
	}{
		{0, "NONE"},
		{TextureUsageSampleable, "SAMPLEABLE"},
		{TextureUsageColorAttachment | TextureUsageSampleable, "SAMPLEABLE|COLOR_ATTACHMENT"},
		{TextureUsageDepthAttachment, "DEPTH_ATTACHMENT"},
	}
	for _, c := range cases {
		if got := c.u.String(); got != c.want {
			t.Errorf("TextureUsage(%d).String() = %q, want %q", c.u, got, c.want)
		}
	}
}

func TestInvalidHandlesAreZero(t *testing.T) {
	if InvalidTextureHandle != 0 {
		t.Errorf("InvalidTextureHandle = %d, want 0", InvalidTextureHandle)
	}
	if InvalidRenderTargetHandle != 0 {
		t.Errorf("InvalidRenderTargetHandle = %d, want 0", InvalidRenderTargetHandle)
	}
}

func TestTargetBufferColorAllCoversFourSlots(t *testing.T) {
	want := TargetBufferColor0 | TargetBufferColor1 | TargetBufferColor2 | TargetBufferColor3
	if TargetBufferColorAll != want {
		t.Errorf("TargetBufferColorAll = %b, want %b", TargetBufferColorAll, want)
	}
	if TargetBufferColorAll&TargetBufferDepth != 0 {
		t.Error("TargetBufferColorAll must not include depth")
	}
}
