package rendergpu

import (
	"fmt"
	"testing"

	tile3d "github.com/tile3d/streamer"
)

func TestAdapterInfo_String(t *testing.T) {
	info := &AdapterInfo{Name: "Test GPU"}
	want := fmt.Sprintf("%s (%s, %s)", info.Name, info.DeviceType, info.Backend)
	if got := info.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

type sizedContent struct{ n int }

func (s sizedContent) Len() int { return s.n }

func TestContentBytes_NilData(t *testing.T) {
	if got := contentBytes(tile3d.SelectedTile{}); got != 0 {
		t.Errorf("contentBytes(nil Data) = %d, want 0", got)
	}
}

func TestContentBytes_SizedData(t *testing.T) {
	tile := tile3d.SelectedTile{Data: sizedContent{n: 42}}
	if got := contentBytes(tile); got != 42 {
		t.Errorf("contentBytes = %d, want 42", got)
	}
}

func TestContentBytes_UnsizedDataCountsAsZero(t *testing.T) {
	tile := tile3d.SelectedTile{Data: "opaque blob"}
	if got := contentBytes(tile); got != 0 {
		t.Errorf("contentBytes = %d, want 0 for a type without Len()", got)
	}
}

func TestRenderer_RenderSkipsWorkWhenNotVerbose(t *testing.T) {
	r := &Renderer{info: &AdapterInfo{Name: "noop"}, verbose: false}
	// Render must not panic even with a nil adapterID when verbose is off.
	r.Render([]tile3d.SelectedTile{{}})
}
