// Package rendergpu provides a reference tile3d.Renderer that reports the
// selected GPU adapter and logs the per-pass selected-tile snapshot it
// receives. It exists to demonstrate the Renderer contract wired to a real
// graphics stack without the core engine depending on any rendering
// library; an embedder building an actual renderer replaces it entirely.
package rendergpu

import (
	"fmt"
	"log"

	"github.com/gogpu/wgpu/core"
	"github.com/gogpu/wgpu/types"

	tile3d "github.com/tile3d/streamer"
)

// AdapterInfo mirrors the subset of a wgpu adapter's identity that is
// useful to log or surface in diagnostics.
type AdapterInfo struct {
	Name       string
	Vendor     string
	DeviceType types.DeviceType
	Backend    types.Backend
	Driver     string
}

// String returns a human-readable description of the GPU.
func (a *AdapterInfo) String() string {
	return fmt.Sprintf("%s (%s, %s)", a.Name, a.DeviceType, a.Backend)
}

// getAdapterInfo retrieves identity information for adapterID.
func getAdapterInfo(adapterID core.AdapterID) (*AdapterInfo, error) {
	info, err := core.GetAdapterInfo(adapterID)
	if err != nil {
		return nil, fmt.Errorf("rendergpu: failed to get adapter info: %w", err)
	}
	return &AdapterInfo{
		Name:       info.Name,
		Vendor:     info.Vendor,
		DeviceType: info.DeviceType,
		Backend:    info.Backend,
		Driver:     info.Driver,
	}, nil
}

// Renderer is a reference tile3d.Renderer. It holds no GPU resources of
// its own beyond the adapter handle used to report device info; Render
// just logs what it was handed, standing in for a real draw call submission.
type Renderer struct {
	adapterID core.AdapterID
	info      *AdapterInfo
	verbose   bool
}

// New selects a GPU adapter via the platform's default instance and
// returns a Renderer bound to it. The caller decides whether Render logs
// every snapshot (verbose) or stays silent until told otherwise.
func New(verbose bool) (*Renderer, error) {
	instanceID, err := core.CreateInstance(&types.InstanceDescriptor{})
	if err != nil {
		return nil, fmt.Errorf("rendergpu: failed to create instance: %w", err)
	}
	adapterID, err := core.RequestAdapter(instanceID, &types.RequestAdapterOptions{
		PowerPreference: types.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, fmt.Errorf("rendergpu: failed to request adapter: %w", err)
	}

	info, err := getAdapterInfo(adapterID)
	if err != nil {
		return nil, err
	}
	log.Printf("rendergpu: selected GPU: %s", info.String())
	if info.Driver != "" {
		log.Printf("rendergpu: driver: %s", info.Driver)
	}

	return &Renderer{adapterID: adapterID, info: info, verbose: verbose}, nil
}

// AdapterInfo returns the identity of the adapter this Renderer was bound
// to, for diagnostics or a status overlay.
func (r *Renderer) AdapterInfo() *AdapterInfo { return r.info }

// Render implements tile3d.Renderer. It does not issue draw calls; a real
// renderer would walk snapshot and submit geometry per SelectedTile.Content.
func (r *Renderer) Render(snapshot []tile3d.SelectedTile) {
	if !r.verbose {
		return
	}
	var bytes int64
	for _, t := range snapshot {
		bytes += contentBytes(t)
	}
	log.Printf("rendergpu: %s: %d tiles selected, %d content bytes resident", r.info.String(), len(snapshot), bytes)
}

func contentBytes(t tile3d.SelectedTile) int64 {
	if t.Data == nil {
		return 0
	}
	if sized, ok := t.Data.(interface{ Len() int }); ok {
		return int64(sized.Len())
	}
	return 0
}
