package config

import (
	"os"
	"path/filepath"
	"testing"

	tile3d "github.com/tile3d/streamer"
)

func writeTempTOML(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tile3d.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	path := writeTempTOML(t, `maximum_sse = 4.0`+"\n")

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.MaximumSSE != 4.0 {
		t.Errorf("MaximumSSE = %v, want 4.0", opts.MaximumSSE)
	}
	def := tile3d.DefaultOptions()
	if opts.CacheBytes != def.CacheBytes {
		t.Errorf("CacheBytes = %v, want default %v", opts.CacheBytes, def.CacheBytes)
	}
	if opts.Workers != def.Workers {
		t.Errorf("Workers = %v, want default %v", opts.Workers, def.Workers)
	}
}

func TestLoad_FullOverride(t *testing.T) {
	path := writeTempTOML(t, `
maximum_sse = 8.0
cache_bytes = 1048576
skip_lod = true
skip_levels = 2
workers = 8
`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if opts.MaximumSSE != 8.0 || opts.CacheBytes != 1048576 || !opts.SkipLOD || opts.SkipLevels != 2 || opts.Workers != 8 {
		t.Errorf("Load produced unexpected Options: %+v", opts)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

func TestLoad_MalformedTOMLReturnsError(t *testing.T) {
	path := writeTempTOML(t, `this is not valid = = toml`)
	if _, err := Load(path); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}
