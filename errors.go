package tile3d

import "errors"

// Sentinel errors returned by manifest parsing and tileset construction.
// Per-tile fetch/decode/budget failures are never returned as errors;
// they surface only through the hook system (see hooks.go).
var (
	// ErrUnsupportedAsset is returned when asset.version is not one of
	// "0.0", "1.0", "1.1", or when extensionsRequired names an extension
	// outside the supported set.
	ErrUnsupportedAsset = errors.New("tile3d: unsupported asset version or required extension")

	// ErrInvalidManifest is returned when the manifest JSON is malformed
	// or missing a required field (asset.version, geometricError at root).
	ErrInvalidManifest = errors.New("tile3d: invalid manifest")

	// ErrInvalidOption is returned by Load when an Option produces an
	// inconsistent configuration (e.g. negative CacheBytes).
	ErrInvalidOption = errors.New("tile3d: invalid option")

	// ErrTilesetClosed is returned by Update once Close has been called
	// (QueryHeight, which returns no error, reports no hit instead).
	ErrTilesetClosed = errors.New("tile3d: tileset is closed")

	// ErrUnknownPass is returned by Update for a Pass value outside the
	// enumerated set.
	ErrUnknownPass = errors.New("tile3d: unknown pass")
)
