package tile3d

import (
	"encoding/json"
	"fmt"
	"time"
)

// manifestAsset is the required "asset" object of a tileset.json.
type manifestAsset struct {
	Version string `json:"version"`
}

// manifestProbe detects which shape of metadata a tileset.json carries
// before fully unmarshaling it, mirroring the "probe top-level keys to
// detect format" idiom: 1.0 tilesets nest 3DTILES_metadata under
// extensions, 1.1 tilesets inline metadata/schema/schemaUri at the top
// level. json.RawMessage defers parsing each candidate until the probe
// says which one is present.
type manifestProbe struct {
	Asset               manifestAsset              `json:"asset"`
	GeometricError      *float64                   `json:"geometricError"`
	Root                json.RawMessage            `json:"root"`
	ExtensionsUsed      []string                   `json:"extensionsUsed"`
	ExtensionsRequired  []string                   `json:"extensionsRequired"`
	Extensions          json.RawMessage            `json:"extensions"`   // 1.0 shape
	Metadata            json.RawMessage            `json:"metadata"`     // 1.1 shape
	Schema              json.RawMessage            `json:"schema"`       // 1.1 shape
	SchemaURI           string                     `json:"schemaUri"`    // 1.1 shape
}

// Metadata is the 3DTILES_metadata payload, decoded from whichever of
// the two manifest shapes above carried it. Both resolve into this one
// value so the rest of the package never branches on manifest version.
type Metadata struct {
	SchemaURI string
	Schema    json.RawMessage
	Entity    json.RawMessage
}

// extensions10 is the subset of the 1.0 "extensions" object this parser
// understands.
type extensions10 struct {
	Metadata *struct {
		SchemaURI string          `json:"schemaUri"`
		Schema    json.RawMessage `json:"schema"`
		Entity    json.RawMessage `json:"entity"`
	} `json:"3DTILES_metadata"`
}

// jsonContent mirrors a manifest "content" object. Type is handed to the
// ContentLoader as declared; when the manifest omits the optional "type"
// field, the loader receives an empty string. BoundingVolume and Expire
// are the content object's own (optional) tighter bound and expiry,
// distinct from the enclosing tile's boundingVolume/viewerRequestVolume.
type jsonContent struct {
	URI            string              `json:"uri"`
	Type           string              `json:"type"`
	BoundingVolume *jsonBoundingVolume `json:"boundingVolume"`
	Expire         *jsonExpire         `json:"expire"`
}

// jsonExpire mirrors a manifest "content.expire" object. Date is an
// absolute ISO 8601 instant; Duration (seconds from the moment the
// content is fetched) is the alternative form, applied in
// applyFetchResult rather than here since it needs a request-time
// reference this parser doesn't have.
type jsonExpire struct {
	Date     string  `json:"date"`
	Duration float64 `json:"duration"`
}

// jsonBoundingVolume mirrors a manifest "boundingVolume" object; exactly
// one of the four fields is populated per §3.
type jsonBoundingVolume struct {
	Sphere []float64 `json:"sphere"`
	Box    []float64 `json:"box"`
	Region []float64 `json:"region"`
	S2Cell *struct {
		Token               string  `json:"token"`
		MinimumHeight       float64 `json:"minimumHeight"`
		MaximumHeight       float64 `json:"maximumHeight"`
	} `json:"extensions,omitempty"`
}

// jsonTile mirrors a manifest tile node. Content is a RawMessage because
// it may be a single object or, under 3DTILES_multiple_contents, an
// object carrying a "content" array.
type jsonTile struct {
	BoundingVolume      jsonBoundingVolume  `json:"boundingVolume"`
	ViewerRequestVolume *jsonBoundingVolume `json:"viewerRequestVolume"`
	GeometricError      float64             `json:"geometricError"`
	Refine              string              `json:"refine"`
	Transform           []float64           `json:"transform"`
	Content             json.RawMessage     `json:"content"`
	Children            []jsonTile          `json:"children"`
	Extensions          json.RawMessage     `json:"extensions"`
}

// jsonImplicitTiling is the 3DTILES_implicit_tiling extension object that
// may be present on a jsonTile's extensions, marking it as the root of an
// implicitly-tiled subtree rather than an explicit child list.
type jsonImplicitTiling struct {
	SubdivisionScheme string `json:"subdivisionScheme"`
	Subtrees          struct {
		URI string `json:"uri"`
	} `json:"subtrees"`
}

type jsonTileExtensions struct {
	ImplicitTiling *jsonImplicitTiling `json:"3DTILES_implicit_tiling"`
}

// parseImplicitTiling reports whether raw carries a 3DTILES_implicit_tiling
// extension and, if so, the subtree URI template it names.
func parseImplicitTiling(raw json.RawMessage) (template string, ok bool, err error) {
	if len(raw) == 0 {
		return "", false, nil
	}
	var ext jsonTileExtensions
	if err := json.Unmarshal(raw, &ext); err != nil {
		return "", false, fmt.Errorf("%w: extensions: %v", ErrInvalidManifest, err)
	}
	if ext.ImplicitTiling == nil {
		return "", false, nil
	}
	return ext.ImplicitTiling.Subtrees.URI, true, nil
}

type jsonMultipleContents struct {
	Content []jsonContent `json:"content"`
}

// parseManifest validates the top-level envelope and returns the probed
// shape, ready for buildArena (load.go) to walk.
func parseManifest(data []byte) (manifestProbe, error) {
	var probe manifestProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return manifestProbe{}, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}
	switch probe.Asset.Version {
	case "0.0", "1.0", "1.1":
	case "":
		return manifestProbe{}, fmt.Errorf("%w: missing asset.version", ErrInvalidManifest)
	default:
		return manifestProbe{}, fmt.Errorf("%w: unsupported asset.version %q", ErrUnsupportedAsset, probe.Asset.Version)
	}
	if probe.GeometricError == nil {
		return manifestProbe{}, fmt.Errorf("%w: missing geometricError", ErrInvalidManifest)
	}
	if probe.Root == nil {
		return manifestProbe{}, fmt.Errorf("%w: missing root tile", ErrInvalidManifest)
	}
	for _, ext := range probe.ExtensionsRequired {
		if !knownExtension(ext) {
			return manifestProbe{}, fmt.Errorf("%w: unsupported required extension %q", ErrUnsupportedAsset, ext)
		}
	}
	return probe, nil
}

func knownExtension(name string) bool {
	switch name {
	case "3DTILES_metadata", "3DTILES_implicit_tiling", "3DTILES_multiple_contents",
		"3DTILES_content_gltf", "3DTILES_bounding_volume_S2", "MAXAR_content_geojson":
		return true
	default:
		return false
	}
}

// metadata extracts Metadata from whichever manifest shape is present,
// returning the zero value if neither is.
func (p manifestProbe) metadata() (Metadata, error) {
	if p.Metadata != nil || p.Schema != nil || p.SchemaURI != "" {
		return Metadata{SchemaURI: p.SchemaURI, Schema: p.Schema, Entity: p.Metadata}, nil
	}
	if p.Extensions == nil {
		return Metadata{}, nil
	}
	var ext extensions10
	if err := json.Unmarshal(p.Extensions, &ext); err != nil {
		return Metadata{}, fmt.Errorf("%w: extensions: %v", ErrInvalidManifest, err)
	}
	if ext.Metadata == nil {
		return Metadata{}, nil
	}
	return Metadata{
		SchemaURI: ext.Metadata.SchemaURI,
		Schema:    ext.Metadata.Schema,
		Entity:    ext.Metadata.Entity,
	}, nil
}

func parseRefine(s string) Refine {
	if s == "ADD" {
		return RefineAdd
	}
	return RefineReplace
}

// parseBoundingVolume converts one manifest boundingVolume object into
// the matching BoundingVolume implementation. Exactly one field of jb is
// expected to be populated, per §3.
func parseBoundingVolume(jb jsonBoundingVolume) (BoundingVolume, error) {
	switch {
	case len(jb.Sphere) == 4:
		return Sphere{
			Center: V3(jb.Sphere[0], jb.Sphere[1], jb.Sphere[2]),
			Radius: jb.Sphere[3],
		}, nil
	case len(jb.Box) == 12:
		return OrientedBox{
			Center: V3(jb.Box[0], jb.Box[1], jb.Box[2]),
			XAxis:  V3(jb.Box[3], jb.Box[4], jb.Box[5]),
			YAxis:  V3(jb.Box[6], jb.Box[7], jb.Box[8]),
			ZAxis:  V3(jb.Box[9], jb.Box[10], jb.Box[11]),
		}, nil
	case len(jb.Region) == 6:
		return Region{
			West: jb.Region[0], South: jb.Region[1],
			East: jb.Region[2], North: jb.Region[3],
			MinimumHeight: jb.Region[4], MaximumHeight: jb.Region[5],
		}, nil
	case jb.S2Cell != nil:
		center, radius := approximateS2Cell(jb.S2Cell.Token, jb.S2Cell.MaximumHeight)
		return S2Cell{
			Token:         jb.S2Cell.Token,
			MinimumHeight: jb.S2Cell.MinimumHeight,
			MaximumHeight: jb.S2Cell.MaximumHeight,
			CenterApprox:  center,
			RadiusApprox:  radius,
		}, nil
	default:
		return nil, fmt.Errorf("%w: boundingVolume has no recognized shape", ErrInvalidManifest)
	}
}

// approximateS2Cell derives a conservative enclosing sphere for an S2
// cell token without linking an S2 geometry library: the cell's face
// (its first hex digit) picks one of the six cube-face directions as the
// sphere center direction, and the digit count below the minimum token
// length approximates cell size, finer levels giving a tighter radius.
// This is deliberately coarse — exact S2 containment is a ContentLoader
// concern, not the core's.
func approximateS2Cell(token string, maxHeight float64) (Vec3, float64) {
	faceDirs := [6]Vec3{
		V3(1, 0, 0), V3(-1, 0, 0),
		V3(0, 1, 0), V3(0, -1, 0),
		V3(0, 0, 1), V3(0, 0, -1),
	}
	face := 0
	if len(token) > 0 {
		if v, err := parseHexDigit(token[0]); err == nil {
			face = v % 6
		}
	}
	earthRadius := 6371000.0
	dir := faceDirs[face].Normalize()
	center := dir.Mul(earthRadius + maxHeight)

	level := len(token)
	radius := earthRadius
	for i := 0; i < level; i++ {
		radius /= 2
	}
	if radius < 1 {
		radius = 1
	}
	return center, radius
}

func parseHexDigit(b byte) (int, error) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), nil
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10, nil
	case b >= 'A' && b <= 'F':
		return int(b-'A') + 10, nil
	default:
		return 0, fmt.Errorf("not a hex digit: %q", b)
	}
}

// contentExtras carries the parts of a single content object that live
// outside the Content struct's own fields: its own tighter bounding
// volume (still in local tile space; the caller transforms it) and
// absolute expiry instant, both optional.
type contentExtras struct {
	BoundingVolume *BoundingVolume
	ExpireAt       time.Time
	ExpireDuration time.Duration
}

// parseContent interprets a tile's raw "content" field, which may be a
// single content object or, under 3DTILES_multiple_contents, an object
// carrying a "content" array. 3DTILES_multiple_contents items share the
// enclosing tile's bounding volume and expiry; per-item overrides are a
// Non-goal since Content.Items has no per-item tileData row to carry them.
func parseContent(raw json.RawMessage) (Content, contentExtras, error) {
	if len(raw) == 0 {
		return Content{Kind: ContentNone}, contentExtras{}, nil
	}
	var multi jsonMultipleContents
	if err := json.Unmarshal(raw, &multi); err == nil && len(multi.Content) > 0 {
		items := make([]Content, len(multi.Content))
		for i, c := range multi.Content {
			items[i] = Content{Kind: ContentSingle, URI: c.URI, Type: c.Type}
		}
		return Content{Kind: ContentMultiple, Items: items}, contentExtras{}, nil
	}
	var single jsonContent
	if err := json.Unmarshal(raw, &single); err != nil {
		return Content{}, contentExtras{}, fmt.Errorf("%w: content: %v", ErrInvalidManifest, err)
	}
	if single.URI == "" {
		return Content{Kind: ContentNone}, contentExtras{}, nil
	}

	var extras contentExtras
	if single.BoundingVolume != nil {
		bv, err := parseBoundingVolume(*single.BoundingVolume)
		if err != nil {
			return Content{}, contentExtras{}, err
		}
		extras.BoundingVolume = &bv
	}
	if single.Expire != nil {
		switch {
		case single.Expire.Date != "":
			t, err := time.Parse(time.RFC3339, single.Expire.Date)
			if err != nil {
				return Content{}, contentExtras{}, fmt.Errorf("%w: content.expire.date: %v", ErrInvalidManifest, err)
			}
			extras.ExpireAt = t
		case single.Expire.Duration > 0:
			extras.ExpireDuration = time.Duration(single.Expire.Duration * float64(time.Second))
		}
	}

	return Content{Kind: ContentSingle, URI: single.URI, Type: single.Type}, extras, nil
}

// parseTransform converts a manifest "transform" array — 16 numbers in
// glTF's column-major order — into this package's row-major Matrix4.
// A missing or malformed transform is identity, per §3.
func parseTransform(arr []float64) Matrix4 {
	if len(arr) != 16 {
		return Identity4()
	}
	var m Matrix4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			m[row*4+col] = arr[col*4+row]
		}
	}
	return m
}
