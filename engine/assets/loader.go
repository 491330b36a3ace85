package assets

import (
	"path/filepath"
	"strings"
)

type AssetKind int

const (
	AssetKindNone AssetKind = iota
	AssetKindShader
	AssetKindGeometry
)

func (k AssetKind) String() string {
	switch k {
	case AssetKindShader:
		return "shader"
	case AssetKindGeometry:
		return "geometry"
	default:
		return "none"
	}
}

func determineAssetKind(path string) AssetKind {
	switch {
	case strings.HasSuffix(path, ".spv"):
		return AssetKindShader
	case filepath.Ext(path) == ".geo":
		return AssetKindGeometry
	default:
		return AssetKindNone
	}
}
