package catalog

import (
	"fmt"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
)

// DefaultBaseURL points at the upstream weight repository on Hugging Face
const DefaultBaseURL = "https://huggingface.co/lj1995/VoiceConversionWebUI/resolve/main"

// Catalog is the immutable set of artifact groups a fetch run can draw from.
// It is built once at startup and passed into the batch; nothing reads it as
// ambient global state.
type Catalog struct {
	BaseURL   string
	Essential []domain.ArtifactSpec
	UVR5      []domain.ArtifactSpec
	ONNX      []domain.ArtifactSpec
}

// Default returns the built-in catalog: the models the voice-conversion
// pipeline needs, the UVR5 separation weights, and the large ONNX dereverb
// model kept behind an explicit opt-in.
func Default() Catalog {
	return Catalog{
		BaseURL: DefaultBaseURL,
		Essential: specs(domain.TierEssential,
			"hubert_base.pt",
			"rmvpe.pt",
		),
		UVR5: specs(domain.TierOptional,
			"uvr5_weights/HP2-人声vocals+非人声instrumentals.pth",
			"uvr5_weights/HP2_all_vocals.pth",
			"uvr5_weights/HP3_all_vocals.pth",
			"uvr5_weights/HP5-主旋律人声vocals+其他instrumentals.pth",
			"uvr5_weights/HP5_only_main_vocal.pth",
			"uvr5_weights/VR-DeEchoAggressive.pth",
			"uvr5_weights/VR-DeEchoDeReverb.pth",
			"uvr5_weights/VR-DeEchoNormal.pth",
		),
		ONNX: specs(domain.TierOptional,
			"uvr5_weights/onnx_dereverb_By_FoxJoy/vocals.onnx",
		),
	}
}

// Specs flattens the catalog into one ordered list: essential models, then
// the UVR5 weights, then — only when includeONNX is set — the ONNX group.
func (c Catalog) Specs(includeONNX bool) []domain.ArtifactSpec {
	out := make([]domain.ArtifactSpec, 0, len(c.Essential)+len(c.UVR5)+len(c.ONNX))
	out = append(out, c.Essential...)
	out = append(out, c.UVR5...)
	if includeONNX {
		out = append(out, c.ONNX...)
	}
	return out
}

// fileCatalog is the yaml form of a catalog override
type fileCatalog struct {
	BaseURL   string   `yaml:"base_url"`
	Essential []string `yaml:"essential"`
	UVR5      []string `yaml:"uvr5"`
	ONNX      []string `yaml:"onnx"`
}

// LoadFile reads a catalog from a yaml file. An omitted base_url falls back
// to the default host; every listed path must be a clean relative path.
func LoadFile(filePath string) (Catalog, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return Catalog{}, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var fc fileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Catalog{}, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(fc.Essential)+len(fc.UVR5)+len(fc.ONNX) == 0 {
		return Catalog{}, domain.ErrEmptyCatalog
	}

	c := Catalog{BaseURL: fc.BaseURL}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}

	groups := []struct {
		paths []string
		tier  domain.Tier
		dst   *[]domain.ArtifactSpec
	}{
		{fc.Essential, domain.TierEssential, &c.Essential},
		{fc.UVR5, domain.TierOptional, &c.UVR5},
		{fc.ONNX, domain.TierOptional, &c.ONNX},
	}

	for _, g := range groups {
		for _, p := range g.paths {
			if err := validatePath(p); err != nil {
				return Catalog{}, fmt.Errorf("catalog entry %q: %w", p, err)
			}
			*g.dst = append(*g.dst, domain.ArtifactSpec{RemotePath: p, Tier: g.tier})
		}
	}

	return c, nil
}

// validatePath rejects remote paths that would not map cleanly under the
// local root.
func validatePath(p string) error {
	if p == "" {
		return domain.ErrEmptyRemotePath
	}
	if strings.HasPrefix(p, "/") {
		return domain.ErrAbsoluteRemotePath
	}
	clean := path.Clean(p)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return domain.ErrPathEscapesRoot
	}
	return nil
}

func specs(tier domain.Tier, paths ...string) []domain.ArtifactSpec {
	out := make([]domain.ArtifactSpec, 0, len(paths))
	for _, p := range paths {
		out = append(out, domain.ArtifactSpec{RemotePath: p, Tier: tier})
	}
	return out
}
