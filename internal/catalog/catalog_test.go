package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nickc01/rvc-model-fetcher/internal/domain"
)

func TestDefault(t *testing.T) {
	cat := Default()

	if cat.BaseURL != DefaultBaseURL {
		t.Errorf("base url = %s, want %s", cat.BaseURL, DefaultBaseURL)
	}
	if len(cat.Essential) != 2 {
		t.Fatalf("got %d essential models, want 2", len(cat.Essential))
	}
	if cat.Essential[0].RemotePath != "hubert_base.pt" || cat.Essential[1].RemotePath != "rmvpe.pt" {
		t.Errorf("unexpected essential models: %+v", cat.Essential)
	}
	for _, spec := range cat.Essential {
		if spec.Tier != domain.TierEssential {
			t.Errorf("%s tier = %v, want essential", spec.RemotePath, spec.Tier)
		}
	}
	if len(cat.UVR5) != 8 {
		t.Errorf("got %d uvr5 models, want 8", len(cat.UVR5))
	}
	for _, spec := range append(cat.UVR5, cat.ONNX...) {
		if spec.Tier != domain.TierOptional {
			t.Errorf("%s tier = %v, want optional", spec.RemotePath, spec.Tier)
		}
	}
}

func TestSpecs_ONNXGating(t *testing.T) {
	cat := Default()

	without := cat.Specs(false)
	with := cat.Specs(true)

	if len(with) != len(without)+len(cat.ONNX) {
		t.Errorf("with onnx = %d specs, want %d", len(with), len(without)+len(cat.ONNX))
	}
	for _, spec := range without {
		if spec.RemotePath == "uvr5_weights/onnx_dereverb_By_FoxJoy/vocals.onnx" {
			t.Error("onnx model present without opt-in")
		}
	}

	// Essential models come first
	for i, spec := range without[:len(cat.Essential)] {
		if spec.Tier != domain.TierEssential {
			t.Errorf("specs[%d] tier = %v, want essential first", i, spec.Tier)
		}
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	writeCatalog := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(dir, "catalog.yaml")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("valid catalog", func(t *testing.T) {
		path := writeCatalog(t, `
base_url: https://mirror.example.test/models
essential:
  - hubert_base.pt
uvr5:
  - uvr5_weights/HP2_all_vocals.pth
onnx:
  - uvr5_weights/onnx_dereverb_By_FoxJoy/vocals.onnx
`)
		cat, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile returned error: %v", err)
		}
		if cat.BaseURL != "https://mirror.example.test/models" {
			t.Errorf("base url = %s", cat.BaseURL)
		}
		if len(cat.Essential) != 1 || cat.Essential[0].Tier != domain.TierEssential {
			t.Errorf("essential = %+v", cat.Essential)
		}
		if len(cat.UVR5) != 1 || cat.UVR5[0].Tier != domain.TierOptional {
			t.Errorf("uvr5 = %+v", cat.UVR5)
		}
	})

	t.Run("omitted base url falls back to default", func(t *testing.T) {
		path := writeCatalog(t, "essential:\n  - hubert_base.pt\n")
		cat, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile returned error: %v", err)
		}
		if cat.BaseURL != DefaultBaseURL {
			t.Errorf("base url = %s, want default", cat.BaseURL)
		}
	})

	t.Run("empty catalog rejected", func(t *testing.T) {
		path := writeCatalog(t, "base_url: https://mirror.example.test\n")
		if _, err := LoadFile(path); !errors.Is(err, domain.ErrEmptyCatalog) {
			t.Errorf("error = %v, want ErrEmptyCatalog", err)
		}
	})

	t.Run("absolute path rejected", func(t *testing.T) {
		path := writeCatalog(t, "essential:\n  - /etc/passwd\n")
		if _, err := LoadFile(path); !errors.Is(err, domain.ErrAbsoluteRemotePath) {
			t.Errorf("error = %v, want ErrAbsoluteRemotePath", err)
		}
	})

	t.Run("escaping path rejected", func(t *testing.T) {
		path := writeCatalog(t, "essential:\n  - ../outside.bin\n")
		if _, err := LoadFile(path); !errors.Is(err, domain.ErrPathEscapesRoot) {
			t.Errorf("error = %v, want ErrPathEscapesRoot", err)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(dir, "nope.yaml")); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
