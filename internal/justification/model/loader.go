package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ManifestFile   = "ml_model_config.json"
	DefaultVersion = "v1"
)

var (
	// ErrNotFound means neither the versioned nor the legacy artifacts exist.
	ErrNotFound = errors.New("model artifacts not found")

	// ErrInvalidVersion means a version label could escape the model
	// directory once it is joined into a file name.
	ErrInvalidVersion = errors.New("invalid model version")
)

var versionPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// Manifest selects the active model version. It is JSON on disk and decoded
// as YAML, which accepts it unchanged.
type Manifest struct {
	ActiveVersion string `yaml:"active_version"`
}

// Bundle is the pair of models the justification classifier needs.
type Bundle struct {
	Version       string
	Legacy        bool
	Justification *Linear
	Intent        *Linear
}

// ReadManifest returns the manifest in dir, or one pointing at DefaultVersion
// when the file is absent.
func ReadManifest(dir string) (Manifest, error) {
	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if errors.Is(err, fs.ErrNotExist) {
		return Manifest{ActiveVersion: DefaultVersion}, nil
	}
	if err != nil {
		return Manifest{}, fmt.Errorf("read manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode manifest: %w", err)
	}
	m.ActiveVersion = strings.TrimSpace(m.ActiveVersion)
	if m.ActiveVersion == "" {
		m.ActiveVersion = DefaultVersion
	}
	return m, nil
}

// Load resolves the active version (override wins over the manifest) and
// loads justification_clf_<v>.json and intent_clf_<v>.json. When either is
// missing it falls back to the unversioned legacy pair. Returns ErrNotFound
// when neither pair is complete.
func Load(dir, override string) (*Bundle, error) {
	version := strings.TrimSpace(override)
	if version == "" {
		m, err := ReadManifest(dir)
		if err != nil {
			return nil, err
		}
		version = m.ActiveVersion
	}
	if err := ValidateVersion(version); err != nil {
		return nil, err
	}

	candidates := []struct {
		justification, intent string
		legacy                bool
	}{
		{"justification_clf_" + version + ".json", "intent_clf_" + version + ".json", false},
		{"justification_clf.json", "intent_clf.json", true},
	}

	for _, c := range candidates {
		jPath := filepath.Join(dir, c.justification)
		iPath := filepath.Join(dir, c.intent)
		if !exists(jPath) || !exists(iPath) {
			continue
		}
		justification, err := ReadExport(jPath)
		if err != nil {
			return nil, err
		}
		intent, err := ReadExport(iPath)
		if err != nil {
			return nil, err
		}
		b := &Bundle{Version: version, Legacy: c.legacy, Justification: justification, Intent: intent}
		if c.legacy {
			b.Version = "legacy"
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w in %s (version %s)", ErrNotFound, dir, version)
}

// ValidateVersion accepts letters, digits, dot, underscore and hyphen, and
// rejects any "..".
func ValidateVersion(version string) error {
	if !versionPattern.MatchString(version) || strings.Contains(version, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	return nil
}

// ReadExport decodes and validates one model file.
func ReadExport(path string) (*Linear, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	var e Export
	if err := json.NewDecoder(f).Decode(&e); err != nil {
		return nil, fmt.Errorf("decode model %s: %w", filepath.Base(path), err)
	}
	m, err := New(e)
	if err != nil {
		return nil, fmt.Errorf("model %s: %w", filepath.Base(path), err)
	}
	return m, nil
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
