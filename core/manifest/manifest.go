package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	// AssetsDir is the directory holding the manifest, relative to the build root.
	AssetsDir = "assets"
	// FileName is the manifest file name inside AssetsDir.
	FileName = "assets.json"
	// Path is the manifest location relative to the remote base.
	Path = AssetsDir + "/" + FileName
	// PreferredStylesheet is the stylesheet emitted by the Tailwind watcher.
	PreferredStylesheet = "style.css"
)

var (
	styleRe  = regexp.MustCompile(`(?i)^style(\.[a-f0-9]+)?\.css$`)
	stylesRe = regexp.MustCompile(`(?i)^styles(\.[a-f0-9]+)?\.css$`)
)

// ErrNoBuild is returned when the build directory cannot be read.
var ErrNoBuild = errors.New("manifest: build directory not readable")

// ErrMismatch is returned when a published manifest differs from the local one.
var ErrMismatch = errors.New("manifest: published manifest differs")

// Manifest is the document served at assets/assets.json.
type Manifest struct {
	CSS []string `json:"css"`
}

// Select picks the stylesheets to list from the file names found at the build
// root and in its assets directory.
func Select(rootFiles, assetFiles []string) []string {
	for _, f := range assetFiles {
		if f == PreferredStylesheet {
			return []string{AssetsDir + "/" + PreferredStylesheet}
		}
	}

	var topCSS []string
	for _, f := range rootFiles {
		if strings.HasSuffix(strings.ToLower(f), ".css") {
			topCSS = append(topCSS, f)
		}
	}
	if len(topCSS) == 0 {
		return []string{}
	}

	for _, re := range []*regexp.Regexp{styleRe, stylesRe} {
		for _, f := range topCSS {
			if re.MatchString(f) {
				return []string{f}
			}
		}
	}
	return []string{topCSS[0]}
}

// Build inspects distDir and returns the manifest it should carry.
func Build(distDir string) (Manifest, error) {
	rootFiles, err := listFiles(distDir)
	if err != nil {
		return Manifest{}, fmt.Errorf("%w: %w", ErrNoBuild, err)
	}

	assetFiles, err := listFiles(filepath.Join(distDir, AssetsDir))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Manifest{}, fmt.Errorf("failed to read assets dir: %w", err)
	}

	return Manifest{CSS: Select(rootFiles, assetFiles)}, nil
}

// Write builds the manifest for distDir and writes it to assets/assets.json,
// creating the assets directory if needed.
func Write(distDir string) (Manifest, error) {
	m, err := Build(distDir)
	if err != nil {
		return Manifest{}, err
	}

	data, err := m.Encode()
	if err != nil {
		return Manifest{}, err
	}

	assetsDir := filepath.Join(distDir, AssetsDir)
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return Manifest{}, fmt.Errorf("failed to create assets dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(assetsDir, FileName), data, 0o644); err != nil {
		return Manifest{}, fmt.Errorf("failed to write manifest: %w", err)
	}
	return m, nil
}

// Encode renders the manifest with two-space indentation.
func (m Manifest) Encode() ([]byte, error) {
	if m.CSS == nil {
		m.CSS = []string{}
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return data, nil
}

// listFiles returns the regular file names in dir, sorted by name.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	return files, nil
}
