/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

// Format is a manifest encoding.
type Format string

const (
	// YAML manifests use the .yaml or .yml extension.
	YAML Format = "yaml"
	// HCL manifests use the .hcl extension.
	HCL Format = "hcl"
)

// FormatOf returns the format implied by the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".hcl":
		return HCL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
	}
}

// Load reads and decodes the manifest file at path.
func Load(path string) (*Manifest, error) {
	f, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}
	m, err := decode(path, data, f)
	if err != nil {
		return nil, err
	}
	m.Source = path
	return m, nil
}

// Decode decodes a manifest held in memory.
func Decode(data []byte, f Format) (*Manifest, error) {
	return decode("manifest."+string(f), data, f)
}

func decode(name string, data []byte, f Format) (*Manifest, error) {
	switch f {
	case YAML:
		return decodeYAML(name, data)
	case HCL:
		return decodeHCL(name, data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func decodeYAML(name string, data []byte) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode YAML manifest %s: %w", name, err)
	}
	return &m, nil
}

func decodeHCL(name string, data []byte) (*Manifest, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL manifest %s: %w", name, diags)
	}
	var m Manifest
	diags = gohcl.DecodeBody(file.Body, nil, &m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL manifest %s: %w", name, diags)
	}
	return &m, nil
}
