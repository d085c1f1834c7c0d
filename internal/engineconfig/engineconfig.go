// Package engineconfig reads the engine configuration JSON handed to the
// tool through SENZING_ENGINE_CONFIGURATION_JSON.
package engineconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// SchemaScriptName is the vendor DDL script shipped under
// <RESOURCEPATH>/schema.
const SchemaScriptName = "szcore-schema-postgresql-create.sql"

// ErrInvalid is returned for malformed JSON or missing required keys.
var ErrInvalid = errors.New("invalid engine configuration")

// EngineConfig is the subset of the engine configuration this tool needs.
// Raw keeps the original text, which is passed unchanged to the SDK.
type EngineConfig struct {
	Raw          string
	Connection   string
	ResourcePath string
	ConfigPath   string
	SupportPath  string
}

type document struct {
	SQL struct {
		Connection string `json:"CONNECTION"`
	} `json:"SQL"`
	Pipeline struct {
		ResourcePath string `json:"RESOURCEPATH"`
		ConfigPath   string `json:"CONFIGPATH"`
		SupportPath  string `json:"SUPPORTPATH"`
	} `json:"PIPELINE"`
}

// Parse decodes raw. SQL.CONNECTION and PIPELINE.RESOURCEPATH are required.
func Parse(raw string) (*EngineConfig, error) {
	var doc document
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	var missing []string
	if doc.SQL.Connection == "" {
		missing = append(missing, "SQL.CONNECTION")
	}
	if doc.Pipeline.ResourcePath == "" {
		missing = append(missing, "PIPELINE.RESOURCEPATH")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s", ErrInvalid, strings.Join(missing, ", "))
	}

	return &EngineConfig{
		Raw:          raw,
		Connection:   doc.SQL.Connection,
		ResourcePath: doc.Pipeline.ResourcePath,
		ConfigPath:   doc.Pipeline.ConfigPath,
		SupportPath:  doc.Pipeline.SupportPath,
	}, nil
}

// SchemaScriptPath returns the location of the schema creation script.
func (c *EngineConfig) SchemaScriptPath() string {
	return filepath.Join(c.ResourcePath, "schema", SchemaScriptName)
}
