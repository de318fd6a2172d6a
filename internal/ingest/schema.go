package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"vantage/internal/logger"

	"github.com/fsnotify/fsnotify"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// schemaFile maps the trade_schema.yaml layout.
type schemaFile struct {
	Schema map[string]any `yaml:"schema"`
}

// SchemaRegistry holds the compiled JSON Schema every imported trade record
// is validated against. The file is watched and hot-reloaded, so operators
// can tighten the import contract without a restart.
type SchemaRegistry struct {
	path string

	mu       sync.RWMutex
	compiled *jsonschema.Schema
	loadedAt time.Time
}

func NewSchemaRegistry(path string) (*SchemaRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("schema path cannot be empty")
	}
	r := &SchemaRegistry{path: path}
	if err := r.reload(); err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read trade schema failed: %w", err)
	}
	v.OnConfigChange(func(fsnotify.Event) {
		if err := r.reload(); err != nil {
			logger.Errorf("trade schema reload failed: %v", err)
			return
		}
		logger.Infof("trade schema reloaded from %s", r.path)
	})
	v.WatchConfig()
	return r, nil
}

// Validate checks a decoded record against the current schema.
func (r *SchemaRegistry) Validate(doc any) error {
	r.mu.RLock()
	compiled := r.compiled
	r.mu.RUnlock()
	if compiled == nil {
		return nil
	}
	return compiled.Validate(doc)
}

// LoadedAt reports when the schema was last (re)compiled.
func (r *SchemaRegistry) LoadedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loadedAt
}

func (r *SchemaRegistry) reload() error {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return fmt.Errorf("read trade schema failed: %w", err)
	}
	var file schemaFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return fmt.Errorf("parse trade schema failed: %w", err)
	}
	if len(file.Schema) == 0 {
		return fmt.Errorf("trade schema file %s has no schema section", r.path)
	}
	compiled, err := compileSchema(file.Schema)
	if err != nil {
		return fmt.Errorf("compile trade schema failed: %w", err)
	}
	r.mu.Lock()
	r.compiled = compiled
	r.loadedAt = time.Now()
	r.mu.Unlock()
	return nil
}

func compileSchema(data map[string]any) (*jsonschema.Schema, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", strings.NewReader(string(raw))); err != nil {
		return nil, err
	}
	return compiler.Compile("schema.json")
}
