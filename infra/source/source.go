// Package source loads problem instances from YAML, JSON or CSV files.
package source

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/vrptw/core/model"
)

// Supported formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Config locates the instance. Fleet overrides the fleet stored in the
// file and is required for CSV, which only carries customers.
type Config struct {
	Path   string           `json:"path"`
	Format string           `json:"format"`
	Name   string           `json:"name"`
	Fleet  *model.FleetSpec `json:"fleet"`
}

// Validate checks that the instance can be located.
func (c Config) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("%w: instance.path is required", model.ErrInvalidConfiguration)
	}
	if _, err := c.format(); err != nil {
		return err
	}
	return nil
}

func (c Config) format() (string, error) {
	f := strings.ToLower(c.Format)
	if f == "" {
		f = strings.TrimPrefix(strings.ToLower(filepath.Ext(c.Path)), ".")
	}
	switch f {
	case "yml", FormatYAML:
		return FormatYAML, nil
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported instance format %q", model.ErrInvalidConfiguration, f)
	}
}

// Load reads the instance described by cfg.
func Load(cfg Config) (*model.Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, _ := cfg.format()
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("read instance: %w", err)
	}
	var in *model.Instance
	switch format {
	case FormatYAML:
		in, err = DecodeYAML(bytes.NewReader(data))
	case FormatJSON:
		in, err = DecodeJSON(bytes.NewReader(data))
	case FormatCSV:
		in, err = DecodeCSV(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", cfg.Path, err)
	}
	if cfg.Fleet != nil && cfg.Fleet.Count > 0 {
		in.Fleet = *cfg.Fleet
	}
	if format == FormatCSV && in.Fleet.Count == 0 {
		return nil, fmt.Errorf("%w: csv instances need instance.fleet", model.ErrInvalidConfiguration)
	}
	if cfg.Name != "" {
		in.Name = cfg.Name
	}
	if in.Name == "" {
		in.Name = strings.TrimSuffix(filepath.Base(cfg.Path), filepath.Ext(cfg.Path))
	}
	return in, nil
}

// DecodeYAML parses an InstanceDef document.
func DecodeYAML(r io.Reader) (*model.Instance, error) {
	var def InstanceDef
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	return def.ToModel(), nil
}

// DecodeJSON parses an InstanceDef document.
func DecodeJSON(r io.Reader) (*model.Instance, error) {
	var def InstanceDef
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&def); err != nil {
		return nil, err
	}
	return def.ToModel(), nil
}

var csvColumns = []string{"id", "demand", "earliest", "latest", "service_duration", "x", "y"}

// DecodeCSV parses customer rows. The header must name every column of
// csvColumns, in any order. The fleet is left empty.
func DecodeCSV(r io.Reader) (*model.Instance, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("csv header: %w", err)
	}
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range csvColumns {
		if _, ok := pos[c]; !ok {
			return nil, fmt.Errorf("csv header: missing column %q", c)
		}
	}

	in := &model.Instance{}
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		vals := make(map[string]int, len(csvColumns))
		for _, c := range csvColumns {
			v, err := strconv.Atoi(strings.TrimSpace(rec[pos[c]]))
			if err != nil {
				return nil, fmt.Errorf("csv line %d: column %s: %w", line, c, err)
			}
			vals[c] = v
		}
		in.Customers = append(in.Customers, CustomerDef{
			ID:              vals["id"],
			Demand:          vals["demand"],
			Earliest:        vals["earliest"],
			Latest:          vals["latest"],
			ServiceDuration: vals["service_duration"],
			X:               vals["x"],
			Y:               vals["y"],
		}.ToModel())
	}
	return in, nil
}
