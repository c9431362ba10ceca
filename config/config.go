// Package config loads the YAML document that describes a dicomforward
// invocation: outbound destinations (DICOM peers or STOW-RS origin
// servers), each destination's editor chain and mask area, and CLI
// defaults. It follows flatmapit-crgodicom's internal/config shape
// (struct tags + yaml.Unmarshal + validateAndSetDefaults), substituting
// github.com/go-playground/validator/v10 struct-tag validation for that
// package's hand-rolled checks.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the top-level document loaded from a dicomforward YAML config
// file.
type Config struct {
	Logging      LoggingConfig          `yaml:"logging"`
	Destinations []DestinationConfig    `yaml:"destinations" validate:"required,min=1,dive"`
}

// LoggingConfig holds the logging section of the YAML document. Load fills in
// its defaults, but cmd/dicomforward does not read it: the CLI takes its log
// level and format from the --log-level and --json flags.
type LoggingConfig struct {
	// Level is one of "debug", "info", "warn", "error". Defaults to "info".
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	// Pretty selects human-readable (true) vs JSON (false) log output.
	// Defaults to true.
	Pretty *bool `yaml:"pretty"`
}

// DestinationKind discriminates the two outbound transports a
// DestinationConfig can describe.
type DestinationKind string

const (
	// DestinationDICOM configures a forward.DicomAssociation.
	DestinationDICOM DestinationKind = "dicom"
	// DestinationWeb configures a stowrs.Client.
	DestinationWeb DestinationKind = "web"
)

// DestinationConfig declares one outbound ForwardDestination (§3 Data
// Model): its transport, the SOP class it accepts, its editor chain, and
// an optional mask area applied only to instances bound for it.
type DestinationConfig struct {
	Name string          `yaml:"name" validate:"required"`
	Kind DestinationKind `yaml:"kind" validate:"required,oneof=dicom web"`

	// DICOM fields, required when Kind == DestinationDICOM.
	Host         string `yaml:"host" validate:"required_if=Kind dicom"`
	Port         int    `yaml:"port" validate:"required_if=Kind dicom"`
	CallingAE    string `yaml:"calling_ae" validate:"required_if=Kind dicom"`
	CalledAE     string `yaml:"called_ae" validate:"required_if=Kind dicom"`
	MaxPDULength uint32 `yaml:"max_pdu_length"`

	// Web fields, required when Kind == DestinationWeb.
	StoreURL string            `yaml:"store_url" validate:"required_if=Kind web,omitempty,url"`
	Headers  map[string]string `yaml:"headers"`

	// SOPClassUID constrains presentation-context negotiation (DICOM) or is
	// informational only (web).
	SOPClassUID string `yaml:"sop_class_uid"`

	Editors  []EditorConfig  `yaml:"editors" validate:"dive"`
	MaskArea *MaskAreaConfig `yaml:"mask_area"`
}

// EditorConfig declares one AttributeEditor in a destination's chain via a
// discriminated union on Type.
type EditorConfig struct {
	Type EditorType `yaml:"type" validate:"required,oneof=rename remove anonymize"`

	// rename/remove fields.
	Tag         string `yaml:"tag" validate:"required_if=Type rename,required_if=Type remove"`
	VR          string `yaml:"vr" validate:"required_if=Type rename"`
	Replacement string `yaml:"replacement" validate:"required_if=Type rename"`

	// anonymize fields.
	Profile string `yaml:"profile" validate:"required_if=Type anonymize,omitempty,oneof=basic clean retain_uids retain_device_identity"`
}

// EditorType is the discriminator for EditorConfig.
type EditorType string

const (
	EditorRename    EditorType = "rename"
	EditorRemove    EditorType = "remove"
	EditorAnonymize EditorType = "anonymize"
)

// MaskAreaConfig declares the rectangular burn-in regions applied to pixel
// data bound for one destination, per §3's MaskArea and §12's
// rectangle-list supplement of it.
type MaskAreaConfig struct {
	Rectangles []RectangleConfig `yaml:"rectangles" validate:"required,min=1,dive"`
}

// RectangleConfig is one burn-in rectangle, upper-left inclusive,
// lower-right exclusive.
type RectangleConfig struct {
	MinX int `yaml:"min_x"`
	MinY int `yaml:"min_y"`
	MaxX int `yaml:"max_x" validate:"gtfield=MinX"`
	MaxY int `yaml:"max_y" validate:"gtfield=MinY"`
}

var validate = validator.New()

// Load reads and parses the YAML config at path, applies defaults, and
// validates the result via struct tags.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	cfg.setDefaults()

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: validate %s: %w", path, err)
	}
	return &cfg, nil
}

// setDefaults fills in fields left unset in the YAML document, mirroring
// flatmapit-crgodicom's validateAndSetDefaults.
func (c *Config) setDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Pretty == nil {
		pretty := true
		c.Logging.Pretty = &pretty
	}
	for i := range c.Destinations {
		d := &c.Destinations[i]
		if d.Kind == DestinationDICOM && d.MaxPDULength == 0 {
			d.MaxPDULength = 16384
		}
	}
}
