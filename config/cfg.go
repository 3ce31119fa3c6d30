package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"flexsections/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	TemplateFieldName string

	SummaryConfig struct {
		DefaultFormat common.SummaryFormat `yaml:"default_format" validate:"gte=0"`
		OverflowDiv   bool                 `yaml:"overflow_div"`
	}

	RenderConfig struct {
		WWWRoot           string        `yaml:"wwwroot" validate:"required,url"`
		Theme             string        `yaml:"theme" validate:"required"`
		Revision          int           `yaml:"revision" validate:"gte=-1"`
		StylesheetPath    string        `yaml:"stylesheet_path" sanitize:"assure_file_access"`
		PageTitleTemplate string        `yaml:"page_title_template"`
		Summary           SummaryConfig `yaml:"summary"`
	}

	LabelsConfig struct {
		MoveHere     string `yaml:"move_here" validate:"required"`
		CancelMoving string `yaml:"cancel_moving" validate:"required"`
		AddSection   string `yaml:"add_section" validate:"required"`
		AddActivity  string `yaml:"add_activity" validate:"required"`
		Settings     string `yaml:"settings" validate:"required"`
		Marker       string `yaml:"marker" validate:"required"`
		Marked       string `yaml:"marked" validate:"required"`
		Move         string `yaml:"move" validate:"required"`
		Expand       string `yaml:"expand" validate:"required"`
		Collapse     string `yaml:"collapse" validate:"required"`
		Hide         string `yaml:"hide" validate:"required"`
		Show         string `yaml:"show" validate:"required"`
		MergeUp      string `yaml:"merge_up" validate:"required"`
		NotAvailable string `yaml:"not_available"`
	}

	HostConfig struct {
		SectionNameTemplate string       `yaml:"section_name_template" validate:"required"`
		BackToTemplate      string       `yaml:"back_to_template" validate:"required"`
		Labels              LabelsConfig `yaml:"labels"`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Render    RenderConfig   `yaml:"render"`
		Host      HostConfig     `yaml:"host"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

const (
	// NOTE: must match yaml field name above, alternative is to use struct
	// field name and reflection which I want to avoid for now
	PageTitleTemplateFieldName   TemplateFieldName = "page_title_template"
	SectionNameTemplateFieldName TemplateFieldName = "section_name_template"
	BackToTemplateFieldName      TemplateFieldName = "back_to_template"
)

var requiredOptions = append([]func(*gencfg.ProcessingOptions){},
	gencfg.WithDoNotExpandField(string(PageTitleTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(SectionNameTemplateFieldName)),
	gencfg.WithDoNotExpandField(string(BackToTemplateFieldName)),
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we defined are accepted, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// LoadConfiguration reads the configuration from the file at the given path,
// superimposes its values on top of expanded configuration template to provide
// sane defaults and performs validation.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, append(requiredOptions, options...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare generates configuration file from template and returns it as a byte
// slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl, requiredOptions...)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}
