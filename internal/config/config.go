// Package config loads the dropdown configuration: how raw items map to
// options, how selection behaves, how the panel scrolls, and how the process
// logs.
//
// Configuration is YAML. New returns the defaults; Load layers a file on top
// with ShallowMergeYAML, applies environment overrides and validates the
// result.
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rs/zerolog"

	"github.com/rshade/dropdown/internal/group"
	"github.com/rshade/dropdown/internal/itemslist"
	"github.com/rshade/dropdown/internal/logging"
	"github.com/rshade/dropdown/internal/option"
	"github.com/rshade/dropdown/internal/scroll"
	"github.com/rshade/dropdown/internal/search"
	"github.com/rshade/dropdown/internal/selection"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// ErrInvalidConfig is wrapped by every validation failure.
const ErrInvalidConfig = constError("invalid configuration")

// CurrentVersion is the schema version written by this release.
const CurrentVersion = "1.0.0"

// supportedVersions is the schema range this release reads.
const supportedVersions = ">=1.0.0, <2.0.0"

// EnvLogLevel overrides logging.level.
const EnvLogLevel = "DROPDOWN_LOG_LEVEL"

// Default UI texts.
const (
	DefaultNotFoundText     = "No items found"
	DefaultTypeToSearchText = "Type to search"
	DefaultAddTagText       = "Add item"
	DefaultClearAllText     = "Clear all"
)

// Config is the complete dropdown configuration.
type Config struct {
	// Version is the schema version of the file.
	Version string `yaml:"version" json:"version"`

	Select  SelectConfig  `yaml:"select"  json:"select"`
	Panel   PanelConfig   `yaml:"panel"   json:"panel"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// SelectConfig controls item mapping, filtering and selection.
//
// Example:
//
//	select:
//	  bind_label: name
//	  bind_value: id
//	  group_by: team
//	  multiple: true
//	  max_selected_items: 3
type SelectConfig struct {
	// BindLabel is the dotted path of the option label.
	BindLabel string `yaml:"bind_label" json:"bind_label"`

	// BindValue is the dotted path of the model value; empty binds whole items.
	BindValue string `yaml:"bind_value,omitempty" json:"bind_value,omitempty"`

	// GroupBy is the dotted path items are grouped by; empty disables grouping.
	GroupBy string `yaml:"group_by,omitempty" json:"group_by,omitempty"`

	SelectableGroup        bool `yaml:"selectable_group"          json:"selectable_group"`
	SelectableGroupAsModel bool `yaml:"selectable_group_as_model" json:"selectable_group_as_model"`

	Multiple bool `yaml:"multiple" json:"multiple"`

	// MaxSelectedItems caps a multiple selection; 0 is unlimited.
	MaxSelectedItems int `yaml:"max_selected_items" json:"max_selected_items"`

	HideSelected bool `yaml:"hide_selected" json:"hide_selected"`
	MarkFirst    bool `yaml:"mark_first"    json:"mark_first"`

	// MinTermLength is the shortest search term that filters.
	MinTermLength int `yaml:"min_term_length" json:"min_term_length"`

	// CompareWith is a comparator spec: identity, deep or field:<path>.
	CompareWith string `yaml:"compare_with,omitempty" json:"compare_with,omitempty"`

	// Search names the match function: contains, fuzzy or prefix.
	Search string `yaml:"search,omitempty" json:"search,omitempty"`

	// AddTag lets the search term be selected as a new item.
	AddTag bool `yaml:"add_tag" json:"add_tag"`

	// DropOrphanedSelections unselects values that disappear from the items.
	DropOrphanedSelections bool `yaml:"drop_orphaned_selections" json:"drop_orphaned_selections"`

	ClearOnBackspace bool `yaml:"clear_on_backspace" json:"clear_on_backspace"`

	Texts TextsConfig `yaml:"texts" json:"texts"`
}

// TextsConfig holds the UI texts shown by the picker.
type TextsConfig struct {
	NotFound     string `yaml:"not_found"      json:"not_found"`
	TypeToSearch string `yaml:"type_to_search" json:"type_to_search"`
	AddTag       string `yaml:"add_tag"        json:"add_tag"`
	ClearAll     string `yaml:"clear_all"      json:"clear_all"`
}

// PanelConfig controls the dropdown panel.
type PanelConfig struct {
	VirtualScroll bool `yaml:"virtual_scroll" json:"virtual_scroll"`

	// Buffer is the number of options rendered beyond each edge of the viewport.
	Buffer int `yaml:"buffer" json:"buffer"`

	// Height is the viewport height in rows.
	Height int `yaml:"height" json:"height"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Version: CurrentVersion,
		Select: SelectConfig{
			BindLabel:              itemslist.DefaultBindLabel,
			SelectableGroupAsModel: true,
			MarkFirst:              true,
			ClearOnBackspace:       true,
			Search:                 search.NameContains,
			Texts: TextsConfig{
				NotFound:     DefaultNotFoundText,
				TypeToSearch: DefaultTypeToSearchText,
				AddTag:       DefaultAddTagText,
				ClearAll:     DefaultClearAllText,
			},
		},
		Panel: PanelConfig{
			Buffer: scroll.DefaultBuffer,
			Height: defaultPanelHeight,
		},
		Logging: LoggingConfig{
			Level:  zerolog.InfoLevel.String(),
			Format: "text",
		},
	}
}

// defaultPanelHeight is the number of option rows the picker shows.
const defaultPanelHeight = 10

// Load returns the defaults overlaid with each file in paths in order, then
// environment overrides, validated. Empty paths are skipped.
func Load(ctx context.Context, paths ...string) (*Config, error) {
	logger := logging.FromContext(ctx)

	cfg := New()
	for _, path := range paths {
		if path == "" {
			continue
		}
		if err := ShallowMergeYAML(cfg, path); err != nil {
			return nil, err
		}
		logger.Debug().Str("component", "config").Str("path", path).Msg("merged config file")
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("component", "config").
		Str("version", cfg.Version).
		Bool("multiple", cfg.Select.Multiple).
		Bool("virtual_scroll", cfg.Panel.VirtualScroll).
		Msg("configuration loaded")
	return cfg, nil
}

// ApplyEnv applies environment variable overrides.
func (c *Config) ApplyEnv() {
	if level := strings.TrimSpace(os.Getenv(EnvLogLevel)); level != "" {
		c.Logging.Level = level
	}
}

// Validate checks the configuration. Every error wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if err := validateVersion(c.Version); err != nil {
		return err
	}
	if err := c.Select.Validate(); err != nil {
		return fmt.Errorf("%w: select: %w", ErrInvalidConfig, err)
	}
	if err := c.Panel.Validate(); err != nil {
		return fmt.Errorf("%w: panel: %w", ErrInvalidConfig, err)
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("%w: logging: %w", ErrInvalidConfig, err)
	}
	return nil
}

func validateVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: version %q: %w", ErrInvalidConfig, version, err)
	}

	constraint, err := semver.NewConstraint(supportedVersions)
	if err != nil {
		return fmt.Errorf("parsing version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: version %s is not supported (want %s)", ErrInvalidConfig, v, supportedVersions)
	}
	return nil
}

// Validate checks the select section.
func (s SelectConfig) Validate() error {
	if s.MaxSelectedItems < 0 {
		return fmt.Errorf("max_selected_items must not be negative, got %d", s.MaxSelectedItems)
	}
	if s.MinTermLength < 0 {
		return fmt.Errorf("min_term_length must not be negative, got %d", s.MinTermLength)
	}
	if s.MaxSelectedItems > 0 && !s.Multiple {
		return errors.New("max_selected_items requires multiple")
	}
	if _, err := option.ParseComparator(s.CompareWith); err != nil {
		return err
	}
	if _, err := search.ByName(s.Search, s.BindLabel); err != nil {
		return err
	}
	return nil
}

// Validate checks the panel section.
func (p PanelConfig) Validate() error {
	if p.Buffer < 0 {
		return fmt.Errorf("buffer must not be negative, got %d", p.Buffer)
	}
	if p.Height < 1 {
		return fmt.Errorf("height must be at least 1, got %d", p.Height)
	}
	return nil
}

// ListOptions builds the items list options described by the select section.
func (s SelectConfig) ListOptions() (itemslist.Options, error) {
	cmp, err := option.ParseComparator(s.CompareWith)
	if err != nil {
		return itemslist.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	searchFn, err := search.ByName(s.Search, s.BindLabel)
	if err != nil {
		return itemslist.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return itemslist.Options{
		BindLabel:              s.BindLabel,
		BindValue:              s.BindValue,
		GroupBy:                group.KeyFromPath(s.GroupBy),
		SelectableGroup:        s.SelectableGroup,
		SelectableGroupAsModel: s.SelectableGroupAsModel,
		HideSelected:           s.HideSelected && s.Multiple,
		MinTermLength:          s.MinTermLength,
		CompareWith:            cmp,
		SearchFn:               searchFn,
		DropOrphanedSelections: s.DropOrphanedSelections,
	}, nil
}

// Model builds the selection model described by the select section. cmp is
// the comparator from ListOptions.
func (s SelectConfig) Model(cmp option.Comparator) selection.Model {
	if s.Multiple {
		return selection.NewMultiple(s.MaxSelectedItems, cmp)
	}
	return selection.NewSingle(cmp)
}

// NewList builds an empty items list from the select section.
func (s SelectConfig) NewList(ctx context.Context) (*itemslist.List, error) {
	opts, err := s.ListOptions()
	if err != nil {
		return nil, err
	}
	return itemslist.New(ctx, opts, s.Model(opts.CompareWith)), nil
}

// PanelOptions builds the scroll panel options described by the panel section.
func (p PanelConfig) PanelOptions(onScrollToEnd func()) scroll.PanelOptions {
	return scroll.PanelOptions{
		Virtual:       p.VirtualScroll,
		Buffer:        p.Buffer,
		OnScrollToEnd: onScrollToEnd,
	}
}
