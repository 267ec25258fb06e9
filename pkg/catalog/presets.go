package catalog

import (
	"github.com/agentstation/utc"
)

// TagID uniquely identifies a Tag.
type TagID string

// String returns the string representation of a TagID.
func (id TagID) String() string { return string(id) }

// ModelID uniquely identifies a Model.
type ModelID string

// String returns the string representation of a ModelID.
func (id ModelID) String() string { return string(id) }

// CategoryID uniquely identifies a Category.
type CategoryID string

// String returns the string representation of a CategoryID.
func (id CategoryID) String() string { return string(id) }

// Tag is a preset label files can reference. Names are unique among tags,
// case-sensitive. Usage counts are derived by the stats aggregator, never
// stored on the entity.
type Tag struct {
	ID          TagID    `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	CreatedAt   utc.Time `json:"created_at" yaml:"created_at"`
}

// Model is a preset describing the model that produced a file's content.
type Model struct {
	ID          ModelID  `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Version     string   `json:"version,omitempty" yaml:"version,omitempty"`
	CreatedAt   utc.Time `json:"created_at" yaml:"created_at"`
}

// Category is a preset grouping files into one top-level bucket each.
type Category struct {
	ID          CategoryID `json:"id" yaml:"id"`
	Name        string     `json:"name" yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt   utc.Time   `json:"created_at" yaml:"created_at"`
}
