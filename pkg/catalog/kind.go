package catalog

// Kind identifies a preset entity collection.
type Kind string

// String returns the string representation of a Kind.
func (k Kind) String() string {
	return string(k)
}

// Preset entity kinds.
const (
	KindTag      Kind = "tag"
	KindModel    Kind = "model"
	KindCategory Kind = "category"
)
