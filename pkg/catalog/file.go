package catalog

import (
	"github.com/agentstation/utc"
)

// FileID uniquely identifies a cataloged HTML file.
type FileID string

// String returns the string representation of a FileID.
func (id FileID) String() string {
	return string(id)
}

// StorageRef is an opaque handle into the blob storage collaborator that
// holds the uploaded HTML content. The catalog never dereferences it.
type StorageRef string

// FileStatus is the lifecycle status of a File record.
type FileStatus string

// File lifecycle statuses. Deleted files are retained (soft delete) and
// excluded from counts, filters, and usage computations.
const (
	FileStatusActive  FileStatus = "active"
	FileStatusDeleted FileStatus = "deleted"
)

// File is a cataloged HTML file record. All references to preset entities
// (category, model, tags) are id-based, never name-based.
type File struct {
	ID             FileID     `json:"id" yaml:"id"`
	StorageRef     StorageRef `json:"storage_ref" yaml:"storage_ref"`
	Title          string     `json:"title" yaml:"title"`
	Description    string     `json:"description,omitempty" yaml:"description,omitempty"`
	OriginalName   string     `json:"original_name,omitempty" yaml:"original_name,omitempty"`
	BackgroundText string     `json:"background_text,omitempty" yaml:"background_text,omitempty"`
	PromptText     string     `json:"prompt_text,omitempty" yaml:"prompt_text,omitempty"`
	Category       CategoryID `json:"category,omitempty" yaml:"category,omitempty"`
	Tags           []TagID    `json:"tags,omitempty" yaml:"tags,omitempty"`
	Model          ModelID    `json:"model,omitempty" yaml:"model,omitempty"` // optional
	AccessCount    int        `json:"access_count" yaml:"access_count"`
	Status         FileStatus `json:"status" yaml:"status"`

	// Timestamps for record keeping and auditing
	CreatedAt utc.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt utc.Time `json:"updated_at" yaml:"updated_at"`
}

// Active reports whether the file is visible to searches and counts.
func (f *File) Active() bool {
	return f.Status == FileStatusActive
}

// HasTag reports whether the file references the given tag id.
func (f *File) HasTag(id TagID) bool {
	for _, t := range f.Tags {
		if t == id {
			return true
		}
	}
	return false
}

// copy returns a deep copy of the file.
func (f *File) copy() File {
	out := *f
	if f.Tags != nil {
		out.Tags = make([]TagID, len(f.Tags))
		copy(out.Tags, f.Tags)
	}
	return out
}

// FileMeta carries the caller-supplied metadata for a new file record.
// The storage ref is supplied separately by the ingestion step.
type FileMeta struct {
	Title          string
	Description    string
	OriginalName   string
	BackgroundText string
	PromptText     string
	Category       CategoryID
	Tags           []TagID
	Model          ModelID
}

// FilePatch is a partial update for a file record. Nil fields are left
// unchanged. Tags replaces the whole tag set when non-nil; pass an empty
// non-nil slice to clear it.
type FilePatch struct {
	Title          *string
	Description    *string
	OriginalName   *string
	BackgroundText *string
	PromptText     *string
	Category       *CategoryID
	Tags           []TagID
	Model          *ModelID
}
