package catalog

import (
	"github.com/pagevault/pagevault/pkg/errors"
)

// CreateFile catalogs a new file record. The storage ref points at content
// already held by the blob storage collaborator. Every preset id in meta
// must reference an existing entity or creation fails with a NotFoundError
// and no state change.
func (s *Store) CreateFile(meta FileMeta, ref StorageRef) (File, error) {
	var created File
	err := s.commit("create file", func() error {
		if err := s.validateRefsLocked(meta.Category, meta.Model, meta.Tags); err != nil {
			return err
		}
		now := s.now()
		f := &File{
			ID:             FileID(s.newID()),
			StorageRef:     ref,
			Title:          meta.Title,
			Description:    meta.Description,
			OriginalName:   meta.OriginalName,
			BackgroundText: meta.BackgroundText,
			PromptText:     meta.PromptText,
			Category:       meta.Category,
			Tags:           dedupeTags(meta.Tags),
			Model:          meta.Model,
			Status:         FileStatusActive,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		s.files.Add(f)
		created = f.copy()
		return nil
	})
	if err != nil {
		return File{}, err
	}
	return created, nil
}

// UpdateFile merges the patch into an existing active file record.
// Referenced preset ids are re-validated; UpdatedAt is refreshed. Unknown or
// soft-deleted ids fail with a NotFoundError.
func (s *Store) UpdateFile(id FileID, patch FilePatch) (File, error) {
	var updated File
	err := s.commit("update file", func() error {
		f, ok := s.files.Get(id)
		if !ok || !f.Active() {
			return errors.NewNotFoundError("file", string(id))
		}

		// Merge into a candidate so validation failures leave the record alone.
		candidate := f.copy()
		if patch.Title != nil {
			candidate.Title = *patch.Title
		}
		if patch.Description != nil {
			candidate.Description = *patch.Description
		}
		if patch.OriginalName != nil {
			candidate.OriginalName = *patch.OriginalName
		}
		if patch.BackgroundText != nil {
			candidate.BackgroundText = *patch.BackgroundText
		}
		if patch.PromptText != nil {
			candidate.PromptText = *patch.PromptText
		}
		if patch.Category != nil {
			candidate.Category = *patch.Category
		}
		if patch.Model != nil {
			candidate.Model = *patch.Model
		}
		if patch.Tags != nil {
			candidate.Tags = dedupeTags(patch.Tags)
		}

		if err := s.validateRefsLocked(candidate.Category, candidate.Model, candidate.Tags); err != nil {
			return err
		}

		candidate.UpdatedAt = s.now()
		*f = candidate
		updated = f.copy()
		return nil
	})
	if err != nil {
		return File{}, err
	}
	return updated, nil
}

// DeleteFile soft-deletes a file record: the record is retained but excluded
// from searches, counts, and usage computations. Deleting an already-deleted
// file is a no-op success, not an error and not a committed mutation.
func (s *Store) DeleteFile(id FileID) error {
	return s.commit("delete file", func() error {
		f, ok := s.files.Get(id)
		if !ok {
			return errors.NewNotFoundError("file", string(id))
		}
		if !f.Active() {
			return errNoop // idempotent
		}
		f.Status = FileStatusDeleted
		f.UpdatedAt = s.now()
		return nil
	})
}

// GetFile returns a file by id and records the access: AccessCount is
// incremented and UpdatedAt refreshed as a committed mutation, not a pure
// read. Unknown or soft-deleted ids fail with a NotFoundError.
func (s *Store) GetFile(id FileID) (File, error) {
	var out File
	err := s.commit("access file", func() error {
		f, ok := s.files.Get(id)
		if !ok || !f.Active() {
			return errors.NewNotFoundError("file", string(id))
		}
		f.AccessCount++
		f.UpdatedAt = s.now()
		out = f.copy()
		return nil
	})
	if err != nil {
		return File{}, err
	}
	return out, nil
}

// PeekFile returns a file by id without recording the access.
func (s *Store) PeekFile(id FileID) (File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.files.Get(id)
	if !ok || !f.Active() {
		return File{}, errors.NewNotFoundError("file", string(id))
	}
	return f.copy(), nil
}

// Files returns all active file records in insertion order.
func (s *Store) Files() []File {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.files.Active()
}

// validateRefsLocked checks that every non-empty preset reference resolves.
// Caller holds mu.
func (s *Store) validateRefsLocked(category CategoryID, model ModelID, tags []TagID) error {
	if category != "" {
		if _, ok := s.categories[category]; !ok {
			return errors.NewNotFoundError("category", string(category))
		}
	}
	if model != "" {
		if _, ok := s.models[model]; !ok {
			return errors.NewNotFoundError("model", string(model))
		}
	}
	for _, tid := range tags {
		if _, ok := s.tags[tid]; !ok {
			return errors.NewNotFoundError("tag", string(tid))
		}
	}
	return nil
}

// dedupeTags copies the tag set, dropping duplicates while preserving order.
func dedupeTags(tags []TagID) []TagID {
	if tags == nil {
		return nil
	}
	seen := make(map[TagID]struct{}, len(tags))
	out := make([]TagID, 0, len(tags))
	for _, t := range tags {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
