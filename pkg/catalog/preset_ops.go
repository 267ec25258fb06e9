package catalog

import (
	"sort"

	"github.com/pagevault/pagevault/pkg/errors"
)

// CreateTag creates a new tag. Fails with a DuplicateNameError if a tag with
// that name already exists (case-sensitive).
func (s *Store) CreateTag(name, description, color string) (Tag, error) {
	var created Tag
	err := s.commit("create tag", func() error {
		if err := s.checkNameLocked(KindTag, name, ""); err != nil {
			return err
		}
		t := &Tag{
			ID:          TagID(s.newID()),
			Name:        name,
			Description: description,
			Color:       color,
			CreatedAt:   s.now(),
		}
		s.tags[t.ID] = t
		created = *t
		return nil
	})
	if err != nil {
		return Tag{}, err
	}
	return created, nil
}

// CreateModel creates a new model preset. Fails with a DuplicateNameError if
// a model with that name already exists (case-sensitive).
func (s *Store) CreateModel(name, description, version string) (Model, error) {
	var created Model
	err := s.commit("create model", func() error {
		if err := s.checkNameLocked(KindModel, name, ""); err != nil {
			return err
		}
		m := &Model{
			ID:          ModelID(s.newID()),
			Name:        name,
			Description: description,
			Version:     version,
			CreatedAt:   s.now(),
		}
		s.models[m.ID] = m
		created = *m
		return nil
	})
	if err != nil {
		return Model{}, err
	}
	return created, nil
}

// CreateCategory creates a new category. Fails with a DuplicateNameError if
// a category with that name already exists (case-sensitive).
func (s *Store) CreateCategory(name, description string) (Category, error) {
	var created Category
	err := s.commit("create category", func() error {
		if err := s.checkNameLocked(KindCategory, name, ""); err != nil {
			return err
		}
		c := &Category{
			ID:          CategoryID(s.newID()),
			Name:        name,
			Description: description,
			CreatedAt:   s.now(),
		}
		s.categories[c.ID] = c
		created = *c
		return nil
	})
	if err != nil {
		return Category{}, err
	}
	return created, nil
}

// RenameTag changes a tag's name. File references are id-based, so no file
// record is rewritten. On a case-sensitive name collision the rename fails
// with a DuplicateNameError and all state is left unchanged.
func (s *Store) RenameTag(id TagID, newName string) (Tag, error) {
	var renamed Tag
	err := s.commit("rename tag", func() error {
		t, ok := s.tags[id]
		if !ok {
			return errors.NewNotFoundError("tag", string(id))
		}
		if err := s.checkNameLocked(KindTag, newName, string(id)); err != nil {
			return err
		}
		t.Name = newName
		renamed = *t
		return nil
	})
	if err != nil {
		return Tag{}, err
	}
	return renamed, nil
}

// RenameModel changes a model's name; same semantics as RenameTag.
func (s *Store) RenameModel(id ModelID, newName string) (Model, error) {
	var renamed Model
	err := s.commit("rename model", func() error {
		m, ok := s.models[id]
		if !ok {
			return errors.NewNotFoundError("model", string(id))
		}
		if err := s.checkNameLocked(KindModel, newName, string(id)); err != nil {
			return err
		}
		m.Name = newName
		renamed = *m
		return nil
	})
	if err != nil {
		return Model{}, err
	}
	return renamed, nil
}

// RenameCategory changes a category's name; same semantics as RenameTag.
func (s *Store) RenameCategory(id CategoryID, newName string) (Category, error) {
	var renamed Category
	err := s.commit("rename category", func() error {
		c, ok := s.categories[id]
		if !ok {
			return errors.NewNotFoundError("category", string(id))
		}
		if err := s.checkNameLocked(KindCategory, newName, string(id)); err != nil {
			return err
		}
		c.Name = newName
		renamed = *c
		return nil
	})
	if err != nil {
		return Category{}, err
	}
	return renamed, nil
}

// DeleteTag removes a tag. Deletion is blocked with an EntityInUseError
// while any active file still references the tag; the error carries the live
// usage count for caller messaging.
func (s *Store) DeleteTag(id TagID) error {
	return s.commit("delete tag", func() error {
		if _, ok := s.tags[id]; !ok {
			return errors.NewNotFoundError("tag", string(id))
		}
		if usage := s.tagUsageLocked(id); usage > 0 {
			return errors.NewEntityInUseError("tag", string(id), usage)
		}
		delete(s.tags, id)
		return nil
	})
}

// DeleteModel removes a model preset; same guard semantics as DeleteTag.
func (s *Store) DeleteModel(id ModelID) error {
	return s.commit("delete model", func() error {
		if _, ok := s.models[id]; !ok {
			return errors.NewNotFoundError("model", string(id))
		}
		if usage := s.modelUsageLocked(id); usage > 0 {
			return errors.NewEntityInUseError("model", string(id), usage)
		}
		delete(s.models, id)
		return nil
	})
}

// DeleteCategory removes a category; same guard semantics as DeleteTag.
func (s *Store) DeleteCategory(id CategoryID) error {
	return s.commit("delete category", func() error {
		if _, ok := s.categories[id]; !ok {
			return errors.NewNotFoundError("category", string(id))
		}
		if usage := s.categoryUsageLocked(id); usage > 0 {
			return errors.NewEntityInUseError("category", string(id), usage)
		}
		delete(s.categories, id)
		return nil
	})
}

// Tag returns a tag by id.
func (s *Store) Tag(id TagID) (Tag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.tags[id]
	if !ok {
		return Tag{}, errors.NewNotFoundError("tag", string(id))
	}
	return *t, nil
}

// Model returns a model by id.
func (s *Store) Model(id ModelID) (Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.models[id]
	if !ok {
		return Model{}, errors.NewNotFoundError("model", string(id))
	}
	return *m, nil
}

// Category returns a category by id.
func (s *Store) Category(id CategoryID) (Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return Category{}, errors.NewNotFoundError("category", string(id))
	}
	return *c, nil
}

// Tags returns all tags sorted by name.
func (s *Store) Tags() []Tag {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tagsSortedLocked()
}

// Models returns all model presets sorted by name.
func (s *Store) Models() []Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.modelsSortedLocked()
}

// Categories returns all categories sorted by name.
func (s *Store) Categories() []Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categoriesSortedLocked()
}

// checkNameLocked enforces name uniqueness within a kind, case-sensitive.
// excludeID skips the entity being renamed. Caller holds mu.
func (s *Store) checkNameLocked(kind Kind, name, excludeID string) error {
	if name == "" {
		return errors.NewValidationError("name", name, "cannot be empty")
	}
	switch kind {
	case KindTag:
		for id, t := range s.tags {
			if t.Name == name && string(id) != excludeID {
				return errors.NewDuplicateNameError(string(kind), name)
			}
		}
	case KindModel:
		for id, m := range s.models {
			if m.Name == name && string(id) != excludeID {
				return errors.NewDuplicateNameError(string(kind), name)
			}
		}
	case KindCategory:
		for id, c := range s.categories {
			if c.Name == name && string(id) != excludeID {
				return errors.NewDuplicateNameError(string(kind), name)
			}
		}
	}
	return nil
}

// tagIDByName resolves a tag name to its id. Caller holds mu.
func (s *Store) tagIDByName(name string) (TagID, bool) {
	for id, t := range s.tags {
		if t.Name == name {
			return id, true
		}
	}
	return "", false
}

// modelIDByName resolves a model name to its id. Caller holds mu.
func (s *Store) modelIDByName(name string) (ModelID, bool) {
	for id, m := range s.models {
		if m.Name == name {
			return id, true
		}
	}
	return "", false
}

// categoryIDByName resolves a category name to its id. Caller holds mu.
func (s *Store) categoryIDByName(name string) (CategoryID, bool) {
	for id, c := range s.categories {
		if c.Name == name {
			return id, true
		}
	}
	return "", false
}

// tagUsageLocked counts active files referencing the tag. Caller holds mu.
func (s *Store) tagUsageLocked(id TagID) int {
	usage := 0
	s.files.ForEachActive(func(f *File) {
		if f.HasTag(id) {
			usage++
		}
	})
	return usage
}

// modelUsageLocked counts active files referencing the model. Caller holds mu.
func (s *Store) modelUsageLocked(id ModelID) int {
	usage := 0
	s.files.ForEachActive(func(f *File) {
		if f.Model == id {
			usage++
		}
	})
	return usage
}

// categoryUsageLocked counts active files in the category. Caller holds mu.
func (s *Store) categoryUsageLocked(id CategoryID) int {
	usage := 0
	s.files.ForEachActive(func(f *File) {
		if f.Category == id {
			usage++
		}
	})
	return usage
}

// tagsSortedLocked returns tags sorted by name. Caller holds mu.
func (s *Store) tagsSortedLocked() []Tag {
	out := make([]Tag, 0, len(s.tags))
	for _, t := range s.tags {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// modelsSortedLocked returns models sorted by name. Caller holds mu.
func (s *Store) modelsSortedLocked() []Model {
	out := make([]Model, 0, len(s.models))
	for _, m := range s.models {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// categoriesSortedLocked returns categories sorted by name. Caller holds mu.
func (s *Store) categoriesSortedLocked() []Category {
	out := make([]Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
