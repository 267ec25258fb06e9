package catalog

// Stats is a summary of the committed catalog state. Totals count catalog
// entries (active files, preset entities), and the usage maps carry the
// derived reference count for every preset entity, zero included.
//
// Stats are fully recomputed from a scan of active files after every
// committed mutation, never incrementally patched, so they cannot drift from
// the true counts.
type Stats struct {
	TotalFiles      int `json:"total_files" yaml:"total_files"`
	TotalTags       int `json:"total_tags" yaml:"total_tags"`
	TotalModels     int `json:"total_models" yaml:"total_models"`
	TotalCategories int `json:"total_categories" yaml:"total_categories"`

	TagUsage      map[TagID]int      `json:"tag_usage" yaml:"tag_usage"`
	ModelUsage    map[ModelID]int    `json:"model_usage" yaml:"model_usage"`
	CategoryUsage map[CategoryID]int `json:"category_usage" yaml:"category_usage"`
}

// copy returns a deep copy of the stats.
func (st Stats) copy() Stats {
	out := st
	out.TagUsage = make(map[TagID]int, len(st.TagUsage))
	for id, n := range st.TagUsage {
		out.TagUsage[id] = n
	}
	out.ModelUsage = make(map[ModelID]int, len(st.ModelUsage))
	for id, n := range st.ModelUsage {
		out.ModelUsage[id] = n
	}
	out.CategoryUsage = make(map[CategoryID]int, len(st.CategoryUsage))
	for id, n := range st.CategoryUsage {
		out.CategoryUsage[id] = n
	}
	return out
}

// Stats returns a copy of the current summary counters and usage maps.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.copy()
}

// recountLocked recomputes the stats from a full scan of active files.
// Cost is O(files x average references per file), which is fine at the
// expected scale of hundreds to low thousands of files. Caller holds mu.
func (s *Store) recountLocked() {
	st := Stats{
		TotalTags:       len(s.tags),
		TotalModels:     len(s.models),
		TotalCategories: len(s.categories),
		TagUsage:        make(map[TagID]int, len(s.tags)),
		ModelUsage:      make(map[ModelID]int, len(s.models)),
		CategoryUsage:   make(map[CategoryID]int, len(s.categories)),
	}

	// Seed zeros so every preset entity appears in its usage map.
	for id := range s.tags {
		st.TagUsage[id] = 0
	}
	for id := range s.models {
		st.ModelUsage[id] = 0
	}
	for id := range s.categories {
		st.CategoryUsage[id] = 0
	}

	s.files.ForEachActive(func(f *File) {
		st.TotalFiles++
		for _, tid := range f.Tags {
			st.TagUsage[tid]++
		}
		if f.Model != "" {
			st.ModelUsage[f.Model]++
		}
		if f.Category != "" {
			st.CategoryUsage[f.Category]++
		}
	})

	s.stats = st
}
