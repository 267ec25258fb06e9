package catalog

// Files is an insertion-ordered collection of file records. Search results
// and listings preserve this order; they are never re-sorted by relevance.
//
// Files has no lock of its own: the owning Store serializes every access
// through its single mutation mutex.
type Files struct {
	order []FileID
	byID  map[FileID]*File
}

// NewFiles creates an empty Files collection.
func NewFiles() *Files {
	return &Files{
		byID: make(map[FileID]*File),
	}
}

// Get returns a file by id and whether it exists. Deleted files are still
// returned; callers decide whether soft-deleted records are visible.
func (fs *Files) Get(id FileID) (*File, bool) {
	f, ok := fs.byID[id]
	return f, ok
}

// Add appends a new file to the collection. Re-adding an existing id
// replaces the record in place without disturbing insertion order.
func (fs *Files) Add(f *File) {
	if _, exists := fs.byID[f.ID]; !exists {
		fs.order = append(fs.order, f.ID)
	}
	fs.byID[f.ID] = f
}

// Len returns the number of records, deleted ones included.
func (fs *Files) Len() int {
	return len(fs.byID)
}

// List returns deep copies of all records in insertion order.
func (fs *Files) List() []File {
	out := make([]File, 0, len(fs.order))
	for _, id := range fs.order {
		out = append(out, fs.byID[id].copy())
	}
	return out
}

// Active returns deep copies of active records in insertion order.
func (fs *Files) Active() []File {
	out := make([]File, 0, len(fs.order))
	for _, id := range fs.order {
		if f := fs.byID[id]; f.Active() {
			out = append(out, f.copy())
		}
	}
	return out
}

// ForEachActive applies fn to each active record in insertion order.
// The callback must not retain or mutate the record.
func (fs *Files) ForEachActive(fn func(f *File)) {
	for _, id := range fs.order {
		if f := fs.byID[id]; f.Active() {
			fn(f)
		}
	}
}

// Copy returns a deep copy of the whole collection.
func (fs *Files) Copy() *Files {
	out := &Files{
		order: make([]FileID, len(fs.order)),
		byID:  make(map[FileID]*File, len(fs.byID)),
	}
	copy(out.order, fs.order)
	for id, f := range fs.byID {
		c := f.copy()
		out.byID[id] = &c
	}
	return out
}
