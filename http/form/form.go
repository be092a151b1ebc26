package form

import (
	"iter"
)

// Data is a single form entry. It is either a text field or a file: files always have
// a non-empty Filename and keep their bytes in Content, while text fields keep their
// decoded value in Value.
type Data struct {
	Name     string
	Filename string
	// Type is the raw Content-Type of the part. It's empty if the part had none, unless
	// the default one is configured.
	Type string
	// Charset is the charset label the part declared, or the configured default. It is
	// informational only, as Value is always decoded as UTF-8. Empty for files.
	Charset string
	Value   string
	// Content is nil for empty files.
	Content []byte
}

// IsFile reports whether the entry is a file.
func (d Data) IsFile() bool {
	return len(d.Filename) > 0
}

// Form is an ordered multimap of entries. Entries with duplicate names are all kept in
// the order they were met in.
type Form []Data

// Name returns the first Data matching the name.
func (f Form) Name(name string) (Data, bool) {
	for data := range f.Names(name) {
		return data, true
	}

	return Data{}, false
}

// Names returns an iterator over all Data matching the name.
func (f Form) Names(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.Name == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}

// Value returns the value of the first text entry matching the name.
func (f Form) Value(name string) (string, bool) {
	for data := range f.Names(name) {
		if !data.IsFile() {
			return data.Value, true
		}
	}

	return "", false
}

// File returns the first Data matching the filename.
func (f Form) File(name string) (Data, bool) {
	for data := range f.Files(name) {
		return data, true
	}

	return Data{}, false
}

// Files returns an iterator over all Data matching the filename.
func (f Form) Files(name string) iter.Seq[Data] {
	return func(yield func(Data) bool) {
		for _, entry := range f {
			if entry.IsFile() && entry.Filename == name {
				if !yield(entry) {
					break
				}
			}
		}
	}
}
