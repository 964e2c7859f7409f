// Package store abstracts where declarative documents (such as the fleet's
// node list) live: a YAML file on disk or a MongoDB document.
package store

// DocumentStore loads and saves one structured document.
type DocumentStore interface {
	Load(out any) error
	Save(in any) error
}

// Watcher is implemented by stores that can report document changes.
type Watcher interface {
	Watch(onChange func()) error
}
