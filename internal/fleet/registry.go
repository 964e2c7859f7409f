package fleet

import (
	"fmt"

	"github.com/fleetmon/fleetmon/internal/lg"
	"github.com/fleetmon/fleetmon/pkg/store"
)

// document is the top-level shape of the node list.
type document struct {
	Nodes []NodeSpec `yaml:"nodes" bson:"nodes"`
}

// Registry loads the declarative node list from a document store.
//
// Load never fails past its boundary: a missing file, a malformed document or
// any other store error degrades to an empty node list with the cause logged,
// so the caller decides whether an empty fleet is fatal.
type Registry struct {
	store store.DocumentStore
	log   lg.Logger
}

func NewRegistry(st store.DocumentStore, logger lg.Logger) *Registry {
	if logger == nil {
		logger = lg.Discard
	}
	return &Registry{store: st, log: logger}
}

// Load returns the validated node list in file order. Nodes that fail
// validation are reported and excluded; they never reach the dispatcher.
func (r *Registry) Load() []NodeSpec {
	var doc document
	if err := r.store.Load(&doc); err != nil {
		r.log.Error("failed to load node list", lg.Err(err))
		return nil
	}

	nodes := make([]NodeSpec, 0, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if err := ValidateNode(n); err != nil {
			r.log.Error("invalid node excluded", lg.Err(err))
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// Watch invokes onChange whenever the backing document changes. Stores
// without change notification (e.g. MongoDB) return an error.
func (r *Registry) Watch(onChange func()) error {
	w, ok := r.store.(store.Watcher)
	if !ok {
		return fmt.Errorf("store %T does not support watching", r.store)
	}
	return w.Watch(onChange)
}
