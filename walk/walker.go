package walk

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"errors"
	"sync"

	"github.com/npillmayer/syntree"
)

// ErrInvalidFilter is thrown if a pipeline filter step is defunct, e.g. a
// nil predicate.
var ErrInvalidFilter = errors.New("filter stage is invalid")

// ErrEmptyTree is thrown if a Walker is called for an empty tree. Refer to
// the documentation of NewWalker() for details about this scenario.
var ErrEmptyTree = errors.New("cannot walk empty tree")

// ErrNoMoreFiltersAccepted is thrown if a client already called Promise(),
// but tried to re-use the walker with another filter.
var ErrNoMoreFiltersAccepted = errors.New("in promise mode; will not accept new filters; use a new walker")

// Walker holds information for operating on trees: finding nodes and doing
// work on them. Clients usually create a Walker for a (sub-)tree to search
// for a selection of nodes matching certain criteria, and then perform some
// operation on this selection.
//
// A Walker will eventually return two client-level values: a slice of syntax
// nodes and the last error occurred. These are accessed through a
// Promise-object, which represents future values for the two fields.
//
// A typical usage of a Walker looks like this ("FindNodesAndDoSomething()"
// is a placeholder for a chain of function calls):
//
//	w := walk.NewWalker(node)
//	future := w.FindNodesAndDoSomething(…).Promise()
//	nodes, err := future()
//
// ATTENTION: Clients must call Promise() as the final link of the DSL
// expression chain, even if they do not expect the expression to return a
// non-empty set of nodes. Firstly, they need to check for errors, and
// secondly without fetching the (possibly empty) result set by calling the
// promise, the Walker may leak goroutines.
//
// A walker is a one-shot object. Once Promise() has been called, chaining
// further operations onto the walker is a usage error and will panic with
// ErrNoMoreFiltersAccepted.
type Walker struct {
	sync.Mutex
	initial   syntree.Syntax                   // initial node of (sub-)tree
	pipe      *pipeline                        // pipeline of filters to perform work on tree nodes
	promising bool                             // client has called Promise()
	future    func() ([]syntree.Syntax, error) // memoized promise
}

// NewWalker creates a Walker for the initial node of a (sub-)tree. The first
// chained filter will have this initial node as input. A walker without any
// chained operation selects just its initial node.
//
// If initial is the zero Syntax, NewWalker will return a nil-Walker,
// resulting in a NOP-pipeline of operations, and a promise returning an
// empty set of nodes and ErrEmptyTree.
func NewWalker(initial syntree.Syntax) *Walker {
	if initial.Raw() == nil {
		return nil
	}
	tracer().Debugf("new tree walker, initial node = %v", initial)
	return &Walker{initial: initial, pipe: newPipeline()}
}

// appendFilterForTask creates a new filter for a task and appends it at the
// end of the pipeline.
func (w *Walker) appendFilterForTask(task workerTask, filterdata interface{}, buflen int) error {
	w.Lock()
	defer w.Unlock()
	if w.promising {
		return ErrNoMoreFiltersAccepted
	}
	w.pipe.appendFilter(newFilter(task, filterdata, buflen))
	return nil
}

// appendErrorForTask records a defunct filter argument with the pipeline's
// error channel. Like appendFilterForTask it respects the one-shot nature of
// walkers: after Promise() has been called, not even defunct filters are
// accepted.
func (w *Walker) appendErrorForTask(err error) error {
	w.Lock()
	defer w.Unlock()
	if w.promising {
		return ErrNoMoreFiltersAccepted
	}
	pushError(w.pipe.errors, err)
	return nil
}

// Promise is a future synchronisation point. Walkers perform their tasks
// asynchronously; clients will not receive the resulting node list
// immediately, but rather get handed a Promise. Clients will then, any time
// after they received the Promise, call it to receive a slice of nodes and a
// possible error value. Calling the Promise will block until all concurrent
// operations on the tree nodes have finished, i.e. it is a synchronization
// point.
//
// The resulting nodes are in document order: sorted by source position,
// parents before their children.
func (w *Walker) Promise() func() ([]syntree.Syntax, error) {
	if w == nil {
		// empty walker => return nil set and an error
		return func() ([]syntree.Syntax, error) {
			return nil, ErrEmptyTree
		}
	}
	w.Lock()
	defer w.Unlock()
	if w.future == nil {
		w.promising = true // blocks attempts to chain further filters
		errch := w.pipe.errors
		results := w.pipe.results
		counter := &w.pipe.queuecount
		w.pipe.pushSync(w.initial) // feed the initial node before the watchdog runs
		w.pipe.startProcessing()
		signal := make(chan struct{})
		var selection []syntree.Syntax
		var lasterror error
		go func() {
			defer close(signal)
			selection, lasterror = waitForCompletion(results, errch, counter)
		}()
		w.future = func() ([]syntree.Syntax, error) {
			<-signal
			return selection, lasterror
		}
	}
	return w.future
}

// ----------------------------------------------------------------------

// Predicate is a function type to match against nodes of a tree. It is used
// as an argument for various Walker functions to collect a selection of
// nodes.
type Predicate func(syntree.Syntax) (matches bool, err error)

// Whatever is a predicate to match anything (see type Predicate). It is
// useful to match the first node in a given direction.
func Whatever() Predicate {
	return func(syntree.Syntax) (bool, error) {
		return true, nil
	}
}

// NodeIsLeaf is a predicate to match nodes without children.
func NodeIsLeaf() Predicate {
	return func(s syntree.Syntax) (bool, error) {
		return s.NumChildren() == 0, nil
	}
}

// NodeIsKind matches nodes carrying the given kind tag.
func NodeIsKind(k syntree.Kind) Predicate {
	return func(s syntree.Syntax) (bool, error) {
		return s.Kind() == k, nil
	}
}

// NodeIsToken matches token nodes, i.e. leafs carrying source text.
func NodeIsToken() Predicate {
	return func(s syntree.Syntax) (bool, error) {
		return s.IsToken(), nil
	}
}

// NodeIsCollection matches nodes whose kind has been registered as a
// collection kind (see rawsyntax.RegisterCollectionKinds).
func NodeIsCollection() Predicate {
	return func(s syntree.Syntax) (bool, error) {
		return s.Kind().IsCollection(), nil
	}
}

// ----------------------------------------------------------------------

// Parent returns the parent node of the selected nodes.
//
// If w is nil, Parent will return nil.
func (w *Walker) Parent() *Walker {
	if w == nil {
		return nil
	}
	if err := w.appendFilterForTask(parentTask, nil, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

// parentTask is a very simple filter task to retrieve the parent of a tree
// node. For the tree root, parentTask will not produce a result.
func parentTask(node syntree.Syntax, _ bool, _ interface{}, emit func(syntree.Syntax), _ func(syntree.Syntax)) error {
	if p, ok := node.Parent(); ok {
		emit(p) // forward parent node to next pipeline stage
	}
	return nil
}

// AncestorWith finds an ancestor matching the given predicate. The search
// does not include the start node.
//
// If w is nil, AncestorWith will return nil.
func (w *Walker) AncestorWith(predicate Predicate) *Walker {
	if w == nil {
		return nil
	}
	if predicate == nil {
		if err := w.appendErrorForTask(ErrInvalidFilter); err != nil {
			tracer().Errorf(err.Error())
			panic(err)
		}
		return w
	}
	if err := w.appendFilterForTask(ancestorWith, predicate, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

// ancestorWith searches iteratively for an ancestor node matching a
// predicate. Emits the first match, if any.
func ancestorWith(node syntree.Syntax, _ bool, filterdata interface{}, emit func(syntree.Syntax), _ func(syntree.Syntax)) error {
	predicate := filterdata.(Predicate)
	anc, ok := node.Parent()
	for ok {
		matches, err := predicate(anc)
		if err != nil {
			return err
		}
		if matches {
			emit(anc) // put ancestor on output channel for next pipeline stage
			return nil
		}
		anc, ok = anc.Parent()
	}
	return nil // no matching ancestor found, not an error
}

// DescendentsWith finds descendents matching a predicate. The search does
// not include the start node.
//
// If w is nil, DescendentsWith will return nil.
func (w *Walker) DescendentsWith(predicate Predicate) *Walker {
	if w == nil {
		return nil
	}
	if predicate == nil {
		if err := w.appendErrorForTask(ErrInvalidFilter); err != nil {
			tracer().Errorf(err.Error())
			panic(err)
		}
		return w
	}
	if err := w.appendFilterForTask(descendentsWith, predicate, 5); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func descendentsWith(node syntree.Syntax, buffered bool, filterdata interface{}, emit func(syntree.Syntax), requeue func(syntree.Syntax)) error {
	if buffered {
		predicate := filterdata.(Predicate)
		matches, err := predicate(node)
		tracer().Debugf("predicate for node %v returned: %v, err=%v", node, matches, err)
		if err != nil {
			return err // do not descend further
		}
		if matches {
			emit(node) // found one, put on output channel for next pipeline stage
		}
	}
	revisitChildrenOf(node, requeue)
	return nil
}

// revisitChildrenOf re-schedules all children of a node on the buffer queue
// of the current filter stage.
func revisitChildrenOf(node syntree.Syntax, requeue func(syntree.Syntax)) {
	for i := 0; i < node.NumChildren(); i++ {
		requeue(node.Child(i))
	}
}

// AllDescendents traverses all descendents. The traversal does not include
// the start node. This is just a wrapper around w.DescendentsWith(Whatever).
//
// If w is nil, AllDescendents will return nil.
func (w *Walker) AllDescendents() *Walker {
	return w.DescendentsWith(Whatever())
}

// Filter calls a client-provided predicate on each node of the selection and
// keeps the nodes for which the predicate holds.
//
// If w is nil, Filter will return nil.
func (w *Walker) Filter(f Predicate) *Walker {
	if w == nil {
		return nil
	}
	if f == nil {
		if err := w.appendErrorForTask(ErrInvalidFilter); err != nil {
			tracer().Errorf(err.Error())
			panic(err)
		}
		return w
	}
	if err := w.appendFilterForTask(clientFilter, f, 0); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func clientFilter(node syntree.Syntax, _ bool, filterdata interface{}, emit func(syntree.Syntax), _ func(syntree.Syntax)) error {
	predicate := filterdata.(Predicate)
	matches, err := predicate(node)
	if err != nil {
		return err
	}
	if matches {
		emit(node) // forward filtered node to next pipeline stage
	}
	return nil
}

// Action is a function type to operate on tree nodes. Resulting nodes will
// be pushed to the next pipeline stage, if no error occurred. Actions may
// return the zero Syntax to produce no output for a node.
type Action func(syntree.Syntax) (syntree.Syntax, error)

// TopDown traverses a tree starting at (and including) the start node. The
// traversal guarantees that parents are always processed before their
// children.
//
// If the action function returns an error for a node, descending the branch
// below this node is aborted.
//
// If w is nil, TopDown will return nil.
func (w *Walker) TopDown(action Action) *Walker {
	if w == nil {
		return nil
	}
	if action == nil {
		if err := w.appendErrorForTask(ErrInvalidFilter); err != nil {
			tracer().Errorf(err.Error())
			panic(err)
		}
		return w
	}
	if err := w.appendFilterForTask(topDown, action, 5); err != nil {
		tracer().Errorf(err.Error())
		panic(err)
	}
	return w
}

func topDown(node syntree.Syntax, buffered bool, filterdata interface{}, emit func(syntree.Syntax), requeue func(syntree.Syntax)) error {
	if !buffered {
		requeue(node) // simply move incoming nodes over to the buffer queue
		return nil
	}
	action := filterdata.(Action)
	result, err := action(node)
	tracer().Debugf("action for node %v returned: %v, err=%v", node, result, err)
	if err != nil {
		return err // do not descend below this node
	}
	if result.Raw() != nil {
		emit(result) // result -> next pipeline stage
	}
	revisitChildrenOf(node, requeue)
	return nil
}
