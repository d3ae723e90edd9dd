package walk

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"runtime"
	"sort"
	"sync"

	"github.com/npillmayer/syntree"
)

// Tree operations are carried out by concurrent worker goroutines. As tree
// operations may be chained, a pipeline of filter stages is constructed.
// Every chained operation is reflected by a filter stage. Filters read nodes
// from an input channel and put processed nodes on an output channel. This
// way we create a little pipes&filters design.
//
// Filter stages operate concurrently, each with a small pool of workers. An
// overall counter tracks the number of active work packages (i.e. nodes) in
// the pipeline. As soon as the number of packages drops to zero, a watchdog
// closes all channels (pipes) and the workers terminate.
//
// Every filter performs a specific task, reflected by a workerTask function.
// Filter tasks may use additional data, provided as an untyped filterdata
// argument; tasks are responsible for decoding their specific filterdata.
// Errors occurring in filter tasks are sent to a pipeline-global error
// channel, which holds a bounded backlog of recent errors.

// Minimum and maximum number of concurrent workers for a tree operation
// (filter).
const (
	minWorkerCount int = 3
	maxWorkerCount int = 10
)

// Maximum length of the internal buffer channel of a filter.
const maxBufferLength int = 128

// Workers will be tasked a series of workerTasks.
//
// node: input tree node
// buffered: is the input node from this stage's buffer queue?
// filterdata: additional data the filter was created with
// emit: function to emit a result node to the next stage
// requeue: function to re-schedule a node on the local buffer queue
//
// Does not return anything except a possible error condition.
type workerTask func(node syntree.Syntax, buffered bool, filterdata interface{},
	emit func(syntree.Syntax), requeue func(syntree.Syntax)) error

// filter is a stage of the overall pipeline, processing input nodes and
// producing result nodes. Filters perform concurrently.
type filter struct {
	results    chan<- nodePackage // results of this filter (pipeline stage)
	queue      chan nodePackage   // helper queue for re-scheduling, if necessary
	task       workerTask         // the task this filter performs
	filterdata interface{}        // information needed to perform the task
	env        *filterenv         // connection to the outside world
}

// nodePackage is the type which is transported in a pipeline. Each stage
// emits instances of this type to the next stage.
type nodePackage struct {
	node syntree.Syntax
	ord  ordKey // document-order key for sorting results
}

func pack(node syntree.Syntax) nodePackage {
	return nodePackage{node: node, ord: ordOf(node)}
}

// filterenv holds information about the outside world to be referenced by a
// filter: input workload, error destination and the counter for overall work
// on the pipeline.
type filterenv struct {
	input        <-chan nodePackage // work to do for this filter, connected to predecessor
	errors       chan<- error       // where errors are reported to
	queuecounter *sync.WaitGroup    // counter for overall work load
}

// newFilter creates a new pipeline stage, i.e. a filter fed from an input
// channel and putting processed nodes into an output channel. buflen > 0
// requests a helper queue for tasks which need to re-schedule nodes.
func newFilter(task workerTask, filterdata interface{}, buflen int) *filter {
	f := &filter{task: task, filterdata: filterdata}
	if buflen > 0 {
		if buflen > maxBufferLength {
			buflen = maxBufferLength
		}
		f.queue = make(chan nodePackage, buflen)
	}
	return f
}

// start sets the environment for a filter and starts its workers. Returns
// the results channel, which will be input to the next stage.
func (f *filter) start(env *filterenv) chan nodePackage {
	f.env = env
	res := make(chan nodePackage, 3) // output channel has to be in place before workers start
	f.results = res
	n := runtime.NumCPU()
	if n > maxWorkerCount {
		n = maxWorkerCount
	} else if n < minWorkerCount {
		n = minWorkerCount
	}
	for i := 0; i < n; i++ {
		wno := i + 1
		if f.queue == nil {
			go filterWorker(f, wno) // startup worker no. #wno
		} else {
			go filterWorkerWithQueue(f, wno) // startup worker no. #wno
		}
	}
	return res // needed r/w for next filter in pipe
}

// shutdown closes the channels owned by this filter stage. Only the
// pipeline watchdog calls this, after the workload counter dropped to zero.
func (f *filter) shutdown() {
	close(f.results)
	if f.queue != nil {
		close(f.queue)
	}
}

// filterWorker is the default worker function. Each filter starts a small
// pool of them.
//
// Each worker is identified through a worker number 'wno'.
func filterWorker(f *filter, wno int) {
	emit := func(node syntree.Syntax) { // worker will use this to hand results to the next stage
		f.pushResult(node)
	}
	for pkg := range f.env.input { // get work packages until drained
		err := f.task(pkg.node, false, f.filterdata, emit, nil)
		if err != nil {
			pushError(f.env.errors, err) // signal error to caller
		}
		tracer().Debugf("filter stage worker #%d finished task for %v", wno, pkg.node)
		f.env.queuecounter.Done() // worker has finished a work package
	}
}

// filterWorkerWithQueue is a worker function for filters with a buffer
// queue. The buffer queue is used to re-schedule nodes until they are
// completely processed, e.g. for descending a subtree level by level.
func filterWorkerWithQueue(f *filter, wno int) {
	emit := func(node syntree.Syntax) {
		f.pushResult(node)
	}
	requeue := func(node syntree.Syntax) {
		f.pushBuffer(node)
	}
	for {
		var pkg nodePackage
		var buffered bool
		select { // get upstream work packages and buffered work packages until drained
		case pkg = <-f.env.input:
			buffered = false
		case pkg = <-f.queue:
			buffered = true
		}
		if pkg.node.Raw() == nil {
			break // channels closed, no more work to do
		}
		err := f.task(pkg.node, buffered, f.filterdata, emit, requeue)
		if err != nil {
			pushError(f.env.errors, err) // signal error to caller
		}
		tracer().Debugf("filter stage worker #%d finished buffered task for %v", wno, pkg.node)
		f.env.queuecounter.Done() // worker has finished a work package
	}
}

// pushResult puts a node on the results channel of a filter stage
// (non-blocking). It is used by filter workers to communicate a result to
// the next stage of the pipeline.
func (f *filter) pushResult(node syntree.Syntax) {
	tracer().Debugf("filter stage pushes result %v", node)
	f.env.queuecounter.Add(1)
	pkg := pack(node)
	select { // try to send it synchronously without blocking
	case f.results <- pkg:
	default: // nope, we'll have to go async
		go func() {
			f.results <- pkg
		}()
	}
}

// pushBuffer puts a node on the buffer queue of a filter (non-blocking).
func (f *filter) pushBuffer(node syntree.Syntax) {
	tracer().Debugf("filter stage buffers node %v", node)
	f.env.queuecounter.Add(1) // overall workload increases
	pkg := pack(node)
	select { // try to send it synchronously without blocking
	case f.queue <- pkg:
	default: // nope, we'll have to go async
		go func() {
			f.queue <- pkg
		}()
	}
}

// pushError puts an error on an error channel (non-blocking). Error channels
// hold a bounded backlog; when the backlog is full, err is dropped. A worker
// holding a work package must never stall on error reporting, or the
// workload count could not drop back to zero.
func pushError(errch chan<- error, err error) {
	select { // try to send it without blocking
	case errch <- err:
	default: // backlog is full, drop err
		tracer().Debugf("error backlog is full, dropping: %v", err)
	}
}

// --- Pipeline of filters ----------------------------------------------------

// pipeline is a chain of filters to perform tasks on nodes. Filters, i.e.
// pipeline stages, are connected by channels.
type pipeline struct {
	sync.Mutex                     // to synchronize access to various fields
	queuecount sync.WaitGroup      // overall count of work packages
	errors     chan error          // collector channel for error messages
	stages     []*filter           // chain of filter stages
	input      chan nodePackage    // initial workload
	results    chan nodePackage    // where the final output of the pipeline goes to
	running    bool                // is this pipeline processing?
}

// newPipeline creates an empty pipeline.
func newPipeline() *pipeline {
	pipe := &pipeline{}
	pipe.errors = make(chan error, 20)
	pipe.input = make(chan nodePackage, 10)
	pipe.results = pipe.input // short-circuit, will be re-wired by filters
	return pipe
}

// appendFilter appends a filter as the last stage of the pipeline. Connects
// input- and output-channels appropriately and sets an environment for the
// filter.
func (pipe *pipeline) appendFilter(f *filter) {
	tracer().Debugf("append tree filter")
	pipe.Lock()
	defer pipe.Unlock()
	pipe.stages = append(pipe.stages, f)
	env := &filterenv{} // now set the environment for the filter
	env.errors = pipe.errors
	env.queuecounter = &pipe.queuecount
	env.input = pipe.results       // current output is input to the new filter stage
	pipe.results = f.start(env)    // remember the new final output
}

// startProcessing starts a watchdog goroutine which waits for the overall
// number of work packages to drop to zero. The watchdog will then close all
// channels, terminating the workers of every stage.
//
// Pre-requisite: at least one node in the front input channel.
func (pipe *pipeline) startProcessing() {
	pipe.Lock()
	defer pipe.Unlock()
	if !pipe.running {
		pipe.running = true
		go func() { // cleanup function
			pipe.queuecount.Wait() // wait for empty queues
			close(pipe.errors)
			close(pipe.input)
			for _, f := range pipe.stages {
				f.shutdown()
			}
		}()
	}
}

// pushSync synchronously puts a node on the input channel of the pipeline.
func (pipe *pipeline) pushSync(node syntree.Syntax) {
	pipe.queuecount.Add(1)
	pipe.input <- pack(node) // input q is buffered
}

// waitForCompletion blocks until all work packages of a pipeline are done.
// It receives the results of the final filter stage and collects them into a
// slice of nodes. The slice will be a set, i.e. not contain duplicate nodes,
// and is sorted in document order.
func waitForCompletion(results <-chan nodePackage, errch <-chan error, counter *sync.WaitGroup) ([]syntree.Syntax, error) {
	m := make(map[nodeKey]nodePackage) // intermediate map to suppress duplicates
	for pkg := range results {         // drain results channel
		m[keyOf(pkg)] = pkg
		counter.Done() // we removed a work package => count down
	}
	var selection []syntree.Syntax // slice of nodes -> return value
	var ords []ordKey              // slice of order keys for sorting
	for _, pkg := range m {        // extract unique results into slices
		selection = append(selection, pkg.node)
		ords = append(ords, pkg.ord)
	}
	sort.Sort(resultSlices{selection, ords})
	// get the last error from the error channel
	var lasterror error
	for err := range errch {
		if err != nil {
			lasterror = err // throw away all errors but the last one
		}
	}
	return selection, lasterror
}
