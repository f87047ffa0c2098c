package engine

// Hub sits between the master and a pool of workers. All of a hub's workers
// pull from one shared job queue (hub.queue); each worker reports back on
// its own dedicated channel so the hub can poll every worker without
// blocking on any single one. The hub itself is a client of the master's
// shared job queue, competing with every other hub for nodes.
type Hub struct {
	model Model

	in  <-chan Message // the master's shared job queue
	out chan<- Message // this hub's dedicated channel back to the master

	queue      chan Message   // job queue feeding this hub's own workers
	workerOut  []chan Message // one per worker, worker -> hub
	numWorkers int
	maxLen     int

	errCh chan<- error

	answers       []Node
	idle          bool
	done          bool
	idleWorkers   int
	tasksBusy     int
	tasksAccepted int
}

func newHub(model Model, in <-chan Message, out chan<- Message, numWorkers, maxLen int, errCh chan<- error) *Hub {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &Hub{
		model:       model,
		in:          in,
		out:         out,
		queue:       make(chan Message, chanBuf),
		numWorkers:  numWorkers,
		maxLen:      maxLen,
		errCh:       errCh,
		idle:        true,
		idleWorkers: numWorkers,
	}
}

// run starts this hub's workers and drives the hub state machine until the
// master signals DONE, then collects every worker's answers and reports them
// upward.
func (h *Hub) run() {
	for i := 0; i < h.numWorkers; i++ {
		wOut := make(chan Message, chanBuf)
		h.workerOut = append(h.workerOut, wOut)
		w := newWorker(h.model, h.queue, wOut, h.maxLen)
		go func() {
			defer recoverFatal(h.errCh)
			w.run()
		}()
	}

	h.getItem(true)

	for !h.done {
		h.getItem(false)
		if h.idle {
			continue
		}
		if h.done {
			break
		}

		h.handleWorkers()

		if !h.idle && h.tasksBusy == 0 {
			h.out <- Message{Kind: KindIdle, Accepted: h.tasksAccepted}
			h.tasksAccepted = 0
			h.idle = true
		}

		for h.tasksBusy > len(h.workerOut) {
			if len(h.queue) > h.maxLen {
				h.spill()
			}
			h.handleWorkers()
		}
	}

	for range h.workerOut {
		h.queue <- Message{Kind: KindDone}
	}

	for _, wOut := range h.workerOut {
		msg := <-wOut
		if msg.Kind != KindAnswers {
			panic(&BadSignalError{Context: "hub", Expected: KindAnswers, Got: msg.Kind})
		}
		h.answers = append(h.answers, msg.Answers...)
	}

	h.out <- Message{Kind: KindAnswers, Answers: h.answers}
}

// getItem tries to pull one message off the master's shared job queue.
// When block is false it polls and returns immediately if nothing is ready,
// mirroring the source's non-blocking get() used once the hub has work of
// its own to do.
func (h *Hub) getItem(block bool) {
	if block {
		h.dispatch(<-h.in)
		return
	}
	select {
	case msg := <-h.in:
		h.dispatch(msg)
	default:
	}
}

func (h *Hub) dispatch(msg Message) {
	switch msg.Kind {
	case KindNode:
		h.queue <- msg
		h.tasksAccepted++
		h.tasksBusy++
		if h.idle {
			h.out <- Message{Kind: KindBusy}
			h.idle = false
		}
	case KindDone:
		h.done = true
	default:
		panic(&BadSignalError{Context: "hub", Expected: KindNode, Got: msg.Kind})
	}
}

// handleWorkers retrieves at most one message from each worker's channel and
// folds it into hub-level state. qsize-style backpressure decisions below
// tolerate this being an approximate, one-message-per-worker-per-call
// snapshot rather than an exhaustive drain.
func (h *Hub) handleWorkers() {
	for _, wOut := range h.workerOut {
		select {
		case msg := <-wOut:
			switch msg.Kind {
			case KindNode:
				h.queue <- msg
				h.tasksBusy++
			case KindIdle:
				h.idleWorkers++
				h.tasksBusy--
			case KindBusy:
				h.idleWorkers--
			case KindAnswers:
				h.answers = append(h.answers, msg.Answers...)
			default:
				panic(&BadSignalError{Context: "hub", Expected: KindNode, Got: msg.Kind})
			}
		default:
		}
	}
}

// spill returns half of this hub's queued work to the master so an idle
// sibling hub can pick it up.
func (h *Hub) spill() {
	n := len(h.queue) / 2
	for i := 0; i < n; i++ {
		select {
		case item := <-h.queue:
			h.tasksBusy--
			h.out <- item
		default:
			return
		}
	}
}
