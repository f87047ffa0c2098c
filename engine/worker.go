package engine

// Worker is the leaf of the search tree. It owns a private LIFO stack of
// unexpanded nodes: it pops one, calls model.Expand on it, routes terminal
// children into its local answer list and non-terminal children back onto
// the stack, and spills half the stack back to its hub once it grows past
// maxLen.
type Worker struct {
	model Model

	in  <-chan Message // shared job queue, owned by the hub
	out chan<- Message // this worker's dedicated channel back to its hub

	maxLen int

	stack   []Node
	answers []Node
}

func newWorker(model Model, in <-chan Message, out chan<- Message, maxLen int) *Worker {
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &Worker{model: model, in: in, out: out, maxLen: maxLen}
}

// run drives the worker until it pops a DONE signal off the job queue, then
// drains its answers to the hub and returns.
func (w *Worker) run() {
	for msg := range w.in {
		if msg.Kind == KindDone {
			break
		}
		if msg.Kind != KindNode {
			panic(&BadSignalError{Context: "worker", Expected: KindNode, Got: msg.Kind})
		}

		w.stack = append(w.stack, msg.Node)
		w.out <- Message{Kind: KindBusy}

		for len(w.stack) > 0 {
			node := w.stack[len(w.stack)-1]
			w.stack = w.stack[:len(w.stack)-1]

			w.expand(node)

			if len(w.stack) > w.maxLen {
				w.spill()
			}
		}

		w.out <- Message{Kind: KindIdle}
	}

	w.out <- Message{Kind: KindAnswers, Answers: w.answers}
}

func (w *Worker) expand(node Node) {
	for _, child := range w.model.Expand(node) {
		if child.IsTerminal() {
			w.answers = append(w.answers, child)
		} else {
			w.stack = append(w.stack, child)
		}
	}
}

// spill pushes half of the stack back onto the hub's job queue, the load
// balancing mechanism that keeps one worker from hoarding an entire subtree
// while siblings sit idle.
func (w *Worker) spill() {
	n := len(w.stack) / 2
	for i := 0; i < n; i++ {
		last := len(w.stack) - 1
		node := w.stack[last]
		w.stack = w.stack[:last]
		w.out <- Message{Kind: KindNode, Node: node}
	}
}
