package engine

import (
	"fmt"
	"runtime"
)

// HubDivision specifies the hub structure of a search: each element is one
// hub, and its value is that hub's worker count. []int{4, 4, 2} means three
// hubs with 4, 4, and 2 workers respectively.
type HubDivision []int

// Master owns the global task counter and the job queue shared by every
// hub. The counter starts at 1 (the root node) and is adjusted by every
// IDLE/NODE report from a hub; it reaches zero exactly when no node is
// alive anywhere in the tree, at which point the master broadcasts DONE and
// collects the final answers.
type Master struct {
	queue  chan Message
	hubOut []chan Message

	idleHubs  int
	tasksBusy int
	answers   []Node
}

// Run starts the hubs described by division and runs model's search tree to
// completion, returning every terminal node found. maxLen configures the
// L_worker/L_hub backpressure threshold (see Hub.spill and Worker.spill); a
// non-positive value uses the engine default of 10.
//
// A malformed message anywhere in the tree aborts the whole search: Run
// returns a non-nil error and no partial answers, per the source's
// "complete the search or die" contract.
func Run(model Model, division HubDivision, maxLen int) (answers []Node, err error) {
	if len(division) == 0 {
		return nil, nil
	}

	defer func() {
		if r := recover(); r != nil {
			answers = nil
			if be, ok := r.(*BadSignalError); ok {
				err = be
				return
			}
			err = fmt.Errorf("engine: fatal: %v", r)
		}
	}()

	errCh := make(chan error, 1)

	m := &Master{
		queue:     make(chan Message, chanBuf),
		idleHubs:  len(division),
		tasksBusy: 1,
	}
	m.queue <- Message{Kind: KindNode, Node: model.Root()}

	for _, workers := range division {
		hubOut := make(chan Message, chanBuf)
		m.hubOut = append(m.hubOut, hubOut)

		h := newHub(model, m.queue, hubOut, workers, maxLen, errCh)
		go func() {
			defer recoverFatal(errCh)
			h.run()
		}()
	}

	for m.tasksBusy > 0 {
		select {
		case err := <-errCh:
			return nil, err
		default:
		}
		if !m.handleHubs() {
			runtime.Gosched()
		}
	}

	for range m.hubOut {
		m.queue <- Message{Kind: KindDone}
	}

	for _, hOut := range m.hubOut {
		select {
		case err := <-errCh:
			return nil, err
		case msg := <-hOut:
			if msg.Kind != KindAnswers {
				return nil, &BadSignalError{Context: "master", Expected: KindAnswers, Got: msg.Kind}
			}
			m.answers = append(m.answers, msg.Answers...)
		}
	}

	return m.answers, nil
}

// handleHubs retrieves at most one message from each hub's channel and
// folds it into the master's task counter. It reports whether any message
// was actually processed, so the caller can yield the processor instead of
// spinning when every hub is momentarily quiet.
func (m *Master) handleHubs() bool {
	progress := false
	for _, hOut := range m.hubOut {
		select {
		case msg := <-hOut:
			progress = true
			switch msg.Kind {
			case KindNode:
				m.queue <- msg
				m.tasksBusy++
			case KindIdle:
				m.idleHubs++
				m.tasksBusy -= msg.Accepted
				if m.tasksBusy < 0 {
					panic("engine: master task counter went negative — a hub over-reported its accepted count")
				}
			case KindBusy:
				m.idleHubs--
			default:
				panic(&BadSignalError{Context: "master", Expected: KindIdle, Got: msg.Kind})
			}
		default:
		}
	}
	return progress
}
