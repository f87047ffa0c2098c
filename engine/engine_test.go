package engine

import (
	"fmt"
	"sort"
	"testing"
)

// countNode is a trivial search tree: a full binary tree of fixed depth,
// whose leaves are terminal. It exercises the engine without any
// problem-specific branching logic.
type countNode struct {
	path     string
	depth    int
	terminal bool
}

func (n *countNode) IsTerminal() bool { return n.terminal }

type countModel struct {
	maxDepth int
}

func (m *countModel) Root() Node {
	return &countNode{path: "", depth: 0}
}

func (m *countModel) Expand(n Node) []Node {
	cn := n.(*countNode)
	if cn.depth >= m.maxDepth {
		return []Node{&countNode{path: cn.path, depth: cn.depth, terminal: true}}
	}
	return []Node{
		&countNode{path: cn.path + "0", depth: cn.depth + 1},
		&countNode{path: cn.path + "1", depth: cn.depth + 1},
	}
}

func leafPaths(t *testing.T, answers []Node) []string {
	t.Helper()
	var paths []string
	for _, a := range answers {
		paths = append(paths, a.(*countNode).path)
	}
	sort.Strings(paths)
	return paths
}

func TestRunSequentialFindsAllLeaves(t *testing.T) {
	model := &countModel{maxDepth: 4}
	answers, err := Run(model, HubDivision{1}, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(answers) != 1<<4 {
		t.Fatalf("got %d leaves, want %d", len(answers), 1<<4)
	}
}

func TestRunParallelMatchesSequential(t *testing.T) {
	model := &countModel{maxDepth: 5}
	seq, err := Run(model, HubDivision{1}, 10)
	if err != nil {
		t.Fatalf("Run (sequential): %v", err)
	}
	par, err := Run(model, HubDivision{3, 2}, 4)
	if err != nil {
		t.Fatalf("Run (parallel): %v", err)
	}

	seqPaths := leafPaths(t, seq)
	parPaths := leafPaths(t, par)
	if len(seqPaths) != len(parPaths) {
		t.Fatalf("sequential found %d leaves, parallel found %d", len(seqPaths), len(parPaths))
	}
	for i := range seqPaths {
		if seqPaths[i] != parPaths[i] {
			t.Fatalf("leaf set differs at %d: sequential %q, parallel %q", i, seqPaths[i], parPaths[i])
		}
	}
}

func TestRunEmptyDivisionReturnsNothing(t *testing.T) {
	model := &countModel{maxDepth: 2}
	answers, err := Run(model, nil, 10)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answers != nil {
		t.Fatalf("expected nil answers for an empty hub division, got %v", answers)
	}
}

// TestBadSignalErrorReported drives a worker directly with a message of an
// unrecognized Kind and checks that the resulting panic is reported on errCh
// as a *BadSignalError.
func TestBadSignalErrorReported(t *testing.T) {
	errCh := make(chan error, 1)
	in := make(chan Message, 1)
	out := make(chan Message, 4)
	w := newWorker(&countModel{maxDepth: 1}, in, out, 10)

	in <- Message{Kind: Kind(99)}
	close(in)

	func() {
		defer recoverFatal(errCh)
		w.run()
	}()

	select {
	case err := <-errCh:
		var bse *BadSignalError
		if !asBadSignalError(err, &bse) {
			t.Fatalf("expected a *BadSignalError, got %v (%T)", err, err)
		}
	default:
		t.Fatal("expected a fatal error to be reported for an unrecognized Kind")
	}
}

func asBadSignalError(err error, out **BadSignalError) bool {
	bse, ok := err.(*BadSignalError)
	if !ok {
		return false
	}
	*out = bse
	return true
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindNode:    "NODE",
		KindIdle:    "IDLE",
		KindBusy:    "BUSY",
		KindDone:    "DONE",
		KindAnswers: "ANSWERS",
		Kind(42):    "UNKNOWN(42)",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}

func TestBadSignalErrorMessage(t *testing.T) {
	err := &BadSignalError{Context: "worker", Expected: KindNode, Got: KindDone}
	want := fmt.Sprintf("engine: worker: got %s, expected %s", KindDone, KindNode)
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
