// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package traversal defines the contract of the graph analyzer used to decide fusion boundaries of a
// computation graph, and to find the external inputs ("parameters") a fused region depends on.
//
// Only the contract lives here: compilers provide the Analyzer implementation for their graph representation.
// Its consumers are backend fusion passes, which group the nodes a single BLAS, DNN or FFT plugin call can
// execute; nothing in this module calls it.
package traversal

// Result of visiting a node, it tells the traversal how to proceed.
type Result int

const (
	// VisitOperands continues the traversal with the operands of the node.
	VisitOperands Result = iota

	// AbortTraversal stops the traversal, no more nodes are visited.
	AbortTraversal

	// DoNotVisitOperands continues the traversal, but skips the operands of this node.
	// The boundary function is not evaluated for the node's operands.
	DoNotVisitOperands
)

//go:generate go tool enumer -type=Result -output=gen_result_enumer.go traversal.go

// Node of a computation graph.
type Node interface {
	// Name of the node, for diagnostics.
	Name() string

	// Operands are the producers of the node inputs.
	Operands() []Node

	// Users are the consumers of the node output.
	Users() []Node
}

// BoundaryFn returns whether the edge from producer to consumer crosses a fusion boundary,
// in which case the traversal doesn't follow it.
type BoundaryFn func(producer, consumer Node) bool

// Analyzer traverses computation graphs.
type Analyzer interface {
	// BfsConsumersFirst visits the nodes reachable from roots in BFS order, consumers before producers.
	// Each node is visited exactly once, and edges for which boundary returns true are not followed.
	BfsConsumersFirst(roots []Node, boundary BoundaryFn, visit func(node Node) Result)

	// FindFusionParameters visits the producers of all parameters needed by the fusion rooted at roots:
	// the nodes across the boundary that feed nodes inside it.
	FindFusionParameters(roots []Node, boundary BoundaryFn, visit func(producer Node))
}
