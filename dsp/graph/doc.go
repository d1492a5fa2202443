// Package graph runs small audio signal graphs in fixed render quanta.
//
// A [Graph] is an arena of stages addressed by [NodeID] plus an edge list.
// Every graph owns two pass-through nodes, [Input] and [Output]. Audio
// edges into a node are summed before the node runs. Parameter edges add
// the source signal to the intrinsic value of a [Param], sample by sample,
// and the result is clamped to the parameter range.
//
// Cycles are allowed only through stages that implement [FeedbackBreaker].
// A breaker on a cycle emits output computed from previously pushed
// quanta and receives its summed input at the end of each quantum, which
// enforces a minimum loop delay of one quantum.
package graph
