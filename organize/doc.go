// Package organize implements the first pipeline stage: turning a raw
// chronological stream of chat messages into a set of resource clusters.
//
// Messages are processed strictly in timestamp order. Each unprocessed
// message is presented to an ai.Judge together with a bounded window of
// surrounding messages; verdicts flagging a resource are folded into the
// evolving partition with an overlap-based merge (Jaccard index over member
// id sets, merge above 0.5). The result is order-dependent and greedy, not a
// globally optimal clustering.
//
// This stage has no checkpoint. An interrupted run starts over from the raw
// message file.
package organize
