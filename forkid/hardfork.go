package forkid

import "github.com/chainkit/chainspec/chain"

// HardforkID computes the fork ID a node would announce the instant hf
// itself activates, useful for logging "what will our fork ID become at
// the next upgrade" without having to synthesize a Head by hand.
//
// The synthesized head is the minimal head that satisfies hf's condition:
// a Block(b) condition gets Number = b; a Timestamp(t) condition gets
// Timestamp = t and Number pinned to the last known block-pass fork (so the
// synthesized head already satisfies every prior block-based fork, per
// EIP-6122 ordering); a TTD condition with no known fork block gets
// TotalDifficulty set to the threshold itself. A Never condition has no
// well-defined minimal head and is not handled specially here.
func HardforkID(spec *chain.Spec, hf chain.Hardfork) ID {
	c := spec.Fork(hf)
	head := chain.Head{}
	if b, ok := c.BlockActivationPoint(); ok {
		head.Number = b
	} else if ts, ok := c.AsTimestamp(); ok {
		head.Timestamp = ts
		if last, ok := spec.LastBlockForkBeforeMergeOrTimestamp(); ok {
			head.Number = last
		}
	} else if ttd := c.TotalDifficulty(); ttd != nil {
		head.TotalDifficulty = ttd
	}
	return New(spec, head)
}
