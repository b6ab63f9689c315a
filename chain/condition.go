package chain

import "github.com/holiman/uint256"

// conditionKind tags which of the mutually exclusive activation rules a
// ForkCondition carries. Modeled as an explicit sum type rather than a set
// of optional fields, so that a condition can never claim to be two kinds
// at once.
type conditionKind uint8

const (
	kindNever conditionKind = iota
	kindBlock
	kindTTD
	kindTimestamp
)

// ForkCondition describes how a single hardfork activates: at a block
// height, once cumulative difficulty crosses a terminal-total-difficulty
// threshold, at a wall-clock timestamp, or never (disabled).
//
// The zero value is Never.
type ForkCondition struct {
	kind conditionKind

	block     uint64 // valid when kind == kindBlock
	timestamp uint64 // valid when kind == kindTimestamp

	// TTD fields. forkBlock is set only for networks whose merge coincides
	// with a known block (certain testnets); when unset, the TTD fork never
	// contributes to fork-id hashing.
	ttd       *uint256.Int
	forkBlock *uint64
}

// Block returns a ForkCondition active once the head block number reaches n.
func Block(n uint64) ForkCondition {
	return ForkCondition{kind: kindBlock, block: n}
}

// Timestamp returns a ForkCondition active once the head timestamp reaches t.
func Timestamp(t uint64) ForkCondition {
	return ForkCondition{kind: kindTimestamp, timestamp: t}
}

// TTD returns a ForkCondition active once cumulative difficulty crosses
// totalDifficulty. forkBlock should be nil unless the merge netsplit block
// for this specific network is known (e.g. Sepolia, Holesky); setting it
// makes the fork participate in fork-id hashing as if it were block-based.
func TTD(totalDifficulty *uint256.Int, forkBlock *uint64) ForkCondition {
	c := ForkCondition{kind: kindTTD, ttd: totalDifficulty}
	if forkBlock != nil {
		b := *forkBlock
		c.forkBlock = &b
	}
	return c
}

// Never returns a disabled ForkCondition: it never participates in any
// predicate or in fork-id computation.
func Never() ForkCondition { return ForkCondition{kind: kindNever} }

// IsNever reports whether the condition disables its hardfork.
func (c ForkCondition) IsNever() bool { return c.kind == kindNever }

// ActiveAtBlock is true only for Block(b) with n >= b, or TTD with a known
// forkBlock b and n >= b. Timestamp and Never conditions are always false.
func (c ForkCondition) ActiveAtBlock(n uint64) bool {
	switch c.kind {
	case kindBlock:
		return n >= c.block
	case kindTTD:
		return c.forkBlock != nil && n >= *c.forkBlock
	default:
		return false
	}
}

// TransitionsAtBlock is true exactly when the condition is Block(b) and
// n == b: it detects the transition block itself, not merely activity.
func (c ForkCondition) TransitionsAtBlock(n uint64) bool {
	return c.kind == kindBlock && n == c.block
}

// ActiveAtTimestamp is true only for Timestamp(t) with ts >= t.
func (c ForkCondition) ActiveAtTimestamp(ts uint64) bool {
	return c.kind == kindTimestamp && ts >= c.timestamp
}

// ActiveAtTTD is true only for a TTD condition once cumulative difficulty
// minus the current block's own difficulty reaches the threshold. The
// subtraction is saturating: a head whose total difficulty is (impossibly)
// smaller than its own difficulty is treated as pre-threshold, not as an
// arithmetic error. The subtraction encodes that the fork activates on the
// block *after* the terminal-difficulty block, per EIP-3675.
func (c ForkCondition) ActiveAtTTD(cumulativeTD, blockDifficulty *uint256.Int) bool {
	if c.kind != kindTTD {
		return false
	}
	prev := saturatingSub(cumulativeTD, blockDifficulty)
	return prev.Cmp(c.ttd) >= 0
}

func saturatingSub(a, b *uint256.Int) *uint256.Int {
	var out uint256.Int
	if out.SubOverflow(a, b) {
		return uint256.NewInt(0)
	}
	return &out
}

// ActiveAtHead is the disjunction of the block, timestamp and TTD predicates
// evaluated against the corresponding fields of head.
func (c ForkCondition) ActiveAtHead(head Head) bool {
	return c.ActiveAtBlock(head.Number) ||
		c.ActiveAtTimestamp(head.Timestamp) ||
		c.ActiveAtTTD(head.TotalDifficulty, head.Difficulty)
}

// AsTimestamp returns (timestamp, true) for a Timestamp condition, and
// (0, false) for every other variant. Used when extracting time-based
// activation points for fork-id ordering.
func (c ForkCondition) AsTimestamp() (uint64, bool) {
	if c.kind == kindTimestamp {
		return c.timestamp, true
	}
	return 0, false
}

// TotalDifficulty returns the TTD threshold for a TTD condition, or nil for
// every other variant.
func (c ForkCondition) TotalDifficulty() *uint256.Int {
	if c.kind == kindTTD {
		return c.ttd
	}
	return nil
}

// ForkBlock returns the known merge-netsplit block for a TTD condition, if
// any was recorded.
func (c ForkCondition) ForkBlock() (uint64, bool) {
	if c.kind == kindTTD && c.forkBlock != nil {
		return *c.forkBlock, true
	}
	return 0, false
}

// BlockActivationPoint returns (b, true) when this condition contributes a
// block-pass activation point to fork-id computation: a plain Block(b), or
// a TTD condition whose merge-netsplit block is known.
func (c ForkCondition) BlockActivationPoint() (uint64, bool) {
	switch c.kind {
	case kindBlock:
		return c.block, true
	case kindTTD:
		if c.forkBlock != nil {
			return *c.forkBlock, true
		}
	}
	return 0, false
}

// Head is an immutable snapshot of a chain tip, sufficient to evaluate any
// ForkCondition against it.
type Head struct {
	Number          uint64
	Hash            [32]byte
	Timestamp       uint64
	TotalDifficulty *uint256.Int
	// Difficulty is the per-block difficulty of Number, distinct from the
	// cumulative TotalDifficulty. Required by ActiveAtTTD, which tests
	// whether the *previous* block's total difficulty crossed the
	// threshold: total_difficulty - difficulty >= threshold.
	Difficulty *uint256.Int
}

func (h Head) normalized() Head {
	if h.TotalDifficulty == nil {
		h.TotalDifficulty = uint256.NewInt(0)
	}
	if h.Difficulty == nil {
		h.Difficulty = uint256.NewInt(0)
	}
	return h
}
