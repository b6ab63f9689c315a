package chain

import (
	"github.com/holiman/uint256"
)

// Genesis is the minimal genesis-block data a Spec needs in order to carry
// the genesis hash and derive the header: everything that is not itself part of the
// hardfork schedule. Account allocation and other genesis-document concerns
// live in the genesis adapter (genesis.go); Spec only needs enough to answer
// genesis-hash/header queries about itself.
type Genesis struct {
	Hash            [32]byte
	Number          uint64
	Timestamp       uint64
	Difficulty      *uint256.Int
	TotalDifficulty *uint256.Int
	BaseFeePerGas   *uint64 // nil unless the genesis block itself sets an explicit base fee

	ExtraData []byte
	GasLimit  uint64
	MixHash   [32]byte
	Coinbase  [20]byte
	Nonce     uint64
}

// Spec is the aggregate chain specification: a chain identity, a genesis
// block, the hardfork activation table that governs it, the EIP-1559
// tuning schedule, and the optional deposit contract address used by
// validators to discover deposit events.
//
// Spec is immutable once built; construct one with Builder or load one of
// the well-known specs in wellknown.go.
type Spec struct {
	chainID uint64
	genesis Genesis

	forks map[Hardfork]ForkCondition

	// timestamps caches the subset of forks that are timestamp-activated,
	// so the hot Is{Shanghai,Cancun}ActiveAtTimestamp predicates don't have
	// to walk the canonical hardfork order on every call.
	timestamps timestampCache

	baseFeeParams BaseFeeParamsSchedule

	// finalParisTotalDifficulty, when set, is the total difficulty of the
	// last pre-merge block. FinalParisTotalDifficulty returns it only when
	// the Paris condition also has a known forkBlock; on a spec whose Paris
	// condition has none (mainnet among them) it is stored but never
	// returned.
	finalParisTotalDifficulty *uint256.Int

	depositContract *DepositContract

	// pruneDeleteLimit and snapshotBlockInterval are opaque numeric tuning
	// constants consumed by the pruning/snapshotting subsystems; the spec
	// does no pruning or snapshotting itself, it only carries these values
	// through to whatever external subsystem asks for them.
	pruneDeleteLimit      uint64
	snapshotBlockInterval uint64
}

// DepositContract identifies the on-chain beacon deposit contract, if the
// network has one.
type DepositContract struct {
	Address      [20]byte
	DeployBlock  uint64
	TopicDeposit [32]byte
}

// ChainID returns the network's chain identifier (EIP-155).
func (s *Spec) ChainID() uint64 { return s.chainID }

// GenesisHash returns the genesis block hash.
func (s *Spec) GenesisHash() [32]byte { return s.genesis.Hash }

// Genesis returns the genesis block summary.
func (s *Spec) Genesis() Genesis { return s.genesis }

// WithGenesisHash returns a shallow copy of s with its genesis hash set to
// h. Adapters that cannot compute a genesis hash themselves (SpecFromDocument
// among them) leave it zero; a caller able to compute the real RLP/keccak
// hash uses this to attach it afterward.
func (s *Spec) WithGenesisHash(h [32]byte) *Spec {
	out := *s
	out.genesis.Hash = h
	return &out
}

// FinalParisTotalDifficulty returns the recorded terminal total difficulty
// of the last pre-merge block, iff the spec records a Paris activation and
// blockNumber is at or past the known Paris fork block. A spec whose Paris
// condition has no known fork block (the merge point must be discovered by
// scanning, not read off a constant) never satisfies this query.
func (s *Spec) FinalParisTotalDifficulty(blockNumber uint64) (*uint256.Int, bool) {
	if s.finalParisTotalDifficulty == nil {
		return nil, false
	}
	parisBlock, ok := s.Fork(Paris).ForkBlock()
	if !ok || blockNumber < parisBlock {
		return nil, false
	}
	return s.finalParisTotalDifficulty, true
}

// PruneDeleteLimit and SnapshotBlockInterval are numeric tuning constants
// the spec carries for the pruning and snapshotting subsystems without
// interpreting them itself; see the Spec field doc for why they live here.
func (s *Spec) PruneDeleteLimit() uint64      { return s.pruneDeleteLimit }
func (s *Spec) SnapshotBlockInterval() uint64 { return s.snapshotBlockInterval }

// DepositContract returns the network's beacon deposit contract, if any.
func (s *Spec) DepositContract() (DepositContract, bool) {
	if s.depositContract == nil {
		return DepositContract{}, false
	}
	return *s.depositContract, true
}

// Fork returns the activation condition configured for hf. Hardforks never
// inserted into the Spec default to Never.
func (s *Spec) Fork(hf Hardfork) ForkCondition {
	if c, ok := s.forks[hf]; ok {
		return c
	}
	return Never()
}

// Forks iterates every hardfork in CanonicalOrder alongside its configured
// condition, skipping hardforks left at Never. fn returning false stops
// iteration early.
func (s *Spec) Forks(fn func(Hardfork, ForkCondition) bool) {
	for _, hf := range CanonicalOrder() {
		c := s.Fork(hf)
		if c.IsNever() {
			continue
		}
		if !fn(hf, c) {
			return
		}
	}
}

// InitialBaseFee returns the base fee a genesis block should carry if
// London (or a later fee-market fork) is already active at genesis: the
// EIP-1559 initial value of 1 gwei, unless the genesis document supplied an
// explicit override.
func (s *Spec) InitialBaseFee() uint64 {
	if s.genesis.BaseFeePerGas != nil {
		return *s.genesis.BaseFeePerGas
	}
	const initialBaseFeeWei = 1_000_000_000
	return initialBaseFeeWei
}

// BaseFeeParams resolves the EIP-1559 tuning constants in effect at ts.
func (s *Spec) BaseFeeParams(ts uint64) BaseFeeParams {
	return s.baseFeeParams.At(ts)
}

// IsForkActiveAtBlock reports whether hf is active at block number n,
// accounting for both Block and TTD-with-known-forkBlock conditions.
func (s *Spec) IsForkActiveAtBlock(hf Hardfork, n uint64) bool {
	return s.Fork(hf).ActiveAtBlock(n)
}

// IsForkActiveAtTimestamp reports whether hf is active at timestamp ts.
func (s *Spec) IsForkActiveAtTimestamp(hf Hardfork, ts uint64) bool {
	return s.Fork(hf).ActiveAtTimestamp(ts)
}

// IsShanghaiActiveAtTimestamp and IsCancunActiveAtTimestamp are the two
// fork checks called on every block import, so they consult the
// timestamp cache before falling back to the general fork table.
func (s *Spec) IsShanghaiActiveAtTimestamp(ts uint64) bool {
	if active, ok := activeAt(s.timestamps.shanghai, ts); ok {
		return active
	}
	return s.IsForkActiveAtTimestamp(Shanghai, ts)
}

func (s *Spec) IsCancunActiveAtTimestamp(ts uint64) bool {
	if active, ok := activeAt(s.timestamps.cancun, ts); ok {
		return active
	}
	return s.IsForkActiveAtTimestamp(Cancun, ts)
}

// Satisfy reports whether head satisfies hf's activation condition, using
// whichever predicate (block, timestamp, or TTD) applies to hf's configured
// ForkCondition kind.
func (s *Spec) Satisfy(hf Hardfork, head Head) bool {
	head = head.normalized()
	return s.Fork(hf).ActiveAtHead(head)
}

// LastBlockForkBeforeMergeOrTimestamp returns the highest activation block
// among all Block/TTD-known-block forks, per the EIP-6122 ordering rule
// that block forks must be exhausted before any timestamp fork is
// considered. Returns (0, false) if the Spec has no block-based forks at
// all. Exposed for diagnostics and display rendering.
func (s *Spec) LastBlockForkBeforeMergeOrTimestamp() (uint64, bool) {
	var (
		max   uint64
		found bool
	)
	for _, hf := range CanonicalOrder() {
		c := s.Fork(hf)
		if b, ok := c.BlockActivationPoint(); ok {
			if !found || b > max {
				max = b
			}
			found = true
		}
	}
	return max, found
}
