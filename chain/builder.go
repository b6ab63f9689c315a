package chain

import "github.com/holiman/uint256"

// Builder assembles a Spec fluently, one hardfork at a time. The cumulative
// With*Activated helpers let a caller describe "this chain has everything
// through Shanghai active from genesis" without repeating every
// intermediate fork's condition by hand.
type Builder struct {
	s Spec
}

// NewBuilder starts a Builder for the given chain ID and genesis block.
func NewBuilder(chainID uint64, genesis Genesis) *Builder {
	return &Builder{s: Spec{
		chainID: chainID,
		genesis: genesis,
		forks:   make(map[Hardfork]ForkCondition),
	}}
}

// WithFork sets hf's activation condition, overwriting any prior value.
func (b *Builder) WithFork(hf Hardfork, c ForkCondition) *Builder {
	b.s.forks[hf] = c
	return b
}

// WithoutFork removes any condition configured for hf, equivalent to
// setting it to Never.
func (b *Builder) WithoutFork(hf Hardfork) *Builder {
	delete(b.s.forks, hf)
	return b
}

// WithBaseFeeParams installs a constant EIP-1559 tuning schedule.
func (b *Builder) WithBaseFeeParams(p BaseFeeParams) *Builder {
	b.s.baseFeeParams = ConstantBaseFeeParams(p)
	return b
}

// WithBaseFeeParamsSchedule installs a timestamp-varying tuning schedule.
func (b *Builder) WithBaseFeeParamsSchedule(sched BaseFeeParamsSchedule) *Builder {
	b.s.baseFeeParams = sched
	return b
}

// WithFinalParisTotalDifficulty records the terminal total difficulty of
// the last pre-merge block.
func (b *Builder) WithFinalParisTotalDifficulty(ttd *uint256.Int) *Builder {
	b.s.finalParisTotalDifficulty = ttd
	return b
}

// WithDepositContract records the network's beacon deposit contract.
func (b *Builder) WithDepositContract(d DepositContract) *Builder {
	b.s.depositContract = &d
	return b
}

// WithPruneDeleteLimit and WithSnapshotBlockInterval record the tuning
// constants the pruning/snapshotting subsystems read off a Spec; this
// package never interprets them.
func (b *Builder) WithPruneDeleteLimit(n uint64) *Builder {
	b.s.pruneDeleteLimit = n
	return b
}

func (b *Builder) WithSnapshotBlockInterval(n uint64) *Builder {
	b.s.snapshotBlockInterval = n
	return b
}

// ParisAtTTD activates Paris once cumulative difficulty crosses ttd,
// optionally pinning it to a known merge-netsplit block.
func (b *Builder) ParisAtTTD(ttd *uint256.Int, forkBlock *uint64) *Builder {
	return b.WithFork(Paris, TTD(ttd, forkBlock))
}

// cascade is the shared helper behind the WithXActivated methods: it
// activates every hardfork up to and including upTo at block 0, leaving
// later hardforks untouched. Each WithXActivated call is expected to chain
// from genesis, mirroring how well-known dev/test specs are usually
// constructed: "everything through fork F is already live."
func (b *Builder) cascade(upTo Hardfork) *Builder {
	for _, hf := range CanonicalOrder() {
		b.WithFork(hf, Block(0))
		if hf == upTo {
			break
		}
	}
	return b
}

func (b *Builder) WithFrontierActivated() *Builder       { return b.cascade(Frontier) }
func (b *Builder) WithHomesteadActivated() *Builder       { return b.cascade(Homestead) }
func (b *Builder) WithDAOActivated() *Builder             { return b.cascade(DAO) }
func (b *Builder) WithTangerineActivated() *Builder       { return b.cascade(Tangerine) }
func (b *Builder) WithSpuriousDragonActivated() *Builder  { return b.cascade(SpuriousDragon) }
func (b *Builder) WithByzantiumActivated() *Builder       { return b.cascade(Byzantium) }
func (b *Builder) WithConstantinopleActivated() *Builder  { return b.cascade(Constantinople) }
func (b *Builder) WithPetersburgActivated() *Builder      { return b.cascade(Petersburg) }
func (b *Builder) WithIstanbulActivated() *Builder        { return b.cascade(Istanbul) }
func (b *Builder) WithMuirGlacierActivated() *Builder     { return b.cascade(MuirGlacier) }
func (b *Builder) WithBerlinActivated() *Builder          { return b.cascade(Berlin) }
func (b *Builder) WithLondonActivated() *Builder          { return b.cascade(London) }
func (b *Builder) WithArrowGlacierActivated() *Builder    { return b.cascade(ArrowGlacier) }
func (b *Builder) WithGrayGlacierActivated() *Builder     { return b.cascade(GrayGlacier) }

// WithParisActivated activates every hardfork through Paris at block 0 and
// TTD 0, since a dev chain that starts post-merge never actually crosses a
// TTD threshold during a test run.
func (b *Builder) WithParisActivated() *Builder {
	b.cascade(GrayGlacier)
	zero := uint64(0)
	return b.ParisAtTTD(uint256.NewInt(0), &zero)
}

// WithShanghaiActivated and WithCancunActivated activate every preceding
// hardfork at block/TTD 0 and the named one (and any timestamp-based forks
// up to it) at timestamp 0, matching a dev chain that starts already fully
// upgraded.
func (b *Builder) WithShanghaiActivated() *Builder {
	b.WithParisActivated()
	return b.WithFork(Shanghai, Timestamp(0))
}

func (b *Builder) WithCancunActivated() *Builder {
	b.WithShanghaiActivated()
	return b.WithFork(Cancun, Timestamp(0))
}

// Build finalizes the Spec. Build panics if no base fee schedule was
// configured and London has a condition other than Never, since such a
// Spec could never answer BaseFeeParams queries; a spec with no London
// condition may omit it and gets EthereumBaseFeeParams. Only London is
// checked; later forks configured without London do not trigger the panic.
func (b *Builder) Build() *Spec {
	if b.s.baseFeeParams.constant == nil && b.s.baseFeeParams.variable == nil {
		if !b.s.Fork(London).IsNever() {
			panic("chain: Builder.Build: London active but no BaseFeeParams configured")
		}
		b.s.baseFeeParams = ConstantBaseFeeParams(EthereumBaseFeeParams)
	}
	out := b.s
	out.forks = make(map[Hardfork]ForkCondition, len(b.s.forks))
	for k, v := range b.s.forks {
		out.forks[k] = v
	}
	out.timestamps = buildTimestampCache(out.forks)
	return &out
}
