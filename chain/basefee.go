package chain

// BaseFeeParams holds the EIP-1559 tuning constants that govern how quickly
// the base fee can move block-to-block.
type BaseFeeParams struct {
	// MaxChangeDenominator bounds the base fee's maximum relative change per
	// block to 1/MaxChangeDenominator.
	MaxChangeDenominator uint64
	// ElasticityMultiplier sets the gas target as GasLimit/ElasticityMultiplier.
	ElasticityMultiplier uint64
}

// EthereumBaseFeeParams are the constants introduced by EIP-1559 and used by
// Ethereum mainnet and its testnets from London onward.
var EthereumBaseFeeParams = BaseFeeParams{
	MaxChangeDenominator: 8,
	ElasticityMultiplier: 2,
}

// OptimismBaseFeeParams and OptimismCanyonBaseFeeParams are the tuned
// constants used by OP Stack chains, which adopt a different denominator
// (and, from Canyon onward, elasticity) to target faster block times.
var (
	OptimismBaseFeeParams = BaseFeeParams{
		MaxChangeDenominator: 50,
		ElasticityMultiplier: 6,
	}
	OptimismCanyonBaseFeeParams = BaseFeeParams{
		MaxChangeDenominator: 250,
		ElasticityMultiplier: 6,
	}
)

// baseFeeParamsEntry binds a BaseFeeParams to the timestamp from which it
// takes effect. A nil activatesAt entry denotes the params active since
// genesis.
type baseFeeParamsEntry struct {
	activatesAt *uint64
	params      BaseFeeParams
}

// BaseFeeParamsSchedule selects which BaseFeeParams apply at a given
// timestamp. Most chains use a single constant value (Constant); chains that
// retune EIP-1559 mid-life (e.g. OP Stack's Canyon upgrade) use Variable,
// a table of timestamp-activated entries evaluated latest-match-wins.
type BaseFeeParamsSchedule struct {
	constant *BaseFeeParams
	variable []baseFeeParamsEntry
}

// ConstantBaseFeeParams builds a schedule that always resolves to the same
// BaseFeeParams regardless of timestamp.
func ConstantBaseFeeParams(p BaseFeeParams) BaseFeeParamsSchedule {
	return BaseFeeParamsSchedule{constant: &p}
}

// VariableBaseFeeParams builds a schedule from (timestamp, params) entries.
// entries need not be pre-sorted; a sorted copy is made here, once. An entry
// with a nil timestamp means "active from genesis"; without one, At returns
// the earliest entry for timestamps before the first activation.
func VariableBaseFeeParams(entries ...baseFeeParamsEntry) BaseFeeParamsSchedule {
	cp := make([]baseFeeParamsEntry, len(entries))
	copy(cp, entries)
	for i := 1; i < len(cp); i++ {
		for j := i; j > 0; j-- {
			li, lj := activationOrZero(cp[j-1]), activationOrZero(cp[j])
			if li <= lj {
				break
			}
			cp[j-1], cp[j] = cp[j], cp[j-1]
		}
	}
	return BaseFeeParamsSchedule{variable: cp}
}

// ForGenesis builds an entry active from genesis (no activation timestamp).
func ForGenesis(p BaseFeeParams) baseFeeParamsEntry {
	return baseFeeParamsEntry{params: p}
}

// ForTimestamp builds an entry that activates at t.
func ForTimestamp(t uint64, p BaseFeeParams) baseFeeParamsEntry {
	return baseFeeParamsEntry{activatesAt: &t, params: p}
}

func activationOrZero(e baseFeeParamsEntry) uint64 {
	if e.activatesAt == nil {
		return 0
	}
	return *e.activatesAt
}

// At resolves the BaseFeeParams in effect at timestamp ts: the latest entry
// whose activation timestamp is <= ts, scanning in reverse chronological
// order so the most recently activated tuning always wins. Panics with
// ErrEmptyBaseFeeParamsSchedule if called on the zero value of
// BaseFeeParamsSchedule, which indicates a misconstructed Spec.
func (s BaseFeeParamsSchedule) At(ts uint64) BaseFeeParams {
	if s.constant != nil {
		return *s.constant
	}
	if len(s.variable) == 0 {
		panic(ErrEmptyBaseFeeParamsSchedule)
	}
	for i := len(s.variable) - 1; i >= 0; i-- {
		e := s.variable[i]
		if e.activatesAt == nil || ts >= *e.activatesAt {
			return e.params
		}
	}
	return s.variable[0].params
}
