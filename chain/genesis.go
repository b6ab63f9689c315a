package chain

import (
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Header is the subset of a genesis block header that Spec derives: enough
// to answer "what would this chain's genesis header look like" without
// depending on a full block/state implementation, which is out of scope for
// this package. It carries no state root, so a genesis hash cannot be
// computed from it alone.
type Header struct {
	ParentHash      [32]byte
	Number          uint64
	Timestamp       uint64
	ExtraData       []byte
	GasLimit        uint64
	GasUsed         uint64
	Difficulty      *uint256.Int
	MixHash         [32]byte
	Coinbase        [20]byte
	Nonce           uint64
	BaseFeePerGas   *uint64 // set iff London or later is active at genesis
	WithdrawalsRoot *[32]byte
	ExcessBlobGas   *uint64
	BlobGasUsed     *uint64
	ParentBeaconRoot *[32]byte
}

// emptyRoot is the Merkle root of an empty list/trie (keccak256 of RLP
// empty string), used as the genesis withdrawals root of a post-Shanghai
// genesis block.
var emptyRoot = [32]byte{0x56, 0xe8, 0x1f, 0x17, 0x1b, 0xcc, 0x55, 0xa6,
	0xff, 0x83, 0x45, 0xe6, 0x92, 0xc0, 0xf8, 0x6e, 0x5b, 0x48, 0xe0, 0x1b,
	0x99, 0x6c, 0xad, 0xc0, 0x01, 0x62, 0x2f, 0xb5, 0xe3, 0x63, 0xb4, 0x21}

// GenesisHeader derives the genesis block header implied by the Spec's
// hardfork table: a genesis built for a chain where Shanghai is already
// active carries an (empty) withdrawals root, one where Cancun is active
// also carries blob-gas accounting fields and a beacon root, and one where
// London is active carries an explicit base fee. These conditional fields
// are why genesis derivation cannot be a plain struct literal — the set of
// populated fields depends on which forks are live at time zero.
func (s *Spec) GenesisHeader() Header {
	g := s.genesis
	h := Header{
		Number:     g.Number,
		Timestamp:  g.Timestamp,
		Difficulty: g.Difficulty,
		ExtraData:  g.ExtraData,
		GasLimit:   g.GasLimit,
		MixHash:    g.MixHash,
		Coinbase:   g.Coinbase,
		Nonce:      g.Nonce,
	}
	if h.Difficulty == nil {
		h.Difficulty = uint256.NewInt(0)
	}

	if s.IsForkActiveAtTimestamp(London, g.Timestamp) || s.IsForkActiveAtBlock(London, g.Number) {
		fee := s.InitialBaseFee()
		h.BaseFeePerGas = &fee
	}
	if s.IsShanghaiActiveAtTimestamp(g.Timestamp) {
		root := emptyRoot
		h.WithdrawalsRoot = &root
	}
	if s.IsCancunActiveAtTimestamp(g.Timestamp) {
		zero := uint64(0)
		h.ExcessBlobGas = &zero
		h.BlobGasUsed = &zero
		var beaconRoot [32]byte
		h.ParentBeaconRoot = &beaconRoot
	}
	return h
}

// Document is the JSON shape of a foreign (geth-style) genesis file: a
// "config" sub-object carrying per-fork activation fields alongside the
// flat genesis block fields. Spec's own hardfork table has no such nested
// shape, so loading one of these requires the adapter below rather than a
// plain Unmarshal onto Spec.
type Document struct {
	Config     *ForeignConfig             `json:"config"`
	Nonce      hexutil.Uint64             `json:"nonce"`
	Timestamp  hexutil.Uint64             `json:"timestamp"`
	ExtraData  hexutil.Bytes              `json:"extraData"`
	GasLimit   hexutil.Uint64             `json:"gasLimit"`
	Difficulty *hexutil.Big               `json:"difficulty"`
	MixHash    common.Hash                `json:"mixHash"`
	Coinbase   common.Address             `json:"coinbase"`
	Alloc      map[string]json.RawMessage `json:"alloc"`

	Number        hexutil.Uint64  `json:"number"`
	GasUsed       hexutil.Uint64  `json:"gasUsed"`
	ParentHash    common.Hash     `json:"parentHash"`
	BaseFee       *hexutil.Big    `json:"baseFeePerGas,omitempty"`
	ExcessBlobGas *hexutil.Uint64 `json:"excessBlobGas,omitempty"`
	BlobGasUsed   *hexutil.Uint64 `json:"blobGasUsed,omitempty"`
}

// ForeignConfig is the "config" sub-object of a foreign genesis document:
// chainId plus one *Block field per block-activated fork and one *Time
// field per timestamp-activated fork, following the naming convention real
// genesis.json files use. mergeNetsplitBlock and terminalTotalDifficulty
// together describe the Paris/TTD transition.
type ForeignConfig struct {
	ChainID uint64 `json:"chainId"`

	HomesteadBlock      *uint64 `json:"homesteadBlock,omitempty"`
	DAOForkBlock        *uint64 `json:"daoForkBlock,omitempty"`
	EIP150Block         *uint64 `json:"eip150Block,omitempty"`
	EIP155Block         *uint64 `json:"eip155Block,omitempty"`
	ByzantiumBlock      *uint64 `json:"byzantiumBlock,omitempty"`
	ConstantinopleBlock *uint64 `json:"constantinopleBlock,omitempty"`
	PetersburgBlock     *uint64 `json:"petersburgBlock,omitempty"`
	IstanbulBlock       *uint64 `json:"istanbulBlock,omitempty"`
	MuirGlacierBlock    *uint64 `json:"muirGlacierBlock,omitempty"`
	BerlinBlock         *uint64 `json:"berlinBlock,omitempty"`
	LondonBlock         *uint64 `json:"londonBlock,omitempty"`
	ArrowGlacierBlock   *uint64 `json:"arrowGlacierBlock,omitempty"`
	GrayGlacierBlock    *uint64 `json:"grayGlacierBlock,omitempty"`

	MergeNetsplitBlock      *uint64 `json:"mergeNetsplitBlock,omitempty"`
	TerminalTotalDifficulty *string `json:"terminalTotalDifficulty,omitempty"`

	ShanghaiTime *uint64 `json:"shanghaiTime,omitempty"`
	CancunTime   *uint64 `json:"cancunTime,omitempty"`
}

// SpecFromDocument adapts a foreign genesis Document into a Spec. Field
// presence, not a version tag, decides whether a forkBlock/time is
// configured: an absent JSON field is Never, exactly as omitting a key from
// a real genesis.json leaves that fork disabled.
//
// The returned Spec's Genesis.Hash is left zero: computing the true genesis
// hash requires RLP-encoding the full header and state root, which needs a
// trie/state implementation this package does not have. Callers that need
// the real hash must compute it themselves and set it on the result.
func SpecFromDocument(doc *Document) (*Spec, error) {
	if doc.Config == nil {
		return nil, ErrMissingGenesisConfig
	}
	cfg := doc.Config

	difficulty := big.NewInt(0)
	if doc.Difficulty != nil {
		difficulty = (*big.Int)(doc.Difficulty)
	}
	genesisDifficulty, overflow := uint256.FromBig(difficulty)
	if overflow {
		return nil, fmt.Errorf("chain: genesis difficulty overflows 256 bits")
	}
	b := NewBuilder(cfg.ChainID, Genesis{
		Number:        uint64(doc.Number),
		Timestamp:     uint64(doc.Timestamp),
		Difficulty:    genesisDifficulty,
		BaseFeePerGas: optionalUint64(doc.BaseFee),
		ExtraData:     []byte(doc.ExtraData),
		GasLimit:      uint64(doc.GasLimit),
		MixHash:       doc.MixHash,
		Coinbase:      doc.Coinbase,
		Nonce:         uint64(doc.Nonce),
	})

	setBlock(b, Homestead, cfg.HomesteadBlock)
	setBlock(b, DAO, cfg.DAOForkBlock)
	setBlock(b, Tangerine, cfg.EIP150Block)
	setBlock(b, SpuriousDragon, cfg.EIP155Block)
	setBlock(b, Byzantium, cfg.ByzantiumBlock)
	setBlock(b, Constantinople, cfg.ConstantinopleBlock)
	setBlock(b, Petersburg, cfg.PetersburgBlock)
	setBlock(b, Istanbul, cfg.IstanbulBlock)
	setBlock(b, MuirGlacier, cfg.MuirGlacierBlock)
	setBlock(b, Berlin, cfg.BerlinBlock)
	setBlock(b, London, cfg.LondonBlock)
	setBlock(b, ArrowGlacier, cfg.ArrowGlacierBlock)
	setBlock(b, GrayGlacier, cfg.GrayGlacierBlock)

	if cfg.TerminalTotalDifficulty != nil {
		ttd, err := uint256.FromDecimal(*cfg.TerminalTotalDifficulty)
		if err != nil {
			return nil, fmt.Errorf("chain: invalid terminalTotalDifficulty: %w", err)
		}
		b.ParisAtTTD(ttd, cfg.MergeNetsplitBlock)
	}
	setTimestamp(b, Shanghai, cfg.ShanghaiTime)
	setTimestamp(b, Cancun, cfg.CancunTime)

	b.WithBaseFeeParams(EthereumBaseFeeParams)
	return b.Build(), nil
}

func setBlock(b *Builder, hf Hardfork, block *uint64) {
	if block != nil {
		b.WithFork(hf, Block(*block))
	}
}

func setTimestamp(b *Builder, hf Hardfork, ts *uint64) {
	if ts != nil {
		b.WithFork(hf, Timestamp(*ts))
	}
}

func optionalUint64(v *hexutil.Big) *uint64 {
	if v == nil {
		return nil
	}
	u := (*big.Int)(v).Uint64()
	return &u
}

// IsForeignDocument reports whether raw looks like a foreign (geth-style)
// genesis file rather than a native one, by checking for the "config" key
// that native documents never carry (native specs express their hardfork
// table directly, not nested under a config object).
func IsForeignDocument(raw []byte) bool {
	var probe struct {
		Config json.RawMessage `json:"config"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return len(probe.Config) > 0
}

// NativeDocument is the JSON shape of a native genesis document: a
// top-level "hardforks" table mapping each hardfork's lowercase name
// directly to its activation point, instead of nesting one *Block/*Time
// field per fork inside a geth-style "config" object.
//
// A hardfork's entry is either a bare JSON number (a block number for an
// ordinary fork, or a timestamp for one of the timestamp-activated forks:
// Shanghai, Cancun, Canyon, Ecotone), or an object {"ttd": "<decimal>",
// "forkBlock": <number, optional>} for Paris's terminal-total-difficulty
// condition.
type NativeDocument struct {
	ChainID    uint64                     `json:"chainId"`
	Hardforks  map[string]json.RawMessage `json:"hardforks"`
	Nonce      hexutil.Uint64             `json:"nonce"`
	Timestamp  hexutil.Uint64             `json:"timestamp"`
	ExtraData  hexutil.Bytes              `json:"extraData"`
	GasLimit   hexutil.Uint64             `json:"gasLimit"`
	Difficulty *hexutil.Big               `json:"difficulty"`
	MixHash    common.Hash                `json:"mixHash"`
	Coinbase   common.Address             `json:"coinbase"`
	Number     hexutil.Uint64             `json:"number"`
	BaseFee    *hexutil.Big               `json:"baseFeePerGas,omitempty"`
}

// nativeTTDEntry is the object form a native document uses for Paris's
// terminal-total-difficulty condition.
type nativeTTDEntry struct {
	TTD       string  `json:"ttd"`
	ForkBlock *uint64 `json:"forkBlock,omitempty"`
}

// timestampHardforks is the set of hardforks a native document's bare
// numeric entries are interpreted as a timestamp for, rather than a block
// number.
var timestampHardforks = map[Hardfork]bool{
	Shanghai: true,
	Cancun:   true,
	Canyon:   true,
	Ecotone:  true,
}

// hardforkByName maps a native document's fork key, lowercased before
// lookup (so "grayGlacier" and "grayglacier" both match), back to its
// Hardfork, built once from hardforkNames.
var hardforkByName = func() map[string]Hardfork {
	m := make(map[string]Hardfork, len(hardforkNames))
	for hf, name := range hardforkNames {
		m[strings.ToLower(name)] = Hardfork(hf)
	}
	return m
}()

// IsNativeDocument reports whether raw looks like a native genesis
// document, by checking for the "hardforks" key that foreign (geth-style)
// documents never carry (those nest their fork table under "config").
func IsNativeDocument(raw []byte) bool {
	var probe struct {
		Hardforks json.RawMessage `json:"hardforks"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return len(probe.Hardforks) > 0
}

// SpecFromNativeDocument adapts a NativeDocument into a Spec. Unknown keys
// in the "hardforks" table are rejected rather than silently ignored,
// since a misspelled fork name would otherwise leave that fork disabled
// without any indication why.
//
// As with SpecFromDocument, the returned Spec's Genesis.Hash is left zero;
// see SpecFromDocument's doc comment for why, and WithGenesisHash to
// attach a computed one.
func SpecFromNativeDocument(doc *NativeDocument) (*Spec, error) {
	difficulty := big.NewInt(0)
	if doc.Difficulty != nil {
		difficulty = (*big.Int)(doc.Difficulty)
	}
	genesisDifficulty, overflow := uint256.FromBig(difficulty)
	if overflow {
		return nil, fmt.Errorf("chain: genesis difficulty overflows 256 bits")
	}
	b := NewBuilder(doc.ChainID, Genesis{
		Number:        uint64(doc.Number),
		Timestamp:     uint64(doc.Timestamp),
		Difficulty:    genesisDifficulty,
		BaseFeePerGas: optionalUint64(doc.BaseFee),
		ExtraData:     []byte(doc.ExtraData),
		GasLimit:      uint64(doc.GasLimit),
		MixHash:       doc.MixHash,
		Coinbase:      doc.Coinbase,
		Nonce:         uint64(doc.Nonce),
	})

	for name, raw := range doc.Hardforks {
		hf, ok := hardforkByName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("chain: unknown hardfork %q in native genesis document", name)
		}

		if hf == Paris {
			var entry nativeTTDEntry
			if err := json.Unmarshal(raw, &entry); err != nil {
				return nil, fmt.Errorf("chain: parsing paris entry: %w", err)
			}
			ttd, err := uint256.FromDecimal(entry.TTD)
			if err != nil {
				return nil, fmt.Errorf("chain: invalid paris ttd: %w", err)
			}
			b.ParisAtTTD(ttd, entry.ForkBlock)
			continue
		}

		var point uint64
		if err := json.Unmarshal(raw, &point); err != nil {
			return nil, fmt.Errorf("chain: parsing %s entry: %w", name, err)
		}
		if timestampHardforks[hf] {
			b.WithFork(hf, Timestamp(point))
		} else {
			b.WithFork(hf, Block(point))
		}
	}

	b.WithBaseFeeParams(EthereumBaseFeeParams)
	return b.Build(), nil
}
