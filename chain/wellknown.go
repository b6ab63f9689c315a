package chain

import (
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// Well-known chain specs are built lazily, once, behind sync.Once: building
// a Spec allocates a fork map and is cheap, but there is no reason to pay
// that cost more than once per process, and every caller asking for
// Mainnet() should see the exact same immutable value.
var (
	mainnetOnce sync.Once
	mainnetSpec *Spec

	sepoliaOnce sync.Once
	sepoliaSpec *Spec

	holeskyOnce sync.Once
	holeskySpec *Spec

	devOnce sync.Once
	devSpec *Spec

	opMainnetOnce sync.Once
	opMainnetSpec *Spec
)

func forkBlockPtr(n uint64) *uint64 { return &n }

// Mainnet returns the Ethereum mainnet chain specification.
func Mainnet() *Spec {
	mainnetOnce.Do(func() {
		b := NewBuilder(1, Genesis{
			Hash:       hexHash("d4e56740f876aef8c010b86a40d5f56745a118d0906a34e69aec8c0db1cb8fa3"),
			Number:     0,
			Timestamp:  1438269973,
			Difficulty: uint256.NewInt(17_179_869_184),
		})
		b.WithFork(Frontier, Block(0)).
			WithFork(Homestead, Block(1150000)).
			WithFork(DAO, Block(1920000)).
			WithFork(Tangerine, Block(2463000)).
			WithFork(SpuriousDragon, Block(2675000)).
			WithFork(Byzantium, Block(4370000)).
			WithFork(Constantinople, Block(7280000)).
			WithFork(Petersburg, Block(7280000)).
			WithFork(Istanbul, Block(9069000)).
			WithFork(MuirGlacier, Block(9200000)).
			WithFork(Berlin, Block(12244000)).
			WithFork(London, Block(12965000)).
			WithFork(ArrowGlacier, Block(13773000)).
			WithFork(GrayGlacier, Block(15050000)).
			WithFork(Shanghai, Timestamp(1681338455)).
			WithFork(Cancun, Timestamp(1710338135))

		// Mainnet's merge-netsplit block is deliberately left unknown: unlike
		// the testnets below, mainnet's Paris condition carries only the TTD
		// threshold, so it never contributes a block-pass point to fork-id
		// hashing -- matching real mainnet genesis configs, which omit
		// mergeNetsplitBlock entirely. https://etherscan.io/block/15537394 is
		// the block the merge happened at, but that fact isn't wired into
		// consensus and so isn't wired in here either.
		ttd, _ := uint256.FromDecimal("58750000000000000000000")
		finalTD, _ := uint256.FromDecimal("58750003716598352816469")
		b.ParisAtTTD(ttd, nil)
		b.WithFinalParisTotalDifficulty(finalTD)

		b.WithBaseFeeParams(EthereumBaseFeeParams)

		// https://etherscan.io/tx/0xe75fb554e433e03763a1560646ee22dcb74e5274b34c5ad644e7c0f619a7e1d0
		b.WithDepositContract(DepositContract{
			Address:      hexAddress("00000000219ab540356cbb839cbe05303d7705fa"),
			DeployBlock:  11052984,
			TopicDeposit: hexHash("649bbc62d0e31342afea4e5cd82d4049e7e1ee912fc0889aa790803be39038c5"),
		})

		mainnetSpec = b.Build()
	})
	return mainnetSpec
}

// Sepolia returns the Sepolia testnet chain specification.
func Sepolia() *Spec {
	sepoliaOnce.Do(func() {
		b := NewBuilder(11155111, Genesis{
			Hash:       hexHash("25a5cc106eea7138acab33231d7160d69cb777ee0c2c553fcddf5138993e6dd9"),
			Number:     0,
			Timestamp:  1633267481,
			Difficulty: uint256.NewInt(1),
		})
		b.WithFork(Frontier, Block(0)).
			WithFork(Homestead, Block(0)).
			WithFork(DAO, Block(0)).
			WithFork(Tangerine, Block(0)).
			WithFork(SpuriousDragon, Block(0)).
			WithFork(Byzantium, Block(0)).
			WithFork(Constantinople, Block(0)).
			WithFork(Petersburg, Block(0)).
			WithFork(Istanbul, Block(0)).
			WithFork(MuirGlacier, Block(0)).
			WithFork(Berlin, Block(0)).
			WithFork(London, Block(0)).
			WithFork(Shanghai, Timestamp(1677557088)).
			WithFork(Cancun, Timestamp(1706655072))

		// https://sepolia.etherscan.io/block/1450409
		ttd, _ := uint256.FromDecimal("17000000000000000")
		b.ParisAtTTD(ttd, forkBlockPtr(1450409))
		b.WithFinalParisTotalDifficulty(ttd)

		b.WithBaseFeeParams(EthereumBaseFeeParams)

		b.WithDepositContract(DepositContract{
			Address:      hexAddress("7f02c3e3c98b133055b8b348b2ac625669ed295d"),
			DeployBlock:  1273020,
			TopicDeposit: hexHash("649bbc62d0e31342afea4e5cd82d4049e7e1ee912fc0889aa790803be39038c5"),
		})

		sepoliaSpec = b.Build()
	})
	return sepoliaSpec
}

// Holesky returns the Holesky testnet chain specification.
func Holesky() *Spec {
	holeskyOnce.Do(func() {
		b := NewBuilder(17000, Genesis{
			Hash:       hexHash("b5f7f912443c940f21fd611f12828d75b534364ed9e95ca4e307729a4661bde4"),
			Number:     0,
			Timestamp:  1695902400,
			Difficulty: uint256.NewInt(1),
		})
		for _, hf := range []Hardfork{
			Frontier, Homestead, DAO, Tangerine, SpuriousDragon, Byzantium,
			Constantinople, Petersburg, Istanbul, MuirGlacier, Berlin, London,
		} {
			b.WithFork(hf, Block(0))
		}
		b.WithFork(Shanghai, Timestamp(1696000704))
		b.WithFork(Cancun, Timestamp(1707305664))

		b.ParisAtTTD(uint256.NewInt(0), forkBlockPtr(0))
		b.WithBaseFeeParams(EthereumBaseFeeParams)

		b.WithDepositContract(DepositContract{
			Address:      hexAddress("4242424242424242424242424242424242424242"),
			DeployBlock:  0,
			TopicDeposit: hexHash("649bbc62d0e31342afea4e5cd82d4049e7e1ee912fc0889aa790803be39038c5"),
		})

		holeskySpec = b.Build()
	})
	return holeskySpec
}

// Dev returns a single-node development chain specification with every
// hardfork through Shanghai active from genesis.
func Dev() *Spec {
	devOnce.Do(func() {
		b := NewBuilder(1337, Genesis{
			Number:     0,
			Timestamp:  0,
			Difficulty: uint256.NewInt(1),
		})
		b.WithShanghaiActivated()
		b.WithBaseFeeParams(EthereumBaseFeeParams)
		devSpec = b.Build()
	})
	return devSpec
}

// OPMainnet returns an OP Stack style chain specification using the
// Variable base-fee schedule introduced at Canyon: EIP-1559 tuning tightens
// from optimism defaults to the Canyon values at the same timestamp Canyon
// itself activates.
func OPMainnet() *Spec {
	opMainnetOnce.Do(func() {
		const canyonTime = 1704992401

		b := NewBuilder(10, Genesis{
			Number:     0,
			Timestamp:  1686068903,
			Difficulty: uint256.NewInt(0),
		})
		for _, hf := range []Hardfork{
			Frontier, Homestead, Tangerine, SpuriousDragon, Byzantium,
			Constantinople, Petersburg, Istanbul, MuirGlacier, Berlin, London,
			ArrowGlacier, GrayGlacier,
		} {
			b.WithFork(hf, Block(0))
		}
		b.ParisAtTTD(uint256.NewInt(0), forkBlockPtr(0))
		b.WithFork(Bedrock, Block(105235063))
		b.WithFork(Regolith, Timestamp(0))
		b.WithFork(Shanghai, Timestamp(canyonTime))
		b.WithFork(Canyon, Timestamp(canyonTime))
		b.WithFork(Cancun, Timestamp(1710374401))
		b.WithFork(Ecotone, Timestamp(1710374401))

		b.WithBaseFeeParamsSchedule(VariableBaseFeeParams(
			ForGenesis(OptimismBaseFeeParams),
			ForTimestamp(canyonTime, OptimismCanyonBaseFeeParams),
		))

		opMainnetSpec = b.Build()
	})
	return opMainnetSpec
}

func hexAddress(hexDigits string) [20]byte {
	return common.HexToAddress(hexDigits)
}

func hexHash(hexDigits string) [32]byte {
	return common.HexToHash(hexDigits)
}
