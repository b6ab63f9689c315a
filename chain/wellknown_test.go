package chain

import "testing"

func TestMainnetIdentity(t *testing.T) {
	spec := Mainnet()
	if spec.ChainID() != 1 {
		t.Errorf("ChainID = %d, want 1", spec.ChainID())
	}
	if spec != Mainnet() {
		t.Error("Mainnet() must return the same singleton instance on every call")
	}
	if !spec.IsForkActiveAtBlock(Frontier, 0) {
		t.Error("Frontier must be active at genesis")
	}
	if !spec.IsForkActiveAtBlock(GrayGlacier, 15050000) {
		t.Error("GrayGlacier activation block incorrect")
	}
	if !spec.IsShanghaiActiveAtTimestamp(1681338455) {
		t.Error("Shanghai activation timestamp incorrect")
	}
	if _, ok := spec.DepositContract(); !ok {
		t.Error("mainnet must carry a deposit contract")
	}
	if _, ok := spec.FinalParisTotalDifficulty(15537394); ok {
		t.Error("mainnet's Paris fork block is unknown, final total difficulty must never resolve by block number")
	}
}

func TestSepoliaKnownMergeBlock(t *testing.T) {
	spec := Sepolia()
	if b, ok := spec.Fork(Paris).ForkBlock(); !ok || b != 1450409 {
		t.Errorf("sepolia Paris fork block = (%d, %v), want (1450409, true)", b, ok)
	}
	if _, ok := spec.FinalParisTotalDifficulty(1450408); ok {
		t.Error("sepolia final total difficulty must not resolve before the Paris fork block")
	}
	if _, ok := spec.FinalParisTotalDifficulty(1450409); !ok {
		t.Error("sepolia final total difficulty must resolve at and after the Paris fork block")
	}
}

func TestHoleskyMergedAtGenesis(t *testing.T) {
	spec := Holesky()
	if !spec.IsForkActiveAtBlock(Paris, 0) {
		t.Error("holesky should already be merged at genesis")
	}
}

func TestOPMainnetVariableBaseFee(t *testing.T) {
	spec := OPMainnet()
	const canyon = 1704992401
	if got := spec.BaseFeeParams(canyon - 1); got != OptimismBaseFeeParams {
		t.Errorf("pre-canyon base fee params = %+v, want %+v", got, OptimismBaseFeeParams)
	}
	if got := spec.BaseFeeParams(canyon); got != OptimismCanyonBaseFeeParams {
		t.Errorf("canyon base fee params = %+v, want %+v", got, OptimismCanyonBaseFeeParams)
	}
	if !spec.IsForkActiveAtBlock(Bedrock, 105235063) {
		t.Error("Bedrock activation block incorrect")
	}
}

func TestDevAllThroughShanghai(t *testing.T) {
	spec := Dev()
	if !spec.IsShanghaiActiveAtTimestamp(0) {
		t.Error("dev chain should have Shanghai active from genesis")
	}
	if spec.IsCancunActiveAtTimestamp(0) {
		t.Error("dev chain should not have Cancun active")
	}
}
