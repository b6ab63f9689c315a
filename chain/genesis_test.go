package chain

import (
	"encoding/json"
	"testing"
)

const foreignGenesisJSON = `{
	"config": {
		"chainId": 1337,
		"homesteadBlock": 0,
		"eip150Block": 0,
		"eip155Block": 0,
		"byzantiumBlock": 0,
		"constantinopleBlock": 0,
		"petersburgBlock": 0,
		"istanbulBlock": 0,
		"berlinBlock": 0,
		"londonBlock": 0,
		"terminalTotalDifficulty": "0",
		"mergeNetsplitBlock": 0,
		"shanghaiTime": 0
	},
	"difficulty": "0x1",
	"gasLimit": "0x1c9c380",
	"alloc": {}
}`

const nativeGenesisJSON = `{
	"chainId": 1337,
	"hardforks": {
		"frontier": 0,
		"homestead": 0,
		"london": 0,
		"paris": {"ttd": "0", "forkBlock": 0},
		"shanghai": 0
	},
	"difficulty": "0x1",
	"gasLimit": "0x1c9c380"
}`

func TestIsForeignDocument(t *testing.T) {
	if !IsForeignDocument([]byte(foreignGenesisJSON)) {
		t.Error("expected foreign genesis document to be detected")
	}
	if IsForeignDocument([]byte(nativeGenesisJSON)) {
		t.Error("native document must not be detected as foreign")
	}
}

func TestIsNativeDocument(t *testing.T) {
	if !IsNativeDocument([]byte(nativeGenesisJSON)) {
		t.Error("expected native genesis document to be detected")
	}
	if IsNativeDocument([]byte(foreignGenesisJSON)) {
		t.Error("foreign document must not be detected as native")
	}
}

func TestSpecFromNativeDocument(t *testing.T) {
	var doc NativeDocument
	if err := json.Unmarshal([]byte(nativeGenesisJSON), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	spec, err := SpecFromNativeDocument(&doc)
	if err != nil {
		t.Fatalf("SpecFromNativeDocument: %v", err)
	}
	if spec.ChainID() != 1337 {
		t.Errorf("ChainID = %d, want 1337", spec.ChainID())
	}
	if !spec.IsForkActiveAtBlock(London, 0) {
		t.Error("London should be active at block 0")
	}
	if !spec.Satisfy(Paris, Head{Number: 0}.normalized()) {
		t.Error("Paris (TTD 0, forkBlock 0) should be satisfied at head 0")
	}
	if !spec.IsShanghaiActiveAtTimestamp(0) {
		t.Error("Shanghai should be active at timestamp 0")
	}
	if got := spec.GenesisHeader().GasLimit; got != 0x1c9c380 {
		t.Errorf("GasLimit = %#x, want 0x1c9c380", got)
	}
}

func TestSpecFromNativeDocumentUnknownHardfork(t *testing.T) {
	doc := NativeDocument{
		ChainID:   1,
		Hardforks: map[string]json.RawMessage{"frontier": json.RawMessage("0"), "notareal fork": json.RawMessage("0")},
	}
	if _, err := SpecFromNativeDocument(&doc); err == nil {
		t.Fatal("expected an error for an unrecognised hardfork name")
	}
}

func TestSpecFromDocument(t *testing.T) {
	var doc Document
	if err := json.Unmarshal([]byte(foreignGenesisJSON), &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	spec, err := SpecFromDocument(&doc)
	if err != nil {
		t.Fatalf("SpecFromDocument: %v", err)
	}
	if spec.ChainID() != 1337 {
		t.Errorf("ChainID = %d, want 1337", spec.ChainID())
	}
	if !spec.IsForkActiveAtBlock(London, 0) {
		t.Error("London should be active at block 0")
	}
	if !spec.Satisfy(Paris, Head{Number: 0}.normalized()) {
		t.Error("Paris (TTD 0, forkBlock 0) should be satisfied at head 0")
	}
	if !spec.IsShanghaiActiveAtTimestamp(0) {
		t.Error("Shanghai should be active at timestamp 0")
	}
	if got := spec.GenesisHeader().GasLimit; got != 0x1c9c380 {
		t.Errorf("GasLimit = %#x, want 0x1c9c380", got)
	}
}

func TestSpecFromDocumentMissingConfig(t *testing.T) {
	_, err := SpecFromDocument(&Document{})
	if err != ErrMissingGenesisConfig {
		t.Errorf("got %v, want ErrMissingGenesisConfig", err)
	}
}

func TestGenesisHeaderConditionalFields(t *testing.T) {
	spec := Mainnet()
	h := spec.GenesisHeader()
	if h.BaseFeePerGas != nil {
		t.Error("mainnet genesis predates London, must have no base fee")
	}
	if h.WithdrawalsRoot != nil {
		t.Error("mainnet genesis predates Shanghai, must have no withdrawals root")
	}

	dev := Dev()
	devHeader := dev.GenesisHeader()
	if devHeader.WithdrawalsRoot == nil {
		t.Error("dev genesis has Shanghai active, must carry a withdrawals root")
	}
	if devHeader.BaseFeePerGas == nil {
		t.Error("dev genesis has London active, must carry a base fee")
	}
}
