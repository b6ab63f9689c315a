package chain

import (
	"testing"

	"github.com/holiman/uint256"
)

func TestBlockCondition(t *testing.T) {
	c := Block(100)
	if c.ActiveAtBlock(99) {
		t.Error("should not be active before activation block")
	}
	if !c.ActiveAtBlock(100) {
		t.Error("should be active at activation block")
	}
	if !c.ActiveAtBlock(101) {
		t.Error("should be active after activation block")
	}
	if c.ActiveAtTimestamp(1 << 32) {
		t.Error("block condition must never be active by timestamp")
	}
	if !c.TransitionsAtBlock(100) || c.TransitionsAtBlock(101) {
		t.Error("TransitionsAtBlock must be true only at the exact activation block")
	}
}

func TestTimestampCondition(t *testing.T) {
	c := Timestamp(1000)
	if c.ActiveAtTimestamp(999) {
		t.Error("should not be active before activation timestamp")
	}
	if !c.ActiveAtTimestamp(1000) {
		t.Error("should be active at activation timestamp")
	}
	if c.ActiveAtBlock(1 << 32) {
		t.Error("timestamp condition must never be active by block")
	}
}

func TestTTDCondition(t *testing.T) {
	threshold := uint256.NewInt(1000)
	c := TTD(threshold, nil)

	if c.ActiveAtTTD(uint256.NewInt(999), uint256.NewInt(0)) {
		t.Error("should not be active below threshold")
	}
	if !c.ActiveAtTTD(uint256.NewInt(1000), uint256.NewInt(0)) {
		t.Error("should be active at threshold")
	}
	// Saturating subtraction: difficulty greater than cumulative total must
	// not underflow to a huge value that spuriously satisfies the threshold.
	if c.ActiveAtTTD(uint256.NewInt(5), uint256.NewInt(10)) {
		t.Error("saturating subtraction must not allow underflow to satisfy TTD")
	}
	if c.ActiveAtBlock(1 << 32) {
		t.Error("unpinned TTD condition must never be active by block")
	}

	block := uint64(42)
	pinned := TTD(threshold, &block)
	if !pinned.ActiveAtBlock(42) || pinned.ActiveAtBlock(41) {
		t.Error("pinned TTD condition must become block-active exactly at its known fork block")
	}
}

func TestActiveAtHead(t *testing.T) {
	c := Timestamp(500)
	head := Head{Number: 0, Timestamp: 500, TotalDifficulty: uint256.NewInt(0), Difficulty: uint256.NewInt(0)}
	if !c.ActiveAtHead(head) {
		t.Error("ActiveAtHead should defer to the timestamp predicate")
	}
}

func TestNeverCondition(t *testing.T) {
	c := Never()
	if !c.IsNever() {
		t.Error("Never() must report IsNever")
	}
	if c.ActiveAtBlock(0) || c.ActiveAtTimestamp(0) {
		t.Error("Never() must never be active")
	}
	if _, ok := c.AsTimestamp(); ok {
		t.Error("Never() must not have a timestamp")
	}
}
