package chain

import (
	"strings"
	"testing"
)

func TestDisplayHardforksPartition(t *testing.T) {
	spec := Mainnet()
	d := NewDisplayHardforks(spec)

	out := d.String()
	if !strings.Contains(out, "Pre-merge hard forks (block based):") {
		t.Error("missing pre-merge section header")
	}
	if !strings.Contains(out, "Merge hard forks:") {
		t.Error("missing merge section header")
	}
	if !strings.Contains(out, "Post-merge hard forks (timestamp based):") {
		t.Error("missing post-merge section header")
	}
	if !strings.Contains(out, "Frontier") || !strings.Contains(out, "@0") {
		t.Error("expected Frontier @0 in pre-merge section")
	}
	if !strings.Contains(out, "network is not known to be merged") {
		t.Error("mainnet's Paris has no known fork block, must say so")
	}
	if !strings.Contains(out, "Shanghai") {
		t.Error("expected Shanghai in post-merge section")
	}
}

func TestDisplayHardforksKnownMerged(t *testing.T) {
	spec := Sepolia()
	d := NewDisplayHardforks(spec)
	out := d.String()
	if !strings.Contains(out, "network is known to be merged") {
		t.Error("sepolia's Paris has a known fork block, must say so")
	}
}
