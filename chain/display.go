package chain

import (
	"fmt"
	"strings"
)

// displayFork is a single formatted line of a hardfork listing.
type displayFork struct {
	name        string
	condition   ForkCondition
	knownMerged bool
}

func (f displayFork) String() string {
	switch {
	case f.condition.kind == kindBlock:
		return fmt.Sprintf("%-32s @%d", f.name, f.condition.block)
	case f.condition.kind == kindTimestamp:
		return fmt.Sprintf("%-32s @%d", f.name, f.condition.timestamp)
	case f.condition.kind == kindTTD:
		merged := "network is not known to be merged"
		if f.knownMerged {
			merged = "network is known to be merged"
		}
		return fmt.Sprintf("%-32s @%s (%s)", f.name, f.condition.ttd.Dec(), merged)
	default:
		return f.name
	}
}

// DisplayHardforks is a pretty-printable partition of a Spec's hardfork
// table into pre-merge (block based), merge (TTD based) and post-merge
// (timestamp based) groups, each rendered in CanonicalOrder.
type DisplayHardforks struct {
	preMerge  []displayFork
	withMerge []displayFork
	postMerge []displayFork
}

// NewDisplayHardforks partitions s's configured hardforks for display.
func NewDisplayHardforks(s *Spec) DisplayHardforks {
	var d DisplayHardforks
	for _, hf := range CanonicalOrder() {
		c := s.Fork(hf)
		switch c.kind {
		case kindBlock:
			d.preMerge = append(d.preMerge, displayFork{name: hf.String(), condition: c})
		case kindTTD:
			_, known := c.ForkBlock()
			d.withMerge = append(d.withMerge, displayFork{name: hf.String(), condition: c, knownMerged: known})
		case kindTimestamp:
			d.postMerge = append(d.postMerge, displayFork{name: hf.String(), condition: c})
		}
	}
	return d
}

// String renders the full three-section listing. The pre-merge header is
// always written; the merge and post-merge sections are omitted when they
// have no entries.
func (d DisplayHardforks) String() string {
	var b strings.Builder
	b.WriteString("Pre-merge hard forks (block based):\n")
	for _, f := range d.preMerge {
		fmt.Fprintf(&b, "- %s\n", f)
	}
	if len(d.withMerge) > 0 {
		b.WriteString("Merge hard forks:\n")
		for _, f := range d.withMerge {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	if len(d.postMerge) > 0 {
		b.WriteString("Post-merge hard forks (timestamp based):\n")
		for _, f := range d.postMerge {
			fmt.Fprintf(&b, "- %s\n", f)
		}
	}
	return b.String()
}
