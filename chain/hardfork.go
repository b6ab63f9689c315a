// Package chain implements the chain specification and fork activation
// model for an Ethereum execution-layer node: the Hardfork enumeration,
// the tagged ForkCondition variants that describe how each hardfork turns
// on, and the Spec aggregate that ties a genesis block to its hardfork
// schedule.
package chain

// Hardfork identifies a named Ethereum protocol upgrade. Values are ordered
// by protocol-historical activation order; that order is part of the
// contract, since fork-identifier computation iterates hardforks in exactly
// this sequence regardless of how they were inserted into a Spec.
type Hardfork int

const (
	Frontier Hardfork = iota
	Homestead
	DAO
	Tangerine
	SpuriousDragon
	Byzantium
	Constantinople
	Petersburg
	Istanbul
	MuirGlacier
	Berlin
	London
	ArrowGlacier
	GrayGlacier
	Paris
	Shanghai
	Cancun

	// Layer-2 extension forks, optional and only meaningful on chains that
	// opt into them (e.g. the OP Stack).
	Bedrock
	Regolith
	Canyon
	Ecotone

	numHardforks
)

var hardforkNames = [numHardforks]string{
	Frontier:       "Frontier",
	Homestead:      "Homestead",
	DAO:            "DAO",
	Tangerine:      "Tangerine",
	SpuriousDragon: "SpuriousDragon",
	Byzantium:      "Byzantium",
	Constantinople: "Constantinople",
	Petersburg:     "Petersburg",
	Istanbul:       "Istanbul",
	MuirGlacier:    "MuirGlacier",
	Berlin:         "Berlin",
	London:         "London",
	ArrowGlacier:   "ArrowGlacier",
	GrayGlacier:    "GrayGlacier",
	Paris:          "Paris",
	Shanghai:       "Shanghai",
	Cancun:         "Cancun",
	Bedrock:        "Bedrock",
	Regolith:       "Regolith",
	Canyon:         "Canyon",
	Ecotone:        "Ecotone",
}

// String returns the canonical human-readable name of the hardfork.
func (h Hardfork) String() string {
	if h < 0 || int(h) >= len(hardforkNames) {
		return "Unknown"
	}
	return hardforkNames[h]
}

// CanonicalOrder lists every known hardfork in canonical activation order.
// All iteration over a Spec's hardfork table must follow this sequence,
// never the order hardforks were inserted in, so that fork-id computation
// is independent of map iteration order (see Hardfork table invariant I1).
func CanonicalOrder() []Hardfork {
	order := make([]Hardfork, numHardforks)
	for i := range order {
		order[i] = Hardfork(i)
	}
	return order
}
