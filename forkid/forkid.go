// Package forkid implements EIP-2124 fork identifier computation and the
// peer fork-id compatibility filter built on top of it.
//
// This package imports chain, not the other way around, mirroring how real
// go-ethereum splits core/forkid (the CRC engine) from params.ChainConfig
// (the static fork table): the table has no business knowing how peers
// validate each other, and keeping the dependency one-directional avoids an
// import cycle between "what forks exist" and "how forks are hashed".
package forkid

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/chainkit/chainspec/chain"
)

var (
	// ErrRemoteStale is returned by a Filter if a remote fork checksum is a
	// subset of our already applied forks, but the announced next fork
	// block/time is not on our already passed chain.
	ErrRemoteStale = errors.New("forkid: remote needs update")

	// ErrLocalIncompatibleOrStale is returned by a Filter if a remote fork
	// checksum does not match any local checksum variation, signalling that
	// the two chains diverged at some point, possibly at genesis.
	ErrLocalIncompatibleOrStale = errors.New("forkid: local incompatible or needs update")
)

// ID is the EIP-2124 fork identifier: a checksum of every fork activation
// point already passed, plus the raw block number or timestamp of the next
// one still pending (0 if none is known).
type ID struct {
	Hash [4]byte
	Next uint64
}

func (id ID) String() string {
	return fmt.Sprintf("{hash=%x next=%d}", id.Hash, id.Next)
}

// activationPoint is a single fold input to the checksum: either a block
// number (pass 1) or a timestamp (pass 2). EIP-6122 requires every
// block-pass point to be folded before any timestamp-pass point regardless
// of their numeric values, since block numbers and unix timestamps are not
// comparable quantities.
type activationPoint struct {
	value     uint64
	timestamp bool
}

func (p activationPoint) passed(head chain.Head) bool {
	if p.timestamp {
		return p.value <= head.Timestamp
	}
	return p.value <= head.Number
}

// New computes the EIP-2124 fork ID for spec as observed from head.
func New(spec *chain.Spec, head chain.Head) ID {
	points := activationPoints(spec)

	sum := crc32.ChecksumIEEE(genesisBytes(spec))
	var next uint64
	for _, p := range points {
		if p.passed(head) {
			sum = checksumUpdate(sum, p.value)
			continue
		}
		next = p.value
		break
	}

	var id ID
	binary.BigEndian.PutUint32(id.Hash[:], sum)
	id.Next = next
	return id
}

// activationPoints gathers every hardfork's genesis-skipped, deduplicated
// activation point for spec, in the two-pass order EIP-6122 requires: all
// block-based points (sorted ascending) followed by all timestamp-based
// points (sorted ascending).
func activationPoints(spec *chain.Spec) []activationPoint {
	var out []activationPoint
	for _, b := range collectPoints(spec, chain.ForkCondition.BlockActivationPoint) {
		out = append(out, activationPoint{value: b})
	}
	genesisTime := spec.Genesis().Timestamp
	for _, t := range collectPoints(spec, chain.ForkCondition.AsTimestamp) {
		if t <= genesisTime {
			// Active at genesis already: folds nothing, like block 0.
			continue
		}
		out = append(out, activationPoint{value: t, timestamp: true})
	}
	return out
}

// collectPoints runs extract over every hardfork configured on spec (in
// canonical order), dropping points extract declines (ok == false) or that
// equal zero: a zero-valued activation point is a genesis-time activation,
// which every node agrees on by definition and so carries no discriminating
// information for fork-id hashing. Repeated points are folded once.
// activationPoints additionally drops timestamp points at or before the
// genesis timestamp.
func collectPoints(spec *chain.Spec, extract func(chain.ForkCondition) (uint64, bool)) []uint64 {
	seen := map[uint64]struct{}{}
	var out []uint64
	spec.Forks(func(_ chain.Hardfork, c chain.ForkCondition) bool {
		if v, ok := extract(c); ok && v != 0 {
			if _, dup := seen[v]; !dup {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
		return true
	})
	sortUint64(out)
	return out
}

func sortUint64(s []uint64) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}

func genesisBytes(spec *chain.Spec) []byte {
	h := spec.GenesisHash()
	return h[:]
}

// checksumUpdate folds an activation point into an existing checksum,
// equivalent to checksum(original-blob || point).
func checksumUpdate(hash uint32, point uint64) uint32 {
	var blob [8]byte
	binary.BigEndian.PutUint64(blob[:], point)
	return crc32.Update(hash, crc32.IEEETable, blob[:])
}

// Filter validates a remote peer's announced ID against spec as observed
// from a (possibly advancing) local head.
type Filter func(id ID) error

// NewFilter builds a Filter bound to spec and a function returning the
// current local head, so the filter tracks chain growth rather than being
// pinned to the head at construction time.
func NewFilter(spec *chain.Spec, headFn func() chain.Head) Filter {
	points := activationPoints(spec)

	// sums[j] is the checksum after folding in points[0..j-1]; it is the
	// fork state of a peer that has passed exactly those points. next[j] is
	// the activation point a peer in that state should next announce.
	sums := make([]uint32, len(points)+1)
	next := make([]uint64, len(points)+1)
	sums[0] = crc32.ChecksumIEEE(genesisBytes(spec))
	for i, p := range points {
		sums[i+1] = checksumUpdate(sums[i], p.value)
		next[i] = p.value
	}
	next[len(points)] = 0 // every point passed: nothing pending

	// A sentinel point that can never be passed lets the validator loop run
	// uniformly without special-casing the final entry.
	points = append(points, activationPoint{value: math.MaxUint64})

	return func(id ID) error {
		head := headFn()
		remoteSum := binary.BigEndian.Uint32(id.Hash[:])

		for i, p := range points {
			if p.passed(head) {
				continue
			}
			// i is the first not-yet-passed activation point: our local
			// fork state is sums[i].
			if sums[i] == remoteSum {
				// Rule 1: checksums match exactly, same fork state.
				return nil
			}
			for j := 0; j < i; j++ {
				if sums[j] == remoteSum {
					// Rule 2: remote is a subset of our passed forks; its
					// announced next point must agree with ours.
					if next[j] != id.Next {
						return ErrRemoteStale
					}
					return nil
				}
			}
			for j := i + 1; j < len(sums); j++ {
				if sums[j] == remoteSum {
					// Rule 3: remote is a superset; we're the one syncing.
					return nil
				}
			}
			return ErrLocalIncompatibleOrStale
		}
		return nil
	}
}
