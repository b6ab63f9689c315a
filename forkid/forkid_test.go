package forkid

import (
	"encoding/hex"
	"testing"

	"github.com/chainkit/chainspec/chain"
)

func decodeHash(t *testing.T, s string) [4]byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil || len(b) != 4 {
		t.Fatalf("bad test fixture hash %q: %v", s, err)
	}
	var out [4]byte
	copy(out[:], b)
	return out
}

func TestNewMainnet(t *testing.T) {
	spec := chain.Mainnet()

	tests := []struct {
		head uint64
		time uint64
		hash string
		next uint64
	}{
		{0, 0, "fc64ec04", 1150000},                  // Unsynced
		{1149999, 0, "fc64ec04", 1150000},             // Last Frontier block
		{1150000, 0, "97c2c34c", 1920000},             // First Homestead block
		{1919999, 0, "97c2c34c", 1920000},             // Last Homestead block
		{1920000, 0, "91d1f948", 2463000},             // First DAO block
		{2462999, 0, "91d1f948", 2463000},             // Last DAO block
		{2463000, 0, "7a64da13", 2675000},             // First Tangerine block
		{2674999, 0, "7a64da13", 2675000},             // Last Tangerine block
		{2675000, 0, "3edd5b10", 4370000},             // First Spurious block
		{4369999, 0, "3edd5b10", 4370000},              // Last Spurious block
		{4370000, 0, "a00bc324", 7280000},              // First Byzantium block
		{7279999, 0, "a00bc324", 7280000},              // Last Byzantium block
		{7280000, 0, "668db0af", 9069000},              // First/Second Constantinople/Petersburg block
		{9068999, 0, "668db0af", 9069000},              // Last Constantinople/Petersburg block
		{9069000, 0, "879d6e30", 9200000},              // First Istanbul block
		{9199999, 0, "879d6e30", 9200000},              // Last Istanbul block
		{9200000, 0, "e029e991", 12244000},             // First Muir Glacier block
		{12243999, 0, "e029e991", 12244000},            // Last Muir Glacier block
		{12244000, 0, "0eb440f6", 12965000},            // First Berlin block
		{12964999, 0, "0eb440f6", 12965000},            // Last Berlin block
		{12965000, 0, "b715077d", 13773000},            // First London block
		{13772999, 0, "b715077d", 13773000},            // Last London block
		{13773000, 0, "20c327fc", 15050000},            // First Arrow Glacier block
		{15049999, 0, "20c327fc", 15050000},            // Last Arrow Glacier block
		{15050000, 0, "f0afd0e3", 1681338455},          // First Gray Glacier block and first Merge block since mainnet is already merged
		{20000000, 1681338454, "f0afd0e3", 1681338455}, // Last block before Shanghai
		{20000000, 1681338455, "dce96c2d", 1710338135}, // First Shanghai block
		{20000000, 1710338134, "dce96c2d", 1710338135}, // Last block before Cancun
		{20000000, 1710338135, "9f3d2254", 0},          // First Cancun block
		{20000000, 2000000000, "9f3d2254", 0},          // Future Cancun block
	}

	for _, tt := range tests {
		head := chain.Head{Number: tt.head, Timestamp: tt.time}
		got := New(spec, head)
		want := ID{Hash: decodeHash(t, tt.hash), Next: tt.next}
		if got != want {
			t.Errorf("head=%d time=%d: got %s want %s", tt.head, tt.time, got, want)
		}
	}
}

func TestNewFilterMainnet(t *testing.T) {
	spec := chain.Mainnet()

	var head chain.Head
	filter := NewFilter(spec, func() chain.Head { return head })

	tests := []struct {
		head uint64
		time uint64
		id   ID
		err  error
	}{
		// Local is mainnet Petersburg, remote announces the same: connect.
		{7987396, 0, ID{Hash: decodeHash(t, "668db0af"), Next: 9069000}, nil},
		// Local is mainnet Petersburg, remote announces Byzantium (previous
		// fork): subset with matching next, connect.
		{7987396, 0, ID{Hash: decodeHash(t, "a00bc324"), Next: 7280000}, nil},
		// Local is mainnet Petersburg, remote announces Spurious (two forks
		// behind): subset with matching next, connect.
		{7987396, 0, ID{Hash: decodeHash(t, "3edd5b10"), Next: 4370000}, nil},
		// Local is mainnet Byzantium, remote announces Petersburg (ahead but
		// known future): superset, connect.
		{7279999, 0, ID{Hash: decodeHash(t, "668db0af"), Next: 9069000}, nil},
		// Local is mainnet Petersburg, remote announces Spurious with a
		// wrong next fork: stale remote.
		{7987396, 0, ID{Hash: decodeHash(t, "3edd5b10"), Next: 4369999}, ErrRemoteStale},
		// Local is mainnet Petersburg, remote announces a checksum matching
		// no local state: reject.
		{7987396, 0, ID{Hash: decodeHash(t, "afec6b27"), Next: 0}, ErrLocalIncompatibleOrStale},
		// Local is mainnet Cancun, remote announces Cancun too: connect.
		{20000000, 1710338135, ID{Hash: decodeHash(t, "9f3d2254"), Next: 0}, nil},
	}

	for _, tt := range tests {
		head = chain.Head{Number: tt.head, Timestamp: tt.time}
		if err := filter(tt.id); err != tt.err {
			t.Errorf("head=%d time=%d id=%s: got err %v want %v", tt.head, tt.time, tt.id, err, tt.err)
		}
	}
}

func TestGenesisDedupAndSharedActivation(t *testing.T) {
	// A chain where several hardforks share block 0 (the genesis-skip rule)
	// and two hardforks share the exact same later activation block (the
	// dedup rule) must fold to a single checksum update per distinct point.
	b := chain.NewBuilder(1234, chain.Genesis{Number: 0})
	b.WithFork(chain.Frontier, chain.Block(0)).
		WithFork(chain.Homestead, chain.Block(0)).
		WithFork(chain.Byzantium, chain.Block(100)).
		WithFork(chain.Constantinople, chain.Block(100)). // shares activation point with Byzantium
		WithBaseFeeParams(chain.EthereumBaseFeeParams)
	spec := b.Build()

	idBefore := New(spec, chain.Head{Number: 50})
	idAt := New(spec, chain.Head{Number: 100})
	idAfter := New(spec, chain.Head{Number: 101})

	if idBefore.Next != 100 {
		t.Fatalf("expected next fork at 100, got %d", idBefore.Next)
	}
	if idAt != idAfter {
		t.Fatalf("expected Byzantium and Constantinople sharing block 100 to fold into one checksum update, got %s vs %s", idAt, idAfter)
	}
	if idAt.Next != 0 {
		t.Fatalf("expected no further fork pending, got next=%d", idAt.Next)
	}
}

func TestHardforkID(t *testing.T) {
	spec := chain.Mainnet()
	id := HardforkID(spec, chain.Shanghai)
	want := New(spec, chain.Head{Number: 20000000, Timestamp: 1681338455})
	if id != want {
		t.Fatalf("HardforkID(Shanghai) = %s, want %s", id, want)
	}
}
