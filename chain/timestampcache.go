package chain

// timestampCache holds optional fast-path copies of the timestamp-based
// hardfork activations, populated once at Build() time by scanning the
// fork table. Consulted first by the hot Is{Shanghai,Cancun}ActiveAtTimestamp
// predicates so a lookup never has to walk the canonical hardfork order;
// falls back to the general fork table for any entry left unset, so a
// partially populated cache is never wrong, only slower.
type timestampCache struct {
	shanghai *uint64
	cancun   *uint64
	canyon   *uint64
	ecotone  *uint64
}

// buildTimestampCache scans forks for every timestamp-activated hardfork
// this cache tracks. Hardforks left at Never (or configured as Block/TTD)
// leave the corresponding cache entry nil.
func buildTimestampCache(forks map[Hardfork]ForkCondition) timestampCache {
	var c timestampCache
	c.shanghai = cachedTimestamp(forks, Shanghai)
	c.cancun = cachedTimestamp(forks, Cancun)
	c.canyon = cachedTimestamp(forks, Canyon)
	c.ecotone = cachedTimestamp(forks, Ecotone)
	return c
}

func cachedTimestamp(forks map[Hardfork]ForkCondition, hf Hardfork) *uint64 {
	c, ok := forks[hf]
	if !ok {
		return nil
	}
	if ts, ok := c.AsTimestamp(); ok {
		return &ts
	}
	return nil
}

// activeAt reports whether the cached timestamp for a fork is set and has
// passed ts; ok is false when the cache has no entry, signalling the caller
// should fall back to the general fork table.
func activeAt(cached *uint64, ts uint64) (active, ok bool) {
	if cached == nil {
		return false, false
	}
	return ts >= *cached, true
}
