package chain

import "errors"

// ErrEmptyBaseFeeParamsSchedule is the value BaseFeeParamsSchedule.At panics
// with when the schedule has no entries to resolve against.
var ErrEmptyBaseFeeParamsSchedule = errors.New("chain: base fee params schedule has no entries")

// ErrMissingGenesisConfig is returned by SpecFromDocument when the foreign
// genesis document has no "config" object to adapt.
var ErrMissingGenesisConfig = errors.New("chain: genesis document missing \"config\"")
