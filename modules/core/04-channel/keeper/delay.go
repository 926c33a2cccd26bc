package keeper

import "time"

// DefaultMaxExpectedTimePerBlock is used when a host never overrides it by
// setting Keeper.MaxExpectedTimePerBlock.
const DefaultMaxExpectedTimePerBlock = 30 * time.Second

// calculateBlockDelay converts a connection's delay_period into the number
// of blocks a receiving chain must additionally wait, given its own
// estimate of how long a block takes.
func calculateBlockDelay(delayPeriod, maxExpectedTimePerBlock time.Duration) uint64 {
	if maxExpectedTimePerBlock <= 0 {
		return 0
	}
	blocks := delayPeriod.Seconds() / maxExpectedTimePerBlock.Seconds()
	ceil := uint64(blocks)
	if float64(ceil) < blocks {
		ceil++
	}
	return ceil
}
