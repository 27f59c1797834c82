package domain

import "time"

// Authority response sentinels
const (
	ResponseSuccess    = "success"
	ResponseFailPrefix = "fail:"
)

// 'Y'/'N' flag encoding
const (
	FlagYes = "Y"
	FlagNo  = "N"
)

// DefaultLevel is shown when the profile has no level
const DefaultLevel = "MEMBER"

// RouletteSegmentCount is the number of slices on the wheel
const RouletteSegmentCount = 6

// Nickname length bounds enforced before a CHANGE_NICK call
const (
	NicknameMinLength = 2
	NicknameMaxLength = 10
)

// TimestampLayouts lists accepted ledger timestamp formats, most specific first
var TimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}
