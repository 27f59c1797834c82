package fakeauthority

import "time"

// Routes the real authority does not expose to members
const (
	PathAttendanceCheck = "/point/main/attendance/check"
	PathAdminAward      = "/point/admin/award"
)

// Paging and economy constants
const (
	HistoryPageSize     = 10
	AttendancePoints    = 100
	DefaultReplayCache  = 1024
	DefaultRandomPoints = 500
)

// LevelLadder is walked by LEVEL_UP items
var LevelLadder = []string{"MEMBER", "SILVER", "GOLD", "PLATINUM", "DIAMOND"}

// Failure reasons returned in fail: sentinels and {"message"} bodies
const (
	ReasonEntryNotFound    = "inventory entry not found"
	ReasonEmptyEntry       = "no units left"
	ReasonInvalidNickname  = "nickname must be 2 to 10 characters"
	ReasonNotDrawable      = "item is not an icon draw ticket"
	ReasonUseTheDraw       = "open icon draws from the icon screen"
	ReasonUseTheRoulette   = "spend roulette tickets on the roulette"
	ReasonIconNotOwned     = "icon not owned"
	ReasonNoTickets        = "no roulette tickets"
	ReasonAlreadyChecked   = "already checked in today"
	ReasonBadRequest       = "malformed request body"
	ReasonInjectedFailure  = "injected failure"
	ReasonEmptyIconCatalog = "icon catalog is empty"
)

// Ledger reasons written by the authority
const (
	LedgerReasonRefund     = "Refund"
	LedgerReasonRoulette   = "Roulette"
	LedgerReasonAttendance = "Attendance"
)

// Log messages
const (
	LogMsgMutation      = "Authority mutation applied"
	LogMsgReplayed      = "Idempotent request replayed"
	LogMsgFaultInjected = "Injected failure served"
)

// seedTime anchors the demo ledger
var seedTime = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)
