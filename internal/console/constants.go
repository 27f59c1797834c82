package console

// Prompt shown before each command
const PromptCommand = "pointstore>"

// Command names
const (
	CmdHelp       = "help"
	CmdProfile    = "profile"
	CmdInventory  = "inventory"
	CmdUse        = "use"
	CmdCancel     = "cancel"
	CmdDiscard    = "discard"
	CmdIcons      = "icons"
	CmdEquip      = "equip"
	CmdUnequip    = "unequip"
	CmdSpin       = "spin"
	CmdRoulette   = "roulette"
	CmdHistory    = "history"
	CmdWish       = "wish"
	CmdUnwish     = "unwish"
	CmdAttendance = "attendance"
	CmdRefresh    = "refresh"
	CmdQuit       = "quit"
)

// Output text
const (
	MsgUnknownCommand = "unknown command %q, type help"
	MsgUsage          = "usage: %s"
	MsgEmptyInventory = "Your inventory is empty."
	MsgEmptyWishlist  = "Your wishlist is empty."
	MsgEmptyHistory   = "No point history yet."
	MsgIconStats      = "Owned %d of %d icons"
	MsgRarityCount    = "  %s: %d"
	MsgTickets        = "Roulette tickets: %d"
	MsgWheelAt        = "Wheel at %d°, landed on %s"
	MsgAttendance     = "Checked in %d days in %s: %s"
	MsgNoAttendance   = "No check-ins in %s"
	MsgRefreshed      = "Refreshed."
	MsgBye            = "Bye."
	MsgNoScreen       = "The %s screen is not available in the console."
)

// Table headers
var (
	headerInventory = []string{"ID", "Item", "Type", "Qty", "Equipped"}
	headerIcons     = []string{"ID", "Icon", "Rarity", "Owned", "Equipped"}
	headerHistory   = []string{"Date", "Description", "Points"}
	headerWishlist  = []string{"ID", "Item", "Price"}
)

// Layout of dates in the history table and attendance argument
const (
	historyDateLayout = "2006-01-02 15:04"
	monthLayout       = "2006-01"
)

// Log messages
const LogMsgCommandFailed = "Console command failed"
