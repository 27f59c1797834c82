package inventory

// Log messages
const (
	LogMsgLoaded          = "Inventory loaded"
	LogMsgLoadFailed      = "Inventory load failed"
	LogMsgUseCalled       = "Use called"
	LogMsgItemUsed        = "Item used"
	LogMsgIconDrawn       = "Icon drawn"
	LogMsgRefunded        = "Purchase refunded"
	LogMsgDiscarded       = "Inventory entry discarded"
	LogMsgReloadFailed    = "Inventory reload after mutation failed"
	LogMsgRouletteHandoff = "Handing off to roulette"
)

// Operation names used in wrapped errors
const (
	opUse     = "use"
	opCancel  = "cancel"
	opDiscard = "discard"
	opDraw    = "draw"
)
