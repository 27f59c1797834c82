package notify

// Friendly message constants for member-facing notices
const (
	// Inventory
	MsgUseDone            = "Item used!"
	MsgRefundDone         = "Refund complete."
	MsgDiscardDone        = "Item discarded."
	MsgAlreadyEquipped    = "Already equipped."
	MsgNicknameAborted    = "Nickname change cancelled."
	MsgNicknameInvalid    = "Nicknames must be 2 to 10 characters."
	MsgItemNotUsable      = "This item has no use action."
	MsgEntryGone          = "That item is no longer in your inventory."
	MsgUseFailed          = "Something went wrong while using the item."
	MsgRefundFailed       = "Refund failed."
	MsgDiscardFailed      = "Discard failed."
	MsgDrawFailed         = "Draw failed"
	MsgInventoryLoadError = "Could not load your inventory."

	// Icons
	MsgIconAlreadyEquipped = "That icon is already equipped."
	MsgIconEquipped        = "Icon applied!"
	MsgIconUnequipped      = "Back to the default look."
	MsgIconNotOwned        = "You don't own that icon yet."
	MsgEquipFailed         = "Equip failed."
	MsgUnequipFailed       = "Unequip failed."
	MsgNoIconEquipped      = "No icon is equipped."

	// Roulette
	MsgNoTickets      = "Not enough roulette tickets! Buy one in the store."
	MsgSpinInProgress = "The wheel is already spinning."
	MsgRouletteMiss   = "No luck this time..."
	MsgRouletteRetry  = "Free retry! Your ticket was not used."
	MsgSpinFailed     = "Something went wrong while spinning the roulette."

	// Wishlist
	MsgWishRemoved     = "Removed from your wishlist."
	MsgWishRemoveError = "Could not remove the item."
	MsgWishStale       = "That item is no longer on your wishlist."
	MsgWishLoadError   = "Could not load your wishlist."

	// Ledger
	MsgHistoryLoadError = "Could not load your point history."

	// Attendance
	MsgAttendanceLoadError = "Could not load your attendance calendar."

	// Transport
	MsgNetworkError = "Could not reach the server. Please try again."

	MsgGenericError = "Something went wrong."
)

// Confirmation prompts
const (
	PromptNickname      = "Enter your new nickname (2-10 characters)."
	PromptDecoNick      = "Apply the [%s] nickname style?"
	PromptDrawIcon      = "Draw a random icon? (uses 1 ticket)"
	PromptVoucher       = "Charge points with this voucher?"
	PromptRandomPoint   = "Open the random point box?"
	PromptLevelUp       = "Use the level-up item?"
	PromptGenericUse    = "Use this item?"
	PromptGoToRoulette  = "This item is used on the Lucky Roulette page. Go there now?"
	PromptRefund        = "Cancel the purchase and get a refund?"
	PromptDiscard       = "Really discard this item? This cannot be undone."
	PromptEquipIcon     = "Equip the [%s] icon?"
	PromptUnequipIcon   = "Unequip your current icon?"
	PromptSpin          = "Spend 1 ticket to spin? (tickets left: %d)"
	PromptRemoveWish    = "Remove this item from your wishlist?"
	MsgDrawResultFormat = "%s grade acquired! %s"
	MsgRouletteWin      = "Congratulations! You won %s!"
)
