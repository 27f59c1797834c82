package icon

const (
	LogMsgLoaded       = "Icon collection loaded"
	LogMsgLoadFailed   = "Icon collection load failed"
	LogMsgEquipped     = "Icon equipped"
	LogMsgUnequipped   = "Icon unequipped"
	LogMsgReloadFailed = "Owned icons reload after mutation failed"
)

const (
	opEquip   = "equip"
	opUnequip = "unequip"
)
