package consts

const (
	MediaTempKey   = "media:temp"
	StoreChangedCh = "store:changed:"
)

const (
	ComposerGenLock = "composer:generate:lock:"
)
