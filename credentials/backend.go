package credentials

// Backend is a plain key-value surface over whichever storage the host
// application provides. Implementations never surface errors: a failed
// read is an absent key and a failed write is silently dropped, which
// keeps the UI usable when storage is disabled or full.
type Backend interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}
