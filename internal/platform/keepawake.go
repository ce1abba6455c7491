package platform

// KeepAwake holds or releases the OS stay-awake assertion. Assert is
// idempotent; calling it with the currently realized flags is a no-op.
type KeepAwake interface {
	Assert(active bool, keepDisplayOn bool) error
}

// NewKeepAwake returns a platform-specific keep-awake implementation.
func NewKeepAwake() KeepAwake {
	return newKeepAwake()
}
