package ports

// KeyValueStore is the durable slot storage behind the session. It is always
// injected, never reached as a global.
//
// Implementations are errorless by contract: when the backing medium is
// unavailable, Get reports absent and Set/Delete/Clear are silent no-ops, so
// the system degrades to "never authenticated" instead of crashing. Failures
// are logged by the implementation, not surfaced.
type KeyValueStore interface {
	// Get returns the value for key and whether it is present.
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
	// Clear removes every slot the store holds.
	Clear()
}
