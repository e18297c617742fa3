// Package event delivers character-insertion notifications from the
// host to interested listeners.
//
// Delivery is synchronous and in subscription order: Publish calls each
// listener to completion before returning, and the host guarantees
// events arrive one at a time in keystroke order. The Toggle type turns
// a listener into a user-facing enable/disable switch by registering
// and unregistering it.
package event
