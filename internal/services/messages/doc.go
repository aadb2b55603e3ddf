// Package messagesvc implements the message facade on top of the durable
// store. Every mutation goes through here so the write-then-broadcast order
// is enforced in one place: the record is durable before any subscriber
// hears about it.
package messagesvc
