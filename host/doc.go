// Package host provides Go-side implementations of component.Host.
//
// Loop is a real-time event loop that runs every callback on the
// goroutine calling Run. Virtual is driven by an explicit clock and is
// meant for tests and headless rendering.
package host
