// Package driving defines the interfaces through which the outside world
// drives the core pipeline. The CLI depends on these; the services
// implement them.
package driving
