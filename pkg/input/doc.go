// Package input translates raw input events into navigation intents.
//
// Adapters hold no navigation state. Each one forwards a domain.Intent to a
// Navigator, normally a *navigation.Controller.
package input
