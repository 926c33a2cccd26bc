// Package keeper implements ICS-05 port routing: a static PortId -> Module
// table the channel keeper consults to dispatch handshake and packet
// callbacks to the right application.
package keeper

import (
	"fmt"

	porttypes "github.com/meridian-chain/ibc-core/modules/core/05-port/types"
)

// Router is a static PortId -> Module table built once at app wiring time
// and treated as read-only afterwards; it is not safe to mutate concurrently
// with routing lookups.
type Router struct {
	routes map[string]porttypes.Module
}

// NewRouter builds an empty Router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]porttypes.Module)}
}

// AddRoute binds portID to module. It panics on a duplicate binding: two
// modules claiming the same port is a wiring bug, not a runtime condition.
func (rtr *Router) AddRoute(portID string, module porttypes.Module) *Router {
	if rtr.HasRoute(portID) {
		panic(fmt.Sprintf("route already bound to port %q", portID))
	}
	rtr.routes[portID] = module
	return rtr
}

// HasRoute reports whether portID has a bound module.
func (rtr *Router) HasRoute(portID string) bool {
	_, ok := rtr.routes[portID]
	return ok
}

// Route returns the module bound to portID, or false if none is bound.
func (rtr *Router) Route(portID string) (porttypes.Module, bool) {
	module, ok := rtr.routes[portID]
	return module, ok
}
