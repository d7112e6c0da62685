package app

import (
	"fmt"
	"strings"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

var _ sdk.InvariantRegistry = (*InvariantRegistry)(nil)

type invariantRoute struct {
	module    string
	route     string
	invariant sdk.Invariant
}

// FullRoute returns the module/route name of the invariant.
func (r invariantRoute) FullRoute() string {
	return r.module + "/" + r.route
}

// InvariantRegistry collects module invariants so they can be asserted
// after genesis, after simulation runs and on demand.
type InvariantRegistry struct {
	routes []invariantRoute
}

// NewInvariantRegistry returns an empty registry.
func NewInvariantRegistry() *InvariantRegistry {
	return &InvariantRegistry{}
}

// RegisterRoute adds an invariant under module/route.
func (r *InvariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, invariantRoute{module: moduleName, route: route, invariant: invar})
}

// Routes returns the registered module/route names in registration order.
func (r *InvariantRegistry) Routes() []string {
	names := make([]string, 0, len(r.routes))
	for _, route := range r.routes {
		names = append(names, route.FullRoute())
	}
	return names
}

// Assert runs every invariant against ctx and reports all broken ones.
func (r *InvariantRegistry) Assert(ctx sdk.Context) error {
	var broken []string
	for _, route := range r.routes {
		if msg, stop := route.invariant(ctx); stop {
			ctx.Logger().Error("invariant broken", "route", route.FullRoute())
			broken = append(broken, msg)
		}
	}
	if len(broken) > 0 {
		return fmt.Errorf("%d invariant(s) broken:\n%s", len(broken), strings.Join(broken, "\n"))
	}
	return nil
}

// CheckInvariants asserts every registered invariant against the latest
// working state.
func (app *App) CheckInvariants() error {
	return app.invariants.Assert(app.NewContext())
}
