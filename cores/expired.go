package cores

import "github.com/meshcores/corenet/route"

// ExpiredCoresPackage is a package that has reached the end of its
// route: RemainingRoute is what is left once the final hop has been
// shifted off, so it holds no hops (IsTerminal reports true), and
// Payload is ready to hand to the component named by that final hop.
type ExpiredCoresPackage struct {
	RemainingRoute *route.Route
	Payload        []byte
}
