package cli

import (
	"bufio"
	"context"

	"github.com/akarpov/blogbox/internal/client/route"
)

func (a *App) getStatus() string {
	s := a.controller.Current()
	if s.IsEmpty() {
		return "(anonymous)"
	}
	return "(" + s.User.Name + ")"
}

// Root is the "/" route. The stored credential is reconciled with the
// server exactly once; until that settles nothing is rendered, and the
// visitor then lands on /blogs or /login according to the outcome.
func (a *App) Root(ctx context.Context) {

	printlnFn("Welcome to blogbox (type 'help' for commands)")

	switch target, _ := a.resolveStartup(ctx); target {
	case route.Blogs:
		printlnFn("Redirecting to /blogs")
		_ = a.Blogs(ctx)
	case route.Login:
		printlnFn("Redirecting to /login")
		_ = a.Login(ctx)
	}

	// single buffered reader for the whole session
	scanner := bufio.NewScanner(a.reader)
	runREPL(ctx, a, a.getStatus, scanner)
}

// resolveStartup drives the bootstrap resolver to a terminal outcome and
// returns the root redirect target.
func (a *App) resolveStartup(ctx context.Context) (route.Route, bool) {
	a.resolver.Resolve(ctx)
	return a.resolver.RootRedirect()
}
