/*
Package activation decides which per-slide side effect runs when a slide is
first shown, and remembers that it already ran.

Hooks are resolved by slide index through a chain of resolvers. The explicit
Registry (index to hook, populated at setup) is consulted first; the
ConventionResolver, which looks hooks up by the conventional name "slide-<N>"
in a NamedRegistry, is the lowest priority fallback. An index that resolves to
nothing is a no-op.

The Tracker records which indices already fired so automatic activation happens
at most once per index for the lifetime of a controller.
*/
package activation
