package bylawkit

import "context"

// RequestInfo carries request-scoped information affecting validation behavior.
// Old is the previous value on update. It can be nil.
type RequestInfo[T any] struct {
	Mode Mode
	Old  *T
}

// DomainCtx provides typed rules with execution context, presence, and request info.
type DomainCtx[T any] struct {
	Ctx      context.Context
	Presence PresenceMap
	Req      RequestInfo[T]
	Ref      Ref
}
