package queries

import (
	"errors"
	"fmt"

	"errands/internal/core/domain/model/kernel"
	"errands/internal/pkg/errs"
	"errands/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New("ListOrdersQuery must be created via NewListOrdersQuery constructor")

// OrderScope selects which orders a listing returns.
type OrderScope string

const (
	// ScopePending is the open marketplace: every Pending order that can still be accepted.
	ScopePending OrderScope = "pending"
	// ScopePublished lists the viewer's own orders in any status.
	ScopePublished OrderScope = "published"
	// ScopeAccepted lists the orders the viewer has taken, in any status.
	ScopeAccepted OrderScope = "accepted"
)

func ParseOrderScope(s string) (OrderScope, error) {
	switch scope := OrderScope(s); scope {
	case ScopePending, ScopePublished, ScopeAccepted:
		return scope, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("scope", fmt.Errorf("%q is not a known order scope", s))
	}
}

type ListOrdersQuery struct {
	scope    OrderScope
	viewerID kernel.UUID
	page     Page

	guard guard.ConstructorGuard
}

func NewListOrdersQuery(scope OrderScope, viewerID kernel.UUID, page Page) (ListOrdersQuery, error) {
	_, scopeErr := ParseOrderScope(string(scope))
	if err := errors.Join(scopeErr, viewerID.Validate(), page.validate()); err != nil {
		return ListOrdersQuery{}, err
	}

	return ListOrdersQuery{
		scope:    scope,
		viewerID: viewerID,
		page:     page,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Scope() OrderScope     { return q.scope }
func (q ListOrdersQuery) ViewerID() kernel.UUID { return q.viewerID }
func (q ListOrdersQuery) Page() Page            { return q.page }
