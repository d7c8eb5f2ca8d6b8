package pdns

import (
	"context"
	"fmt"
	"net/http"

	"nathanbeddoewebdev/pdnsctl/internal/pdns/domain"
	"nathanbeddoewebdev/pdnsctl/internal/pdns/path"
)

// resource is the part shared by every handle: the client, the handle's
// own path and the path of the collection it belongs to.
//
// A path that could not be resolved is kept in err and reported by the
// first request made through the handle.
type resource struct {
	c      *Client
	path   string
	parent string
	err    error
}

// collection returns the handle for a child collection, such as "zones".
func (r resource) collection(kind string) resource {
	if r.err != nil {
		return r
	}
	p, err := path.Resolve(r.path, kind)
	return resource{c: r.c, path: p, parent: r.path, err: err}
}

// member returns the handle for one element of a child collection.
func (r resource) member(kind, id string) resource {
	if r.err != nil {
		return r
	}
	coll := r.collection(kind)
	if coll.err != nil {
		return coll
	}
	if id == "" {
		return resource{c: r.c, err: fmt.Errorf("%w: %s id is required", domain.ErrValidation, kind)}
	}
	p, err := path.Resolve(r.path, kind, id)
	return resource{c: r.c, path: p, parent: coll.path, err: err}
}

// Path returns the resource path without version prefix.
func (r resource) Path() string {
	return r.path
}

func (r resource) get(ctx context.Context, out any) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodGet, r.path, nil, out)
}

func (r resource) change(ctx context.Context, body any, out any) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodPut, r.path, body, out)
}

func (r resource) patch(ctx context.Context, body any) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodPatch, r.path, body, nil)
}

func (r resource) delete(ctx context.Context) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodDelete, r.path, nil, nil)
}

// create POSTs info to the collection the resource belongs to.
func (r resource) create(ctx context.Context, info any, out any) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodPost, r.parent, info, out)
}

// action PUTs an empty body to a verb below the resource, such as /notify.
func (r resource) action(ctx context.Context, verb string, out any) error {
	if r.err != nil {
		return r.err
	}
	p, err := path.Resolve(r.path, verb)
	if err != nil {
		return err
	}
	return r.c.do(ctx, http.MethodPut, p, nil, out)
}

// post POSTs body to the resource's own path, for collections.
func (r resource) post(ctx context.Context, body any, out any) error {
	if r.err != nil {
		return r.err
	}
	return r.c.do(ctx, http.MethodPost, r.path, body, out)
}
