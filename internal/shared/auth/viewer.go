// Package auth describes who is making a request, as resolved from their session.
package auth

import "context"

// Viewer is the requesting user. The zero value is an anonymous visitor.
type Viewer struct {
	UserID    int64
	Username  string
	IsShelter bool
}

// Authenticated reports whether the viewer has a session.
func (v Viewer) Authenticated() bool {
	return v.UserID > 0
}

type viewerKey struct{}

// WithViewer stores v on ctx.
func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

// FromContext returns the viewer stored on ctx, or an anonymous viewer.
func FromContext(ctx context.Context) Viewer {
	if ctx == nil {
		return Viewer{}
	}
	v, _ := ctx.Value(viewerKey{}).(Viewer)
	return v
}
