package accesslog

import "context"

// RequestMeta — сведения о запросе, которые попадают в журнал.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

type metaKey struct{}

// WithRequestMeta кладёт сведения о запросе в контекст.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	return context.WithValue(ctx, metaKey{}, meta)
}

// RequestMetaFrom достаёт сведения о запросе из контекста.
func RequestMetaFrom(ctx context.Context) (RequestMeta, bool) {
	meta, ok := ctx.Value(metaKey{}).(RequestMeta)
	return meta, ok
}
