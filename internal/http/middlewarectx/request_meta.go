package middlewarectx

import (
	"net"
	"net/http"

	"github.com/magabrotheeeer/talent-marketplace/internal/services/accesslog"
)

// RequestMeta сохраняет IP-адрес и User-Agent запроса для журнала доступа.
// Ожидает, что middleware.RealIP уже переписал RemoteAddr.
func RequestMeta(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := accesslog.WithRequestMeta(r.Context(), accesslog.RequestMeta{
			IPAddress: clientIP(r.RemoteAddr),
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}
