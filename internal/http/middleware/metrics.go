package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HTTPRecorder принимает наблюдения за HTTP-запросами.
type HTTPRecorder interface {
	ObserveHTTP(method, route string, status int, d time.Duration)
}

// Metrics учитывает запросы по шаблону маршрута chi (а не по сырому пути),
// чтобы кардинальность меток не зависела от id в URL.
func Metrics(rec HTTPRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		if rec == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := newStatusWriter(w)
			start := time.Now()
			next.ServeHTTP(sw, r)

			route := "unmatched"
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					route = p
				}
			}

			rec.ObserveHTTP(r.Method, route, sw.Status(), time.Since(start))
		})
	}
}
