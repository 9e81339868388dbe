package middleware

import "net/http"

type CORSMiddleware struct {
	allowOrigin string
}

// NewCORSMiddleware allows allowOrigin, or every origin when it is empty.
func NewCORSMiddleware(allowOrigin string) *CORSMiddleware {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return &CORSMiddleware{allowOrigin: allowOrigin}
}

func (m *CORSMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", m.allowOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, req)
	})
}
