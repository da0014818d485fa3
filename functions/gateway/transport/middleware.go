package transport

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/racquetek/booking-api/functions/gateway/helpers"
)

const RequestIDHeader = "X-Request-Id"

type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if sw.wroteHeader {
		return
	}
	sw.status = code
	sw.wroteHeader = true
	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.wroteHeader {
		sw.WriteHeader(http.StatusOK)
	}
	return sw.ResponseWriter.Write(b)
}

// WithRequestID reuses an inbound X-Request-Id or mints a new one, and puts it
// on the context and the response.
func WithRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), helpers.RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(helpers.RequestIDKey).(string)
	return id
}

func WithLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		log.Printf("%s %s %d %s request_id=%s",
			r.Method, r.URL.Path, sw.status, time.Since(start), RequestIDFromContext(r.Context()))
	})
}

func WithRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("ERR: panic recovered request_id=%s: %v\n%s",
					RequestIDFromContext(r.Context()), rec, debug.Stack())
				SendErrorMessage(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError, nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// WithCORS allows allowedOrigin and answers preflight requests directly.
func WithCORS(allowedOrigin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (allowedOrigin == "*" || origin == allowedOrigin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+RequestIDHeader)
				w.Header().Add("Vary", "Origin")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TokenParser validates an admin bearer token and returns the admin's email.
type TokenParser interface {
	ParseAdminToken(token string) (string, error)
}

// RequireAdmin rejects requests without a valid admin bearer token.
func RequireAdmin(parser TokenParser, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			SendErrorMessage(w, "Missing bearer token", http.StatusUnauthorized, nil)
			return
		}
		email, err := parser.ParseAdminToken(strings.TrimSpace(token))
		if err != nil {
			SendErrorMessage(w, "Invalid or expired token", http.StatusUnauthorized, err)
			return
		}
		ctx := context.WithValue(r.Context(), helpers.AdminEmailKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func AdminEmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(helpers.AdminEmailKey).(string)
	return email
}
