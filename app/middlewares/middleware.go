package middlewares

import (
	"log"
	"net/http"
	"strings"

	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/utils/sessions"
	"github.com/unrolled/render"
)

// MethodOverrideMiddleware lets multipart clients tunnel PUT/PATCH/DELETE
// through POST with a _method form field, since browsers only send files
// over POST.
func MethodOverrideMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			contentType := r.Header.Get("Content-Type")
			if strings.HasPrefix(contentType, "multipart/form-data") {
				_ = r.ParseMultipartForm(maxMultipartMemory)
			} else if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
				_ = r.ParseForm()
			}
			switch strings.ToUpper(r.Form.Get("_method")) {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodPatch:
				r.Method = http.MethodPatch
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}

const maxMultipartMemory = 32 << 20

// RequireAuth guards the /data subrouter. A missing or stale session gets a
// 401 JSON body; the admin UI handles the redirect to its login screen.
func RequireAuth(sessionStore sessions.SessionStore, userRepo repositories.UserRepositoryImpl, rnd *render.Render) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sessionStore.GetUserID(r)
			if userID == 0 {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
				return
			}

			user, err := userRepo.FindByID(r.Context(), userID)
			if err != nil {
				log.Printf("RequireAuth: error finding user %d: %v", userID, err)
				_ = rnd.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
				return
			}
			if user == nil {
				_ = rnd.JSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthenticated."})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
