package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/spiceroute/backoffice/app/helpers"
	"github.com/spiceroute/backoffice/app/repositories"
	"github.com/spiceroute/backoffice/app/utils/sessions"
	"github.com/unrolled/render"
)

type AuthHandler struct {
	render       *render.Render
	userRepo     repositories.UserRepositoryImpl
	sessionStore sessions.SessionStore
}

func NewAuthHandler(rnd *render.Render, userRepo repositories.UserRepositoryImpl, sessionStore sessions.SessionStore) *AuthHandler {
	return &AuthHandler{render: rnd, userRepo: userRepo, sessionStore: sessionStore}
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput

	if isJSONRequest(r) {
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			_ = h.render.JSON(w, http.StatusBadRequest, map[string]string{"message": "Invalid request body"})
			return
		}
	} else {
		parseRequestForm(r)
		input.Email = r.PostFormValue("email")
		input.Password = r.PostFormValue("password")
	}

	if input.Email == "" || input.Password == "" {
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]string{
			"message": "Email and password are required.",
		})
		return
	}

	user, err := h.userRepo.FindByEmail(r.Context(), input.Email)
	if err != nil {
		log.Printf("Login: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}
	if user == nil || !helpers.PasswordCompare(user.Password, []byte(input.Password)) {
		_ = h.render.JSON(w, http.StatusUnauthorized, map[string]string{
			"message": "These credentials do not match our records.",
		})
		return
	}

	if err := h.sessionStore.SetUserID(w, r, user.ID); err != nil {
		log.Printf("Login: saving session: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]string{"message": "Server error"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Logged in successfully",
		"user": map[string]interface{}{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessionStore.ClearSession(w, r); err != nil {
		log.Printf("Logout: clearing session: %v", err)
	}
	_ = h.render.JSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
