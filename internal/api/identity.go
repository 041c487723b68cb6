package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"unicode"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/secondbrain-dev/secondbrain/internal/auth"
	"github.com/secondbrain-dev/secondbrain/internal/logger"
	"github.com/secondbrain-dev/secondbrain/internal/store"
)

// statusLengthRequired (411) is how this API has always reported signup
// validation failures and unknown share hashes. Clients depend on it, so it
// stays even though it misuses the Length Required status.
const statusLengthRequired = http.StatusLengthRequired

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// validator has no lookahead regexes, so the composition rule is a
	// custom func.
	if err := v.RegisterValidation("password", passwordComplexity); err != nil {
		panic(err)
	}
	return v
}

// passwordComplexity requires 8-20 characters with at least one lowercase
// letter, one uppercase letter, one digit, and one character outside
// [A-Za-z0-9].
func passwordComplexity(fl validator.FieldLevel) bool {
	pw := fl.Field().String()
	if len(pw) < 8 || len(pw) > 20 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range pw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}

// validationMessages maps validator errors to the human-readable strings the
// signup endpoint returns.
func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"invalid credentials format"}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			msgs = append(msgs, "username must be between 3 and 60 characters")
		case "Password":
			msgs = append(msgs, "password must contain 8-20 characters, at least one uppercase, one lowercase, one number, one special character")
		default:
			msgs = append(msgs, "invalid value for "+fe.Field())
		}
	}
	return msgs
}

// identityHandler provides signup, signin, Google auth, and profile handlers.
type identityHandler struct {
	users  *store.UserStore
	tokens *auth.Tokens
	google auth.GoogleVerifier
}

// registerIdentityRoutes registers the identity routes on r. authed must
// already carry the identity-check middleware.
func registerIdentityRoutes(r, authed chi.Router, users *store.UserStore, tokens *auth.Tokens, google auth.GoogleVerifier) {
	h := &identityHandler{users: users, tokens: tokens, google: google}
	r.Post("/signup", h.Signup)
	r.Post("/signin", h.Signin)
	r.Post("/google-auth", h.GoogleAuth)
	authed.Get("/me", h.Me)
}

// Signup creates a local account.
// POST /api/v1/signup
func (h *identityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := validate.Struct(&req); err != nil {
		writeJSON(w, statusLengthRequired, ValidationErrorResponse{
			Message: "Incorrect format of credentials!",
			Error:   validationMessages(err),
		})
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		logger.Log.Errorw("hash password", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	if _, err := h.users.Create(r.Context(), req.Username, hash); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			writeMessage(w, http.StatusForbidden, "User already exists")
			return
		}
		logger.Log.Errorw("create user", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeMessage(w, http.StatusOK, "You are signed up!")
}

// Signin authenticates a local account and issues an identity token.
// POST /api/v1/signin
//
// An unknown username answers 200 with a "not present" message rather than an
// error status. Long-standing behavior that clients key off the body text.
func (h *identityHandler) Signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusOK, "User is not present in the database")
		return
	}
	if err != nil {
		logger.Log.Errorw("signin lookup", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// Google-only accounts have no password hash; CheckPassword fails closed.
	if !auth.CheckPassword(user.PasswordHash.String, req.Password) {
		writeMessage(w, http.StatusForbidden, "Incorrect signin credentials, signin failed")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logger.Log.Errorw("issue token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Message: "You are successfully signed in!",
		Token:   token,
	})
}

// GoogleAuth verifies a Google ID token and signs the caller in, creating or
// linking the local account as needed.
// POST /api/v1/google-auth
func (h *identityHandler) GoogleAuth(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.IDToken == "" {
		writeMessage(w, http.StatusBadRequest, "ID token missing")
		return
	}

	// No verifier configured means no token can be trusted.
	if h.google == nil {
		writeMessage(w, http.StatusForbidden, "Invalid Google token")
		return
	}

	claims, err := h.google.Verify(r.Context(), req.IDToken)
	if err != nil {
		logger.Log.Infow("google token rejected", "error", err)
		writeMessage(w, http.StatusForbidden, "Invalid Google token")
		return
	}

	name := claims.Name
	if name == "" {
		name = "User"
	}

	user, err := h.resolveGoogleUser(r, claims.Subject, claims.Email, name)
	if err != nil {
		logger.Log.Errorw("google auth", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Google auth failed")
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		logger.Log.Errorw("issue token", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Google auth failed")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		Message: "Google authentication successful",
		Token:   token,
	})
}

// resolveGoogleUser finds the account for a verified Google identity:
// by subject id first, then by linking an email-matched local account,
// else by creating a fresh user.
func (h *identityHandler) resolveGoogleUser(r *http.Request, subject, email, name string) (*store.User, error) {
	ctx := r.Context()

	user, err := h.users.GetByGoogleID(ctx, subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	if email != "" {
		existing, err := h.users.GetByEmail(ctx, email)
		if err == nil {
			return h.users.LinkGoogleAccount(ctx, existing.ID, subject, name)
		}
		if !errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
	}

	return h.users.CreateGoogleUser(ctx, name, email, subject)
}

// Me returns the authenticated caller's username and email.
// GET /api/v1/me
func (h *identityHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if errors.Is(err, store.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		logger.Log.Errorw("me lookup", "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, MeResponse{
		Username: user.Username.String,
		Email:    user.Email.String,
	})
}
