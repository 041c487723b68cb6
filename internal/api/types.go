package api

// --- Identity types ---

// SignupRequest is the request body for POST /api/v1/signup.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=60"`
	Password string `json:"password" validate:"required,password"`
}

// SigninRequest is the request body for POST /api/v1/signin.
// Unlike signup, signin applies no format validation.
type SigninRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// GoogleAuthRequest is the request body for POST /api/v1/google-auth.
type GoogleAuthRequest struct {
	IDToken string `json:"idToken"`
}

// TokenResponse carries an issued identity token.
type TokenResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// ValidationErrorResponse is the 411 body for signup validation failures:
// a generic message plus the list of human-readable rule violations.
type ValidationErrorResponse struct {
	Message string   `json:"message"`
	Error   []string `json:"error"`
}

// MeResponse is the response body for GET /api/v1/me.
type MeResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// --- Content types ---

// CreateContentRequest is the request body for POST /api/v1/content.
// None of the fields are validated; empty values are stored as-is.
type CreateContentRequest struct {
	Link  string `json:"link"`
	Type  string `json:"type"`
	Title string `json:"title"`
}

// OwnerResponse is the expanded owner reference on content listings.
type OwnerResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// ContentResponse is the JSON representation of a single content item.
type ContentResponse struct {
	ID    string        `json:"id"`
	Title string        `json:"title"`
	Link  string        `json:"link"`
	Type  string        `json:"type"`
	Tags  []string      `json:"tags"`
	Owner OwnerResponse `json:"owner"`
}

// ContentListResponse is the response body for GET /api/v1/content.
type ContentListResponse struct {
	Content []ContentResponse `json:"content"`
}

// --- Sharing types ---

// ShareRequest is the request body for POST /api/v1/brain/share.
type ShareRequest struct {
	Share bool `json:"share"`
}

// ShareHashResponse carries the public share hash.
type ShareHashResponse struct {
	Hash string `json:"hash"`
}

// SharedBrainResponse is the public snapshot returned by
// GET /api/v1/brain/{shareLink}: the owner's username and their full
// content list.
type SharedBrainResponse struct {
	Username string            `json:"username"`
	Content  []ContentResponse `json:"content"`
}
