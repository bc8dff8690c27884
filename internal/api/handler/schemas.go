package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// tokenResponse wraps any freshly issued JWT.
type tokenResponse struct {
	Token string `json:"token"`
	Type  string `json:"type"`
}

// dataResponse and docsResponse are the two success envelopes the clients
// already depend on: singular resources under "data", collections and
// user-management results under "docs".
type dataResponse struct {
	Data any `json:"data"`
}

type docsResponse struct {
	Docs any `json:"docs"`
}

// --- Request types ---

type signupRequest struct {
	Name             string `json:"name"             validate:"required"`
	Login            string `json:"login"            validate:"required,email"`
	Password         string `json:"password"         validate:"required"`
	OrganisationName string `json:"organisationName" validate:"required"`
}

type createUserRequest struct {
	Login    string `json:"login"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
	Admin    bool   `json:"admin"`
}

// updateUserRequest deliberately has no required tag on password: an empty
// password means "keep the current one".
type updateUserRequest struct {
	Login    string `json:"login"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password"`
	Admin    bool   `json:"admin"`
}

type customerRequest struct {
	Name  string `json:"name"  validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type createNotificationRequest struct {
	Message string `json:"message" validate:"required"`
	Class   string `json:"class"   validate:"omitempty,oneof=INFO WARNING ERROR"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword1    string `json:"newPassword1"    validate:"required"`
	NewPassword2    string `json:"newPassword2"    validate:"required"`
}

type updateProfileRequest struct {
	Name string `json:"name" validate:"required"`
}
