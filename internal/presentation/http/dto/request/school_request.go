package request

// SelectSchoolRequest switches the admin session to another school.
type SelectSchoolRequest struct {
	SchoolID string `json:"school_id" binding:"required"`
}

// PasswordResetRequest asks the upstream to mail a reset link. The
// response never discloses whether the address exists.
type PasswordResetRequest struct {
	Email string `json:"email" binding:"required,email"`
}
