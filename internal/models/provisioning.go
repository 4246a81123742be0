package models

// ProgressEvent is one entry in a provisioning workflow's progress trace.
// Step tags follow the operator-facing numbering ("1".."4", with "3.1" and
// "3.2" for the confirmation sub-steps); the terminal failure entry uses the
// synthetic tag "PROCESS_FAILED".
//
// For routine steps Message is a localization key the caller resolves; for
// the terminal failure it is already-resolved human text accumulated from the
// gateway error envelope.
type ProgressEvent struct {
	Step         string            `json:"step"`
	Message      string            `json:"message"`
	Replacements map[string]string `json:"replacements,omitempty"`
	IsError      bool              `json:"isError,omitempty"`
}

// ProgressFunc receives one event per workflow step. Implementations must not
// block: the workflow is strictly sequential and a slow consumer stalls it.
type ProgressFunc func(step, message string, replacements map[string]string, isError bool)

// ResetResult is the outcome of a placement-test reset.
//
// On success NewStudent carries the freshly re-fetched search row for the
// recreated account, so the caller can replace its view without another
// round trip. On failure Message holds the resolved error text and
// NewStudent is nil; steps already completed are NOT rolled back.
type ResetResult struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	NewStudent *StudentSearchItem `json:"newStudentData,omitempty"`
}

// AddStudentRequest is the console's add-student form payload.
type AddStudentRequest struct {
	FullName    string `json:"fullName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Birthday    string `json:"birthday"` // yyyy-MM-dd, optional
}

// AddStudentResult is the outcome of the add-student workflow.
//
// IsValidationError distinguishes duplicate/format rejections (shown inline
// on the form) from gateway failures (shown as a global alert).
type AddStudentResult struct {
	Success           bool               `json:"success"`
	MessageKey        string             `json:"messageKey"`
	Replacements      map[string]string  `json:"replacements,omitempty"`
	NewStudent        *StudentSearchItem `json:"newStudent,omitempty"`
	IsValidationError bool               `json:"isValidationError,omitempty"`
}

// DeleteResult is the outcome of a single-call account deletion.
type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
