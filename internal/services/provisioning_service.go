package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/fsel"
	"github.com/fsel/admin-console-api/pkg/logger"
	"github.com/fsel/admin-console-api/pkg/metrics"
)

// ProvisioningService runs the multi-step account workflows: placement-test
// reset, add student, and account deletion. Steps execute strictly in order
// and completed steps are never rolled back; a failure leaves whatever state
// the earlier steps produced.
type ProvisioningService struct {
	directory       StudentDirectory
	defaultPassword string
}

// NewProvisioningService creates the service. defaultPassword is the
// well-known password every provisioned account starts with.
func NewProvisioningService(directory StudentDirectory, defaultPassword string) *ProvisioningService {
	return &ProvisioningService{directory: directory, defaultPassword: defaultPassword}
}

// stepState accumulates data across a workflow run. Later steps read what
// earlier steps wrote.
type stepState struct {
	student    models.StudentRecord
	request    models.AddStudentRequest
	newUserID  models.UserID
	otp        string
	newStudent *models.StudentSearchItem
}

// provisionStep is one entry of a workflow's step table. The driver loop in
// runSteps emits the start/done progress events and stops at the first
// failing step; failMessage prefixes the gateway error in the terminal
// failure text.
type provisionStep struct {
	tag         string
	startKey    string
	startArgs   func(*stepState) map[string]string
	doneKey     string
	doneArgs    func(*stepState) map[string]string
	failMessage string
	run         func(ctx context.Context, st *stepState) error
}

type stepError struct {
	tag     string
	message string
}

func (e *stepError) Error() string { return e.message }

func (s *ProvisioningService) runSteps(ctx context.Context, workflow string, steps []provisionStep, st *stepState, progress models.ProgressFunc) error {
	emit := func(tag, key string, args func(*stepState) map[string]string, isErr bool) {
		if progress == nil || key == "" {
			return
		}
		var replacements map[string]string
		if args != nil {
			replacements = args(st)
		}
		progress(tag, key, replacements, isErr)
	}

	for _, step := range steps {
		emit(step.tag, step.startKey, step.startArgs, false)
		if err := step.run(ctx, st); err != nil {
			metrics.ProvisioningStepFailures.WithLabelValues(workflow, step.tag).Inc()
			logger.Log.Error("Provisioning step failed",
				zap.String("workflow", workflow),
				zap.String("step", step.tag),
				zap.Error(err))
			msg := err.Error()
			if step.failMessage != "" {
				msg = fmt.Sprintf("%s %s", step.failMessage, msg)
			}
			return &stepError{tag: step.tag, message: msg}
		}
		emit(step.tag, step.doneKey, step.doneArgs, false)
	}
	return nil
}

// ResetPlacementTest deletes the student's account and rebuilds it so the
// placement test can be retaken. Every step is fatal; there is no rollback,
// so a mid-run failure can leave the student deleted but not recreated. The
// operator-facing guardrail (never reset a paying Client) is enforced by the
// caller before this is invoked.
func (s *ProvisioningService) ResetPlacementTest(ctx context.Context, student models.StudentRecord, progress models.ProgressFunc) models.ResetResult {
	st := &stepState{student: student}

	steps := []provisionStep{
		{
			tag:      "1",
			startKey: "deleteOldAccountStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"userId": st.student.UserID.String()}
			},
			doneKey:     "deleteOldAccountSuccess",
			failMessage: "Failed to delete old account.",
			run: func(ctx context.Context, st *stepState) error {
				return s.directory.DeleteUser(ctx, st.student.UserID)
			},
		},
		{
			tag:      "2",
			startKey: "createNewAccountStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"fullName": st.student.FullName, "email": st.student.Email}
			},
			doneKey: "createNewAccountSuccess",
			doneArgs: func(st *stepState) map[string]string {
				return map[string]string{"newUserId": st.newUserID.String()}
			},
			failMessage: "Failed to create new account.",
			run: func(ctx context.Context, st *stepState) error {
				userID, err := s.directory.SignUp(ctx, st.student.FullName, st.student.Email, s.defaultPassword)
				if err != nil {
					return err
				}
				st.newUserID = userID
				return nil
			},
		},
		{
			tag:      "3",
			startKey: "fetchOtpStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"newUserId": st.newUserID.String()}
			},
			doneKey: "fetchOtpGotOtp",
			doneArgs: func(st *stepState) map[string]string {
				return map[string]string{"otpValue": st.otp, "email": st.student.Email}
			},
			failMessage: "Failed to fetch OTP.",
			run: func(ctx context.Context, st *stepState) error {
				otp, err := s.fetchOTP(ctx, st.newUserID)
				if err != nil {
					return err
				}
				st.otp = otp
				return nil
			},
		},
		{
			tag:         "3",
			doneKey:     "confirmOtpSuccess",
			failMessage: "Failed to confirm OTP.",
			run: func(ctx context.Context, st *stepState) error {
				return s.directory.ConfirmOTP(ctx, st.student.Email, st.otp)
			},
		},
		{
			tag:      "3.1",
			startKey: "updateCodeBirthdayStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"newUserId": st.newUserID.String()}
			},
			doneKey:     "updateCodeBirthdaySuccess",
			failMessage: "Step 3.1 - Failed to update student code/birthday.",
			run: func(ctx context.Context, st *stepState) error {
				return s.directory.UpdateStudentCode(ctx, st.newUserID, formatBirthday(st.student.Birthday))
			},
		},
		{
			tag:      "3.2",
			startKey: "searchNewAccountStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"email": st.student.Email}
			},
			doneKey: "searchNewAccountSuccess",
			doneArgs: func(st *stepState) map[string]string {
				return map[string]string{"newStudentId": st.newStudent.StudentID.String()}
			},
			run: func(ctx context.Context, st *stepState) error {
				item, err := s.findNewAccount(ctx, st.student.Email)
				if err != nil {
					return err
				}
				st.newStudent = item
				return nil
			},
		},
		{
			tag:      "4",
			startKey: "updateFullInfoStart",
			startArgs: func(st *stepState) map[string]string {
				return map[string]string{"newStudentId": st.newStudent.StudentID.String()}
			},
			doneKey:     "updateFullInfoSuccess",
			failMessage: "Failed to update full account information.",
			run: func(ctx context.Context, st *stepState) error {
				payload := fsel.StudentInfoUpdate{
					FullName:    st.student.FullName,
					Birthday:    formatBirthday(st.student.Birthday),
					School:      optional(st.student.SchoolName),
					Email:       st.student.Email,
					PhoneNumber: st.student.PhoneNumber,
					SchoolClass: optional(st.student.Class),
				}
				return s.directory.UpdateStudentInfo(ctx, st.newStudent.StudentID, payload)
			},
		},
	}

	if err := s.runSteps(ctx, "reset_placement_test", steps, st, progress); err != nil {
		metrics.ProvisioningRuns.WithLabelValues("reset_placement_test", "error").Inc()
		if progress != nil {
			progress("PROCESS_FAILED", err.Error(), map[string]string{}, true)
		}
		return models.ResetResult{Success: false, Message: err.Error()}
	}

	metrics.ProvisioningRuns.WithLabelValues("reset_placement_test", "success").Inc()
	return models.ResetResult{
		Success:    true,
		Message:    "Placement Test Reset process completed successfully!",
		NewStudent: st.newStudent,
	}
}

// AddStudent creates a brand-new student account. Duplicate email and phone
// are rejected up front, before any write; the final full-profile update is
// deliberately non-fatal since the account is already usable without it.
func (s *ProvisioningService) AddStudent(ctx context.Context, req models.AddStudentRequest) models.AddStudentResult {
	if page, err := s.directory.SearchStudents(ctx, req.Email, 1, 1); err != nil {
		return s.addStudentFailure(fmt.Sprintf("Pre-check for email failed. %s", err.Error()))
	} else if len(page.Items) > 0 {
		return models.AddStudentResult{
			MessageKey:        "alertMessage.app.emailExists",
			Replacements:      map[string]string{"email": req.Email},
			IsValidationError: true,
		}
	}

	if req.PhoneNumber != "" && IsValidPhoneNumber(req.PhoneNumber) {
		if page, err := s.directory.SearchStudents(ctx, req.PhoneNumber, 1, 1); err != nil {
			return s.addStudentFailure(fmt.Sprintf("Pre-check for phone failed. %s", err.Error()))
		} else if len(page.Items) > 0 {
			return models.AddStudentResult{
				MessageKey:        "alertMessage.app.phoneExists",
				Replacements:      map[string]string{"phone": req.PhoneNumber},
				IsValidationError: true,
			}
		}
	}

	st := &stepState{request: req}

	steps := []provisionStep{
		{
			tag:         "1",
			failMessage: "Failed to create new account.",
			run: func(ctx context.Context, st *stepState) error {
				userID, err := s.directory.SignUp(ctx, st.request.FullName, st.request.Email, s.defaultPassword)
				if err != nil {
					return err
				}
				st.newUserID = userID
				return nil
			},
		},
		{
			tag:         "2",
			failMessage: "Failed to fetch OTP for new account.",
			run: func(ctx context.Context, st *stepState) error {
				otp, err := s.fetchOTP(ctx, st.newUserID)
				if err != nil {
					return err
				}
				st.otp = otp
				return nil
			},
		},
		{
			tag:         "3",
			failMessage: "Failed to confirm OTP for new account.",
			run: func(ctx context.Context, st *stepState) error {
				return s.directory.ConfirmOTP(ctx, st.request.Email, st.otp)
			},
		},
		{
			tag:         "4",
			failMessage: "Failed to update student code/birthday.",
			run: func(ctx context.Context, st *stepState) error {
				return s.directory.UpdateStudentCode(ctx, st.newUserID, formatBirthday(st.request.Birthday))
			},
		},
		{
			tag: "5",
			run: func(ctx context.Context, st *stepState) error {
				item, err := s.findNewAccount(ctx, st.request.Email)
				if err != nil {
					return err
				}
				st.newStudent = item
				return nil
			},
		},
	}

	if err := s.runSteps(ctx, "add_student", steps, st, nil); err != nil {
		metrics.ProvisioningRuns.WithLabelValues("add_student", "error").Inc()
		return s.addStudentFailure(err.Error())
	}

	// Step 6: fill in the full profile. A failure here is logged but does
	// not fail the workflow; the account already exists and works.
	payload := fsel.StudentInfoUpdate{
		FullName:    req.FullName,
		Birthday:    formatBirthday(req.Birthday),
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
	}
	if err := s.directory.UpdateStudentInfo(ctx, st.newStudent.StudentID, payload); err != nil {
		metrics.ProvisioningStepFailures.WithLabelValues("add_student", "6").Inc()
		logger.Log.Error("Partial success: account created but full-profile update failed",
			zap.String("studentId", st.newStudent.StudentID.String()),
			zap.Error(err))
	}

	metrics.ProvisioningRuns.WithLabelValues("add_student", "success").Inc()
	return models.AddStudentResult{
		Success:      true,
		MessageKey:   "alertMessage.app.addStudentSuccess",
		Replacements: map[string]string{"fullName": req.FullName, "defaultPassword": s.defaultPassword},
		NewStudent:   st.newStudent,
	}
}

func (s *ProvisioningService) addStudentFailure(message string) models.AddStudentResult {
	return models.AddStudentResult{
		MessageKey:   "alertMessage.app.addStudentFailure",
		Replacements: map[string]string{"message": message},
	}
}

// DeleteStudent removes an account in a single call. Irreversible.
func (s *ProvisioningService) DeleteStudent(ctx context.Context, userID models.UserID) models.DeleteResult {
	if err := s.directory.DeleteUser(ctx, userID); err != nil {
		metrics.ProvisioningRuns.WithLabelValues("delete_account", "error").Inc()
		return models.DeleteResult{Success: false, Message: err.Error()}
	}
	metrics.ProvisioningRuns.WithLabelValues("delete_account", "success").Inc()
	return models.DeleteResult{Success: true, Message: "Account deleted successfully."}
}

// fetchOTP reads the new account's OTP state and requires the email OTP to
// be present; an account with no OTP cannot be auto-confirmed.
func (s *ProvisioningService) fetchOTP(ctx context.Context, userID models.UserID) (string, error) {
	otp, err := s.directory.GetOTP(ctx, userID)
	if err != nil {
		return "", err
	}
	if otp.OtpEmail == "" {
		return "", fmt.Errorf("no email OTP available for user %s", userID)
	}
	return otp.OtpEmail, nil
}

// findNewAccount re-searches by email to learn the StudentID the gateway
// assigned to the freshly created account. The search index lags writes
// occasionally; the read retry policy inside the client covers that.
func (s *ProvisioningService) findNewAccount(ctx context.Context, email string) (*models.StudentSearchItem, error) {
	page, err := s.directory.SearchStudents(ctx, email, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(page.Items) == 0 || page.Items[0].StudentID == "" {
		return nil, fmt.Errorf("could not find the newly created account or its StudentID")
	}
	return &page.Items[0], nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
