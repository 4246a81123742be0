package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/internal/services"
	"github.com/fsel/admin-console-api/pkg/fsel"
)

const testPassword = "Fsel2025@"

func leadsStudent() models.StudentRecord {
	return models.StudentRecord{
		UserID:         "user-1",
		StudentID:      "student-1",
		FullName:       "Nguyen Van A",
		Email:          "a@example.com",
		PhoneNumber:    "0912345678",
		Birthday:       "2010-04-15",
		SchoolName:     "THCS Le Loi",
		Class:          "7A",
		CustomerObject: models.CustomerObjectLeads,
	}
}

type progressRecorder struct {
	events []models.ProgressEvent
}

func (r *progressRecorder) record(step, message string, replacements map[string]string, isError bool) {
	r.events = append(r.events, models.ProgressEvent{
		Step:         step,
		Message:      message,
		Replacements: replacements,
		IsError:      isError,
	})
}

func (r *progressRecorder) messages() []string {
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Message)
	}
	return out
}

func TestResetPlacementTest_Success(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()
	student := leadsStudent()

	newItem := models.StudentSearchItem{
		ID:        "user-2",
		StudentID: "student-2",
		FullName:  student.FullName,
		Email:     student.Email,
	}
	birthday := "2010-04-15"

	dir.On("DeleteUser", ctx, models.UserID("user-1")).Return(nil).Once()
	dir.On("SignUp", ctx, student.FullName, student.Email, testPassword).Return(models.UserID("user-2"), nil).Once()
	dir.On("GetOTP", ctx, models.UserID("user-2")).Return(&models.OtpData{OtpEmail: "482913"}, nil).Once()
	dir.On("ConfirmOTP", ctx, student.Email, "482913").Return(nil).Once()
	dir.On("UpdateStudentCode", ctx, models.UserID("user-2"), &birthday).Return(nil).Once()
	dir.On("SearchStudents", ctx, student.Email, 1, 1).Return(&models.StudentSearchPage{
		Items:      []models.StudentSearchItem{newItem},
		TotalCount: 1,
	}, nil).Once()
	dir.On("UpdateStudentInfo", ctx, models.StudentID("student-2"), mock.MatchedBy(func(p fsel.StudentInfoUpdate) bool {
		return p.FullName == student.FullName && p.Email == student.Email &&
			p.School != nil && *p.School == "THCS Le Loi" &&
			p.SchoolClass != nil && *p.SchoolClass == "7A"
	})).Return(nil).Once()

	rec := &progressRecorder{}
	result := svc.ResetPlacementTest(ctx, student, rec.record)

	require.True(t, result.Success)
	require.NotNil(t, result.NewStudent)
	assert.Equal(t, models.UserID("user-2"), result.NewStudent.ID)
	assert.Equal(t, models.StudentID("student-2"), result.NewStudent.StudentID)

	// Progress events arrive in workflow order, start then done per step.
	assert.Equal(t, []string{
		"deleteOldAccountStart", "deleteOldAccountSuccess",
		"createNewAccountStart", "createNewAccountSuccess",
		"fetchOtpStart", "fetchOtpGotOtp", "confirmOtpSuccess",
		"updateCodeBirthdayStart", "updateCodeBirthdaySuccess",
		"searchNewAccountStart", "searchNewAccountSuccess",
		"updateFullInfoStart", "updateFullInfoSuccess",
	}, rec.messages())

	dir.AssertExpectations(t)
}

func TestResetPlacementTest_SignUpFailureStopsWorkflow(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()
	student := leadsStudent()

	dir.On("DeleteUser", ctx, models.UserID("user-1")).Return(nil).Once()
	dir.On("SignUp", ctx, student.FullName, student.Email, testPassword).
		Return(models.UserID(""), &fsel.APIError{StatusCode: 400, Message: "E1 - email: bad"}).Once()

	rec := &progressRecorder{}
	result := svc.ResetPlacementTest(ctx, student, rec.record)

	require.False(t, result.Success)
	assert.Equal(t, "Failed to create new account. E1 - email: bad", result.Message)

	// Nothing after the failing step runs. The old account stays deleted:
	// there is no rollback.
	dir.AssertNotCalled(t, "GetOTP", mock.Anything, mock.Anything)
	dir.AssertNotCalled(t, "ConfirmOTP", mock.Anything, mock.Anything, mock.Anything)
	dir.AssertNotCalled(t, "UpdateStudentCode", mock.Anything, mock.Anything, mock.Anything)
	dir.AssertNotCalled(t, "UpdateStudentInfo", mock.Anything, mock.Anything, mock.Anything)

	last := rec.events[len(rec.events)-1]
	assert.Equal(t, "PROCESS_FAILED", last.Step)
	assert.True(t, last.IsError)
	assert.Equal(t, "Failed to create new account. E1 - email: bad", last.Message)

	dir.AssertExpectations(t)
}

func TestResetPlacementTest_MissingStudentIDAfterSearch(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()
	student := leadsStudent()
	birthday := "2010-04-15"

	dir.On("DeleteUser", ctx, models.UserID("user-1")).Return(nil).Once()
	dir.On("SignUp", ctx, student.FullName, student.Email, testPassword).Return(models.UserID("user-2"), nil).Once()
	dir.On("GetOTP", ctx, models.UserID("user-2")).Return(&models.OtpData{OtpEmail: "482913"}, nil).Once()
	dir.On("ConfirmOTP", ctx, student.Email, "482913").Return(nil).Once()
	dir.On("UpdateStudentCode", ctx, models.UserID("user-2"), &birthday).Return(nil).Once()
	dir.On("SearchStudents", ctx, student.Email, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()

	result := svc.ResetPlacementTest(ctx, student, nil)

	require.False(t, result.Success)
	assert.Contains(t, result.Message, "could not find the newly created account")
	dir.AssertNotCalled(t, "UpdateStudentInfo", mock.Anything, mock.Anything, mock.Anything)
	dir.AssertExpectations(t)
}

func TestAddStudent_Success(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	req := models.AddStudentRequest{
		FullName:    "Tran Thi B",
		Email:       "b@example.com",
		PhoneNumber: "0987654321",
	}
	newItem := models.StudentSearchItem{ID: "user-9", StudentID: "student-9", Email: req.Email}

	// Pre-checks find no duplicates.
	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()
	dir.On("SearchStudents", ctx, req.PhoneNumber, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()

	dir.On("SignUp", ctx, req.FullName, req.Email, testPassword).Return(models.UserID("user-9"), nil).Once()
	dir.On("GetOTP", ctx, models.UserID("user-9")).Return(&models.OtpData{OtpEmail: "112233"}, nil).Once()
	dir.On("ConfirmOTP", ctx, req.Email, "112233").Return(nil).Once()
	dir.On("UpdateStudentCode", ctx, models.UserID("user-9"), (*string)(nil)).Return(nil).Once()
	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{
		Items: []models.StudentSearchItem{newItem},
	}, nil).Once()
	dir.On("UpdateStudentInfo", ctx, models.StudentID("student-9"), mock.Anything).Return(nil).Once()

	result := svc.AddStudent(ctx, req)

	require.True(t, result.Success)
	assert.Equal(t, "alertMessage.app.addStudentSuccess", result.MessageKey)
	assert.Equal(t, testPassword, result.Replacements["defaultPassword"])
	require.NotNil(t, result.NewStudent)
	assert.Equal(t, models.StudentID("student-9"), result.NewStudent.StudentID)
	dir.AssertExpectations(t)
}

func TestAddStudent_DuplicateEmailWritesNothing(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	req := models.AddStudentRequest{FullName: "Tran Thi B", Email: "b@example.com"}

	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{
		Items: []models.StudentSearchItem{{ID: "user-5", Email: req.Email}},
	}, nil).Once()

	result := svc.AddStudent(ctx, req)

	require.False(t, result.Success)
	assert.True(t, result.IsValidationError)
	assert.Equal(t, "alertMessage.app.emailExists", result.MessageKey)
	assert.Equal(t, req.Email, result.Replacements["email"])

	// Duplicate detection happens before any write.
	dir.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	dir.AssertNotCalled(t, "DeleteUser", mock.Anything, mock.Anything)
	dir.AssertExpectations(t)
}

func TestAddStudent_DuplicatePhoneWritesNothing(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	req := models.AddStudentRequest{FullName: "Tran Thi B", Email: "b@example.com", PhoneNumber: "0987654321"}

	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()
	dir.On("SearchStudents", ctx, req.PhoneNumber, 1, 1).Return(&models.StudentSearchPage{
		Items: []models.StudentSearchItem{{ID: "user-5", PhoneNumber: req.PhoneNumber}},
	}, nil).Once()

	result := svc.AddStudent(ctx, req)

	require.False(t, result.Success)
	assert.True(t, result.IsValidationError)
	assert.Equal(t, "alertMessage.app.phoneExists", result.MessageKey)
	dir.AssertNotCalled(t, "SignUp", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	dir.AssertExpectations(t)
}

func TestAddStudent_FinalProfileUpdateFailureIsNonFatal(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	req := models.AddStudentRequest{FullName: "Tran Thi B", Email: "b@example.com"}
	newItem := models.StudentSearchItem{ID: "user-9", StudentID: "student-9", Email: req.Email}

	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()
	dir.On("SignUp", ctx, req.FullName, req.Email, testPassword).Return(models.UserID("user-9"), nil).Once()
	dir.On("GetOTP", ctx, models.UserID("user-9")).Return(&models.OtpData{OtpEmail: "112233"}, nil).Once()
	dir.On("ConfirmOTP", ctx, req.Email, "112233").Return(nil).Once()
	dir.On("UpdateStudentCode", ctx, models.UserID("user-9"), (*string)(nil)).Return(nil).Once()
	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{
		Items: []models.StudentSearchItem{newItem},
	}, nil).Once()
	dir.On("UpdateStudentInfo", ctx, models.StudentID("student-9"), mock.Anything).
		Return(&fsel.APIError{StatusCode: 500, Message: "profile service down"}).Once()

	result := svc.AddStudent(ctx, req)

	// The account exists and is confirmed; a failed profile update does not
	// undo that.
	require.True(t, result.Success)
	assert.Equal(t, "alertMessage.app.addStudentSuccess", result.MessageKey)
	dir.AssertExpectations(t)
}

func TestAddStudent_OTPFailureIsFatal(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	req := models.AddStudentRequest{FullName: "Tran Thi B", Email: "b@example.com"}

	dir.On("SearchStudents", ctx, req.Email, 1, 1).Return(&models.StudentSearchPage{}, nil).Once()
	dir.On("SignUp", ctx, req.FullName, req.Email, testPassword).Return(models.UserID("user-9"), nil).Once()
	dir.On("GetOTP", ctx, models.UserID("user-9")).Return(&models.OtpData{}, nil).Once()

	result := svc.AddStudent(ctx, req)

	require.False(t, result.Success)
	assert.False(t, result.IsValidationError)
	assert.Equal(t, "alertMessage.app.addStudentFailure", result.MessageKey)
	assert.Contains(t, result.Replacements["message"], "no email OTP available")
	dir.AssertNotCalled(t, "ConfirmOTP", mock.Anything, mock.Anything, mock.Anything)
	dir.AssertExpectations(t)
}

func TestDeleteStudent(t *testing.T) {
	dir := new(MockStudentDirectory)
	svc := services.NewProvisioningService(dir, testPassword)
	ctx := context.Background()

	dir.On("DeleteUser", ctx, models.UserID("user-3")).Return(nil).Once()
	result := svc.DeleteStudent(ctx, "user-3")
	require.True(t, result.Success)
	assert.Equal(t, "Account deleted successfully.", result.Message)

	dir.On("DeleteUser", ctx, models.UserID("user-4")).
		Return(&fsel.APIError{StatusCode: 409, Message: "User has active courses"}).Once()
	result = svc.DeleteStudent(ctx, "user-4")
	require.False(t, result.Success)
	assert.Equal(t, "User has active courses", result.Message)

	dir.AssertExpectations(t)
}
