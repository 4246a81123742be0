package fsel

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fsel/admin-console-api/internal/models"
	"github.com/fsel/admin-console-api/pkg/retry"
)

// SearchStudents queries the user gateway's student index. Soft-deleted
// accounts are excluded at the gateway (IsDelete=false); results are still
// re-filtered by the caller because the flag has been observed to leak rows.
//
// The call is idempotent, so it goes through the standard read retry policy.
func (c *Client) SearchStudents(ctx context.Context, keyword string, page, pageSize int) (*models.StudentSearchPage, error) {
	endpoint := fmt.Sprintf("%s/v1/admin/student/search-students?IsDelete=false&page=%d&pageSize=%d&keyword=%s",
		c.cfg.UserBaseURL, page, pageSize, url.QueryEscape(keyword))

	return retry.DoWithResult(ctx, retry.GatewayReadConfig(), "search_students", func() (*models.StudentSearchPage, error) {
		var result models.StudentSearchPage
		err := c.call(ctx, "user", "search_students", "GET", endpoint,
			nil, true, "Student search failed.", &result)
		if err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// GetOTP fetches the OTP verification state for an account. Takes the
// UserID, never the StudentID.
func (c *Client) GetOTP(ctx context.Context, userID models.UserID) (*models.OtpData, error) {
	endpoint := fmt.Sprintf("%s/v1.1/admin/student/get-otp-for-student?UserId=%s",
		c.cfg.UserBaseURL, url.QueryEscape(userID.String()))

	return retry.DoWithResult(ctx, retry.GatewayReadConfig(), "get_otp", func() (*models.OtpData, error) {
		var result models.OtpData
		err := c.call(ctx, "user", "get_otp", "GET", endpoint,
			nil, true, "Failed to fetch OTP.", &result)
		if err != nil {
			return nil, err
		}
		return &result, nil
	})
}

// DeleteUser permanently deletes an account by UserID. Not retried: the
// gateway treats a repeat delete as a failure, not a no-op.
func (c *Client) DeleteUser(ctx context.Context, userID models.UserID) error {
	endpoint := fmt.Sprintf("%s/v1/admin/student/delete-user-by-userid/%s",
		c.cfg.UserBaseURL, url.PathEscape(userID.String()))
	return c.call(ctx, "user", "delete_user", "DELETE", endpoint,
		nil, true, "Failed to delete account.", nil)
}

type updateCodeRequest struct {
	UserID   models.UserID `json:"userId"`
	Birthday *string       `json:"birthday"`
}

// UpdateStudentCode assigns the student code and birthday to a freshly
// created account. birthday is yyyy-MM-dd or nil.
func (c *Client) UpdateStudentCode(ctx context.Context, userID models.UserID, birthday *string) error {
	payload := updateCodeRequest{UserID: userID, Birthday: birthday}
	return c.call(ctx, "user", "update_code_student", "PUT", c.cfg.UserBaseURL+"/v1.1/user/update-code-student",
		payload, true, "Failed to update student code/birthday.", nil)
}

// ParentInfo is the parent contact block of a full profile update. All
// fields are nullable and the console always sends them empty.
type ParentInfo struct {
	FullName    *string `json:"fullName"`
	Email       *string `json:"email"`
	PhoneNumber *string `json:"phoneNumber"`
}

// StudentInfoUpdate is the full-profile update payload. Keyed by StudentID,
// not UserID; sending nil for a field clears it at the gateway.
type StudentInfoUpdate struct {
	FullName    string     `json:"fullName"`
	Birthday    *string    `json:"birthday"`
	School      *string    `json:"school"`
	Address     *string    `json:"address"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phoneNumber"`
	SchoolGrade *string    `json:"schoolGrade"`
	SchoolClass *string    `json:"schoolClass"`
	Parent      ParentInfo `json:"parent"`
}

// UpdateStudentInfo replaces the student entity's profile. Takes the
// StudentID, never the UserID.
func (c *Client) UpdateStudentInfo(ctx context.Context, studentID models.StudentID, payload StudentInfoUpdate) error {
	endpoint := fmt.Sprintf("%s/v1/admin/student/%s",
		c.cfg.UserBaseURL, url.PathEscape(studentID.String()))
	return c.call(ctx, "user", "update_student_info", "PUT", endpoint,
		payload, true, "Failed to update full account information.", nil)
}
