package models

// UserID is the account identity in the platform's auth system (a GUID).
// It is the id the OTP lookup and account deletion APIs expect.
type UserID string

// StudentID is the student-entity identity (a different GUID). It is the id
// the placement-test and full-profile-update APIs expect.
//
// The two are never interchangeable: passing one where the other is expected
// fails silently downstream, so they are distinct types on purpose.
type StudentID string

func (id UserID) String() string    { return string(id) }
func (id StudentID) String() string { return string(id) }

// StudentSearchItem is one row of the user gateway's search response. Both
// identifiers are always present: `id` is the UserID, `studentId` the
// StudentID.
type StudentSearchItem struct {
	ID           UserID    `json:"id"`
	StudentID    StudentID `json:"studentId"`
	StudentCode  string    `json:"studentCode"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	PhoneNumber  string    `json:"phoneNumber"`
	Birthday     string    `json:"birthday"`
	SchoolName   string    `json:"schoolName"`
	Class        string    `json:"class"`
	Grade        string    `json:"grade,omitempty"`
	Gender       string    `json:"gender,omitempty"`
	UserName     string    `json:"userName,omitempty"`
	Object       string    `json:"object"` // "Leads", "Client", or other
	Status       string    `json:"status"` // package label
	Type         string    `json:"type,omitempty"`
	CourseLevel  string    `json:"courseLevel,omitempty"`
	EmailConfirm bool      `json:"emailConfirm"`
	IsDeleted    bool      `json:"isDeleted"`
	CreatedDate  string    `json:"createdDate,omitempty"`
	UpdatedDate  string    `json:"updatedDate,omitempty"`
}

// StudentSearchPage is the paginated search result shape.
type StudentSearchPage struct {
	Items      []StudentSearchItem `json:"items"`
	TotalCount int                 `json:"totalCount"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"pageSize"`
}

// CustomerObject values distinguish prospects from paying customers.
const (
	CustomerObjectLeads  = "Leads"
	CustomerObjectClient = "Client"
)

// StudentRecord is the console's view of one student. It is built from a
// search item, never cached beyond the current selection, and replaced
// wholesale after a placement-test reset.
type StudentRecord struct {
	UserID         UserID    `json:"userId" binding:"required"`
	StudentID      StudentID `json:"studentId"`
	StudentCode    string    `json:"studentCode"`
	FullName       string    `json:"fullName" binding:"required"`
	Email          string    `json:"email" binding:"required,email"`
	PhoneNumber    string    `json:"phoneNumber"`
	Birthday       string    `json:"birthday"` // yyyy-MM-dd, may be empty
	SchoolName     string    `json:"schoolName"`
	Class          string    `json:"class"`
	CustomerObject string    `json:"customerObject"`
	Status         string    `json:"status"`
}

// IsClient reports whether the student is a paying/enrolled customer.
func (s StudentRecord) IsClient() bool {
	return s.CustomerObject == CustomerObjectClient
}

// StudentRecordFromSearchItem maps a search row into the console's shape,
// preserving both identifiers.
func StudentRecordFromSearchItem(item StudentSearchItem) StudentRecord {
	return StudentRecord{
		UserID:         item.ID,
		StudentID:      item.StudentID,
		StudentCode:    item.StudentCode,
		FullName:       item.FullName,
		Email:          item.Email,
		PhoneNumber:    item.PhoneNumber,
		Birthday:       item.Birthday,
		SchoolName:     item.SchoolName,
		Class:          item.Class,
		CustomerObject: item.Object,
		Status:         item.Status,
	}
}
