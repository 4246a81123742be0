package models

// OtpData is the user gateway's OTP verification state for one account.
type OtpData struct {
	OtpEmail                string `json:"otpEmail"`
	OtpPhoneNumber          string `json:"otpPhoneNumber"`
	IsConfirmOTPEmail       bool   `json:"isConfirmOTPEmail"`
	IsConfirmOTPPhoneNumber bool   `json:"isConfirmOTPPhoneNumber"`
}

// SkillScore is one skill's breakdown within a placement-test level result.
type SkillScore struct {
	Skill        string  `json:"skill"`
	Scores       float64 `json:"scores"`
	CorrectCount int     `json:"correctCount"`
	TotalCount   int     `json:"totalCount"`
	Percent      float64 `json:"percent"`
}

// PlacementTestLevelResult is the outcome of one attempted level.
type PlacementTestLevelResult struct {
	Level        string       `json:"level"`
	CorrectCount int          `json:"correctCount"`
	CorrectTotal int          `json:"correctTotal"`
	SkillScores  []SkillScore `json:"skillScores"`
}

// PlacementTestData is the course gateway's placement-test result for a
// student entity. Results are bound to the StudentID permanently, which is
// why resetting a test requires recreating the account.
type PlacementTestData struct {
	CourseName           string                     `json:"courseName"`
	CurrentLevel         string                     `json:"currentLevel"`
	RecommendedLevel     string                     `json:"recommendedLevel"`
	PlacementTestResults []PlacementTestLevelResult `json:"placementTestResults"`
}
