package models

// ProductPackageItem is one purchasable package from the ordering gateway.
type ProductPackageItem struct {
	ID                       string   `json:"id"`
	EventID                  string   `json:"eventId"`
	Code                     string   `json:"code"`
	Name                     string   `json:"name"`
	Price                    float64  `json:"price"`
	PriceMonth               float64  `json:"priceMonth"`
	MonthNumber              int      `json:"monthNumber"`
	MonthBonus               int      `json:"monthBonus"`
	DayBonus                 int      `json:"dayBonus"`
	ReferToken               float64  `json:"referToken"`
	BonusCoins               float64  `json:"bonusCoins"`
	ImagePaths               []string `json:"imagePaths"`
	EventDescription         string   `json:"eventDescription"`
	Description              string   `json:"description"`
	IncentivesWhenPurchasing string   `json:"incentivesWhenPurchasing"`
	Suggests                 []string `json:"suggests"`
}

// CurriculumCourse is one course's lesson-plan document from the static
// curriculum catalog. The JSON files are authored by the academic team;
// the console serves them as-is with a parsed summary header.
type CurriculumCourse struct {
	CourseID string `json:"courseId"`
	Track    string `json:"track"` // Aca, IeltsPathway, EnglishFoundation
	Level    string `json:"level"`
	// Content is the raw lesson-plan document.
	Content map[string]interface{} `json:"content"`
}
