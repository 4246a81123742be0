package models

// Alert message types used by the console UI.
const (
	MessageTypeInfo    = "info"
	MessageTypeSuccess = "success"
	MessageTypeError   = "error"
	MessageTypeWarning = "warning"
)

// AlertLayoutSettings holds utility-class fragments the UI applies verbatim.
type AlertLayoutSettings struct {
	Padding string `json:"padding,omitempty"`
	Shadow  string `json:"shadow,omitempty"`
	Rounded string `json:"rounded,omitempty"`
	Flex    string `json:"flex,omitempty"`
}

// AlertTypeSetting is the appearance of one alert severity.
type AlertTypeSetting struct {
	BackgroundColor string               `json:"backgroundColor,omitempty"`
	BorderColor     string               `json:"borderColor,omitempty"`
	TextColor       string               `json:"textColor,omitempty"`
	BorderWidth     string               `json:"borderWidth,omitempty"`
	BorderStyle     string               `json:"borderStyle,omitempty"`
	Layout          *AlertLayoutSettings `json:"layout,omitempty"`
}

// AlertSettings configures in-app alert appearance. Loaded in layers:
// hardcoded defaults, then the optional defaults file, then the stored
// operator override.
type AlertSettings struct {
	Position                 string                      `json:"position" binding:"omitempty,oneof=top-left top-center top-right bottom-left bottom-center bottom-right"`
	DefaultShowDismissButton bool                        `json:"defaultShowDismissButton"`
	Duration                 int                         `json:"duration" binding:"omitempty,min=0"`
	FontSize                 string                      `json:"fontSize,omitempty"`
	FontWeight               string                      `json:"fontWeight,omitempty"`
	FontStyle                string                      `json:"fontStyle,omitempty"`
	TextDecoration           string                      `json:"textDecoration,omitempty"`
	Types                    map[string]AlertTypeSetting `json:"types"`
}

// Valid reports whether the settings document carries the minimum shape the
// UI needs; incomplete layers are skipped rather than merged.
func (s *AlertSettings) Valid() bool {
	if s == nil || s.Position == "" || s.Duration < 0 {
		return false
	}
	for _, t := range []string{MessageTypeInfo, MessageTypeSuccess, MessageTypeError, MessageTypeWarning} {
		if _, ok := s.Types[t]; !ok {
			return false
		}
	}
	return true
}

// DefaultAlertSettings returns the hardcoded base layer.
func DefaultAlertSettings() AlertSettings {
	layout := &AlertLayoutSettings{
		Padding: "p-4",
		Shadow:  "shadow-lg",
		Rounded: "rounded-lg",
		Flex:    "flex justify-between items-center",
	}
	return AlertSettings{
		Position:                 "bottom-right",
		DefaultShowDismissButton: true,
		Duration:                 3000,
		FontSize:                 "text-base",
		FontWeight:               "font-normal",
		FontStyle:                "not-italic",
		TextDecoration:           "no-underline",
		Types: map[string]AlertTypeSetting{
			MessageTypeInfo: {
				BackgroundColor: "rgba(30, 58, 138, 0.8)",
				BorderColor:     "#2563eb",
				TextColor:       "#bfdbfe",
				BorderWidth:     "1px",
				BorderStyle:     "solid",
				Layout:          layout,
			},
			MessageTypeSuccess: {
				BackgroundColor: "rgba(22, 101, 52, 0.8)",
				BorderColor:     "#16a34a",
				TextColor:       "#bbf7d0",
				BorderWidth:     "1px",
				BorderStyle:     "solid",
				Layout:          layout,
			},
			MessageTypeError: {
				BackgroundColor: "rgba(127, 29, 29, 0.8)",
				BorderColor:     "#dc2626",
				TextColor:       "#fecaca",
				BorderWidth:     "1px",
				BorderStyle:     "solid",
				Layout:          layout,
			},
			MessageTypeWarning: {
				BackgroundColor: "rgba(113, 63, 18, 0.8)",
				BorderColor:     "#f59e0b",
				TextColor:       "#fef08a",
				BorderWidth:     "1px",
				BorderStyle:     "solid",
				Layout:          layout,
			},
		},
	}
}
