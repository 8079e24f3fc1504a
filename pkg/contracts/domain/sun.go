package domain

// Field names used by the sunrise/sunset dataset (sunRiseSet.csv)
const (
	FieldMonth         = "Month"
	FieldDay           = "Day"
	FieldSunRiseHour   = "SunRiseHour"
	FieldSunRiseMinute = "SunRiseMinute"
	FieldSunSetHour    = "SunSetHour"
	FieldSunSetMinute  = "SunSetMinute"
)

// SunRecord is a typed row of the sunrise/sunset dataset.
type SunRecord struct {
	Month         string `json:"month" validate:"required"`
	Day           int    `json:"day" validate:"min=1,max=31"`
	SunRiseHour   int    `json:"sunrise_hour" validate:"min=0,max=23"`
	SunRiseMinute int    `json:"sunrise_minute" validate:"min=0,max=59"`
	SunSetHour    int    `json:"sunset_hour" validate:"min=0,max=23"`
	SunSetMinute  int    `json:"sunset_minute" validate:"min=0,max=59"`

	Row Record `json:"-"`
}
