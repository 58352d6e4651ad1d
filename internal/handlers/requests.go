package handlers

import (
	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the go-playground/validator library to implement Echo's Validator interface.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new CustomValidator.
func NewValidator() *CustomValidator {
	return &CustomValidator{validator: validator.New()}
}

// Validate implements the echo.Validator interface.
func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}

// ThemeRequest is the form posted by the theme toggle. An empty theme clears
// the stored choice.
type ThemeRequest struct {
	Theme string `form:"theme" validate:"omitempty,oneof=light dark"`
}

// ProjectsQuery carries the viewport width the projects placeholder reports.
type ProjectsQuery struct {
	Width int `query:"w" validate:"omitempty,min=1,max=10000"`
}

// PageQuery holds the switches of the résumé page.
type PageQuery struct {
	// Print renders the complete page for PDF export.
	Print bool `query:"print"`
	// Lang overrides Accept-Language, for the headless browser.
	Lang string `query:"lang" validate:"omitempty,max=64"`
}
