package httpx

// CurrentPage constants define the page identifiers used in templates and navigation.
// These constants ensure consistency across handlers and template mapping.
const (
	// Authentication pages.
	PageLogin          = "login"
	PageSignup         = "signup"
	PageOTP            = "otp-verification"
	PageForgotPassword = "forgot-password"
	PageResetPassword  = "reset-password"
	PageChangePassword = "changepassword"

	// Signed-in pages.
	PageHomepage = "homepage"
	PageProfile  = "profile"
	PageAdmin    = "admin"
)

// Template paths used for loading templates in tests and production.
const (
	TemplatePathFromRoot = "frontend/templates"       // From project root
	TemplatePathFromTest = "../../frontend/templates" // From internal/http test files
)

// Content templates are defined once and reused to avoid per-call allocations.
//
//nolint:gochecknoglobals // static read-only lookup for templates; avoids per-call allocations
var contentTemplates = map[string]string{
	PageLogin:          "login-content",
	PageSignup:         "signup-content",
	PageOTP:            "otp-content",
	PageForgotPassword: "forgot-password-content",
	PageResetPassword:  "reset-password-content",
	PageChangePassword: "changepassword-content",
	PageHomepage:       "homepage-content",
	PageProfile:        "profile-content",
	PageAdmin:          "admin-content",
}

// ContentTemplateMap returns the mapping from CurrentPage to template name.
// This is the single source of truth for page-to-template mapping.
func ContentTemplateMap() map[string]string { return contentTemplates }

// ContentTemplateFor returns the content template for the given CurrentPage.
// Falls back to login-content for unknown pages.
func ContentTemplateFor(currentPage string) string {
	if name, ok := ContentTemplateMap()[currentPage]; ok {
		return name
	}
	return "login-content"
}
