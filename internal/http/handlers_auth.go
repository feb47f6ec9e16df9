package httpx

import (
	"net/http"

	"github.com/caseworks/user-portal/internal/domain/model"
	"github.com/caseworks/user-portal/internal/http/validation"
)

// LoginPage renders the sign-in form. A visitor who already holds a session
// is sent to their profile instead.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if GetSessionFromContext(r.Context()) != nil {
		redirectBrowser(w, r, "/profile")
		return
	}
	h.render(w, r, h.pageData(w, r, loginMeta()).Build())
}

// Login handles the sign-in submission.
func (h *UIHandlers) Login(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	v := validation.New().
		Check(email, validation.Required("Email")).
		Check(password, validation.Required("Password")).
		Check(email, validation.Email())
	if msg := v.Error(); msg != "" {
		h.render(w, r, h.pageData(w, r, loginMeta()).WithError(msg).With("Email", email).Build())
		return
	}

	sess, err := h.Auth.Login(r.Context(), email, password)
	if err != nil {
		h.render(w, r, h.pageData(w, r, loginMeta()).
			WithError(failureMessage(err, "Login failed. Try again.")).
			With("Email", email).Build())
		return
	}

	h.setSessionCookie(w, sess.ID)
	redirectBrowser(w, r, "/homepage")
}

// SignupPage renders the registration form.
func (h *UIHandlers) SignupPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.pageData(w, r, signupMeta()).Build())
}

// Signup handles the registration submission. The mobile number is validated
// as a bare 10-digit value and sent upstream with the country prefix. Success
// opens the session that carries the email into OTP verification.
func (h *UIHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	firstName := r.PostFormValue("first_name")
	lastName := r.PostFormValue("last_name")
	mobile := r.PostFormValue("mobile_no")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	sticky := func(b *TemplateDataBuilder) *TemplateDataBuilder {
		return b.With("FirstName", firstName).With("LastName", lastName).
			With("MobileNo", mobile).With("Email", email)
	}

	v := validation.New().
		Check(firstName, validation.Required("First name"), validation.MinLen("First name", 2)).
		Check(lastName, validation.Required("Last name"), validation.MinLen("Last name", 2)).
		Check(mobile, validation.Required("Mobile number")).
		Check(email, validation.Required("Email")).
		Check(password, validation.Required("Password")).
		Check(email, validation.Email()).
		Check(mobile, validation.Mobile("Invalid mobile number format. Must be 10 digits.")).
		Check(password, validation.MinLen("Password", 6))
	if msg := v.Error(); msg != "" {
		h.render(w, r, sticky(h.pageData(w, r, signupMeta()).WithError(msg)).Build())
		return
	}

	sess, err := h.Auth.SignUp(r.Context(), model.Registration{
		FirstName: firstName,
		LastName:  lastName,
		MobileNo:  h.CountryPrefix + mobile,
		Email:     email,
		Password:  password,
	})
	if err != nil {
		h.render(w, r, sticky(h.pageData(w, r, signupMeta()).
			WithError(failureMessage(err, "Signup failed. Try again."))).Build())
		return
	}

	h.setSessionCookie(w, sess.ID)
	setFlash(w, h.CookieDomain, "Signup successful! Please verify your email.")
	redirectBrowser(w, r, "/otp-verification")
}

// OTPPage renders the verification form for the email carried by the session.
func (h *UIHandlers) OTPPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	h.render(w, r, h.pageData(w, r, otpMeta()).With("Email", sess.Email).Build())
}

// VerifyOTP handles the verification submission. Success tears the bridging
// session down; the user signs in afresh.
func (h *UIHandlers) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	otp := r.PostFormValue("otp")

	v := validation.New().Check(otp, validation.Required("OTP"))
	if msg := v.Error(); msg != "" {
		h.render(w, r, h.pageData(w, r, otpMeta()).WithError(msg).With("Email", sess.Email).Build())
		return
	}

	if err := h.Auth.VerifyOTP(r.Context(), *sess, otp); err != nil {
		h.render(w, r, h.pageData(w, r, otpMeta()).
			WithError(failureMessage(err, "OTP verification failed.")).
			With("Email", sess.Email).Build())
		return
	}

	h.clearSessionCookie(w)
	setFlash(w, h.CookieDomain, "OTP Verified! Your account is now active.")
	redirectBrowser(w, r, "/login")
}

// ResendOTP requests a fresh OTP for the session's email from the
// verification page and surfaces the server's confirmation message.
func (h *UIHandlers) ResendOTP(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	msg, err := h.Auth.ResendOTP(r.Context(), sess.Email)
	if err != nil {
		h.render(w, r, h.pageData(w, r, otpMeta()).
			WithError(failureMessage(err, "Failed to resend OTP.")).
			With("Email", sess.Email).Build())
		return
	}

	setFlash(w, h.CookieDomain, msg)
	redirectBrowser(w, r, "/otp-verification")
}

// ForgotPasswordPage renders the forgot-password form.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, h.pageData(w, r, forgotMeta()).Build())
}

// ForgotPassword triggers the upstream OTP mail and opens the session that
// carries the email into the reset page.
func (h *UIHandlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.PostFormValue("email")

	v := validation.New().
		Check(email, validation.Required("Email"), validation.Email())
	if msg := v.Error(); msg != "" {
		h.render(w, r, h.pageData(w, r, forgotMeta()).WithError(msg).With("Email", email).Build())
		return
	}

	sess, err := h.Auth.BeginPasswordReset(r.Context(), email)
	if err != nil {
		h.render(w, r, h.pageData(w, r, forgotMeta()).
			WithError(failureMessage(err, "Failed to send OTP.")).
			With("Email", email).Build())
		return
	}

	h.setSessionCookie(w, sess.ID)
	setFlash(w, h.CookieDomain, "OTP sent to your email. Please check and reset your password.")
	redirectBrowser(w, r, "/reset-password")
}

// ResetPasswordPage renders the reset form. Without a session email there is
// nothing to reset, so the visitor is sent back to the start of the flow.
func (h *UIHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectBrowser(w, r, "/forgot-password")
		return
	}
	h.render(w, r, h.pageData(w, r, resetMeta()).With("Email", sess.Email).Build())
}

// ResetPassword verifies the OTP and sets the new password, then tears the
// bridging session down.
func (h *UIHandlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	if sess == nil {
		redirectBrowser(w, r, "/forgot-password")
		return
	}
	otp := r.PostFormValue("otp")
	newPassword := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")

	v := validation.New().
		Check(otp, validation.Required("OTP")).
		Check(newPassword, validation.Required("New password")).
		Check(confirm, validation.Required("Confirm password")).
		Check(confirm, validation.Equals(newPassword, "Passwords do not match.")).
		Check(newPassword, validation.MinLen("Password", 6))
	if msg := v.Error(); msg != "" {
		h.render(w, r, h.pageData(w, r, resetMeta()).WithError(msg).With("Email", sess.Email).Build())
		return
	}

	if err := h.Auth.CompletePasswordReset(r.Context(), *sess, otp, newPassword); err != nil {
		h.render(w, r, h.pageData(w, r, resetMeta()).
			WithError(failureMessage(err, "Failed to reset password.")).
			With("Email", sess.Email).Build())
		return
	}

	h.clearSessionCookie(w)
	setFlash(w, h.CookieDomain, "Password reset successfully. You can now log in.")
	redirectBrowser(w, r, "/login")
}

// ChangePasswordPage renders the change-password form for a signed-in user.
func (h *UIHandlers) ChangePasswordPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.requireSession(w, r); !ok {
		return
	}
	h.render(w, r, h.pageData(w, r, changePasswordMeta()).Build())
}

// ChangePassword rotates the password for a signed-in user.
func (h *UIHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}
	current := r.PostFormValue("password")
	newPassword := r.PostFormValue("new_password")
	confirm := r.PostFormValue("confirm_password")

	v := validation.New().
		CheckAll("All fields are required.", current, newPassword, confirm).
		Check(confirm, validation.Equals(newPassword, "New passwords do not match.")).
		Check(newPassword, validation.MinLen("New password", 6))
	if msg := v.Error(); msg != "" {
		h.render(w, r, h.pageData(w, r, changePasswordMeta()).WithError(msg).Build())
		return
	}

	msg, err := h.Auth.ChangePassword(r.Context(), sess.Email, current, newPassword)
	if err != nil {
		h.render(w, r, h.pageData(w, r, changePasswordMeta()).
			WithError(failureMessage(err, "Failed to change password.")).Build())
		return
	}

	setFlash(w, h.CookieDomain, msg)
	redirectBrowser(w, r, "/profile")
}

// Logout notifies the user service, destroys the server session and cookie,
// and drops any mounted admin table for the session.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := GetSessionFromContext(r.Context()); sess != nil {
		if err := h.Auth.Logout(r.Context(), *sess); err != nil {
			h.logger().ErrorContext(r.Context(), "logout failed", "error", err)
		}
		h.Admin.Unmount(sess.ID)
	}
	h.clearSessionCookie(w)
	redirectBrowser(w, r, "/login")
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Login", PageTitle: "Login", CurrentPage: PageLogin}
}

func signupMeta() PageMeta {
	return PageMeta{Title: "Sign Up", PageTitle: "Create Account", CurrentPage: PageSignup}
}

func otpMeta() PageMeta {
	return PageMeta{Title: "OTP Verification", PageTitle: "Verify OTP", CurrentPage: PageOTP}
}

func forgotMeta() PageMeta {
	return PageMeta{Title: "Forgot Password", PageTitle: "Forgot Password", CurrentPage: PageForgotPassword}
}

func resetMeta() PageMeta {
	return PageMeta{Title: "Reset Password", PageTitle: "Reset Password", CurrentPage: PageResetPassword}
}

func changePasswordMeta() PageMeta {
	return PageMeta{Title: "Change Password", PageTitle: "Change Password", CurrentPage: PageChangePassword}
}
