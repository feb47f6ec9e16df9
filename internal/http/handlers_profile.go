package httpx

import (
	"net/http"
	"strings"

	"github.com/caseworks/user-portal/internal/domain/model"
	"github.com/caseworks/user-portal/internal/http/validation"
)

// Homepage renders the signed-in landing page.
func (h *UIHandlers) Homepage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	data := h.pageData(w, r, homepageMeta())
	if sess != nil {
		data.With("Email", sess.Email)
	}
	h.render(w, r, data.Build())
}

// ProfilePage fetches and renders the signed-in user's record. The mobile
// number is shown without the country prefix, the way it was typed.
func (h *UIHandlers) ProfilePage(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	data := h.pageData(w, r, profileMeta())

	p, err := h.Profiles.Get(r.Context(), sess.Email)
	if err != nil {
		h.render(w, r, data.
			WithError(failureMessage(err, "Failed to fetch profile data.")).Build())
		return
	}

	h.render(w, r, data.
		With("FirstName", p.FirstName).
		With("LastName", p.LastName).
		With("MobileNo", strings.TrimPrefix(p.MobileNo, h.CountryPrefix)).
		With("Email", p.Email).
		With("Status", p.Status).
		With("Inactive", p.Status == model.StatusInactive).
		Build())
}

// UpdateProfile handles the profile edit submission.
func (h *UIHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess := GetSessionFromContext(r.Context())
	firstName := r.PostFormValue("first_name")
	lastName := r.PostFormValue("last_name")
	mobile := r.PostFormValue("mobile_no")

	sticky := func(b *TemplateDataBuilder) *TemplateDataBuilder {
		return b.With("FirstName", firstName).With("LastName", lastName).
			With("MobileNo", mobile).With("Email", sess.Email)
	}

	v := validation.New().
		Check(firstName, validation.Required("First name"), validation.MinLen("First name", 2)).
		Check(lastName, validation.Required("Last name"), validation.MinLen("Last name", 2)).
		Check(mobile, validation.Required("Mobile number"), validation.Mobile("Mobile number must be 10 digits.")).
		Error()
	if v != "" {
		h.render(w, r, sticky(h.pageData(w, r, profileMeta()).WithError(v)).Build())
		return
	}

	msg, err := h.Profiles.Update(r.Context(), model.ProfileUpdate{
		Email:     sess.Email,
		FirstName: firstName,
		LastName:  lastName,
		MobileNo:  h.CountryPrefix + mobile,
	})
	if err != nil {
		h.render(w, r, sticky(h.pageData(w, r, profileMeta()).
			WithError(failureMessage(err, "Failed to update profile."))).Build())
		return
	}

	setFlash(w, h.CookieDomain, msg)
	redirectBrowser(w, r, "/profile")
}

// ActivateAccount requests a fresh OTP for an inactive account and hands the
// user to the verification page.
func (h *UIHandlers) ActivateAccount(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	msg, err := h.Auth.ResendOTP(r.Context(), sess.Email)
	if err != nil {
		h.render(w, r, h.pageData(w, r, profileMeta()).
			WithError(failureMessage(err, "Failed to resend OTP.")).
			With("Email", sess.Email).Build())
		return
	}

	setFlash(w, h.CookieDomain, msg)
	redirectBrowser(w, r, "/otp-verification")
}

func homepageMeta() PageMeta {
	return PageMeta{Title: "Home", PageTitle: "Welcome", CurrentPage: PageHomepage}
}

func profileMeta() PageMeta {
	return PageMeta{Title: "Profile", PageTitle: "My Profile", CurrentPage: PageProfile}
}
