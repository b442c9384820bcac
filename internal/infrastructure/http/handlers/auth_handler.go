package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/rodainahassan/gatehouse/internal/application/auth"
	domerrors "github.com/rodainahassan/gatehouse/internal/domain/errors"
	"github.com/rodainahassan/gatehouse/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	signup         *auth.Signup
	login          *auth.Login
	verifyAccount  *auth.VerifyAccount
	forgotPassword *auth.ForgotPassword
	checkReset     *auth.CheckResetToken
	resetPassword  *auth.ResetPassword
	changePassword *auth.ChangePassword
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, login *auth.Login, verifyAccount *auth.VerifyAccount, forgotPassword *auth.ForgotPassword, checkReset *auth.CheckResetToken, resetPassword *auth.ResetPassword, changePassword *auth.ChangePassword, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:         signup,
		login:          login,
		verifyAccount:  verifyAccount,
		forgotPassword: forgotPassword,
		checkReset:     checkReset,
		resetPassword:  resetPassword,
		changePassword: changePassword,
		validate:       validator.New(),
		log:            log,
	}
}

// writeValidationErr surfaces the first failing constraint.
func writeValidationErr(w http.ResponseWriter, err error) {
	var ve *domerrors.ValidationError
	if errors.As(err, &ve) {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, ve.Error())
		return
	}
	writeErr(w, http.StatusUnprocessableEntity, KindValidation, err.Error())
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username       string `json:"username" validate:"required,max=30"`
		Email          string `json:"email" validate:"required,max=254"`
		Password       string `json:"password" validate:"required,max=128"`
		ProfilePicture string `json:"profilePicture" validate:"omitempty,max=512"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Username:       body.Username,
		Email:          body.Email,
		Secret:         body.Password,
		ProfilePicture: body.ProfilePicture,
	})
	if err != nil {
		AuditLog(h.log, r, "account.signup", "", false, err.Error())
		middleware.RecordCredentialOp("signup", false)
		switch {
		case domerrors.IsValidation(err):
			writeValidationErr(w, err)
		case errors.Is(err, domerrors.ErrDuplicateAccount):
			writeErr(w, http.StatusUnprocessableEntity, KindDuplicateAccount,
				"Username or Email already exists, please choose another.")
		default:
			h.log.Error().Err(err).Msg("signup failed")
			writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "account.signup", result.Account.ID.String(), true, "")
	middleware.RecordCredentialOp("signup", true)
	writeData(w, http.StatusCreated,
		fmt.Sprintf("Welcome, %s, your registration was successful.", result.Account.Username), nil)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required,max=30"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Username: body.Username,
		Secret:   body.Password,
	})
	if err != nil {
		AuditLog(h.log, r, "account.login", "", false, err.Error())
		middleware.RecordCredentialOp("login", false)
		switch {
		case domerrors.IsValidation(err):
			writeValidationErr(w, err)
		case errors.Is(err, domerrors.ErrAccountNotFound):
			writeErr(w, http.StatusNotFound, KindAccountNotFound, "Account not found.")
		case errors.Is(err, domerrors.ErrSecretMismatch):
			writeErr(w, http.StatusUnauthorized, KindSecretMismatch, "Password is incorrect.")
		default:
			h.log.Error().Err(err).Msg("login failed")
			writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "account.login", result.Account.ID.String(), true, "")
	middleware.RecordCredentialOp("login", true)
	writeData(w, http.StatusOK,
		fmt.Sprintf("Welcome, %s.", result.Account.Username), result.SessionToken)
}

func (h *AuthHandler) VerifyAccount(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "verificationToken")
	result, err := h.verifyAccount.Execute(r.Context(), auth.VerifyAccountInput{Token: token})
	if err != nil {
		AuditLog(h.log, r, "account.verify", "", false, err.Error())
		middleware.RecordCredentialOp("verify", false)
		if errors.Is(err, domerrors.ErrTokenInvalidOrExpired) {
			writeErr(w, http.StatusUnprocessableEntity, KindTokenInvalidOrExpired,
				"Verification token is invalid or has expired, you can resend the verification email and try again.")
			return
		}
		h.log.Error().Err(err).Msg("verify account failed")
		writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		return
	}
	AuditLog(h.log, r, "account.verify", result.Account.ID.String(), true, "")
	middleware.RecordCredentialOp("verify", true)
	writeData(w, http.StatusOK, "Account was verified successfully.", nil)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	_, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{Email: body.Email})
	if err != nil {
		AuditLog(h.log, r, "account.forgot_password", "", false, err.Error())
		middleware.RecordCredentialOp("forgot_password", false)
		switch {
		case domerrors.IsValidation(err):
			writeValidationErr(w, err)
		case errors.Is(err, domerrors.ErrAccountNotFound):
			writeErr(w, http.StatusNotFound, KindAccountNotFound,
				"Email is not associated with any existing account.")
		default:
			h.log.Error().Err(err).Msg("forgot password failed")
			writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "account.forgot_password", "", true, "")
	middleware.RecordCredentialOp("forgot_password", true)
	writeData(w, http.StatusOK,
		"An email with further instructions on how to reset your password was sent to you, check your inbox!", nil)
}

func (h *AuthHandler) CheckResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "resetToken")
	result, err := h.checkReset.Execute(r.Context(), auth.CheckResetTokenInput{Token: token})
	if err != nil {
		if errors.Is(err, domerrors.ErrTokenInvalidOrExpired) {
			writeErr(w, http.StatusUnprocessableEntity, KindTokenInvalidOrExpired,
				"Reset password token is invalid or has expired, you can submit a forgot password request again.")
			return
		}
		h.log.Error().Err(err).Msg("check reset token failed")
		writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		return
	}
	writeData(w, http.StatusOK, "You can now reset your password.", result.AccountID.String())
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password        string `json:"password" validate:"required,max=128"`
		ConfirmPassword string `json:"confirmPassword" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	accountID := chi.URLParam(r, "accountID")
	token := chi.URLParam(r, "resetToken")
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		AccountID:     accountID,
		Token:         token,
		NewSecret:     body.Password,
		ConfirmSecret: body.ConfirmPassword,
	})
	if err != nil {
		AuditLog(h.log, r, "account.reset_password", accountID, false, err.Error())
		middleware.RecordCredentialOp("reset_password", false)
		switch {
		case domerrors.IsValidation(err):
			writeValidationErr(w, err)
		case errors.Is(err, domerrors.ErrAccountNotFound):
			writeErr(w, http.StatusNotFound, KindAccountNotFound, "Account not found.")
		default:
			h.log.Error().Err(err).Msg("reset password failed")
			writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "account.reset_password", accountID, true, "")
	middleware.RecordCredentialOp("reset_password", true)
	writeData(w, http.StatusOK, "Password was reset successfully.", nil)
}

func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, KindUnauthenticated, "please login first to access our services")
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
		Password        string `json:"password" validate:"required,max=128"`
		ConfirmPassword string `json:"confirmPassword" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusUnprocessableEntity, KindValidation, "invalid request body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeValidationErr(w, err)
		return
	}
	_, err := h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		AccountID:     identity.AccountID,
		CurrentSecret: body.CurrentPassword,
		NewSecret:     body.Password,
		ConfirmSecret: body.ConfirmPassword,
	})
	if err != nil {
		AuditLog(h.log, r, "account.change_password", identity.AccountID.String(), false, err.Error())
		middleware.RecordCredentialOp("change_password", false)
		switch {
		case domerrors.IsValidation(err):
			writeValidationErr(w, err)
		case errors.Is(err, domerrors.ErrAccountNotFound):
			writeErr(w, http.StatusNotFound, KindAccountNotFound, "Account not found.")
		case errors.Is(err, domerrors.ErrSecretMismatch):
			writeErr(w, http.StatusForbidden, KindSecretMismatch, "Current password is incorrect.")
		default:
			h.log.Error().Err(err).Msg("change password failed")
			writeErr(w, http.StatusInternalServerError, KindInternal, "internal error")
		}
		return
	}
	AuditLog(h.log, r, "account.change_password", identity.AccountID.String(), true, "")
	middleware.RecordCredentialOp("change_password", true)
	writeData(w, http.StatusOK, "Password was changed successfully.", nil)
}
