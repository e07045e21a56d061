package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artify/internal/models/request_models"
	"artify/internal/services"
	"artify/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// Register godoc
// @Summary Register a new account
// @Description Create a new user account with starter credits
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Account registration payload"
// @Success 201 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/register [post]
func (a *AccountController) Register(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, nil, "Account created successfully")
}

// Login godoc
// @Summary Login to an account
// @Description Authenticate a user and return a session token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	token, err := a.accountService.Login(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	// Browser clients get the token as a cookie too, so the SPA does not
	// have to manage the Authorization header itself.
	c.SetCookie("access_token", token, 3600, "/", "", false, true)
	utils.RespondSuccess(c, gin.H{"token": token}, "Login successful")
}

// Logout godoc
// @Summary Log out of the current session
// @Description Clears the access token cookie
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/logout [post]
func (a *AccountController) Logout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	utils.RespondSuccess(c, nil, "Logged out")
}

// Profile godoc
// @Summary Get the current account profile
// @Tags Accounts
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/account [get]
func (a *AccountController) Profile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := a.accountService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, profile, "")
}

// UpdateProfile godoc
// @Summary Update the account display name
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.UpdateProfileRequest true "Profile payload"
// @Success 200 {object} utils.APIResponse
// @Router /api/account [put]
func (a *AccountController) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.UpdateProfile(c.Request.Context(), userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Profile updated")
}

// ChangePassword godoc
// @Summary Change the account password
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ChangePasswordRequest true "Password payload"
// @Success 200 {object} utils.APIResponse
// @Router /api/account/password [put]
func (a *AccountController) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req request_models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password changed")
}

// ForgotPassword godoc
// @Summary Request a password reset
// @Description Sends a reset token to the given email if an account exists
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ResetPasswordRequest true "Email payload"
// @Success 200 {object} utils.APIResponse
// @Router /api/auth/forgot-password [post]
func (a *AccountController) ForgotPassword(c *gin.Context) {
	var req request_models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	// Always the same answer, so the endpoint cannot be used to probe for
	// registered emails.
	utils.RespondSuccess(c, nil, "If the email exists, a reset link has been sent")
}

// ResetPassword godoc
// @Summary Reset the password with a token
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body request_models.ConsumeResetTokenRequest true "Reset payload"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/auth/reset-password [post]
func (a *AccountController) ResetPassword(c *gin.Context) {
	var req request_models.ConsumeResetTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := a.accountService.ResetPasswordWithToken(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Password has been reset")
}
