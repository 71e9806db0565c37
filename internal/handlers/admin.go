// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/marketflow-backend/internal/i18n"
	"github.com/javajoker/marketflow-backend/internal/models"
	"github.com/javajoker/marketflow-backend/internal/services"
	"github.com/javajoker/marketflow-backend/internal/utils"
)

type AdminHandler struct {
	adminService *services.AdminService
	mediaService *services.MediaService
}

func NewAdminHandler(adminService *services.AdminService, mediaService *services.MediaService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		mediaService: mediaService,
	}
}

type UpdateUserRoleRequest struct {
	Role models.AppRole `json:"role" validate:"required,app_role"`
}

// GET /api/admin/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}
	utils.SuccessResponse(c, h.adminService.GetDashboardStats(ws.Directory))
}

// GET /api/admin/users
func (h *AdminHandler) GetUsers(c *gin.Context) {
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var users []models.ManagedUser
	if search := c.Query("search"); search != "" {
		users = ws.Directory.Search(search)
	} else {
		users = ws.Directory.List()
	}

	utils.ListResponse(c, users, len(users))
}

// POST /api/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ws.Directory.Create(req)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserCreated),
		"user":    user,
	})
}

// PUT /api/admin/users/:id/role
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	var req UpdateUserRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := ws.Directory.UpdateRole(c.Param("id"), req.Role)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserRoleUpdated),
		"user":    user,
	})
}

// POST /api/admin/users/:id/avatar
func (h *AdminHandler) StageAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	// Fail fast on unknown users before reading the upload
	if _, err := ws.Directory.Get(c.Param("id")); err != nil {
		h.userError(c, err)
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	options := h.mediaService.GetDefaultUploadOptions("avatars")
	encoded, err := h.mediaService.EncodeUpload(fileHeader, options)
	if err != nil {
		mediaErrorResponse(c, err, options)
		return
	}

	user, err := ws.Directory.StageAvatar(c.Param("id"), encoded.DataURL)
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAvatarStaged),
		"user":    user,
		"image":   encoded,
	})
}

// PUT /api/admin/users/:id/avatar
func (h *AdminHandler) CommitAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	user, err := ws.Directory.CommitAvatar(c.Param("id"))
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAvatarUpdated),
		"user":    user,
	})
}

// DELETE /api/admin/users/:id/avatar
func (h *AdminHandler) DiscardAvatar(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	user, err := ws.Directory.DiscardAvatar(c.Param("id"))
	if err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserAvatarDiscarded),
		"user":    user,
	})
}

// DELETE /api/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	ws, ok := workspace(c)
	if !ok {
		return
	}

	if err := ws.Directory.Delete(c.Param("id")); err != nil {
		h.userError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyUserDeleted),
	})
}

func (h *AdminHandler) userError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		utils.NotFoundResponse(c, i18n.KeyUserNotFound)
	case errors.Is(err, services.ErrInvalidUser):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUserInvalid), nil)
	case errors.Is(err, services.ErrInvalidRole):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyRoleInvalid), nil)
	case errors.Is(err, services.ErrNoStagedAvatar):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyUserAvatarNotStaged), nil)
	case errors.Is(err, services.ErrDirectoryExhausted):
		utils.ConflictResponse(c, i18n.T(lang, i18n.KeyDirectoryFull))
	default:
		utils.InternalErrorResponse(c, "")
	}
}
