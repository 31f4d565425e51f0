package controller

import (
	"errors"
	"linguacert_backend/internal/service"
	"linguacert_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Auth *service.AuthService
}

func NewUserController(auth *service.AuthService) *UserController {
	return &UserController{Auth: auth}
}

// GetUser 用户公开信息
// @Summary User profile by id
// @Description Sensitive fields (password hash, refresh token) are never serialized.
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Security BearerAuth
// @Router /api/users/{id} [get]
func (ctl *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid user id")
		return
	}

	user, err := ctl.Auth.GetUser(uint(id))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, user)
}
