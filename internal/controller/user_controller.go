package controller

import (
	"errors"
	"strconv"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UserController 后台账号管理
type UserController struct {
	UserService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{UserService: userService}
}

// List godoc
// @Summary 用户列表
// @Tags 后台-用户
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=service.UserPage} "成功"
// @Router /api/admin/users [get]
func (c *UserController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	result, err := c.UserService.List(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// Update godoc
// @Summary 更新用户
// @Description 修改显示名或角色
// @Tags 后台-用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Param   body body service.UpdateUserRequest true "更新内容"
// @Success 200 {object} util.Response{data=model.User} "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id} [put]
func (c *UserController) Update(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	var req service.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	user, err := c.UserService.UpdateUser(id, &req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, user)
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// SetDisabled godoc
// @Summary 禁用/启用用户
// @Tags 后台-用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "用户ID"
// @Param   body body SetDisabledRequest true "禁用状态"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "用户不存在"
// @Router /api/admin/users/{id}/disabled [put]
func (c *UserController) SetDisabled(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid user id")
		return
	}
	var req SetDisabledRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.UserService.SetDisabled(id, *req.Disabled); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"disabled": *req.Disabled})
}

// ListInviteCodes godoc
// @Summary 邀请码列表
// @Tags 后台-用户
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.InviteCode} "成功"
// @Router /api/admin/invite-codes [get]
func (c *UserController) ListInviteCodes(ctx *gin.Context) {
	codes, err := c.UserService.ListInviteCodes()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, codes)
}

type GenerateCodesRequest struct {
	Count int `json:"count" binding:"required,min=1,max=50"`
}

// GenerateInviteCodes godoc
// @Summary 批量生成邀请码
// @Tags 后台-用户
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body GenerateCodesRequest true "生成数量"
// @Success 201 {object} util.Response{data=[]model.InviteCode} "创建成功"
// @Router /api/admin/invite-codes [post]
func (c *UserController) GenerateInviteCodes(ctx *gin.Context) {
	var req GenerateCodesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	codes, err := c.UserService.GenerateInviteCodes(req.Count)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, codes)
}
