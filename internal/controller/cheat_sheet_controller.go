package controller

import (
	"errors"

	"examprep_backend/internal/model"
	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CheatSheetController struct {
	CheatSheetService *service.CheatSheetService
}

func NewCheatSheetController(cheatSheetService *service.CheatSheetService) *CheatSheetController {
	return &CheatSheetController{CheatSheetService: cheatSheetService}
}

// List godoc
// @Summary 速查表
// @Description 预设公式加用户收藏的条目，可按主题过滤
// @Tags 速查表
// @Produce  json
// @Security BearerAuth
// @Param   topicId query int false "主题ID，缺省为全部"
// @Success 200 {object} util.Response{data=service.CheatSheet} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/cheat-sheet [get]
func (c *CheatSheetController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	topicID := parseUintQuery(ctx, "topicId", 0)
	sheet, err := c.CheatSheetService.ForUser(claims.UserID, topicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, sheet)
}

type AddEntryRequest struct {
	TopicID    uint   `json:"topicId" binding:"required"`
	Formula    string `json:"formula" binding:"required"`
	Label      string `json:"label"`
	OrderIndex int    `json:"orderIndex"`
}

// Add godoc
// @Summary 收藏公式
// @Tags 速查表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body AddEntryRequest true "公式内容"
// @Success 201 {object} util.Response{data=model.CheatSheetEntry} "创建成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/cheat-sheet [post]
func (c *CheatSheetController) Add(ctx *gin.Context) {
	var req AddEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	entry := &model.CheatSheetEntry{
		UserID:     claims.UserID,
		TopicID:    req.TopicID,
		Formula:    req.Formula,
		Label:      req.Label,
		OrderIndex: req.OrderIndex,
	}
	if err := c.CheatSheetService.AddEntry(entry); err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, entry)
}

// Remove godoc
// @Summary 删除收藏的公式
// @Description 只能删除自己的条目
// @Tags 速查表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "条目ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "条目不存在"
// @Router /api/cheat-sheet/{id} [delete]
func (c *CheatSheetController) Remove(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid entry id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.CheatSheetService.RemoveEntry(id, claims.UserID); err != nil {
		if errors.Is(err, util.ErrEntryNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
