package controller

import (
	"errors"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LearnController struct {
	LearnService *service.LearnService
}

func NewLearnController(learnService *service.LearnService) *LearnController {
	return &LearnController{LearnService: learnService}
}

// Cards godoc
// @Summary 主题下的学习卡片
// @Description 按排序返回卡片，附当前用户的完成标记
// @Tags 学习
// @Produce  json
// @Security BearerAuth
// @Param   topicId path int true "主题ID"
// @Success 200 {object} util.Response{data=[]service.CardWithStatus} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/learn/{topicId} [get]
func (c *LearnController) Cards(ctx *gin.Context) {
	topicID := parseUintParam(ctx, "topicId")
	if topicID == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	cards, err := c.LearnService.CardsForTopic(claims.UserID, topicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, cards)
}

type CompleteCardRequest struct {
	CardID uint `json:"cardId" binding:"required"`
}

// Complete godoc
// @Summary 标记卡片完成
// @Description 幂等操作，重复提交不报错
// @Tags 学习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   topicId path int true "主题ID"
// @Param   body body CompleteCardRequest true "卡片ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "卡片不存在"
// @Router /api/learn/{topicId}/complete [post]
func (c *LearnController) Complete(ctx *gin.Context) {
	topicID := parseUintParam(ctx, "topicId")
	if topicID == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	var req CompleteCardRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.LearnService.MarkCardComplete(ctx.Request.Context(), claims.UserID, topicID, req.CardID); err != nil {
		if errors.Is(err, util.ErrCardNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completed": true})
}
