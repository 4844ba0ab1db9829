package controller

import (
	"errors"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PracticeController struct {
	PracticeService *service.PracticeService
	ContentService  *service.ContentService
	ProgressService *service.ProgressService
}

func NewPracticeController(
	practiceService *service.PracticeService,
	contentService *service.ContentService,
	progressService *service.ProgressService,
) *PracticeController {
	return &PracticeController{
		PracticeService: practiceService,
		ContentService:  contentService,
		ProgressService: progressService,
	}
}

// Info godoc
// @Summary 练习入口信息
// @Description 主题信息加当前用户的练习进度
// @Tags 练习
// @Produce  json
// @Security BearerAuth
// @Param   topicId path int true "主题ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/practice/{topicId}/info [get]
func (c *PracticeController) Info(ctx *gin.Context) {
	topicID := parseUintParam(ctx, "topicId")
	if topicID == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	topic, err := c.ContentService.GetTopic(topicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	progress, err := c.ProgressService.ForTopic(claims.UserID, topic)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{
		"topic":           topic,
		"practicePercent": progress.PracticePercent,
	})
}

type GenerateRequest struct {
	TemplateID uint `json:"templateId"` // 非零时固定用该模板出题
}

// Generate godoc
// @Summary 出一道练习题
// @Description 随机挑主题下的模板出题；传 templateId 可重复出同类题
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   topicId path int true "主题ID"
// @Param   body body GenerateRequest false "可选的模板锁定"
// @Success 200 {object} util.Response{data=service.PracticeQuestion} "成功"
// @Failure 404 {object} util.Response "主题不存在或没有可用模板"
// @Router /api/practice/{topicId}/generate [post]
func (c *PracticeController) Generate(ctx *gin.Context) {
	topicID := parseUintParam(ctx, "topicId")
	if topicID == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	var req GenerateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	question, err := c.PracticeService.GenerateQuestion(ctx.Request.Context(), claims.UserID, topicID, req.TemplateID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTopicNotFound),
			errors.Is(err, util.ErrTemplateNotFound),
			errors.Is(err, util.ErrNoTemplates):
			util.NotFound(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, question)
}

type GradeRequest struct {
	AttemptID string `json:"attemptId" binding:"required"`
	Answer    string `json:"answer"`
	Mode      string `json:"mode" binding:"omitempty,oneof=view master"`
}

// Grade godoc
// @Summary 提交答案
// @Description mode 为空时判题计分；view 只看解析；master 标记已掌握
// @Tags 练习
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   topicId path int true "主题ID"
// @Param   body body GradeRequest true "作答内容"
// @Success 200 {object} util.Response{data=service.GradeResult} "成功"
// @Failure 403 {object} util.Response "不是本人的答题记录"
// @Failure 404 {object} util.Response "答题记录不存在"
// @Router /api/practice/{topicId}/grade [post]
func (c *PracticeController) Grade(ctx *gin.Context) {
	var req GradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	result, err := c.PracticeService.GradeAnswer(ctx.Request.Context(), claims.UserID, req.AttemptID, req.Answer, req.Mode)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAttemptNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}
