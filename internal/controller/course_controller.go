package controller

import (
	"errors"

	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	ContentService  *service.ContentService
	ProgressService *service.ProgressService
}

func NewCourseController(contentService *service.ContentService, progressService *service.ProgressService) *CourseController {
	return &CourseController{
		ContentService:  contentService,
		ProgressService: progressService,
	}
}

// ListCourses godoc
// @Summary 课程列表
// @Description 按排序返回全部课程，含主题数量与锁定标记
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary} "成功"
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	courses, err := c.ContentService.ListCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CourseTopics godoc
// @Summary 课程下的主题
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response{data=[]model.Topic} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/courses/{id}/topics [get]
func (c *CourseController) CourseTopics(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	topics, err := c.ContentService.TopicsForCourse(id)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// AllTopics godoc
// @Summary 所有主题
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Topic} "成功"
// @Router /api/topics [get]
func (c *CourseController) AllTopics(ctx *gin.Context) {
	topics, err := c.ContentService.AllTopics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topics)
}

// TopicDetail godoc
// @Summary 主题详情
// @Description 主题信息加当前用户在该主题下的进度
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "主题ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/topics/{id} [get]
func (c *CourseController) TopicDetail(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}

	topic, err := c.ContentService.GetTopic(id)
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
		"topic":    topic,
		"progress": progress,
	})
}
