package controller

import (
	"errors"

	"examprep_backend/internal/model"
	"examprep_backend/internal/service"
	"examprep_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminContentController 后台内容维护：课程/主题/卡片/模板与图片上传
type AdminContentController struct {
	ContentService *service.ContentService
	StorageService *service.StorageService
}

func NewAdminContentController(contentService *service.ContentService, storageService *service.StorageService) *AdminContentController {
	return &AdminContentController{
		ContentService: contentService,
		StorageService: storageService,
	}
}

// ---- 课程 ----

// CreateCourse godoc
// @Summary 新建课程
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Course true "课程信息"
// @Success 201 {object} util.Response{data=model.Course} "创建成功"
// @Router /api/admin/courses [post]
func (c *AdminContentController) CreateCourse(ctx *gin.Context) {
	var course model.Course
	if err := ctx.ShouldBindJSON(&course); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if course.Name == "" {
		util.BadRequest(ctx, "course name is required")
		return
	}
	if err := c.ContentService.CreateCourse(&course); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary 更新课程
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Param   body body model.Course true "课程信息"
// @Success 200 {object} util.Response{data=model.Course} "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [put]
func (c *AdminContentController) UpdateCourse(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	var input model.Course
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	course, err := c.ContentService.UpdateCourse(id, &input)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary 删除课程
// @Description 主题保留但解除课程关联
// @Tags 后台-内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "课程ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "课程不存在"
// @Router /api/admin/courses/{id} [delete]
func (c *AdminContentController) DeleteCourse(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}
	if err := c.ContentService.DeleteCourse(id); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ---- 主题 ----

// CreateTopic godoc
// @Summary 新建主题
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.Topic true "主题信息"
// @Success 201 {object} util.Response{data=model.Topic} "创建成功"
// @Router /api/admin/topics [post]
func (c *AdminContentController) CreateTopic(ctx *gin.Context) {
	var topic model.Topic
	if err := ctx.ShouldBindJSON(&topic); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if topic.Name == "" {
		util.BadRequest(ctx, "topic name is required")
		return
	}
	if err := c.ContentService.CreateTopic(&topic); err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.BadRequest(ctx, "course does not exist")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, topic)
}

// UpdateTopic godoc
// @Summary 更新主题
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "主题ID"
// @Param   body body model.Topic true "主题信息"
// @Success 200 {object} util.Response{data=model.Topic} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/admin/topics/{id} [put]
func (c *AdminContentController) UpdateTopic(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	var input model.Topic
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	topic, err := c.ContentService.UpdateTopic(id, &input)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, topic)
}

// DeleteTopic godoc
// @Summary 删除主题
// @Description 级联删除卡片、模板、练习记录和进度
// @Tags 后台-内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "主题ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/admin/topics/{id} [delete]
func (c *AdminContentController) DeleteTopic(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	if err := c.ContentService.DeleteTopic(id); err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ---- 学习卡片 ----

// CreateCard godoc
// @Summary 新建学习卡片
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.LearnCard true "卡片信息"
// @Success 201 {object} util.Response{data=model.LearnCard} "创建成功"
// @Router /api/admin/cards [post]
func (c *AdminContentController) CreateCard(ctx *gin.Context) {
	var card model.LearnCard
	if err := ctx.ShouldBindJSON(&card); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateCard(&card); err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.BadRequest(ctx, "topic does not exist")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, card)
}

// UpdateCard godoc
// @Summary 更新学习卡片
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "卡片ID"
// @Param   body body model.LearnCard true "卡片信息"
// @Success 200 {object} util.Response{data=model.LearnCard} "成功"
// @Failure 404 {object} util.Response "卡片不存在"
// @Router /api/admin/cards/{id} [put]
func (c *AdminContentController) UpdateCard(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid card id")
		return
	}
	var input model.LearnCard
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	card, err := c.ContentService.UpdateCard(id, &input)
	if err != nil {
		if errors.Is(err, util.ErrCardNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, card)
}

// DeleteCard godoc
// @Summary 删除学习卡片
// @Tags 后台-内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "卡片ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "卡片不存在"
// @Router /api/admin/cards/{id} [delete]
func (c *AdminContentController) DeleteCard(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid card id")
		return
	}
	if err := c.ContentService.DeleteCard(id); err != nil {
		if errors.Is(err, util.ErrCardNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ---- 出题模板 ----

// ListTemplates godoc
// @Summary 主题下的出题模板
// @Tags 后台-内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "主题ID"
// @Success 200 {object} util.Response{data=[]model.QuestionTemplate} "成功"
// @Failure 404 {object} util.Response "主题不存在"
// @Router /api/admin/topics/{id}/templates [get]
func (c *AdminContentController) ListTemplates(ctx *gin.Context) {
	topicID := parseUintParam(ctx, "id")
	if topicID == 0 {
		util.BadRequest(ctx, "invalid topic id")
		return
	}
	templates, err := c.ContentService.TemplatesForTopic(topicID)
	if err != nil {
		if errors.Is(err, util.ErrTopicNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, templates)
}

// CreateTemplate godoc
// @Summary 新建出题模板
// @Description 保存前校验模板类型能解出答案，否则拒绝
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body model.QuestionTemplate true "模板信息"
// @Success 201 {object} util.Response{data=model.QuestionTemplate} "创建成功"
// @Failure 400 {object} util.Response "模板无法解出答案"
// @Router /api/admin/templates [post]
func (c *AdminContentController) CreateTemplate(ctx *gin.Context) {
	var template model.QuestionTemplate
	if err := ctx.ShouldBindJSON(&template); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.ContentService.CreateTemplate(&template); err != nil {
		switch {
		case errors.Is(err, util.ErrTopicNotFound):
			util.BadRequest(ctx, "topic does not exist")
		case errors.Is(err, util.ErrTemplateUnsolvable):
			util.BadRequest(ctx, "模板无法解出答案：检查 kind 与参数定义")
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Created(ctx, template)
}

// UpdateTemplate godoc
// @Summary 更新出题模板
// @Tags 后台-内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模板ID"
// @Param   body body model.QuestionTemplate true "模板信息"
// @Success 200 {object} util.Response{data=model.QuestionTemplate} "成功"
// @Failure 400 {object} util.Response "模板无法解出答案"
// @Failure 404 {object} util.Response "模板不存在"
// @Router /api/admin/templates/{id} [put]
func (c *AdminContentController) UpdateTemplate(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid template id")
		return
	}
	var input model.QuestionTemplate
	if err := ctx.ShouldBindJSON(&input); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	template, err := c.ContentService.UpdateTemplate(id, &input)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTemplateNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTemplateUnsolvable):
			util.BadRequest(ctx, "模板无法解出答案：检查 kind 与参数定义")
		default:
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, template)
}

// DeleteTemplate godoc
// @Summary 删除出题模板
// @Tags 后台-内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "模板ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "模板不存在"
// @Router /api/admin/templates/{id} [delete]
func (c *AdminContentController) DeleteTemplate(ctx *gin.Context) {
	id := parseUintParam(ctx, "id")
	if id == 0 {
		util.BadRequest(ctx, "invalid template id")
		return
	}
	if err := c.ContentService.DeleteTemplate(id); err != nil {
		if errors.Is(err, util.ErrTemplateNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ---- 图片上传 ----

// UploadImage godoc
// @Summary 上传图片
// @Description 课程图标或卡片插图，返回可访问 URL
// @Tags 后台-内容
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "图片文件"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 400 {object} util.Response "文件类型不支持"
// @Router /api/admin/upload/image [post]
func (c *AdminContentController) UploadImage(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	url, err := c.StorageService.UploadImage(ctx.Request.Context(), header)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"url": url})
}
