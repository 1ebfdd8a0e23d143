package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/blog"
)

// BlogHandler 博客文章处理器
type BlogHandler struct {
	blogService blog.BlogService
}

// NewBlogHandler 创建博客处理器实例
func NewBlogHandler(blogService blog.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// ListPosts 获取文章列表
// @Summary 获取文章列表
// @Tags 博客
// @Produce json
// @Param status query string false "状态 draft|published|all" default(published)
// @Param category query string false "分类，all 表示全部"
// @Param limit query int false "每页条数" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} database.BlogPost
// @Router /api/blog-posts [get]
func (h *BlogHandler) ListPosts(c *gin.Context) {
	posts, err := h.blogService.ListPosts(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, posts)
}

// GetPost 获取已发布的文章
// @Summary 获取文章详情
// @Tags 博客
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} database.BlogPost
// @Failure 404 {object} response.ErrorBody "文章不存在或未发布"
// @Router /api/blog-posts/{id} [get]
func (h *BlogHandler) GetPost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.blogService.GetPublishedPost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// CreatePost 创建文章
// @Summary 创建文章
// @Description 未提供摘要时按内容自动生成
// @Tags 博客
// @Accept json
// @Produce json
// @Param post body blog.CreatePostRequest true "文章内容"
// @Success 201 {object} database.BlogPost
// @Failure 400 {object} response.ErrorBody "标题或内容为空"
// @Router /api/blog-posts [post]
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req blog.CreatePostRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := h.blogService.CreatePost(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// UpdatePost 部分更新文章
// @Summary 更新文章
// @Tags 博客
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param post body blog.UpdatePostRequest true "更新内容"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "文章不存在"
// @Router /api/blog-posts/{id} [put]
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req blog.UpdatePostRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.blogService.UpdatePost(c.Request.Context(), id, &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Blog post updated successfully")
}

// DeletePost 删除文章
// @Summary 删除文章
// @Tags 博客
// @Produce json
// @Param id path int true "文章ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "文章不存在"
// @Router /api/blog-posts/{id} [delete]
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.blogService.DeletePost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Blog post deleted successfully")
}

// RecordView 记录一次阅读
// @Router /api/blog-posts/{id}/view [post]
func (h *BlogHandler) RecordView(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	views, err := h.blogService.RecordView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CounterResponse{ID: id, Views: views})
}

// LikePost 点赞
// @Router /api/blog-posts/{id}/like [post]
func (h *BlogHandler) LikePost(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	likes, err := h.blogService.LikePost(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, CounterResponse{ID: id, Likes: likes})
}
