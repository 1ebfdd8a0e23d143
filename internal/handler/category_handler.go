package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/category"
)

// CategoryHandler 分类处理器
type CategoryHandler struct {
	categoryService category.CategoryService
}

// NewCategoryHandler 创建分类处理器实例
func NewCategoryHandler(categoryService category.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// ListCategories 按类型列出分类
// @Summary 获取分类
// @Tags 分类
// @Produce json
// @Param type path string true "photo 或 video"
// @Success 200 {array} database.Category
// @Failure 400 {object} response.ErrorBody "类型不合法"
// @Router /api/categories/{type} [get]
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context(), c.Param("type"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, categories)
}
