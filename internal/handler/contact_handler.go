package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/contact"
)

// ContactHandler 联系留言处理器
type ContactHandler struct {
	contactService contact.ContactService
}

// ContactCreatedResponse 提交留言的响应
type ContactCreatedResponse struct {
	ID      uint   `json:"id"`
	Message string `json:"message"`
}

// StatusRequest 更新留言状态请求
type StatusRequest struct {
	Status string `json:"status"`
}

// NewContactHandler 创建联系留言处理器实例
func NewContactHandler(contactService contact.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// CreateMessage 提交留言
// @Summary 提交留言
// @Tags 联系
// @Accept json
// @Produce json
// @Param message body contact.CreateMessageRequest true "留言内容"
// @Success 201 {object} ContactCreatedResponse
// @Failure 400 {object} response.ErrorBody "字段缺失或邮箱格式错误"
// @Router /api/contact [post]
func (h *ContactHandler) CreateMessage(c *gin.Context) {
	var req contact.CreateMessageRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	msg, err := h.contactService.CreateMessage(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, ContactCreatedResponse{
		ID:      msg.ID,
		Message: "Contact message sent successfully",
	})
}

// ListMessages 获取留言列表
// @Summary 获取留言列表
// @Tags 联系
// @Produce json
// @Param status query string false "状态 unread|read|archived|all"
// @Param limit query int false "每页条数" default(50)
// @Param offset query int false "偏移量" default(0)
// @Success 200 {array} database.ContactMessage
// @Router /api/contact [get]
func (h *ContactHandler) ListMessages(c *gin.Context) {
	messages, err := h.contactService.ListMessages(c.Request.Context(), listParams(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, messages)
}

// UpdateStatus 更新留言状态
// @Summary 更新留言状态
// @Tags 联系
// @Accept json
// @Produce json
// @Param id path int true "留言ID"
// @Param body body StatusRequest true "新状态"
// @Success 200 {object} response.MessageBody
// @Failure 400 {object} response.ErrorBody "状态不合法"
// @Failure 404 {object} response.ErrorBody "留言不存在"
// @Router /api/contact/{id} [put]
func (h *ContactHandler) UpdateStatus(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req StatusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.contactService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Contact message status updated successfully")
}

// DeleteMessage 删除留言
// @Summary 删除留言
// @Tags 联系
// @Produce json
// @Param id path int true "留言ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody "留言不存在"
// @Router /api/contact/{id} [delete]
func (h *ContactHandler) DeleteMessage(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := h.contactService.DeleteMessage(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Contact message deleted successfully")
}
