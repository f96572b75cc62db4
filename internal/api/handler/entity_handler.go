package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"farmdesk/internal/dto"
	"farmdesk/internal/form"
	"farmdesk/internal/model"
	"farmdesk/internal/query"
	"farmdesk/internal/service"
	"farmdesk/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// EntityHandler 单类记录的 HTTP 处理器（六类记录共用）
type EntityHandler[T model.Record] struct {
	svc service.EntityService[T]
}

// NewEntityHandler 创建 EntityHandler
func NewEntityHandler[T model.Record](svc service.EntityService[T]) *EntityHandler[T] {
	return &EntityHandler[T]{svc: svc}
}

// List 列表页
// GET /api/v1/:kind?sort=key:desc&status=growing
func (h *EntityHandler[T]) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), listRequest(c))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Get 单条记录
// GET /api/v1/:kind/:id
func (h *EntityHandler[T]) Get(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, rec)
}

// NewForm 新建表单
// GET /api/v1/:kind/form
func (h *EntityHandler[T]) NewForm(c *gin.Context) {
	result, err := h.svc.FormFor(c.Request.Context(), "")
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// EditForm 编辑表单（回填当前值）
// GET /api/v1/:kind/:id/form
func (h *EntityHandler[T]) EditForm(c *gin.Context) {
	result, err := h.svc.FormFor(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, result)
}

// Create 新建记录，接受 JSON 或表单提交
// POST /api/v1/:kind
func (h *EntityHandler[T]) Create(c *gin.Context) {
	values, ok := bindValues(c)
	if !ok {
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), values)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, rec)
}

// Update 编辑记录，未提交的字段保持不变
// PUT /api/v1/:kind/:id
func (h *EntityHandler[T]) Update(c *gin.Context) {
	values, ok := bindValues(c)
	if !ok {
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), values)
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, rec)
}

// Delete 删除记录，需携带 confirm=true
// DELETE /api/v1/:kind/:id?confirm=true
func (h *EntityHandler[T]) Delete(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"
	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), confirmed); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, nil)
}

// Replace 整体替换集合
// PUT /api/v1/:kind
func (h *EntityHandler[T]) Replace(c *gin.Context) {
	var records []T
	if err := c.ShouldBindJSON(&records); err != nil {
		response.BadRequest(c, response.CodeBadParams, "参数校验失败")
		return
	}

	if err := h.svc.Replace(c.Request.Context(), records); err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, gin.H{"count": len(records)})
}

// SetFilters 保存筛选条件，值为空串表示清除
// PATCH /api/v1/:kind/filters
func (h *EntityHandler[T]) SetFilters(c *gin.Context) {
	var req map[string]string
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, response.CodeBadParams, "参数校验失败")
		return
	}

	merged, err := h.svc.SetFilters(c.Request.Context(), query.Filters(req))
	if err != nil {
		handleError(c, err)
		return
	}
	response.OK(c, merged)
}

// Export 按当前筛选与排序导出 Excel
// GET /api/v1/:kind/export
func (h *EntityHandler[T]) Export(c *gin.Context) {
	buf, filename, err := h.svc.Export(c.Request.Context(), listRequest(c))
	if err != nil {
		handleError(c, err)
		return
	}

	// 设置下载响应头
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ── 请求解析 ──

// listRequest sort 以外的查询参数均视为筛选条件
func listRequest(c *gin.Context) *dto.ListRequest {
	req := &dto.ListRequest{Sort: c.Query("sort")}
	for k, vs := range c.Request.URL.Query() {
		if k == "sort" || len(vs) == 0 {
			continue
		}
		if req.Filters == nil {
			req.Filters = query.Filters{}
		}
		req.Filters[k] = vs[0]
	}
	return req
}

func bindValues(c *gin.Context) (form.Values, bool) {
	switch c.ContentType() {
	case binding.MIMEPOSTForm, binding.MIMEMultipartPOSTForm:
		if err := c.Request.ParseMultipartForm(32 << 10); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			response.BadRequest(c, response.CodeBadParams, "参数校验失败")
			return nil, false
		}
		return form.Values(c.Request.PostForm), true
	default:
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			response.BadRequest(c, response.CodeBadParams, "参数校验失败")
			return nil, false
		}
		return form.ValuesFromJSON(body), true
	}
}

// handleError 记录模块错误码映射
func handleError(c *gin.Context, err error) {
	var verr *form.ValidationError
	switch {
	case errors.As(err, &verr):
		response.UnprocessableEntity(c, response.CodeValidationFailed, "表单校验失败", verr.Fields)
	case errors.Is(err, service.ErrRecordNotFound):
		response.NotFound(c, response.CodeRecordNotFound, "记录不存在")
	case errors.Is(err, service.ErrDeleteNotConfirmed):
		response.PreconditionRequired(c, response.CodeConfirmRequired, "删除操作需要确认（confirm=true）")
	case errors.Is(err, query.ErrUnknownFilter):
		response.BadRequest(c, response.CodeUnknownFilter, err.Error())
	case errors.Is(err, query.ErrUnknownSortKey), errors.Is(err, query.ErrInvalidSort):
		response.BadRequest(c, response.CodeUnknownSortKey, err.Error())
	case errors.Is(err, service.ErrInvalidRecords):
		response.BadRequest(c, response.CodeBadParams, err.Error())
	default:
		response.InternalError(c)
	}
}
