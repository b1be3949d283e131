package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidIDParam = errors.New("无效的ID参数")

// parseIDParam 解析路径中的 :id 参数
func parseIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidIDParam
	}
	return id, nil
}

// PaginationInfo 定义了通用的分页信息结构
type PaginationInfo struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
}
