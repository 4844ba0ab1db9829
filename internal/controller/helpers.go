package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam 解析路径参数，0 表示无效
func parseUintParam(ctx *gin.Context, name string) uint {
	v, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// parseUintQuery 解析可选查询参数，缺省返回 fallback
func parseUintQuery(ctx *gin.Context, name string, fallback uint) uint {
	raw := ctx.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return fallback
	}
	return uint(v)
}
