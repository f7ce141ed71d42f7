package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetIDParam(ctx *gin.Context, name string) (uint, error) {
	idStr := ctx.Param(name)

	if idStr == "" {
		return 0, errors.New("Missing " + name + " parameter")
	}

	id, err := strconv.ParseUint(idStr, 10, 32)

	if err != nil {
		return 0, errors.New("Invalid " + name + " parameter")
	}

	return uint(id), nil
}

// GetLimitParam parses an optional "limit" query parameter, clamped to max.
func GetLimitParam(ctx *gin.Context, fallback, max int) int {
	limitStr := ctx.Query("limit")

	if limitStr == "" {
		return fallback
	}

	limit, err := strconv.Atoi(limitStr)

	if err != nil || limit <= 0 {
		return fallback
	}

	if limit > max {
		return max
	}

	return limit
}
