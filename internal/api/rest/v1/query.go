package v1

import (
	"fmt"
	"strconv"
	"time"

	"github.com/drinkbox/storefront/internal/pkg/strutil"
	"github.com/drinkbox/storefront/internal/pkg/validators"

	"github.com/gin-gonic/gin"
)

func queryInt(ctx *gin.Context, name string, fallback int) int {
	if v := ctx.Query(name); len(v) > 0 {
		return strutil.ConvertToInt(v)
	}
	return fallback
}

// queryDate accepts YYYY-MM-DD or RFC3339 values.
func queryDate(ctx *gin.Context, name string) (*time.Time, error) {
	v := ctx.Query(name)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(DateLayout, v); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a date", validators.ErrValidation, name)
	}
	t = t.UTC()
	return &t, nil
}

func queryBool(ctx *gin.Context, name string) (*bool, error) {
	v := ctx.Query(name)
	if v == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", validators.ErrValidation, name)
	}
	return &b, nil
}
