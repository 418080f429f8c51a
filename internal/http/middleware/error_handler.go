package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/lenstube-reports/internal/http/response"
	"github.com/ignatzorin/lenstube-reports/internal/logger"
)

// ErrorHandler отвечает за ошибки, которые обработчик положил в c.Errors,
// но не записал в ответ. Внутренние ошибки маскируются.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		logger.WithFields(logrus.Fields{
			"error":  err.Error(),
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		}).Error("Request error")

		response.Error(c, err.Err)
	}
}
