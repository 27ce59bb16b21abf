package middleware

import (
	"bytes"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tasklane/tasklane/internal/services"
)

// AuditLog records write operations (POST/PUT/DELETE) to the activity trail.
func AuditLog(activity *services.ActivityLogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != "POST" && method != "PUT" && method != "DELETE" {
			c.Next()
			return
		}

		var bodySnippet string
		if c.Request.Body != nil {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			bodySnippet = string(bodyBytes)
			if len(bodySnippet) > 2000 {
				bodySnippet = bodySnippet[:2000] + "...[truncated]"
			}
			bodySnippet = maskPasswordFields(bodySnippet)
		}

		c.Next()

		userID := GetUserID(c)
		status := c.Writer.Status()
		module, action := parseRouteInfo(c.FullPath(), method)

		var uid *uint
		if userID > 0 {
			uid = &userID
		}

		level := "info"
		if status >= 400 {
			level = "warning"
		}

		activity.Record(level, module, action,
			formatAuditMessage(GetEmail(c), method, c.Request.URL.Path, status),
			uid, c.ClientIP(), c.Request.UserAgent(), map[string]interface{}{
				"method": method,
				"path":   c.Request.URL.Path,
				"status": status,
				"body":   bodySnippet,
			})
	}
}

// parseRouteInfo extracts module and action from a Gin route pattern,
// e.g. "/api/boards/:id" + "DELETE" → module="boards", action="Delete".
func parseRouteInfo(fullPath, method string) (module, action string) {
	path := strings.TrimPrefix(fullPath, "/api/")

	parts := strings.Split(strings.Trim(path, "/"), "/")
	module = parts[0]
	if module == "" {
		module = "unknown"
	}
	// Nested resources like /boards/:id/lists audit under the leaf resource.
	if last := parts[len(parts)-1]; last != module && !strings.HasPrefix(last, ":") {
		module = last
	}

	switch method {
	case "POST":
		action = "Create"
	case "PUT":
		action = "Update"
	case "DELETE":
		action = "Delete"
	default:
		action = method
	}

	return module, action
}

func formatAuditMessage(email, method, path string, status int) string {
	var b strings.Builder
	b.WriteString(email)
	b.WriteString(" ")
	b.WriteString(method)
	b.WriteString(" ")
	b.WriteString(path)
	if status >= 200 && status < 300 {
		b.WriteString(" ok")
	} else {
		b.WriteString(" failed")
	}
	return b.String()
}

// maskPasswordFields does a best-effort mask of password values in a JSON
// body snippet before it is persisted.
func maskPasswordFields(body string) string {
	lower := strings.ToLower(body)
	idx := strings.Index(lower, `"password"`)
	if idx == -1 {
		return body
	}

	colonIdx := strings.Index(body[idx:], ":")
	if colonIdx == -1 {
		return body
	}
	valueStart := idx + colonIdx + 1

	for valueStart < len(body) && (body[valueStart] == ' ' || body[valueStart] == '\t') {
		valueStart++
	}
	if valueStart >= len(body) || body[valueStart] != '"' {
		return body
	}

	endQuote := strings.Index(body[valueStart+1:], `"`)
	if endQuote == -1 {
		return body
	}
	return body[:valueStart+1] + "***" + body[valueStart+1+endQuote:]
}
