package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/folio/internal/auth"
	"github.com/folio/internal/content"
	"github.com/folio/internal/db"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey   = "user_id"
	sessionUsernameKey = "username"
	principalKey       = "__principal"
)

// Principal 是通过会话或 Bearer token 认证的当前用户。
type Principal struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Via      string `json:"via"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

func (a *API) authenticate(c *gin.Context) (*db.User, bool) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || strings.TrimSpace(req.Username) == "" || req.Password == "" {
		respondError(c, http.StatusBadRequest, "请输入用户名和密码")
		return nil, false
	}

	user, err := db.Authenticate(a.db.WithContext(c.Request.Context()), req.Username, req.Password)
	if err != nil {
		a.logger.InfoContext(c.Request.Context(), "login rejected", "username", req.Username, "ip", c.ClientIP())
		respondError(c, http.StatusUnauthorized, "用户名或密码错误")
		return nil, false
	}
	return user, true
}

// Login 校验用户名密码并写入会话，支持表单与 JSON。
func (a *API) Login(c *gin.Context) {
	user, ok := a.authenticate(c)
	if !ok {
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionUsernameKey, user.Username)
	if err := session.Save(); err != nil {
		a.logger.ErrorContext(c.Request.Context(), "save session", "err", err)
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout 清空会话。
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}
	c.Status(http.StatusNoContent)
}

// IssueToken 用管理员账号密码换取 Bearer token，供脚本调用后台接口。
func (a *API) IssueToken(c *gin.Context) {
	if a.tokens == nil {
		respondError(c, http.StatusNotFound, "token 签发未启用")
		return
	}

	user, ok := a.authenticate(c)
	if !ok {
		return
	}
	if !user.IsAdmin() {
		respondError(c, http.StatusForbidden, "需要管理员权限")
		return
	}

	token, expiresAt, err := a.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		a.logger.ErrorContext(c.Request.Context(), "issue token", "err", err)
		respondError(c, http.StatusInternalServerError, "签发 token 失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"token_type": "Bearer",
		"expires_at": expiresAt,
	})
}

// AdminRequired 要求请求来自管理员：会话或 Bearer token 均可。
// 匿名请求返回 401，非管理员返回 403。
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := a.resolvePrincipal(c)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		if principal.Role != db.RoleAdmin {
			respondError(c, http.StatusForbidden, "需要管理员权限")
			c.Abort()
			return
		}

		c.Set(principalKey, *principal)
		c.Next()
	}
}

var errAnonymous = errors.New("anonymous request")

func (a *API) resolvePrincipal(c *gin.Context) (*Principal, error) {
	if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
		raw, found := strings.CutPrefix(header, "Bearer ")
		if !found || a.tokens == nil {
			return nil, auth.ErrTokenInvalid
		}
		claims, err := a.tokens.Verify(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		userID, err := claims.UserID()
		if err != nil {
			return nil, err
		}
		return a.loadPrincipal(c, userID, "token")
	}

	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserIDKey).(uint)
	if !ok || userID == 0 {
		return nil, errAnonymous
	}
	return a.loadPrincipal(c, userID, "session")
}

// loadPrincipal 角色以数据库为准：账号被删除或降级后，已签发的会话与 token 立即失效。
func (a *API) loadPrincipal(c *gin.Context, userID uint, via string) (*Principal, error) {
	var user db.User
	if err := a.db.WithContext(c.Request.Context()).First(&user, userID).Error; err != nil {
		return nil, errAnonymous
	}
	return &Principal{UserID: user.ID, Username: user.Username, Role: user.Role, Via: via}, nil
}

func currentPrincipal(c *gin.Context) (Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return Principal{}, false
	}
	principal, ok := value.(Principal)
	return principal, ok
}

// Me 返回当前登录的管理员。
func (a *API) Me(c *gin.Context) {
	principal, _ := currentPrincipal(c)
	c.JSON(http.StatusOK, gin.H{"user": principal})
}

// Dashboard 返回后台首页统计。
func (a *API) Dashboard(c *gin.Context) {
	stats, err := a.dashboard.Stats(c.Request.Context())
	if err != nil {
		a.respondServiceError(c, err, "获取统计数据失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"stats": stats})
}

// SlugPreview 为编辑器实时生成 slug。
func (a *API) SlugPreview(c *gin.Context) {
	slug := content.Slugify(c.Query("title"))
	c.JSON(http.StatusOK, gin.H{"slug": slug, "valid": content.ValidSlug(slug)})
}
