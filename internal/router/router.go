package router

import (
	"net/http"
	"strings"

	"github.com/folio/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "folio_session"

// Config 描述路由层需要的设置。
type Config struct {
	SessionSecret string
	// UploadDir 为本地存储目录；使用对象存储时留空，不挂载静态路由。
	UploadDir     string
	UploadURLPath string
	SecureCookie  bool
}

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(api *handler.API, cfg Config) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 32 << 20

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   7 * 24 * 60 * 60,
		HttpOnly: true,
		Secure:   cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, store))

	if dir := strings.TrimSpace(cfg.UploadDir); dir != "" {
		urlPath := strings.TrimRight(cfg.UploadURLPath, "/")
		if urlPath == "" {
			urlPath = "/uploads"
		}
		r.Static(urlPath, dir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})
	r.GET("/feed.xml", api.Feed)

	// 前台只读接口
	public := r.Group("/api")
	{
		public.GET("/posts", api.ListPosts)
		public.GET("/posts/preview", api.PostPreview)
		public.GET("/posts/:slug", api.ShowPost)
		public.GET("/gallery", api.ListGallery)
		public.GET("/gallery/preview", api.GalleryPreview)
		public.GET("/categories/:family", api.ListCategories)
	}

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.LoginRateLimit(), api.Login)
		admin.POST("/logout", api.Logout)
		admin.POST("/token", api.LoginRateLimit(), api.IssueToken)

		// 需要管理员权限的接口
		authed := admin.Group("/api")
		authed.Use(api.AdminRequired())
		{
			authed.GET("/me", api.Me)
			authed.GET("/dashboard", api.Dashboard)
			authed.GET("/slug", api.SlugPreview)

			authed.GET("/posts", api.AdminListPosts)
			authed.POST("/posts", api.AdminCreatePost)
			authed.GET("/posts/:id", api.AdminGetPost)
			authed.PUT("/posts/:id", api.AdminUpdatePost)
			authed.DELETE("/posts/:id", api.AdminDeletePost)
			authed.POST("/posts/:id/publish", api.AdminTogglePost)

			authed.GET("/gallery", api.AdminListGallery)
			authed.POST("/gallery", api.AdminCreateGalleryItem)
			authed.GET("/gallery/:id", api.AdminGetGalleryItem)
			authed.PUT("/gallery/:id", api.AdminUpdateGalleryItem)
			authed.DELETE("/gallery/:id", api.AdminDeleteGalleryItem)
			authed.POST("/gallery/:id/publish", api.AdminToggleGalleryItem)

			authed.GET("/categories/:family", api.AdminListCategories)
			authed.POST("/categories/:family", api.AdminCreateCategory)
			authed.PUT("/categories/:family/:id", api.AdminRenameCategory)
			authed.DELETE("/categories/:family/:id", api.AdminDeleteCategory)

			authed.POST("/uploads/blog", api.UploadBlogImage)
			authed.POST("/uploads/gallery", api.UploadGalleryMedia)
		}
	}

	return r
}
