package handler

import (
	"log/slog"

	"github.com/folio/internal/auth"
	"github.com/folio/internal/content"
	"github.com/folio/internal/service"
	"github.com/folio/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db                *gorm.DB
	posts             *service.BlogService
	gallery           *service.GalleryService
	blogCategories    *service.CategoryService
	galleryCategories *service.CategoryService
	reader            *service.Reader
	dashboard         *service.DashboardService
	uploads           *service.UploadService
	tokens            *auth.TokenService
	limiter           *auth.RateLimiter
	site              service.FeedSite
	logger            *slog.Logger
}

// Options 是构造 API 所需的外部依赖。Limiter 为空时不限流。
type Options struct {
	DB      *gorm.DB
	Store   storage.Store
	Tokens  *auth.TokenService
	Limiter *auth.RateLimiter
	Site    service.FeedSite
	Logger  *slog.Logger
	// Blog 可替换文章服务，测试中用于注入时钟。
	Blog *service.BlogService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(opts Options) *API {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	posts := opts.Blog
	if posts == nil {
		posts = service.NewBlogService(opts.DB)
	}

	return &API{
		db:                opts.DB,
		posts:             posts,
		gallery:           service.NewGalleryService(opts.DB),
		blogCategories:    service.NewCategoryService(opts.DB, content.FamilyBlog),
		galleryCategories: service.NewCategoryService(opts.DB, content.FamilyGallery),
		reader:            service.NewReader(opts.DB, logger),
		dashboard:         service.NewDashboardService(opts.DB),
		uploads:           service.NewUploadService(opts.Store, logger),
		tokens:            opts.Tokens,
		limiter:           opts.Limiter,
		site:              opts.Site,
		logger:            logger,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) categories(family content.Family) *service.CategoryService {
	if family == content.FamilyGallery {
		return a.galleryCategories
	}
	return a.blogCategories
}
