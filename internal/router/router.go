package router

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/weiwangfds/easterblog/config"
	"github.com/weiwangfds/easterblog/internal/handler"
	"github.com/weiwangfds/easterblog/internal/logger"
	"github.com/weiwangfds/easterblog/internal/middleware"
	"github.com/weiwangfds/easterblog/internal/response"
	"github.com/weiwangfds/easterblog/internal/service/auth"
	"github.com/weiwangfds/easterblog/internal/service/blog"
	"github.com/weiwangfds/easterblog/internal/service/category"
	"github.com/weiwangfds/easterblog/internal/service/contact"
	"github.com/weiwangfds/easterblog/internal/service/media"
	"github.com/weiwangfds/easterblog/internal/storage"
	"gorm.io/gorm"
)

// multipartOverhead 请求体上限在文件上限之外为表单字段预留的空间
const multipartOverhead = 1 << 20

// Router 路由配置
type Router struct {
	engine *gin.Engine
	db     *gorm.DB
}

// NewRouter 创建路由实例
func NewRouter(cfg *config.Config, db *gorm.DB, store *storage.Manager) *Router {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}

	engine := gin.New()

	// 初始化服务
	maxSize := cfg.Upload.MaxSize
	photoService := media.NewPhotoService(db, store, maxSize)
	videoService := media.NewVideoService(db, store, maxSize)
	blogService := blog.NewBlogService(db)
	contactService := contact.NewContactService(db)
	categoryService := category.NewCategoryService(db)
	authService := auth.NewAuthService(cfg.Auth)

	// 初始化处理器
	healthHandler := handler.NewHealthHandler(db)
	photoHandler := handler.NewPhotoHandler(photoService, maxSize)
	videoHandler := handler.NewVideoHandler(videoService, maxSize)
	blogHandler := handler.NewBlogHandler(blogService)
	contactHandler := handler.NewContactHandler(contactService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	adminHandler := handler.NewAdminHandler(authService)

	// 使用中间件
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Metrics())
	engine.Use(middleware.RequestLogger())
	engine.Use(corsMiddleware(cfg.Server.CORSOrigins))
	if maxSize > 0 {
		engine.Use(middleware.BodyLimit(maxSize + multipartOverhead))
	}

	admin := middleware.RequireAdmin(authService)
	if authService.Enabled() {
		logger.Info("管理员鉴权已启用")
	}

	// 健康检查与指标
	engine.GET("/health", healthHandler.Health)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 本地上传文件
	if cfg.Upload.PublicPrefix != "" && cfg.Upload.RootDir != "" {
		engine.Static(cfg.Upload.PublicPrefix, cfg.Upload.RootDir)
	}

	api := engine.Group("/api")
	{
		api.GET("/db/status", healthHandler.DBStatus)
		api.POST("/admin/login", adminHandler.Login)

		// 视频
		videos := api.Group("/videos")
		{
			videos.GET("", videoHandler.ListVideos)
			videos.GET("/featured", videoHandler.GetFeatured)
			videos.GET("/:id", videoHandler.GetVideo)
			videos.POST("", admin, videoHandler.UploadVideo)
			videos.PUT("/:id", admin, videoHandler.UpdateVideo)
			videos.PUT("/:id/featured", admin, videoHandler.SetFeatured)
			videos.DELETE("/:id", admin, videoHandler.DeleteVideo)
			videos.POST("/:id/view", videoHandler.RecordView)
			videos.POST("/:id/like", videoHandler.LikeVideo)
		}

		// 照片
		photos := api.Group("/photos")
		{
			photos.GET("", photoHandler.ListPhotos)
			photos.GET("/:id", photoHandler.GetPhoto)
			photos.POST("", admin, photoHandler.UploadPhoto)
			photos.PUT("/:id", admin, photoHandler.UpdatePhoto)
			photos.DELETE("/:id", admin, photoHandler.DeletePhoto)
			photos.POST("/:id/like", photoHandler.LikePhoto)
		}

		api.GET("/categories/:type", categoryHandler.ListCategories)

		// 博客
		posts := api.Group("/blog-posts")
		{
			posts.GET("", blogHandler.ListPosts)
			posts.GET("/:id", blogHandler.GetPost)
			posts.POST("", admin, blogHandler.CreatePost)
			posts.PUT("/:id", admin, blogHandler.UpdatePost)
			posts.DELETE("/:id", admin, blogHandler.DeletePost)
			posts.POST("/:id/view", blogHandler.RecordView)
			posts.POST("/:id/like", blogHandler.LikePost)
		}

		// 联系留言
		contacts := api.Group("/contact")
		{
			contacts.POST("", contactHandler.CreateMessage)
			contacts.GET("", admin, contactHandler.ListMessages)
			contacts.PUT("/:id", admin, contactHandler.UpdateStatus)
			contacts.DELETE("/:id", admin, contactHandler.DeleteMessage)
		}
	}

	engine.NoRoute(notFound(cfg.Server.StaticDir))

	return &Router{
		engine: engine,
		db:     db,
	}
}

// corsMiddleware 未配置来源时允许所有来源
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:        86400,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}

// notFound 未知的 /api 路径返回JSON，其余路径交给静态站点目录
func notFound(staticDir string) gin.HandlerFunc {
	var files http.Handler
	if staticDir != "" {
		if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
			files = http.FileServer(gin.Dir(staticDir, false))
		} else {
			logger.Warnf("静态站点目录不可用: %s", staticDir)
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if files == nil || path == "/api" || strings.HasPrefix(path, "/api/") {
			response.NotFound(c, "API endpoint not found")
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			response.NotFound(c, "API endpoint not found")
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}

// GetEngine 获取Gin引擎
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// GetDB 获取数据库连接
func (r *Router) GetDB() *gorm.DB {
	return r.db
}
