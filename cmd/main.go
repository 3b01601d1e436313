package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	v1 "inkwell/api/v1"
	"inkwell/config"
	"inkwell/dao"
	myvalidator "inkwell/internal/validator"
	"inkwell/middleware"
	"inkwell/model"
	"inkwell/service"
)

func main() {
	// 初始化配置
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../"
	}
	config.InitConfig(configPath)
	config.InitRedis()

	// 初始化数据库
	db, err := gorm.Open(mysql.Open(config.GlobalConfig.MySQL.DSN), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		panic(err)
	}

	// 自动迁移
	if err := model.InitTables(db); err != nil {
		panic(err)
	}

	// 初始化 DAO 和 Service
	userDAO := dao.NewUserDAO(db)
	articleDAO := dao.NewArticleDAO(db)
	followDAO := dao.NewFollowDAO(db)
	favoriteDAO := dao.NewFavoriteDAO(db)
	commentDAO := dao.NewCommentDAO(db)

	userService := service.NewUserService(userDAO, config.RedisClient)
	articleService := service.NewArticleService(articleDAO, favoriteDAO, followDAO)
	profileService := service.NewProfileService(userDAO, followDAO)
	commentService := service.NewCommentService(commentDAO, articleDAO, followDAO)
	statsService := service.NewStatsService(articleDAO)

	userAPI := v1.NewUserAPI(userService)
	articleAPI := v1.NewArticleAPI(articleService, statsService)
	profileAPI := v1.NewProfileAPI(profileService)
	commentAPI := v1.NewCommentAPI(commentService)

	// 初始化路由
	r := gin.Default()
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 注册自定义校验器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("slug", myvalidator.IsSlug); err != nil {
			panic(err)
		}
	}

	session := userService.Session
	optionalAuth := middleware.OptionalAuthMiddleware(session)
	requireAuth := middleware.AuthMiddleware(session)
	writeLimiter := middleware.RateLimiter(config.RedisClient, "write", 30, time.Minute)

	// 公共路由（匿名可读，带 token 则按观察者视角投影）
	public := r.Group("/api/v1")
	public.Use(optionalAuth)
	{
		public.GET("/articles", articleAPI.List)
		public.GET("/articles/:slug", articleAPI.Get)
		public.GET("/articles/:slug/comments", commentAPI.List)
		public.GET("/profiles/:username", profileAPI.Get)
	}

	// 鉴权入口
	open := r.Group("/api/v1")
	{
		open.POST("/users/register", userAPI.Register)
		loginLimiter := middleware.RateLimiter(config.RedisClient, "login", 5, time.Minute)
		open.POST("/users/login", loginLimiter, userAPI.Login)
		open.POST("/users/refresh", userAPI.RefreshToken)
	}

	// 私有路由
	private := r.Group("/api/v1")
	private.Use(requireAuth)
	{
		private.POST("/users/logout", userAPI.Logout)
		private.GET("/user", userAPI.Current)
		private.PUT("/user", userAPI.Update)

		private.GET("/articles/feed", articleAPI.Feed)
		private.GET("/articles/stats/monthly", articleAPI.MonthlyStats)
		private.POST("/articles", writeLimiter, articleAPI.Create)
		private.PUT("/articles/:slug", writeLimiter, articleAPI.Update)
		private.DELETE("/articles/:slug", articleAPI.Delete)
		private.POST("/articles/publish", writeLimiter, articleAPI.Publish)

		private.POST("/articles/:slug/favorite", articleAPI.Favorite)
		private.DELETE("/articles/:slug/favorite", articleAPI.Unfavorite)

		private.POST("/articles/:slug/comments", writeLimiter, commentAPI.Create)
		private.DELETE("/articles/:slug/comments/:id", commentAPI.Delete)

		private.POST("/profiles/:username/follow", profileAPI.Follow)
		private.DELETE("/profiles/:username/follow", profileAPI.Unfollow)
	}

	// 启动服务
	if err := r.Run(config.GlobalConfig.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
