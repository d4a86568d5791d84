package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spyne-social/api-go/config"
	"github.com/spyne-social/api-go/controllers"
	"github.com/spyne-social/api-go/middleware"
	"github.com/spyne-social/api-go/repository"
	"github.com/spyne-social/api-go/storage"
	"github.com/spyne-social/api-go/utils"
)

// Dependencies are the collaborators the handlers are built from.
type Dependencies struct {
	Config *config.Config
	Repos  *repository.Repositories
	Tokens *utils.TokenIssuer
	// Images may be nil, which disables discussion image uploads.
	Images storage.ImageStore
}

func SetupRouter(deps Dependencies) *gin.Engine {
	if deps.Config.Env == config.ProdEnv {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(corsConfig(deps.Config.CORSAllowedOrigins)))
	r.Use(middleware.Authenticate(deps.Repos.Users, deps.Tokens))

	SetupRoutes(r, deps)
	return r
}

func SetupRoutes(r *gin.Engine, deps Dependencies) {
	repos := deps.Repos

	// Initialize controllers
	authController := controllers.NewAuthController(repos.Users, deps.Tokens)
	userController := controllers.NewUserController(repos.Users)
	followController := controllers.NewFollowController(repos.Users, repos.Follows)
	discussionController := controllers.NewDiscussionController(repos.Discussions, deps.Images, deps.Config.Storage.MaxImageSize)
	commentController := controllers.NewCommentController(repos.Comments, repos.Discussions)
	replyController := controllers.NewReplyController(repos.Replies, repos.Comments)
	likeController := controllers.NewLikeController(repos.Likes, repos.Discussions)
	commentLikeController := controllers.NewCommentLikeController(repos.CommentLikes, repos.Comments, deps.Config.Likes)
	validationController := controllers.NewValidationController(repos.Users)

	SetupAuthRoutes(r, authController)
	SetupUserRoutes(r, userController, followController)
	SetupFollowRoutes(r, followController)
	SetupDiscussionRoutes(r, discussionController)
	SetupCommentRoutes(r, commentController, replyController)
	SetupLikeRoutes(r, likeController, commentLikeController)
	SetupValidationRoutes(r, validationController)
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	for _, origin := range origins {
		if origin == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	cfg.AllowOrigins = origins
	return cfg
}
