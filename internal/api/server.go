package api

import (
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"

	"github.com/rifa-digital/rifa-api/internal/api/graphql"
	"github.com/rifa-digital/rifa-api/internal/api/middleware"
	"github.com/rifa-digital/rifa-api/internal/config"
	"github.com/rifa-digital/rifa-api/internal/repository"
	"github.com/rifa-digital/rifa-api/internal/repository/dao"
	"github.com/rifa-digital/rifa-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	authenticator := middleware.NewAuthenticator(conf.API.JWTSigningKey)

	s.MountMiddlewares(authenticator)
	s.MountHandlers(s.initSchema(db, authenticator))

	return s
}

func (s *Server) initSchema(db *gorm.DB, authenticator *middleware.Authenticator) *gql.Schema {
	userDAO := dao.NewUserDAO(db)
	raffleDAO := dao.NewRaffleDAO(db)

	userRepo := repository.NewUserRepository(userDAO)
	raffleRepo := repository.NewRaffleRepository(raffleDAO)

	authSvc := service.NewAuthService(userRepo)
	userSvc := service.NewUserService(userRepo)
	raffleSvc := service.NewRaffleService(raffleRepo, userRepo)

	resolver := graphql.NewResolver(s.Config.API, authenticator, authSvc, userSvc, raffleSvc)

	return gql.MustParseSchema(graphql.Schema, resolver)
}

func (s *Server) MountMiddlewares(authenticator *middleware.Authenticator) {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))

	// Identity is extracted here but enforced per GraphQL field.
	s.Router.Use(authenticator.ExtractPrincipal())
}

func (s *Server) MountHandlers(schema *gql.Schema) {
	s.Router.POST("/graphql", gin.WrapH(&relay.Handler{Schema: schema}))

	s.Router.GET("/", HandleHealthcheck)
}

func HandleHealthcheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}
