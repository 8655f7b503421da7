package http

import (
	"context"

	"newsroom/internal/config"
	"newsroom/internal/domain"
	"newsroom/internal/infra/db"
	"newsroom/internal/infra/permcache"
	"newsroom/internal/infra/policyopa"
	"newsroom/internal/infra/ratelimit"
	"newsroom/internal/infra/token"
	"newsroom/internal/pipeline"
	"newsroom/internal/policies"
	"newsroom/internal/usecase"

	"github.com/gin-gonic/gin"
)

type TokenService interface {
	Issue(username string) (string, error)
	Decode(raw string) (string, error)
}

type Server struct {
	cfg   config.Config
	store *db.Store
	r     *gin.Engine

	users    usecase.UserRepository
	roles    usecase.RoleRepository
	articles usecase.ArticleRepository

	tokens  TokenService
	engine  *usecase.AuthorizationEngine
	perms   pipeline.PermissionSource
	limiter domain.RateLimiter

	initErr error
}

func NewServer(cfg config.Config, store *db.Store) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	s := &Server{cfg: cfg, store: store, r: r}
	s.initDeps()
	s.routes()
	return s
}

type ServerDeps struct {
	Users       usecase.UserRepository
	Roles       usecase.RoleRepository
	Articles    usecase.ArticleRepository
	Tokens      TokenService
	Registry    domain.PolicyRegistry
	Permissions pipeline.PermissionSource
	RateLimiter domain.RateLimiter
}

func NewServerWithDeps(cfg config.Config, deps ServerDeps) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		r:        r,
		users:    deps.Users,
		roles:    deps.Roles,
		articles: deps.Articles,
		tokens:   deps.Tokens,
		limiter:  deps.RateLimiter,
		perms:    deps.Permissions,
	}
	registry := deps.Registry
	if registry == nil {
		registry = policies.Default()
	}
	s.engine = usecase.NewAuthorizationEngine(registry)
	if s.perms == nil {
		s.perms = &usecase.RolePermissionResolver{
			Roles: deps.Roles,
			Cache: permcache.NewMemory(),
			TTL:   cfg.PermCacheTTL(),
		}
	}
	s.routes()
	return s
}

func (s *Server) initDeps() {
	tokens, err := token.NewManagerFromConfig(s.cfg)
	if err != nil {
		s.initErr = err
	}
	s.tokens = tokens

	if s.store != nil {
		s.users = db.NewUserRepository(s.store.DB)
		s.roles = db.NewRoleRepository(s.store.DB)
		s.articles = db.NewArticleRepository(s.store.DB)
	}

	registry := policies.Default()
	if s.cfg.PolicyBundlePath != "" {
		opaEngine, err := policyopa.NewEngineFromBundlePath(context.Background(), s.cfg.PolicyBundlePath)
		if err != nil {
			s.initErr = err
		} else {
			registry = opaEngine.Extend(registry)
		}
	}
	s.engine = usecase.NewAuthorizationEngine(registry)

	var cache usecase.PermissionCache
	if s.cfg.RedisAddr != "" {
		if redisCache, err := permcache.NewRedis(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB); err == nil {
			cache = redisCache
		}
	}
	if cache == nil {
		cache = permcache.NewMemory()
	}
	s.perms = &usecase.RolePermissionResolver{
		Roles: s.roles,
		Cache: cache,
		TTL:   s.cfg.PermCacheTTL(),
	}

	if s.cfg.LoginRateLimit > 0 {
		if s.cfg.RedisAddr != "" {
			if limiter, err := ratelimit.NewRedisLimiter(s.cfg.RedisAddr, s.cfg.RedisPassword, s.cfg.RedisDB, nil); err == nil {
				s.limiter = limiter
			}
		}
		if s.limiter == nil {
			s.limiter = ratelimit.NewMemoryLimiter(ratelimit.MemoryLimiterConfig{})
		}
	}
}

func (s *Server) routes() {
	authenticate := pipeline.Authenticate(s.tokens, s.users, s.cfg.PublicPaths())
	can := func(action domain.Action, entity domain.Entity) pipeline.Stage {
		return pipeline.Can(action, entity, s.engine, s.perms)
	}
	resolveArticle := pipeline.Resolve(domain.EntityArticle, "article_id", domain.ContextKeyArticle, lookupByID(func(ctx context.Context, id uint) (any, error) {
		return s.articles.FindByID(ctx, id)
	}))
	resolveRole := pipeline.Resolve(domain.EntityRole, "role_id", domain.ContextKeyRole, lookupByID(func(ctx context.Context, id uint) (any, error) {
		return s.roles.FindByID(ctx, id)
	}))
	resolveUser := pipeline.Resolve(domain.EntityUser, "user_id", domain.ContextKeyUser, lookupByID(func(ctx context.Context, id uint) (any, error) {
		return s.users.FindByID(ctx, id)
	}))

	s.r.GET("/healthz", s.handleHealthz)
	s.r.GET("/", s.guard(authenticate), s.handleWelcome)
	s.r.POST("/auth/login", s.loginThrottle(), s.guard(authenticate), s.handleLogin)

	articles := s.r.Group("/articles")
	{
		articles.GET("", s.guard(authenticate, can(domain.ActionView, domain.EntityArticle)), s.handleListArticles)
		articles.POST("", s.guard(authenticate, can(domain.ActionCreate, domain.EntityArticle)), s.handleCreateArticle)
		articles.GET("/:article_id", s.guard(authenticate, resolveArticle, can(domain.ActionView, domain.EntityArticle)), s.handleGetArticle)
		articles.PUT("/:article_id", s.guard(authenticate, resolveArticle, can(domain.ActionEdit, domain.EntityArticle)), s.handleUpdateArticle)
		articles.DELETE("/:article_id", s.guard(authenticate, resolveArticle, can(domain.ActionDelete, domain.EntityArticle)), s.handleDeleteArticle)
	}

	s.r.GET("/roles/:role_id", s.guard(authenticate, resolveRole, can(domain.ActionView, domain.EntityRole)), s.handleGetRole)
	s.r.PUT("/roles/:role_id", s.guard(authenticate, resolveRole, can(domain.ActionManage, domain.EntityRole)), s.handleUpdateRole)
	s.r.GET("/users/:user_id", s.guard(authenticate, resolveUser, can(domain.ActionView, domain.EntityUser)), s.handleGetUser)

	s.r.NoRoute(s.handleNoRoute)
}

func (s *Server) Run() error {
	if s.initErr != nil {
		return s.initErr
	}
	return s.r.Run(s.cfg.HTTPAddr)
}
