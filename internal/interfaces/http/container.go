package http

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/reque-io/reque/internal/application/notification"
	permissionApp "github.com/reque-io/reque/internal/application/permission"
	requestUsecases "github.com/reque-io/reque/internal/application/request/usecases"
	"github.com/reque-io/reque/internal/application/user/helpers"
	"github.com/reque-io/reque/internal/application/user/usecases"
	requestDomain "github.com/reque-io/reque/internal/domain/request"
	"github.com/reque-io/reque/internal/domain/shared/events"
	userDomain "github.com/reque-io/reque/internal/domain/user"
	"github.com/reque-io/reque/internal/infrastructure/auth"
	"github.com/reque-io/reque/internal/infrastructure/cache"
	"github.com/reque-io/reque/internal/infrastructure/config"
	"github.com/reque-io/reque/internal/infrastructure/email"
	permissionInfra "github.com/reque-io/reque/internal/infrastructure/permission"
	"github.com/reque-io/reque/internal/infrastructure/ratelimit"
	"github.com/reque-io/reque/internal/infrastructure/repository"
	"github.com/reque-io/reque/internal/infrastructure/services"
	"github.com/reque-io/reque/internal/infrastructure/storage"
	"github.com/reque-io/reque/internal/interfaces/http/handlers"
	requesthandlers "github.com/reque-io/reque/internal/interfaces/http/handlers/request"
	"github.com/reque-io/reque/internal/interfaces/http/middleware"
	"github.com/reque-io/reque/internal/shared/db"
	"github.com/reque-io/reque/internal/shared/logger"
	"github.com/reque-io/reque/internal/shared/services/markdown"
)

// Container wires repositories, use cases, handlers, and middleware. The
// server command builds one, starts it, and tears it down on shutdown.
type Container struct {
	db    *gorm.DB
	cfg   *config.Config
	log   logger.Interface
	redis *redis.Client

	// Repositories
	userRepo       userDomain.Repository
	sessionRepo    userDomain.SessionRepository
	oauthRepo      userDomain.OAuthAccountRepository
	requestRepo    requestDomain.Repository
	commentRepo    requestDomain.CommentRepository
	activityRepo   requestDomain.ActivityRepository
	attachmentRepo requestDomain.AttachmentRepository

	// Infrastructure services
	txManager    *db.TransactionManager
	dispatcher   *events.InMemoryEventDispatcher
	emailService *email.SMTPEmailService
	blobStore    *storage.LocalBlobStore
	numberGen    requestDomain.NumberGenerator
	renderer     markdown.Renderer
	enforcer     *permissionInfra.Enforcer
	jwtSvc       *auth.JWTService

	// Handlers
	authHandler       *handlers.AuthHandler
	userHandler       *handlers.UserHandler
	requestHandler    *requesthandlers.RequestHandler
	commentHandler    *requesthandlers.CommentHandler
	attachmentHandler *requesthandlers.AttachmentHandler

	// Middleware
	authMiddleware       *middleware.AuthMiddleware
	permissionMiddleware *middleware.PermissionMiddleware
	rateLimiter          *middleware.RateLimitMiddleware
}

// NewContainer builds the full dependency graph. It fails fast when a piece
// of infrastructure cannot be constructed, before the server starts
// listening.
func NewContainer(gormDB *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		db:    gormDB,
		cfg:   cfg,
		log:   log,
		redis: redisClient,
	}

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}
	c.initAuth()
	c.initUsers()
	c.initRequests()
	c.initMiddleware()

	return c, nil
}

// Section 1: Repositories, transaction manager, event dispatcher, policy
// enforcer, blob store.
func (c *Container) initInfrastructure() error {
	c.userRepo = repository.NewUserRepository(c.db, c.log)
	c.sessionRepo = repository.NewSessionRepository(c.db)
	c.oauthRepo = repository.NewOAuthAccountRepository(c.db)
	c.requestRepo = repository.NewRequestRepository(c.db)
	c.commentRepo = repository.NewCommentRepository(c.db)
	c.activityRepo = repository.NewActivityRepository(c.db)
	c.attachmentRepo = repository.NewAttachmentRepository(c.db)

	c.txManager = db.NewTransactionManager(c.db)
	c.dispatcher = events.NewInMemoryEventDispatcher(c.cfg.Events.BufferSize, c.log)
	c.numberGen = services.NewRequestNumberGenerator(c.db)
	c.renderer = markdown.NewRenderer()

	c.emailService = email.NewSMTPEmailService(email.SMTPConfig{
		Host:        c.cfg.Email.SMTPHost,
		Port:        c.cfg.Email.SMTPPort,
		Username:    c.cfg.Email.SMTPUser,
		Password:    c.cfg.Email.SMTPPassword,
		FromAddress: c.cfg.Email.FromAddress,
		FromName:    c.cfg.Email.FromName,
		BaseURL:     c.cfg.Server.BaseURL,
	})

	blobStore, err := storage.NewLocalBlobStore(c.cfg.Storage.AttachmentDir)
	if err != nil {
		return fmt.Errorf("failed to initialize blob store: %w", err)
	}
	c.blobStore = blobStore

	enforcer, err := permissionInfra.NewEnforcer(c.db, c.cfg.Policy.ModelPath, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize policy enforcer: %w", err)
	}
	c.enforcer = enforcer

	if c.cfg.Policy.SeedPath != "" {
		if err := permissionInfra.Bootstrap(enforcer, c.cfg.Policy.SeedPath, c.log); err != nil {
			return fmt.Errorf("failed to bootstrap policies: %w", err)
		}
	}

	return nil
}

// Section 2: Authentication - JWT, OAuth, password flows.
func (c *Container) initAuth() {
	hasher := auth.NewBcryptPasswordHasher(c.cfg.Auth.Password.BcryptCost)
	c.jwtSvc = auth.NewJWTService(
		c.cfg.Auth.JWT.Secret,
		c.cfg.Auth.JWT.AccessExpMinutes,
		c.cfg.Auth.JWT.RefreshExpDays,
	)
	jwtService := &jwtServiceAdapter{c.jwtSvc}
	authHelper := helpers.NewAuthHelper(c.userRepo, c.sessionRepo, c.log)
	policyProvider := newConfigPolicyProvider(c.cfg.Auth)

	googleClient := &oauthClientAdapter{auth.NewGoogleOAuthClient(auth.GoogleOAuthConfig{
		ClientID:     c.cfg.OAuth.Google.ClientID,
		ClientSecret: c.cfg.OAuth.Google.ClientSecret,
		RedirectURL:  c.cfg.OAuth.Google.RedirectURL,
	})}
	githubClient := &oauthClientAdapter{auth.NewGitHubOAuthClient(auth.GitHubOAuthConfig{
		ClientID:     c.cfg.OAuth.GitHub.ClientID,
		ClientSecret: c.cfg.OAuth.GitHub.ClientSecret,
		RedirectURL:  c.cfg.OAuth.GitHub.RedirectURL,
	})}
	stateStore := &oauthStateStoreAdapter{
		store: cache.NewRedisOAuthStateStore(c.redis, "", 10*time.Minute),
	}

	registerUC := usecases.NewRegisterWithPasswordUseCase(
		c.userRepo, hasher, c.emailService, policyProvider, authHelper, c.dispatcher, c.log)
	loginUC := usecases.NewLoginWithPasswordUseCase(
		c.userRepo, hasher, jwtService, authHelper, policyProvider, c.cfg.Auth.Session, c.log)
	verifyEmailUC := usecases.NewVerifyEmailUseCase(c.userRepo, c.log)
	requestResetUC := usecases.NewRequestPasswordResetUseCase(
		c.userRepo, c.emailService, policyProvider, c.log)
	resetPasswordUC := usecases.NewResetPasswordUseCase(
		c.userRepo, c.sessionRepo, hasher, c.emailService, c.log)
	changePasswordUC := usecases.NewChangePasswordUseCase(
		c.userRepo, hasher, c.emailService, authHelper, c.log)
	initiateOAuthUC := usecases.NewInitiateOAuthLoginUseCase(
		googleClient, githubClient, stateStore, c.log)
	handleOAuthUC := usecases.NewHandleOAuthCallbackUseCase(
		c.userRepo, c.oauthRepo, googleClient, githubClient, stateStore,
		jwtService, c.emailService, policyProvider, authHelper, c.dispatcher,
		c.cfg.Auth.Session, c.log)
	refreshTokenUC := usecases.NewRefreshTokenUseCase(
		c.userRepo, c.sessionRepo, jwtService, authHelper, c.cfg.Auth.Session, c.log)
	logoutUC := usecases.NewLogoutUseCase(c.sessionRepo, c.log)
	listSessionsUC := usecases.NewListSessionsUseCase(c.sessionRepo, c.log)
	revokeSessionUC := usecases.NewRevokeSessionUseCase(c.sessionRepo, c.log)
	currentUserUC := usecases.NewGetCurrentUserUseCase(c.userRepo, c.log)

	c.authHandler = handlers.NewAuthHandler(
		registerUC, loginUC, verifyEmailUC, requestResetUC, resetPasswordUC,
		changePasswordUC, initiateOAuthUC, handleOAuthUC, refreshTokenUC,
		logoutUC, listSessionsUC, revokeSessionUC, currentUserUC, c.log,
		c.cfg.Auth.Cookie, c.cfg.Auth.JWT, c.cfg.Server.AllowedOrigins,
	)
}

// Section 3: Account management.
func (c *Container) initUsers() {
	listUsersUC := usecases.NewListUsersUseCase(c.userRepo, c.log)
	listAssignableUC := usecases.NewListAssignableUsersUseCase(c.userRepo, c.log)
	updateProfileUC := usecases.NewUpdateProfileUseCase(c.userRepo, c.log)
	changeRoleUC := usecases.NewChangeUserRoleUseCase(c.userRepo, c.log)
	changeStatusUC := usecases.NewChangeUserStatusUseCase(
		c.userRepo, c.sessionRepo, c.dispatcher, c.log)

	c.userHandler = handlers.NewUserHandler(
		listUsersUC, listAssignableUC, updateProfileUC, changeRoleUC, changeStatusUC, c.log)
}

// Section 4: Request tracking - requests, comments, attachments, activity.
func (c *Container) initRequests() {
	createUC := requestUsecases.NewCreateRequestUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.numberGen, c.txManager, c.dispatcher, c.log)
	getUC := requestUsecases.NewGetRequestUseCase(
		c.requestRepo, c.commentRepo, c.attachmentRepo, c.userRepo, c.renderer, c.log)
	listUC := requestUsecases.NewListRequestsUseCase(c.requestRepo, c.userRepo, c.log)
	updateUC := requestUsecases.NewUpdateRequestUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.txManager, c.log)
	changeStatusUC := requestUsecases.NewChangeStatusUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.txManager, c.dispatcher, c.log)
	changePriorityUC := requestUsecases.NewChangePriorityUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.txManager, c.dispatcher, c.log)
	assignUC := requestUsecases.NewAssignRequestUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.txManager, c.dispatcher, c.log)
	deleteUC := requestUsecases.NewDeleteRequestUseCase(
		c.requestRepo, c.commentRepo, c.activityRepo, c.attachmentRepo,
		c.userRepo, c.blobStore, c.txManager, c.log)
	statsUC := requestUsecases.NewGetRequestStatsUseCase(c.requestRepo, c.userRepo, c.log)
	permissionsUC := requestUsecases.NewGetRequestPermissionsUseCase(
		c.requestRepo, c.userRepo, c.log)
	activityUC := requestUsecases.NewListActivityUseCase(
		c.requestRepo, c.activityRepo, c.userRepo, c.log)

	c.requestHandler = requesthandlers.NewRequestHandler(
		createUC, getUC, listUC, updateUC, changeStatusUC, changePriorityUC,
		assignUC, deleteUC, statsUC, permissionsUC, activityUC, c.log)

	addCommentUC := requestUsecases.NewAddCommentUseCase(
		c.requestRepo, c.commentRepo, c.activityRepo, c.userRepo,
		c.txManager, c.dispatcher, c.log)
	listCommentsUC := requestUsecases.NewListCommentsUseCase(
		c.requestRepo, c.commentRepo, c.userRepo, c.renderer, c.log)
	updateCommentUC := requestUsecases.NewUpdateCommentUseCase(
		c.commentRepo, c.activityRepo, c.userRepo, c.txManager, c.log)
	deleteCommentUC := requestUsecases.NewDeleteCommentUseCase(
		c.commentRepo, c.activityRepo, c.userRepo, c.txManager, c.log)

	c.commentHandler = requesthandlers.NewCommentHandler(
		addCommentUC, listCommentsUC, updateCommentUC, deleteCommentUC, c.log)

	uploadUC := requestUsecases.NewUploadAttachmentUseCase(
		c.requestRepo, c.attachmentRepo, c.activityRepo, c.userRepo,
		c.blobStore, c.txManager, c.dispatcher,
		c.cfg.Storage.MaxAttachmentBytes, c.log)
	listAttachmentsUC := requestUsecases.NewListAttachmentsUseCase(
		c.requestRepo, c.attachmentRepo, c.userRepo, c.log)
	downloadUC := requestUsecases.NewDownloadAttachmentUseCase(
		c.requestRepo, c.attachmentRepo, c.userRepo, c.blobStore, c.log)
	deleteAttachmentUC := requestUsecases.NewDeleteAttachmentUseCase(
		c.requestRepo, c.attachmentRepo, c.activityRepo, c.userRepo,
		c.blobStore, c.txManager, c.log)

	c.attachmentHandler = requesthandlers.NewAttachmentHandler(
		uploadUC, listAttachmentsUC, downloadUC, deleteAttachmentUC, c.log)
}

// Section 5: HTTP middleware.
func (c *Container) initMiddleware() {
	c.authMiddleware = middleware.NewAuthMiddleware(
		c.jwtSvc, c.userRepo, c.cfg.Auth.Cookie, c.cfg.Auth.JWT, c.log)

	permissionService := permissionApp.NewService(c.userRepo, c.enforcer, c.log)
	c.permissionMiddleware = middleware.NewPermissionMiddleware(permissionService, c.log)

	limiter := ratelimit.NewRedisRateLimiter(c.redis)
	c.rateLimiter = middleware.NewRateLimitMiddleware(limiter, &c.cfg.RateLimit, c.log)
}

// Start subscribes the notification handlers and launches the event
// dispatcher loop.
func (c *Container) Start() error {
	if err := notification.RegisterHandlers(c.dispatcher, c.userRepo, c.emailService, c.log); err != nil {
		return fmt.Errorf("failed to register notification handlers: %w", err)
	}
	if err := c.dispatcher.Start(); err != nil {
		return fmt.Errorf("failed to start event dispatcher: %w", err)
	}
	return nil
}

// Shutdown stops the event dispatcher, draining buffered events first.
func (c *Container) Shutdown() error {
	return c.dispatcher.Stop()
}
