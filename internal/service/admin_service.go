package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/mailer"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/observability"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

var (
	// ErrAdminNotFound indicates the target admin account does not exist.
	ErrAdminNotFound = errors.New("admin not found")
	// ErrAdminUsernameTaken indicates the username is already in use.
	ErrAdminUsernameTaken = errors.New("username already taken")
	// ErrAdminEmailTaken indicates the email is already in use.
	ErrAdminEmailTaken = errors.New("email already in use")
)

// AdminService manages back-office accounts and their authentication.
type AdminService interface {
	Create(ctx context.Context, req dto.AdminCreateRequest) (dto.AdminResponse, error)
	Login(ctx context.Context, req dto.AdminLoginRequest) (dto.AdminLoginResponse, error)
	List(ctx context.Context) ([]dto.AdminResponse, error)
	Get(ctx context.Context, id uint) (dto.AdminResponse, error)
	GetByUsername(ctx context.Context, username string) (dto.AdminResponse, error)
	Update(ctx context.Context, id uint, req dto.AdminUpdateRequest) (dto.AdminResponse, error)
	Delete(ctx context.Context, id uint) error
}

type adminService struct {
	repo      repository.AdminRepository
	validator *validator.Validate
	mail      mailer.Mailer
	tokens    *TokenIssuer
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewAdminService constructs the admin service.
func NewAdminService(repo repository.AdminRepository, validate *validator.Validate, mail mailer.Mailer, tokens *TokenIssuer, logger zerolog.Logger) AdminService {
	return &adminService{
		repo:      repo,
		validator: validate,
		mail:      mail,
		tokens:    tokens,
		logger:    logger.With().Str("component", "admin_service").Logger(),
		tracer:    otel.Tracer("github.com/edupath-ng/edupath-go-api/internal/service/admin"),
	}
}

// Create provisions a back-office account with a generated password and
// emails the credential to the new admin.
func (s *adminService) Create(ctx context.Context, req dto.AdminCreateRequest) (dto.AdminResponse, error) {
	ctx, span := s.tracer.Start(ctx, "admins.create")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return dto.AdminResponse{}, err
	}

	password, err := generateDefaultPassword()
	if err != nil {
		span.RecordError(err)
		return dto.AdminResponse{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		span.RecordError(err)
		return dto.AdminResponse{}, err
	}

	admin := models.Admin{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		Role:         req.Role,
		PasswordHash: hash,
	}
	if admin.Role == "" {
		admin.Role = models.AdminRoleDefault
	}

	if err := s.repo.Create(ctx, &admin); err != nil {
		span.RecordError(err)
		switch {
		case errors.Is(err, repository.ErrUsernameConflict):
			return dto.AdminResponse{}, ErrAdminUsernameTaken
		case errors.Is(err, repository.ErrEmailConflict):
			return dto.AdminResponse{}, ErrAdminEmailTaken
		}
		s.logger.Error().Err(err).Msg("failed to persist admin account")
		return dto.AdminResponse{}, err
	}

	result := s.mail.Send(ctx, mailer.Message{
		To:       admin.Email,
		Subject:  "Your admin account",
		Template: mailer.TemplateAdminWelcome,
		Data: map[string]string{
			"Name":     admin.Name,
			"Username": admin.Username,
			"Password": password,
		},
	})
	if !result.Success {
		s.logger.Warn().Str("reason", result.Message).Msg("admin welcome email not dispatched")
	}

	s.logger.Info().Uint("id", admin.ID).Str("username", admin.Username).Msg("admin created")

	return dto.NewAdminResponse(admin), nil
}

// Login authenticates by username and password with the same uniform error
// shape as the student flow.
func (s *adminService) Login(ctx context.Context, req dto.AdminLoginRequest) (dto.AdminLoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "admins.login")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return dto.AdminLoginResponse{}, err
	}

	admin, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			checkPassword(dummyPasswordHash, req.Password)
			observability.Logins().WithLabelValues(TokenAudienceAdmin, "failure").Inc()
			return dto.AdminLoginResponse{}, ErrInvalidCredentials
		}
		span.RecordError(err)
		return dto.AdminLoginResponse{}, err
	}

	if !checkPassword(admin.PasswordHash, req.Password) {
		observability.Logins().WithLabelValues(TokenAudienceAdmin, "failure").Inc()
		return dto.AdminLoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(admin.ID, admin.Role)
	if err != nil {
		span.RecordError(err)
		return dto.AdminLoginResponse{}, err
	}

	observability.Logins().WithLabelValues(TokenAudienceAdmin, "success").Inc()
	s.logger.Info().Uint("id", admin.ID).Str("username", admin.Username).Msg("admin logged in")

	return dto.AdminLoginResponse{
		Admin:       dto.NewAdminResponse(admin),
		AccessToken: token,
	}, nil
}

func (s *adminService) List(ctx context.Context) ([]dto.AdminResponse, error) {
	admins, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewAdminResponseSlice(admins), nil
}

func (s *adminService) Get(ctx context.Context, id uint) (dto.AdminResponse, error) {
	admin, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminResponse{}, ErrAdminNotFound
		}
		return dto.AdminResponse{}, err
	}
	return dto.NewAdminResponse(admin), nil
}

func (s *adminService) GetByUsername(ctx context.Context, username string) (dto.AdminResponse, error) {
	admin, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminResponse{}, ErrAdminNotFound
		}
		return dto.AdminResponse{}, err
	}
	return dto.NewAdminResponse(admin), nil
}

func (s *adminService) Update(ctx context.Context, id uint, req dto.AdminUpdateRequest) (dto.AdminResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.AdminResponse{}, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	admin, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.AdminResponse{}, ErrAdminNotFound
		case errors.Is(err, repository.ErrUsernameConflict):
			return dto.AdminResponse{}, ErrAdminUsernameTaken
		case errors.Is(err, repository.ErrEmailConflict):
			return dto.AdminResponse{}, ErrAdminEmailTaken
		}
		return dto.AdminResponse{}, err
	}
	return dto.NewAdminResponse(admin), nil
}

func (s *adminService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAdminNotFound
		}
		return err
	}
	s.logger.Info().Uint("id", id).Msg("admin deleted")
	return nil
}
