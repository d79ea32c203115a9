package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/edupath-ng/edupath-go-api/internal/dto"
	"github.com/edupath-ng/edupath-go-api/internal/mailer"
	"github.com/edupath-ng/edupath-go-api/internal/models"
	"github.com/edupath-ng/edupath-go-api/internal/observability"
	"github.com/edupath-ng/edupath-go-api/internal/repository"
)

var (
	// ErrStudentNotFound indicates the target student does not exist.
	ErrStudentNotFound = errors.New("student not found")
	// ErrStudentEmailTaken indicates the email is already registered.
	ErrStudentEmailTaken = errors.New("email already registered")
	// ErrStudentAlreadyApproved indicates a re-approval without the explicit
	// credential-reissue flag.
	ErrStudentAlreadyApproved = errors.New("student already approved")
	// ErrInvalidCredentials is the uniform login failure: it does not
	// distinguish unknown identifier, unapproved account or wrong password.
	ErrInvalidCredentials = errors.New("invalid student id or password")
	// ErrStudentIDExhausted indicates the allocator gave up after repeated
	// identifier collisions.
	ErrStudentIDExhausted = errors.New("failed to allocate a unique student id")
)

// StudentService exposes the registration, approval and login workflows plus
// administrative CRUD over student records.
type StudentService interface {
	Register(ctx context.Context, req dto.StudentCreateRequest) (dto.StudentResponse, error)
	Approve(ctx context.Context, id uint, req dto.StudentApproveRequest) (dto.StudentResponse, error)
	Login(ctx context.Context, req dto.StudentLoginRequest) (dto.StudentLoginResponse, error)
	List(ctx context.Context, page, pageSize int) (dto.StudentListResponse, error)
	Get(ctx context.Context, id uint) (dto.StudentResponse, error)
	GetByStudentID(ctx context.Context, studentID string) (dto.StudentResponse, error)
	Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id uint) error
}

type studentService struct {
	repo      repository.StudentRepository
	validator *validator.Validate
	mail      mailer.Mailer
	tokens    *TokenIssuer
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewStudentService constructs the student service.
func NewStudentService(repo repository.StudentRepository, validate *validator.Validate, mail mailer.Mailer, tokens *TokenIssuer, logger zerolog.Logger) StudentService {
	return &studentService{
		repo:      repo,
		validator: validate,
		mail:      mail,
		tokens:    tokens,
		logger:    logger.With().Str("component", "student_service").Logger(),
		tracer:    otel.Tracer("github.com/edupath-ng/edupath-go-api/internal/service/student"),
	}
}

// Register onboards a new applicant: allocate a collision-free public
// identifier, persist the record as pending, then dispatch a best-effort
// registration email. The email never affects the outcome.
func (s *studentService) Register(ctx context.Context, req dto.StudentCreateRequest) (dto.StudentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.register")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.StudentResponse{}, err
	}

	student := models.Student{
		FirstName:            req.FirstName,
		LastName:             req.LastName,
		Sex:                  req.Sex,
		Email:                req.Email,
		DesiredCourse:        req.DesiredCourse,
		PreferredInstitution: req.PreferredInstitution,
		MobileNumber:         req.MobileNumber,
		ParentsPhoneNumber:   req.ParentsPhoneNumber,
		SubjectCombination:   datatypes.NewJSONSlice(req.SubjectCombination),
		DesiredUTMEScore:     req.DesiredUTMEScore,
		DoneUTMEBefore:       *req.DoneUTMEBefore,
		PreviousScore:        req.PreviousScore,
		Status:               models.StudentStatusPending,
	}

	// Uniqueness lives in the store's unique index: insert a fresh candidate
	// and redraw only when the identifier itself collided.
	created := false
	for attempt := 0; attempt < studentIDMaxAttempts; attempt++ {
		candidate, err := newStudentID(time.Now())
		if err != nil {
			span.RecordError(err)
			observability.StudentRegistrations().WithLabelValues("error").Inc()
			return dto.StudentResponse{}, err
		}
		student.StudentID = candidate

		err = s.repo.Create(ctx, &student)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, repository.ErrStudentIDConflict) {
			s.logger.Debug().Str("student_id", candidate).Msg("student id collision, redrawing")
			continue
		}
		span.RecordError(err)
		observability.StudentRegistrations().WithLabelValues("error").Inc()
		if errors.Is(err, repository.ErrEmailConflict) {
			return dto.StudentResponse{}, ErrStudentEmailTaken
		}
		s.logger.Error().Err(err).Msg("failed to persist student registration")
		return dto.StudentResponse{}, err
	}
	if !created {
		span.SetStatus(codes.Error, "identifier space exhausted")
		observability.StudentRegistrations().WithLabelValues("error").Inc()
		return dto.StudentResponse{}, ErrStudentIDExhausted
	}

	span.SetAttributes(attribute.String("student.public_id", student.StudentID))
	observability.StudentRegistrations().WithLabelValues("success").Inc()

	result := s.mail.Send(ctx, mailer.Message{
		To:       student.Email,
		Subject:  "Registration successful",
		Template: mailer.TemplateRegistration,
		Data: map[string]string{
			"RegistrationType": "UTME",
			"StudentName":      student.FirstName,
		},
	})
	if !result.Success {
		s.logger.Warn().Str("reason", result.Message).Msg("registration email not dispatched")
	}

	s.logger.Info().Uint("id", student.ID).Str("student_id", student.StudentID).Msg("student registered")

	return dto.NewStudentResponse(student), nil
}

// Approve transitions a pending student to approved, issuing a one-time
// credential. Optional field corrections are merged in the same write. An
// already approved student is only touched when the caller explicitly asks
// for a credential reissue, which silently invalidates the old password.
func (s *studentService) Approve(ctx context.Context, id uint, req dto.StudentApproveRequest) (dto.StudentResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.approve", trace.WithAttributes(attribute.Int("student.id", int(id))))
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		span.SetStatus(codes.Error, "validation failed")
		return dto.StudentResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		span.RecordError(err)
		return dto.StudentResponse{}, err
	}

	if current.Approved() && !req.ReissueCredential {
		span.SetStatus(codes.Error, "already approved")
		observability.StudentApprovals().WithLabelValues("conflict").Inc()
		return dto.StudentResponse{}, ErrStudentAlreadyApproved
	}

	password, err := generateDefaultPassword()
	if err != nil {
		span.RecordError(err)
		return dto.StudentResponse{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		span.RecordError(err)
		return dto.StudentResponse{}, err
	}

	updates := studentUpdates(req.StudentUpdateRequest)
	updates["status"] = models.StudentStatusApproved
	updates["password_hash"] = hash

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		span.RecordError(err)
		observability.StudentApprovals().WithLabelValues("error").Inc()
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.StudentResponse{}, ErrStudentNotFound
		case errors.Is(err, repository.ErrEmailConflict):
			return dto.StudentResponse{}, ErrStudentEmailTaken
		}
		s.logger.Error().Err(err).Uint("id", id).Msg("failed to persist student approval")
		return dto.StudentResponse{}, err
	}

	observability.StudentApprovals().WithLabelValues("success").Inc()

	// The plaintext leaves memory only through this message; it is never
	// persisted or logged.
	result := s.mail.Send(ctx, mailer.Message{
		To:       student.Email,
		Subject:  "Registration approved",
		Template: mailer.TemplateStudentApprove,
		Data: map[string]string{
			"RegistrationType": "UTME",
			"StudentName":      student.FirstName,
			"StudentID":        student.StudentID,
			"Password":         password,
		},
	})
	if !result.Success {
		s.logger.Warn().Str("reason", result.Message).Msg("approval email not dispatched")
	}

	s.logger.Info().Uint("id", student.ID).Str("student_id", student.StudentID).Msg("student approved")

	return dto.NewStudentResponse(student), nil
}

// Login authenticates by public identifier and password. All failure paths
// return the same error and perform a hash comparison so neither the
// response body nor its timing reveals which check failed.
func (s *studentService) Login(ctx context.Context, req dto.StudentLoginRequest) (dto.StudentLoginResponse, error) {
	ctx, span := s.tracer.Start(ctx, "students.login")
	defer span.End()

	if err := s.validator.Struct(req); err != nil {
		return dto.StudentLoginResponse{}, err
	}

	student, err := s.repo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			checkPassword(dummyPasswordHash, req.Password)
			observability.Logins().WithLabelValues(TokenAudienceStudent, "failure").Inc()
			return dto.StudentLoginResponse{}, ErrInvalidCredentials
		}
		span.RecordError(err)
		return dto.StudentLoginResponse{}, err
	}

	if student.PasswordHash == "" {
		checkPassword(dummyPasswordHash, req.Password)
		observability.Logins().WithLabelValues(TokenAudienceStudent, "failure").Inc()
		return dto.StudentLoginResponse{}, ErrInvalidCredentials
	}

	if !checkPassword(student.PasswordHash, req.Password) {
		observability.Logins().WithLabelValues(TokenAudienceStudent, "failure").Inc()
		return dto.StudentLoginResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(student.ID, "")
	if err != nil {
		span.RecordError(err)
		return dto.StudentLoginResponse{}, err
	}

	observability.Logins().WithLabelValues(TokenAudienceStudent, "success").Inc()
	s.logger.Info().Uint("id", student.ID).Msg("student logged in")

	return dto.StudentLoginResponse{
		Student:     dto.NewStudentResponse(student),
		AccessToken: token,
	}, nil
}

func (s *studentService) List(ctx context.Context, page, pageSize int) (dto.StudentListResponse, error) {
	students, total, err := s.repo.List(ctx, repository.StudentFilter{Page: page, PageSize: pageSize})
	if err != nil {
		return dto.StudentListResponse{}, err
	}

	pagination := dto.PaginationMeta{Page: page, PageSize: pageSize, TotalItems: total}
	if pageSize > 0 {
		pagination.TotalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	} else {
		pagination.TotalPages = 1
	}

	return dto.StudentListResponse{
		Students:   dto.NewStudentResponseSlice(students),
		Pagination: pagination,
	}, nil
}

func (s *studentService) Get(ctx context.Context, id uint) (dto.StudentResponse, error) {
	student, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) GetByStudentID(ctx context.Context, studentID string) (dto.StudentResponse, error) {
	student, err := s.repo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Update(ctx context.Context, id uint, req dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.StudentResponse{}, err
	}

	updates := studentUpdates(req)
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	student, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return dto.StudentResponse{}, ErrStudentNotFound
		case errors.Is(err, repository.ErrEmailConflict):
			return dto.StudentResponse{}, ErrStudentEmailTaken
		}
		return dto.StudentResponse{}, err
	}
	return dto.NewStudentResponse(student), nil
}

func (s *studentService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return err
	}
	s.logger.Info().Uint("id", id).Msg("student deleted")
	return nil
}

// studentUpdates maps the optional request fields onto column updates. The
// public identifier and internal id are immutable and never appear here.
func studentUpdates(req dto.StudentUpdateRequest) map[string]interface{} {
	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Sex != nil {
		updates["sex"] = *req.Sex
	}
	if req.DesiredCourse != nil {
		updates["desired_course"] = *req.DesiredCourse
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.PreferredInstitution != nil {
		updates["preferred_institution"] = *req.PreferredInstitution
	}
	if req.MobileNumber != nil {
		updates["mobile_number"] = *req.MobileNumber
	}
	if req.SubjectCombination != nil {
		updates["subject_combination"] = datatypes.NewJSONSlice(req.SubjectCombination)
	}
	if req.ParentsPhoneNumber != nil {
		updates["parents_phone_number"] = *req.ParentsPhoneNumber
	}
	if req.DesiredUTMEScore != nil {
		updates["desired_utme_score"] = *req.DesiredUTMEScore
	}
	if req.DoneUTMEBefore != nil {
		updates["done_utme_before"] = *req.DoneUTMEBefore
	}
	if req.PreviousScore != nil {
		updates["previous_score"] = *req.PreviousScore
	}
	return updates
}
