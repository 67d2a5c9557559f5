package hostauth

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type RegisterUserMessage struct {
	Login      string `json:"login" example:"pepe.rone" doc:"Unique login name."`
	Email      string `json:"email" example:"pepe.rone@example.com" doc:"Unique email."`
	Password   string `json:"password" doc:"Initial password."`
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	OnResponse func(resp *RegisterUserResponse)
}

func (p RegisterUserMessage) Type() string { return "user.register" }

type RegisterUserResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"id"`
	Login   string `json:"login"`
}

type RegisterUserHandler struct {
	dir    UserDirectory
	logger Logger
}

// NewRegisterUserHandler creates a handler with sane defaults.
func NewRegisterUserHandler(dir UserDirectory) *RegisterUserHandler {
	return &RegisterUserHandler{
		dir:    dir,
		logger: defLogger{},
	}
}

// WithLogger overrides the logger used by the handler.
func (h *RegisterUserHandler) WithLogger(logger Logger) *RegisterUserHandler {
	if logger != nil {
		h.logger = logger
	}
	return h
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) error {
	select {
	case <-ctx.Done():
		return goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if existing, err := h.dir.FindByLogin(ctx, event.Login); err == nil && existing != nil {
		return goerrors.New("This login already exists.", goerrors.CategoryConflict).
			WithTextCode("LOGIN_TAKEN")
	}

	if existing, err := h.dir.FindByEmail(ctx, event.Email); err == nil && existing != nil {
		return goerrors.New("This email already exists.", goerrors.CategoryConflict).
			WithTextCode("EMAIL_TAKEN")
	}

	user, err := h.dir.CreateUser(ctx, CreateUserInput{
		Login:     event.Login,
		Email:     event.Email,
		Password:  event.Password,
		FirstName: event.FirstName,
		LastName:  event.LastName,
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user")
	}

	h.logger.Info("registered user", "user_id", user.ID(), "login", user.Login())

	if event.OnResponse != nil {
		event.OnResponse(&RegisterUserResponse{
			Message: "User registered.",
			UserID:  user.ID(),
			Login:   user.Login(),
		})
	}

	return nil
}
