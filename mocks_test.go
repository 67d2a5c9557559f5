package hostauth_test

import (
	"context"

	"github.com/goliatone/go-hostauth"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
)

// MockCredentialGateway implements hostauth.CredentialGateway
type MockCredentialGateway struct {
	mock.Mock
}

func (m *MockCredentialGateway) VerifyCredentials(ctx context.Context, login, password string) (hostauth.Identity, error) {
	args := m.Called(ctx, login, password)
	identity, _ := args.Get(0).(hostauth.Identity)
	return identity, args.Error(1)
}

// MockUserDirectory implements hostauth.UserDirectory
type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) FindByLogin(ctx context.Context, login string) (hostauth.UserRecord, error) {
	args := m.Called(ctx, login)
	record, _ := args.Get(0).(hostauth.UserRecord)
	return record, args.Error(1)
}

func (m *MockUserDirectory) FindByEmail(ctx context.Context, email string) (hostauth.UserRecord, error) {
	args := m.Called(ctx, email)
	record, _ := args.Get(0).(hostauth.UserRecord)
	return record, args.Error(1)
}

func (m *MockUserDirectory) SetPassword(ctx context.Context, userID int64, newPassword string) error {
	args := m.Called(ctx, userID, newPassword)
	return args.Error(0)
}

func (m *MockUserDirectory) CheckPassword(ctx context.Context, candidate, storedHash string, userID int64) (bool, error) {
	args := m.Called(ctx, candidate, storedHash, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserDirectory) MintResetKey(ctx context.Context, user hostauth.UserRecord) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserDirectory) CheckResetKey(ctx context.Context, key, login string) (hostauth.UserRecord, error) {
	args := m.Called(ctx, key, login)
	record, _ := args.Get(0).(hostauth.UserRecord)
	return record, args.Error(1)
}

func (m *MockUserDirectory) CreateUser(ctx context.Context, input hostauth.CreateUserInput) (hostauth.UserRecord, error) {
	args := m.Called(ctx, input)
	record, _ := args.Get(0).(hostauth.UserRecord)
	return record, args.Error(1)
}

// MockAttributeStore implements hostauth.UserAttributeStore
type MockAttributeStore struct {
	mock.Mock
}

func (m *MockAttributeStore) GetAttribute(ctx context.Context, userID int64, key string) (any, error) {
	args := m.Called(ctx, userID, key)
	return args.Get(0), args.Error(1)
}

func (m *MockAttributeStore) SetAttribute(ctx context.Context, userID int64, key string, value any) error {
	args := m.Called(ctx, userID, key, value)
	return args.Error(0)
}

// MockMailer implements hostauth.Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// TestUser is a simple UserRecord implementation for tests
type TestUser struct {
	id          int64
	login       string
	displayName string
	email       string
	hash        string
}

func (u TestUser) ID() int64            { return u.id }
func (u TestUser) Login() string        { return u.login }
func (u TestUser) DisplayName() string  { return u.displayName }
func (u TestUser) Email() string        { return u.email }
func (u TestUser) PasswordHash() string { return u.hash }

// MockLoginPayload implements hostauth.LoginPayload
type MockLoginPayload struct {
	Login    string
	Password string
}

func (m MockLoginPayload) GetLogin() string {
	return m.Login
}

func (m MockLoginPayload) GetPassword() string {
	return m.Password
}

// MockContext mocks the router.Context
type MockContext struct {
	mock.Mock
	NextCalled bool
}

func (m *MockContext) Next() error {
	m.NextCalled = true
	return nil
}

func (m *MockContext) Context() context.Context {
	args := m.Called()
	c, ok := args.Get(0).(context.Context)
	if !ok {
		panic("arg needs to be context.Context")
	}
	return c
}

func (m *MockContext) SetContext(ctx context.Context) {
	m.Called(ctx)
}

func (m *MockContext) Path() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Method() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) Body() []byte {
	args := m.Called()
	return args.Get(0).([]byte)
}

func (m *MockContext) Status(code int) router.Context {
	m.Called(code)
	return m
}

func (m *MockContext) SendString(s string) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockContext) Send(b []byte) error {
	args := m.Called(b)
	return args.Error(0)
}

func (m *MockContext) JSON(code int, val any) error {
	args := m.Called(code, val)
	return args.Error(0)
}

func (m *MockContext) NoContent(code int) error {
	args := m.Called(code)
	return args.Error(0)
}

func (m *MockContext) Render(name string, bind any, layout ...string) error {
	if len(layout) > 0 {
		args := m.Called(name, bind, layout[0])
		return args.Error(0)
	}
	args := m.Called(name, bind)
	return args.Error(0)
}

func (m *MockContext) Redirect(path string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(path, status)
		return args.Error(0)
	}
	args := m.Called(path)
	return args.Error(0)
}

func (m *MockContext) RedirectToRoute(name string, data router.ViewContext, status ...int) error {
	if len(status) > 0 {
		args := m.Called(name, data, status[0])
		return args.Error(0)
	}
	args := m.Called(name, data)
	return args.Error(0)
}

func (m *MockContext) RedirectBack(fallback string, status ...int) error {
	if len(status) > 0 {
		args := m.Called(fallback, status)
		return args.Error(0)
	}
	args := m.Called(fallback)
	return args.Error(0)
}

func (m *MockContext) SetHeader(key, val string) router.Context {
	m.Called(key, val)
	return m
}

func (m *MockContext) Header(key string) string {
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Get(key string, defaultValue any) any {
	args := m.Called(key, defaultValue)
	return args.Get(0)
}

func (m *MockContext) GetBool(key string, defaultValue bool) bool {
	args := m.Called(key, defaultValue)
	return args.Bool(0)
}

func (m *MockContext) GetInt(key string, def int) int {
	args := m.Called(key, def)
	return args.Int(0)
}

func (m *MockContext) Set(key string, val any) {
	m.Called(key, val)
}

func (m *MockContext) Bind(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindJSON(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindXML(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) BindQuery(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) CookieParser(i any) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockContext) Cookie(cookie *router.Cookie) {
	m.Called(cookie)
}

func (m *MockContext) Cookies(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) Param(key string, defaultValue ...string) string {
	if len(defaultValue) > 0 {
		args := m.Called(key, defaultValue[0])
		return args.String(0)
	}
	args := m.Called(key)
	return args.String(0)
}

func (m *MockContext) ParamsInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Query(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) QueryInt(key string, defaultValue int) int {
	args := m.Called(key, defaultValue)
	return args.Int(0)
}

func (m *MockContext) Queries() map[string]string {
	args := m.Called()
	return args.Get(0).(map[string]string)
}

func (m *MockContext) GetString(key string, defaultValue string) string {
	args := m.Called(key, defaultValue)
	return args.String(0)
}

func (m *MockContext) Locals(key any, value ...any) any {
	if len(value) > 0 {
		m.Called(key, value[0])
		return nil
	}
	args := m.Called(key)
	return args.Get(0)
}

func (m *MockContext) OriginalURL() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockContext) OnNext(callback func() error) {
	m.Called(callback)
}

func (m *MockContext) Referer() string {
	args := m.Called()
	return args.String(0)
}
